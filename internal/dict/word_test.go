package dict

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/f3rmion/yomi/internal/deinflect"
)

func TestWordSearch(t *testing.T) {
	d := newTestDictionary(t, Options{})

	tests := []struct {
		name         string
		text         string
		wantRecords  []string
		wantReasons  []string
		wantMatchLen int
	}{
		{
			name:         "deinflected chain then shorter prefix",
			text:         "食べられた",
			wantRecords:  []string{"食べる [たべる] /(v1,vt) to eat/(P)/", "食 [しょく] /(n) food/"},
			wantReasons:  []string{"< potential or passive < past", ""},
			wantMatchLen: 5,
		},
		{
			name:         "reason names the inflected prefix after shrinking",
			text:         "食べたい人",
			wantRecords:  []string{"食べる [たべる] /(v1,vt) to eat/(P)/", "食 [しょく] /(n) food/"},
			wantReasons:  []string{"< -tai < 食べたい", ""},
			wantMatchLen: 4,
		},
		{
			name:         "longest prefix first",
			text:         "食べる物",
			wantRecords:  []string{"食べる [たべる] /(v1,vt) to eat/(P)/", "食 [しょく] /(n) food/"},
			wantReasons:  []string{"", ""},
			wantMatchLen: 3,
		},
		{
			name:         "adjective adverb form",
			text:         "高く",
			wantRecords:  []string{"高い [たかい] /(adj-i) high/(P)/", "高 [こう] /(n) high school/"},
			wantReasons:  []string{"< adv", ""},
			wantMatchLen: 2,
		},
		{
			name:         "godan negative past",
			text:         "書かなかった",
			wantRecords:  []string{"書く [かく] /(v5k,vt) to write/(P)/"},
			wantReasons:  []string{"< negative < past"},
			wantMatchLen: 6,
		},
		{
			name:         "part of speech gate rejects noun",
			text:         "はし",
			wantRecords:  []string{"は /(prt) topic marker/"},
			wantReasons:  []string{""},
			wantMatchLen: 1,
		},
		{
			name:         "half-width katakana length maps back to input",
			text:         "ｶﾞｰﾃﾞﾝ",
			wantRecords:  []string{"ガーデン /(n) garden/", "が /(prt) subject marker/"},
			wantReasons:  []string{"", ""},
			wantMatchLen: 6,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := d.WordSearch(tt.text, 0)
			require.NotNil(t, res)

			assert.Equal(t, tt.wantRecords, records(res))
			reasons := make([]string, len(res.Matches))
			for i, m := range res.Matches {
				reasons[i] = m.Reason
			}
			assert.Equal(t, tt.wantReasons, reasons)
			assert.Equal(t, tt.wantMatchLen, res.MatchLen)
			assert.False(t, res.Truncated)
			assert.False(t, res.Names)
		})
	}
}

func TestWordSearch_NoMatch(t *testing.T) {
	d := newTestDictionary(t, Options{})

	for _, text := range []string{"", "abc", "。猫", "龍"} {
		assert.Nil(t, d.WordSearch(text, 0), text)
	}
}

func TestWordSearch_Budget(t *testing.T) {
	words := []struct {
		record string
		keys   []string
	}{
		{"柿 [かき] /(n) persimmon/", []string{"柿", "かき"}},
		{"牡蠣 [かき] /(n) oyster/", []string{"牡蠣", "かき"}},
		{"夏季 [かき] /(n) summer/", []string{"夏季", "かき"}},
	}
	d := New(Config{Words: buildSource(t, words)})

	res := d.WordSearch("かき", 2)
	require.NotNil(t, res)
	assert.Len(t, res.Matches, 2)
	assert.True(t, res.Truncated)

	res = d.WordSearch("かき", 3)
	require.NotNil(t, res)
	assert.Len(t, res.Matches, 3)
	assert.False(t, res.Truncated)

	res = d.WordSearch("かき", 1)
	require.NotNil(t, res)
	assert.Len(t, res.Matches, 1)
	assert.True(t, res.Truncated)
	assert.Equal(t, 2, res.MatchLen)
}

func TestWordSearch_SharedOffsetCountedOnce(t *testing.T) {
	words := []struct {
		record string
		keys   []string
	}{
		// reachable both directly and through the past-tense rule
		{"食べる [たべる] /(v1,vt) to eat/", []string{"食べる", "たべる", "たべた"}},
	}
	d := New(Config{Words: buildSource(t, words)})

	res := d.WordSearch("たべた", 0)
	require.NotNil(t, res)
	assert.Len(t, res.Matches, 1)
	assert.Equal(t, "", res.Matches[0].Reason)
}

func TestPartOfSpeechMatches(t *testing.T) {
	tests := []struct {
		record string
		typ    uint16
		want   bool
	}{
		{"食べる [たべる] /(v1,vt) to eat/", deinflect.Ichidan, true},
		{"食べる [たべる] /(v1,vt) to eat/", deinflect.Godan, false},
		{"書く [かく] /(v5k,vt) to write/", deinflect.Godan, true},
		{"高い [たかい] /(adj-i) high/", deinflect.AdjI, true},
		{"来る [くる] /(vk,vi) to come/", deinflect.Kuru, true},
		{"愛する [あいする] /(vs-s,vt) to love/", deinflect.Suru, true},
		{"勉強 [べんきょう] /(n,vs) study/", deinflect.Suru, false},
		{"蓮 [はす] /(n) lotus/", deinflect.Godan | deinflect.Ichidan, false},
		{"v1 in the headword /(n) noun/", deinflect.Ichidan, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, partOfSpeechMatches(tt.record, tt.typ), "%s %#x", tt.record, tt.typ)
	}
}
