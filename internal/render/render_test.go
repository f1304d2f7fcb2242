package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/f3rmion/yomi/internal/dict"
	"github.com/f3rmion/yomi/internal/entry"
)

func lookupResult() *dict.LookupResult {
	return &dict.LookupResult{
		Matches: []dict.Match{
			{Record: "食べる [たべる] /(v1,vt) to eat/(P)/", Reason: "< past"},
			{Record: "broken record"},
			{Record: "食 [しょく] /(n) food/"},
		},
		MatchLen:  3,
		Truncated: true,
	}
}

func TestText(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		want string
	}{
		{
			name: "default",
			want: "食べる（たべる）\t(v1,vt) to eat; (P)\t< past\n" +
				"食（しょく）\t(n) food\n" +
				"...\n",
		},
		{
			name: "hide pos and popular",
			opts: Options{HidePOS: true, HidePopular: true},
			want: "食べる（たべる）\tto eat\t< past\n" +
				"食（しょく）\tfood\n" +
				"...\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Text(lookupResult(), tt.opts))
		})
	}

	assert.Equal(t, "", Text(nil, Options{}))
}

func TestTranslateText(t *testing.T) {
	res := &dict.TranslateResult{
		Segments: []dict.Segment{
			{Match: dict.Match{Record: "犬 [いぬ] /(n) dog/"}, Offset: 0, Length: 1},
			{Match: dict.Match{Record: "食べる [たべる] /(v1) to eat/", Reason: "< past"}, Offset: 2, Length: 3},
		},
		More:    true,
		TextLen: 5,
	}

	got := TranslateText("犬が食べた", res, Options{})
	assert.Equal(t, "犬\t犬（いぬ）\t(n) dog\n"+
		"食べた\t食べる（たべる）\t(v1) to eat\t< past\n"+
		"...\n", got)
	assert.Equal(t, "", TranslateText("x", nil, Options{}))
}

func testKanji() *entry.KanjiEntry {
	return &entry.KanjiEntry{
		Kanji:                 "継",
		ReferenceCodes:        map[string]string{"H": "1278", "U": "7D99", "B": "120"},
		OnKun:                 []string{"ケイ", "つ.ぐ", "まま-"},
		NameReadings:          []string{"つぎ", "つぐ"},
		RadicalPronunciations: nil,
		English:               "inherit, succeed",
		RadicalChar:           "糸",
		Components:            []entry.Component{{Radical: "糸", Yomi: "いと", English: "thread"}},
		Mandarin:              []string{"ji4"},
	}
}

func TestKanjiText(t *testing.T) {
	got := KanjiText(testKanji(), Options{KanjiInfo: []string{"H", "Y", "N", "U", "ZZ"}})
	assert.Equal(t, "継\n"+
		"inherit, succeed\n"+
		"ケイ、つ（ぐ）、まま-\n"+
		"名乗り\tつぎ、つぐ\n"+
		"部首\t糸 いと thread\n"+
		"Halpern\t1278\n"+
		"PinYin\tji4\n"+
		"Nelson\t-\n"+
		"Unicode\t7D99\n", got)

	assert.Equal(t, "", KanjiText(nil, Options{}))
}

func TestKanjiView_Defaults(t *testing.T) {
	e := testKanji()
	e.English = ""
	k := KanjiView(e, Options{})

	assert.Equal(t, "-", k.English)
	require.Len(t, k.Rows, len(KanjiCodes))
	assert.Equal(t, "Halpern", k.Rows[0].Label)
	assert.Equal(t, "Unicode", k.Rows[len(k.Rows)-1].Label)
}

func TestKanjiView_MandarinReadings(t *testing.T) {
	e := testKanji()
	e.Mandarin = []string{"mao1", "mao2"}
	k := KanjiView(e, Options{KanjiInfo: []string{"Y"}})
	require.Len(t, k.Rows, 1)
	assert.Equal(t, KanjiRow{Label: "PinYin", Value: "mao1  mao2"}, k.Rows[0])

	e.ReferenceCodes["Y"] = "mao1"
	k = KanjiView(e, Options{KanjiInfo: []string{"Y"}})
	assert.Equal(t, "mao1", k.Rows[0].Value)
}

func TestHTML(t *testing.T) {
	res := lookupResult()
	res.Names = true

	got, err := HTML(res, Options{})
	require.NoError(t, err)
	assert.Contains(t, got, `<div class="w-title">Names Dictionary</div>`)
	assert.Contains(t, got, `<span class="w-kanji">食べる</span>`)
	assert.Contains(t, got, `<span class="w-kana">たべる</span>`)
	assert.Contains(t, got, `<span class="w-conj">(&lt; past)</span>`)
	assert.Contains(t, got, `<span class="w-def">(v1,vt) to eat; (P)</span>`)
	assert.Contains(t, got, `<div class="w-more">...</div>`)
	assert.NotContains(t, got, "broken")

	got, err = HTML(nil, Options{})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestKanjiHTML(t *testing.T) {
	got, err := KanjiHTML(testKanji(), Options{KanjiInfo: []string{"H"}})
	require.NoError(t, err)
	assert.Contains(t, got, `<div class="k-kanji">継</div>`)
	assert.Contains(t, got, `<div class="k-yomi">つぎ、つぐ</div>`)
	assert.Contains(t, got, `<td class="k-bbox">thread</td>`)
	assert.Contains(t, got, `<td class="k-mix-td">Halpern</td><td class="k-mix-td">1278</td>`)
	assert.NotContains(t, got, "部首名")
}

func TestResult(t *testing.T) {
	assert.Equal(t, "", Result(nil, Options{}))
	assert.Contains(t, Result(&dict.Result{Kanji: testKanji()}, Options{}), "inherit, succeed")
	assert.Contains(t, Result(&dict.Result{Words: lookupResult()}, Options{}), "食べる（たべる）")

	html, err := ResultHTML(&dict.Result{Kanji: testKanji()}, Options{})
	require.NoError(t, err)
	assert.Contains(t, html, "k-kanji")
}
