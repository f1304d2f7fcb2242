package dict

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/f3rmion/yomi/internal/index"
)

func TestTranslate(t *testing.T) {
	d := newTestDictionary(t, Options{})

	res := d.Translate("犬は猫が好きです。")
	require.NotNil(t, res)

	var got []string
	var lengths []int
	for _, s := range res.Segments {
		got = append(got, s.Record)
		lengths = append(lengths, s.Length)
	}
	assert.Equal(t, []string{
		"犬 [いぬ] /(n) dog/(P)/",
		"は /(prt) topic marker/",
		"猫 [ねこ] /(n) cat/(P)/",
		"が /(prt) subject marker/",
		"好き [すき] /(adj-na,n) liked/(P)/",
		"です /(cop) be/(P)/",
	}, got)
	assert.Equal(t, []int{1, 1, 1, 1, 2, 2}, lengths)
	assert.Equal(t, 4, res.Segments[4].Offset)
	assert.False(t, res.More)
	assert.Equal(t, 9, res.TextLen)
}

func TestTranslate_SegmentBudget(t *testing.T) {
	d := newTestDictionary(t, Options{})

	res := d.Translate("犬は猫が好きです。犬は猫が好きです。")
	require.NotNil(t, res)
	assert.Len(t, res.Segments, DefaultMaxTranslate)
	assert.True(t, res.More)
	assert.Equal(t, 10, res.TextLen)

	d = newTestDictionary(t, Options{MaxTranslate: 2})
	res = d.Translate("犬は猫")
	require.NotNil(t, res)
	assert.Len(t, res.Segments, 2)
	assert.True(t, res.More)
}

func TestTranslate_NoMatch(t *testing.T) {
	d := newTestDictionary(t, Options{})
	assert.Nil(t, d.Translate("hello, world"))
	assert.Nil(t, d.Translate(""))
}

func TestKanjiSearch(t *testing.T) {
	d := newTestDictionary(t, Options{})

	k := d.KanjiSearch("猫です")
	require.NotNil(t, k)
	assert.Equal(t, "猫", k.Kanji)
	assert.Equal(t, "cat", k.English)
	assert.Equal(t, "732B", k.Code("U"))
	assert.Equal(t, "mao1  mao2", k.Code("Y"))
	assert.Equal(t, "犬", k.RadicalChar)
	require.Len(t, k.Components, 2)
	assert.Equal(t, "犬", k.Components[0].Radical)
	assert.Equal(t, "田", k.Components[1].Radical)
	assert.Empty(t, k.Mandarin)

	k = d.KanjiSearch("田")
	require.NotNil(t, k)
	assert.Contains(t, k.Mandarin, "tian2")

	assert.Nil(t, d.KanjiSearch("马"), "malformed record")
	assert.Nil(t, d.KanjiSearch("龍"), "not in dictionary")
	assert.Nil(t, d.KanjiSearch("a"))
	assert.Nil(t, d.KanjiSearch(""))
}

func TestSearch(t *testing.T) {
	ctx := context.Background()

	d := newTestDictionary(t, Options{KanjiFallback: true})

	res, err := d.Search(ctx, "猫が", ModeWords)
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Equal(t, ModeWords, res.Mode)
	assert.Equal(t, 1, res.MatchLen())

	res, err = d.Search(ctx, "田んぼ", ModeWords)
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Equal(t, ModeKanji, res.Mode)
	assert.Equal(t, "田", res.Kanji.Kanji)
	assert.Equal(t, 1, res.MatchLen())

	res, err = d.Search(ctx, "犬", ModeKanji)
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Equal(t, "dog", res.Kanji.English)

	_, err = d.Search(ctx, "山田", ModeNames)
	assert.ErrorIs(t, err, ErrNamesUnavailable)

	d = newTestDictionary(t, Options{})
	res, err = d.Search(ctx, "田んぼ", ModeWords)
	require.NoError(t, err)
	assert.Nil(t, res)
}

func TestMode(t *testing.T) {
	assert.Equal(t, ModeNames, ModeWords.Next())
	assert.Equal(t, ModeKanji, ModeNames.Next())
	assert.Equal(t, ModeWords, ModeKanji.Next())
	assert.Equal(t, "names", ModeNames.String())

	m, err := ParseMode("Kanji")
	require.NoError(t, err)
	assert.Equal(t, ModeKanji, m)

	_, err = ParseMode("radicals")
	assert.Error(t, err)
}

func namesSource() Source {
	b := index.NewBuilder()
	b.Add("山田 [やまだ] /Yamada (s)/", "山田", "やまだ")
	b.Add("山 [やま] /Yama (s)/", "山", "やま")
	return Source{Dict: b.Dict(), Index: b.Index()}
}

func TestNameSearch(t *testing.T) {
	d := New(Config{
		Names: func(context.Context) (Source, error) { return namesSource(), nil },
	})
	assert.False(t, d.NamesLoaded())

	res, err := d.NameSearch(context.Background(), "山田さん", 0)
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.True(t, d.NamesLoaded())
	assert.True(t, res.Names)
	assert.Equal(t, []string{"山田 [やまだ] /Yamada (s)/", "山 [やま] /Yama (s)/"}, records(res))
	assert.Equal(t, 2, res.MatchLen)

	res, err = d.NameSearch(context.Background(), "川", 0)
	require.NoError(t, err)
	assert.Nil(t, res)
}

func TestNameSearch_LoadsOnce(t *testing.T) {
	var calls atomic.Int32
	d := New(Config{
		Names: func(context.Context) (Source, error) {
			calls.Add(1)
			time.Sleep(20 * time.Millisecond)
			return namesSource(), nil
		},
	})

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := d.NameSearch(context.Background(), "山", 0)
			assert.NoError(t, err)
			assert.NotNil(t, res)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
	require.NoError(t, d.LoadNames(context.Background()))
	assert.Equal(t, int32(1), calls.Load())
}

func TestNameSearch_FailedLoadRetries(t *testing.T) {
	errBoom := errors.New("boom")
	var calls atomic.Int32
	d := New(Config{
		Names: func(context.Context) (Source, error) {
			if calls.Add(1) == 1 {
				return Source{}, errBoom
			}
			return namesSource(), nil
		},
	})

	_, err := d.NameSearch(context.Background(), "山", 0)
	require.ErrorIs(t, err, errBoom)
	assert.False(t, d.NamesLoaded())

	res, err := d.NameSearch(context.Background(), "山", 0)
	require.NoError(t, err)
	assert.NotNil(t, res)
	assert.True(t, d.NamesLoaded())
}

func TestNameSearch_CancelledCallerDoesNotFailOthers(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	var calls atomic.Int32
	d := New(Config{
		Names: func(ctx context.Context) (Source, error) {
			if calls.Add(1) == 1 {
				close(started)
			}
			select {
			case <-release:
				return namesSource(), nil
			case <-ctx.Done():
				return Source{}, ctx.Err()
			}
		},
	})

	first, cancel := context.WithCancel(context.Background())
	firstErr := make(chan error, 1)
	go func() {
		_, err := d.NameSearch(first, "山", 0)
		firstErr <- err
	}()
	<-started

	second := make(chan error, 1)
	go func() {
		res, err := d.NameSearch(context.Background(), "山", 0)
		if err == nil && res == nil {
			err = errors.New("no result")
		}
		second <- err
	}()

	cancel()
	assert.ErrorIs(t, <-firstErr, context.Canceled)

	close(release)
	require.NoError(t, <-second)
	assert.True(t, d.NamesLoaded())
	assert.Equal(t, int32(1), calls.Load())
}
