package dict

import (
	"testing"

	"github.com/f3rmion/yomi/internal/entry"
	"github.com/f3rmion/yomi/internal/index"
)

// testWords are word records with their index keys. Keys are in the
// normalized (hiragana) form used by lookups.
var testWords = []struct {
	record string
	keys   []string
}{
	{"犬 [いぬ] /(n) dog/(P)/", []string{"犬", "いぬ"}},
	{"猫 [ねこ] /(n) cat/(P)/", []string{"猫", "ねこ"}},
	{"好き [すき] /(adj-na,n) liked/(P)/", []string{"好き", "すき"}},
	{"です /(cop) be/(P)/", []string{"です"}},
	{"は /(prt) topic marker/", []string{"は"}},
	{"が /(prt) subject marker/", []string{"が"}},
	{"食べる [たべる] /(v1,vt) to eat/(P)/", []string{"食べる", "たべる"}},
	{"食 [しょく] /(n) food/", []string{"食", "しょく"}},
	{"書く [かく] /(v5k,vt) to write/(P)/", []string{"書く", "かく"}},
	{"高い [たかい] /(adj-i) high/(P)/", []string{"高い", "たかい"}},
	{"高 [こう] /(n) high school/", []string{"高", "こう"}},
	{"蓮 [はす] /(n) lotus/", []string{"蓮", "はす"}},
	{"ガーデン /(n) garden/", []string{"がーでん"}},
}

const testKanji = "犬|B94 G1 S4 Yquan3|ケン いぬ|||dog\n" +
	"猫|B94 G8 S11 H2023 L1788 Ymao1 Ymao2|ビョウ ねこ|||cat\n" +
	"田|B102 G1 S5|デン た|||rice field\n" +
	"马|B187|||horse\n"

func buildSource(t *testing.T, words []struct {
	record string
	keys   []string
}) Source {
	t.Helper()
	b := index.NewBuilder()
	for _, w := range words {
		b.Add(w.record, w.keys...)
	}
	return Source{Dict: b.Dict(), Index: b.Index()}
}

func testRadicals() entry.Radicals {
	rads := make(entry.Radicals, 187)
	rads[93] = entry.Radical{Component: entry.Component{Radical: "犬", Yomi: "いぬ", English: "dog"}, Members: "犬状"}
	rads[101] = entry.Radical{Component: entry.Component{Radical: "田", Yomi: "た", English: "rice field"}, Members: "田男猫"}
	return rads
}

func newTestDictionary(t *testing.T, opts Options) *Dictionary {
	t.Helper()
	return New(Config{
		Words:    buildSource(t, testWords),
		Kanji:    testKanji,
		Radicals: testRadicals(),
		Options:  opts,
	})
}

func records(res *LookupResult) []string {
	if res == nil {
		return nil
	}
	out := make([]string, len(res.Matches))
	for i, m := range res.Matches {
		out[i] = m.Record
	}
	return out
}
