// Package render formats lookup results as plain text or HTML.
package render

import (
	"strings"

	"github.com/f3rmion/yomi/internal/dict"
	"github.com/f3rmion/yomi/internal/entry"
)

// Options control what the renderers show.
type Options struct {
	HidePOS     bool
	HidePopular bool

	// KanjiInfo lists the reference codes shown for kanji, in order.
	// Nil shows DefaultKanjiInfo.
	KanjiInfo []string
}

// Word is a display-ready word or name entry.
type Word struct {
	Headword string
	Reading  string
	Gloss    string
	Reason   string
}

// Words converts the matches of res to display entries. Records that do not
// parse are skipped.
func Words(res *dict.LookupResult, opts Options) []Word {
	if res == nil {
		return nil
	}
	out := make([]Word, 0, len(res.Matches))
	for _, m := range res.Matches {
		e, err := entry.ParseWord(m.Record)
		if err != nil {
			continue
		}
		out = append(out, Word{
			Headword: e.Headword,
			Reading:  e.Reading,
			Gloss:    Gloss(e, opts),
			Reason:   m.Reason,
		})
	}
	return out
}

// Gloss joins the glosses of e with "; ".
func Gloss(e entry.WordEntry, opts Options) string {
	parts := make([]string, 0, len(e.Glosses)+1)
	for _, g := range e.Glosses {
		if opts.HidePOS {
			g = entry.StripTags(g)
		}
		if g != "" {
			parts = append(parts, g)
		}
	}
	if e.Popular && !opts.HidePopular {
		parts = append(parts, "(P)")
	}
	return strings.Join(parts, "; ")
}

// Text renders a word or name lookup, one entry per line:
// "headword（reading）\tglosses", followed by "\treason" when deinflected.
func Text(res *dict.LookupResult, opts Options) string {
	var b strings.Builder
	for _, w := range Words(res, opts) {
		writeWord(&b, w)
		b.WriteByte('\n')
	}
	if res != nil && res.Truncated {
		b.WriteString("...\n")
	}
	return b.String()
}

func writeWord(b *strings.Builder, w Word) {
	b.WriteString(w.Headword)
	if w.Reading != "" {
		b.WriteString("（")
		b.WriteString(w.Reading)
		b.WriteString("）")
	}
	b.WriteByte('\t')
	b.WriteString(w.Gloss)
	if w.Reason != "" {
		b.WriteByte('\t')
		b.WriteString(w.Reason)
	}
}

// TranslateText renders a translation of text, one segment per line,
// prefixed by the matched surface text.
func TranslateText(text string, res *dict.TranslateResult, opts Options) string {
	if res == nil {
		return ""
	}
	runes := []rune(text)

	var b strings.Builder
	for _, seg := range res.Segments {
		e, err := entry.ParseWord(seg.Record)
		if err != nil {
			continue
		}
		end := min(seg.Offset+seg.Length, len(runes))
		b.WriteString(string(runes[seg.Offset:end]))
		b.WriteByte('\t')
		writeWord(&b, Word{
			Headword: e.Headword,
			Reading:  e.Reading,
			Gloss:    Gloss(e, opts),
			Reason:   seg.Reason,
		})
		b.WriteByte('\n')
	}
	if res.More {
		b.WriteString("...\n")
	}
	return b.String()
}

// Result renders a dict.Result as text.
func Result(res *dict.Result, opts Options) string {
	switch {
	case res == nil:
		return ""
	case res.Kanji != nil:
		return KanjiText(res.Kanji, opts)
	default:
		return Text(res.Words, opts)
	}
}
