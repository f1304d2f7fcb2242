package dict

import (
	"fmt"
	"unicode/utf8"

	"github.com/f3rmion/yomi/internal/entry"
	"github.com/f3rmion/yomi/internal/index"
)

// kanjiFirst is the lowest code point considered for kanji lookup.
const kanjiFirst = 0x3000

// KanjiSearch returns the kanji entry for the first character of text, or
// nil when the character is not in the kanji dictionary or its record is
// malformed.
func (d *Dictionary) KanjiSearch(text string) *entry.KanjiEntry {
	r, size := utf8.DecodeRuneInString(text)
	if size == 0 || r < kanjiFirst {
		return nil
	}
	ch := string(r)

	line, ok := index.FindLine(d.kanji, ch+"|")
	if !ok {
		return nil
	}
	e, err := entry.ParseKanji(line)
	if err != nil {
		d.log.Debug("skipping kanji record", "kanji", ch, "error", err)
		return nil
	}

	e.ReferenceCodes["U"] = fmt.Sprintf("%X", r)
	d.radicals.Attach(&e)
	if e.Code("Y") == "" {
		e.Mandarin = d.pinyin.Numbered(ch)
	}
	return &e
}
