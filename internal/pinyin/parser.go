// Package pinyin supplies Mandarin readings for kanji that carry no PinYin
// reference code in the kanji dictionary.
package pinyin

import (
	"strconv"
	"strings"

	gopinyin "github.com/mozillazg/go-pinyin"
)

// Parser converts Han characters to pinyin.
type Parser struct {
	args gopinyin.Args
}

// NewParser creates a new pinyin parser.
func NewParser() *Parser {
	args := gopinyin.NewArgs()
	args.Style = gopinyin.Tone // Returns tone marks: zhōng
	args.Heteronym = true      // Return all possible readings
	return &Parser{args: args}
}

// Readings returns all tone-marked readings for a single character.
func (p *Parser) Readings(char string) []string {
	result := gopinyin.Pinyin(char, p.args)
	if len(result) == 0 {
		return nil
	}
	return result[0]
}

// Numbered returns the readings of char in the numbered form used by the
// kanji dictionary's Y code ("ya4"). It returns nil for non-Han characters.
func (p *Parser) Numbered(char string) []string {
	readings := p.Readings(char)
	if len(readings) == 0 {
		return nil
	}
	out := make([]string, len(readings))
	for i, r := range readings {
		out[i] = ToNumbered(r)
	}
	return out
}

var toneMarks = map[rune]struct {
	base rune
	tone int
}{
	'ā': {'a', 1}, 'á': {'a', 2}, 'ǎ': {'a', 3}, 'à': {'a', 4},
	'ē': {'e', 1}, 'é': {'e', 2}, 'ě': {'e', 3}, 'è': {'e', 4},
	'ī': {'i', 1}, 'í': {'i', 2}, 'ǐ': {'i', 3}, 'ì': {'i', 4},
	'ō': {'o', 1}, 'ó': {'o', 2}, 'ǒ': {'o', 3}, 'ò': {'o', 4},
	'ū': {'u', 1}, 'ú': {'u', 2}, 'ǔ': {'u', 3}, 'ù': {'u', 4},
	'ǖ': {'ü', 1}, 'ǘ': {'ü', 2}, 'ǚ': {'ü', 3}, 'ǜ': {'ü', 4},
}

// ToNumbered converts a tone-marked syllable to tone-number form: "zhōng"
// becomes "zhong1". Syllables without a mark get the neutral tone 5.
func ToNumbered(syllable string) string {
	tone := 5
	var b strings.Builder
	for _, r := range syllable {
		if mark, ok := toneMarks[r]; ok {
			b.WriteRune(mark.base)
			tone = mark.tone
			continue
		}
		b.WriteRune(r)
	}
	return b.String() + strconv.Itoa(tone)
}
