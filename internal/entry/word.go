// Package entry parses word, name and kanji dictionary records.
package entry

import (
	"errors"
	"regexp"
	"strings"
)

// ErrMalformedRecord is returned for a record that does not fit its grammar.
var ErrMalformedRecord = errors.New("malformed record")

// wordPattern is the EDICT record grammar: headword, optional [reading],
// then slash-delimited glosses.
var wordPattern = regexp.MustCompile(`^(.+?)\s+(?:\[(.*?)\])?\s*/([\S\s]+)/`)

// popularMark flags common words in EDICT glosses.
const popularMark = "(P)"

// WordEntry is a parsed word or name record.
type WordEntry struct {
	Headword string
	Reading  string
	Glosses  []string
	Popular  bool
	Raw      string
}

// ParseWord parses an EDICT-style record such as
// "猫 [ねこ] /(n) cat/(P)/".
func ParseWord(record string) (WordEntry, error) {
	m := wordPattern.FindStringSubmatch(record)
	if m == nil {
		return WordEntry{}, ErrMalformedRecord
	}

	e := WordEntry{Headword: m[1], Reading: m[2], Raw: record}
	for _, g := range strings.Split(m[3], "/") {
		if g == popularMark {
			e.Popular = true
			continue
		}
		if g == "" {
			continue
		}
		e.Glosses = append(e.Glosses, g)
	}
	return e, nil
}

// Tags returns the tokens of the parenthesised groups that open a gloss:
// "(n,vs) (uk) study" yields [n vs uk].
func Tags(gloss string) []string {
	var tags []string
	rest := strings.TrimLeft(gloss, " ")
	for strings.HasPrefix(rest, "(") {
		end := strings.IndexByte(rest, ')')
		if end < 0 {
			break
		}
		for _, tok := range strings.Split(rest[1:end], ",") {
			if tok = strings.TrimSpace(tok); tok != "" {
				tags = append(tags, tok)
			}
		}
		rest = strings.TrimLeft(rest[end+1:], " ")
	}
	return tags
}

// StripTags removes the leading parenthesised groups from a gloss.
func StripTags(gloss string) string {
	rest := strings.TrimLeft(gloss, " ")
	for strings.HasPrefix(rest, "(") {
		end := strings.IndexByte(rest, ')')
		if end < 0 {
			break
		}
		rest = strings.TrimLeft(rest[end+1:], " ")
	}
	return rest
}
