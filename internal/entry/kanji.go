package entry

import (
	"regexp"
	"strings"
)

// kanjiFields is the number of '|' separated fields in a kanji record.
const kanjiFields = 6

// codePattern splits a reference code token into its letters and value.
var codePattern = regexp.MustCompile(`^([A-Z]+)(.*)`)

// KanjiEntry is a parsed kanji record with derived data attached by the
// dictionary.
type KanjiEntry struct {
	Kanji                 string
	ReferenceCodes        map[string]string
	OnKun                 []string
	NameReadings          []string
	RadicalPronunciations []string
	English               string

	RadicalChar string
	Components  []Component
	Mandarin    []string // numbered readings, set when the record has no Y code
}

// Code returns the value of a reference code, or "" if absent.
func (e *KanjiEntry) Code(abbrev string) string {
	return e.ReferenceCodes[abbrev]
}

// ParseKanji parses "kanji|codes|onkun|nanori|radical names|english".
func ParseKanji(record string) (KanjiEntry, error) {
	f := strings.Split(record, "|")
	if len(f) != kanjiFields {
		return KanjiEntry{}, ErrMalformedRecord
	}

	return KanjiEntry{
		Kanji:                 f[0],
		ReferenceCodes:        ParseCodes(f[1]),
		OnKun:                 strings.Fields(f[2]),
		NameReadings:          strings.Fields(f[3]),
		RadicalPronunciations: strings.Fields(f[4]),
		English:               f[5],
	}, nil
}

// ParseCodes tokenises a whitespace separated reference code string such as
// "B94 G8 S11 Ymao1 Ymao2". Repeated codes are joined with two spaces.
func ParseCodes(s string) map[string]string {
	codes := make(map[string]string)
	for _, tok := range strings.Fields(s) {
		m := codePattern.FindStringSubmatch(tok)
		if m == nil {
			continue
		}
		if prev, ok := codes[m[1]]; ok {
			codes[m[1]] = prev + "  " + m[2]
		} else {
			codes[m[1]] = m[2]
		}
	}
	return codes
}
