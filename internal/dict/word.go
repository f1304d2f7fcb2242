package dict

import (
	"context"
	"strings"

	"github.com/f3rmion/yomi/internal/deinflect"
	"github.com/f3rmion/yomi/internal/index"
	"github.com/f3rmion/yomi/internal/kana"
)

// Match is one accepted dictionary record. Reason describes the
// deinflection that led to it ("< past < たべた"), or is empty.
type Match struct {
	Record string
	Reason string
}

// LookupResult is the outcome of a word or name search.
type LookupResult struct {
	Matches []Match

	// Truncated is set when more records matched than the budget allowed.
	Truncated bool

	// MatchLen is the number of runes of the original text covered by the
	// longest accepted match.
	MatchLen int

	Names bool
}

// WordSearch looks up the longest prefixes of text in the word dictionary,
// deinflecting each prefix. limit <= 0 uses the configured budget. It returns
// nil when nothing matches.
func (d *Dictionary) WordSearch(text string, limit int) *LookupResult {
	if limit <= 0 {
		limit = d.maxWords
	}
	return d.lookup(text, d.words, limit, true)
}

// NameSearch looks up the longest prefixes of text in the names dictionary,
// loading it on first use. Names are not deinflected.
func (d *Dictionary) NameSearch(ctx context.Context, text string, limit int) (*LookupResult, error) {
	src, err := d.names.get(ctx)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = d.maxNames
	}
	res := d.lookup(text, *src, limit, false)
	if res != nil {
		res.Names = true
	}
	return res, nil
}

// lookup is the prefix-shrinking matcher. Starting from the whole
// normalized text it deinflects the current prefix, collects every record
// reachable from the candidates and then drops the last character, until
// the text is used up or the budget is exceeded.
func (d *Dictionary) lookup(text string, src Source, limit int, useRules bool) *LookupResult {
	word, lengths := kana.Normalize(text)
	runes := []rune(word)
	if len(runes) == 0 || src.Empty() {
		return nil
	}

	var (
		res   LookupResult
		cache = make(map[string][]int)
		have  = make(map[int]bool)
	)

shrink:
	for n := len(runes); n > 0; n-- {
		prefix := string(runes[:n])

		var cands []deinflect.Candidate
		if useRules {
			cands = d.rules.Deinflect(prefix)
		} else {
			cands = []deinflect.Candidate{{Word: prefix, Type: deinflect.AnyType}}
		}

		for i, c := range cands {
			offsets, ok := cache[c.Word]
			if !ok {
				offsets = index.Offsets(src.Index, c.Word)
				cache[c.Word] = offsets
			}

			for _, off := range offsets {
				if have[off] {
					continue
				}
				record, ok := index.Record(src.Dict, off)
				if !ok {
					d.log.Debug("index offset out of range", "word", c.Word, "offset", off)
					continue
				}
				if i > 0 && !partOfSpeechMatches(record, c.Type) {
					continue
				}
				if len(res.Matches) >= limit {
					res.Truncated = true
					break shrink
				}

				have[off] = true
				res.MatchLen = max(res.MatchLen, lengths[n])

				var reason string
				if c.Reason != "" {
					reason = "< " + c.Reason
					if n != len(runes) {
						reason += " < " + prefix
					}
				}
				res.Matches = append(res.Matches, Match{Record: record, Reason: reason})
			}
		}
	}

	if len(res.Matches) == 0 {
		return nil
	}
	return &res
}

// partOfSpeechMatches reports whether record carries a part-of-speech tag
// compatible with the word class mask of a deinflected candidate.
func partOfSpeechMatches(record string, typ uint16) bool {
	tokens := strings.FieldsFunc(record, func(r rune) bool {
		return r == ',' || r == '(' || r == ')'
	})
	for i := len(tokens) - 1; i >= 0; i-- {
		t := tokens[i]
		switch {
		case typ&deinflect.Ichidan != 0 && t == "v1",
			typ&deinflect.Godan != 0 && strings.HasPrefix(t, "v5"),
			typ&deinflect.AdjI != 0 && t == "adj-i",
			typ&deinflect.Kuru != 0 && t == "vk",
			typ&deinflect.Suru != 0 && strings.HasPrefix(t, "vs-"):
			return true
		}
	}
	return false
}
