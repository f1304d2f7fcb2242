package deinflect

import (
	"unicode/utf8"
)

// Candidate is one hypothesis for the dictionary form of a word.
type Candidate struct {
	Word   string
	Type   uint16
	Reason string
}

// Deinflect expands word into every base form reachable through the rule
// table. The first candidate is always word itself with Type AnyType and an
// empty reason. Newly produced candidates are themselves expanded, so rules
// chain ("potential or passive < past").
//
// A word reached twice keeps its first reason; the second rule only widens
// its class mask.
func (t *Table) Deinflect(word string) []Candidate {
	results := []Candidate{{Word: word, Type: AnyType}}
	seen := map[string]int{word: 0}

	for i := 0; i < len(results); i++ {
		cur := results[i]
		runes := []rune(cur.Word)

		for _, g := range t.Groups {
			if g.FromLen > len(runes) {
				continue
			}
			tail := string(runes[len(runes)-g.FromLen:])
			head := string(runes[:len(runes)-g.FromLen])

			for _, rule := range g.Rules {
				if cur.Type&rule.InputMask() == 0 || tail != rule.From {
					continue
				}
				newWord := head + rule.To
				if utf8.RuneCountInString(newWord) <= 1 {
					continue
				}

				if idx, ok := seen[newWord]; ok {
					results[idx].Type |= rule.OutputMask()
					continue
				}

				reason := t.Reasons[rule.Reason]
				if cur.Reason != "" {
					reason += " < " + cur.Reason
				}
				seen[newWord] = len(results)
				results = append(results, Candidate{
					Word:   newWord,
					Type:   rule.OutputMask(),
					Reason: reason,
				})
			}
		}
	}

	return results
}
