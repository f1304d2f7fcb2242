package dict

// Segment is one matched piece of a translated text. Offset and Length are
// in runes of the original text.
type Segment struct {
	Match
	Offset int
	Length int
}

// TranslateResult is the segmentation of a text into dictionary words.
type TranslateResult struct {
	Segments []Segment

	// More is set when the text holds further matches past the segment
	// budget.
	More bool

	// TextLen is the number of runes consumed.
	TextLen int
}

// Translate splits text into consecutive best matches. At each position the
// single best word match is taken and the cursor advances by its length, or
// by one rune when nothing matches. It returns nil when no segment matched.
func (d *Dictionary) Translate(text string) *TranslateResult {
	runes := []rune(text)
	res := &TranslateResult{}

	pos := 0
	for pos < len(runes) {
		m := d.lookup(string(runes[pos:]), d.words, 1, true)
		if m == nil {
			pos++
			continue
		}
		if len(res.Segments) >= d.maxTranslate {
			res.More = true
			break
		}

		res.Segments = append(res.Segments, Segment{
			Match:  m.Matches[0],
			Offset: pos,
			Length: m.MatchLen,
		})
		pos += max(m.MatchLen, 1)
	}
	res.TextLen = pos

	if len(res.Segments) == 0 {
		return nil
	}
	return res
}
