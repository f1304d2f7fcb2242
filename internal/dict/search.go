package dict

import (
	"context"
	"fmt"
	"strings"

	"github.com/f3rmion/yomi/internal/entry"
)

// Mode selects which dictionary Search consults.
type Mode int

const (
	ModeWords Mode = iota
	ModeNames
	ModeKanji
)

var modeNames = [...]string{"words", "names", "kanji"}

func (m Mode) String() string {
	if m < 0 || int(m) >= len(modeNames) {
		return fmt.Sprintf("Mode(%d)", int(m))
	}
	return modeNames[m]
}

// Next returns the mode that follows m: words, names, kanji, words.
func (m Mode) Next() Mode {
	return (m + 1) % Mode(len(modeNames))
}

// ParseMode parses a mode name.
func ParseMode(s string) (Mode, error) {
	for i, name := range modeNames {
		if strings.EqualFold(s, name) {
			return Mode(i), nil
		}
	}
	return ModeWords, fmt.Errorf("unknown search mode %q", s)
}

// Result is the outcome of Search. Exactly one of Words and Kanji is set.
type Result struct {
	Mode  Mode
	Words *LookupResult
	Kanji *entry.KanjiEntry
}

// MatchLen returns the number of runes of the searched text covered by the
// result.
func (r *Result) MatchLen() int {
	if r.Kanji != nil {
		return 1
	}
	return r.Words.MatchLen
}

// Search runs the lookup for mode. In words mode, when nothing matches and
// kanji fallback is enabled, the first character is looked up as a kanji.
// A nil result with a nil error means nothing matched.
func (d *Dictionary) Search(ctx context.Context, text string, mode Mode) (*Result, error) {
	switch mode {
	case ModeWords:
		if res := d.WordSearch(text, 0); res != nil {
			return &Result{Mode: ModeWords, Words: res}, nil
		}
		if d.kanjiFallback {
			if k := d.KanjiSearch(text); k != nil {
				return &Result{Mode: ModeKanji, Kanji: k}, nil
			}
		}
		return nil, nil
	case ModeNames:
		res, err := d.NameSearch(ctx, text, 0)
		if err != nil || res == nil {
			return nil, err
		}
		return &Result{Mode: ModeNames, Words: res}, nil
	case ModeKanji:
		if k := d.KanjiSearch(text); k != nil {
			return &Result{Mode: ModeKanji, Kanji: k}, nil
		}
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown search mode %d", int(mode))
	}
}
