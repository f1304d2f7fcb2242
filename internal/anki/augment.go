package anki

import (
	"context"
	"fmt"
	"html"
	"regexp"
	"strings"

	"github.com/f3rmion/yomi/internal/dict"
	"github.com/f3rmion/yomi/internal/render"
)

var (
	tagPattern   = regexp.MustCompile(`(?s)<[^>]*>`)
	soundPattern = regexp.MustCompile(`\[sound:[^\]]*\]`)
)

// StripHTML removes markup and media references from a field value.
func StripHTML(s string) string {
	s = soundPattern.ReplaceAllString(s, "")
	s = tagPattern.ReplaceAllString(s, "")
	return strings.TrimSpace(html.UnescapeString(s))
}

// Searcher looks up words. *dict.Dictionary implements it.
type Searcher interface {
	WordSearch(text string, limit int) *dict.LookupResult
}

// AugmentOptions configure Augment.
type AugmentOptions struct {
	// Field names the note field that is looked up.
	Field string

	// Overwrite replaces lookup fields that already hold a value.
	Overwrite bool

	Render render.Options
}

// AugmentStats counts what Augment did.
type AugmentStats struct {
	Notes   int // notes whose model has the field
	Matched int
	Skipped int // already augmented
}

// Augment looks up the field of every note that has it and stores the best
// match in the lookup fields.
func Augment(ctx context.Context, pkg *Package, s Searcher, opts AugmentOptions) (AugmentStats, error) {
	var stats AugmentStats
	if opts.Field == "" {
		return stats, fmt.Errorf("no field to look up")
	}

	prepared := make(map[int64]bool)
	for _, note := range pkg.Notes {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		if !hasField(pkg.GetModel(note), opts.Field) {
			continue
		}
		stats.Notes++

		if !prepared[note.ModelID] {
			if err := pkg.AddLookupFields(note.ModelID); err != nil {
				return stats, err
			}
			prepared[note.ModelID] = true
		}

		if !opts.Overwrite && pkg.GetFieldValue(note, FieldMeaning) != "" {
			stats.Skipped++
			continue
		}

		data, ok := lookupNote(s, StripHTML(pkg.GetFieldValue(note, opts.Field)), opts.Render)
		if !ok {
			continue
		}
		if err := pkg.SetNoteLookup(note, data); err != nil {
			return stats, err
		}
		stats.Matched++
	}

	return stats, nil
}

func lookupNote(s Searcher, text string, opts render.Options) (LookupData, bool) {
	if text == "" {
		return LookupData{}, false
	}
	words := render.Words(s.WordSearch(text, 1), opts)
	if len(words) == 0 {
		return LookupData{}, false
	}

	w := words[0]
	reading := w.Reading
	if reading == "" {
		reading = w.Headword
	}
	return LookupData{
		Reading:    reading,
		Meaning:    w.Gloss,
		Inflection: strings.TrimPrefix(w.Reason, "< "),
	}, true
}

func hasField(m *Model, name string) bool {
	if m == nil {
		return false
	}
	for _, f := range m.Fields {
		if strings.EqualFold(f.Name, name) {
			return true
		}
	}
	return false
}
