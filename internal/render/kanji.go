package render

import (
	"strings"

	"github.com/f3rmion/yomi/internal/entry"
)

// CodeLabel names a kanji reference code.
type CodeLabel struct {
	Code  string
	Label string
}

// KanjiCodes lists the known reference codes in display order.
var KanjiCodes = []CodeLabel{
	{"H", "Halpern"},
	{"L", "Heisig"},
	{"E", "Henshall"},
	{"DK", "Kanji Learners Dictionary"},
	{"N", "Nelson"},
	{"V", "New Nelson"},
	{"Y", "PinYin"},
	{"P", "Skip Pattern"},
	{"IN", "Tuttle Kanji & Kana"},
	{"I", "Tuttle Kanji Dictionary"},
	{"U", "Unicode"},
}

// DefaultKanjiInfo shows every known code.
var DefaultKanjiInfo = func() []string {
	codes := make([]string, len(KanjiCodes))
	for i, c := range KanjiCodes {
		codes[i] = c.Code
	}
	return codes
}()

// KanjiRow is one reference code row.
type KanjiRow struct {
	Label string
	Value string
}

// Kanji is a display-ready kanji entry.
type Kanji struct {
	Kanji       string
	English     string
	Readings    string
	Nanori      string
	RadicalName string
	Radical     string
	Components  []entry.Component
	Rows        []KanjiRow
}

// KanjiView prepares e for display.
func KanjiView(e *entry.KanjiEntry, opts Options) Kanji {
	k := Kanji{
		Kanji:       e.Kanji,
		English:     e.English,
		Readings:    readings(e.OnKun),
		Nanori:      strings.Join(e.NameReadings, "、"),
		RadicalName: strings.Join(e.RadicalPronunciations, "、"),
		Radical:     e.RadicalChar,
		Components:  e.Components,
	}
	if k.English == "" {
		k.English = "-"
	}

	info := opts.KanjiInfo
	if info == nil {
		info = DefaultKanjiInfo
	}
	for _, code := range info {
		label := codeLabel(code)
		if label == "" {
			continue
		}
		v := e.Code(code)
		if v == "" && code == "Y" {
			v = strings.Join(e.Mandarin, "  ")
		}
		if v == "" {
			v = "-"
		}
		k.Rows = append(k.Rows, KanjiRow{Label: label, Value: v})
	}
	return k
}

// readings joins on and kun readings, showing the okurigana after the dot
// of "つ.ぐ" in brackets: "つ（ぐ）".
func readings(onKun []string) string {
	out := make([]string, len(onKun))
	for i, r := range onKun {
		if stem, tail, ok := strings.Cut(r, "."); ok {
			r = stem + "（" + tail + "）"
		}
		out[i] = r
	}
	return strings.Join(out, "、")
}

func codeLabel(code string) string {
	for _, c := range KanjiCodes {
		if c.Code == code {
			return c.Label
		}
	}
	return ""
}

// KanjiText renders a kanji entry as tab-separated rows.
func KanjiText(e *entry.KanjiEntry, opts Options) string {
	if e == nil {
		return ""
	}
	k := KanjiView(e, opts)

	var b strings.Builder
	b.WriteString(k.Kanji + "\n")
	b.WriteString(k.English + "\n")
	if k.Readings != "" {
		b.WriteString(k.Readings + "\n")
	}
	if k.Nanori != "" {
		b.WriteString("名乗り\t" + k.Nanori + "\n")
	}
	if k.RadicalName != "" {
		b.WriteString("部首名\t" + k.RadicalName + "\n")
	}
	if len(k.Components) > 0 {
		parts := make([]string, len(k.Components))
		for i, c := range k.Components {
			parts[i] = c.Radical + " " + c.Yomi + " " + c.English
		}
		b.WriteString("部首\t" + strings.Join(parts, "; ") + "\n")
	}
	for _, r := range k.Rows {
		b.WriteString(r.Label + "\t" + r.Value + "\n")
	}
	return b.String()
}
