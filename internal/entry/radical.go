package entry

import (
	"strconv"
	"strings"
)

// Component is a radical that appears in a kanji.
type Component struct {
	Radical string
	Yomi    string
	English string
}

// Radical is one line of the radicals table:
// "radical\tvariant\tyomi\tenglish\tmember kanji".
type Radical struct {
	Component
	Variant string
	Members string
}

// ParseRadical parses a radicals table line.
func ParseRadical(line string) (Radical, bool) {
	f := strings.Split(line, "\t")
	if len(f) < 4 {
		return Radical{}, false
	}
	r := Radical{
		Component: Component{Radical: f[0], Yomi: f[2], English: f[3]},
		Variant:   f[1],
	}
	if len(f) > 4 {
		r.Members = f[4]
	}
	return r, true
}

// Radicals is the radicals table, indexed by Bushu number minus one.
type Radicals []Radical

// ParseRadicals parses a radicals file body. Malformed lines keep their
// position as empty radicals so Bushu numbers stay aligned.
func ParseRadicals(data string) Radicals {
	data = strings.TrimRight(data, "\n")
	if data == "" {
		return nil
	}
	lines := strings.Split(data, "\n")
	rads := make(Radicals, len(lines))
	for i, l := range lines {
		rads[i], _ = ParseRadical(strings.TrimRight(l, "\r"))
	}
	return rads
}

// Attach fills RadicalChar and Components of e from its B (Bushu) code. The
// Bushu radical comes first, followed by every other radical whose member
// list contains the kanji.
func (rads Radicals) Attach(e *KanjiEntry) {
	bushu := -1
	if b, err := strconv.Atoi(e.Code("B")); err == nil && b >= 1 && b <= len(rads) {
		bushu = b - 1
		e.RadicalChar = rads[bushu].Radical
		e.Components = append(e.Components, rads[bushu].Component)
	}
	for i, r := range rads {
		if i == bushu || r.Radical == "" {
			continue
		}
		if strings.Contains(r.Members, e.Kanji) {
			e.Components = append(e.Components, r.Component)
		}
	}
}
