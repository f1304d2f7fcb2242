// Package kana folds katakana (full-width and half-width) into hiragana so that
// surface text can be matched against hiragana-keyed dictionary indices.
package kana

const (
	// stopBelow ends normalization: anything at or below the ideographic full
	// stop cannot continue a Japanese word in the dictionary data.
	stopBelow = 0x3002

	fullKatakanaFirst = 0x30A1
	fullKatakanaLast  = 0x30F3
	katakanaOffset    = 0x60

	halfKatakanaFirst = 0xFF66
	halfKatakanaLast  = 0xFF9D

	halfVoicedMark     = 0xFF9E
	halfSemiVoicedMark = 0xFF9F
	fullWidthTilde     = 0xFF5E

	voicedFirst     = 0xFF73
	voicedLast      = 0xFF8E
	semiVoicedFirst = 0xFF8A
	semiVoicedLast  = 0xFF8E
)

// halfToHiragana maps U+FF66..U+FF9D to hiragana.
var halfToHiragana = [56]rune{
	0x3092, 0x3041, 0x3043, 0x3045, 0x3047, 0x3049, 0x3083, 0x3085, 0x3087, 0x3063, 0x30FC, 0x3042, 0x3044, 0x3046,
	0x3048, 0x304A, 0x304B, 0x304D, 0x304F, 0x3051, 0x3053, 0x3055, 0x3057, 0x3059, 0x305B, 0x305D, 0x305F, 0x3061,
	0x3064, 0x3066, 0x3068, 0x306A, 0x306B, 0x306C, 0x306D, 0x306E, 0x306F, 0x3072, 0x3075, 0x3078, 0x307B, 0x307E,
	0x307F, 0x3080, 0x3081, 0x3082, 0x3084, 0x3086, 0x3088, 0x3089, 0x308A, 0x308B, 0x308C, 0x308D, 0x308F, 0x3093,
}

// voiced maps the half-width kana U+FF73..U+FF8E followed by U+FF9E to its
// voiced form. Kana without a voiced form map back to themselves.
var voiced = [28]rune{
	0x30F4, 0xFF74, 0xFF75, 0x304C, 0x304E, 0x3050, 0x3052, 0x3054, 0x3056, 0x3058, 0x305A, 0x305C, 0x305E,
	0x3060, 0x3062, 0x3065, 0x3067, 0x3069, 0xFF85, 0xFF86, 0xFF87, 0xFF88, 0xFF89, 0x3070, 0x3073, 0x3076, 0x3079, 0x307C,
}

// semiVoiced maps ﾊ..ﾎ followed by U+FF9F to ぱ..ぽ.
var semiVoiced = [5]rune{0x3071, 0x3074, 0x3077, 0x307A, 0x307D}

// Normalize converts input to hiragana and returns a length map: lengths[i] is
// the number of input runes consumed to produce the first i runes of the
// result. lengths[0] is always 0.
//
// Scanning stops at the first rune at or below U+3002. Half-width voicing
// marks merge into the preceding kana, so the result can be shorter than the
// consumed input.
func Normalize(input string) (string, []int) {
	var (
		out     []rune
		lengths = []int{0}
		prev    rune
		pos     int
	)

	for _, r := range input {
		pos++
		orig := r
		if r <= stopBelow {
			break
		}

		switch {
		case r >= fullKatakanaFirst && r <= fullKatakanaLast:
			r -= katakanaOffset
		case r >= halfKatakanaFirst && r <= halfKatakanaLast:
			r = halfToHiragana[r-halfKatakanaFirst]
		case r == halfVoicedMark:
			if prev >= voicedFirst && prev <= voicedLast {
				out = out[:len(out)-1]
				r = voiced[prev-voicedFirst]
			}
		case r == halfSemiVoicedMark:
			if prev >= semiVoicedFirst && prev <= semiVoicedLast {
				out = out[:len(out)-1]
				r = semiVoiced[prev-semiVoicedFirst]
			}
		case r == fullWidthTilde:
			prev = 0
			continue
		}

		out = append(out, r)
		if len(out) < len(lengths) {
			lengths[len(out)] = pos
		} else {
			lengths = append(lengths, pos)
		}
		prev = orig
	}

	return string(out), lengths
}

// ToHiragana is Normalize without the length map.
func ToHiragana(input string) string {
	s, _ := Normalize(input)
	return s
}
