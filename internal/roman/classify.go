package roman

import (
	"math"
	"regexp"
	"strings"
)

var arabicPattern = regexp.MustCompile(`^[0-9]+$`)

// onlyNumeralRunes reports whether every rune is a numeral letter or the
// overline marker.
func onlyNumeralRunes(runes []rune) bool {
	for _, r := range runes {
		if r == Overline {
			continue
		}
		if _, ok := charValue[r]; !ok {
			return false
		}
	}
	return true
}

// LooksLikeRoman reports whether s is non-empty and made only of numeral
// letters (any case) and overline markers once trimmed.
func LooksLikeRoman(s string) bool {
	runes := normalize(s)
	return len(runes) > 0 && onlyNumeralRunes(runes)
}

// LooksLikeArabic reports whether trimmed s is one or more ASCII digits with
// no sign or separators.
func LooksLikeArabic(s string) bool {
	return arabicPattern.MatchString(strings.TrimSpace(s))
}

// IsValid reports whether s is a canonical numeral: it must decode to a value
// in 1..3,999,999 whose marked re-encoding equals the normalized input.
func IsValid(s string) bool {
	runes := normalize(s)
	if len(runes) == 0 || !onlyNumeralRunes(runes) {
		return false
	}

	normalized := string(runes)
	value := Decode(normalized)
	if value < MinValue || value > MaxValue {
		return false
	}
	return strings.ToUpper(EncodeMarked(value)) == normalized
}

// StripOverlines removes every overline marker from s.
func StripOverlines(s string) string {
	return strings.ReplaceAll(s, string(Overline), "")
}

// ParseLeadingInt parses an optional sign followed by decimal digits at the
// start of trimmed s, ignoring whatever follows ("12abc" is 12). ok is false
// when no digit is found. Values beyond the int range saturate.
func ParseLeadingInt(s string) (n int, ok bool) {
	s = strings.TrimSpace(s)
	neg := false
	if s != "" && (s[0] == '+' || s[0] == '-') {
		neg = s[0] == '-'
		s = s[1:]
	}

	digits := 0
	for digits < len(s) && s[digits] >= '0' && s[digits] <= '9' {
		d := int(s[digits] - '0')
		if n > (math.MaxInt-d)/10 {
			n = math.MaxInt
		} else {
			n = n*10 + d
		}
		digits++
	}
	if digits == 0 {
		return 0, false
	}
	if neg {
		n = -n
	}
	return n, true
}
