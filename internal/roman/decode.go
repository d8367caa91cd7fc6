package roman

import "strings"

// normalize upper-cases and trims s, returning it as runes so the overline
// marker counts as one position.
func normalize(s string) []rune {
	return []rune(strings.ToUpper(strings.TrimSpace(s)))
}

// symbolAt reads the logical symbol starting at i: a letter plus an optional
// trailing overline. width is the number of runes it occupies.
func symbolAt(runes []rune, i int) (value, width int, ok bool) {
	if i >= len(runes) || runes[i] == Overline {
		return 0, 0, false
	}
	v, ok := charValue[runes[i]]
	if !ok {
		return 0, 0, false
	}
	if i+1 < len(runes) && runes[i+1] == Overline {
		return v * vinculumFactor, 2, true
	}
	return v, 1, true
}

// Decode parses a plain or vinculum numeral, case-insensitively.
//
// A symbol smaller than the one after it is subtracted, anything else is
// added. No grouping or repetition rules are enforced, so non-canonical input
// such as "IIII" or "IC" still yields a number. Returns 0 for empty input or
// any character that is neither a numeral letter nor U+0305.
func Decode(s string) int {
	runes := normalize(s)
	if len(runes) == 0 {
		return 0
	}

	total := 0
	i := 0
	for i < len(runes) {
		// Stray marker with no letter in front of it.
		if runes[i] == Overline {
			i++
			continue
		}

		current, width, ok := symbolAt(runes, i)
		if !ok {
			return 0
		}

		next, _, _ := symbolAt(runes, i+width)
		if current < next {
			total -= current
		} else {
			total += current
		}
		i += width
	}
	return total
}
