package roman

// ParseMarked splits marked numeral text into maximal runs of overlined and
// plain letters. It does not validate letters; anything that is not a marker
// is kept as text. Stray markers that follow no letter are dropped.
func ParseMarked(text string) []Segment {
	runes := []rune(text)

	var (
		parts   []Segment
		current []rune
		over    bool
	)
	for i := 0; i < len(runes); {
		r := runes[i]
		if r == Overline {
			i++
			continue
		}

		nextIsOverline := i+1 < len(runes) && runes[i+1] == Overline
		if nextIsOverline != over && len(current) > 0 {
			parts = append(parts, Segment{Text: string(current), Overline: over})
			current = current[:0]
		}

		over = nextIsOverline
		current = append(current, r)
		i++
		if nextIsOverline {
			i++
		}
	}
	if len(current) > 0 {
		parts = append(parts, Segment{Text: string(current), Overline: over})
	}
	return parts
}
