package roman

import "strings"

// Segment is a maximal run of letters that share the same overline status.
type Segment struct {
	Text     string `json:"text"`
	Overline bool   `json:"overline"`
}

// Marked renders the segment with a combining overline after every letter
// when the segment is overlined, or verbatim otherwise.
func (s Segment) Marked() string {
	if !s.Overline {
		return s.Text
	}
	var sb strings.Builder
	sb.Grow(len(s.Text) * 3)
	for _, r := range s.Text {
		sb.WriteRune(r)
		sb.WriteRune(Overline)
	}
	return sb.String()
}

// EncodeSegments converts n (1..3,999,999) to vinculum segments.
// Returns nil when n is out of range.
func EncodeSegments(n int) []Segment {
	if n < MinValue || n > MaxValue {
		return nil
	}

	var segments []Segment
	remaining := n
	for _, sym := range extended {
		for remaining >= sym.Value {
			if last := len(segments) - 1; last >= 0 && segments[last].Overline == sym.Overline {
				segments[last].Text += sym.Numeral
			} else {
				segments = append(segments, Segment{Text: sym.Numeral, Overline: sym.Overline})
			}
			remaining -= sym.Value
		}
	}
	return segments
}

// EncodePlain converts n (1..3999) to a plain numeral.
// Returns "" when n is out of range.
func EncodePlain(n int) string {
	if n < MinValue || n > MaxPlain {
		return ""
	}

	var builder strings.Builder
	for _, sym := range standard {
		for n >= sym.Value {
			n -= sym.Value
			builder.WriteString(sym.Numeral)
		}
	}
	return builder.String()
}

// EncodeMarked converts n (1..3,999,999) to text where every vinculum letter
// is followed by U+0305. Returns "" when n is out of range.
func EncodeMarked(n int) string {
	var sb strings.Builder
	for _, seg := range EncodeSegments(n) {
		sb.WriteString(seg.Marked())
	}
	return sb.String()
}
