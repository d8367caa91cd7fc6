package roman

// Overline is the combining overline (U+0305). It trails the letter it
// multiplies by 1000.
const Overline = '\u0305'

// Domain bounds.
const (
	MinValue = 1
	MaxPlain = 3999
	MaxValue = 3_999_999
)

// vinculumFactor is the multiplier carried by an overlined letter.
const vinculumFactor = 1000

// Symbol is one entry of an encoding table.
type Symbol struct {
	Value    int
	Numeral  string
	Overline bool
}

// standard is ordered from highest to lowest value; the greedy encoder
// depends on that order.
var standard = []Symbol{
	{1000, "M", false},
	{900, "CM", false},
	{500, "D", false},
	{400, "CD", false},
	{100, "C", false},
	{90, "XC", false},
	{50, "L", false},
	{40, "XL", false},
	{10, "X", false},
	{9, "IX", false},
	{5, "V", false},
	{4, "IV", false},
	{1, "I", false},
}

// extended holds the vinculum band (4000 and up, overlined) followed by the
// plain band. The bands never interleave: the plain band tops out at 1000.
var extended = buildExtended()

func buildExtended() []Symbol {
	out := make([]Symbol, 0, 25)
	for _, s := range standard {
		// I̅ would be 1000, which plain M already covers.
		if s.Value == 1 {
			continue
		}
		out = append(out, Symbol{Value: s.Value * vinculumFactor, Numeral: s.Numeral, Overline: true})
	}
	return append(out, standard...)
}

var charValue = map[rune]int{
	'I': 1,
	'V': 5,
	'X': 10,
	'L': 50,
	'C': 100,
	'D': 500,
	'M': 1000,
}

// Standard returns a copy of the 13-entry plain table.
func Standard() []Symbol {
	out := make([]Symbol, len(standard))
	copy(out, standard)
	return out
}

// Extended returns a copy of the 25-entry vinculum table.
func Extended() []Symbol {
	out := make([]Symbol, len(extended))
	copy(out, extended)
	return out
}

// CharValue reports the plain value of a single upper-case numeral letter.
func CharValue(r rune) (int, bool) {
	v, ok := charValue[r]
	return v, ok
}
