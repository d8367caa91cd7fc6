// Package convert implements the free-form converter: one text field that
// accepts either an Arabic number or a Roman numeral and converts it to the
// other notation.
package convert

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bneradt/roman.brianneradt.com/internal/roman"
	"github.com/dustin/go-humanize"
)

// Mode selects how input is interpreted.
type Mode string

const (
	ModeAuto   Mode = "auto"
	ModeArabic Mode = "arabic"
	ModeRoman  Mode = "roman"
)

var modeOrder = []Mode{ModeAuto, ModeArabic, ModeRoman}

// ParseMode resolves a mode name, case-insensitively.
func ParseMode(s string) (Mode, error) {
	m := Mode(strings.ToLower(strings.TrimSpace(s)))
	for _, cand := range modeOrder {
		if m == cand {
			return m, nil
		}
	}
	return "", fmt.Errorf("unknown input mode %q (valid: %v)", s, modeOrder)
}

// Next cycles auto -> arabic -> roman -> auto.
func (m Mode) Next() Mode {
	for i, cand := range modeOrder {
		if cand == m {
			return modeOrder[(i+1)%len(modeOrder)]
		}
	}
	return ModeAuto
}

// Label is the name shown next to the input.
func (m Mode) Label() string {
	switch m {
	case ModeArabic:
		return "Arabic"
	case ModeRoman:
		return "Roman"
	default:
		return "Auto-detect"
	}
}

// Placeholder is the hint shown in an empty input for the mode.
func (m Mode) Placeholder() string {
	switch m {
	case ModeRoman:
		return "Enter Roman numeral (e.g., MCMXCIV)"
	case ModeArabic:
		return "Enter number (e.g., 1994)"
	default:
		return "Enter number or Roman numeral..."
	}
}

// Conversion errors. Their messages are shown to the user as-is.
var (
	ErrInvalidNumber = errors.New("Invalid number")
	ErrOutOfRange    = errors.New("Number must be between 1 and 3,999,999")
	ErrInvalidRoman  = errors.New("Invalid Roman numeral")
	ErrUnrecognized  = errors.New("Enter a number (1-3,999,999) or Roman numeral")
)

// Kind is the outcome class of a conversion.
type Kind int

const (
	KindEmpty Kind = iota
	KindSuccess
	KindFailure
)

// Direction tells which notation the input was in.
type Direction int

const (
	ToRoman Direction = iota
	ToArabic
)

// Arrow is the glyph drawn between the two notations.
func (d Direction) Arrow() string {
	if d == ToRoman {
		return "↓"
	}
	return "↑"
}

// Result is the outcome of Convert.
type Result struct {
	Kind      Kind
	Direction Direction
	Arabic    int
	// Roman is the marked numeral: the encoding for Arabic input, the
	// upper-cased input for Roman input.
	Roman string
	// Canonical is false when Roman input decoded leniently (e.g. "IIII").
	Canonical bool
	// CanonicalForm is the encoder's spelling of Arabic.
	CanonicalForm string
	Err           error
}

// Segments returns the numeral split into overline runs for display.
// Values of 4000 and above use the encoder's segments when they are in the
// encodable range.
func (r Result) Segments() []roman.Segment {
	if r.Kind != KindSuccess {
		return nil
	}
	if r.Arabic >= 4000 {
		if segs := roman.EncodeSegments(r.Arabic); segs != nil {
			return segs
		}
	}
	return roman.ParseMarked(r.Roman)
}

// ArabicText is Arabic with thousands separators.
func (r Result) ArabicText() string {
	return humanize.Comma(int64(r.Arabic))
}

// Convert interprets input according to mode.
func Convert(input string, mode Mode) Result {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return Result{Kind: KindEmpty}
	}

	var isRoman, isArabic bool
	switch mode {
	case ModeRoman:
		isRoman = true
	case ModeArabic:
		isArabic = true
	default:
		isRoman = roman.LooksLikeRoman(trimmed)
		isArabic = roman.LooksLikeArabic(trimmed)
	}

	switch {
	case isArabic:
		return fromArabic(trimmed)
	case isRoman:
		return fromRoman(trimmed)
	default:
		return failure(ErrUnrecognized)
	}
}

func fromArabic(text string) Result {
	n, ok := roman.ParseLeadingInt(text)
	if !ok {
		return failure(ErrInvalidNumber)
	}
	if n < roman.MinValue || n > roman.MaxValue {
		return failure(ErrOutOfRange)
	}
	marked := roman.EncodeMarked(n)
	return Result{
		Kind:          KindSuccess,
		Direction:     ToRoman,
		Arabic:        n,
		Roman:         marked,
		Canonical:     true,
		CanonicalForm: marked,
	}
}

func fromRoman(text string) Result {
	n := roman.Decode(text)
	if n == 0 {
		return failure(ErrInvalidRoman)
	}
	return Result{
		Kind:          KindSuccess,
		Direction:     ToArabic,
		Arabic:        n,
		Roman:         strings.ToUpper(text),
		Canonical:     roman.IsValid(text),
		CanonicalForm: roman.EncodeMarked(n),
	}
}

func failure(err error) Result {
	return Result{Kind: KindFailure, Err: err}
}

// Examples are the quick-pick inputs offered next to the converter.
func Examples() []string {
	return []string{"1994", "2024", "MCMXCIV", "4000", "1000000"}
}
