package convert

import (
	"testing"

	"github.com/bneradt/roman.brianneradt.com/internal/roman"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvert_Empty(t *testing.T) {
	for _, in := range []string{"", "   ", "\t\n"} {
		assert.Equal(t, KindEmpty, Convert(in, ModeAuto).Kind, "%q", in)
	}
}

func TestConvert_AutoArabic(t *testing.T) {
	res := Convert(" 1994 ", ModeAuto)
	require.Equal(t, KindSuccess, res.Kind)
	assert.Equal(t, ToRoman, res.Direction)
	assert.Equal(t, 1994, res.Arabic)
	assert.Equal(t, "MCMXCIV", res.Roman)
	assert.Equal(t, "1,994", res.ArabicText())
	assert.True(t, res.Canonical)

	res = Convert("4500", ModeAuto)
	require.Equal(t, KindSuccess, res.Kind)
	assert.Equal(t, roman.EncodeMarked(4500), res.Roman)
	assert.Equal(t, []roman.Segment{{Text: "IV", Overline: true}, {Text: "D", Overline: false}}, res.Segments())
}

func TestConvert_AutoRoman(t *testing.T) {
	res := Convert("mcmxciv", ModeAuto)
	require.Equal(t, KindSuccess, res.Kind)
	assert.Equal(t, ToArabic, res.Direction)
	assert.Equal(t, 1994, res.Arabic)
	assert.Equal(t, "MCMXCIV", res.Roman)
	assert.True(t, res.Canonical)
	assert.Equal(t, "↑", res.Direction.Arrow())
}

func TestConvert_LenientRoman(t *testing.T) {
	res := Convert("IIII", ModeAuto)
	require.Equal(t, KindSuccess, res.Kind)
	assert.Equal(t, 4, res.Arabic)
	assert.False(t, res.Canonical)
	assert.Equal(t, "IV", res.CanonicalForm)
}

func TestConvert_Errors(t *testing.T) {
	tests := []struct {
		in   string
		mode Mode
		want error
	}{
		{"0", ModeAuto, ErrOutOfRange},
		{"4000000", ModeAuto, ErrOutOfRange},
		{"99999999999999999999999", ModeAuto, ErrOutOfRange},
		{"abc", ModeArabic, ErrInvalidNumber},
		{"-3", ModeArabic, ErrOutOfRange},
		{"hello", ModeAuto, ErrUnrecognized},
		{"12a3", ModeAuto, ErrUnrecognized},
		{"1.5", ModeAuto, ErrUnrecognized},
		{"XIVQ", ModeRoman, ErrInvalidRoman},
	}
	for _, tt := range tests {
		res := Convert(tt.in, tt.mode)
		require.Equal(t, KindFailure, res.Kind, "%q", tt.in)
		assert.ErrorIs(t, res.Err, tt.want, "%q", tt.in)
	}
	assert.Equal(t, "Number must be between 1 and 3,999,999", ErrOutOfRange.Error())
}

func TestConvert_ForcedModes(t *testing.T) {
	// Forced arabic parses leading digits only.
	res := Convert("12abc", ModeArabic)
	require.Equal(t, KindSuccess, res.Kind)
	assert.Equal(t, 12, res.Arabic)

	// Digits are not numerals.
	res = Convert("12", ModeRoman)
	assert.ErrorIs(t, res.Err, ErrInvalidRoman)
}

func TestConvert_OverMaxRoman(t *testing.T) {
	o := string(roman.Overline)
	res := Convert("M"+o+"M"+o+"M"+o+"M"+o, ModeAuto)
	require.Equal(t, KindSuccess, res.Kind)
	assert.Equal(t, 4_000_000, res.Arabic)
	assert.False(t, res.Canonical)
	assert.Equal(t, []roman.Segment{{Text: "MMMM", Overline: true}}, res.Segments())
}

func TestMode(t *testing.T) {
	m, err := ParseMode("Roman")
	require.NoError(t, err)
	assert.Equal(t, ModeRoman, m)
	_, err = ParseMode("hex")
	assert.Error(t, err)

	assert.Equal(t, ModeArabic, ModeAuto.Next())
	assert.Equal(t, ModeAuto, ModeRoman.Next())
	assert.Equal(t, "Auto-detect", ModeAuto.Label())
	assert.Contains(t, ModeRoman.Placeholder(), "MCMXCIV")
}

func TestExamplesConvert(t *testing.T) {
	for _, ex := range Examples() {
		assert.Equal(t, KindSuccess, Convert(ex, ModeAuto).Kind, ex)
	}
}
