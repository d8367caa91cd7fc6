package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/bneradt/roman.brianneradt.com/internal/convert"
	"github.com/bneradt/roman.brianneradt.com/internal/roman"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	convertMode    string
	encodePlain    bool
	encodeSegments bool
	decodeStrict   bool
	randomDiff     string
	randomMin      int
	randomMax      int
	randomCount    int
)

// convertCmd converts in either direction
var convertCmd = &cobra.Command{
	Use:   "convert [input]",
	Short: "Convert a number or a Roman numeral, detecting which one it is",
	Long: `Converts the input the same way the interactive converter does.

Examples:
  roman convert 1994
  roman convert MCMXCIV
  roman convert --mode roman IIII`,
	Args: cobra.MinimumNArgs(1),
	RunE: runConvert,
}

// encodeCmd encodes an integer
var encodeCmd = &cobra.Command{
	Use:   "encode [number]",
	Short: "Encode an integer as a Roman numeral",
	Long: `Encodes 1..3,999,999 with vinculum overlines (U+0305) above 3,999.

  --plain     restrict to the standard range 1..3,999
  --segments  print the overline segments as JSON`,
	Args: cobra.ExactArgs(1),
	RunE: runEncode,
}

// decodeCmd decodes a numeral
var decodeCmd = &cobra.Command{
	Use:   "decode [numeral]",
	Short: "Decode a Roman numeral to an integer",
	Args:  cobra.ExactArgs(1),
	RunE:  runDecode,
}

// validateCmd checks numerals for canonical form
var validateCmd = &cobra.Command{
	Use:   "validate [numeral...]",
	Short: "Check that numerals are in standard form",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runValidate,
}

// randomCmd draws quiz numbers
var randomCmd = &cobra.Command{
	Use:   "random",
	Short: "Draw random numbers from a difficulty range",
	RunE:  runRandom,
}

func init() {
	convertCmd.Flags().StringVarP(&convertMode, "mode", "m", "", "Input mode: auto, arabic, roman (default from config)")

	encodeCmd.Flags().BoolVar(&encodePlain, "plain", false, "Only allow the standard range 1..3,999")
	encodeCmd.Flags().BoolVar(&encodeSegments, "segments", false, "Print segments as JSON")

	decodeCmd.Flags().BoolVar(&decodeStrict, "strict", false, "Reject numerals that are not in standard form")

	randomCmd.Flags().StringVarP(&randomDiff, "difficulty", "d", "", "Difficulty preset (default from config)")
	randomCmd.Flags().IntVar(&randomMin, "min", 0, "Lower bound, overrides the preset")
	randomCmd.Flags().IntVar(&randomMax, "max", 0, "Upper bound, overrides the preset")
	randomCmd.Flags().IntVarP(&randomCount, "count", "n", 1, "How many numbers to draw")
}

func runConvert(cmd *cobra.Command, args []string) error {
	mode := currentConfig().Mode()
	if convertMode != "" {
		m, err := convert.ParseMode(convertMode)
		if err != nil {
			return err
		}
		mode = m
	}

	input := strings.Join(args, " ")
	res := convert.Convert(input, mode)
	logger.Debug("convert", zap.String("input", input), zap.String("mode", string(mode)))

	switch res.Kind {
	case convert.KindEmpty:
		return convert.ErrUnrecognized
	case convert.KindFailure:
		return res.Err
	}

	if res.Direction == convert.ToRoman {
		fmt.Printf("%s → %s\n", res.ArabicText(), res.Roman)
	} else {
		fmt.Printf("%s → %s\n", res.Roman, res.ArabicText())
	}
	if !res.Canonical {
		if res.CanonicalForm != "" {
			fmt.Printf("Non-standard form. Standard: %s\n", res.CanonicalForm)
		} else {
			fmt.Printf("Beyond the standard range of %s.\n", humanize.Comma(roman.MaxValue))
		}
	}
	return nil
}

// parseInteger accepts a whole decimal number with optional thousands
// separators.
func parseInteger(s string) (int, error) {
	n, err := strconv.Atoi(strings.ReplaceAll(strings.TrimSpace(s), ",", ""))
	if err != nil {
		return 0, convert.ErrInvalidNumber
	}
	return n, nil
}

func runEncode(cmd *cobra.Command, args []string) error {
	n, err := parseInteger(args[0])
	if err != nil {
		return err
	}

	if encodePlain {
		out := roman.EncodePlain(n)
		if out == "" {
			return fmt.Errorf("%d is outside the standard range 1-%s", n, humanize.Comma(roman.MaxPlain))
		}
		fmt.Println(out)
		return nil
	}

	segments := roman.EncodeSegments(n)
	if segments == nil {
		return convert.ErrOutOfRange
	}
	if encodeSegments {
		data, err := json.MarshalIndent(segments, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal segments: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}
	fmt.Println(roman.EncodeMarked(n))
	return nil
}

func runDecode(cmd *cobra.Command, args []string) error {
	n := roman.Decode(args[0])
	if n == 0 {
		return convert.ErrInvalidRoman
	}
	if decodeStrict && !roman.IsValid(args[0]) {
		return fmt.Errorf("%s is not in standard form (expected %s)", args[0], roman.EncodeMarked(n))
	}
	fmt.Println(n)
	return nil
}

var errInvalidNumerals = errors.New("some numerals are not in standard form")

func runValidate(cmd *cobra.Command, args []string) error {
	failed := false
	for _, arg := range args {
		if roman.IsValid(arg) {
			fmt.Printf("VALID    %s = %s\n", arg, humanize.Comma(int64(roman.Decode(arg))))
			continue
		}
		failed = true
		if n := roman.Decode(arg); n > 0 && n <= roman.MaxValue {
			fmt.Printf("INVALID  %s (standard form of %s is %s)\n", arg, humanize.Comma(int64(n)), roman.EncodeMarked(n))
		} else {
			fmt.Printf("INVALID  %s\n", arg)
		}
	}
	if failed {
		return errInvalidNumerals
	}
	return nil
}

func runRandom(cmd *cobra.Command, args []string) error {
	diff := currentConfig().Difficulty()
	if randomDiff != "" {
		d, err := roman.ParseDifficulty(randomDiff)
		if err != nil {
			return err
		}
		diff = d
	}

	r := diff.Range()
	if randomMin > 0 {
		r.Min = randomMin
	}
	if randomMax > 0 {
		r.Max = randomMax
	}
	if r.Min < roman.MinValue || r.Max > roman.MaxValue || r.Min > r.Max {
		return fmt.Errorf("range %d-%d must lie within 1-%s", r.Min, r.Max, humanize.Comma(roman.MaxValue))
	}
	if randomCount < 1 {
		return fmt.Errorf("count must be at least 1")
	}

	for i := 0; i < randomCount; i++ {
		n := roman.RandomInRange(r.Min, r.Max)
		fmt.Printf("%d\t%s\n", n, roman.EncodeMarked(n))
	}
	return nil
}
