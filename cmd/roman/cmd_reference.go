package main

import (
	"fmt"
	"strings"

	"github.com/bneradt/roman.brianneradt.com/internal/reference"

	"github.com/spf13/cobra"
)

var (
	referenceRaw      bool
	referenceSections []string
	referenceWidth    int
)

// referenceCmd prints the reference sheet
var referenceCmd = &cobra.Command{
	Use:   "reference",
	Short: "Show the Roman numeral reference sheet",
	Long: `Prints the reference sheet rendered for the terminal.

Sections: ` + strings.Join(reference.SectionIDs(), ", "),
	RunE: runReference,
}

func init() {
	referenceCmd.Flags().BoolVar(&referenceRaw, "raw", false, "Print markdown without rendering")
	referenceCmd.Flags().StringSliceVarP(&referenceSections, "section", "s", nil, "Only expand these sections")
	referenceCmd.Flags().IntVar(&referenceWidth, "width", 80, "Word wrap width")
}

func runReference(cmd *cobra.Command, args []string) error {
	var open map[string]bool
	if len(referenceSections) > 0 {
		known := make(map[string]bool)
		for _, id := range reference.SectionIDs() {
			known[id] = true
		}
		open = make(map[string]bool)
		for _, id := range referenceSections {
			if !known[id] {
				return fmt.Errorf("unknown section %q (valid: %s)", id, strings.Join(reference.SectionIDs(), ", "))
			}
			open[id] = true
		}
	}

	md := reference.MarkdownFor(open)
	if referenceRaw {
		fmt.Print(md)
		return nil
	}

	out, err := reference.Render(md, referenceWidth, currentConfig().UI.DarkMode)
	if err != nil {
		return fmt.Errorf("failed to render reference: %w", err)
	}
	fmt.Print(out)
	return nil
}
