// Package reference builds the Roman numeral reference sheet from the
// encoder's own symbol tables and renders it for the terminal.
package reference

import (
	"fmt"
	"strings"

	"github.com/bneradt/roman.brianneradt.com/internal/roman"

	"github.com/charmbracelet/glamour"
	"github.com/dustin/go-humanize"
)

// Section is one titled block of the reference.
type Section struct {
	ID    string
	Title string
	Body  string // markdown, without the heading
}

// Example is a well-known number with a note.
type Example struct {
	Value int
	Note  string
}

// CommonExamples are listed in the examples section.
var CommonExamples = []Example{
	{1994, "Year 1994"},
	{2024, "Year 2024"},
	{49, "Super Bowl XLIX"},
	{100, "Centennial"},
	{500, "Half millennium"},
	{1000, "Millennium"},
	{3999, "Largest standard"},
	{4000, "Smallest vinculum form"},
	{3_999_999, "Largest with vinculum"},
}

// Sections returns the reference in display order.
func Sections() []Section {
	return []Section{
		{ID: "basic", Title: "Basic Numerals", Body: basicSection()},
		{ID: "subtractive", Title: "Subtractive Notation", Body: subtractiveSection()},
		{ID: "vinculum", Title: "Vinculum (Overline)", Body: vinculumSection()},
		{ID: "rules", Title: "Rules & Tips", Body: rulesSection()},
		{ID: "examples", Title: "Common Examples", Body: examplesSection()},
	}
}

// SectionIDs returns the IDs in display order.
func SectionIDs() []string {
	var ids []string
	for _, s := range Sections() {
		ids = append(ids, s.ID)
	}
	return ids
}

// Markdown returns the whole reference as one markdown document.
func Markdown() string {
	return MarkdownFor(nil)
}

// MarkdownFor renders only the sections whose IDs are in open. A nil map
// renders everything; collapsed sections keep their heading.
func MarkdownFor(open map[string]bool) string {
	var sb strings.Builder
	sb.WriteString("# Roman Numerals Reference\n\n")
	for _, s := range Sections() {
		expanded := open == nil || open[s.ID]
		marker := "▸"
		if expanded {
			marker = "▾"
		}
		fmt.Fprintf(&sb, "## %s %s\n\n", marker, s.Title)
		if expanded {
			sb.WriteString(s.Body)
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

func basicSection() string {
	var sb strings.Builder
	sb.WriteString("The seven basic Roman numeral symbols and their values:\n\n")
	sb.WriteString("| Numeral | Value |\n|---|---:|\n")
	for _, s := range singleLetters(false) {
		fmt.Fprintf(&sb, "| **%s** | %s |\n", s.Numeral, humanize.Comma(int64(s.Value)))
	}
	return sb.String()
}

func subtractiveSection() string {
	var sb strings.Builder
	sb.WriteString("When a smaller numeral appears before a larger one, it is subtracted. ")
	sb.WriteString("This is only used for specific combinations:\n\n")
	sb.WriteString("| Numeral | Value | Meaning |\n|---|---:|---|\n")
	for _, s := range roman.Standard() {
		if len(s.Numeral) != 2 {
			continue
		}
		small, _ := roman.CharValue(rune(s.Numeral[0]))
		large, _ := roman.CharValue(rune(s.Numeral[1]))
		fmt.Fprintf(&sb, "| **%s** | %d | %d - %d |\n", s.Numeral, s.Value, large, small)
	}
	return sb.String()
}

func vinculumSection() string {
	var sb strings.Builder
	sb.WriteString("For numbers 4,000 and above, a line over a numeral (vinculum) ")
	sb.WriteString("multiplies its value by 1,000:\n\n")
	sb.WriteString("| Numeral | Value |\n|---|---:|\n")
	for _, s := range singleLetters(true) {
		seg := roman.Segment{Text: s.Numeral, Overline: true}
		fmt.Fprintf(&sb, "| **%s** | %s |\n", seg.Marked(), humanize.Comma(int64(s.Value)))
	}
	fmt.Fprintf(&sb, "\nExamples: `%s` = 4,000, `%s` = 10,000, `%s` = 1,000,001\n",
		roman.EncodeMarked(4000), roman.EncodeMarked(10_000), roman.EncodeMarked(1_000_001))
	return sb.String()
}

func rulesSection() string {
	rules := []struct{ title, text string }{
		{"Left to right", "Roman numerals are read from left to right, adding values unless subtractive notation applies."},
		{"Maximum repetition", "A numeral can be repeated up to three times in a row (III = 3, XXX = 30, CCC = 300)."},
		{"V, L, D never repeat", "These numerals (5, 50, 500) are never repeated as adding them would equal the next higher numeral."},
		{"Subtractive pairs", "Only I, X, and C can be used subtractively, and only before specific numerals (IV, IX, XL, XC, CD, CM)."},
		{"No zero", "Roman numerals have no symbol for zero. The system represents positive integers only."},
		{"Modern range", fmt.Sprintf("Standard Roman numerals (without vinculum) can represent %s to %s. With vinculum, the range extends to %s.",
			humanize.Comma(roman.MinValue), humanize.Comma(roman.MaxPlain), humanize.Comma(roman.MaxValue))},
	}
	var sb strings.Builder
	for _, r := range rules {
		fmt.Fprintf(&sb, "- **%s:** %s\n", r.title, r.text)
	}
	return sb.String()
}

func examplesSection() string {
	var sb strings.Builder
	sb.WriteString("| Numeral | Value | Note |\n|---|---:|---|\n")
	for _, ex := range CommonExamples {
		fmt.Fprintf(&sb, "| `%s` | %s | %s |\n", roman.EncodeMarked(ex.Value), humanize.Comma(int64(ex.Value)), ex.Note)
	}
	return sb.String()
}

// singleLetters returns the one-letter symbols of the plain or the
// overlined table, smallest first.
func singleLetters(overline bool) []roman.Symbol {
	var out []roman.Symbol
	for _, s := range roman.Extended() {
		if s.Overline == overline && len(s.Numeral) == 1 {
			out = append([]roman.Symbol{s}, out...)
		}
	}
	return out
}

// Render formats markdown for a terminal of the given width. A nil dark
// selects the style from the terminal background.
func Render(markdown string, width int, dark *bool) (string, error) {
	if width <= 0 {
		width = 80
	}
	opts := []glamour.TermRendererOption{glamour.WithWordWrap(width)}
	switch {
	case dark == nil:
		opts = append(opts, glamour.WithAutoStyle())
	case *dark:
		opts = append(opts, glamour.WithStylePath("dark"))
	default:
		opts = append(opts, glamour.WithStylePath("light"))
	}

	renderer, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return "", fmt.Errorf("failed to create renderer: %w", err)
	}
	out, err := renderer.Render(markdown)
	if err != nil {
		return "", fmt.Errorf("failed to render reference: %w", err)
	}
	return out, nil
}
