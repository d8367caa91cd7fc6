package reference

import (
	"strings"
	"testing"

	"github.com/bneradt/roman.brianneradt.com/internal/roman"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSectionsOrder(t *testing.T) {
	assert.Equal(t, []string{"basic", "subtractive", "vinculum", "rules", "examples"}, SectionIDs())
	for _, s := range Sections() {
		assert.NotEmpty(t, s.Title)
		assert.NotEmpty(t, s.Body, s.ID)
	}
}

func TestBasicSection(t *testing.T) {
	body := basicSection()
	for _, row := range []string{"| **I** | 1 |", "| **V** | 5 |", "| **M** | 1,000 |"} {
		assert.Contains(t, body, row)
	}
	assert.NotContains(t, body, "IV")
	assert.Less(t, strings.Index(body, "**I**"), strings.Index(body, "**M**"), "ascending order")
}

func TestSubtractiveSection(t *testing.T) {
	body := subtractiveSection()
	assert.Contains(t, body, "| **IV** | 4 | 5 - 1 |")
	assert.Contains(t, body, "| **CM** | 900 | 1000 - 100 |")
	assert.Equal(t, 6, strings.Count(body, "| **"))
}

func TestVinculumSection(t *testing.T) {
	body := vinculumSection()
	o := string(roman.Overline)
	assert.Contains(t, body, "| **V"+o+"** | 5,000 |")
	assert.Contains(t, body, "| **M"+o+"** | 1,000,000 |")
	assert.NotContains(t, body, "**I"+o+"**")
	assert.Contains(t, body, "`I"+o+"V"+o+"` = 4,000")
}

func TestExamplesAreComputed(t *testing.T) {
	body := examplesSection()
	assert.Contains(t, body, "| `MCMXCIV` | 1,994 | Year 1994 |")
	assert.Contains(t, body, "| `MMMCMXCIX` | 3,999 | Largest standard |")
	for _, ex := range CommonExamples {
		assert.Contains(t, body, roman.EncodeMarked(ex.Value))
	}
}

func TestRulesMentionRange(t *testing.T) {
	assert.Contains(t, rulesSection(), "1 to 3,999")
	assert.Contains(t, rulesSection(), "3,999,999")
}

func TestMarkdownFor(t *testing.T) {
	full := Markdown()
	assert.True(t, strings.HasPrefix(full, "# Roman Numerals Reference"))
	assert.Contains(t, full, "## ▾ Basic Numerals")
	assert.Contains(t, full, "Super Bowl XLIX")

	partial := MarkdownFor(map[string]bool{"basic": true})
	assert.Contains(t, partial, "## ▾ Basic Numerals")
	assert.Contains(t, partial, "## ▸ Common Examples")
	assert.NotContains(t, partial, "Super Bowl")

	none := MarkdownFor(map[string]bool{})
	assert.NotContains(t, none, "| Numeral |")
}

func TestRender(t *testing.T) {
	light := false
	out, err := Render(Markdown(), 60, &light)
	require.NoError(t, err)
	assert.Contains(t, out, "Reference")

	dark := true
	out, err = Render("# Hi", 0, &dark)
	require.NoError(t, err)
	assert.Contains(t, out, "Hi")
}
