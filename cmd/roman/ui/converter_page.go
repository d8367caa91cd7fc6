package ui

import (
	"strings"

	"github.com/bneradt/roman.brianneradt.com/internal/convert"
	"github.com/bneradt/roman.brianneradt.com/internal/logging"
	"github.com/bneradt/roman.brianneradt.com/internal/roman"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
)

// ConverterPageModel converts as the user types.
type ConverterPageModel struct {
	input     textinput.Model
	mode      convert.Mode
	result    convert.Result
	examples  []string
	exampleIx int
	styles    Styles
	width     int
	height    int
}

// NewConverterPageModel creates the converter page in the given mode.
func NewConverterPageModel(mode convert.Mode, styles Styles) ConverterPageModel {
	ti := textinput.New()
	ti.Prompt = "› "
	ti.CharLimit = 64
	ti.Width = 40
	ti.Placeholder = mode.Placeholder()
	ti.Focus()

	return ConverterPageModel{
		input:    ti,
		mode:     mode,
		examples: convert.Examples(),
		styles:   styles,
	}
}

// SetSize updates the page dimensions.
func (m *ConverterPageModel) SetSize(w, h int) {
	m.width = w
	m.height = h
	m.input.Width = NewLayoutConfig(w, h).InputWidth()
}

// SetStyles swaps the theme.
func (m *ConverterPageModel) SetStyles(s Styles) { m.styles = s }

// SetMode switches the input interpretation and reconverts.
func (m *ConverterPageModel) SetMode(mode convert.Mode) {
	m.mode = mode
	m.input.Placeholder = mode.Placeholder()
	m.refresh()
}

// SetInput replaces the input text and reconverts.
func (m *ConverterPageModel) SetInput(s string) {
	m.input.SetValue(s)
	m.input.CursorEnd()
	m.refresh()
}

// Mode returns the active input mode.
func (m ConverterPageModel) Mode() convert.Mode { return m.mode }

// Result returns the conversion of the current input.
func (m ConverterPageModel) Result() convert.Result { return m.result }

func (m *ConverterPageModel) refresh() {
	m.result = convert.Convert(m.input.Value(), m.mode)
	if m.result.Kind == convert.KindFailure {
		logging.ConvertDebug("convert %q (%s): %v", m.input.Value(), m.mode, m.result.Err)
	}
}

// Update handles messages.
//
//	ctrl+t  cycle input mode
//	ctrl+e  fill in the next quick example
//	ctrl+l  clear the input
func (m ConverterPageModel) Update(msg tea.Msg) (ConverterPageModel, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "ctrl+t":
			m.SetMode(m.mode.Next())
			return m, nil
		case "ctrl+e":
			if len(m.examples) > 0 {
				m.SetInput(m.examples[m.exampleIx%len(m.examples)])
				m.exampleIx++
			}
			return m, nil
		case "ctrl+l":
			m.SetInput("")
			return m, nil
		}
	}

	var cmd tea.Cmd
	before := m.input.Value()
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != before {
		m.refresh()
	}
	return m, cmd
}

// View renders the page.
func (m ConverterPageModel) View() string {
	s := m.styles
	var sb strings.Builder

	sb.WriteString(s.Title.Render("Converter"))
	sb.WriteString("\n")
	sb.WriteString(s.Muted.Render("Mode: "))
	sb.WriteString(s.Badge.Render(m.mode.Label()))
	sb.WriteString("\n\n")
	sb.WriteString(m.input.View())
	sb.WriteString("\n\n")
	sb.WriteString(m.renderResult())
	sb.WriteString("\n\n")
	sb.WriteString(s.Muted.Render("Examples: " + strings.Join(m.examples, " · ")))
	sb.WriteString("\n")
	sb.WriteString(s.Muted.Render("ctrl+t mode · ctrl+e example · ctrl+l clear"))

	return sb.String()
}

func (m ConverterPageModel) renderResult() string {
	s := m.styles
	switch m.result.Kind {
	case convert.KindEmpty:
		return s.Subtitle.Render("Type a number or a Roman numeral.")
	case convert.KindFailure:
		return s.Error.Render(m.result.Err.Error())
	}

	arabic := s.Arabic.Render(m.result.ArabicText())
	numeral := s.RenderRoman(m.result.Segments())
	top, bottom := arabic, numeral
	if m.result.Direction == convert.ToArabic {
		top, bottom = numeral, arabic
	}

	lines := []string{top, s.Muted.Render(m.result.Direction.Arrow()), bottom}
	if !m.result.Canonical {
		if m.result.CanonicalForm != "" {
			lines = append(lines, "", s.Warning.Render("Non-standard form.")+" "+
				s.Muted.Render("Standard: ")+s.RenderMarked(m.result.CanonicalForm))
		} else {
			lines = append(lines, "", s.Warning.Render("Beyond the standard range of "+humanize.Comma(roman.MaxValue)+"."))
		}
	}
	return s.Card.Render(lipgloss.JoinVertical(lipgloss.Center, lines...))
}
