package ui

import (
	"strconv"

	"github.com/bneradt/roman.brianneradt.com/internal/logging"
	"github.com/bneradt/roman.brianneradt.com/internal/reference"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// ReferencePageModel shows the reference sheet as collapsible sections.
type ReferencePageModel struct {
	viewport viewport.Model
	styles   Styles
	ids      []string
	open     map[string]bool
	width    int
	height   int
}

// NewReferencePageModel creates the reference page with the first section
// expanded.
func NewReferencePageModel(styles Styles) ReferencePageModel {
	ids := reference.SectionIDs()
	m := ReferencePageModel{
		viewport: viewport.New(80, 20),
		styles:   styles,
		ids:      ids,
		open:     map[string]bool{ids[0]: true},
	}
	m.UpdateContent()
	return m
}

// SetSize updates the size of the viewport.
func (m *ReferencePageModel) SetSize(w, h int) {
	m.width = w
	m.height = h
	m.viewport.Width = w
	m.viewport.Height = max(h-2, 1) // Reserve space for the key hint
	m.UpdateContent()
}

// SetStyles swaps the theme and re-renders.
func (m *ReferencePageModel) SetStyles(s Styles) {
	m.styles = s
	m.UpdateContent()
}

// IsOpen reports whether the section is expanded.
func (m ReferencePageModel) IsOpen(id string) bool { return m.open[id] }

// Toggle expands or collapses one section.
func (m *ReferencePageModel) Toggle(id string) {
	m.open[id] = !m.open[id]
	m.UpdateContent()
}

// ExpandAll opens every section.
func (m *ReferencePageModel) ExpandAll() {
	for _, id := range m.ids {
		m.open[id] = true
	}
	m.UpdateContent()
}

// CollapseAll closes every section.
func (m *ReferencePageModel) CollapseAll() {
	m.open = make(map[string]bool)
	m.UpdateContent()
}

// UpdateContent re-renders the markdown into the viewport. Rendering
// failures fall back to the raw markdown.
func (m *ReferencePageModel) UpdateContent() {
	md := reference.MarkdownFor(m.open)
	dark := m.styles.Theme.IsDark
	out, err := reference.Render(md, max(m.viewport.Width-2, 20), &dark)
	if err != nil {
		logging.UIDebug("reference render failed: %v", err)
		out = md
	}
	m.viewport.SetContent(out)
}

// Update handles messages.
//
//	1-5  toggle a section
//	e    expand all
//	c    collapse all
func (m ReferencePageModel) Update(msg tea.Msg) (ReferencePageModel, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch k := key.String(); k {
		case "e":
			m.ExpandAll()
			return m, nil
		case "c":
			m.CollapseAll()
			return m, nil
		default:
			if n, err := strconv.Atoi(k); err == nil && n >= 1 && n <= len(m.ids) {
				m.Toggle(m.ids[n-1])
				return m, nil
			}
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the page.
func (m ReferencePageModel) View() string {
	return m.viewport.View() + "\n" +
		m.styles.Muted.Render("1-5 toggle section · e expand all · c collapse all · ↑/↓ scroll")
}
