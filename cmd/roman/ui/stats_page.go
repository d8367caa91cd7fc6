package ui

import (
	"context"
	"sort"
	"strconv"
	"strings"

	"github.com/bneradt/roman.brianneradt.com/internal/quiz"
	"github.com/bneradt/roman.brianneradt.com/internal/roman"
	"github.com/bneradt/roman.brianneradt.com/internal/stats"
	"github.com/bneradt/roman.brianneradt.com/internal/store"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// recentLimit is how many attempts the history table shows.
const recentLimit = 10

// StatsPageModel handles the rendering of the quiz statistics.
type StatsPageModel struct {
	viewport viewport.Model
	tracker  *stats.Tracker
	history  *store.HistoryStore
	styles   Styles
	width    int
	height   int
}

// NewStatsPageModel creates a new stats page component. Either source may be
// nil.
func NewStatsPageModel(tracker *stats.Tracker, history *store.HistoryStore, styles Styles) StatsPageModel {
	vp := viewport.New(80, 20)
	return StatsPageModel{
		viewport: vp,
		tracker:  tracker,
		history:  history,
		styles:   styles,
	}
}

// SetSize updates the size of the viewport.
func (m *StatsPageModel) SetSize(w, h int) {
	m.width = w
	m.height = h
	m.viewport.Width = w
	m.viewport.Height = h
	m.UpdateContent()
}

// SetStyles swaps the theme.
func (m *StatsPageModel) SetStyles(s Styles) {
	m.styles = s
	m.UpdateContent()
}

// UpdateContent refreshes the viewport content from the tracker and history.
func (m *StatsPageModel) UpdateContent() {
	if m.tracker == nil && m.history == nil {
		m.viewport.SetContent("Statistics not available.")
		return
	}

	var sb strings.Builder
	sb.WriteString(m.styles.Title.Render("Quiz Statistics"))
	sb.WriteString("\n")

	if m.tracker != nil {
		agg := m.tracker.Stats()
		total := agg.Total
		sb.WriteString(m.styles.Bold.Render("Answered: ") + strconv.Itoa(total.Total) + "\n")
		sb.WriteString(m.styles.Bold.Render("Correct:  ") + strconv.Itoa(total.Correct) + " (" + strconv.Itoa(total.Percent()) + "%)\n")
		sb.WriteString(m.styles.Bold.Render("Streak:   ") + strconv.Itoa(agg.Streak) + " (best " + strconv.Itoa(agg.BestStreak) + ")\n\n")

		sb.WriteString(scoreTable("By Difficulty", agg.ByDifficulty, difficultyOrder()).View(m.styles))
		sb.WriteString(scoreTable("By Direction", agg.ByDirection, nil).View(m.styles))
	}

	if m.history != nil {
		recent, err := m.history.Recent(context.Background(), recentLimit)
		if err != nil {
			sb.WriteString(m.styles.Error.Render("History unavailable: " + err.Error()))
			sb.WriteString("\n")
		} else {
			sb.WriteString(recentTable(recent, m.styles).View(m.styles))
		}
	}

	m.viewport.SetContent(sb.String())
}

func difficultyOrder() []string {
	var out []string
	for _, d := range roman.Difficulties() {
		out = append(out, string(d))
	}
	return out
}

// scoreTable renders scores in the given key order; keys not in order
// follow alphabetically.
func scoreTable(title string, data map[string]quiz.Score, order []string) *SimpleTable {
	t := NewSimpleTable(title, []string{"Name", "Correct", "Total", "%"}).AlignRight(1, 2, 3)

	seen := make(map[string]bool)
	var keys []string
	for _, k := range order {
		if _, ok := data[k]; ok {
			keys = append(keys, k)
			seen[k] = true
		}
	}
	var rest []string
	for k := range data {
		if !seen[k] {
			rest = append(rest, k)
		}
	}
	sort.Strings(rest)
	keys = append(keys, rest...)

	for _, k := range keys {
		s := data[k]
		t.AddRow(truncate(k, 20), strconv.Itoa(s.Correct), strconv.Itoa(s.Total), strconv.Itoa(s.Percent()))
	}
	return t
}

func recentTable(attempts []quiz.Attempt, styles Styles) *SimpleTable {
	t := NewSimpleTable("Recent Attempts", []string{"When", "Number", "Direction", "Answer", "Result"})
	for _, a := range attempts {
		result := styles.Success.Render("✓")
		if !a.Correct {
			result = styles.Error.Render("✗")
		}
		t.AddRow(a.At.Local().Format("Jan 02 15:04"), strconv.Itoa(a.Number), a.Direction.Label(), truncate(a.Answer, 16), result)
	}
	return t
}

func truncate(s string, l int) string {
	r := []rune(s)
	if len(r) > l {
		return string(r[:l-3]) + "..."
	}
	return s
}

// Update handles messages.
func (m StatsPageModel) Update(msg tea.Msg) (StatsPageModel, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "r" {
		m.UpdateContent()
		return m, nil
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the page.
func (m StatsPageModel) View() string {
	return m.viewport.View()
}
