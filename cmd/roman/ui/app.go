package ui

import (
	"context"
	"strings"

	"github.com/bneradt/roman.brianneradt.com/internal/config"
	"github.com/bneradt/roman.brianneradt.com/internal/convert"
	"github.com/bneradt/roman.brianneradt.com/internal/logging"
	"github.com/bneradt/roman.brianneradt.com/internal/quiz"
	"github.com/bneradt/roman.brianneradt.com/internal/stats"
	"github.com/bneradt/roman.brianneradt.com/internal/store"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Page determines which page is active.
type Page int

const (
	PageConverter Page = iota
	PageQuiz
	PageReference
	PageStats
)

var pageTitles = []string{"Converter", "Quiz", "Reference", "Stats"}

// String returns the tab title.
func (p Page) String() string {
	if p < 0 || int(p) >= len(pageTitles) {
		return "Unknown"
	}
	return pageTitles[p]
}

// ConfigChangedMsg is sent when the config file is reloaded.
type ConfigChangedMsg struct {
	Config *config.Config
}

// Pinned marks settings given on the command line. Config reloads leave
// them alone.
type Pinned struct {
	Difficulty bool
	Direction  bool
	Mode       bool
}

// Options configures the application model.
type Options struct {
	Config  *config.Config
	Session *quiz.Session
	Tracker *stats.Tracker
	History *store.HistoryStore
	Start   Page
	Pinned  Pinned
}

// AppModel is the root bubbletea model.
type AppModel struct {
	ctx       context.Context
	cfg       *config.Config
	pinned    Pinned
	page      Page
	styles    Styles
	dark      *bool
	converter ConverterPageModel
	quiz      QuizPageModel
	reference ReferencePageModel
	stats     StatsPageModel
	width     int
	height    int
	ready     bool
}

// NewApp builds the root model. A nil Config uses the defaults; a nil
// Session starts one from the config. A nil Tracker falls back to the one
// carried by ctx.
func NewApp(ctx context.Context, opts Options) AppModel {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	tracker := opts.Tracker
	if tracker == nil {
		tracker = stats.FromContext(ctx)
	}
	session := opts.Session
	if session == nil {
		var recorder quiz.Recorder
		if tracker != nil || opts.History != nil {
			recorder = quiz.MultiRecorder{trackerRecorder(tracker), historyRecorder(opts.History)}
		}
		session = quiz.New(quiz.Options{
			Difficulty: cfg.Difficulty(),
			Direction:  cfg.Direction(),
			Recorder:   recorder,
		})
	}

	styles := NewStyles(ResolveTheme(cfg.UI.DarkMode))
	return AppModel{
		ctx:       ctx,
		cfg:       cfg,
		pinned:    opts.Pinned,
		page:      opts.Start,
		styles:    styles,
		dark:      cfg.UI.DarkMode,
		converter: NewConverterPageModel(cfg.Mode(), styles),
		quiz:      NewQuizPageModel(ctx, session, styles),
		reference: NewReferencePageModel(styles),
		stats:     NewStatsPageModel(tracker, opts.History, styles),
	}
}

// Typed nil pointers must not reach MultiRecorder as non-nil interfaces.
func trackerRecorder(t *stats.Tracker) quiz.Recorder {
	if t == nil {
		return nil
	}
	return t
}

func historyRecorder(h *store.HistoryStore) quiz.Recorder {
	if h == nil {
		return nil
	}
	return h
}

// Page returns the active page.
func (m AppModel) Page() Page { return m.page }

// Init implements tea.Model.
func (m AppModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.resize()
		return m, nil

	case ConfigChangedMsg:
		m.applyConfig(msg.Config)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "tab":
			m.setPage((m.page + 1) % Page(len(pageTitles)))
			return m, nil
		case "shift+tab":
			m.setPage((m.page + Page(len(pageTitles)) - 1) % Page(len(pageTitles)))
			return m, nil
		}
	}

	var cmd tea.Cmd
	switch m.page {
	case PageConverter:
		m.converter, cmd = m.converter.Update(msg)
	case PageQuiz:
		m.quiz, cmd = m.quiz.Update(msg)
	case PageReference:
		m.reference, cmd = m.reference.Update(msg)
	case PageStats:
		m.stats, cmd = m.stats.Update(msg)
	}
	return m, cmd
}

func (m *AppModel) setPage(p Page) {
	m.page = p
	logging.UIDebug("page -> %s", p)
	if p == PageStats {
		m.stats.UpdateContent()
	}
}

func (m *AppModel) resize() {
	layout := NewLayoutConfig(m.width, m.height)
	w, h := layout.ContentWidth(), layout.ContentHeight()
	m.converter.SetSize(w, h)
	m.quiz.SetSize(w, h)
	m.reference.SetSize(w, h)
	m.stats.SetSize(w, h)
}

// applyConfig restyles the pages and applies only the settings that changed
// since the last config and were not pinned on the command line.
func (m *AppModel) applyConfig(cfg *config.Config) {
	if cfg == nil {
		return
	}
	prev := m.cfg
	m.cfg = cfg
	logging.UIDebug("applying reloaded config")

	m.dark = cfg.UI.DarkMode
	m.styles = NewStyles(ResolveTheme(m.dark))
	m.converter.SetStyles(m.styles)
	m.quiz.SetStyles(m.styles)
	m.reference.SetStyles(m.styles)
	m.stats.SetStyles(m.styles)

	if !m.pinned.Mode && cfg.Mode() != prev.Mode() {
		m.converter.SetMode(cfg.Mode())
	}
	if !m.pinned.Difficulty && cfg.Difficulty() != prev.Difficulty() {
		m.quiz.SetDifficulty(cfg.Difficulty())
	}
	if !m.pinned.Direction && cfg.Direction() != prev.Direction() {
		m.quiz.SetDirection(cfg.Direction())
	}
}

// View implements tea.Model.
func (m AppModel) View() string {
	if !m.ready {
		return "Initializing..."
	}
	if m.width < MinimumTerminalWidth || m.height < MinimumTerminalHeight {
		return "Terminal too small."
	}

	var content string
	switch m.page {
	case PageConverter:
		content = m.converter.View()
	case PageQuiz:
		content = m.quiz.View()
	case PageReference:
		content = m.reference.View()
	case PageStats:
		content = m.stats.View()
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		m.renderTabs(),
		m.styles.Content.Render(content),
		m.renderFooter(),
	)
}

func (m AppModel) renderHeader() string {
	return m.styles.Header.Width(m.width).Render("ROMAN · Roman numeral converter & trainer")
}

func (m AppModel) renderTabs() string {
	tabs := make([]string, len(pageTitles))
	for i, title := range pageTitles {
		if Page(i) == m.page {
			tabs[i] = m.styles.ActiveTab.Render(title)
		} else {
			tabs[i] = m.styles.Tab.Render(title)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...) + "\n" + m.styles.RenderDivider(m.width)
}

func (m AppModel) renderFooter() string {
	help := []string{"tab next page", "shift+tab previous", "esc quit"}
	return m.styles.Footer.Render(strings.Join(help, " · "))
}

// Converter exposes the converter page for tests and the launcher.
func (m AppModel) Converter() ConverterPageModel { return m.converter }

// Quiz exposes the quiz page.
func (m AppModel) Quiz() QuizPageModel { return m.quiz }

// Reference exposes the reference page.
func (m AppModel) Reference() ReferencePageModel { return m.reference }

// Mode returns the active converter mode.
func (m AppModel) Mode() convert.Mode { return m.converter.Mode() }
