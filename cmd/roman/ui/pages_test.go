package ui

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/bneradt/roman.brianneradt.com/internal/config"
	"github.com/bneradt/roman.brianneradt.com/internal/convert"
	"github.com/bneradt/roman.brianneradt.com/internal/quiz"
	"github.com/bneradt/roman.brianneradt.com/internal/roman"
	"github.com/bneradt/roman.brianneradt.com/internal/stats"
	"github.com/bneradt/roman.brianneradt.com/internal/store"

	tea "github.com/charmbracelet/bubbletea"
)

// always draws the same number.
type always int

func (a always) InRange(min, max int) int { return int(a) }

func typeText(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newQuizSession(n int, dir quiz.Direction, rec quiz.Recorder) *quiz.Session {
	return quiz.New(quiz.Options{
		Difficulty: roman.Medium,
		Direction:  dir,
		Random:     always(n),
		Recorder:   rec,
	})
}

func TestConverterPageConvertsWhileTyping(t *testing.T) {
	model := NewConverterPageModel(convert.ModeAuto, DefaultStyles())
	model.SetSize(80, 20)

	if !strings.Contains(model.View(), "Type a number or a Roman numeral.") {
		t.Fatalf("expected empty prompt")
	}

	model, _ = model.Update(typeText("42"))
	if got := model.Result().Roman; got != "XLII" {
		t.Fatalf("Roman = %q, want XLII", got)
	}
	if !strings.Contains(model.View(), "XLII") {
		t.Fatalf("expected numeral in view")
	}

	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyCtrlL})
	if model.Result().Kind != convert.KindEmpty {
		t.Fatalf("expected empty result after clear")
	}
}

func TestConverterPageErrorsAndNonStandard(t *testing.T) {
	model := NewConverterPageModel(convert.ModeAuto, DefaultStyles())

	model.SetInput("hello")
	if !strings.Contains(model.View(), convert.ErrUnrecognized.Error()) {
		t.Fatalf("expected unrecognized error, got:\n%s", model.View())
	}

	model.SetInput("IIII")
	view := model.View()
	if !strings.Contains(view, "Non-standard form.") {
		t.Fatalf("expected non-standard note, got:\n%s", view)
	}
	if !strings.Contains(view, "IV") {
		t.Fatalf("expected standard form IV in view")
	}
}

func TestConverterPageModeCycle(t *testing.T) {
	model := NewConverterPageModel(convert.ModeAuto, DefaultStyles())
	model.SetInput("1994")

	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyCtrlT})
	if model.Mode() != convert.ModeArabic {
		t.Fatalf("Mode = %s, want arabic", model.Mode())
	}
	if model.Result().Roman != "MCMXCIV" {
		t.Fatalf("expected reconversion in arabic mode")
	}

	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyCtrlT})
	if model.Mode() != convert.ModeRoman {
		t.Fatalf("Mode = %s, want roman", model.Mode())
	}
	if model.Result().Kind != convert.KindFailure {
		t.Fatalf("digits must fail in roman mode")
	}
}

func TestConverterPageExamples(t *testing.T) {
	model := NewConverterPageModel(convert.ModeAuto, DefaultStyles())
	examples := convert.Examples()

	for i := 0; i < len(examples)+1; i++ {
		model, _ = model.Update(tea.KeyMsg{Type: tea.KeyCtrlE})
		want := examples[i%len(examples)]
		if got := model.input.Value(); got != want {
			t.Fatalf("example %d = %q, want %q", i, got, want)
		}
		if model.Result().Kind != convert.KindSuccess {
			t.Fatalf("example %q should convert", want)
		}
	}
}

func TestQuizPageCorrectAnswer(t *testing.T) {
	model := NewQuizPageModel(context.Background(), newQuizSession(42, quiz.ArabicToRoman, nil), DefaultStyles())
	model.SetSize(80, 20)

	if !strings.Contains(model.View(), "Convert to Roman numerals:") {
		t.Fatalf("expected prompt")
	}
	if !strings.Contains(model.View(), "Score: -") {
		t.Fatalf("expected empty score")
	}

	model, _ = model.Update(typeText("xlii"))
	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyEnter})

	view := model.View()
	if !strings.Contains(view, "Correct!") {
		t.Fatalf("expected Correct!, got:\n%s", view)
	}
	if !strings.Contains(view, "Score: 1/1 (100%)") {
		t.Fatalf("expected score line, got:\n%s", view)
	}

	// Typing is ignored until the user moves on
	model, _ = model.Update(typeText("zzz"))
	if model.input.Value() != "xlii" {
		t.Fatalf("input changed after answering: %q", model.input.Value())
	}

	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if model.Session().Answered() {
		t.Fatalf("expected a fresh question after enter")
	}
	if model.input.Value() != "" {
		t.Fatalf("expected cleared input")
	}
}

func TestQuizPageIncorrectAnswer(t *testing.T) {
	model := NewQuizPageModel(context.Background(), newQuizSession(42, quiz.RomanToArabic, nil), DefaultStyles())

	if !strings.Contains(model.View(), "XLII") {
		t.Fatalf("expected numeral question")
	}

	model, _ = model.Update(typeText("40"))
	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyEnter})

	view := model.View()
	if !strings.Contains(view, "Incorrect.") || !strings.Contains(view, "42") {
		t.Fatalf("expected incorrect feedback with answer, got:\n%s", view)
	}
	if model.Session().Score() != (quiz.Score{Correct: 0, Total: 1}) {
		t.Fatalf("unexpected score %+v", model.Session().Score())
	}
}

func TestQuizPageEmptyAnswer(t *testing.T) {
	model := NewQuizPageModel(context.Background(), newQuizSession(7, quiz.ArabicToRoman, nil), DefaultStyles())

	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if !strings.Contains(model.View(), "Enter an answer first.") {
		t.Fatalf("expected notice for empty answer")
	}
	if model.Session().Score().Total != 0 {
		t.Fatalf("empty answers must not be scored")
	}
}

func TestQuizPageSettings(t *testing.T) {
	model := NewQuizPageModel(context.Background(), newQuizSession(5, quiz.ArabicToRoman, nil), DefaultStyles())

	model, _ = model.Update(typeText("V"))
	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if model.Session().Score().Total != 1 {
		t.Fatalf("expected one scored answer")
	}

	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyCtrlD})
	if model.Session().Difficulty() != roman.Hard {
		t.Fatalf("Difficulty = %s, want hard", model.Session().Difficulty())
	}
	if model.Session().Score().Total != 0 {
		t.Fatalf("changing difficulty must reset the score")
	}

	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyCtrlR})
	if model.Session().Direction() != quiz.RomanToArabic {
		t.Fatalf("expected direction toggle")
	}
	if !strings.Contains(model.View(), "Convert to Arabic number:") {
		t.Fatalf("expected arabic prompt")
	}

	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	if model.Session().Answered() || model.Session().Score().Total != 0 {
		t.Fatalf("skip must not score")
	}
}

func TestReferencePageToggles(t *testing.T) {
	model := NewReferencePageModel(NewStyles(LightTheme()))
	model.SetSize(80, 60)

	if !model.IsOpen("basic") || model.IsOpen("subtractive") {
		t.Fatalf("expected only the first section open")
	}
	if !strings.Contains(model.View(), "Subtractive") {
		t.Fatalf("collapsed sections keep their heading")
	}

	model, _ = model.Update(typeText("2"))
	if !model.IsOpen("subtractive") {
		t.Fatalf("expected 2 to open subtractive")
	}
	model, _ = model.Update(typeText("1"))
	if model.IsOpen("basic") {
		t.Fatalf("expected 1 to close basic")
	}

	model, _ = model.Update(typeText("e"))
	for _, id := range []string{"basic", "subtractive", "vinculum", "rules", "examples"} {
		if !model.IsOpen(id) {
			t.Fatalf("expected %s open after expand all", id)
		}
	}

	model, _ = model.Update(typeText("c"))
	for _, id := range []string{"basic", "subtractive", "vinculum", "rules", "examples"} {
		if model.IsOpen(id) {
			t.Fatalf("expected %s closed after collapse all", id)
		}
	}

	// Out of range digits scroll nothing and toggle nothing
	model, _ = model.Update(typeText("9"))
	if model.IsOpen("examples") {
		t.Fatalf("unexpected toggle")
	}
}

func TestStatsPageModelNil(t *testing.T) {
	model := NewStatsPageModel(nil, nil, DefaultStyles())
	model.SetSize(80, 20)
	if !strings.Contains(model.View(), "Statistics not available.") {
		t.Fatalf("expected unavailable message")
	}
}

func TestStatsPageModelContent(t *testing.T) {
	dir := t.TempDir()
	tracker, err := stats.NewTracker(dir, stats.DefaultFileName)
	if err != nil {
		t.Fatalf("NewTracker: %v", err)
	}
	t.Cleanup(func() { _ = tracker.Close() })

	history, err := store.Open(filepath.Join(dir, store.DefaultFileName))
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() { _ = history.Close() })

	ctx := context.Background()
	rec := quiz.MultiRecorder{tracker, history}
	for i, correct := range []bool{true, true, false} {
		a := quiz.Attempt{
			SessionID:  "s",
			Number:     10 + i,
			Direction:  quiz.ArabicToRoman,
			Difficulty: roman.Medium,
			Answer:     roman.EncodePlain(10 + i),
			Correct:    correct,
			At:         time.Now(),
		}
		if err := rec.Record(ctx, a); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}

	model := NewStatsPageModel(tracker, history, DefaultStyles())
	model.SetSize(120, 60)
	view := model.View()

	for _, want := range []string{"Quiz Statistics", "By Difficulty", "medium", "Recent Attempts", "XII"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected %q in view:\n%s", want, view)
		}
	}
}

func TestAppPageNavigation(t *testing.T) {
	app := NewApp(context.Background(), Options{Session: newQuizSession(3, quiz.ArabicToRoman, nil)})

	if app.View() != "Initializing..." {
		t.Fatalf("expected initializing view before first resize")
	}

	var model tea.Model = app
	model, _ = model.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	if !strings.Contains(model.View(), "Converter") {
		t.Fatalf("expected converter tab")
	}

	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyTab})
	if got := model.(AppModel).Page(); got != PageQuiz {
		t.Fatalf("Page = %s, want Quiz", got)
	}
	if !strings.Contains(model.View(), "Convert to Roman numerals:") {
		t.Fatalf("expected quiz page content")
	}

	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	if got := model.(AppModel).Page(); got != PageStats {
		t.Fatalf("Page = %s, want Stats", got)
	}

	_, cmd := model.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected tea.QuitMsg")
	}
}

func TestAppTooSmall(t *testing.T) {
	var model tea.Model = NewApp(context.Background(), Options{})
	model, _ = model.Update(tea.WindowSizeMsg{Width: 20, Height: 5})
	if model.View() != "Terminal too small." {
		t.Fatalf("unexpected view: %q", model.View())
	}
}

func TestAppConfigChanged(t *testing.T) {
	app := NewApp(context.Background(), Options{Session: newQuizSession(3, quiz.ArabicToRoman, nil)})

	cfg := config.DefaultConfig()
	cfg.Converter.Mode = string(convert.ModeRoman)
	cfg.Quiz.Difficulty = string(roman.Expert)
	cfg.Quiz.Direction = string(quiz.RomanToArabic)
	dark := true
	cfg.UI.DarkMode = &dark

	model, _ := app.Update(ConfigChangedMsg{Config: cfg})
	got := model.(AppModel)

	if got.Mode() != convert.ModeRoman {
		t.Fatalf("Mode = %s, want roman", got.Mode())
	}
	if got.Quiz().Session().Difficulty() != roman.Expert {
		t.Fatalf("Difficulty = %s, want expert", got.Quiz().Session().Difficulty())
	}
	if got.Quiz().Session().Direction() != quiz.RomanToArabic {
		t.Fatalf("expected direction from config")
	}
	if !got.styles.Theme.IsDark {
		t.Fatalf("expected dark theme from config")
	}

	// A nil config is ignored
	model, _ = got.Update(ConfigChangedMsg{})
	if model.(AppModel).Mode() != convert.ModeRoman {
		t.Fatalf("nil config must not reset state")
	}
}

func TestAppConfigChangedKeepsUnchangedQuizSettings(t *testing.T) {
	session := quiz.New(quiz.Options{
		Difficulty: roman.Hard,
		Direction:  quiz.RomanToArabic,
		Random:     always(42),
	})
	if _, err := session.Check(context.Background(), "40"); err != nil {
		t.Fatalf("Check: %v", err)
	}
	app := NewApp(context.Background(), Options{Session: session})

	// Only the theme changes.
	cfg := config.DefaultConfig()
	dark := true
	cfg.UI.DarkMode = &dark

	model, _ := app.Update(ConfigChangedMsg{Config: cfg})
	got := model.(AppModel)

	if got.Quiz().Session().Difficulty() != roman.Hard {
		t.Fatalf("Difficulty = %s, want hard", got.Quiz().Session().Difficulty())
	}
	if got.Quiz().Session().Direction() != quiz.RomanToArabic {
		t.Fatalf("Direction = %s, want roman-to-arabic", got.Quiz().Session().Direction())
	}
	if got.Quiz().Session().Score() != (quiz.Score{Correct: 0, Total: 1}) {
		t.Fatalf("score reset: %+v", got.Quiz().Session().Score())
	}
	if !got.styles.Theme.IsDark {
		t.Fatalf("expected dark theme from config")
	}
}

func TestAppConfigChangedSkipsPinnedSettings(t *testing.T) {
	session := quiz.New(quiz.Options{
		Difficulty: roman.Hard,
		Direction:  quiz.RomanToArabic,
		Random:     always(42),
	})
	app := NewApp(context.Background(), Options{
		Session: session,
		Pinned:  Pinned{Difficulty: true, Direction: true},
	})

	cfg := config.DefaultConfig()
	cfg.Converter.Mode = string(convert.ModeRoman)
	cfg.Quiz.Difficulty = string(roman.Expert)
	cfg.Quiz.Direction = string(quiz.ArabicToRoman)

	model, _ := app.Update(ConfigChangedMsg{Config: cfg})
	got := model.(AppModel)

	if got.Quiz().Session().Difficulty() != roman.Hard {
		t.Fatalf("pinned difficulty changed to %s", got.Quiz().Session().Difficulty())
	}
	if got.Quiz().Session().Direction() != quiz.RomanToArabic {
		t.Fatalf("pinned direction changed to %s", got.Quiz().Session().Direction())
	}
	if got.Mode() != convert.ModeRoman {
		t.Fatalf("Mode = %s, want roman", got.Mode())
	}
}

func TestAppUsesTrackerFromContext(t *testing.T) {
	tracker, err := stats.NewTracker(t.TempDir(), stats.DefaultFileName)
	if err != nil {
		t.Fatalf("NewTracker: %v", err)
	}
	t.Cleanup(func() { _ = tracker.Close() })

	ctx := stats.NewContext(context.Background(), tracker)
	app := NewApp(ctx, Options{})
	if _, err := app.Quiz().Session().Check(ctx, "wrong"); err != nil {
		t.Fatalf("Check: %v", err)
	}
	if tracker.Stats().Total.Total != 1 {
		t.Fatalf("expected attempt recorded through context tracker, got %d", tracker.Stats().Total.Total)
	}
}

func TestAppRecordsToTracker(t *testing.T) {
	tracker, err := stats.NewTracker(t.TempDir(), stats.DefaultFileName)
	if err != nil {
		t.Fatalf("NewTracker: %v", err)
	}
	t.Cleanup(func() { _ = tracker.Close() })

	cfg := config.DefaultConfig()
	cfg.Quiz.Difficulty = string(roman.Easy)

	var model tea.Model = NewApp(context.Background(), Options{Config: cfg, Tracker: tracker, Start: PageQuiz})
	model, _ = model.Update(typeText("not a numeral"))
	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyEnter})

	if got := tracker.Stats().Total.Total; got != 1 {
		t.Fatalf("tracker recorded %d attempts, want 1", got)
	}
	_ = model
}
