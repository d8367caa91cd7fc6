package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bneradt/roman.brianneradt.com/internal/quiz"
	"github.com/bneradt/roman.brianneradt.com/internal/roman"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// QuizPageModel runs a quiz session.
type QuizPageModel struct {
	ctx     context.Context
	session *quiz.Session
	input   textinput.Model
	styles  Styles
	notice  string
	width   int
	height  int
}

// NewQuizPageModel wraps a session. ctx is passed to the session's recorder.
func NewQuizPageModel(ctx context.Context, session *quiz.Session, styles Styles) QuizPageModel {
	ti := textinput.New()
	ti.Prompt = "› "
	ti.CharLimit = 64
	ti.Width = 40
	ti.Placeholder = session.Placeholder()
	ti.Focus()

	return QuizPageModel{
		ctx:     ctx,
		session: session,
		input:   ti,
		styles:  styles,
	}
}

// SetSize updates the page dimensions.
func (m *QuizPageModel) SetSize(w, h int) {
	m.width = w
	m.height = h
	m.input.Width = NewLayoutConfig(w, h).InputWidth()
}

// SetStyles swaps the theme.
func (m *QuizPageModel) SetStyles(s Styles) { m.styles = s }

// Session exposes the underlying session.
func (m QuizPageModel) Session() *quiz.Session { return m.session }

// SetDifficulty changes the range; the score resets.
func (m *QuizPageModel) SetDifficulty(d roman.Difficulty) {
	if d == m.session.Difficulty() {
		return
	}
	m.session.SetDifficulty(d)
	m.resetInput()
}

// SetDirection changes the direction; the score resets.
func (m *QuizPageModel) SetDirection(d quiz.Direction) {
	if d == m.session.Direction() {
		return
	}
	m.session.SetDirection(d)
	m.resetInput()
}

func (m *QuizPageModel) resetInput() {
	m.notice = ""
	m.input.SetValue("")
	m.input.Placeholder = m.session.Placeholder()
	m.input.Focus()
}

// Update handles messages.
//
//	enter   check the answer, or move on once answered
//	ctrl+s  skip the question
//	ctrl+d  cycle difficulty
//	ctrl+r  reverse the direction
func (m QuizPageModel) Update(msg tea.Msg) (QuizPageModel, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "enter":
			m.submit()
			return m, nil
		case "ctrl+s":
			m.session.Skip()
			m.resetInput()
			return m, nil
		case "ctrl+d":
			m.SetDifficulty(m.session.Difficulty().Next())
			return m, nil
		case "ctrl+r":
			m.SetDirection(m.session.Direction().Toggle())
			return m, nil
		}
		if m.session.Answered() {
			// Input is frozen until the user moves on
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *QuizPageModel) submit() {
	if m.session.Answered() {
		m.session.Next()
		m.resetInput()
		return
	}
	_, err := m.session.Check(m.ctx, m.input.Value())
	switch {
	case errors.Is(err, quiz.ErrEmptyAnswer):
		m.notice = "Enter an answer first."
	case err != nil:
		m.notice = err.Error()
	default:
		m.notice = ""
		m.input.Blur()
	}
}

// View renders the page.
func (m QuizPageModel) View() string {
	s := m.styles
	sess := m.session
	var sb strings.Builder

	sb.WriteString(s.Title.Render("Quiz"))
	sb.WriteString("\n")
	sb.WriteString(s.Badge.Render(sess.Difficulty().Label()))
	sb.WriteString("  ")
	sb.WriteString(s.Muted.Render(sess.Direction().Label()))
	sb.WriteString("  ")
	sb.WriteString(m.renderScore())
	sb.WriteString("\n\n")

	sb.WriteString(s.Body.Render(sess.Prompt()))
	sb.WriteString("\n")
	sb.WriteString(s.Card.Render(m.renderQuestion()))
	sb.WriteString("\n\n")
	sb.WriteString(m.input.View())
	sb.WriteString("\n\n")

	switch {
	case m.notice != "":
		sb.WriteString(s.Warning.Render(m.notice))
	case sess.Answered() && sess.Correct():
		sb.WriteString(s.Success.Render("Correct!"))
		sb.WriteString(s.Muted.Render("  Press enter for the next question."))
	case sess.Answered():
		sb.WriteString(s.Error.Render("Incorrect."))
		sb.WriteString(s.Body.Render(" The answer is "))
		sb.WriteString(m.renderAnswer())
		sb.WriteString(s.Muted.Render("  Press enter to continue."))
	}
	sb.WriteString("\n\n")
	sb.WriteString(s.Muted.Render("enter check/next · ctrl+s skip · ctrl+d difficulty · ctrl+r direction"))

	return sb.String()
}

func (m QuizPageModel) renderScore() string {
	score := m.session.Score()
	if score.Total == 0 {
		return m.styles.Muted.Render("Score: -")
	}
	return m.styles.Bold.Render(fmt.Sprintf("Score: %d/%d (%d%%)", score.Correct, score.Total, score.Percent()))
}

func (m QuizPageModel) renderQuestion() string {
	if m.session.Direction() == quiz.RomanToArabic {
		return m.styles.RenderMarked(m.session.Question())
	}
	return m.styles.Arabic.Render(m.session.Question())
}

func (m QuizPageModel) renderAnswer() string {
	if m.session.Direction() == quiz.RomanToArabic {
		return m.styles.Arabic.Render(m.session.CorrectAnswer())
	}
	return m.styles.RenderMarked(m.session.CorrectAnswer())
}
