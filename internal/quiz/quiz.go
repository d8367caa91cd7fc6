// Package quiz implements the practice quiz: a random number is drawn from a
// difficulty range and the user converts it in one direction or the other.
package quiz

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/bneradt/roman.brianneradt.com/internal/logging"
	"github.com/bneradt/roman.brianneradt.com/internal/roman"
	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
)

// Direction is the conversion the user is asked to perform.
type Direction string

const (
	ArabicToRoman Direction = "arabic-to-roman"
	RomanToArabic Direction = "roman-to-arabic"
)

// ParseDirection resolves a direction name. "to-roman" and "to-arabic" are
// accepted as short forms.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(ArabicToRoman), "to-roman":
		return ArabicToRoman, nil
	case string(RomanToArabic), "to-arabic":
		return RomanToArabic, nil
	}
	return "", fmt.Errorf("unknown quiz direction %q (valid: %s, %s)", s, ArabicToRoman, RomanToArabic)
}

// Label is the toggle caption.
func (d Direction) Label() string {
	if d == RomanToArabic {
		return "Roman → Arabic"
	}
	return "Arabic → Roman"
}

// Toggle returns the other direction.
func (d Direction) Toggle() Direction {
	if d == RomanToArabic {
		return ArabicToRoman
	}
	return RomanToArabic
}

var (
	ErrEmptyAnswer     = errors.New("answer is empty")
	ErrAlreadyAnswered = errors.New("question already answered")
)

// Score counts answered questions.
type Score struct {
	Correct int `json:"correct"`
	Total   int `json:"total"`
}

// Add records one answer.
func (s *Score) Add(correct bool) {
	s.Total++
	if correct {
		s.Correct++
	}
}

// Percent is the share of correct answers, rounded half away from zero.
// Zero when nothing was answered.
func (s Score) Percent() int {
	if s.Total == 0 {
		return 0
	}
	return int(math.Round(float64(s.Correct) / float64(s.Total) * 100))
}

// Attempt is one checked answer.
type Attempt struct {
	SessionID  string
	Number     int
	Direction  Direction
	Difficulty roman.Difficulty
	Answer     string
	Correct    bool
	At         time.Time
}

// Recorder receives every checked answer.
type Recorder interface {
	Record(ctx context.Context, a Attempt) error
}

// MultiRecorder fans an attempt out to several recorders. All recorders are
// called; the errors are joined.
type MultiRecorder []Recorder

func (m MultiRecorder) Record(ctx context.Context, a Attempt) error {
	var errs []error
	for _, r := range m {
		if r == nil {
			continue
		}
		if err := r.Record(ctx, a); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Intn draws from [min, max]. *roman.Generator satisfies it.
type Intn interface {
	InRange(min, max int) int
}

type globalSource struct{}

func (globalSource) InRange(min, max int) int { return roman.RandomInRange(min, max) }

// Options configures a Session.
type Options struct {
	Difficulty roman.Difficulty
	Direction  Direction
	Recorder   Recorder
	Random     Intn
	Now        func() time.Time
}

// Session holds quiz state. It is not safe for concurrent use; the TUI owns
// one session on its event loop.
type Session struct {
	id         string
	difficulty roman.Difficulty
	direction  Direction
	current    int
	answer     string
	answered   bool
	correct    bool
	score      Score

	recorder Recorder
	random   Intn
	now      func() time.Time
}

// New starts a session with a first question drawn.
func New(opts Options) *Session {
	s := &Session{
		id:         uuid.NewString(),
		difficulty: opts.Difficulty,
		direction:  opts.Direction,
		recorder:   opts.Recorder,
		random:     opts.Random,
		now:        opts.Now,
	}
	if s.difficulty == "" {
		s.difficulty = roman.Medium
	}
	if s.direction == "" {
		s.direction = ArabicToRoman
	}
	if s.random == nil {
		s.random = globalSource{}
	}
	if s.now == nil {
		s.now = time.Now
	}
	s.draw()
	logging.Quiz("session %s started (difficulty=%s direction=%s)", s.id, s.difficulty, s.direction)
	return s
}

func (s *Session) draw() {
	r := s.difficulty.Range()
	s.current = s.random.InRange(r.Min, r.Max)
	s.answer = ""
	s.answered = false
	s.correct = false
}

// Next draws a new question, keeping the score.
func (s *Session) Next() { s.draw() }

// Skip is Next; the skipped question does not count.
func (s *Session) Skip() {
	logging.QuizDebug("session %s skipped %d", s.id, s.current)
	s.draw()
}

// SetDifficulty switches the range, resets the score and draws.
func (s *Session) SetDifficulty(d roman.Difficulty) {
	s.difficulty = d
	s.score = Score{}
	s.draw()
}

// SetDirection switches the direction, resets the score and draws.
func (s *Session) SetDirection(d Direction) {
	s.direction = d
	s.score = Score{}
	s.draw()
}

// Check grades answer against the current question.
//
// For Arabic to Roman, any numeral that decodes to the number is accepted,
// including non-canonical spellings such as "IIII" for 4. For Roman to Arabic
// the leading integer of the answer must equal the number.
func (s *Session) Check(ctx context.Context, answer string) (bool, error) {
	if s.answered {
		return s.correct, ErrAlreadyAnswered
	}
	if strings.TrimSpace(answer) == "" {
		return false, ErrEmptyAnswer
	}

	s.answer = answer
	s.correct = grade(s.direction, s.current, answer)
	s.answered = true
	s.score.Add(s.correct)

	if logging.IsDebugMode() {
		logging.Get(logging.CategoryQuiz).StructuredLog("debug", "attempt graded", map[string]interface{}{
			"session":   s.id,
			"number":    s.current,
			"direction": string(s.direction),
			"answer":    answer,
			"correct":   s.correct,
		})
	}

	if s.recorder != nil {
		err := s.recorder.Record(ctx, Attempt{
			SessionID:  s.id,
			Number:     s.current,
			Direction:  s.direction,
			Difficulty: s.difficulty,
			Answer:     answer,
			Correct:    s.correct,
			At:         s.now(),
		})
		if err != nil {
			logging.QuizWarn("session %s: failed to record attempt: %v", s.id, err)
		}
	}
	return s.correct, nil
}

func grade(dir Direction, number int, answer string) bool {
	if dir == RomanToArabic {
		n, ok := roman.ParseLeadingInt(answer)
		return ok && n == number
	}

	user := strings.ToUpper(strings.TrimSpace(answer))
	if roman.LooksLikeRoman(user) {
		return roman.Decode(answer) == number
	}
	strip := func(s string) string { return strings.ToUpper(roman.StripOverlines(s)) }
	return strip(roman.EncodeMarked(number)) == strip(user)
}

func (s *Session) ID() string                   { return s.id }
func (s *Session) Number() int                  { return s.current }
func (s *Session) Difficulty() roman.Difficulty { return s.difficulty }
func (s *Session) Direction() Direction         { return s.direction }
func (s *Session) Answered() bool               { return s.answered }
func (s *Session) Correct() bool                { return s.correct }
func (s *Session) Answer() string               { return s.answer }
func (s *Session) Score() Score                 { return s.score }

// Prompt is the instruction shown above the question.
func (s *Session) Prompt() string {
	if s.direction == RomanToArabic {
		return "Convert to Arabic number:"
	}
	return "Convert to Roman numerals:"
}

// Placeholder is the input hint.
func (s *Session) Placeholder() string {
	if s.direction == RomanToArabic {
		return "Enter number..."
	}
	return "Enter Roman numeral..."
}

// Question is the value the user must convert: the grouped Arabic number,
// or the marked numeral.
func (s *Session) Question() string {
	if s.direction == RomanToArabic {
		return roman.EncodeMarked(s.current)
	}
	return humanize.Comma(int64(s.current))
}

// CorrectAnswer is the expected answer in the target notation.
func (s *Session) CorrectAnswer() string {
	if s.direction == RomanToArabic {
		return humanize.Comma(int64(s.current))
	}
	return roman.EncodeMarked(s.current)
}
