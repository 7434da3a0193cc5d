// Package solve tracks one user's pass through a quiz: one card per
// question, immediate right/wrong feedback, and a running score in which
// each card counts at most once.
package solve

import (
	"errors"
	"sync"

	"github.com/quizforge/quizforge/internal/catalog"
)

var (
	ErrUnknownQuestion = errors.New("question not in session")
	ErrBadChoice       = errors.New("choice must be one of A-E")
	ErrLocked          = errors.New("card already answered")
)

// Options are read once when the session starts; flipping the operator
// toggles mid-session does not affect a running session.
type Options struct {
	LockAfterAnswer    bool `json:"lock_after_answer"`
	ShowCorrectOnWrong bool `json:"show_correct_on_wrong"`
}

type Score struct {
	Total    int `json:"total"`
	Answered int `json:"answered"`
	Correct  int `json:"correct"`
}

type card struct {
	q        catalog.Question
	answered bool
	chosen   string
}

type Session struct {
	mu sync.Mutex

	quizID string
	label  string
	opts   Options
	cards  []*card
	byID   map[string]*card
	score  Score
}

// New builds a session over the quiz's questions in their fetched order.
// A quiz with zero questions yields a valid session with a zeroed score.
func New(quizID, label string, questions []catalog.Question, opts Options) *Session {
	s := &Session{
		quizID: quizID,
		label:  label,
		opts:   opts,
		cards:  make([]*card, 0, len(questions)),
		byID:   make(map[string]*card, len(questions)),
		score:  Score{Total: len(questions)},
	}
	for _, q := range questions {
		c := &card{q: q}
		s.cards = append(s.cards, c)
		s.byID[q.ID] = c
	}
	return s
}

type Result struct {
	QuestionID string `json:"question_id"`
	Chosen     string `json:"chosen"`
	Correct    bool   `json:"correct"`
	// CorrectChoice is the right letter, revealed on a correct answer or,
	// when the show-correct-on-wrong toggle is set, on a wrong one.
	CorrectChoice string `json:"correct_choice,omitempty"`
	Explain       string `json:"explain,omitempty"`
	Locked        bool   `json:"locked"`
	Score         Score  `json:"score"`
}

// Answer evaluates a choice against one card. The first answer on a card
// increments the aggregate counters; later answers (when locking is off)
// re-evaluate correctness but never count again.
func (s *Session) Answer(questionID, choice string) (Result, error) {
	if !catalog.ValidChoice(choice) {
		return Result{}, ErrBadChoice
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.byID[questionID]
	if !ok {
		return Result{}, ErrUnknownQuestion
	}
	if c.answered && s.opts.LockAfterAnswer {
		return Result{}, ErrLocked
	}

	correct := choice == c.q.Correct
	if !c.answered {
		c.answered = true
		s.score.Answered++
		if correct {
			s.score.Correct++
		}
	}
	c.chosen = choice

	res := Result{
		QuestionID: questionID,
		Chosen:     choice,
		Correct:    correct,
		Explain:    c.q.Explain,
		Locked:     s.opts.LockAfterAnswer,
		Score:      s.score,
	}
	if correct {
		res.CorrectChoice = choice
	} else if s.opts.ShowCorrectOnWrong {
		res.CorrectChoice = c.q.Correct
	}
	return res, nil
}

type CardView struct {
	Index      int      `json:"index"`
	QuestionID string   `json:"question_id"`
	ImageURL   string   `json:"image_url"`
	Choices    []string `json:"choices"`
	Explain    string   `json:"explain,omitempty"`
	Answered   bool     `json:"answered"`
	Chosen     string   `json:"chosen,omitempty"`
}

type View struct {
	QuizID  string     `json:"quiz_id"`
	Label   string     `json:"label"`
	Options Options    `json:"options"`
	Score   Score      `json:"score"`
	Cards   []CardView `json:"cards"`
	// Empty is set for a quiz with no questions so clients can render the
	// placeholder instead of an empty list of cards.
	Empty bool `json:"empty,omitempty"`
}

func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	v := View{
		QuizID:  s.quizID,
		Label:   s.label,
		Options: s.opts,
		Score:   s.score,
		Cards:   make([]CardView, 0, len(s.cards)),
		Empty:   len(s.cards) == 0,
	}
	for i, c := range s.cards {
		v.Cards = append(v.Cards, CardView{
			Index:      i + 1,
			QuestionID: c.q.ID,
			ImageURL:   c.q.ImageURL,
			Choices:    catalog.Choices,
			Explain:    c.q.Explain,
			Answered:   c.answered,
			Chosen:     c.chosen,
		})
	}
	return v
}

func (s *Session) Score() Score {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.score
}
