package catalog_test

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/quizforge/quizforge/internal/catalog"
)

/* ---------------- In-memory fakes shared by the package tests ---------------- */

type fakeStore struct {
	categories []catalog.Category
	quizzes    []catalog.Quiz
	questions  []catalog.Question

	nextID   int
	failWith error // when set, every call fails
}

func (s *fakeStore) id(prefix string) string {
	s.nextID++
	return fmt.Sprintf("%s-%d", prefix, s.nextID)
}

func (s *fakeStore) ListCategories(ctx context.Context) ([]catalog.Category, error) {
	if s.failWith != nil {
		return nil, s.failWith
	}
	return append([]catalog.Category(nil), s.categories...), nil
}

func (s *fakeStore) ListQuizzes(ctx context.Context) ([]catalog.Quiz, error) {
	if s.failWith != nil {
		return nil, s.failWith
	}
	return append([]catalog.Quiz(nil), s.quizzes...), nil
}

func (s *fakeStore) ListQuestions(ctx context.Context) ([]catalog.Question, error) {
	if s.failWith != nil {
		return nil, s.failWith
	}
	return append([]catalog.Question(nil), s.questions...), nil
}

func (s *fakeStore) QuestionsByQuiz(ctx context.Context, quizID string) ([]catalog.Question, error) {
	if s.failWith != nil {
		return nil, s.failWith
	}
	out := []catalog.Question{}
	for _, q := range s.questions {
		if q.QuizID == quizID {
			out = append(out, q)
		}
	}
	return out, nil
}

func (s *fakeStore) InsertCategory(ctx context.Context, c catalog.Category) (string, error) {
	if s.failWith != nil {
		return "", s.failWith
	}
	c.ID = s.id("cat")
	s.categories = append(s.categories, c)
	return c.ID, nil
}

func (s *fakeStore) InsertQuiz(ctx context.Context, q catalog.Quiz) (string, error) {
	if s.failWith != nil {
		return "", s.failWith
	}
	q.ID = s.id("quiz")
	s.quizzes = append(s.quizzes, q)
	return q.ID, nil
}

func (s *fakeStore) InsertQuestion(ctx context.Context, q catalog.Question) (string, error) {
	if s.failWith != nil {
		return "", s.failWith
	}
	q.ID = s.id("qst")
	s.questions = append(s.questions, q)
	return q.ID, nil
}

func (s *fakeStore) DeleteCategory(ctx context.Context, id string) error {
	if s.failWith != nil {
		return s.failWith
	}
	for i, c := range s.categories {
		if c.ID == id {
			s.categories = append(s.categories[:i], s.categories[i+1:]...)
			return nil
		}
	}
	return catalog.ErrNotFound
}

func (s *fakeStore) DeleteQuiz(ctx context.Context, id string) error {
	if s.failWith != nil {
		return s.failWith
	}
	for i, q := range s.quizzes {
		if q.ID == id {
			s.quizzes = append(s.quizzes[:i], s.quizzes[i+1:]...)
			return nil
		}
	}
	return catalog.ErrNotFound
}

func (s *fakeStore) DeleteQuestion(ctx context.Context, id string) error {
	if s.failWith != nil {
		return s.failWith
	}
	for i, q := range s.questions {
		if q.ID == id {
			s.questions = append(s.questions[:i], s.questions[i+1:]...)
			return nil
		}
	}
	return catalog.ErrNotFound
}

// fakeBlobs records deletions and can be told to fail specific keys.
type fakeBlobs struct {
	deleted  []string
	failKeys map[string]bool
}

func (b *fakeBlobs) Put(key string, r io.Reader) (string, error) { return key, nil }

func (b *fakeBlobs) Get(key string) (io.ReadCloser, error) {
	return io.NopCloser(strings.NewReader("")), nil
}

func (b *fakeBlobs) Delete(key string) error {
	if b.failKeys[key] {
		return fmt.Errorf("object %s unreachable", key)
	}
	b.deleted = append(b.deleted, key)
	return nil
}

func (b *fakeBlobs) SignedURL(key string) (string, error) { return "/assets/" + key, nil }

type eventRec struct {
	Typ string
	Key string
}

type fakeEvents struct {
	recs     []eventRec
	failWith error
}

func (e *fakeEvents) Append(ctx context.Context, typ, key string, data any) error {
	if e.failWith != nil {
		return e.failWith
	}
	e.recs = append(e.recs, eventRec{Typ: typ, Key: key})
	return nil
}

/* ---------------- fixture ---------------- */

// seededStore builds the two-lesson fixture used across the tests:
//
//	Math
//	  Algebra    (quiz "Linear Equations" with 2 questions)
//	  Geometry   (quiz "Angles" with 1 question)
//	Physics
//	  Mechanics  (no quizzes)
func seededStore() *fakeStore {
	s := &fakeStore{}
	s.categories = []catalog.Category{
		{ID: "math", Name: "Math"},
		{ID: "algebra", Name: "Algebra", ParentID: "math"},
		{ID: "geometry", Name: "Geometry", ParentID: "math"},
		{ID: "physics", Name: "Physics"},
		{ID: "mechanics", Name: "Mechanics", ParentID: "physics"},
	}
	s.quizzes = []catalog.Quiz{
		{ID: "lin", Title: "Linear Equations", CategoryID: "algebra"},
		{ID: "ang", Title: "Angles", CategoryID: "geometry"},
	}
	s.questions = []catalog.Question{
		{ID: "q1", QuizID: "lin", Correct: "A", ImageURL: "/assets/questions/q1.png", StoragePath: "questions/q1.png"},
		{ID: "q2", QuizID: "lin", Correct: "C", ImageURL: "/assets/questions/q2.png", StoragePath: "questions/q2.png"},
		{ID: "q3", QuizID: "ang", Correct: "B", ImageURL: "/assets/questions/q3.png", StoragePath: "questions/q3.png"},
	}
	return s
}

func seededSnapshot() (*catalog.SnapshotHolder, *fakeStore) {
	s := seededStore()
	h := catalog.NewSnapshotHolder(s)
	if err := h.Refresh(context.Background()); err != nil {
		panic(err)
	}
	return h, s
}
