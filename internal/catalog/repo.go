package catalog

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("not found")

// Store is the record side of the remote data gateway: three flat
// collections, listed in full, inserted into, and deleted from by id.
// Records are never updated in place.
type Store interface {
	ListCategories(ctx context.Context) ([]Category, error)
	ListQuizzes(ctx context.Context) ([]Quiz, error)
	ListQuestions(ctx context.Context) ([]Question, error)

	// QuestionsByQuiz is the one equality query the cascade needs.
	QuestionsByQuiz(ctx context.Context, quizID string) ([]Question, error)

	InsertCategory(ctx context.Context, c Category) (string, error)
	InsertQuiz(ctx context.Context, q Quiz) (string, error)
	InsertQuestion(ctx context.Context, q Question) (string, error)

	DeleteCategory(ctx context.Context, id string) error
	DeleteQuiz(ctx context.Context, id string) error
	DeleteQuestion(ctx context.Context, id string) error
}
