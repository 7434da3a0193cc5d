package catalog

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
)

type SQLStore struct {
	db     *sql.DB
	driver string // "sqlite" or "postgres"
}

func NewSQLStore(db *sql.DB, driver string) *SQLStore {
	return &SQLStore{db: db, driver: driver}
}

// Listing order is creation order; every consumer treats it as the
// collection's natural order (pickers pick defaults from it).

func (s *SQLStore) ListCategories(ctx context.Context) ([]Category, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, COALESCE(parent_id,'') FROM categories ORDER BY created_at, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]Category, 0, 16)
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Name, &c.ParentID); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *SQLStore) ListQuizzes(ctx context.Context) ([]Quiz, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, category_id FROM quizzes ORDER BY created_at, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]Quiz, 0, 16)
	for rows.Next() {
		var q Quiz
		if err := rows.Scan(&q.ID, &q.Title, &q.CategoryID); err != nil {
			return nil, err
		}
		out = append(out, q)
	}
	return out, rows.Err()
}

func (s *SQLStore) ListQuestions(ctx context.Context) ([]Question, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, quiz_id, correct, image_url, storage_path, explain_text FROM questions ORDER BY created_at, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanQuestions(rows)
}

func (s *SQLStore) QuestionsByQuiz(ctx context.Context, quizID string) ([]Question, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, quiz_id, correct, image_url, storage_path, explain_text FROM questions
		  WHERE quiz_id=$1 ORDER BY created_at, id`, quizID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanQuestions(rows)
}

func scanQuestions(rows *sql.Rows) ([]Question, error) {
	out := make([]Question, 0, 16)
	for rows.Next() {
		var q Question
		if err := rows.Scan(&q.ID, &q.QuizID, &q.Correct, &q.ImageURL, &q.StoragePath, &q.Explain); err != nil {
			return nil, err
		}
		out = append(out, q)
	}
	return out, rows.Err()
}

func (s *SQLStore) InsertCategory(ctx context.Context, c Category) (string, error) {
	id := uuid.NewString()
	var parent any
	if c.ParentID != "" {
		parent = c.ParentID
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO categories (id, name, parent_id, created_at) VALUES ($1,$2,$3,$4)`,
		id, c.Name, parent, time.Now().Unix())
	if err != nil {
		return "", err
	}
	return id, nil
}

func (s *SQLStore) InsertQuiz(ctx context.Context, q Quiz) (string, error) {
	id := uuid.NewString()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO quizzes (id, title, category_id, created_at) VALUES ($1,$2,$3,$4)`,
		id, q.Title, q.CategoryID, time.Now().Unix())
	if err != nil {
		return "", err
	}
	return id, nil
}

func (s *SQLStore) InsertQuestion(ctx context.Context, q Question) (string, error) {
	id := uuid.NewString()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO questions (id, quiz_id, correct, image_url, storage_path, explain_text, created_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		id, q.QuizID, q.Correct, q.ImageURL, q.StoragePath, q.Explain, time.Now().Unix())
	if err != nil {
		return "", err
	}
	return id, nil
}

func (s *SQLStore) DeleteCategory(ctx context.Context, id string) error {
	return s.deleteByID(ctx, `DELETE FROM categories WHERE id=$1`, id)
}

func (s *SQLStore) DeleteQuiz(ctx context.Context, id string) error {
	return s.deleteByID(ctx, `DELETE FROM quizzes WHERE id=$1`, id)
}

func (s *SQLStore) DeleteQuestion(ctx context.Context, id string) error {
	return s.deleteByID(ctx, `DELETE FROM questions WHERE id=$1`, id)
}

func (s *SQLStore) deleteByID(ctx context.Context, stmt, id string) error {
	res, err := s.db.ExecContext(ctx, stmt, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}
