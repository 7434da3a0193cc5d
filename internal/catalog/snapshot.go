package catalog

import (
	"context"
	"sync"
)

// Snapshot is an immutable in-memory copy of all three collections. Every
// render pass reads one snapshot; mutations go to the Store and are followed
// by a full Refresh, never by editing a snapshot in place.
type Snapshot struct {
	Categories []Category
	Quizzes    []Quiz
	Questions  []Question
}

func (s *Snapshot) CategoryByID(id string) (Category, bool) {
	for _, c := range s.Categories {
		if c.ID == id {
			return c, true
		}
	}
	return Category{}, false
}

func (s *Snapshot) QuizByID(id string) (Quiz, bool) {
	for _, q := range s.Quizzes {
		if q.ID == id {
			return q, true
		}
	}
	return Quiz{}, false
}

func (s *Snapshot) QuizzesOf(categoryID string) []Quiz {
	out := make([]Quiz, 0, 8)
	for _, q := range s.Quizzes {
		if q.CategoryID == categoryID {
			out = append(out, q)
		}
	}
	return out
}

func (s *Snapshot) QuestionsOf(quizID string) []Question {
	out := make([]Question, 0, 8)
	for _, q := range s.Questions {
		if q.QuizID == quizID {
			out = append(out, q)
		}
	}
	return out
}

// SnapshotHolder owns the authoritative snapshot. Refresh fetches all three
// collections in full and swaps the snapshot atomically; there is no partial
// update path. Small dataset, so full refresh beats invalidation logic.
type SnapshotHolder struct {
	store Store

	mu   sync.RWMutex
	snap *Snapshot
}

func NewSnapshotHolder(store Store) *SnapshotHolder {
	return &SnapshotHolder{store: store, snap: &Snapshot{}}
}

func (h *SnapshotHolder) Refresh(ctx context.Context) error {
	cats, err := h.store.ListCategories(ctx)
	if err != nil {
		return err
	}
	quizzes, err := h.store.ListQuizzes(ctx)
	if err != nil {
		return err
	}
	questions, err := h.store.ListQuestions(ctx)
	if err != nil {
		return err
	}
	h.mu.Lock()
	h.snap = &Snapshot{Categories: cats, Quizzes: quizzes, Questions: questions}
	h.mu.Unlock()
	return nil
}

func (h *SnapshotHolder) Clear() {
	h.mu.Lock()
	h.snap = &Snapshot{}
	h.mu.Unlock()
}

// Current never returns nil.
func (h *SnapshotHolder) Current() *Snapshot {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.snap
}
