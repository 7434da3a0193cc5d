package catalog

import (
	"context"
	"fmt"
	"log"

	"github.com/quizforge/quizforge/internal/storage"
)

// EventSink records mutation events. Satisfied by audit.EventRepo; nil
// disables recording.
type EventSink interface {
	Append(ctx context.Context, typ, key string, data any) error
}

// Cascader deletes a quiz or a whole topic together with everything that
// structurally depends on it: stored images first (best effort), then
// question records, then quiz records, then categories deepest-first.
//
// A blob-deletion failure is logged and swallowed; an orphaned object is a
// lesser harm than a blocked cascade. A record-deletion failure aborts
// immediately and may leave the store partially deleted; there is no
// compensating transaction.
type Cascader struct {
	store  Store
	blobs  storage.BlobStore
	events EventSink
}

func NewCascader(store Store, blobs storage.BlobStore, events EventSink) *Cascader {
	return &Cascader{store: store, blobs: blobs, events: events}
}

// QuizPlan is the operator-confirmation summary for deleting one quiz.
type QuizPlan struct {
	QuizID        string `json:"quiz_id"`
	Label         string `json:"label"` // "Lesson / Topic / Title"
	QuestionCount int    `json:"question_count"`
}

// TopicPlan is the operator-confirmation summary for deleting a topic and
// everything beneath it.
type TopicPlan struct {
	TopicID       string   `json:"topic_id"`
	Label         string   `json:"label"`
	CategoryIDs   []string `json:"category_ids"` // topic plus descendants, traversal order
	QuizIDs       []string `json:"quiz_ids"`
	QuestionCount int      `json:"question_count"`
}

func (c *Cascader) PlanQuiz(snap *Snapshot, quizID string) (QuizPlan, error) {
	qz, ok := snap.QuizByID(quizID)
	if !ok {
		return QuizPlan{}, fmt.Errorf("quiz %s: %w", quizID, ErrNotFound)
	}
	return QuizPlan{
		QuizID:        quizID,
		Label:         snap.QuizPath(qz),
		QuestionCount: len(snap.QuestionsOf(quizID)),
	}, nil
}

func (c *Cascader) PlanTopic(snap *Snapshot, topicID string) (TopicPlan, error) {
	if _, ok := snap.CategoryByID(topicID); !ok {
		return TopicPlan{}, fmt.Errorf("category %s: %w", topicID, ErrNotFound)
	}
	catIDs := snap.Descendants(topicID)
	inSet := make(map[string]bool, len(catIDs))
	for _, id := range catIDs {
		inSet[id] = true
	}
	quizIDs := make([]string, 0, 8)
	questions := 0
	for _, qz := range snap.Quizzes {
		if inSet[qz.CategoryID] {
			quizIDs = append(quizIDs, qz.ID)
			questions += len(snap.QuestionsOf(qz.ID))
		}
	}
	return TopicPlan{
		TopicID:       topicID,
		Label:         snap.Path(topicID),
		CategoryIDs:   catIDs,
		QuizIDs:       quizIDs,
		QuestionCount: questions,
	}, nil
}

// DeleteQuiz removes one quiz and its questions. Questions are re-queried
// from the store rather than taken from a snapshot so a stale snapshot
// cannot strand records.
func (c *Cascader) DeleteQuiz(ctx context.Context, quizID string) error {
	if err := c.deleteQuizBody(ctx, quizID); err != nil {
		return err
	}
	c.record(ctx, "QuizDeleted", quizID, nil)
	return nil
}

// DeleteTopic removes every quiz under the plan's category set, then the
// categories themselves deepest-first, so a parent is never removed while a
// child record might still reference it.
func (c *Cascader) DeleteTopic(ctx context.Context, plan TopicPlan) error {
	for _, quizID := range plan.QuizIDs {
		if err := c.deleteQuizBody(ctx, quizID); err != nil {
			return err
		}
	}
	for i := len(plan.CategoryIDs) - 1; i >= 0; i-- {
		if err := c.store.DeleteCategory(ctx, plan.CategoryIDs[i]); err != nil {
			return fmt.Errorf("delete category %s: %w", plan.CategoryIDs[i], err)
		}
	}
	c.record(ctx, "TopicDeleted", plan.TopicID, map[string]any{
		"label":   plan.Label,
		"quizzes": len(plan.QuizIDs),
	})
	return nil
}

func (c *Cascader) deleteQuizBody(ctx context.Context, quizID string) error {
	questions, err := c.store.QuestionsByQuiz(ctx, quizID)
	if err != nil {
		return fmt.Errorf("list questions of quiz %s: %w", quizID, err)
	}
	for _, q := range questions {
		if q.StoragePath != "" {
			if err := c.blobs.Delete(q.StoragePath); err != nil {
				log.Printf("cascade: image delete ignored: %s: %v", q.StoragePath, err)
			}
		}
		if err := c.store.DeleteQuestion(ctx, q.ID); err != nil {
			return fmt.Errorf("delete question %s: %w", q.ID, err)
		}
	}
	if err := c.store.DeleteQuiz(ctx, quizID); err != nil {
		return fmt.Errorf("delete quiz %s: %w", quizID, err)
	}
	return nil
}

func (c *Cascader) record(ctx context.Context, typ, key string, data any) {
	if c.events == nil {
		return
	}
	if err := c.events.Append(ctx, typ, key, data); err != nil {
		log.Printf("cascade: audit append failed: %v", err)
	}
}
