package catalog_test

import (
	"context"
	"errors"
	"testing"

	"github.com/quizforge/quizforge/internal/catalog"
)

func TestPlanQuiz(t *testing.T) {
	h, s := seededSnapshot()
	c := catalog.NewCascader(s, &fakeBlobs{}, nil)

	plan, err := c.PlanQuiz(h.Current(), "lin")
	if err != nil {
		t.Fatal(err)
	}
	if plan.Label != "Math / Algebra / Linear Equations" {
		t.Fatalf("label: %q", plan.Label)
	}
	if plan.QuestionCount != 2 {
		t.Fatalf("question count: %d", plan.QuestionCount)
	}

	if _, err := c.PlanQuiz(h.Current(), "nope"); !errors.Is(err, catalog.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestPlanTopic(t *testing.T) {
	h, s := seededSnapshot()
	c := catalog.NewCascader(s, &fakeBlobs{}, nil)

	plan, err := c.PlanTopic(h.Current(), "math")
	if err != nil {
		t.Fatal(err)
	}
	if len(plan.CategoryIDs) != 3 {
		t.Fatalf("want math+2 children, got %v", plan.CategoryIDs)
	}
	if plan.CategoryIDs[0] != "math" {
		t.Fatalf("traversal must start at the root, got %v", plan.CategoryIDs)
	}
	if len(plan.QuizIDs) != 2 || plan.QuestionCount != 3 {
		t.Fatalf("quizzes=%v questions=%d", plan.QuizIDs, plan.QuestionCount)
	}
}

func TestDeleteQuizRemovesQuestionsAndBlobs(t *testing.T) {
	s := seededStore()
	blobs := &fakeBlobs{}
	events := &fakeEvents{}
	c := catalog.NewCascader(s, blobs, events)

	if err := c.DeleteQuiz(context.Background(), "lin"); err != nil {
		t.Fatal(err)
	}
	if len(s.quizzes) != 1 {
		t.Fatalf("quiz not removed: %v", s.quizzes)
	}
	for _, q := range s.questions {
		if q.QuizID == "lin" {
			t.Fatalf("question %s stranded", q.ID)
		}
	}
	if len(blobs.deleted) != 2 {
		t.Fatalf("want 2 blob deletions, got %v", blobs.deleted)
	}
	if len(events.recs) != 1 || events.recs[0].Typ != "QuizDeleted" {
		t.Fatalf("events: %v", events.recs)
	}
}

func TestDeleteTopicCascades(t *testing.T) {
	h, s := seededSnapshot()
	blobs := &fakeBlobs{}
	c := catalog.NewCascader(s, blobs, nil)

	plan, err := c.PlanTopic(h.Current(), "math")
	if err != nil {
		t.Fatal(err)
	}
	if err := c.DeleteTopic(context.Background(), plan); err != nil {
		t.Fatal(err)
	}

	// Math and both its children are gone; Physics survives untouched.
	if len(s.categories) != 2 {
		t.Fatalf("categories left: %v", s.categories)
	}
	for _, cat := range s.categories {
		if cat.ID != "physics" && cat.ID != "mechanics" {
			t.Fatalf("unexpected survivor %s", cat.ID)
		}
	}
	if len(s.quizzes) != 0 || len(s.questions) != 0 {
		t.Fatalf("content stranded: quizzes=%v questions=%v", s.quizzes, s.questions)
	}
	if len(blobs.deleted) != 3 {
		t.Fatalf("want 3 blob deletions, got %v", blobs.deleted)
	}
}

func TestDeleteTopicSwallowsBlobFailures(t *testing.T) {
	h, s := seededSnapshot()
	blobs := &fakeBlobs{failKeys: map[string]bool{"questions/q2.png": true}}
	c := catalog.NewCascader(s, blobs, nil)

	plan, err := c.PlanTopic(h.Current(), "math")
	if err != nil {
		t.Fatal(err)
	}
	// An unreachable object must not block the cascade.
	if err := c.DeleteTopic(context.Background(), plan); err != nil {
		t.Fatal(err)
	}
	if len(s.questions) != 0 {
		t.Fatalf("records must still be deleted: %v", s.questions)
	}
}

func TestDeleteTopicAbortsOnRecordFailure(t *testing.T) {
	h, s := seededSnapshot()
	c := catalog.NewCascader(s, &fakeBlobs{}, nil)

	plan, err := c.PlanTopic(h.Current(), "math")
	if err != nil {
		t.Fatal(err)
	}
	boom := errors.New("db gone")
	s.failWith = boom
	err = c.DeleteTopic(context.Background(), plan)
	if !errors.Is(err, boom) {
		t.Fatalf("want wrapped store error, got %v", err)
	}
}
