package catalog_test

import (
	"context"
	"errors"
	"testing"

	"github.com/quizforge/quizforge/internal/catalog"
)

func TestRefreshSwapsSnapshot(t *testing.T) {
	h, s := seededSnapshot()

	before := h.Current()
	if len(before.Quizzes) != 2 {
		t.Fatalf("want 2 quizzes, got %d", len(before.Quizzes))
	}

	s.quizzes = append(s.quizzes, catalog.Quiz{ID: "new", Title: "Momentum", CategoryID: "mechanics"})
	// The held snapshot must not see the store mutation until Refresh.
	if len(h.Current().Quizzes) != 2 {
		t.Fatal("snapshot changed without a refresh")
	}
	if err := h.Refresh(context.Background()); err != nil {
		t.Fatal(err)
	}
	if len(h.Current().Quizzes) != 3 {
		t.Fatalf("want 3 quizzes after refresh, got %d", len(h.Current().Quizzes))
	}
	if before == h.Current() {
		t.Fatal("refresh must swap in a fresh snapshot value")
	}
}

func TestRefreshFailureKeepsOldSnapshot(t *testing.T) {
	h, s := seededSnapshot()

	s.failWith = errors.New("store down")
	if err := h.Refresh(context.Background()); err == nil {
		t.Fatal("want refresh error")
	}
	// The previous snapshot stays in place so reads keep working.
	if len(h.Current().Categories) != 5 {
		t.Fatalf("old snapshot lost: %d categories", len(h.Current().Categories))
	}
}

func TestClear(t *testing.T) {
	h, _ := seededSnapshot()
	h.Clear()
	snap := h.Current()
	if snap == nil {
		t.Fatal("Current must never return nil")
	}
	if len(snap.Categories)+len(snap.Quizzes)+len(snap.Questions) != 0 {
		t.Fatal("clear must empty all collections")
	}
}

func TestSnapshotLookups(t *testing.T) {
	h, _ := seededSnapshot()
	snap := h.Current()

	if _, ok := snap.CategoryByID("algebra"); !ok {
		t.Fatal("algebra should resolve")
	}
	if _, ok := snap.QuizByID("bogus"); ok {
		t.Fatal("bogus quiz should not resolve")
	}
	if got := snap.QuizzesOf("algebra"); len(got) != 1 || got[0].ID != "lin" {
		t.Fatalf("quizzes of algebra: %v", got)
	}
	if got := snap.QuestionsOf("lin"); len(got) != 2 {
		t.Fatalf("want 2 questions of lin, got %d", len(got))
	}
	if got := snap.QuestionsOf("nope"); got == nil || len(got) != 0 {
		t.Fatalf("unknown quiz should yield empty non-nil slice, got %#v", got)
	}
}
