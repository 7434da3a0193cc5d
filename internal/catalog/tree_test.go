package catalog_test

import (
	"context"
	"sort"
	"testing"
)

func TestRootCategories(t *testing.T) {
	h, _ := seededSnapshot()
	snap := h.Current()

	roots := snap.RootCategories()
	if len(roots) != 2 {
		t.Fatalf("want 2 roots, got %d", len(roots))
	}
	ids := []string{roots[0].ID, roots[1].ID}
	sort.Strings(ids)
	if ids[0] != "math" || ids[1] != "physics" {
		t.Fatalf("unexpected roots: %v", ids)
	}
}

func TestDirectChildren(t *testing.T) {
	h, _ := seededSnapshot()
	snap := h.Current()

	kids := snap.DirectChildren("math")
	if len(kids) != 2 {
		t.Fatalf("want 2 children of math, got %d", len(kids))
	}
	for _, c := range kids {
		if c.ID == "math" {
			t.Fatal("children must not include the parent itself")
		}
	}

	if got := snap.DirectChildren("algebra"); len(got) != 0 {
		t.Fatalf("leaf category should have no children, got %v", got)
	}
	if got := snap.DirectChildren("nope"); len(got) != 0 {
		t.Fatalf("unknown parent should yield nothing, got %v", got)
	}
}

func TestDescendantsIncludesRoot(t *testing.T) {
	h, _ := seededSnapshot()
	snap := h.Current()

	ids := snap.Descendants("math")
	sort.Strings(ids)
	want := []string{"algebra", "geometry", "math"}
	if len(ids) != len(want) {
		t.Fatalf("want %v, got %v", want, ids)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("want %v, got %v", want, ids)
		}
	}

	if got := snap.Descendants("mechanics"); len(got) != 1 || got[0] != "mechanics" {
		t.Fatalf("leaf descendants should be just itself, got %v", got)
	}
}

func TestPath(t *testing.T) {
	h, _ := seededSnapshot()
	snap := h.Current()

	if got := snap.Path("algebra"); got != "Math / Algebra" {
		t.Fatalf("want %q, got %q", "Math / Algebra", got)
	}
	if got := snap.Path("math"); got != "Math" {
		t.Fatalf("root path should be its own name, got %q", got)
	}
	if got := snap.Path("missing"); got != "" {
		t.Fatalf("unknown id should yield empty path, got %q", got)
	}
}

func TestPathSurvivesCycle(t *testing.T) {
	h, s := seededSnapshot()
	// Introduce a parent cycle and refresh; Path must terminate.
	for i := range s.categories {
		if s.categories[i].ID == "math" {
			s.categories[i].ParentID = "algebra"
		}
	}
	if err := h.Refresh(context.Background()); err != nil {
		t.Fatal(err)
	}
	got := h.Current().Path("algebra")
	if got == "" {
		t.Fatal("cyclic data should still render some path")
	}
}

func TestQuizPath(t *testing.T) {
	h, _ := seededSnapshot()
	snap := h.Current()

	qz, ok := snap.QuizByID("lin")
	if !ok {
		t.Fatal("fixture quiz missing")
	}
	if got := snap.QuizPath(qz); got != "Math / Algebra / Linear Equations" {
		t.Fatalf("got %q", got)
	}
}
