package http

import (
	nethttp "net/http"

	"github.com/quizforge/quizforge/internal/catalog"
)

// GET /catalog returns the full snapshot, as the UI renders from it.
func CatalogHandler(holder *catalog.SnapshotHolder) nethttp.HandlerFunc {
	type out struct {
		Categories []catalog.Category `json:"categories"`
		Quizzes    []catalog.Quiz     `json:"quizzes"`
		Questions  []catalog.Question `json:"questions"`
	}
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		snap := holder.Current()
		writeJSON(w, nethttp.StatusOK, out{
			Categories: nonNilCats(snap.Categories),
			Quizzes:    nonNilQuizzes(snap.Quizzes),
			Questions:  nonNilQuestions(snap.Questions),
		})
	}
}

// POST /catalog/refresh re-fetches all three collections and swaps the
// snapshot. Every mutation path calls this internally; the route exists so
// clients can force a reload.
func RefreshHandler(holder *catalog.SnapshotHolder) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		if err := holder.Refresh(r.Context()); err != nil {
			writeErr(w, nethttp.StatusInternalServerError, "refresh_failed", err.Error())
			return
		}
		w.WriteHeader(nethttp.StatusNoContent)
	}
}

// GET /overview lists per-quiz question counts with full paths (the authoring
// screen's summary pills).
func OverviewHandler(holder *catalog.SnapshotHolder) nethttp.HandlerFunc {
	type entry struct {
		QuizID    string `json:"quiz_id"`
		Label     string `json:"label"`
		Questions int    `json:"questions"`
	}
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		snap := holder.Current()
		counts := map[string]int{}
		for _, q := range snap.Questions {
			counts[q.QuizID]++
		}
		out := make([]entry, 0, len(counts))
		for _, qz := range snap.Quizzes {
			n, ok := counts[qz.ID]
			if !ok {
				continue
			}
			out = append(out, entry{QuizID: qz.ID, Label: snap.QuizPath(qz), Questions: n})
		}
		writeJSON(w, nethttp.StatusOK, out)
	}
}

func nonNilCats(in []catalog.Category) []catalog.Category {
	if in == nil {
		return []catalog.Category{}
	}
	return in
}

func nonNilQuizzes(in []catalog.Quiz) []catalog.Quiz {
	if in == nil {
		return []catalog.Quiz{}
	}
	return in
}

func nonNilQuestions(in []catalog.Question) []catalog.Question {
	if in == nil {
		return []catalog.Question{}
	}
	return in
}
