package http

import (
	"encoding/json"
	"strings"

	nethttp "net/http"

	authmw "github.com/quizforge/quizforge/internal/auth/middleware"
	"github.com/quizforge/quizforge/internal/catalog"
	"github.com/quizforge/quizforge/internal/images"
	"github.com/quizforge/quizforge/internal/picker"
)

// POST /questions  { "quiz_id": "" | id, "correct": "A".."E", "explain": "" }
// A question can only be created around the author's pending image; creating
// it consumes that image. An omitted quiz falls back to the authoring
// picker's selection.
func CreateQuestionHandler(store catalog.Store, holder *catalog.SnapshotHolder, pickers *picker.Registry, pipeline *images.Pipeline, events catalog.EventSink) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		var req struct {
			QuizID  string `json:"quiz_id"`
			Correct string `json:"correct"`
			Explain string `json:"explain"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeErr(w, nethttp.StatusBadRequest, "validation", "bad json")
			return
		}
		user := authmw.IdentityFromContext(r.Context())
		snap := holder.Current()

		if req.QuizID == "" {
			req.QuizID = pickers.Get(user.Sub, picker.PurposeAuthor).Render(snap).QuizID
		}
		if req.QuizID == "" {
			writeErr(w, nethttp.StatusBadRequest, "validation", "select a quiz first (lesson, topic, quiz)")
			return
		}
		if _, ok := snap.QuizByID(req.QuizID); !ok {
			writeErr(w, nethttp.StatusBadRequest, "validation", "quiz not found")
			return
		}
		if !catalog.ValidChoice(req.Correct) {
			writeErr(w, nethttp.StatusBadRequest, "validation", "pick the correct choice (A-E)")
			return
		}
		// Take consumes the pending image, so two racing creations cannot
		// attach the same upload.
		pending, ok := pipeline.Take(user.Sub)
		if !ok {
			writeErr(w, nethttp.StatusBadRequest, "validation", "paste and upload an image first")
			return
		}

		id, err := store.InsertQuestion(r.Context(), catalog.Question{
			QuizID:      req.QuizID,
			Correct:     req.Correct,
			ImageURL:    pending.ImageURL,
			StoragePath: pending.StoragePath,
			Explain:     strings.TrimSpace(req.Explain),
		})
		if err != nil {
			writeErr(w, nethttp.StatusInternalServerError, "db_error", err.Error())
			return
		}
		recordEvent(r.Context(), events, "QuestionCreated", id, map[string]string{"quiz_id": req.QuizID})
		if err := holder.Refresh(r.Context()); err != nil {
			writeErr(w, nethttp.StatusInternalServerError, "refresh_failed", err.Error())
			return
		}
		writeJSON(w, nethttp.StatusCreated, map[string]string{"id": id})
	}
}
