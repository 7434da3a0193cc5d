package http

import (
	"encoding/json"
	"errors"
	"strings"

	nethttp "net/http"

	"github.com/go-chi/chi/v5"

	authmw "github.com/quizforge/quizforge/internal/auth/middleware"
	"github.com/quizforge/quizforge/internal/catalog"
	"github.com/quizforge/quizforge/internal/picker"
)

// POST /quizzes  { "title": "...", "category_id": "" | topicID }
// An omitted category falls back to the builder picker's selected topic,
// mirroring the "add test here" flow.
func CreateQuizHandler(store catalog.Store, holder *catalog.SnapshotHolder, pickers *picker.Registry, events catalog.EventSink) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		var req struct {
			Title      string `json:"title"`
			CategoryID string `json:"category_id"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeErr(w, nethttp.StatusBadRequest, "validation", "bad json")
			return
		}
		req.Title = strings.TrimSpace(req.Title)
		if req.Title == "" {
			writeErr(w, nethttp.StatusBadRequest, "validation", "title must not be empty")
			return
		}
		snap := holder.Current()
		if req.CategoryID == "" {
			user := authmw.IdentityFromContext(r.Context())
			req.CategoryID = pickers.Get(user.Sub, picker.PurposeBuilder).Render(snap).TopicID
		}
		if req.CategoryID == "" {
			writeErr(w, nethttp.StatusBadRequest, "validation", "select a topic first")
			return
		}
		if _, ok := snap.CategoryByID(req.CategoryID); !ok {
			writeErr(w, nethttp.StatusBadRequest, "validation", "category not found")
			return
		}
		id, err := store.InsertQuiz(r.Context(), catalog.Quiz{Title: req.Title, CategoryID: req.CategoryID})
		if err != nil {
			writeErr(w, nethttp.StatusInternalServerError, "db_error", err.Error())
			return
		}
		recordEvent(r.Context(), events, "QuizCreated", id, map[string]string{"title": req.Title})
		if err := holder.Refresh(r.Context()); err != nil {
			writeErr(w, nethttp.StatusInternalServerError, "refresh_failed", err.Error())
			return
		}
		writeJSON(w, nethttp.StatusCreated, map[string]string{"id": id})
	}
}

// GET /quizzes/{quizID}/plan
func QuizPlanHandler(holder *catalog.SnapshotHolder, cascader *catalog.Cascader) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		plan, err := cascader.PlanQuiz(holder.Current(), chi.URLParam(r, "quizID"))
		if err != nil {
			writeErr(w, nethttp.StatusNotFound, "not_found", err.Error())
			return
		}
		writeJSON(w, nethttp.StatusOK, plan)
	}
}

// DELETE /quizzes/{quizID}  { "confirm": true }
func DeleteQuizHandler(holder *catalog.SnapshotHolder, cascader *catalog.Cascader) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		plan, err := cascader.PlanQuiz(holder.Current(), chi.URLParam(r, "quizID"))
		if err != nil {
			writeErr(w, nethttp.StatusNotFound, "not_found", err.Error())
			return
		}
		var req struct {
			Confirm bool `json:"confirm"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || !req.Confirm {
			writeJSON(w, nethttp.StatusConflict, map[string]any{
				"code":    "confirm_required",
				"message": "confirm deletion of " + plan.Label,
				"plan":    plan,
			})
			return
		}
		if err := cascader.DeleteQuiz(r.Context(), plan.QuizID); err != nil {
			status := nethttp.StatusInternalServerError
			if errors.Is(err, catalog.ErrNotFound) {
				status = nethttp.StatusNotFound
			}
			writeErr(w, status, "delete_failed", err.Error())
			return
		}
		if err := holder.Refresh(r.Context()); err != nil {
			writeErr(w, nethttp.StatusInternalServerError, "refresh_failed", err.Error())
			return
		}
		writeJSON(w, nethttp.StatusOK, plan)
	}
}
