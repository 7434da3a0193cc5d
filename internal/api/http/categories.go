package http

import (
	"encoding/json"
	"errors"
	"strings"

	nethttp "net/http"

	"github.com/go-chi/chi/v5"

	"github.com/quizforge/quizforge/internal/catalog"
)

// POST /categories  { "name": "...", "parent_id": "" | lessonID }
// Empty parent creates a lesson; a parent id creates a topic beneath it.
func CreateCategoryHandler(store catalog.Store, holder *catalog.SnapshotHolder, events catalog.EventSink) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		var req struct {
			Name     string `json:"name"`
			ParentID string `json:"parent_id"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeErr(w, nethttp.StatusBadRequest, "validation", "bad json")
			return
		}
		req.Name = strings.TrimSpace(req.Name)
		if req.Name == "" {
			writeErr(w, nethttp.StatusBadRequest, "validation", "name must not be empty")
			return
		}
		if req.ParentID != "" {
			if _, ok := holder.Current().CategoryByID(req.ParentID); !ok {
				writeErr(w, nethttp.StatusBadRequest, "validation", "parent category not found")
				return
			}
		}
		id, err := store.InsertCategory(r.Context(), catalog.Category{Name: req.Name, ParentID: req.ParentID})
		if err != nil {
			writeErr(w, nethttp.StatusInternalServerError, "db_error", err.Error())
			return
		}
		recordEvent(r.Context(), events, "CategoryCreated", id, map[string]string{"name": req.Name})
		if err := holder.Refresh(r.Context()); err != nil {
			writeErr(w, nethttp.StatusInternalServerError, "refresh_failed", err.Error())
			return
		}
		writeJSON(w, nethttp.StatusCreated, map[string]string{"id": id})
	}
}

// GET /categories/{categoryID}/plan is the deletion preview for the operator
// confirmation prompt: full label, quiz count, question count.
func TopicPlanHandler(holder *catalog.SnapshotHolder, cascader *catalog.Cascader) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		plan, err := cascader.PlanTopic(holder.Current(), chi.URLParam(r, "categoryID"))
		if err != nil {
			writeErr(w, nethttp.StatusNotFound, "not_found", err.Error())
			return
		}
		writeJSON(w, nethttp.StatusOK, plan)
	}
}

// DELETE /categories/{categoryID}  { "confirm": true }
// Removes the topic and everything beneath it. Without confirm the plan is
// returned instead, so a client cannot cascade by accident.
func DeleteTopicHandler(holder *catalog.SnapshotHolder, cascader *catalog.Cascader) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		plan, err := cascader.PlanTopic(holder.Current(), chi.URLParam(r, "categoryID"))
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
		if err := cascader.DeleteTopic(r.Context(), plan); err != nil {
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
