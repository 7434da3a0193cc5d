package http

import (
	"encoding/json"

	nethttp "net/http"

	"github.com/go-chi/chi/v5"

	authmw "github.com/quizforge/quizforge/internal/auth/middleware"
	"github.com/quizforge/quizforge/internal/catalog"
	"github.com/quizforge/quizforge/internal/picker"
)

func pickerFor(r *nethttp.Request, pickers *picker.Registry) (*picker.Picker, bool) {
	purpose := chi.URLParam(r, "purpose")
	if !picker.ValidPurpose(purpose) {
		return nil, false
	}
	user := authmw.IdentityFromContext(r.Context())
	return pickers.Get(user.Sub, purpose), true
}

// GET /pickers/{purpose} renders the three candidate lists with the
// caller's current selection reconciled against the latest snapshot.
func PickerViewHandler(holder *catalog.SnapshotHolder, pickers *picker.Registry) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		p, ok := pickerFor(r, pickers)
		if !ok {
			writeErr(w, nethttp.StatusNotFound, "not_found", "unknown picker purpose")
			return
		}
		writeJSON(w, nethttp.StatusOK, p.Render(holder.Current()))
	}
}

// POST /pickers/{purpose}/select  { "tier": "lesson|topic|quiz", "id": "..." }
// Selecting an upstream tier clears everything beneath it; the response is
// the rendered view after reconciliation, so an invalid id simply falls
// back to the default.
func PickerSelectHandler(holder *catalog.SnapshotHolder, pickers *picker.Registry) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		p, ok := pickerFor(r, pickers)
		if !ok {
			writeErr(w, nethttp.StatusNotFound, "not_found", "unknown picker purpose")
			return
		}
		var req struct {
			Tier picker.Tier `json:"tier"`
			ID   string      `json:"id"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeErr(w, nethttp.StatusBadRequest, "validation", "bad json")
			return
		}
		switch req.Tier {
		case picker.TierLesson:
			p.SelectLesson(req.ID)
		case picker.TierTopic:
			p.SelectTopic(req.ID)
		case picker.TierQuiz:
			p.SelectQuiz(req.ID)
		default:
			writeErr(w, nethttp.StatusBadRequest, "validation", "tier must be lesson, topic or quiz")
			return
		}
		writeJSON(w, nethttp.StatusOK, p.Render(holder.Current()))
	}
}

// POST /pickers/{purpose}/filter  { "tier": "...", "q": "..." }
func PickerFilterHandler(holder *catalog.SnapshotHolder, pickers *picker.Registry) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		p, ok := pickerFor(r, pickers)
		if !ok {
			writeErr(w, nethttp.StatusNotFound, "not_found", "unknown picker purpose")
			return
		}
		var req struct {
			Tier picker.Tier `json:"tier"`
			Q    string      `json:"q"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeErr(w, nethttp.StatusBadRequest, "validation", "bad json")
			return
		}
		switch req.Tier {
		case picker.TierLesson, picker.TierTopic, picker.TierQuiz:
			p.SetFilter(req.Tier, req.Q)
		default:
			writeErr(w, nethttp.StatusBadRequest, "validation", "tier must be lesson, topic or quiz")
			return
		}
		writeJSON(w, nethttp.StatusOK, p.Render(holder.Current()))
	}
}

// POST /pickers/{purpose}/reset clears the selection and all filters.
func PickerResetHandler(holder *catalog.SnapshotHolder, pickers *picker.Registry) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		p, ok := pickerFor(r, pickers)
		if !ok {
			writeErr(w, nethttp.StatusNotFound, "not_found", "unknown picker purpose")
			return
		}
		p.Reset()
		writeJSON(w, nethttp.StatusOK, p.Render(holder.Current()))
	}
}
