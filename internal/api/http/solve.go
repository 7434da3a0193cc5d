package http

import (
	"encoding/json"
	"errors"

	nethttp "net/http"

	authmw "github.com/quizforge/quizforge/internal/auth/middleware"
	"github.com/quizforge/quizforge/internal/catalog"
	"github.com/quizforge/quizforge/internal/config"
	"github.com/quizforge/quizforge/internal/picker"
	"github.com/quizforge/quizforge/internal/solve"
)

// POST /solve/start
// { "quiz_id": "" | id, "lock_after_answer": bool?, "show_correct_on_wrong": bool? }
// An omitted quiz falls back to the solve picker's selection; omitted
// toggles fall back to the configured defaults. Starting replaces any
// running session for the user.
func StartSolveHandler(cfg config.Config, holder *catalog.SnapshotHolder, pickers *picker.Registry, sessions *solve.Registry) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		var req struct {
			QuizID             string `json:"quiz_id"`
			LockAfterAnswer    *bool  `json:"lock_after_answer"`
			ShowCorrectOnWrong *bool  `json:"show_correct_on_wrong"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeErr(w, nethttp.StatusBadRequest, "validation", "bad json")
			return
		}
		user := authmw.IdentityFromContext(r.Context())
		snap := holder.Current()

		if req.QuizID == "" {
			req.QuizID = pickers.Get(user.Sub, picker.PurposeSolve).Render(snap).QuizID
		}
		quiz, ok := snap.QuizByID(req.QuizID)
		if !ok {
			writeErr(w, nethttp.StatusBadRequest, "validation", "select a quiz first")
			return
		}

		opts := solve.Options{
			LockAfterAnswer:    cfg.SolveLockAfterAnswer,
			ShowCorrectOnWrong: cfg.SolveShowCorrectOnWrong,
		}
		if req.LockAfterAnswer != nil {
			opts.LockAfterAnswer = *req.LockAfterAnswer
		}
		if req.ShowCorrectOnWrong != nil {
			opts.ShowCorrectOnWrong = *req.ShowCorrectOnWrong
		}

		s := solve.New(quiz.ID, snap.QuizPath(quiz), snap.QuestionsOf(quiz.ID), opts)
		sessions.Put(user.Sub, s)
		writeJSON(w, nethttp.StatusCreated, s.View())
	}
}

// GET /solve returns the running session's cards and score.
func SolveViewHandler(sessions *solve.Registry) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		user := authmw.IdentityFromContext(r.Context())
		s, ok := sessions.Get(user.Sub)
		if !ok {
			writeErr(w, nethttp.StatusNotFound, "not_found", "no active session")
			return
		}
		writeJSON(w, nethttp.StatusOK, s.View())
	}
}

// POST /solve/answer  { "question_id": "...", "choice": "A".."E" }
func AnswerHandler(sessions *solve.Registry) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		var req struct {
			QuestionID string `json:"question_id"`
			Choice     string `json:"choice"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeErr(w, nethttp.StatusBadRequest, "validation", "bad json")
			return
		}
		user := authmw.IdentityFromContext(r.Context())
		s, ok := sessions.Get(user.Sub)
		if !ok {
			writeErr(w, nethttp.StatusNotFound, "not_found", "no active session")
			return
		}
		res, err := s.Answer(req.QuestionID, req.Choice)
		if err != nil {
			switch {
			case errors.Is(err, solve.ErrLocked):
				writeErr(w, nethttp.StatusConflict, "locked", err.Error())
			case errors.Is(err, solve.ErrBadChoice), errors.Is(err, solve.ErrUnknownQuestion):
				writeErr(w, nethttp.StatusBadRequest, "validation", err.Error())
			default:
				writeErr(w, nethttp.StatusInternalServerError, "answer_failed", err.Error())
			}
			return
		}
		writeJSON(w, nethttp.StatusOK, res)
	}
}

// DELETE /solve abandons the running session.
func EndSolveHandler(sessions *solve.Registry) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		user := authmw.IdentityFromContext(r.Context())
		sessions.Drop(user.Sub)
		w.WriteHeader(nethttp.StatusNoContent)
	}
}
