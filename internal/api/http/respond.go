package http

import (
	"context"
	"encoding/json"
	"log"

	nethttp "net/http"

	"github.com/quizforge/quizforge/internal/catalog"
)

// All failures are surfaced as one blocking envelope: a machine-readable
// code plus whatever human-readable message the failing layer provided.
// There is no retry policy anywhere; each failure ends that user action.
type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w nethttp.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w nethttp.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, apiError{Code: code, Message: message})
}

// recordEvent appends an audit event, best effort: a failed append is
// logged and never blocks the mutation that triggered it.
func recordEvent(ctx context.Context, events catalog.EventSink, typ, key string, data any) {
	if events == nil {
		return
	}
	if err := events.Append(ctx, typ, key, data); err != nil {
		log.Printf("audit append failed: %v", err)
	}
}
