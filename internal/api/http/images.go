package http

import (
	"errors"

	nethttp "net/http"

	authmw "github.com/quizforge/quizforge/internal/auth/middleware"
	"github.com/quizforge/quizforge/internal/images"
)

// POST /images is the paste-capture target. Accepts either a multipart form
// with a "file" part or a raw body with an image/* Content-Type, and
// replaces the author's pending image.
func UploadImageHandler(pipeline *images.Pipeline) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		user := authmw.IdentityFromContext(r.Context())

		contentType := r.Header.Get("Content-Type")
		var (
			pending images.Pending
			err     error
		)
		if f, fh, ferr := r.FormFile("file"); ferr == nil {
			defer f.Close()
			pending, err = pipeline.Ingest(r.Context(), user.Sub, fh.Header.Get("Content-Type"), fh.Filename, f)
		} else {
			pending, err = pipeline.Ingest(r.Context(), user.Sub, contentType, "", r.Body)
		}
		if err != nil {
			if errors.Is(err, images.ErrNotImage) {
				writeErr(w, nethttp.StatusBadRequest, "validation", "clipboard payload has no image")
				return
			}
			writeErr(w, nethttp.StatusBadGateway, "upload_failed", err.Error())
			return
		}
		writeJSON(w, nethttp.StatusCreated, pending)
	}
}

// GET /images/pending returns the author's outstanding pending image, if any.
func PendingImageHandler(pipeline *images.Pipeline) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		user := authmw.IdentityFromContext(r.Context())
		pending, ok := pipeline.Pending(user.Sub)
		if !ok {
			writeErr(w, nethttp.StatusNotFound, "not_found", "no pending image")
			return
		}
		writeJSON(w, nethttp.StatusOK, pending)
	}
}

// DELETE /images/pending drops the pending image without attaching it
// (tab switch away from authoring). The stored object is left behind.
func ClearPendingImageHandler(pipeline *images.Pipeline) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		user := authmw.IdentityFromContext(r.Context())
		pipeline.Clear(user.Sub)
		w.WriteHeader(nethttp.StatusNoContent)
	}
}
