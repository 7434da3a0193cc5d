package http

import (
	"io"
	"mime"
	"path"
	"strings"

	nethttp "net/http"

	"github.com/go-chi/chi/v5"

	"github.com/quizforge/quizforge/internal/storage"
)

// MountAssets serves question images out of the blob store.
func MountAssets(r chi.Router, bs storage.BlobStore) {
	// GET /assets/*  -> the blob at whatever follows /assets/
	r.Get("/*", func(w nethttp.ResponseWriter, req *nethttp.Request) {
		key := chi.URLParam(req, "*")
		key = strings.TrimPrefix(key, "/")
		if key == "" || strings.Contains(key, "..") {
			writeErr(w, nethttp.StatusBadRequest, "validation", "bad asset key")
			return
		}
		rc, err := bs.Get(key)
		if err != nil {
			writeErr(w, nethttp.StatusNotFound, "not_found", "no such asset")
			return
		}
		defer rc.Close()

		ct := mime.TypeByExtension(path.Ext(key))
		if ct == "" {
			ct = "application/octet-stream"
		}
		w.Header().Set("Content-Type", ct)
		w.Header().Set("Cache-Control", "private, max-age=3600")
		_, _ = io.Copy(w, rc)
	})
}
