// Package images receives pasted question images, stores them, and holds
// the resulting reference as the author's single pending image until a
// question is created around it.
package images

import (
	"context"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/quizforge/quizforge/internal/storage"
)

var ErrNotImage = errors.New("payload is not an image")

// Pending is an uploaded-but-not-yet-attached question image. At most one
// exists per author; a new paste simply overwrites it. The previous object
// stays in storage, an accepted leak.
type Pending struct {
	ImageURL    string `json:"image_url"`
	StoragePath string `json:"storage_path"`
}

type Pipeline struct {
	blobs storage.BlobStore

	mu      sync.Mutex
	pending map[string]Pending // key: userID
}

func NewPipeline(blobs storage.BlobStore) *Pipeline {
	return &Pipeline{blobs: blobs, pending: map[string]Pending{}}
}

var unsafeChars = regexp.MustCompile(`[^\w.\-]+`)

// SafeFileName restricts a human-readable filename to word characters,
// dots and hyphens.
func SafeFileName(name string) string {
	if name == "" {
		name = "image.png"
	}
	return unsafeChars.ReplaceAllString(name, "_")
}

func extFor(contentType string) string {
	if strings.Contains(contentType, "jpeg") {
		return "jpg"
	}
	return "png"
}

// Ingest uploads one pasted image and replaces the author's pending image.
// On upload failure the pending image is cleared and the storage diagnostic
// is returned to be surfaced to the operator.
func (p *Pipeline) Ingest(ctx context.Context, userID, contentType, filename string, r io.Reader) (Pending, error) {
	if !strings.HasPrefix(contentType, "image/") {
		return Pending{}, ErrNotImage
	}
	ext := extFor(contentType)
	if filename == "" {
		filename = fmt.Sprintf("pasted_%d.%s", time.Now().UnixMilli(), ext)
	}
	id := uuid.NewString()
	key := "questions/" + id + "_" + SafeFileName(filename)

	if _, err := p.blobs.Put(key, r); err != nil {
		p.Clear(userID)
		return Pending{}, fmt.Errorf("upload %s: %w", key, err)
	}
	url, err := p.blobs.SignedURL(key)
	if err != nil {
		p.Clear(userID)
		return Pending{}, fmt.Errorf("resolve url for %s: %w", key, err)
	}

	pending := Pending{ImageURL: url, StoragePath: key}
	p.mu.Lock()
	p.pending[userID] = pending
	p.mu.Unlock()
	return pending, nil
}

func (p *Pipeline) Pending(userID string) (Pending, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	pi, ok := p.pending[userID]
	return pi, ok
}

// Take consumes the pending image for question creation.
func (p *Pipeline) Take(userID string) (Pending, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	pi, ok := p.pending[userID]
	if ok {
		delete(p.pending, userID)
	}
	return pi, ok
}

func (p *Pipeline) Clear(userID string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.pending, userID)
}
