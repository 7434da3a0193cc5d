package storage

import (
	"fmt"
	"io"
)

type BlobStore interface {
	Put(key string, r io.Reader) (string, error) // returns canonical key
	Get(key string) (io.ReadCloser, error)
	Delete(key string) error              // callers may treat failure as best-effort
	SignedURL(key string) (string, error) // fs returns a local /assets/ URL for dev
}

// Open builds the blob store named by driver. Only the filesystem backend
// exists today; the switch is where an object-store backend would plug in.
func Open(driver, basePath, urlBase string) (BlobStore, error) {
	switch driver {
	case "", "fs":
		return NewFSStore(basePath, urlBase)
	default:
		return nil, fmt.Errorf("unsupported blob driver: %s", driver)
	}
}
