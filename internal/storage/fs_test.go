package storage_test

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/quizforge/quizforge/internal/storage"
)

func TestOpenSelectsBackend(t *testing.T) {
	dir := t.TempDir()

	for _, driver := range []string{"", "fs"} {
		bs, err := storage.Open(driver, dir, "/assets")
		if err != nil {
			t.Fatalf("driver %q: %v", driver, err)
		}
		if _, ok := bs.(*storage.FSStore); !ok {
			t.Fatalf("driver %q: want *FSStore, got %T", driver, bs)
		}
	}

	if _, err := storage.Open("s3", dir, "/assets"); err == nil {
		t.Fatal("unknown driver must be rejected")
	}
}

func TestFSStoreRoundTrip(t *testing.T) {
	dir := t.TempDir()
	bs, err := storage.Open("fs", dir, "/assets")
	if err != nil {
		t.Fatal(err)
	}

	key, err := bs.Put("questions/a_b.png", strings.NewReader("png-bytes"))
	if err != nil {
		t.Fatal(err)
	}
	if key != "questions/a_b.png" {
		t.Fatalf("canonical key: %q", key)
	}

	url, err := bs.SignedURL(key)
	if err != nil {
		t.Fatal(err)
	}
	if url != "/assets/questions/a_b.png" {
		t.Fatalf("url: %q", url)
	}

	rc, err := bs.Get(key)
	if err != nil {
		t.Fatal(err)
	}
	data, err := io.ReadAll(rc)
	rc.Close()
	if err != nil || string(data) != "png-bytes" {
		t.Fatalf("read back %q, err %v", data, err)
	}

	if err := bs.Delete(key); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(filepath.Join(dir, "questions", "a_b.png")); !os.IsNotExist(err) {
		t.Fatalf("object should be gone, stat err %v", err)
	}
	if _, err := bs.Get(key); err == nil {
		t.Fatal("get after delete must fail")
	}
}
