package upload

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func fileHeader(t *testing.T, filename, content string) *multipart.FileHeader {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("cover_image", filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write([]byte(content)); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	req := httptest.NewRequest("POST", "/", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if err := req.ParseMultipartForm(1 << 20); err != nil {
		t.Fatalf("parse multipart: %v", err)
	}
	return req.MultipartForm.File["cover_image"][0]
}

func TestSaveCoverUniqueNames(t *testing.T) {
	store := NewStore(t.TempDir())

	first, err := store.SaveCover(fileHeader(t, "photo.png", "aaa"))
	if err != nil {
		t.Fatalf("save first: %v", err)
	}
	second, err := store.SaveCover(fileHeader(t, "photo.png", "bbb"))
	if err != nil {
		t.Fatalf("save second: %v", err)
	}

	if first == second {
		t.Fatalf("expected distinct stored names for identical uploads, got %q", first)
	}
	if !strings.HasPrefix(first, "uploads/blogs/covers/") {
		t.Fatalf("unexpected stored path %q", first)
	}
	if !strings.HasSuffix(first, "-photo.png") {
		t.Fatalf("expected original basename suffix, got %q", first)
	}
}

func TestRemove(t *testing.T) {
	root := t.TempDir()
	store := NewStore(root)

	stored, err := store.SaveCover(fileHeader(t, "cover.jpg", "data"))
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	onDisk := filepath.Join(root, "blogs", "covers", filepath.Base(stored))
	if _, err := os.Stat(onDisk); err != nil {
		t.Fatalf("stored file missing: %v", err)
	}

	if err := store.Remove(stored); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, err := os.Stat(onDisk); !os.IsNotExist(err) {
		t.Fatalf("expected file gone, stat err: %v", err)
	}

	// Removing twice is not an error.
	if err := store.Remove(stored); err != nil {
		t.Fatalf("remove missing: %v", err)
	}
}
