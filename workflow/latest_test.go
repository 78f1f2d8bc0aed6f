package workflow

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestLatestResponsePicksGreatestName(t *testing.T) {
	dir := t.TempDir()
	for name, content := range map[string]string{
		"_lifeline-response-2024-01-01.md": "january",
		"_lifeline-response-2024-02-01.md": "february",
		"_lifeline-2024-03-01.md":          "request, not a response",
		"zzz.md":                           "unrelated",
	} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	path, err := LatestResponse(dir)
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Base(path) != "_lifeline-response-2024-02-01.md" {
		t.Errorf("expected _lifeline-response-2024-02-01.md, got %s", filepath.Base(path))
	}
}

func TestCopyLatest(t *testing.T) {
	dir := t.TempDir()
	os.WriteFile(filepath.Join(dir, "_lifeline-response-2024-01-01.md"), []byte("january"), 0o644)
	os.WriteFile(filepath.Join(dir, "_lifeline-response-2024-02-01.md"), []byte("february"), 0o644)

	cb := &stubClipboard{}
	path, err := CopyLatest(dir, cb)
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Base(path) != "_lifeline-response-2024-02-01.md" {
		t.Errorf("unexpected path %s", path)
	}
	if len(cb.text) != 1 || cb.text[0] != "february" {
		t.Errorf("expected february on clipboard, got %v", cb.text)
	}
}

func TestLatestResponseNone(t *testing.T) {
	if _, err := LatestResponse(t.TempDir()); !errors.Is(err, ErrNoResponses) {
		t.Errorf("expected ErrNoResponses, got %v", err)
	}
}

func TestLatestResponseMissingDir(t *testing.T) {
	_, err := LatestResponse(filepath.Join(t.TempDir(), "missing"))
	if err == nil || errors.Is(err, ErrNoResponses) {
		t.Errorf("expected list error, got %v", err)
	}
}

func TestCopyLatestClipboardError(t *testing.T) {
	dir := t.TempDir()
	os.WriteFile(filepath.Join(dir, "_lifeline-response-a.md"), []byte("a"), 0o644)
	cb := &stubClipboard{err: errors.New("unsupported")}
	if _, err := CopyLatest(dir, cb); err == nil {
		t.Error("expected clipboard error")
	}
}
