package fileutil

import (
	"os"
	"path/filepath"
	"testing"
)

func TestWriteFileAtomic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "content.json")

	if err := WriteFileAtomic(path, []byte("first"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := WriteFileAtomic(path, []byte("second"), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "second" {
		t.Fatalf("content mismatch: got %q", got)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected temp files to be cleaned up, found %d entries", len(entries))
	}
}

func TestWriteFileAtomicMissingDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "content.json")
	if err := WriteFileAtomic(path, []byte("data"), 0o644); err == nil {
		t.Fatal("expected error for missing directory")
	}
}

func TestFileMode(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.md")
	if err := os.WriteFile(path, []byte("x"), 0o600); err != nil {
		t.Fatal(err)
	}
	if got := FileMode(path, 0o644); got != 0o600 {
		t.Fatalf("FileMode = %o, want 600", got)
	}
	if got := FileMode(filepath.Join(dir, "nope"), 0o644); got != 0o644 {
		t.Fatalf("FileMode fallback = %o, want 644", got)
	}
}

func TestMarshalJSON(t *testing.T) {
	data, err := MarshalJSON(map[string]string{"b": "<x>", "a": "Química"})
	if err != nil {
		t.Fatal(err)
	}
	want := "{\n  \"a\": \"Química\",\n  \"b\": \"<x>\"\n}\n"
	if string(data) != want {
		t.Fatalf("MarshalJSON = %q, want %q", data, want)
	}
}
