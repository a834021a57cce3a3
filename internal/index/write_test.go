package index_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"vaultindex/internal/config"
	"vaultindex/internal/index"
)

func TestEncodeShape(t *testing.T) {
	cfg := config.Default()
	b := index.NewBuilder(&cfg)
	it := item("en", "math", "abc", "TBA")
	it.Video.Thumbnail = "https://img.youtube.com/vi/abc/hqdefault.jpg?a=1&b=2"
	b.Add(t.Context(), it)

	data, err := index.Encode(b.Index())
	if err != nil {
		t.Fatalf("Encode returned error: %v", err)
	}
	text := string(data)

	wantVideo := `{
          "title": "abc",
          "video_id": "abc",
          "thumbnail": "https://img.youtube.com/vi/abc/hqdefault.jpg?a=1&b=2",
          "duration": "",
          "published_at": "TBA",
          "state": "published",
          "release_date": null,
          "serie": "na",
          "sub_serie": "na",
          "playlist_id": null,
          "video_type": "unknown"
        }`
	if !strings.Contains(text, wantVideo) {
		t.Fatalf("video object not found in output:\n%s", text)
	}
	if !strings.HasPrefix(text, "{\n  \"de\": {},\n  \"en\": {\n    \"math\": {\n      \"title\": \"Math\",") {
		t.Fatalf("unexpected document prefix:\n%s", text)
	}
	if !strings.Contains(text, "\"playlists\": {}") {
		t.Fatalf("expected empty playlists object:\n%s", text)
	}
	if !strings.HasSuffix(text, "}\n") {
		t.Fatal("expected trailing newline")
	}
}

func TestWriteCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "assets", "data", "content.json")
	b := index.NewBuilder(testConfig())
	if err := index.Write(path, b.Index()); err != nil {
		t.Fatalf("Write returned error: %v", err)
	}
	first, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := index.Write(path, index.NewBuilder(testConfig()).Index()); err != nil {
		t.Fatalf("second Write returned error: %v", err)
	}
	second, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(first) != string(second) {
		t.Fatal("expected byte-identical output for identical input")
	}
}

func TestWriteFailsWhenDirectoryBlocked(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "assets")
	if err := os.WriteFile(blocker, []byte("file"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := index.Write(filepath.Join(blocker, "content.json"), index.Index{}); err == nil {
		t.Fatal("expected error when output directory cannot be created")
	}
}
