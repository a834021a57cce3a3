package titlecache

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCachePutAndSave(t *testing.T) {
	cachePath := filepath.Join(t.TempDir(), "data", "playlist_cache.json")

	cache := NewCache(cachePath, nil)
	if cache.Dirty() {
		t.Fatal("new cache should not be dirty")
	}

	if err := cache.Put("PL2", "Álgebra <básica>"); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if err := cache.Put("PL1", "Calculus"); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if !cache.Dirty() {
		t.Fatal("cache should be dirty after Put")
	}
	if err := cache.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if cache.Dirty() {
		t.Fatal("cache should be clean after Save")
	}

	data, err := os.ReadFile(cachePath)
	if err != nil {
		t.Fatalf("read cache: %v", err)
	}
	want := "{\n  \"PL1\": \"Calculus\",\n  \"PL2\": \"Álgebra <básica>\"\n}\n"
	if string(data) != want {
		t.Fatalf("cache file = %q, want %q", data, want)
	}

	reloaded := NewCache(cachePath, nil)
	if title, ok := reloaded.Lookup("PL2"); !ok || title != "Álgebra <básica>" {
		t.Fatalf("Lookup after reload = %q, %v", title, ok)
	}
}

func TestCacheSaveSkipsCleanCache(t *testing.T) {
	cachePath := filepath.Join(t.TempDir(), "playlist_cache.json")
	original := "{\"PL1\":\"Calculus\"}"
	if err := os.WriteFile(cachePath, []byte(original), 0o644); err != nil {
		t.Fatal(err)
	}

	cache := NewCache(cachePath, nil)
	if err := cache.Put("PL1", "Calculus"); err != nil {
		t.Fatal(err)
	}
	if err := cache.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	data, err := os.ReadFile(cachePath)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != original {
		t.Fatalf("clean cache should not be rewritten, got %q", data)
	}
}

func TestCacheCorruptFileStartsEmpty(t *testing.T) {
	cachePath := filepath.Join(t.TempDir(), "playlist_cache.json")
	if err := os.WriteFile(cachePath, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	cache := NewCache(cachePath, nil)
	if cache.Count() != 0 {
		t.Fatalf("expected empty cache, got %d entries", cache.Count())
	}
}

func TestCacheLookupEmptyID(t *testing.T) {
	cache := NewCache(filepath.Join(t.TempDir(), "c.json"), nil)

	if _, ok := cache.Lookup(""); ok {
		t.Error("Lookup should return false for empty playlist ID")
	}
	if _, ok := cache.Lookup("   "); ok {
		t.Error("Lookup should return false for whitespace playlist ID")
	}
	if err := cache.Put(" ", "x"); err == nil {
		t.Error("Put should reject empty playlist ID")
	}
}

func TestCacheRemove(t *testing.T) {
	cachePath := filepath.Join(t.TempDir(), "playlist_cache.json")
	cache := NewCache(cachePath, nil)
	_ = cache.Put("PL1", "One")
	_ = cache.Put("PL2", "Two")
	if err := cache.Save(); err != nil {
		t.Fatal(err)
	}

	if err := cache.Remove("PL1"); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if err := cache.Remove("PL1"); err == nil {
		t.Fatal("Remove should fail for missing entry")
	}

	reloaded := NewCache(cachePath, nil)
	if _, ok := reloaded.Lookup("PL1"); ok {
		t.Fatal("removed entry should not persist")
	}
	if reloaded.Count() != 1 {
		t.Fatalf("expected 1 entry, got %d", reloaded.Count())
	}
}

func TestCacheListAndClear(t *testing.T) {
	cachePath := filepath.Join(t.TempDir(), "playlist_cache.json")
	cache := NewCache(cachePath, nil)
	_ = cache.Put("PLb", "B")
	_ = cache.Put("PLa", "A")

	entries := cache.List()
	if len(entries) != 2 || entries[0].PlaylistID != "PLa" || entries[1].Title != "B" {
		t.Fatalf("unexpected list %+v", entries)
	}

	if err := cache.Clear(); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	data, err := os.ReadFile(cachePath)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "{}\n" {
		t.Fatalf("cleared cache file = %q", data)
	}
}
