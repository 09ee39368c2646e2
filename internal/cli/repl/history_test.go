package repl

import (
	"path/filepath"
	"testing"
)

func TestHistoryAddGet(t *testing.T) {
	h := NewHistory()
	h.Add("PING")
	h.Add("GET key")

	if got := h.Get(0); got != "GET key" {
		t.Errorf("Get(0) = %q, want GET key", got)
	}
	if got := h.Get(1); got != "PING" {
		t.Errorf("Get(1) = %q, want PING", got)
	}
	if got := h.Get(2); got != "" {
		t.Errorf("Get(2) = %q, want empty", got)
	}
	if got := h.Get(-1); got != "" {
		t.Errorf("Get(-1) = %q, want empty", got)
	}
}

func TestHistoryMaxSize(t *testing.T) {
	h := &History{maxSize: 3}
	for _, cmd := range []string{"a", "b", "c", "d"} {
		h.Add(cmd)
	}

	if h.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", h.Len())
	}
	if got := h.Get(0); got != "d" {
		t.Errorf("Get(0) = %q, want d", got)
	}
	if got := h.Get(2); got != "b" {
		t.Errorf("Get(2) = %q, want b (oldest entry evicted)", got)
	}
}

func TestHistorySaveLoad(t *testing.T) {
	file := filepath.Join(t.TempDir(), "history")

	h := &History{maxSize: 100, file: file}
	h.Add("SET k v")
	h.Add("GET k")
	if err := h.Save(); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded := &History{maxSize: 100, file: file}
	if err := loaded.Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", loaded.Len())
	}
	if got := loaded.Get(0); got != "GET k" {
		t.Errorf("Get(0) = %q, want GET k", got)
	}
}

func TestHistoryLoadMissingFile(t *testing.T) {
	h := &History{maxSize: 100, file: filepath.Join(t.TempDir(), "nope")}
	if err := h.Load(); err != nil {
		t.Errorf("Load() error = %v, want nil for missing file", err)
	}
}
