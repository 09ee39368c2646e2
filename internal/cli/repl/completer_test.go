package repl

import (
	"testing"
)

func TestCompleterComplete(t *testing.T) {
	c := NewCompleter()

	tests := []struct {
		prefix string
		want   []string
	}{
		{"ZC", []string{"ZCARD"}},
		{"hget", []string{"HGET", "HGETALL"}},
		{"ex", []string{"EXISTS", "EXPIRE", "exit"}},
		{"nosuchprefix", nil},
	}

	for _, tt := range tests {
		got := c.Complete(tt.prefix)
		if len(got) != len(tt.want) {
			t.Errorf("Complete(%q) = %v, want %v", tt.prefix, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("Complete(%q)[%d] = %q, want %q", tt.prefix, i, got[i], tt.want[i])
			}
		}
	}
}

func TestCompleterEmptyPrefixReturnsAll(t *testing.T) {
	c := NewCompleter()
	if got := c.Complete(""); len(got) != len(c.commands) {
		t.Errorf("Complete(\"\") returned %d suggestions, want %d", len(got), len(c.commands))
	}
}
