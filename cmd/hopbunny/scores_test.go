package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vovakirdan/hopbunny/internal/storage"
)

func openTestStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestPrintScoresEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := printScores(&buf, openTestStore(t), "alice", true); err != nil {
		t.Fatalf("printScores() failed: %v", err)
	}
	if !strings.Contains(buf.String(), "No scores recorded yet.") {
		t.Errorf("output should report an empty board:\n%s", buf.String())
	}
}

func TestPrintScoresHistory(t *testing.T) {
	store := openTestStore(t)
	for _, s := range []struct {
		player string
		score  int
	}{
		{"alice", 120},
		{"bob", 500},
		{"alice", 340},
		{"alice", 80},
	} {
		if err := store.SubmitScore(s.player, s.score); err != nil {
			t.Fatalf("SubmitScore() failed: %v", err)
		}
	}

	tests := []struct {
		name    string
		history bool
		want    []string
		notWant []string
	}{
		{
			name:    "board only",
			history: false,
			want:    []string{"Board best: 500", "alice: best 340, 3 games"},
			notWant: []string{"History of alice"},
		},
		{
			name:    "with history",
			history: true,
			want:    []string{"Board best: 500", "History of alice:"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := printScores(&buf, store, "alice", tt.history); err != nil {
				t.Fatalf("printScores() failed: %v", err)
			}
			out := buf.String()
			for _, w := range tt.want {
				if !strings.Contains(out, w) {
					t.Errorf("output missing %q:\n%s", w, out)
				}
			}
			for _, w := range tt.notWant {
				if strings.Contains(out, w) {
					t.Errorf("output should not contain %q:\n%s", w, out)
				}
			}
		})
	}

	var buf bytes.Buffer
	if err := printScores(&buf, store, "alice", true); err != nil {
		t.Fatalf("printScores() failed: %v", err)
	}
	_, hist, _ := strings.Cut(buf.String(), "History of alice:")
	i340 := strings.Index(hist, "340")
	i120 := strings.Index(hist, "120")
	i80 := strings.Index(hist, "80 ")
	if i340 < 0 || i120 < 0 || i80 < 0 {
		t.Fatalf("history should list all three sessions:\n%s", hist)
	}
	if !(i340 < i120 && i120 < i80) {
		t.Errorf("history should be ordered best first:\n%s", hist)
	}
	if strings.Contains(hist, "500") {
		t.Errorf("history should only list alice's sessions:\n%s", hist)
	}
}
