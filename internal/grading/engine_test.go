package grading_test

import (
	"context"
	"testing"

	"github.com/quizforge/quizforge/internal/grading"
)

func TestGradeExactMatch(t *testing.T) {
	g := grading.NewDefaultGrader()
	ctx := context.Background()

	cases := []struct {
		name      string
		q         grading.Q
		submitted string
		correct   bool
		stored    string
	}{
		{"mcq match", grading.Q{Type: "mcq", Answer: "c"}, "c", true, "c"},
		{"mcq mismatch", grading.Q{Type: "mcq", Answer: "c"}, "b", false, "b"},
		{"mcq case folded", grading.Q{Type: "mcq", Answer: "c"}, "C", true, "c"},
		{"open text match", grading.Q{Type: "open_text", Answer: "final"}, "final", true, "final"},
		{"open text case folded", grading.Q{Type: "open_text", Answer: "final"}, "FiNaL", true, "final"},
		// whitespace is significant, grading is exact match after case folding
		{"open text trailing space", grading.Q{Type: "open_text", Answer: "final"}, "final ", false, "final "},
		{"empty submission", grading.Q{Type: "open_text", Answer: "final"}, "", false, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res, err := g.Grade(ctx, tc.q, tc.submitted)
			if err != nil {
				t.Fatalf("Grade: %v", err)
			}
			if res.Correct != tc.correct {
				t.Errorf("Correct = %v, want %v", res.Correct, tc.correct)
			}
			if res.Normalized != tc.stored {
				t.Errorf("Normalized = %q, want %q", res.Normalized, tc.stored)
			}
		})
	}
}

func TestGradeUnknownType(t *testing.T) {
	g := grading.NewDefaultGrader()
	if _, err := g.Grade(context.Background(), grading.Q{Type: "essay", Answer: "x"}, "x"); err == nil {
		t.Fatal("expected an error for an unregistered question type")
	}
}

func TestNormalize(t *testing.T) {
	cases := []struct{ in, want string }{
		{"ABC", "abc"},
		{"MiXeD Case", "mixed case"},
		{"already lower", "already lower"},
		{"  Padded  ", "  padded  "}, // no trimming
		{"", ""},
	}
	for _, tc := range cases {
		if got := grading.Normalize(tc.in); got != tc.want {
			t.Errorf("Normalize(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
