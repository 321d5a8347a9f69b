package grading

import (
	"context"
	"fmt"
)

// Q is the minimal view of a question needed for grading.
type Q struct {
	Type   string
	Answer string // canonical answer, stored lower-cased
}

// Result is the outcome of grading a single submitted answer.
type Result struct {
	Correct bool
	// Normalized is the submitted answer after normalization; it is what
	// gets persisted on the solution row.
	Normalized string
}

// Strategy grades one submitted answer for one question type.
type Strategy interface {
	Grade(ctx context.Context, q Q, submitted string) (Result, error)
}

// Grader routes by question type to the matching Strategy.
type Grader interface {
	Grade(ctx context.Context, q Q, submitted string) (Result, error)
}

type defaultGrader struct {
	strategies map[string]Strategy
}

func (g *defaultGrader) Grade(ctx context.Context, q Q, submitted string) (Result, error) {
	s, ok := g.strategies[q.Type]
	if !ok {
		return Result{}, fmt.Errorf("no grading strategy for question type %q", q.Type)
	}
	return s.Grade(ctx, q, submitted)
}

// NewDefaultGrader installs the built-in strategies. Both supported types
// grade by case-insensitive exact match: no partial credit, no numeric
// tolerance.
func NewDefaultGrader() Grader {
	return &defaultGrader{
		strategies: map[string]Strategy{
			"mcq":       exactMatchStrategy{},
			"open_text": exactMatchStrategy{},
		},
	}
}

type exactMatchStrategy struct{}

func (exactMatchStrategy) Grade(_ context.Context, q Q, submitted string) (Result, error) {
	norm := Normalize(submitted)
	return Result{
		Correct:    norm == Normalize(q.Answer),
		Normalized: norm,
	}, nil
}
