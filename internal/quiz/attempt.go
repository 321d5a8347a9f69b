package quiz

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/quizforge/quizforge/internal/grading"
)

// CanRetake reports whether the user may still submit this quiz. It is an
// early-exit optimization only: the unique index on (quiz, user) inside
// CreateAttempt is the authoritative duplicate-submission guard.
func (s *Service) CanRetake(ctx context.Context, quizSlug, userID string) (bool, error) {
	has, err := s.store.HasAttempt(ctx, quizSlug, userID)
	if err != nil {
		return false, err
	}
	return !has, nil
}

// Submit records the user's single attempt: every answer is validated and
// graded up front, then the attempt row, its solutions and the aggregate
// score are persisted in one atomic store operation. A partial attempt is
// never observable.
//
// Preconditions, first failure wins: the quiz exists, the quiz is live, the
// user has not already taken it.
func (s *Service) Submit(ctx context.Context, quizSlug, userID string, answers []AnswerInput) (AttemptResult, error) {
	q, err := s.store.GetQuiz(ctx, quizSlug)
	if err != nil {
		return AttemptResult{}, err
	}
	if !q.IsLive(s.now()) {
		return AttemptResult{}, PermissionDenied("quiz is not live")
	}
	ok, err := s.CanRetake(ctx, q.Slug, userID)
	if err != nil {
		return AttemptResult{}, err
	}
	if !ok {
		return AttemptResult{}, ErrAlreadyTaken
	}

	t := TakenQuiz{
		ID:       uuid.NewString(),
		QuizSlug: q.Slug,
		UserID:   userID,
		TakenOn:  s.now(),
	}

	sols := make([]QuestionSolution, 0, len(answers))
	for i, a := range answers {
		if err := validateInput(a); err != nil {
			var e *Error
			if errors.As(err, &e) {
				e.Field = fmt.Sprintf("answers[%d].%s", i, e.Field)
			}
			return AttemptResult{}, err
		}
		qn, err := s.store.GetQuestion(ctx, a.Question)
		if err != nil {
			return AttemptResult{}, err
		}
		if qn.QuizSlug != q.Slug {
			return AttemptResult{}, NotFound("question " + a.Question)
		}
		res, err := s.grader.Grade(ctx, grading.Q{Type: qn.Type, Answer: qn.Answer}, a.Answer)
		if err != nil {
			return AttemptResult{}, err
		}
		sols = append(sols, QuestionSolution{
			ID:           uuid.NewString(),
			TakenQuizID:  t.ID,
			QuestionSlug: qn.Slug,
			Answer:       res.Normalized,
			IsCorrect:    res.Correct,
		})
	}

	t, err = s.store.CreateAttempt(ctx, t, sols)
	if err != nil {
		return AttemptResult{}, err
	}
	return NewAttemptResult(t, sols), nil
}

// Attempt returns the user's previously graded attempt. A user who never
// submitted gets ErrNotTaken, distinct from a missing quiz.
func (s *Service) Attempt(ctx context.Context, quizSlug, userID string) (AttemptResult, error) {
	q, err := s.store.GetQuiz(ctx, quizSlug)
	if err != nil {
		return AttemptResult{}, err
	}
	t, sols, err := s.store.GetAttempt(ctx, q.Slug, userID)
	if err != nil {
		return AttemptResult{}, err
	}
	return NewAttemptResult(t, sols), nil
}
