package quiz

import "context"

type ListOpts struct {
	Limit  int
	Offset int
}

// Store is the persistence boundary for authoring data and attempts. Both
// implementations (SQL and in-memory) must make CreateAttempt atomic: the
// attempt row, its solutions and the recomputed score all land together or
// not at all, and a second attempt for the same (quiz, user) pair fails
// with ErrAlreadyTaken.
type Store interface {
	CreateQuiz(ctx context.Context, q Quiz, questions []Question) (Quiz, error)
	GetQuiz(ctx context.Context, slug string) (Quiz, error)
	ListQuizzes(ctx context.Context, opts ListOpts) ([]Quiz, error)
	// UpdateQuiz persists changed scalar fields and applies the reconciled
	// question sets: toCreate rows are inserted, toUpdate rows overwrite the
	// matching slug. Questions absent from both sets are left untouched.
	UpdateQuiz(ctx context.Context, q Quiz, toCreate, toUpdate []Question) (Quiz, error)
	DeleteQuiz(ctx context.Context, slug string) error
	QuizNameTaken(ctx context.Context, name, excludeSlug string) (bool, error)

	CreateQuestion(ctx context.Context, q Question) (Question, error)
	GetQuestion(ctx context.Context, slug string) (Question, error)
	UpdateQuestion(ctx context.Context, q Question) (Question, error)
	DeleteQuestion(ctx context.Context, slug string) error

	HasAttempt(ctx context.Context, quizSlug, userID string) (bool, error)
	CreateAttempt(ctx context.Context, t TakenQuiz, sols []QuestionSolution) (TakenQuiz, error)
	GetAttempt(ctx context.Context, quizSlug, userID string) (TakenQuiz, []QuestionSolution, error)
}
