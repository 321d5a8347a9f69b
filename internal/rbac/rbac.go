package rbac

import "context"

type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

type Action string

const (
	QuizCreate Action = "quiz:create"
	QuizView   Action = "quiz:view"
	QuizUpdate Action = "quiz:update"
	QuizDelete Action = "quiz:delete"

	QuestionCreate Action = "question:create"
	QuestionView   Action = "question:view"
	QuestionUpdate Action = "question:update"
	QuestionDelete Action = "question:delete"

	AttemptSubmit Action = "attempt:submit"
	AttemptView   Action = "attempt:view"
)

// Allowed is the single permission decision point: a pure function over the
// action, the caller's role, and whether the caller owns the target object.
// Ownership only matters for quiz update/delete; for the other actions the
// argument is ignored.
func Allowed(action Action, role Role, owner bool) bool {
	switch action {
	case QuizUpdate, QuizDelete:
		return role == RoleAdmin && owner
	case QuizCreate, QuestionCreate, QuestionUpdate, QuestionDelete:
		return role == RoleAdmin
	case QuizView, QuestionView, AttemptSubmit, AttemptView:
		return role == RoleAdmin || role == RoleUser
	default:
		return false
	}
}

// --- role in context ---

type ctxKey struct{}

var ctxKeyRole = ctxKey{}

func WithRole(ctx context.Context, role Role) context.Context {
	return context.WithValue(ctx, ctxKeyRole, role)
}

func RoleFromContext(ctx context.Context) Role {
	if v := ctx.Value(ctxKeyRole); v != nil {
		if r, ok := v.(Role); ok {
			return r
		}
	}
	return ""
}
