package rbac_test

import (
	"context"
	"testing"

	"github.com/quizforge/quizforge/internal/rbac"
)

func TestAllowed(t *testing.T) {
	cases := []struct {
		name   string
		action rbac.Action
		role   rbac.Role
		owner  bool
		want   bool
	}{
		{"admin creates quiz", rbac.QuizCreate, rbac.RoleAdmin, false, true},
		{"user cannot create quiz", rbac.QuizCreate, rbac.RoleUser, false, false},
		{"owning admin updates quiz", rbac.QuizUpdate, rbac.RoleAdmin, true, true},
		{"non-owning admin cannot update quiz", rbac.QuizUpdate, rbac.RoleAdmin, false, false},
		{"owning user still cannot update quiz", rbac.QuizUpdate, rbac.RoleUser, true, false},
		{"owning admin deletes quiz", rbac.QuizDelete, rbac.RoleAdmin, true, true},
		{"non-owning admin cannot delete quiz", rbac.QuizDelete, rbac.RoleAdmin, false, false},
		{"user views quiz", rbac.QuizView, rbac.RoleUser, false, true},
		{"admin views quiz", rbac.QuizView, rbac.RoleAdmin, false, true},
		{"admin writes question", rbac.QuestionCreate, rbac.RoleAdmin, false, true},
		{"user cannot write question", rbac.QuestionUpdate, rbac.RoleUser, true, false},
		{"admin deletes question regardless of ownership", rbac.QuestionDelete, rbac.RoleAdmin, false, true},
		{"user submits attempt", rbac.AttemptSubmit, rbac.RoleUser, false, true},
		{"user views own attempt", rbac.AttemptView, rbac.RoleUser, false, true},
		{"empty role denied everywhere", rbac.QuizView, rbac.Role(""), false, false},
		{"unknown action denied", rbac.Action("quiz:publish"), rbac.RoleAdmin, true, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := rbac.Allowed(tc.action, tc.role, tc.owner); got != tc.want {
				t.Errorf("Allowed(%q, %q, %v) = %v, want %v", tc.action, tc.role, tc.owner, got, tc.want)
			}
		})
	}
}

func TestRoleContextRoundTrip(t *testing.T) {
	ctx := rbac.WithRole(context.Background(), rbac.RoleAdmin)
	if got := rbac.RoleFromContext(ctx); got != rbac.RoleAdmin {
		t.Fatalf("RoleFromContext = %q, want admin", got)
	}
	if got := rbac.RoleFromContext(context.Background()); got != "" {
		t.Fatalf("RoleFromContext on empty context = %q, want empty", got)
	}
}
