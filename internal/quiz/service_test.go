package quiz_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/quizforge/quizforge/internal/quiz"
)

const adminSlug = "admin-user-slug"

func newTestService() *quiz.Service {
	return quiz.NewService(quiz.NewInMemoryStore(), nil)
}

func baseQuizInput(name string) quiz.QuizInput {
	return quiz.QuizInput{
		Name:         name,
		ScheduleDate: time.Date(2026, 2, 23, 11, 15, 23, 0, time.UTC),
		EndDate:      time.Date(2026, 2, 28, 23, 59, 59, 0, time.UTC),
		Description:  "first quiz",
		Questions: []quiz.QuestionInput{
			{Text: "First Question", Type: quiz.TypeMCQ, Answer: "C"},
			{Text: "Second Question", Type: quiz.TypeOpenText, Answer: "final"},
		},
	}
}

func TestCreateQuizPersistsAllQuestions(t *testing.T) {
	svc := newTestService()
	q, err := svc.CreateQuiz(context.Background(), adminSlug, baseQuizInput("First Test Quiz"))
	if err != nil {
		t.Fatalf("CreateQuiz: %v", err)
	}
	if q.Slug == "" {
		t.Fatal("expected a slug to be assigned")
	}
	if len(q.Questions) != 2 {
		t.Fatalf("questions = %d, want 2", len(q.Questions))
	}
	for _, qn := range q.Questions {
		if qn.QuizSlug != q.Slug {
			t.Errorf("question %s linked to %q, want %q", qn.Slug, qn.QuizSlug, q.Slug)
		}
	}
	// canonical answers are stored lower-cased
	if q.Questions[0].Answer != "c" {
		t.Errorf("answer = %q, want lower-cased %q", q.Questions[0].Answer, "c")
	}
	if q.TimePerQuestion != quiz.DefaultTimePerQuestion {
		t.Errorf("time_per_question = %d, want default %d", q.TimePerQuestion, quiz.DefaultTimePerQuestion)
	}
	if q.CreatedBy != adminSlug || q.UpdatedBy != adminSlug {
		t.Errorf("audit fields = %q/%q, want %q", q.CreatedBy, q.UpdatedBy, adminSlug)
	}
}

func TestCreateQuizNameTooShort(t *testing.T) {
	svc := newTestService()
	in := baseQuizInput("ab")
	_, err := svc.CreateQuiz(context.Background(), adminSlug, in)
	var de *quiz.Error
	if !errors.As(err, &de) || de.Kind != quiz.KindValidation {
		t.Fatalf("err = %v, want validation error", err)
	}
	if de.Field != "name" {
		t.Errorf("field = %q, want %q", de.Field, "name")
	}
}

func TestCreateQuizDuplicateName(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	if _, err := svc.CreateQuiz(ctx, adminSlug, baseQuizInput("Duplicate Name")); err != nil {
		t.Fatalf("first create: %v", err)
	}
	_, err := svc.CreateQuiz(ctx, adminSlug, baseQuizInput("Duplicate Name"))
	var de *quiz.Error
	if !errors.As(err, &de) || de.Kind != quiz.KindValidation || de.Field != "name" {
		t.Fatalf("err = %v, want name validation error", err)
	}
}

func TestCreateQuizBadQuestionType(t *testing.T) {
	svc := newTestService()
	in := baseQuizInput("Bad Type Quiz")
	in.Questions[0].Type = "essay"
	_, err := svc.CreateQuiz(context.Background(), adminSlug, in)
	var de *quiz.Error
	if !errors.As(err, &de) || de.Kind != quiz.KindValidation {
		t.Fatalf("err = %v, want validation error", err)
	}
}

func TestUpdateQuizReconcilesQuestions(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	q, err := svc.CreateQuiz(ctx, adminSlug, baseQuizInput("Reconcile Quiz"))
	if err != nil {
		t.Fatalf("CreateQuiz: %v", err)
	}
	existing := q.Questions[0]

	updated, err := svc.UpdateQuiz(ctx, adminSlug, q.Slug, quiz.QuizUpdateInput{
		Questions: []quiz.QuestionInput{
			// slug-bearing: update in place
			{Slug: existing.Slug, Text: "First Question, revised", Type: quiz.TypeMCQ, Answer: "D"},
			// slug-less: create
			{Text: "Third Question", Type: quiz.TypeMCQ, Answer: "A"},
		},
	})
	if err != nil {
		t.Fatalf("UpdateQuiz: %v", err)
	}
	if len(updated.Questions) != 3 {
		t.Fatalf("questions = %d, want 3 (2 existing + 1 new)", len(updated.Questions))
	}
	got, err := svc.GetQuestion(ctx, existing.Slug)
	if err != nil {
		t.Fatalf("GetQuestion: %v", err)
	}
	if got.Text != "First Question, revised" {
		t.Errorf("text = %q, not updated in place", got.Text)
	}
	if got.Answer != "d" {
		t.Errorf("answer = %q, want normalized %q", got.Answer, "d")
	}
	// the question omitted from the payload is untouched, not deleted
	if _, err := svc.GetQuestion(ctx, q.Questions[1].Slug); err != nil {
		t.Errorf("omitted question should survive the update: %v", err)
	}
}

func TestUpdateQuizUnknownQuestionSlug(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	q, err := svc.CreateQuiz(ctx, adminSlug, baseQuizInput("Unknown Slug Quiz"))
	if err != nil {
		t.Fatalf("CreateQuiz: %v", err)
	}
	_, err = svc.UpdateQuiz(ctx, adminSlug, q.Slug, quiz.QuizUpdateInput{
		Questions: []quiz.QuestionInput{
			{Slug: "7c9e6679-7425-40de-944b-e07fc1f90ae7", Text: "ghost", Type: quiz.TypeMCQ, Answer: "x"},
		},
	})
	var de *quiz.Error
	if !errors.As(err, &de) || de.Kind != quiz.KindNotFound {
		t.Fatalf("err = %v, want not_found", err)
	}
}

func TestUpdateQuizScalarsOnly(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	q, err := svc.CreateQuiz(ctx, adminSlug, baseQuizInput("Scalar Quiz"))
	if err != nil {
		t.Fatalf("CreateQuiz: %v", err)
	}
	name := "Scalar Quiz, renamed"
	tpq := 30
	updated, err := svc.UpdateQuiz(ctx, "another-admin", q.Slug, quiz.QuizUpdateInput{
		Name:            &name,
		TimePerQuestion: &tpq,
	})
	if err != nil {
		t.Fatalf("UpdateQuiz: %v", err)
	}
	if updated.Name != name || updated.TimePerQuestion != 30 {
		t.Errorf("scalars not applied: %+v", updated)
	}
	if updated.UpdatedBy != "another-admin" {
		t.Errorf("updated_by = %q", updated.UpdatedBy)
	}
	if updated.CreatedBy != adminSlug {
		t.Errorf("created_by changed to %q", updated.CreatedBy)
	}
	if len(updated.Questions) != 2 {
		t.Errorf("questions = %d, want untouched 2", len(updated.Questions))
	}
}

func TestUpdateQuizNotFound(t *testing.T) {
	svc := newTestService()
	_, err := svc.UpdateQuiz(context.Background(), adminSlug, "no-such-quiz", quiz.QuizUpdateInput{})
	var de *quiz.Error
	if !errors.As(err, &de) || de.Kind != quiz.KindNotFound {
		t.Fatalf("err = %v, want not_found", err)
	}
}

func TestDeleteQuizCascades(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	q, err := svc.CreateQuiz(ctx, adminSlug, baseQuizInput("Doomed Quiz"))
	if err != nil {
		t.Fatalf("CreateQuiz: %v", err)
	}
	if err := svc.DeleteQuiz(ctx, q.Slug); err != nil {
		t.Fatalf("DeleteQuiz: %v", err)
	}
	if _, err := svc.GetQuiz(ctx, q.Slug); quiz.KindOf(err) != quiz.KindNotFound {
		t.Errorf("quiz still present: %v", err)
	}
	if _, err := svc.GetQuestion(ctx, q.Questions[0].Slug); quiz.KindOf(err) != quiz.KindNotFound {
		t.Errorf("question survived cascade: %v", err)
	}
}

func TestStandaloneQuestionCRUD(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	q, err := svc.CreateQuiz(ctx, adminSlug, baseQuizInput("Question CRUD Quiz"))
	if err != nil {
		t.Fatalf("CreateQuiz: %v", err)
	}

	qn, err := svc.CreateQuestion(ctx, quiz.QuestionCreateInput{
		Quiz:   q.Slug,
		Text:   "Standalone question",
		Type:   quiz.TypeOpenText,
		Answer: "Paris",
	})
	if err != nil {
		t.Fatalf("CreateQuestion: %v", err)
	}
	if qn.Answer != "paris" {
		t.Errorf("answer = %q, want normalized", qn.Answer)
	}

	text := "Standalone question, edited"
	got, err := svc.UpdateQuestion(ctx, qn.Slug, quiz.QuestionUpdateInput{Text: &text})
	if err != nil {
		t.Fatalf("UpdateQuestion: %v", err)
	}
	if got.Text != text {
		t.Errorf("text = %q", got.Text)
	}
	if got.Answer != "paris" {
		t.Errorf("partial update clobbered answer: %q", got.Answer)
	}

	if err := svc.DeleteQuestion(ctx, qn.Slug); err != nil {
		t.Fatalf("DeleteQuestion: %v", err)
	}
	if _, err := svc.GetQuestion(ctx, qn.Slug); quiz.KindOf(err) != quiz.KindNotFound {
		t.Errorf("question still present: %v", err)
	}
}

func TestCreateQuestionForMissingQuiz(t *testing.T) {
	svc := newTestService()
	_, err := svc.CreateQuestion(context.Background(), quiz.QuestionCreateInput{
		Quiz:   "no-such-quiz",
		Text:   "orphan",
		Type:   quiz.TypeMCQ,
		Answer: "a",
	})
	if quiz.KindOf(err) != quiz.KindNotFound {
		t.Fatalf("err = %v, want not_found", err)
	}
}
