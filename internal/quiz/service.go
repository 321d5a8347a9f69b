package quiz

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/quizforge/quizforge/internal/grading"
)

// Service is the stateless authoring and attempt engine over a Store. Each
// method is one unit of work; the store is the sole arbiter of consistency.
type Service struct {
	store  Store
	grader grading.Grader
	now    func() time.Time
}

func NewService(store Store, grader grading.Grader) *Service {
	if grader == nil {
		grader = grading.NewDefaultGrader()
	}
	return &Service{store: store, grader: grader, now: time.Now}
}

// CreateQuiz validates the payload, creates the quiz row and bulk-creates
// its questions. actor is the authenticated user's slug.
func (s *Service) CreateQuiz(ctx context.Context, actor string, in QuizInput) (Quiz, error) {
	if err := validateInput(in); err != nil {
		return Quiz{}, err
	}
	taken, err := s.store.QuizNameTaken(ctx, in.Name, "")
	if err != nil {
		return Quiz{}, err
	}
	if taken {
		return Quiz{}, Validation("name", "a quiz with this name already exists")
	}

	now := s.now()
	q := Quiz{
		Slug:            uuid.NewString(),
		Name:            in.Name,
		ScheduleDate:    in.ScheduleDate,
		EndDate:         in.EndDate,
		Description:     in.Description,
		TimePerQuestion: in.TimePerQuestion,
		CreatedBy:       actor,
		UpdatedBy:       actor,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if q.TimePerQuestion == 0 {
		q.TimePerQuestion = DefaultTimePerQuestion
	}

	questions := make([]Question, 0, len(in.Questions))
	for _, qi := range in.Questions {
		questions = append(questions, newQuestion(q.Slug, qi, now))
	}
	return s.store.CreateQuiz(ctx, q, questions)
}

// UpdateQuiz applies changed scalar fields and reconciles the submitted
// question list: slug-less payloads are created, slug-bearing payloads
// update the matching question in place. A slug that does not resolve to a
// question of this quiz fails the whole update.
func (s *Service) UpdateQuiz(ctx context.Context, actor, slug string, in QuizUpdateInput) (Quiz, error) {
	if err := validateInput(in); err != nil {
		return Quiz{}, err
	}
	q, err := s.store.GetQuiz(ctx, slug)
	if err != nil {
		return Quiz{}, err
	}

	if in.Name != nil && *in.Name != q.Name {
		taken, err := s.store.QuizNameTaken(ctx, *in.Name, q.Slug)
		if err != nil {
			return Quiz{}, err
		}
		if taken {
			return Quiz{}, Validation("name", "a quiz with this name already exists")
		}
		q.Name = *in.Name
	}
	if in.ScheduleDate != nil {
		q.ScheduleDate = *in.ScheduleDate
	}
	if in.EndDate != nil {
		q.EndDate = *in.EndDate
	}
	if in.Description != nil {
		q.Description = *in.Description
	}
	if in.TimePerQuestion != nil {
		q.TimePerQuestion = *in.TimePerQuestion
	}

	now := s.now()
	q.UpdatedBy = actor
	q.UpdatedAt = now

	createIn, updateIn := partitionQuestionInputs(in.Questions)

	toCreate := make([]Question, 0, len(createIn))
	for _, qi := range createIn {
		toCreate = append(toCreate, newQuestion(q.Slug, qi, now))
	}

	toUpdate := make([]Question, 0, len(updateIn))
	for _, qi := range updateIn {
		existing, err := s.store.GetQuestion(ctx, qi.Slug)
		if err != nil {
			return Quiz{}, err
		}
		if existing.QuizSlug != q.Slug {
			return Quiz{}, NotFound("question " + qi.Slug)
		}
		existing.Text = qi.Text
		existing.Img = qi.Img
		existing.Type = qi.Type
		existing.Answer = grading.Normalize(qi.Answer)
		existing.UpdatedAt = now
		toUpdate = append(toUpdate, existing)
	}

	return s.store.UpdateQuiz(ctx, q, toCreate, toUpdate)
}

func (s *Service) GetQuiz(ctx context.Context, slug string) (Quiz, error) {
	return s.store.GetQuiz(ctx, slug)
}

func (s *Service) ListQuizzes(ctx context.Context, opts ListOpts) ([]Quiz, error) {
	return s.store.ListQuizzes(ctx, opts)
}

func (s *Service) DeleteQuiz(ctx context.Context, slug string) error {
	return s.store.DeleteQuiz(ctx, slug)
}

type QuestionCreateInput struct {
	Quiz   string `json:"quiz" validate:"required"`
	Text   string `json:"question_text" validate:"required"`
	Img    string `json:"question_img"`
	Type   string `json:"question_type" validate:"required,oneof=mcq open_text"`
	Answer string `json:"answer" validate:"required"`
}

type QuestionUpdateInput struct {
	Text   *string `json:"question_text" validate:"omitempty,min=1"`
	Img    *string `json:"question_img"`
	Type   *string `json:"question_type" validate:"omitempty,oneof=mcq open_text"`
	Answer *string `json:"answer" validate:"omitempty,min=1"`
}

func (s *Service) CreateQuestion(ctx context.Context, in QuestionCreateInput) (Question, error) {
	if err := validateInput(in); err != nil {
		return Question{}, err
	}
	q, err := s.store.GetQuiz(ctx, in.Quiz)
	if err != nil {
		return Question{}, err
	}
	now := s.now()
	qn := newQuestion(q.Slug, QuestionInput{
		Text:   in.Text,
		Img:    in.Img,
		Type:   in.Type,
		Answer: in.Answer,
	}, now)
	return s.store.CreateQuestion(ctx, qn)
}

func (s *Service) GetQuestion(ctx context.Context, slug string) (Question, error) {
	return s.store.GetQuestion(ctx, slug)
}

func (s *Service) UpdateQuestion(ctx context.Context, slug string, in QuestionUpdateInput) (Question, error) {
	if err := validateInput(in); err != nil {
		return Question{}, err
	}
	qn, err := s.store.GetQuestion(ctx, slug)
	if err != nil {
		return Question{}, err
	}
	if in.Text != nil {
		qn.Text = *in.Text
	}
	if in.Img != nil {
		qn.Img = *in.Img
	}
	if in.Type != nil {
		qn.Type = *in.Type
	}
	if in.Answer != nil {
		qn.Answer = grading.Normalize(*in.Answer)
	}
	qn.UpdatedAt = s.now()
	return s.store.UpdateQuestion(ctx, qn)
}

func (s *Service) DeleteQuestion(ctx context.Context, slug string) error {
	return s.store.DeleteQuestion(ctx, slug)
}

func newQuestion(quizSlug string, in QuestionInput, now time.Time) Question {
	return Question{
		Slug:      uuid.NewString(),
		QuizSlug:  quizSlug,
		Text:      in.Text,
		Img:       in.Img,
		Type:      in.Type,
		Answer:    grading.Normalize(in.Answer),
		CreatedAt: now,
		UpdatedAt: now,
	}
}
