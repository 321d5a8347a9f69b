package quiz

import "time"

// View models are chosen explicitly per endpoint: the list endpoint renders
// summaries, the detail endpoint renders the full quiz. No runtime
// serializer dispatch.

type QuizSummaryView struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	ScheduleDate    time.Time `json:"schedule_date"`
	EndDate         time.Time `json:"end_date"`
	Description     string    `json:"description,omitempty"`
	TimePerQuestion int       `json:"time_per_question"`
	Questions       []string  `json:"questions"`
	QuestionCount   int       `json:"question_count"`
	CreatedBy       string    `json:"created_by"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type QuizDetailView struct {
	ID              string         `json:"id"`
	Name            string         `json:"name"`
	ScheduleDate    time.Time      `json:"schedule_date"`
	EndDate         time.Time      `json:"end_date"`
	Description     string         `json:"description,omitempty"`
	TimePerQuestion int            `json:"time_per_question"`
	Questions       []QuestionView `json:"questions"`
	CreatedBy       string         `json:"created_by"`
	UpdatedBy       string         `json:"updated_by"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

type QuestionView struct {
	ID        string    `json:"id"`
	QuizID    string    `json:"quiz_id"`
	Text      string    `json:"question_text"`
	Img       string    `json:"question_img,omitempty"`
	Type      string    `json:"question_type"`
	Answer    string    `json:"answer,omitempty"` // omitted for non-privileged viewers
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AnswerResult is the graded outcome of a single submitted answer.
type AnswerResult struct {
	Question  string `json:"question"`
	Answer    string `json:"answer"`
	IsCorrect bool   `json:"is_correct"`
}

// AttemptResult is the full outcome of an attempt: every graded answer plus
// the aggregate score.
type AttemptResult struct {
	QuizID  string         `json:"quiz_id"`
	UserID  string         `json:"user_id"`
	TakenOn time.Time      `json:"taken_on"`
	Score   int            `json:"score"`
	Answers []AnswerResult `json:"answers"`
}

func NewQuizSummaryView(q Quiz) QuizSummaryView {
	slugs := make([]string, 0, len(q.Questions))
	for _, qn := range q.Questions {
		slugs = append(slugs, qn.Slug)
	}
	return QuizSummaryView{
		ID:              q.Slug,
		Name:            q.Name,
		ScheduleDate:    q.ScheduleDate,
		EndDate:         q.EndDate,
		Description:     q.Description,
		TimePerQuestion: q.TimePerQuestion,
		Questions:       slugs,
		QuestionCount:   len(slugs),
		CreatedBy:       q.CreatedBy,
		CreatedAt:       q.CreatedAt,
		UpdatedAt:       q.UpdatedAt,
	}
}

// NewQuizDetailView renders the full quiz. Canonical answers are included
// only for privileged viewers.
func NewQuizDetailView(q Quiz, includeAnswers bool) QuizDetailView {
	qs := make([]QuestionView, 0, len(q.Questions))
	for _, qn := range q.Questions {
		qs = append(qs, NewQuestionView(qn, includeAnswers))
	}
	return QuizDetailView{
		ID:              q.Slug,
		Name:            q.Name,
		ScheduleDate:    q.ScheduleDate,
		EndDate:         q.EndDate,
		Description:     q.Description,
		TimePerQuestion: q.TimePerQuestion,
		Questions:       qs,
		CreatedBy:       q.CreatedBy,
		UpdatedBy:       q.UpdatedBy,
		CreatedAt:       q.CreatedAt,
		UpdatedAt:       q.UpdatedAt,
	}
}

func NewQuestionView(q Question, includeAnswer bool) QuestionView {
	v := QuestionView{
		ID:        q.Slug,
		QuizID:    q.QuizSlug,
		Text:      q.Text,
		Img:       q.Img,
		Type:      q.Type,
		CreatedAt: q.CreatedAt,
		UpdatedAt: q.UpdatedAt,
	}
	if includeAnswer {
		v.Answer = q.Answer
	}
	return v
}

func NewAttemptResult(t TakenQuiz, sols []QuestionSolution) AttemptResult {
	answers := make([]AnswerResult, 0, len(sols))
	for _, s := range sols {
		answers = append(answers, AnswerResult{
			Question:  s.QuestionSlug,
			Answer:    s.Answer,
			IsCorrect: s.IsCorrect,
		})
	}
	return AttemptResult{
		QuizID:  t.QuizSlug,
		UserID:  t.UserID,
		TakenOn: t.TakenOn,
		Score:   t.Score,
		Answers: answers,
	}
}
