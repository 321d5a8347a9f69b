package quiz

import "time"

// Question types supported by the grading engine.
const (
	TypeMCQ      = "mcq"
	TypeOpenText = "open_text"
)

// DefaultTimePerQuestion is the per-question time budget, in seconds,
// applied when the author does not supply one.
const DefaultTimePerQuestion = 60

// Quiz is the authored artifact. The slug is the only identifier that ever
// leaves the system; database keys stay internal.
type Quiz struct {
	Slug            string    `json:"id"`
	Name            string    `json:"name"`
	ScheduleDate    time.Time `json:"schedule_date"`
	EndDate         time.Time `json:"end_date"`
	Description     string    `json:"description,omitempty"`
	TimePerQuestion int       `json:"time_per_question"`
	CreatedBy       string    `json:"created_by"`
	UpdatedBy       string    `json:"updated_by"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`

	Questions []Question `json:"questions,omitempty"`
}

type Question struct {
	Slug      string    `json:"id"`
	QuizSlug  string    `json:"quiz_id"`
	Text      string    `json:"question_text"`
	Img       string    `json:"question_img,omitempty"`
	Type      string    `json:"question_type"` // mcq | open_text
	Answer    string    `json:"answer,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TakenQuiz is one user's single graded submission for one quiz. The store
// enforces at most one row per (quiz, user) with a unique index; that
// constraint, not the pre-check, is the authoritative duplicate signal.
type TakenQuiz struct {
	ID       string    `json:"id"`
	QuizSlug string    `json:"quiz_id"`
	UserID   string    `json:"user_id"`
	TakenOn  time.Time `json:"taken_on"`
	Score    int       `json:"score"`
}

// QuestionSolution records one graded answer within an attempt. A question
// is referenced by many solutions across attempts (many-to-one).
type QuestionSolution struct {
	ID           string `json:"id"`
	TakenQuizID  string `json:"taken_quiz_id"`
	QuestionSlug string `json:"question"`
	Answer       string `json:"answer"` // stored lower-cased
	IsCorrect    bool   `json:"is_correct"`
}
