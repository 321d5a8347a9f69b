package quiz

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"
)

// SQLStore persists authoring data and attempts through database/sql. It
// works against both wired drivers ("sqlite" and "postgres"); the schema is
// bootstrapped by the db package.
type SQLStore struct {
	db     *sql.DB
	driver string // "sqlite" or "postgres"
}

func NewSQLStore(db *sql.DB, driver string) *SQLStore {
	return &SQLStore{db: db, driver: driver}
}

func (s *SQLStore) CreateQuiz(ctx context.Context, q Quiz, questions []Question) (Quiz, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Quiz{}, err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `INSERT INTO quizzes
		(slug,name,schedule_date,end_date,description,time_per_question,created_by,updated_by,created_at,updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`,
		q.Slug, q.Name, q.ScheduleDate.Unix(), q.EndDate.Unix(), q.Description,
		q.TimePerQuestion, q.CreatedBy, q.UpdatedBy, q.CreatedAt.Unix(), q.UpdatedAt.Unix())
	if err != nil {
		if isUniqueViolation(err) {
			return Quiz{}, Validation("name", "a quiz with this name already exists")
		}
		return Quiz{}, err
	}
	for _, qn := range questions {
		if err := insertQuestion(ctx, tx, qn); err != nil {
			return Quiz{}, err
		}
	}
	if err := tx.Commit(); err != nil {
		return Quiz{}, err
	}
	q.Questions = questions
	return q, nil
}

func (s *SQLStore) GetQuiz(ctx context.Context, slug string) (Quiz, error) {
	row := s.db.QueryRowContext(ctx, `SELECT slug,name,schedule_date,end_date,description,
		time_per_question,created_by,updated_by,created_at,updated_at
		FROM quizzes WHERE slug=$1`, slug)
	q, err := scanQuiz(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Quiz{}, NotFound("quiz")
		}
		return Quiz{}, err
	}
	qs, err := s.questionsForQuiz(ctx, slug)
	if err != nil {
		return Quiz{}, err
	}
	q.Questions = qs
	return q, nil
}

func (s *SQLStore) ListQuizzes(ctx context.Context, opts ListOpts) ([]Quiz, error) {
	limit := opts.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	offset := opts.Offset
	if offset < 0 {
		offset = 0
	}
	rows, err := s.db.QueryContext(ctx, `SELECT slug,name,schedule_date,end_date,description,
		time_per_question,created_by,updated_by,created_at,updated_at
		FROM quizzes ORDER BY created_at DESC, slug LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Quiz{}
	for rows.Next() {
		q, err := scanQuiz(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, q)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	// attach question slugs for the summary representation
	for i := range out {
		slugs, err := s.questionSlugsForQuiz(ctx, out[i].Slug)
		if err != nil {
			return nil, err
		}
		for _, sl := range slugs {
			out[i].Questions = append(out[i].Questions, Question{Slug: sl, QuizSlug: out[i].Slug})
		}
	}
	return out, nil
}

func (s *SQLStore) UpdateQuiz(ctx context.Context, q Quiz, toCreate, toUpdate []Question) (Quiz, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Quiz{}, err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `UPDATE quizzes SET name=$1, schedule_date=$2, end_date=$3,
		description=$4, time_per_question=$5, updated_by=$6, updated_at=$7 WHERE slug=$8`,
		q.Name, q.ScheduleDate.Unix(), q.EndDate.Unix(), q.Description,
		q.TimePerQuestion, q.UpdatedBy, q.UpdatedAt.Unix(), q.Slug)
	if err != nil {
		if isUniqueViolation(err) {
			return Quiz{}, Validation("name", "a quiz with this name already exists")
		}
		return Quiz{}, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return Quiz{}, NotFound("quiz")
	}

	for _, qn := range toCreate {
		if err := insertQuestion(ctx, tx, qn); err != nil {
			return Quiz{}, err
		}
	}
	for _, qn := range toUpdate {
		res, err := tx.ExecContext(ctx, `UPDATE questions SET question_text=$1, question_img=$2,
			question_type=$3, answer=$4, updated_at=$5 WHERE slug=$6`,
			qn.Text, qn.Img, qn.Type, qn.Answer, qn.UpdatedAt.Unix(), qn.Slug)
		if err != nil {
			return Quiz{}, err
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return Quiz{}, NotFound("question " + qn.Slug)
		}
	}
	if err := tx.Commit(); err != nil {
		return Quiz{}, err
	}
	return s.GetQuiz(ctx, q.Slug)
}

func (s *SQLStore) DeleteQuiz(ctx context.Context, slug string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM quizzes WHERE slug=$1`, slug)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return NotFound("quiz")
	}
	return nil
}

func (s *SQLStore) QuizNameTaken(ctx context.Context, name, excludeSlug string) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx,
		`SELECT 1 FROM quizzes WHERE name=$1 AND slug<>$2 LIMIT 1`, name, excludeSlug).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *SQLStore) CreateQuestion(ctx context.Context, q Question) (Question, error) {
	if err := insertQuestion(ctx, s.db, q); err != nil {
		return Question{}, err
	}
	return q, nil
}

func (s *SQLStore) GetQuestion(ctx context.Context, slug string) (Question, error) {
	row := s.db.QueryRowContext(ctx, `SELECT slug,quiz_slug,question_text,question_img,
		question_type,answer,created_at,updated_at FROM questions WHERE slug=$1`, slug)
	q, err := scanQuestion(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Question{}, NotFound("question")
		}
		return Question{}, err
	}
	return q, nil
}

func (s *SQLStore) UpdateQuestion(ctx context.Context, q Question) (Question, error) {
	res, err := s.db.ExecContext(ctx, `UPDATE questions SET question_text=$1, question_img=$2,
		question_type=$3, answer=$4, updated_at=$5 WHERE slug=$6`,
		q.Text, q.Img, q.Type, q.Answer, q.UpdatedAt.Unix(), q.Slug)
	if err != nil {
		return Question{}, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return Question{}, NotFound("question")
	}
	return q, nil
}

func (s *SQLStore) DeleteQuestion(ctx context.Context, slug string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM questions WHERE slug=$1`, slug)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return NotFound("question")
	}
	return nil
}

func (s *SQLStore) HasAttempt(ctx context.Context, quizSlug, userID string) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx,
		`SELECT 1 FROM taken_quizzes WHERE quiz_slug=$1 AND user_id=$2`, quizSlug, userID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// CreateAttempt inserts the attempt row, its solutions and the recomputed
// score in one transaction. The unique index on (quiz_slug, user_id) turns
// a concurrent duplicate submission into ErrAlreadyTaken on the second
// writer.
func (s *SQLStore) CreateAttempt(ctx context.Context, t TakenQuiz, sols []QuestionSolution) (TakenQuiz, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return TakenQuiz{}, err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `INSERT INTO taken_quizzes (id,quiz_slug,user_id,taken_on,score)
		VALUES ($1,$2,$3,$4,0)`,
		t.ID, t.QuizSlug, t.UserID, t.TakenOn.Unix())
	if err != nil {
		if isUniqueViolation(err) {
			return TakenQuiz{}, ErrAlreadyTaken
		}
		return TakenQuiz{}, err
	}

	for _, sol := range sols {
		correct := 0
		if sol.IsCorrect {
			correct = 1
		}
		_, err := tx.ExecContext(ctx, `INSERT INTO question_solutions
			(id,taken_quiz_id,question_slug,answer,is_correct) VALUES ($1,$2,$3,$4,$5)`,
			sol.ID, sol.TakenQuizID, sol.QuestionSlug, sol.Answer, correct)
		if err != nil {
			return TakenQuiz{}, err
		}
	}

	row := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM question_solutions
		WHERE taken_quiz_id=$1 AND is_correct=1`, t.ID)
	if err := row.Scan(&t.Score); err != nil {
		return TakenQuiz{}, err
	}
	if _, err := tx.ExecContext(ctx, `UPDATE taken_quizzes SET score=$1 WHERE id=$2`, t.Score, t.ID); err != nil {
		return TakenQuiz{}, err
	}

	if err := tx.Commit(); err != nil {
		return TakenQuiz{}, err
	}
	return t, nil
}

func (s *SQLStore) GetAttempt(ctx context.Context, quizSlug, userID string) (TakenQuiz, []QuestionSolution, error) {
	row := s.db.QueryRowContext(ctx, `SELECT id,quiz_slug,user_id,taken_on,score
		FROM taken_quizzes WHERE quiz_slug=$1 AND user_id=$2`, quizSlug, userID)
	var t TakenQuiz
	var takenOn int64
	if err := row.Scan(&t.ID, &t.QuizSlug, &t.UserID, &takenOn, &t.Score); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return TakenQuiz{}, nil, ErrNotTaken
		}
		return TakenQuiz{}, nil, err
	}
	t.TakenOn = time.Unix(takenOn, 0).UTC()

	rows, err := s.db.QueryContext(ctx, `SELECT id,taken_quiz_id,question_slug,answer,is_correct
		FROM question_solutions WHERE taken_quiz_id=$1 ORDER BY id`, t.ID)
	if err != nil {
		return TakenQuiz{}, nil, err
	}
	defer rows.Close()

	sols := []QuestionSolution{}
	for rows.Next() {
		var sol QuestionSolution
		var correct int
		if err := rows.Scan(&sol.ID, &sol.TakenQuizID, &sol.QuestionSlug, &sol.Answer, &correct); err != nil {
			return TakenQuiz{}, nil, err
		}
		sol.IsCorrect = correct == 1
		sols = append(sols, sol)
	}
	if err := rows.Err(); err != nil {
		return TakenQuiz{}, nil, err
	}
	return t, sols, nil
}

// --- helpers ---

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func insertQuestion(ctx context.Context, ex execer, q Question) error {
	_, err := ex.ExecContext(ctx, `INSERT INTO questions
		(slug,quiz_slug,question_text,question_img,question_type,answer,created_at,updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		q.Slug, q.QuizSlug, q.Text, q.Img, q.Type, q.Answer, q.CreatedAt.Unix(), q.UpdatedAt.Unix())
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanQuiz(row rowScanner) (Quiz, error) {
	var q Quiz
	var sched, end, created, updated int64
	err := row.Scan(&q.Slug, &q.Name, &sched, &end, &q.Description,
		&q.TimePerQuestion, &q.CreatedBy, &q.UpdatedBy, &created, &updated)
	if err != nil {
		return Quiz{}, err
	}
	q.ScheduleDate = time.Unix(sched, 0).UTC()
	q.EndDate = time.Unix(end, 0).UTC()
	q.CreatedAt = time.Unix(created, 0).UTC()
	q.UpdatedAt = time.Unix(updated, 0).UTC()
	return q, nil
}

func scanQuestion(row rowScanner) (Question, error) {
	var q Question
	var created, updated int64
	err := row.Scan(&q.Slug, &q.QuizSlug, &q.Text, &q.Img, &q.Type, &q.Answer, &created, &updated)
	if err != nil {
		return Question{}, err
	}
	q.CreatedAt = time.Unix(created, 0).UTC()
	q.UpdatedAt = time.Unix(updated, 0).UTC()
	return q, nil
}

func (s *SQLStore) questionsForQuiz(ctx context.Context, quizSlug string) ([]Question, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT slug,quiz_slug,question_text,question_img,
		question_type,answer,created_at,updated_at FROM questions
		WHERE quiz_slug=$1 ORDER BY created_at, slug`, quizSlug)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Question{}
	for rows.Next() {
		q, err := scanQuestion(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, q)
	}
	return out, rows.Err()
}

func (s *SQLStore) questionSlugsForQuiz(ctx context.Context, quizSlug string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT slug FROM questions WHERE quiz_slug=$1 ORDER BY created_at, slug`, quizSlug)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []string{}
	for rows.Next() {
		var sl string
		if err := rows.Scan(&sl); err != nil {
			return nil, err
		}
		out = append(out, sl)
	}
	return out, rows.Err()
}

// isUniqueViolation matches the driver-specific message for a unique
// constraint failure; sqlite says "UNIQUE constraint failed", postgres says
// "duplicate key value violates unique constraint".
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "duplicate key")
}
