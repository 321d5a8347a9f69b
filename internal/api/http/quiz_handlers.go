package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	auth "github.com/quizforge/quizforge/internal/auth/middleware"
	"github.com/quizforge/quizforge/internal/quiz"
	"github.com/quizforge/quizforge/internal/rbac"
)

// GET /quizzes?limit=&offset=
// Every caller gets the lightweight summary view: question identifiers and
// count, no question bodies.
func ListQuizzesHandler(svc *quiz.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		opts := quiz.ListOpts{
			Limit:  intQuery(r, "limit"),
			Offset: intQuery(r, "offset"),
		}
		qs, err := svc.ListQuizzes(r.Context(), opts)
		if err != nil {
			writeError(w, err)
			return
		}
		out := make([]quiz.QuizSummaryView, 0, len(qs))
		for _, q := range qs {
			out = append(out, quiz.NewQuizSummaryView(q))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// POST /quizzes
func CreateQuizHandler(svc *quiz.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in quiz.QuizInput
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			badRequest(w, "", "malformed json body")
			return
		}
		q, err := svc.CreateQuiz(r.Context(), auth.SubjectFromContext(r.Context()), in)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, quiz.NewQuizDetailView(q, true))
	}
}

// GET /quizzes/{slug}
// Administrators always see the full quiz, answers included. Everyone else
// sees it only while it is live, with canonical answers stripped.
func GetQuizHandler(svc *quiz.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q, err := svc.GetQuiz(r.Context(), chi.URLParam(r, "slug"))
		if err != nil {
			writeError(w, err)
			return
		}
		admin := rbac.RoleFromContext(r.Context()) == rbac.RoleAdmin
		if !admin && !q.IsLive(time.Now()) {
			forbidden(w, "quiz is not live")
			return
		}
		writeJSON(w, http.StatusOK, quiz.NewQuizDetailView(q, admin))
	}
}

// PATCH/PUT /quizzes/{slug}
// Requires the administrator role and ownership of the quiz.
func UpdateQuizHandler(svc *quiz.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q, err := svc.GetQuiz(r.Context(), chi.URLParam(r, "slug"))
		if err != nil {
			writeError(w, err)
			return
		}
		sub := auth.SubjectFromContext(r.Context())
		role := rbac.RoleFromContext(r.Context())
		if !rbac.Allowed(rbac.QuizUpdate, role, q.CreatedBy == sub) {
			forbidden(w, "only the quiz owner may update it")
			return
		}
		var in quiz.QuizUpdateInput
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			badRequest(w, "", "malformed json body")
			return
		}
		updated, err := svc.UpdateQuiz(r.Context(), sub, q.Slug, in)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, quiz.NewQuizDetailView(updated, true))
	}
}

// DELETE /quizzes/{slug}
func DeleteQuizHandler(svc *quiz.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q, err := svc.GetQuiz(r.Context(), chi.URLParam(r, "slug"))
		if err != nil {
			writeError(w, err)
			return
		}
		sub := auth.SubjectFromContext(r.Context())
		role := rbac.RoleFromContext(r.Context())
		if !rbac.Allowed(rbac.QuizDelete, role, q.CreatedBy == sub) {
			forbidden(w, "only the quiz owner may delete it")
			return
		}
		if err := svc.DeleteQuiz(r.Context(), q.Slug); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// POST /quizzes/{slug}/user_submit  { "answers": [{"question": "...", "answer": "..."}] }
func SubmitHandler(svc *quiz.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Answers []quiz.AnswerInput `json:"answers"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			badRequest(w, "", "malformed json body")
			return
		}
		res, err := svc.Submit(r.Context(), chi.URLParam(r, "slug"),
			auth.SubjectFromContext(r.Context()), req.Answers)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, res)
	}
}

// GET /quizzes/{slug}/user_answers
func UserAnswersHandler(svc *quiz.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res, err := svc.Attempt(r.Context(), chi.URLParam(r, "slug"),
			auth.SubjectFromContext(r.Context()))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, res)
	}
}

func intQuery(r *http.Request, key string) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0
	}
	return n
}
