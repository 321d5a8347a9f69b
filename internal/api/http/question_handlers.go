package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/quizforge/quizforge/internal/quiz"
	"github.com/quizforge/quizforge/internal/rbac"
)

// The question resource has no list endpoint; questions are reached through
// their quiz or by slug.

// POST /questions
func CreateQuestionHandler(svc *quiz.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in quiz.QuestionCreateInput
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			badRequest(w, "", "malformed json body")
			return
		}
		q, err := svc.CreateQuestion(r.Context(), in)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, quiz.NewQuestionView(q, true))
	}
}

// GET /questions/{slug}
// Live-gated for non-administrators, same as the quiz detail.
func GetQuestionHandler(svc *quiz.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		qn, err := svc.GetQuestion(r.Context(), chi.URLParam(r, "slug"))
		if err != nil {
			writeError(w, err)
			return
		}
		admin := rbac.RoleFromContext(r.Context()) == rbac.RoleAdmin
		if !admin {
			q, err := svc.GetQuiz(r.Context(), qn.QuizSlug)
			if err != nil {
				writeError(w, err)
				return
			}
			if !q.IsLive(time.Now()) {
				forbidden(w, "quiz is not live")
				return
			}
		}
		writeJSON(w, http.StatusOK, quiz.NewQuestionView(qn, admin))
	}
}

// PATCH/PUT /questions/{slug}
func UpdateQuestionHandler(svc *quiz.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in quiz.QuestionUpdateInput
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			badRequest(w, "", "malformed json body")
			return
		}
		qn, err := svc.UpdateQuestion(r.Context(), chi.URLParam(r, "slug"), in)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, quiz.NewQuestionView(qn, true))
	}
}

// DELETE /questions/{slug}
func DeleteQuestionHandler(svc *quiz.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.DeleteQuestion(r.Context(), chi.URLParam(r, "slug")); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
