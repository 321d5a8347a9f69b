package http

import (
	"github.com/go-chi/chi/v5"

	auth "github.com/quizforge/quizforge/internal/auth/middleware"
	"github.com/quizforge/quizforge/internal/quiz"
	"github.com/quizforge/quizforge/internal/rbac"
	"github.com/quizforge/quizforge/internal/storage"
	"github.com/quizforge/quizforge/internal/users"
)

type Deps struct {
	Quizzes *quiz.Service
	Users   *users.Store
	Auth    *auth.AuthService
	Blobs   storage.BlobStore
}

// Routes mounts the full API surface. Role-only permissions are enforced by
// middleware; ownership-sensitive ones (quiz update/delete) inside their
// handlers.
func Routes(d Deps) chi.Router {
	r := chi.NewRouter()

	r.Post("/auth/register", RegisterHandler(d.Users))
	r.Post("/auth/login", LoginHandler(d.Users, d.Auth))

	r.Group(func(pr chi.Router) {
		pr.Use(auth.JWTMiddleware(d.Auth))

		pr.Get("/auth/me", MeHandler(d.Users))

		pr.With(rbac.Require(rbac.QuizView)).
			Get("/quizzes", ListQuizzesHandler(d.Quizzes))
		pr.With(rbac.Require(rbac.QuizCreate)).
			Post("/quizzes", CreateQuizHandler(d.Quizzes))
		pr.With(rbac.Require(rbac.QuizView)).
			Get("/quizzes/{slug}", GetQuizHandler(d.Quizzes))
		pr.Patch("/quizzes/{slug}", UpdateQuizHandler(d.Quizzes))
		pr.Put("/quizzes/{slug}", UpdateQuizHandler(d.Quizzes))
		pr.Delete("/quizzes/{slug}", DeleteQuizHandler(d.Quizzes))

		pr.With(rbac.Require(rbac.AttemptSubmit)).
			Post("/quizzes/{slug}/user_submit", SubmitHandler(d.Quizzes))
		pr.With(rbac.Require(rbac.AttemptView)).
			Get("/quizzes/{slug}/user_answers", UserAnswersHandler(d.Quizzes))

		pr.With(rbac.Require(rbac.QuestionCreate)).
			Post("/questions", CreateQuestionHandler(d.Quizzes))
		pr.With(rbac.Require(rbac.QuestionView)).
			Get("/questions/{slug}", GetQuestionHandler(d.Quizzes))
		pr.With(rbac.Require(rbac.QuestionUpdate)).
			Patch("/questions/{slug}", UpdateQuestionHandler(d.Quizzes))
		pr.With(rbac.Require(rbac.QuestionUpdate)).
			Put("/questions/{slug}", UpdateQuestionHandler(d.Quizzes))
		pr.With(rbac.Require(rbac.QuestionDelete)).
			Delete("/questions/{slug}", DeleteQuestionHandler(d.Quizzes))

		if d.Blobs != nil {
			pr.Route("/assets", func(ar chi.Router) {
				ar.With(rbac.Require(rbac.QuestionUpdate)).
					Post("/questions/{slug}", UploadQuestionImageHandler(d.Blobs, d.Quizzes))
				ar.Get("/*", GetAssetHandler(d.Blobs))
			})
		}
	})

	return r
}
