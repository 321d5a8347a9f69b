package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/quizforge/quizforge/internal/quiz"
	"github.com/quizforge/quizforge/internal/users"
)

type errorBody struct {
	Code    string `json:"code"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

type errorEnvelope struct {
	Error errorBody `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode response: %v", err)
	}
}

// writeError maps domain failures onto the wire taxonomy. Anything
// unrecognized is a 500 and gets logged, not leaked.
func writeError(w http.ResponseWriter, err error) {
	var de *quiz.Error
	if errors.As(err, &de) {
		writeJSON(w, statusFor(de.Kind), errorEnvelope{Error: errorBody{
			Code:    string(de.Kind),
			Field:   de.Field,
			Message: de.Message,
		}})
		return
	}
	switch {
	case errors.Is(err, users.ErrUsernameTaken):
		writeJSON(w, http.StatusBadRequest, errorEnvelope{Error: errorBody{
			Code: string(quiz.KindValidation), Field: "username", Message: err.Error(),
		}})
	case errors.Is(err, users.ErrInvalidCredential):
		writeJSON(w, http.StatusUnauthorized, errorEnvelope{Error: errorBody{
			Code: "unauthorized", Message: err.Error(),
		}})
	case errors.Is(err, users.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorEnvelope{Error: errorBody{
			Code: string(quiz.KindNotFound), Message: err.Error(),
		}})
	default:
		log.Printf("internal error: %v", err)
		writeJSON(w, http.StatusInternalServerError, errorEnvelope{Error: errorBody{
			Code: "internal", Message: "internal server error",
		}})
	}
}

func statusFor(k quiz.Kind) int {
	switch k {
	case quiz.KindValidation:
		return http.StatusBadRequest
	case quiz.KindNotFound, quiz.KindNotTaken:
		return http.StatusNotFound
	case quiz.KindPermissionDenied:
		return http.StatusForbidden
	case quiz.KindAlreadyTaken:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func badRequest(w http.ResponseWriter, field, message string) {
	writeJSON(w, http.StatusBadRequest, errorEnvelope{Error: errorBody{
		Code: string(quiz.KindValidation), Field: field, Message: message,
	}})
}

func forbidden(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusForbidden, errorEnvelope{Error: errorBody{
		Code: string(quiz.KindPermissionDenied), Message: message,
	}})
}
