package http

import (
	"io"
	"net/http"
	"path"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/quizforge/quizforge/internal/quiz"
	"github.com/quizforge/quizforge/internal/storage"
)

// POST /assets/questions/{slug} — multipart "file"; stores the blob and
// points the question's image field at it.
func UploadQuestionImageHandler(bs storage.BlobStore, svc *quiz.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slug := chi.URLParam(r, "slug")
		f, hdr, err := r.FormFile("file")
		if err != nil {
			badRequest(w, "file", "file is required")
			return
		}
		defer f.Close()

		key := "questions/" + slug + "/" + path.Base(hdr.Filename)
		if _, err := bs.Put(key, f); err != nil {
			writeError(w, err)
			return
		}
		if _, err := svc.UpdateQuestion(r.Context(), slug, quiz.QuestionUpdateInput{Img: &key}); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"key": key})
	}
}

// GET /assets/* — returns the blob at whatever follows /assets/
func GetAssetHandler(bs storage.BlobStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key := strings.TrimPrefix(chi.URLParam(r, "*"), "/")
		rc, err := bs.Get(key)
		if err != nil {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		defer rc.Close()
		w.Header().Set("Content-Type", "application/octet-stream")
		_, _ = io.Copy(w, rc)
	}
}
