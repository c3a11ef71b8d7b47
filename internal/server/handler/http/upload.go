package http

import (
	"errors"
	"net/http"

	"github.com/afigueiredo/werkstatt/internal/uploads"
)

// UploadHandler accepts service photos.
type UploadHandler struct {
	// Dir is the directory uploaded files are stored in.
	Dir string
}

// Upload handles POST /api/upload. It expects a multipart form with an
// "image" file of at most 5MB and an image/* content type, and returns
// the path the file is served under.
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, uploads.MaxFileSize)
	if err := r.ParseMultipartForm(uploads.MaxFileSize); err != nil {
		writeMessage(w, http.StatusBadRequest, "file too large or malformed form")
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "no file uploaded")
		return
	}
	defer file.Close()

	name, err := uploads.Save(h.Dir, file, header)
	if err != nil {
		if errors.Is(err, uploads.ErrNotImage) {
			writeMessage(w, http.StatusBadRequest, "only images are allowed")
			return
		}
		writeMessage(w, http.StatusInternalServerError, "file upload failed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"path": "/api/uploads/" + name})
}
