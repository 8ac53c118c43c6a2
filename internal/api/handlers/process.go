package handlers

import (
	"errors"
	"net/http"

	"github.com/monreader/api/internal/pipeline"
)

type ProcessHandler struct {
	pipe      *pipeline.Pipeline
	maxUpload int64
}

func NewProcessHandler(pipe *pipeline.Pipeline, maxUpload int64) *ProcessHandler {
	return &ProcessHandler{pipe: pipe, maxUpload: maxUpload}
}

// UploadAndProcess accepts a multipart image upload, extracts its text and
// synthesizes speech from it. A TTS failure still yields a 200 with the
// extracted text and a null audio_url.
func (h *ProcessHandler) UploadAndProcess(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload)

	if err := r.ParseMultipartForm(h.maxUpload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "file required")
		return
	}
	defer file.Close()

	out, err := h.pipe.Process(r.Context(), pipeline.Upload{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        file,
	})
	if err != nil {
		var vErr *pipeline.ValidationError
		if errors.As(err, &vErr) {
			writeError(w, http.StatusBadRequest, vErr.Reason)
			return
		}
		writeError(w, http.StatusInternalServerError, "Processing failed: "+err.Error())
		return
	}

	writeJSON(w, http.StatusOK, out)
}
