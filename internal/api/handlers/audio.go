package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/monreader/api/internal/pipeline"
	"github.com/monreader/api/internal/tts"
)

type AudioHandler struct {
	pipe     *pipeline.Pipeline
	provider tts.Provider
}

func NewAudioHandler(pipe *pipeline.Pipeline, provider tts.Provider) *AudioHandler {
	return &AudioHandler{pipe: pipe, provider: provider}
}

// GenerateAudio runs the TTS stage alone on caller-supplied text.
func (h *AudioHandler) GenerateAudio(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		writeError(w, http.StatusBadRequest, "text is required")
		return
	}

	out := h.pipe.GenerateAudio(r.Context(), req.Text)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":   out.Success,
		"audio_url": out.AudioURL,
		"message":   out.Message,
	})
}

// Voices returns the provider's voice catalog.
func (h *AudioHandler) Voices(w http.ResponseWriter, r *http.Request) {
	voices, err := h.provider.Voices(r.Context())
	if err != nil {
		writeError(w, http.StatusBadGateway, "failed to fetch voices: "+err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"voices": voices})
}
