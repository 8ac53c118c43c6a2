package api

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/monreader/api/internal/api/handlers"
	"github.com/monreader/api/internal/api/middleware"
	"github.com/monreader/api/internal/config"
	"github.com/monreader/api/internal/ocr"
	"github.com/monreader/api/internal/pipeline"
	"github.com/monreader/api/internal/storage"
	"github.com/monreader/api/internal/tts"
)

type Router struct {
	mux   *chi.Mux
	cfg   *config.Config
	store *storage.Paths
}

func NewRouter(cfg *config.Config, store *storage.Paths) *Router {
	return &Router{
		mux:   chi.NewRouter(),
		cfg:   cfg,
		store: store,
	}
}

func (rt *Router) Setup() http.Handler {
	r := rt.mux

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logging)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.CORS(rt.cfg.CORS.AllowedOrigins))

	// Adapters and pipeline
	ocrProvider := newOCRProvider(rt.cfg.OCR)
	ttsProvider := tts.NewElevenLabs(tts.ElevenLabsConfig{
		APIKey: rt.cfg.TTS.APIKey,
		Model:  rt.cfg.TTS.Model,
	})
	synth := tts.NewSynthesizer(ttsProvider, tts.SynthesizerConfig{
		PrimaryVoice:    rt.cfg.TTS.VoiceID,
		BackupVoices:    rt.cfg.TTS.BackupVoices,
		Model:           rt.cfg.TTS.Model,
		MaxTextLength:   rt.cfg.TTS.MaxTextLength,
		SilenceFallback: rt.cfg.TTS.SilenceFallback,
	})
	pipe := pipeline.New(ocrProvider, synth, rt.store, rt.cfg.Upload.AllowedExtensions)

	health := handlers.NewHealthHandler()
	r.Get("/", health.Root)
	r.Get("/health", health.Health)

	processH := handlers.NewProcessHandler(pipe, rt.cfg.Upload.MaxFileSize)
	r.Post("/upload-and-process", processH.UploadAndProcess)

	audioH := handlers.NewAudioHandler(pipe, ttsProvider)
	r.Post("/generate-audio", audioH.GenerateAudio)
	r.Get("/voices", audioH.Voices)

	// Static mount for generated audio, directory listing disabled.
	fileServer := http.StripPrefix("/audio/", http.FileServer(http.Dir(rt.cfg.Storage.AudioDir)))
	r.Get("/audio/*", func(w http.ResponseWriter, req *http.Request) {
		if strings.HasSuffix(req.URL.Path, "/") {
			http.NotFound(w, req)
			return
		}
		fileServer.ServeHTTP(w, req)
	})

	return r
}

func newOCRProvider(cfg config.OCRConfig) ocr.Provider {
	switch cfg.Backend {
	case "openai":
		return ocr.NewOpenAI(ocr.OpenAIConfig{
			APIKey:       cfg.OpenAIKey,
			Model:        cfg.Model,
			MaxDimension: cfg.MaxDimension,
		})
	default:
		return ocr.NewGemini(ocr.GeminiConfig{
			APIKey:       cfg.GeminiKey,
			Model:        cfg.Model,
			MaxDimension: cfg.MaxDimension,
		})
	}
}
