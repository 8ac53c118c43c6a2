package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	Server  ServerConfig
	OCR     OCRConfig
	TTS     TTSConfig
	Upload  UploadConfig
	Storage StorageConfig
	CORS    CORSConfig
}

type ServerConfig struct {
	Host string
	Port int
}

type OCRConfig struct {
	Backend      string // "gemini" or "openai"
	GeminiKey    string
	OpenAIKey    string
	Model        string
	MaxDimension int // longer image side is downscaled to this before OCR
}

type TTSConfig struct {
	APIKey          string
	VoiceID         string
	BackupVoices    []string
	Model           string
	MaxTextLength   int
	SilenceFallback bool
}

type UploadConfig struct {
	MaxFileSize       int64
	AllowedExtensions []string
}

type StorageConfig struct {
	UploadDir string
	AudioDir  string
}

type CORSConfig struct {
	AllowedOrigins []string
}

func Load() (*Config, error) {
	port, err := getEnvInt("SERVER_PORT", 8000)
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_PORT: %w", err)
	}

	maxDim, err := getEnvInt("OCR_MAX_DIMENSION", 2048)
	if err != nil {
		return nil, fmt.Errorf("invalid OCR_MAX_DIMENSION: %w", err)
	}

	maxText, err := getEnvInt("TTS_MAX_TEXT_LENGTH", 1000)
	if err != nil {
		return nil, fmt.Errorf("invalid TTS_MAX_TEXT_LENGTH: %w", err)
	}

	maxFileSize, err := getEnvInt("MAX_FILE_SIZE", 10<<20)
	if err != nil {
		return nil, fmt.Errorf("invalid MAX_FILE_SIZE: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: port,
		},
		OCR: OCRConfig{
			Backend:      getEnv("OCR_BACKEND", "gemini"),
			GeminiKey:    getEnv("GEMINI_API_KEY", ""),
			OpenAIKey:    getEnv("OPENAI_API_KEY", ""),
			Model:        getEnv("OCR_MODEL", ""),
			MaxDimension: maxDim,
		},
		TTS: TTSConfig{
			APIKey:          getEnv("ELEVEN_LABS_KEY", ""),
			VoiceID:         getEnv("VOICE_ID", "JBFqnCBsd6RMkjVDRZzb"),
			BackupVoices:    getEnvList("BACKUP_VOICES", nil),
			Model:           getEnv("TTS_MODEL", "eleven_multilingual_v2"),
			MaxTextLength:   maxText,
			SilenceFallback: getEnvBool("TTS_SILENCE_FALLBACK", false),
		},
		Upload: UploadConfig{
			MaxFileSize:       int64(maxFileSize),
			AllowedExtensions: getEnvList("ALLOWED_EXTENSIONS", []string{".jpg", ".jpeg", ".png", ".bmp", ".tiff", ".webp"}),
		},
		Storage: StorageConfig{
			UploadDir: getEnv("UPLOAD_DIR", "uploads"),
			AudioDir:  getEnv("AUDIO_DIR", "audio_outputs"),
		},
		CORS: CORSConfig{
			AllowedOrigins: getEnvList("ALLOWED_ORIGINS", []string{"*"}),
		},
	}

	return cfg, nil
}

func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// Validate checks that the credentials the configured backends need are
// present. A non-nil error aborts startup.
func (c *Config) Validate() error {
	var missing []string
	switch c.OCR.Backend {
	case "openai":
		if c.OCR.OpenAIKey == "" {
			missing = append(missing, "OPENAI_API_KEY")
		}
	default:
		if c.OCR.GeminiKey == "" {
			missing = append(missing, "GEMINI_API_KEY")
		}
	}
	if c.TTS.APIKey == "" {
		missing = append(missing, "ELEVEN_LABS_KEY")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required env vars: %s", strings.Join(missing, ", "))
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	return strconv.Atoi(v)
}

func getEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

func getEnvList(key string, fallback []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
