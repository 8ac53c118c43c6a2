package tts_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/monreader/api/internal/tts"
)

func TestElevenLabsSynthesize(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/text-to-speech/voice-1", r.URL.Path)
		assert.Equal(t, "secret", r.Header.Get("xi-api-key"))

		var payload struct {
			Text          string `json:"text"`
			ModelID       string `json:"model_id"`
			VoiceSettings struct {
				Stability       float64 `json:"stability"`
				SimilarityBoost float64 `json:"similarity_boost"`
			} `json:"voice_settings"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "read me aloud", payload.Text)
		assert.Equal(t, "eleven_multilingual_v2", payload.ModelID)
		assert.Equal(t, 0.5, payload.VoiceSettings.Stability)
		assert.Equal(t, 0.75, payload.VoiceSettings.SimilarityBoost)

		w.Write([]byte("audio-bytes"))
	}))
	defer srv.Close()

	provider := tts.NewElevenLabs(tts.ElevenLabsConfig{APIKey: "secret", BaseURL: srv.URL})

	audio, err := provider.Synthesize(context.Background(), tts.Request{
		Text:    "read me aloud",
		VoiceID: "voice-1",
	})
	require.NoError(t, err)
	assert.Equal(t, []byte("audio-bytes"), audio)
}

func TestElevenLabsSynthesizeNon200(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail":"quota exceeded"}`, http.StatusTooManyRequests)
	}))
	defer srv.Close()

	provider := tts.NewElevenLabs(tts.ElevenLabsConfig{APIKey: "secret", BaseURL: srv.URL})

	_, err := provider.Synthesize(context.Background(), tts.Request{Text: "x", VoiceID: "v"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
	assert.Contains(t, err.Error(), "quota exceeded")
}

func TestElevenLabsSynthesizeEmptyBody(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	provider := tts.NewElevenLabs(tts.ElevenLabsConfig{APIKey: "secret", BaseURL: srv.URL})

	_, err := provider.Synthesize(context.Background(), tts.Request{Text: "x", VoiceID: "v"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty audio response")
}

func TestElevenLabsVoices(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/voices", r.URL.Path)
		assert.Equal(t, "secret", r.Header.Get("xi-api-key"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"voices":[{"voice_id":"a1","name":"George"},{"voice_id":"b2","name":"Alice"}]}`))
	}))
	defer srv.Close()

	provider := tts.NewElevenLabs(tts.ElevenLabsConfig{APIKey: "secret", BaseURL: srv.URL})

	voices, err := provider.Voices(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []tts.Voice{{ID: "a1", Name: "George"}, {ID: "b2", Name: "Alice"}}, voices)
}

func TestSilentMP3FrameAligned(t *testing.T) {
	t.Parallel()

	data := tts.SilentMP3(0)
	require.NotEmpty(t, data)
	// Frame sync word of the first (and only) frame.
	assert.Equal(t, byte(0xFF), data[0])
	assert.Equal(t, byte(0xFB), data[1])

	second := tts.SilentMP3(time.Second)
	assert.Greater(t, len(second), len(data))
	assert.Zero(t, len(second)%len(data))
}
