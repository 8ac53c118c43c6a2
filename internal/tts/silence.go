package tts

import "time"

// MPEG-1 Layer III, 44.1 kHz, 128 kbps, no padding.
// Frame length: 144 * 128000 / 44100 = 417 bytes, 1152 samples per frame.
const (
	silentFrameSize     = 417
	silentFrameDuration = 1152 * time.Second / 44100
)

var silentFrameHeader = [4]byte{0xFF, 0xFB, 0x90, 0x64}

// SilentMP3 returns a playable MP3 payload of roughly d worth of silence.
// Used as the last-resort placeholder when every synthesis attempt fails;
// at least one frame is always emitted.
func SilentMP3(d time.Duration) []byte {
	frames := int(d / silentFrameDuration)
	if frames < 1 {
		frames = 1
	}

	frame := make([]byte, silentFrameSize)
	copy(frame, silentFrameHeader[:])

	buf := make([]byte, 0, frames*silentFrameSize)
	for i := 0; i < frames; i++ {
		buf = append(buf, frame...)
	}
	return buf
}
