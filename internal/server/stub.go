package server

import (
	"context"
	"fmt"
	"log/slog"

	typecast "github.com/neosapience/typecast-sdk"
)

// StubSynthesizer implements the Synthesizer interface with deterministic
// silent audio. It is intended for CI and testing environments where the
// real Typecast API is unavailable.
type StubSynthesizer struct {
	log *slog.Logger
}

// NewStubSynthesizer returns a stub that generates silent PCM data
// proportional to the input text length.
func NewStubSynthesizer(logger *slog.Logger) *StubSynthesizer {
	if logger == nil {
		logger = slog.Default()
	}
	return &StubSynthesizer{log: logger}
}

// TextToSpeech returns deterministic silent audio. The output size is
// len(text) * 320 bytes (320 bytes ≈ 10 ms at 16 kHz mono PCM16).
func (s *StubSynthesizer) TextToSpeech(_ context.Context, req *typecast.TTSRequest) (*typecast.TTSResponse, error) {
	if req == nil || req.Text == "" {
		return nil, fmt.Errorf("stub: text is required")
	}
	if req.VoiceID == "" {
		return nil, fmt.Errorf("stub: voice_id is required")
	}

	format := typecast.AudioFormatWAV
	if req.Output != nil && req.Output.AudioFormat != "" {
		format = req.Output.AudioFormat
	}

	pcm := make([]byte, len(req.Text)*320)

	s.log.Info("stub synthesis",
		"text_length", len(req.Text),
		"voice_id", req.VoiceID,
		"bytes", len(pcm),
	)

	return &typecast.TTSResponse{
		AudioData: pcm,
		Duration:  float64(len(pcm)) / (16000 * 2),
		Format:    format,
	}, nil
}
