package server

import (
	"fmt"
	"log/slog"
	"time"

	napv1 "github.com/nupi-ai/nupi/api/nap/v1"

	typecast "github.com/neosapience/typecast-sdk"
	"github.com/neosapience/typecast-sdk/internal/adapterinfo"
	"github.com/neosapience/typecast-sdk/internal/cache"
	"github.com/neosapience/typecast-sdk/internal/config"
	"github.com/neosapience/typecast-sdk/internal/telemetry"
)

const chunkSize = 4096 // bytes per chunk sent to the session pipeline

// Playback rates used to estimate durations for cached audio, where the
// original duration header is no longer available.
const (
	wavBytesPerSecond = 44100 * 2 // 16-bit mono at 44.1 kHz
	mp3BitsPerSecond  = 320_000
)

// Server implements the TextToSpeechService and synthesizes audio via Typecast.
type Server struct {
	napv1.UnimplementedTextToSpeechServiceServer

	cfg     config.Config
	log     *slog.Logger
	synth   Synthesizer
	metrics *telemetry.Recorder
	cache   *cache.Cache // nil when caching is disabled
}

// New returns a new Server instance.
func New(cfg config.Config, logger *slog.Logger, synth Synthesizer, metrics *telemetry.Recorder, audioCache *cache.Cache) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if synth == nil {
		panic("server: synthesizer must not be nil")
	}
	if metrics == nil {
		metrics = telemetry.NewRecorder(logger)
	}
	return &Server{
		cfg: cfg,
		log: logger.With(
			"component", "server",
			"model", cfg.Model,
			"voice_id", cfg.VoiceID,
		),
		synth:   synth,
		metrics: metrics,
		cache:   audioCache,
	}
}

// StreamSynthesis accepts a text synthesis request and streams back audio chunks.
func (s *Server) StreamSynthesis(req *napv1.StreamSynthesisRequest, stream napv1.TextToSpeechService_StreamSynthesisServer) error {
	if req == nil {
		return fmt.Errorf("server: request is nil")
	}

	sessionID := req.GetSessionId()
	streamID := req.GetStreamId()
	text := req.GetText()

	logEntry := s.log.With(
		"session_id", sessionID,
		"stream_id", streamID,
		"text_length", len(text),
	)

	if text == "" {
		logEntry.Warn("empty text in synthesis request")
		return s.sendError(stream, "text is required")
	}

	// Resolve language from config mode and request metadata.
	resolvedLang := resolveLanguage(s.cfg.Language, req.GetMetadata())
	logEntry = logEntry.With("language", resolvedLang)

	logEntry.Info("synthesis request received")

	// Send STARTED status
	if err := s.sendStatus(stream, napv1.SynthesisStatus_SYNTHESIS_STATUS_STARTED, nil); err != nil {
		logEntry.Error("failed to send started status", "error", err)
		return err
	}

	ttsReq := s.buildRequest(text, resolvedLang)

	// Cache hit path
	var cacheKey string
	if s.cache != nil {
		cacheKey = cache.Key(ttsReq)
		if data, ok := s.cache.Get(cacheKey); ok {
			logEntry.Info("cache hit", "key", cacheKey)
			return s.streamAudio(stream, data, estimateDuration(data, s.cfg.AudioFormat), "cache", logEntry)
		}
		logEntry.Debug("cache miss", "key", cacheKey)
	}

	ctx := stream.Context()
	start := time.Now()

	resp, err := s.synth.TextToSpeech(ctx, ttsReq)
	if err != nil {
		if ctx.Err() != nil {
			logEntry.Info("synthesis interrupted", "reason", ctx.Err())
			return s.sendStatus(stream, napv1.SynthesisStatus_SYNTHESIS_STATUS_INTERRUPTED, map[string]string{
				"reason": ctx.Err().Error(),
			})
		}
		logEntry.Error("typecast synthesis failed", "error", err)
		return s.sendError(stream, fmt.Sprintf("synthesis failed: %v", err))
	}

	logEntry.Info("synthesis completed",
		"total_bytes", len(resp.AudioData),
		"audio_duration_sec", resp.Duration,
		"format", resp.Format,
		"elapsed_sec", time.Since(start).Seconds(),
	)

	// Store in cache
	if s.cache != nil && len(resp.AudioData) > 0 {
		if err := s.cache.Put(cacheKey, resp.AudioData); err != nil {
			logEntry.Warn("failed to store in cache", "error", err)
		}
	}

	return s.streamAudio(stream, resp.AudioData, resp.Duration, "api", logEntry)
}

// buildRequest assembles the synthesis request from the configured defaults
// and the resolved language. "auto" leaves the language unset so the service
// detects it from the text.
func (s *Server) buildRequest(text, resolvedLang string) *typecast.TTSRequest {
	req := &typecast.TTSRequest{
		Text:    text,
		VoiceID: s.cfg.VoiceID,
		Model:   typecast.TTSModel(s.cfg.Model),
	}

	if resolvedLang != "auto" {
		req.Language = typecast.Language(resolvedLang)
	}

	if s.cfg.EmotionPreset != "" {
		req.Prompt = typecast.PresetPrompt{
			EmotionPreset:    typecast.EmotionPreset(s.cfg.EmotionPreset),
			EmotionIntensity: s.cfg.EmotionIntensity,
		}
	}

	if s.cfg.Volume != nil || s.cfg.AudioPitch != nil || s.cfg.AudioTempo != nil || s.cfg.AudioFormat != "" {
		req.Output = &typecast.Output{
			Volume:      s.cfg.Volume,
			AudioPitch:  s.cfg.AudioPitch,
			AudioTempo:  s.cfg.AudioTempo,
			AudioFormat: typecast.AudioFormat(s.cfg.AudioFormat),
		}
	}

	req.Seed = s.cfg.Seed
	return req
}

// streamAudio chunks the synthesized audio and streams it to the client,
// prorating the total duration across chunks by byte share.
func (s *Server) streamAudio(stream napv1.TextToSpeechService_StreamSynthesisServer, data []byte, durationSec float64, source string, logEntry *slog.Logger) error {
	// Send PLAYING status
	if err := s.sendStatus(stream, napv1.SynthesisStatus_SYNTHESIS_STATUS_PLAYING, nil); err != nil {
		return err
	}

	var sequence uint64

	ctx := stream.Context()
	for offset := 0; offset < len(data); offset += chunkSize {
		if err := ctx.Err(); err != nil {
			logEntry.Info("streaming interrupted", "reason", err)
			return s.sendStatus(stream, napv1.SynthesisStatus_SYNTHESIS_STATUS_INTERRUPTED, map[string]string{
				"reason": err.Error(),
			})
		}

		end := offset + chunkSize
		if end > len(data) {
			end = len(data)
		}

		n := end - offset
		sequence++

		chunk := &napv1.AudioChunk{
			Data:       data[offset:end],
			Sequence:   sequence,
			First:      sequence == 1,
			Last:       end == len(data),
			DurationMs: uint32(durationSec * 1000 * float64(n) / float64(len(data))),
			Metadata:   adapterinfo.SynthesisMetadata(s.cfg.Model, s.cfg.VoiceID),
		}

		resp := &napv1.SynthesisResponse{
			Status: napv1.SynthesisStatus_SYNTHESIS_STATUS_PLAYING,
			Chunk:  chunk,
		}

		if err := stream.Send(resp); err != nil {
			logEntry.Error("failed to send audio chunk", "error", err, "sequence", sequence)
			return err
		}

		logEntry.Debug("sent audio chunk",
			"sequence", sequence,
			"bytes", n,
			"duration_ms", chunk.DurationMs,
		)
	}

	logEntry.Info("streamed audio",
		"total_bytes", len(data),
		"chunks", sequence,
		"duration_sec", durationSec,
		"source", source,
	)

	s.metrics.RecordSynthesis(source, len(data), durationSec)

	metadata := map[string]string{
		"total_bytes":  fmt.Sprintf("%d", len(data)),
		"total_chunks": fmt.Sprintf("%d", sequence),
		"duration_sec": fmt.Sprintf("%.2f", durationSec),
		"source":       source,
	}

	return s.sendStatus(stream, napv1.SynthesisStatus_SYNTHESIS_STATUS_FINISHED, metadata)
}

// estimateDuration approximates the playback length of cached audio from its
// size. WAV assumes 16-bit mono at 44.1 kHz, MP3 assumes 320 kbps.
func estimateDuration(data []byte, format string) float64 {
	if format == "mp3" {
		return float64(len(data)) * 8 / mp3BitsPerSecond
	}
	return float64(len(data)) / wavBytesPerSecond
}

func (s *Server) sendStatus(stream napv1.TextToSpeechService_StreamSynthesisServer, status napv1.SynthesisStatus, metadata map[string]string) error {
	resp := &napv1.SynthesisResponse{
		Status:   status,
		Metadata: metadata,
	}
	return stream.Send(resp)
}

func (s *Server) sendError(stream napv1.TextToSpeechService_StreamSynthesisServer, message string) error {
	resp := &napv1.SynthesisResponse{
		Status:       napv1.SynthesisStatus_SYNTHESIS_STATUS_ERROR,
		ErrorMessage: message,
	}
	if err := stream.Send(resp); err != nil {
		return err
	}
	return fmt.Errorf("synthesis error: %s", message)
}
