package server

import (
	"context"
	"testing"

	typecast "github.com/neosapience/typecast-sdk"
)

func TestStubDeterministicOutput(t *testing.T) {
	stub := NewStubSynthesizer(nil)
	req := &typecast.TTSRequest{
		Text:    "hello",
		VoiceID: "tc_voice_1",
		Model:   typecast.ModelSSFMV30,
	}

	r1, err := stub.TextToSpeech(context.Background(), req)
	if err != nil {
		t.Fatalf("TextToSpeech: %v", err)
	}
	r2, err := stub.TextToSpeech(context.Background(), req)
	if err != nil {
		t.Fatalf("TextToSpeech: %v", err)
	}

	if len(r1.AudioData) != len("hello")*320 {
		t.Errorf("AudioData = %d bytes, want %d", len(r1.AudioData), len("hello")*320)
	}
	if len(r1.AudioData) != len(r2.AudioData) || r1.Duration != r2.Duration {
		t.Error("stub output should be deterministic")
	}
	if r1.Duration <= 0 {
		t.Errorf("Duration = %f, want > 0", r1.Duration)
	}
	if r1.Format != typecast.AudioFormatWAV {
		t.Errorf("Format = %q, want %q", r1.Format, typecast.AudioFormatWAV)
	}
}

func TestStubHonoursRequestedFormat(t *testing.T) {
	stub := NewStubSynthesizer(nil)
	req := &typecast.TTSRequest{
		Text:    "hello",
		VoiceID: "tc_voice_1",
		Model:   typecast.ModelSSFMV30,
		Output:  &typecast.Output{AudioFormat: typecast.AudioFormatMP3},
	}

	resp, err := stub.TextToSpeech(context.Background(), req)
	if err != nil {
		t.Fatalf("TextToSpeech: %v", err)
	}
	if resp.Format != typecast.AudioFormatMP3 {
		t.Errorf("Format = %q, want %q", resp.Format, typecast.AudioFormatMP3)
	}
}

func TestStubRejectsEmptyText(t *testing.T) {
	stub := NewStubSynthesizer(nil)
	_, err := stub.TextToSpeech(context.Background(), &typecast.TTSRequest{
		VoiceID: "tc_voice_1",
		Model:   typecast.ModelSSFMV30,
	})
	if err == nil {
		t.Fatal("expected error for empty text")
	}
}

func TestStubRejectsEmptyVoice(t *testing.T) {
	stub := NewStubSynthesizer(nil)
	_, err := stub.TextToSpeech(context.Background(), &typecast.TTSRequest{
		Text:  "hello",
		Model: typecast.ModelSSFMV30,
	})
	if err == nil {
		t.Fatal("expected error for empty voice_id")
	}
}
