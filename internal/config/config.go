package config

import "fmt"

const (
	// DefaultListenAddr is used when the adapter runner does not inject an explicit address.
	DefaultListenAddr = "127.0.0.1:50051"
	DefaultVoiceID    = "tc_62a8975e695ad26f7fb514d1" // Olivia
	DefaultModel      = "ssfm-v30"
	DefaultLogLevel   = "info"

	// DefaultLanguage selects the language mode: "client" reads the language
	// from request metadata, "auto" lets the service detect it, anything else
	// is treated as a fixed ISO 639-3 code.
	DefaultLanguage = "client"

	// DefaultCacheMaxSizeMB caps the synthesized-audio disk cache. Zero disables caching.
	DefaultCacheMaxSizeMB = 100
)

// Config captures bootstrap configuration extracted from environment variables
// or injected JSON payload (`NUPI_ADAPTER_CONFIG`).
type Config struct {
	ListenAddr string
	APIKey     string
	APIHost    string
	VoiceID    string
	Model      string
	Language   string
	LogLevel   string

	// Synthesis settings (optional, forwarded to the Typecast API as-is)
	EmotionPreset    string
	EmotionIntensity *float64
	Volume           *int
	AudioPitch       *int
	AudioTempo       *float64
	AudioFormat      string
	Seed             *int

	CacheDir       string
	CacheMaxSizeMB int

	// UseStubSynthesizer replaces the live API with deterministic output for CI.
	UseStubSynthesizer bool
}

// Validate applies defaults and raises an error when required fields are
// missing or numeric settings are outside the ranges the API accepts.
func (c *Config) Validate() error {
	if c.ListenAddr == "" {
		return fmt.Errorf("config: listen address is required")
	}
	if c.APIKey == "" && !c.UseStubSynthesizer {
		return fmt.Errorf("config: api_key is required (set in NUPI_ADAPTER_CONFIG)")
	}
	if c.VoiceID == "" {
		c.VoiceID = DefaultVoiceID
	}
	if c.Model == "" {
		c.Model = DefaultModel
	}
	if c.Language == "" {
		c.Language = DefaultLanguage
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}

	if c.EmotionIntensity != nil {
		if *c.EmotionIntensity < 0.0 || *c.EmotionIntensity > 2.0 {
			return fmt.Errorf("config: emotion_intensity must be between 0.0 and 2.0, got %f", *c.EmotionIntensity)
		}
	}
	if c.Volume != nil {
		if *c.Volume < 0 || *c.Volume > 200 {
			return fmt.Errorf("config: volume must be between 0 and 200, got %d", *c.Volume)
		}
	}
	if c.AudioPitch != nil {
		if *c.AudioPitch < -12 || *c.AudioPitch > 12 {
			return fmt.Errorf("config: audio_pitch must be between -12 and 12, got %d", *c.AudioPitch)
		}
	}
	if c.AudioTempo != nil {
		if *c.AudioTempo < 0.5 || *c.AudioTempo > 2.0 {
			return fmt.Errorf("config: audio_tempo must be between 0.5 and 2.0, got %f", *c.AudioTempo)
		}
	}
	if c.AudioFormat != "" && c.AudioFormat != "wav" && c.AudioFormat != "mp3" {
		return fmt.Errorf("config: audio_format must be wav or mp3, got %q", c.AudioFormat)
	}
	if c.CacheMaxSizeMB < 0 {
		return fmt.Errorf("config: cache_max_size_mb must not be negative, got %d", c.CacheMaxSizeMB)
	}

	return nil
}
