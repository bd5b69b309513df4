package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Loader loads configuration from environment variables. Tests can override
// Lookup to inject deterministic maps.
type Loader struct {
	Lookup func(string) (string, bool)
}

// Load retrieves the adapter configuration from environment variables and validates it.
func (l Loader) Load() (Config, error) {
	if l.Lookup == nil {
		l.Lookup = os.LookupEnv
	}

	cfg := Config{
		ListenAddr:     DefaultListenAddr,
		CacheMaxSizeMB: DefaultCacheMaxSizeMB,
	}

	if raw, ok := l.Lookup("NUPI_ADAPTER_CONFIG"); ok && strings.TrimSpace(raw) != "" {
		if err := applyJSON(raw, &cfg); err != nil {
			return Config{}, err
		}
	}

	overrideString(l.Lookup, "NUPI_ADAPTER_LISTEN_ADDR", &cfg.ListenAddr)
	overrideString(l.Lookup, "NUPI_LOG_LEVEL", &cfg.LogLevel)

	if raw, ok := l.Lookup("NUPI_ADAPTER_USE_STUB_SYNTHESIZER"); ok && strings.TrimSpace(raw) != "" {
		v, err := strconv.ParseBool(strings.TrimSpace(raw))
		if err != nil {
			return Config{}, fmt.Errorf("config: decode NUPI_ADAPTER_USE_STUB_SYNTHESIZER: %w", err)
		}
		cfg.UseStubSynthesizer = v
	}

	// Default cache directory
	if cfg.CacheDir == "" {
		if dataDir, ok := l.Lookup("NUPI_ADAPTER_DATA_DIR"); ok && dataDir != "" {
			cfg.CacheDir = filepath.Join(dataDir, "cache")
		}
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyJSON(raw string, cfg *Config) error {
	type jsonConfig struct {
		ListenAddr         string   `json:"listen_addr"`
		APIKey             string   `json:"api_key"`
		APIHost            string   `json:"api_host"`
		VoiceID            string   `json:"voice_id"`
		Model              string   `json:"model"`
		Language           string   `json:"language"`
		LogLevel           string   `json:"log_level"`
		EmotionPreset      string   `json:"emotion_preset"`
		EmotionIntensity   *float64 `json:"emotion_intensity"`
		Volume             *int     `json:"volume"`
		AudioPitch         *int     `json:"audio_pitch"`
		AudioTempo         *float64 `json:"audio_tempo"`
		AudioFormat        string   `json:"audio_format"`
		Seed               *int     `json:"seed"`
		CacheDir           string   `json:"cache_dir"`
		CacheMaxSizeMB     *int     `json:"cache_max_size_mb"`
		UseStubSynthesizer *bool    `json:"use_stub_synthesizer"`
	}
	var payload jsonConfig
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return fmt.Errorf("config: decode NUPI_ADAPTER_CONFIG: %w", err)
	}
	if payload.ListenAddr != "" {
		cfg.ListenAddr = payload.ListenAddr
	}
	if payload.APIKey != "" {
		cfg.APIKey = payload.APIKey
	}
	if payload.APIHost != "" {
		cfg.APIHost = payload.APIHost
	}
	if payload.VoiceID != "" {
		cfg.VoiceID = payload.VoiceID
	}
	if payload.Model != "" {
		cfg.Model = payload.Model
	}
	if payload.Language != "" {
		cfg.Language = strings.ToLower(strings.TrimSpace(payload.Language))
	}
	if payload.LogLevel != "" {
		cfg.LogLevel = payload.LogLevel
	}
	if payload.EmotionPreset != "" {
		cfg.EmotionPreset = payload.EmotionPreset
	}
	if payload.EmotionIntensity != nil {
		assignFloat64Ptr(&cfg.EmotionIntensity, *payload.EmotionIntensity)
	}
	if payload.Volume != nil {
		assignIntPtr(&cfg.Volume, *payload.Volume)
	}
	if payload.AudioPitch != nil {
		assignIntPtr(&cfg.AudioPitch, *payload.AudioPitch)
	}
	if payload.AudioTempo != nil {
		assignFloat64Ptr(&cfg.AudioTempo, *payload.AudioTempo)
	}
	if payload.AudioFormat != "" {
		cfg.AudioFormat = strings.ToLower(strings.TrimSpace(payload.AudioFormat))
	}
	if payload.Seed != nil {
		assignIntPtr(&cfg.Seed, *payload.Seed)
	}
	if payload.CacheDir != "" {
		cfg.CacheDir = payload.CacheDir
	}
	if payload.CacheMaxSizeMB != nil {
		cfg.CacheMaxSizeMB = *payload.CacheMaxSizeMB
	}
	if payload.UseStubSynthesizer != nil {
		cfg.UseStubSynthesizer = *payload.UseStubSynthesizer
	}
	return nil
}

func overrideString(lookup func(string) (string, bool), key string, target *string) {
	if lookup == nil || target == nil {
		return
	}
	if value, ok := lookup(key); ok && strings.TrimSpace(value) != "" {
		*target = strings.TrimSpace(value)
	}
}

func assignFloat64Ptr(target **float64, value float64) {
	v := value
	*target = &v
}

func assignIntPtr(target **int, value int) {
	v := value
	*target = &v
}
