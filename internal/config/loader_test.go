package config

import "testing"

func fakeEnv(m map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := m[key]
		return v, ok
	}
}

func TestLoaderFromJSON(t *testing.T) {
	env := fakeEnv(map[string]string{
		"NUPI_ADAPTER_CONFIG": `{
			"api_key": "sk-test",
			"api_host": "https://api.typecast.dev",
			"voice_id": "tc_voice_1",
			"model": "ssfm-v21",
			"cache_dir": "/tmp/cache",
			"cache_max_size_mb": 50
		}`,
	})

	cfg, err := (Loader{Lookup: env}).Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.APIKey != "sk-test" {
		t.Errorf("APIKey = %q, want %q", cfg.APIKey, "sk-test")
	}
	if cfg.APIHost != "https://api.typecast.dev" {
		t.Errorf("APIHost = %q, want %q", cfg.APIHost, "https://api.typecast.dev")
	}
	if cfg.VoiceID != "tc_voice_1" {
		t.Errorf("VoiceID = %q, want %q", cfg.VoiceID, "tc_voice_1")
	}
	if cfg.Model != "ssfm-v21" {
		t.Errorf("Model = %q, want %q", cfg.Model, "ssfm-v21")
	}
	if cfg.CacheDir != "/tmp/cache" {
		t.Errorf("CacheDir = %q, want %q", cfg.CacheDir, "/tmp/cache")
	}
	if cfg.CacheMaxSizeMB != 50 {
		t.Errorf("CacheMaxSizeMB = %d, want 50", cfg.CacheMaxSizeMB)
	}
}

func TestLoaderDefaults(t *testing.T) {
	env := fakeEnv(map[string]string{
		"NUPI_ADAPTER_CONFIG": `{"api_key": "sk-test"}`,
	})

	cfg, err := (Loader{Lookup: env}).Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.VoiceID != DefaultVoiceID {
		t.Errorf("VoiceID = %q, want default %q", cfg.VoiceID, DefaultVoiceID)
	}
	if cfg.Model != DefaultModel {
		t.Errorf("Model = %q, want default %q", cfg.Model, DefaultModel)
	}
	if cfg.LogLevel != DefaultLogLevel {
		t.Errorf("LogLevel = %q, want default %q", cfg.LogLevel, DefaultLogLevel)
	}
	if cfg.ListenAddr != DefaultListenAddr {
		t.Errorf("ListenAddr = %q, want default %q", cfg.ListenAddr, DefaultListenAddr)
	}
	if cfg.CacheMaxSizeMB != DefaultCacheMaxSizeMB {
		t.Errorf("CacheMaxSizeMB = %d, want default %d", cfg.CacheMaxSizeMB, DefaultCacheMaxSizeMB)
	}
	if cfg.Language != DefaultLanguage {
		t.Errorf("Language = %q, want default %q", cfg.Language, DefaultLanguage)
	}
	if cfg.APIHost != "" {
		t.Errorf("APIHost = %q, want empty (SDK default applies)", cfg.APIHost)
	}
}

func TestLoaderLanguageFromJSON(t *testing.T) {
	env := fakeEnv(map[string]string{
		"NUPI_ADAPTER_CONFIG": `{"api_key": "sk-test", "language": "pol"}`,
	})

	cfg, err := (Loader{Lookup: env}).Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Language != "pol" {
		t.Errorf("Language = %q, want %q", cfg.Language, "pol")
	}
}

func TestLoaderLanguageAutoFromJSON(t *testing.T) {
	env := fakeEnv(map[string]string{
		"NUPI_ADAPTER_CONFIG": `{"api_key": "sk-test", "language": "auto"}`,
	})

	cfg, err := (Loader{Lookup: env}).Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Language != "auto" {
		t.Errorf("Language = %q, want %q", cfg.Language, "auto")
	}
}

func TestLoaderLanguageWhitespaceFromJSON(t *testing.T) {
	env := fakeEnv(map[string]string{
		"NUPI_ADAPTER_CONFIG": `{"api_key": "sk-test", "language": "  client  "}`,
	})

	cfg, err := (Loader{Lookup: env}).Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Language != "client" {
		t.Errorf("Language = %q, want %q (whitespace should be trimmed)", cfg.Language, "client")
	}
}

func TestLoaderLanguageCaseInsensitive(t *testing.T) {
	env := fakeEnv(map[string]string{
		"NUPI_ADAPTER_CONFIG": `{"api_key": "sk-test", "language": "CLIENT"}`,
	})

	cfg, err := (Loader{Lookup: env}).Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Language != "client" {
		t.Errorf("Language = %q, want %q (should be lowercased)", cfg.Language, "client")
	}
}

func TestLoaderSynthesisSettings(t *testing.T) {
	env := fakeEnv(map[string]string{
		"NUPI_ADAPTER_CONFIG": `{
			"api_key": "sk-test",
			"emotion_preset": "happy",
			"emotion_intensity": 1.5,
			"volume": 80,
			"audio_pitch": -3,
			"audio_tempo": 1.2,
			"audio_format": "MP3",
			"seed": 42
		}`,
	})

	cfg, err := (Loader{Lookup: env}).Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.EmotionPreset != "happy" {
		t.Errorf("EmotionPreset = %q, want %q", cfg.EmotionPreset, "happy")
	}
	if cfg.EmotionIntensity == nil || *cfg.EmotionIntensity != 1.5 {
		t.Errorf("EmotionIntensity = %v, want 1.5", cfg.EmotionIntensity)
	}
	if cfg.Volume == nil || *cfg.Volume != 80 {
		t.Errorf("Volume = %v, want 80", cfg.Volume)
	}
	if cfg.AudioPitch == nil || *cfg.AudioPitch != -3 {
		t.Errorf("AudioPitch = %v, want -3", cfg.AudioPitch)
	}
	if cfg.AudioTempo == nil || *cfg.AudioTempo != 1.2 {
		t.Errorf("AudioTempo = %v, want 1.2", cfg.AudioTempo)
	}
	if cfg.AudioFormat != "mp3" {
		t.Errorf("AudioFormat = %q, want %q (lowercased)", cfg.AudioFormat, "mp3")
	}
	if cfg.Seed == nil || *cfg.Seed != 42 {
		t.Errorf("Seed = %v, want 42", cfg.Seed)
	}
}

func TestLoaderEnvOverrides(t *testing.T) {
	env := fakeEnv(map[string]string{
		"NUPI_ADAPTER_CONFIG":      `{"api_key": "sk-test"}`,
		"NUPI_ADAPTER_LISTEN_ADDR": "0.0.0.0:9090",
		"NUPI_LOG_LEVEL":           "debug",
	})

	cfg, err := (Loader{Lookup: env}).Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.ListenAddr != "0.0.0.0:9090" {
		t.Errorf("ListenAddr = %q, want %q", cfg.ListenAddr, "0.0.0.0:9090")
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "debug")
	}
}

func TestLoaderMissingAPIKey(t *testing.T) {
	env := fakeEnv(map[string]string{
		"NUPI_ADAPTER_CONFIG": `{"voice_id": "tc_voice_1"}`,
	})

	_, err := (Loader{Lookup: env}).Load()
	if err == nil {
		t.Fatal("expected error for missing api_key")
	}
}

func TestLoaderInvalidJSON(t *testing.T) {
	env := fakeEnv(map[string]string{
		"NUPI_ADAPTER_CONFIG": `{invalid}`,
	})

	_, err := (Loader{Lookup: env}).Load()
	if err == nil {
		t.Fatal("expected error for invalid JSON")
	}
}

func TestLoaderOutOfRangeSetting(t *testing.T) {
	env := fakeEnv(map[string]string{
		"NUPI_ADAPTER_CONFIG": `{"api_key": "sk-test", "volume": 500}`,
	})

	_, err := (Loader{Lookup: env}).Load()
	if err == nil {
		t.Fatal("expected error for out-of-range volume")
	}
}

func TestLoaderCacheDisabledExplicitly(t *testing.T) {
	env := fakeEnv(map[string]string{
		"NUPI_ADAPTER_CONFIG": `{
			"api_key": "sk-test",
			"cache_max_size_mb": 0
		}`,
	})

	cfg, err := (Loader{Lookup: env}).Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.CacheMaxSizeMB != 0 {
		t.Errorf("CacheMaxSizeMB = %d, want 0 (disabled)", cfg.CacheMaxSizeMB)
	}
}

func TestLoaderStubSynthesizer(t *testing.T) {
	env := fakeEnv(map[string]string{
		"NUPI_ADAPTER_CONFIG": `{"use_stub_synthesizer": true}`,
	})

	cfg, err := (Loader{Lookup: env}).Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if !cfg.UseStubSynthesizer {
		t.Error("UseStubSynthesizer should be true")
	}
	if cfg.APIKey != "" {
		t.Errorf("APIKey = %q, want empty", cfg.APIKey)
	}
}

func TestLoaderStubSynthesizerEnvOverride(t *testing.T) {
	env := fakeEnv(map[string]string{
		"NUPI_ADAPTER_USE_STUB_SYNTHESIZER": "true",
	})

	cfg, err := (Loader{Lookup: env}).Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if !cfg.UseStubSynthesizer {
		t.Error("UseStubSynthesizer should be true from env override")
	}
}

func TestLoaderStubSynthesizerEnvFalse(t *testing.T) {
	env := fakeEnv(map[string]string{
		"NUPI_ADAPTER_CONFIG":               `{"api_key": "sk-test", "use_stub_synthesizer": true}`,
		"NUPI_ADAPTER_USE_STUB_SYNTHESIZER": "false",
	})

	cfg, err := (Loader{Lookup: env}).Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.UseStubSynthesizer {
		t.Error("UseStubSynthesizer should be false when env override is 'false'")
	}
}

func TestLoaderStubSynthesizerEnvInvalid(t *testing.T) {
	env := fakeEnv(map[string]string{
		"NUPI_ADAPTER_USE_STUB_SYNTHESIZER": "banana",
	})

	_, err := (Loader{Lookup: env}).Load()
	if err == nil {
		t.Fatal("expected error for invalid bool value")
	}
}

func TestLoaderCacheDirFromDataDir(t *testing.T) {
	env := fakeEnv(map[string]string{
		"NUPI_ADAPTER_CONFIG":   `{"api_key": "sk-test"}`,
		"NUPI_ADAPTER_DATA_DIR": "/var/nupi/data",
	})

	cfg, err := (Loader{Lookup: env}).Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.CacheDir != "/var/nupi/data/cache" {
		t.Errorf("CacheDir = %q, want %q", cfg.CacheDir, "/var/nupi/data/cache")
	}
}
