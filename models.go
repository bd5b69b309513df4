package typecast

import "encoding/json"

// TTSModel identifies the synthesis model version.
type TTSModel string

const (
	// ModelSSFMV30 is the latest model with improved prosody and additional emotion presets.
	ModelSSFMV30 TTSModel = "ssfm-v30"
	// ModelSSFMV21 is the stable production model.
	ModelSSFMV21 TTSModel = "ssfm-v21"
)

// EmotionPreset is a named emotional tone from the fixed service vocabulary.
type EmotionPreset string

const (
	EmotionNormal   EmotionPreset = "normal"
	EmotionHappy    EmotionPreset = "happy"
	EmotionSad      EmotionPreset = "sad"
	EmotionAngry    EmotionPreset = "angry"
	EmotionWhisper  EmotionPreset = "whisper"  // ssfm-v30 only
	EmotionToneUp   EmotionPreset = "toneup"   // ssfm-v30 only
	EmotionToneDown EmotionPreset = "tonedown" // ssfm-v30 only
)

var emotionPresets = map[EmotionPreset]bool{
	EmotionNormal:   true,
	EmotionHappy:    true,
	EmotionSad:      true,
	EmotionAngry:    true,
	EmotionWhisper:  true,
	EmotionToneUp:   true,
	EmotionToneDown: true,
}

// AudioFormat is the synthesized audio container format.
type AudioFormat string

const (
	AudioFormatWAV AudioFormat = "wav"
	AudioFormatMP3 AudioFormat = "mp3"
)

// Gender classifies a voice.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// Age classifies a voice by age group.
type Age string

const (
	AgeChild      Age = "child"
	AgeTeenager   Age = "teenager"
	AgeYoungAdult Age = "young_adult"
	AgeMiddleAge  Age = "middle_age"
	AgeElder      Age = "elder"
)

// UseCase categorizes what a voice is suited for.
type UseCase string

const (
	UseCaseAnnouncer      UseCase = "Announcer"
	UseCaseAnime          UseCase = "Anime"
	UseCaseAudiobook      UseCase = "Audiobook"
	UseCaseConversational UseCase = "Conversational"
	UseCaseDocumentary    UseCase = "Documentary"
	UseCaseELearning      UseCase = "E-learning"
	UseCaseRapper         UseCase = "Rapper"
	UseCaseGame           UseCase = "Game"
	UseCaseTikTokReels    UseCase = "Tiktok/Reels"
	UseCaseNews           UseCase = "News"
	UseCasePodcast        UseCase = "Podcast"
	UseCaseVoicemail      UseCase = "Voicemail"
	UseCaseAds            UseCase = "Ads"
)

// Language is an ISO 639-3 language code. The constants below cover the
// codes the service documents, but any other string is passed through
// unvalidated — the service owns the authoritative list.
type Language string

const (
	LangEnglish    Language = "eng"
	LangKorean     Language = "kor"
	LangSpanish    Language = "spa"
	LangGerman     Language = "deu"
	LangFrench     Language = "fra"
	LangItalian    Language = "ita"
	LangPolish     Language = "pol"
	LangDutch      Language = "nld"
	LangRussian    Language = "rus"
	LangJapanese   Language = "jpn"
	LangGreek      Language = "ell"
	LangTamil      Language = "tam"
	LangTagalog    Language = "tgl"
	LangFinnish    Language = "fin"
	LangChinese    Language = "zho"
	LangSlovak     Language = "slk"
	LangArabic     Language = "ara"
	LangCroatian   Language = "hrv"
	LangUkrainian  Language = "ukr"
	LangIndonesian Language = "ind"
	LangDanish     Language = "dan"
	LangSwedish    Language = "swe"
	LangMalay      Language = "msa"
	LangCzech      Language = "ces"
	LangPortuguese Language = "por"
	LangBulgarian  Language = "bul"
	LangRomanian   Language = "ron"
	LangBengali    Language = "ben"
	LangHindi      Language = "hin"
	LangHungarian  Language = "hun"
	LangMinNan     Language = "nan"
	LangNorwegian  Language = "nor"
	LangPunjabi    Language = "pan"
	LangThai       Language = "tha"
	LangTurkish    Language = "tur"
	LangVietnamese Language = "vie"
	LangCantonese  Language = "yue"
)

// Int returns a pointer to v, for optional request fields.
func Int(v int) *int { return &v }

// Float64 returns a pointer to v, for optional request fields.
func Float64(v float64) *float64 { return &v }

// Prompt controls the emotional style of synthesized speech. The two
// variants are PresetPrompt and SmartPrompt; the wire representation
// carries an emotion_type discriminant identifying the active one.
type Prompt interface {
	promptVariant() string
	validate() error
}

// PresetPrompt applies a fixed emotion preset with an optional intensity.
type PresetPrompt struct {
	// EmotionPreset is the emotion to apply.
	EmotionPreset EmotionPreset
	// EmotionIntensity controls the strength of the emotion (0.0 to 2.0, default 1.0).
	EmotionIntensity *float64
}

func (PresetPrompt) promptVariant() string { return "preset" }

func (p PresetPrompt) validate() error {
	if p.EmotionPreset != "" && !emotionPresets[p.EmotionPreset] {
		return newValidationError("unknown emotion_preset %q", p.EmotionPreset)
	}
	if p.EmotionIntensity != nil && (*p.EmotionIntensity < 0.0 || *p.EmotionIntensity > 2.0) {
		return newValidationError("emotion_intensity must be between 0.0 and 2.0, got %g", *p.EmotionIntensity)
	}
	return nil
}

// MarshalJSON writes the preset discriminant plus only the fields that were set.
func (p PresetPrompt) MarshalJSON() ([]byte, error) {
	type wire struct {
		EmotionType      string        `json:"emotion_type"`
		EmotionPreset    EmotionPreset `json:"emotion_preset,omitempty"`
		EmotionIntensity *float64      `json:"emotion_intensity,omitempty"`
	}
	return json.Marshal(wire{
		EmotionType:      p.promptVariant(),
		EmotionPreset:    p.EmotionPreset,
		EmotionIntensity: p.EmotionIntensity,
	})
}

// SmartPrompt lets the service infer emotion from the surrounding text.
type SmartPrompt struct {
	// PreviousText is the text preceding the synthesized text.
	PreviousText string
	// NextText is the text following the synthesized text.
	NextText string
}

func (SmartPrompt) promptVariant() string { return "smart" }

func (SmartPrompt) validate() error { return nil }

// MarshalJSON writes the smart discriminant plus only the fields that were set.
func (p SmartPrompt) MarshalJSON() ([]byte, error) {
	type wire struct {
		EmotionType  string `json:"emotion_type"`
		PreviousText string `json:"previous_text,omitempty"`
		NextText     string `json:"next_text,omitempty"`
	}
	return json.Marshal(wire{
		EmotionType:  p.promptVariant(),
		PreviousText: p.PreviousText,
		NextText:     p.NextText,
	})
}

// Output holds optional audio output settings. Unset fields are omitted
// from the request so the service applies its own defaults.
type Output struct {
	// Volume is the volume level (0 to 200, default 100).
	Volume *int `json:"volume,omitempty"`
	// AudioPitch shifts pitch in semitones (-12 to +12, default 0).
	AudioPitch *int `json:"audio_pitch,omitempty"`
	// AudioTempo is the speech speed multiplier (0.5 to 2.0, default 1.0).
	AudioTempo *float64 `json:"audio_tempo,omitempty"`
	// AudioFormat selects wav or mp3 output (default wav).
	AudioFormat AudioFormat `json:"audio_format,omitempty"`
}

func (o *Output) validate() error {
	if o.Volume != nil && (*o.Volume < 0 || *o.Volume > 200) {
		return newValidationError("volume must be between 0 and 200, got %d", *o.Volume)
	}
	if o.AudioPitch != nil && (*o.AudioPitch < -12 || *o.AudioPitch > 12) {
		return newValidationError("audio_pitch must be between -12 and 12, got %d", *o.AudioPitch)
	}
	if o.AudioTempo != nil && (*o.AudioTempo < 0.5 || *o.AudioTempo > 2.0) {
		return newValidationError("audio_tempo must be between 0.5 and 2.0, got %g", *o.AudioTempo)
	}
	if o.AudioFormat != "" && o.AudioFormat != AudioFormatWAV && o.AudioFormat != AudioFormatMP3 {
		return newValidationError("audio_format must be wav or mp3, got %q", o.AudioFormat)
	}
	return nil
}

// TTSRequest describes one synthesis request.
type TTSRequest struct {
	// Text is the text to synthesize (required).
	Text string `json:"text"`
	// VoiceID identifies the voice (required, conventionally prefixed tc_ or uc_).
	VoiceID string `json:"voice_id"`
	// Model is the synthesis model version (required).
	Model TTSModel `json:"model"`
	// Language is the ISO 639-3 language code. Unset means the service auto-detects.
	Language Language `json:"language,omitempty"`
	// Prompt controls emotional style (optional).
	Prompt Prompt `json:"prompt,omitempty"`
	// Output holds audio output settings (optional).
	Output *Output `json:"output,omitempty"`
	// Seed makes synthesis reproducible (optional).
	Seed *int `json:"seed,omitempty"`
}

// Validate checks field constraints before any network call.
func (r *TTSRequest) Validate() error {
	if r.Text == "" {
		return newValidationError("text is required")
	}
	if r.VoiceID == "" {
		return newValidationError("voice_id is required")
	}
	if r.Model == "" {
		return newValidationError("model is required")
	}
	if r.Prompt != nil {
		if err := r.Prompt.validate(); err != nil {
			return err
		}
	}
	if r.Output != nil {
		if err := r.Output.validate(); err != nil {
			return err
		}
	}
	return nil
}

// TTSResponse is the result of a synthesis request.
type TTSResponse struct {
	// AudioData is the raw synthesized audio.
	AudioData []byte
	// Duration is the audio length in seconds, taken from the response headers.
	Duration float64
	// Format is the audio format, derived from the response content type.
	Format AudioFormat
}

// VoiceV1 describes a voice as returned by the v1 API.
type VoiceV1 struct {
	VoiceID   string   `json:"voice_id"`
	VoiceName string   `json:"voice_name"`
	Model     TTSModel `json:"model"`
	Emotions  []string `json:"emotions"`
}

// ModelInfo lists the emotions a voice supports on one model version.
type ModelInfo struct {
	Version  TTSModel `json:"version"`
	Emotions []string `json:"emotions"`
}

// VoiceV2 describes a voice as returned by the v2 API.
type VoiceV2 struct {
	VoiceID   string      `json:"voice_id"`
	VoiceName string      `json:"voice_name"`
	Models    []ModelInfo `json:"models"`
	Gender    *Gender     `json:"gender,omitempty"`
	Age       *Age        `json:"age,omitempty"`
	UseCases  []string    `json:"use_cases,omitempty"`
}

// VoicesV2Filter narrows a v2 voice listing. All fields are optional and
// combine with AND semantics on the server side.
type VoicesV2Filter struct {
	Model   TTSModel
	Gender  Gender
	Age     Age
	UseCase UseCase
}

// errorResponse is the JSON error body shape used by the service.
type errorResponse struct {
	Detail string `json:"detail"`
}
