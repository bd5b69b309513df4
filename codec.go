package typecast

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

const (
	pathTextToSpeech = "/v1/text-to-speech"
	pathVoicesV1     = "/v1/voices"
	pathVoicesV2     = "/v2/voices"

	headerAPIKey        = "X-API-KEY"
	headerAudioDuration = "X-Audio-Duration"
)

// encodeTTSRequest validates the request and serializes it. Fields the
// caller never set are absent from the output, not sent as nulls or
// defaults — the service treats an explicit default differently from an
// omitted field in some cases.
func encodeTTSRequest(req *TTSRequest) ([]byte, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	body, err := json.Marshal(req)
	if err != nil {
		return nil, newValidationError("failed to marshal request: %v", err)
	}
	return body, nil
}

func voicesV1Path(model TTSModel) string {
	if model == "" {
		return pathVoicesV1
	}
	return pathVoicesV1 + "?model=" + url.QueryEscape(string(model))
}

func voiceV1Path(voiceID string) string {
	return pathVoicesV1 + "/" + url.PathEscape(voiceID)
}

func voicesV2Path(filter *VoicesV2Filter) string {
	if filter == nil {
		return pathVoicesV2
	}
	params := url.Values{}
	if filter.Model != "" {
		params.Set("model", string(filter.Model))
	}
	if filter.Gender != "" {
		params.Set("gender", string(filter.Gender))
	}
	if filter.Age != "" {
		params.Set("age", string(filter.Age))
	}
	if filter.UseCase != "" {
		params.Set("use_cases", string(filter.UseCase))
	}
	if len(params) == 0 {
		return pathVoicesV2
	}
	return pathVoicesV2 + "?" + params.Encode()
}

func voiceV2Path(voiceID string) string {
	return pathVoicesV2 + "/" + url.PathEscape(voiceID)
}

// apiError maps a non-2xx response to its typed error. The body text
// becomes the error detail: either the "detail" field of a JSON error
// payload or, failing that, the raw body.
func apiError(status int, body []byte) *Error {
	detail := strings.TrimSpace(string(body))
	var payload errorResponse
	if err := json.Unmarshal(body, &payload); err == nil && payload.Detail != "" {
		detail = payload.Detail
	}
	kind, message := kindForStatus(status)
	return &Error{
		Kind:       kind,
		StatusCode: status,
		Message:    message,
		Detail:     detail,
	}
}

func isSuccess(status int) bool { return status >= 200 && status < 300 }

// decodeTTSResponse interprets a synthesis response: the body is the raw
// audio payload, the duration comes from the X-Audio-Duration header and
// the format from the content type (unrecognized values default to wav).
func decodeTTSResponse(status int, header http.Header, body []byte) (*TTSResponse, error) {
	if !isSuccess(status) {
		return nil, apiError(status, body)
	}
	return &TTSResponse{
		AudioData: body,
		Duration:  durationFromHeader(header),
		Format:    formatFromContentType(header.Get("Content-Type")),
	}, nil
}

func durationFromHeader(header http.Header) float64 {
	v := header.Get(headerAudioDuration)
	if v == "" {
		return 0
	}
	d, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return 0
	}
	return d
}

func formatFromContentType(contentType string) AudioFormat {
	mediaType := contentType
	if i := strings.IndexByte(mediaType, ';'); i >= 0 {
		mediaType = mediaType[:i]
	}
	switch strings.TrimSpace(mediaType) {
	case "audio/mpeg", "audio/mp3":
		return AudioFormatMP3
	default:
		return AudioFormatWAV
	}
}

func decodeVoicesV1(status int, body []byte) ([]VoiceV1, error) {
	if !isSuccess(status) {
		return nil, apiError(status, body)
	}
	var voices []VoiceV1
	if err := json.Unmarshal(body, &voices); err != nil {
		return nil, newDecodeError("voices", err)
	}
	return voices, nil
}

func decodeVoiceV1(status int, body []byte) (*VoiceV1, error) {
	if !isSuccess(status) {
		return nil, apiError(status, body)
	}
	var voice VoiceV1
	if err := json.Unmarshal(body, &voice); err != nil {
		return nil, newDecodeError("voice", err)
	}
	return &voice, nil
}

func decodeVoicesV2(status int, body []byte) ([]VoiceV2, error) {
	if !isSuccess(status) {
		return nil, apiError(status, body)
	}
	var voices []VoiceV2
	if err := json.Unmarshal(body, &voices); err != nil {
		return nil, newDecodeError("voices", err)
	}
	return voices, nil
}

func decodeVoiceV2(status int, body []byte) (*VoiceV2, error) {
	if !isSuccess(status) {
		return nil, apiError(status, body)
	}
	var voice VoiceV2
	if err := json.Unmarshal(body, &voice); err != nil {
		return nil, newDecodeError("voice", err)
	}
	return &voice, nil
}
