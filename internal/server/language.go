package server

import "strings"

// iso1To3 maps the two-letter codes the session pipeline emits
// (nupi.lang.iso1) to the three-letter codes the Typecast API expects.
var iso1To3 = map[string]string{
	"ar": "ara",
	"bg": "bul",
	"bn": "ben",
	"cs": "ces",
	"da": "dan",
	"de": "deu",
	"el": "ell",
	"en": "eng",
	"es": "spa",
	"fi": "fin",
	"fr": "fra",
	"hi": "hin",
	"hr": "hrv",
	"hu": "hun",
	"id": "ind",
	"it": "ita",
	"ja": "jpn",
	"ko": "kor",
	"ms": "msa",
	"nl": "nld",
	"no": "nor",
	"pa": "pan",
	"pl": "pol",
	"pt": "por",
	"ro": "ron",
	"ru": "rus",
	"sk": "slk",
	"sv": "swe",
	"ta": "tam",
	"th": "tha",
	"tl": "tgl",
	"tr": "tur",
	"uk": "ukr",
	"vi": "vie",
	"zh": "zho",
}

// resolveLanguage returns the effective ISO 639-3 code to pass to the API,
// based on the configured language mode and request metadata.
//
// Modes:
//   - "client": read nupi.lang.iso1 from metadata and map it to ISO 639-3;
//     fall back to "auto" when absent or unmapped.
//   - "auto":   always return "auto" (the service detects the language,
//     the request field is omitted).
//   - other:    return the configured ISO 639-3 code verbatim (ignore metadata).
func resolveLanguage(configLang string, metadata map[string]string) string {
	if configLang != "client" {
		return configLang
	}
	code := strings.ToLower(strings.TrimSpace(metadata["nupi.lang.iso1"]))
	if code == "" {
		return "auto"
	}
	if iso3, ok := iso1To3[code]; ok {
		return iso3
	}
	return "auto"
}
