package server

import (
	"context"

	typecast "github.com/neosapience/typecast-sdk"
)

// Synthesizer abstracts the Typecast synthesis API so that the server can be
// tested with a mock implementation. *typecast.Client satisfies it.
type Synthesizer interface {
	TextToSpeech(ctx context.Context, req *typecast.TTSRequest) (*typecast.TTSResponse, error)
}
