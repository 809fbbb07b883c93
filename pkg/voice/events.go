// Package voice defines the wire payloads the speech/voice-agent provider
// delivers to the session webhook. The provider drives the call lifecycle
// with named events; the backend only consumes them.
package voice

// Event type names as sent by the provider.
const (
	EventCallStart   = "call-start"
	EventCallEnd     = "call-end"
	EventMessage     = "message"
	EventSpeechStart = "speech-start"
	EventSpeechEnd   = "speech-end"
	EventError       = "error"
)

// Transcript finality markers. Only final segments become transcript turns.
const (
	TranscriptPartial = "partial"
	TranscriptFinal   = "final"
)

// Speaker roles on transcript segments.
const (
	RoleAssistant = "assistant"
	RoleUser      = "user"
)

// Event is a single provider callback payload. Message-type events carry
// a transcript segment; error events carry a message.
type Event struct {
	Type           string `json:"type" binding:"required"`
	Role           string `json:"role,omitempty"`
	TranscriptType string `json:"transcriptType,omitempty"`
	Transcript     string `json:"transcript,omitempty"`
	ErrorMessage   string `json:"errorMessage,omitempty"`
}

// IsFinalTranscript reports whether the event is a finalized
// speech-to-text segment that should be appended to the transcript.
func (e Event) IsFinalTranscript() bool {
	return e.Type == EventMessage && e.TranscriptType == TranscriptFinal && e.Transcript != ""
}
