package entities

import "fmt"

// PipelineStage names the upstream call that failed.
type PipelineStage string

const (
	StageTranscription PipelineStage = "transcription"
	StageGeneration    PipelineStage = "generation"
	StageSynthesis     PipelineStage = "synthesis"
)

// RequestError is a client-caused failure (missing fields, oversized audio,
// unusable audio with no text alternative). It maps to HTTP 400.
type RequestError struct {
	Reason  string
	Details string
}

func (e *RequestError) Error() string {
	if e.Details == "" {
		return e.Reason
	}
	return e.Reason + ": " + e.Details
}

// NewRequestError builds a RequestError with an optional detail message.
func NewRequestError(reason, details string) *RequestError {
	return &RequestError{Reason: reason, Details: details}
}

// UpstreamError is a failure of one external AI stage. Every UpstreamError is
// recoverable: the orchestrator absorbs it into fallback or degraded-response
// logic and it never reaches a client as an HTTP error.
type UpstreamError struct {
	Stage PipelineStage
	Err   error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Stage, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// NewUpstreamError wraps err as a failure of the given stage.
func NewUpstreamError(stage PipelineStage, err error) *UpstreamError {
	return &UpstreamError{Stage: stage, Err: err}
}

// InternalError is the orchestrator's catch-all: an unexpected failure that
// escaped the per-stage handling. It maps to HTTP 500 but still carries a
// best-effort fallback result so the client keeps a playable scene.
type InternalError struct {
	Err      error
	Fallback *VoiceActionResult
}

func (e *InternalError) Error() string {
	return fmt.Sprintf("unexpected internal error: %v", e.Err)
}

func (e *InternalError) Unwrap() error {
	return e.Err
}
