package core

import (
	"bytes"
	"encoding/json"
)

// Envelope is the generic `{success, data, error}` wrapper the backend uses
// for most responses. All three fields are optional on the wire; an envelope
// with none of them present is "empty" and treated as a miss so the bare
// payload shape can be tried instead.
type Envelope[T any] struct {
	Success *bool     `json:"success,omitempty"`
	Data    *T        `json:"data,omitempty"`
	Error   *APIError `json:"error,omitempty"`
}

func (e Envelope[T]) Empty() bool {
	return e.Success == nil && e.Data == nil && e.Error == nil
}

// Succeeded derives the success flag: an error always loses, a data payload
// without an explicit flag wins, otherwise the transmitted flag decides.
func (e Envelope[T]) Succeeded() bool {
	if e.Error != nil {
		return false
	}
	if e.Data != nil && e.Success == nil {
		return true
	}
	if e.Success != nil {
		return *e.Success
	}
	return false
}

// DecodeEnvelope normalizes one backend response into a typed payload. The
// backend emits at least three shapes for the same logical operation
// (wrapped-with-success, wrapped-without-success, bare payload), so the
// decoder tries them in priority order and prefers an explicit error over any
// partial data. A nil payload with a nil error means the response succeeded
// without a body; callers with optional payloads must tolerate it.
//
// Non-2xx responses never decode to a payload: they resolve to the backend's
// structured error when one can be parsed, or to an invalid-response failure
// carrying the raw status and a body excerpt.
func DecodeEnvelope[T any](status int, body []byte) (*T, error) {
	trimmed := bytes.TrimSpace(body)
	if status < 200 || status > 299 {
		return nil, decodeErrorResponse(status, trimmed)
	}
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}

	var envelope Envelope[T]
	envelopeErr := json.Unmarshal(trimmed, &envelope)
	if envelopeErr == nil && !envelope.Empty() {
		if envelope.Error != nil {
			return nil, apiFailureError(status, *envelope.Error)
		}
		return envelope.Data, nil
	}

	var payload T
	if bareErr := json.Unmarshal(trimmed, &payload); bareErr != nil {
		if envelopeErr != nil {
			return nil, decodeFailureError(status, trimmed, envelopeErr)
		}
		return nil, decodeFailureError(status, trimmed, bareErr)
	}
	return &payload, nil
}

func decodeErrorResponse(status int, body []byte) error {
	var wrapped struct {
		Error *APIError `json:"error"`
	}
	if err := json.Unmarshal(body, &wrapped); err == nil && wrapped.Error != nil && !wrapped.Error.IsZero() {
		return apiFailureError(status, *wrapped.Error)
	}

	var direct APIError
	if err := json.Unmarshal(body, &direct); err == nil && !direct.IsZero() {
		return apiFailureError(status, direct)
	}

	return invalidResponseError(status, body, "core: unexpected error response")
}
