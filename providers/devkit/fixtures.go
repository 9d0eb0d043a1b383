package devkit

import (
	"encoding/json"
	"fmt"

	"github.com/goliatone/go-auth-client/core"
)

// SessionResponse builds a 200 response carrying an enveloped AuthData
// payload for the given session token.
func SessionResponse(token string) core.TransportResponse {
	return JSONResponse(200, map[string]any{
		"success": true,
		"data": map[string]any{
			"session": map[string]any{"token": token},
			"user":    map[string]any{"id": "usr_devkit", "email": "dev@example.com"},
		},
	})
}

// BareSessionResponse builds a 200 response with the AuthData payload at the
// top level, no envelope.
func BareSessionResponse(token string) core.TransportResponse {
	return JSONResponse(200, map[string]any{
		"session": map[string]any{"token": token},
	})
}

// HeaderTokenResponse builds a 200 response whose only token carrier is the
// given header.
func HeaderTokenResponse(header, token string) core.TransportResponse {
	resp := JSONResponse(200, map[string]any{"redirect": false})
	resp.Headers[header] = token
	return resp
}

// ErrorResponse builds an enveloped backend failure.
func ErrorResponse(status int, code, message string) core.TransportResponse {
	return JSONResponse(status, map[string]any{
		"success": false,
		"error":   map[string]any{"code": code, "message": message},
	})
}

// EmptyResponse builds a bodiless response, as sign-out returns.
func EmptyResponse(status int) core.TransportResponse {
	return core.TransportResponse{StatusCode: status, Headers: map[string]string{}}
}

// JSONResponse marshals payload into a response body. It panics on a
// payload that cannot marshal, which only happens on malformed fixtures.
func JSONResponse(status int, payload any) core.TransportResponse {
	body, err := json.Marshal(payload)
	if err != nil {
		panic(fmt.Sprintf("devkit: marshal fixture payload: %v", err))
	}
	return core.TransportResponse{
		StatusCode: status,
		Headers:    map[string]string{"Content-Type": "application/json"},
		Body:       body,
	}
}
