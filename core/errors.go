package core

import (
	"net/http"
	"strings"
	"unicode/utf8"

	goerrors "github.com/goliatone/go-errors"
)

const (
	ErrorInvalidEndpoint = "AUTH_INVALID_ENDPOINT"
	ErrorTransportFailed = "AUTH_TRANSPORT_FAILED"
	ErrorInvalidResponse = "AUTH_INVALID_RESPONSE"
	ErrorDecodeFailed    = "AUTH_DECODE_FAILED"
	ErrorAPIFailure      = "AUTH_API_ERROR"
	ErrorMissingToken    = "AUTH_MISSING_TOKEN"
	ErrorProviderDenied  = "AUTH_PROVIDER_DENIED"
	ErrorStorageFailed   = "AUTH_STORAGE_FAILED"
	ErrorBadInput        = "AUTH_BAD_INPUT"
	ErrorInternal        = "AUTH_INTERNAL_ERROR"
)

const (
	metadataKeyAPICode    = "api_code"
	metadataKeyAPIMessage = "api_message"
	metadataKeyStatusCode = "status_code"
	metadataKeyBody       = "body_excerpt"
)

const maxBodyExcerptBytes = 512

type ErrorMapper func(err error) *goerrors.Error

// APIErrorFromError recovers the structured backend error carried by an
// AUTH_API_ERROR failure so callers can branch on the backend code.
func APIErrorFromError(err error) (APIError, bool) {
	var rich *goerrors.Error
	if !goerrors.As(err, &rich) {
		return APIError{}, false
	}
	if rich.TextCode != ErrorAPIFailure {
		return APIError{}, false
	}
	apiErr := APIError{}
	if rich.Metadata != nil {
		if code, ok := rich.Metadata[metadataKeyAPICode].(string); ok {
			apiErr.Code = code
		}
		if message, ok := rich.Metadata[metadataKeyAPIMessage].(string); ok {
			apiErr.Message = message
		}
	}
	if apiErr.IsZero() {
		apiErr.Message = rich.Message
	}
	return apiErr, true
}

// IsAPIFailure reports whether the backend explicitly rejected the request,
// as opposed to the response being undecodable.
func IsAPIFailure(err error) bool {
	_, ok := APIErrorFromError(err)
	return ok
}

func IsMissingToken(err error) bool {
	return hasTextCode(err, ErrorMissingToken)
}

func IsDecodeFailure(err error) bool {
	return hasTextCode(err, ErrorDecodeFailed) || hasTextCode(err, ErrorInvalidResponse)
}

func hasTextCode(err error, textCode string) bool {
	var rich *goerrors.Error
	if !goerrors.As(err, &rich) {
		return false
	}
	return rich.TextCode == textCode
}

func apiFailureError(status int, apiErr APIError) error {
	message := strings.TrimSpace(apiErr.Message)
	if message == "" {
		message = "core: backend reported an error"
	}
	return goerrors.New(message, goerrors.CategoryAuth).
		WithCode(resolveHTTPCode(status, http.StatusUnauthorized)).
		WithTextCode(ErrorAPIFailure).
		WithMetadata(map[string]any{
			metadataKeyAPICode:    strings.TrimSpace(apiErr.Code),
			metadataKeyAPIMessage: apiErr.Message,
			metadataKeyStatusCode: status,
		})
}

func invalidResponseError(status int, body []byte, message string) error {
	return goerrors.New(message, goerrors.CategoryExternal).
		WithCode(resolveHTTPCode(status, http.StatusBadGateway)).
		WithTextCode(ErrorInvalidResponse).
		WithMetadata(map[string]any{
			metadataKeyStatusCode: status,
			metadataKeyBody:       bodyExcerpt(body),
		})
}

func decodeFailureError(status int, body []byte, cause error) error {
	metadata := map[string]any{
		metadataKeyStatusCode: status,
		metadataKeyBody:       bodyExcerpt(body),
	}
	if cause == nil {
		return goerrors.New("core: response matched no known shape", goerrors.CategoryExternal).
			WithCode(http.StatusBadGateway).
			WithTextCode(ErrorDecodeFailed).
			WithMetadata(metadata)
	}
	return goerrors.Wrap(cause, goerrors.CategoryExternal, "core: response matched no known shape").
		WithCode(http.StatusBadGateway).
		WithTextCode(ErrorDecodeFailed).
		WithMetadata(metadata)
}

func missingTokenError(providerID string) error {
	return goerrors.New("core: token provider returned an empty token", goerrors.CategoryBadInput).
		WithCode(http.StatusBadRequest).
		WithTextCode(ErrorMissingToken).
		WithMetadata(map[string]any{"provider": strings.TrimSpace(providerID)})
}

func providerDeniedError(providerID string, cause error) error {
	return goerrors.Wrap(cause, goerrors.CategoryAuth, "core: provider authorization failed").
		WithCode(http.StatusUnauthorized).
		WithTextCode(ErrorProviderDenied).
		WithMetadata(map[string]any{"provider": strings.TrimSpace(providerID)})
}

func transportFailureError(cause error, operation string) error {
	return goerrors.Wrap(cause, goerrors.CategoryExternal, "core: transport request failed").
		WithCode(http.StatusBadGateway).
		WithTextCode(ErrorTransportFailed).
		WithMetadata(map[string]any{"operation": operation})
}

func invalidEndpointError(cause error, baseURL string) error {
	if cause == nil {
		return goerrors.New("core: base url is not a valid endpoint", goerrors.CategoryBadInput).
			WithCode(http.StatusBadRequest).
			WithTextCode(ErrorInvalidEndpoint).
			WithMetadata(map[string]any{"base_url": baseURL})
	}
	return goerrors.Wrap(cause, goerrors.CategoryBadInput, "core: base url is not a valid endpoint").
		WithCode(http.StatusBadRequest).
		WithTextCode(ErrorInvalidEndpoint).
		WithMetadata(map[string]any{"base_url": baseURL})
}

func dependencyError(message string) error {
	return goerrors.New(message, goerrors.CategoryInternal).
		WithCode(http.StatusInternalServerError).
		WithTextCode(ErrorInternal)
}

func defaultErrorMapper(err error) *goerrors.Error {
	if err == nil {
		return nil
	}
	var rich *goerrors.Error
	if goerrors.As(err, &rich) {
		return rich
	}
	return goerrors.Wrap(err, goerrors.CategoryInternal, err.Error()).
		WithCode(http.StatusInternalServerError).
		WithTextCode(ErrorInternal)
}

func resolveHTTPCode(status int, fallback int) int {
	if status >= http.StatusBadRequest {
		return status
	}
	return fallback
}

func bodyExcerpt(body []byte) string {
	trimmed := strings.TrimSpace(string(body))
	if len(trimmed) <= maxBodyExcerptBytes {
		return trimmed
	}
	cut := trimmed[:maxBodyExcerptBytes]
	for len(cut) > 0 && !utf8.ValidString(cut) {
		cut = cut[:len(cut)-1]
	}
	return cut
}
