package core

import (
	"testing"

	goerrors "github.com/goliatone/go-errors"
)

func TestDecodeEnvelope_WrappedPayload(t *testing.T) {
	body := []byte(`{"success":true,"data":{"session":{"token":"tok-1"}}}`)
	data, err := DecodeEnvelope[AuthData](200, body)
	if err != nil {
		t.Fatalf("decode wrapped payload: %v", err)
	}
	if data == nil || data.Session.Token != "tok-1" {
		t.Fatalf("unexpected payload: %+v", data)
	}
}

func TestDecodeEnvelope_WrappedWithoutSuccessFlag(t *testing.T) {
	body := []byte(`{"data":{"session":{"token":"tok-2"}}}`)
	data, err := DecodeEnvelope[AuthData](200, body)
	if err != nil {
		t.Fatalf("decode wrapped payload without flag: %v", err)
	}
	if data == nil || data.Session.Token != "tok-2" {
		t.Fatalf("unexpected payload: %+v", data)
	}
}

func TestDecodeEnvelope_BarePayload(t *testing.T) {
	body := []byte(`{"session":{"token":"tok-3"},"user":{"id":"usr_1"}}`)
	data, err := DecodeEnvelope[AuthData](200, body)
	if err != nil {
		t.Fatalf("decode bare payload: %v", err)
	}
	if data == nil || data.Session.Token != "tok-3" {
		t.Fatalf("unexpected payload: %+v", data)
	}
	if data.User == nil || data.User.ID != "usr_1" {
		t.Fatalf("expected user payload, got %+v", data.User)
	}
}

func TestDecodeEnvelope_EmptyAndNullBodiesMeanNoPayload(t *testing.T) {
	for _, body := range [][]byte{nil, []byte(""), []byte("  "), []byte("null")} {
		data, err := DecodeEnvelope[AuthData](200, body)
		if err != nil {
			t.Fatalf("body %q: expected success, got %v", string(body), err)
		}
		if data != nil {
			t.Fatalf("body %q: expected nil payload, got %+v", string(body), data)
		}
	}
}

func TestDecodeEnvelope_EnvelopedErrorOn2xx(t *testing.T) {
	body := []byte(`{"success":false,"error":{"code":"INVALID_CREDENTIALS","message":"bad token"}}`)
	_, err := DecodeEnvelope[AuthData](200, body)
	if err == nil {
		t.Fatalf("expected api failure")
	}
	apiErr, ok := APIErrorFromError(err)
	if !ok {
		t.Fatalf("expected recoverable api error, got %v", err)
	}
	if apiErr.Code != APIErrorCodeInvalidCredentials || apiErr.Message != "bad token" {
		t.Fatalf("unexpected api error: %+v", apiErr)
	}
}

func TestDecodeEnvelope_EmptyErrorObjectStillFails(t *testing.T) {
	body := []byte(`{"success":false,"error":{}}`)
	_, err := DecodeEnvelope[AuthData](200, body)
	if err == nil {
		t.Fatalf("expected api failure for empty error object")
	}
	if !IsAPIFailure(err) {
		t.Fatalf("expected api failure classification, got %v", err)
	}
}

func TestDecodeEnvelope_Non2xxWithWrappedError(t *testing.T) {
	body := []byte(`{"error":{"code":"UNAUTHORIZED","message":"expired"}}`)
	_, err := DecodeEnvelope[AuthData](401, body)
	apiErr, ok := APIErrorFromError(err)
	if !ok {
		t.Fatalf("expected api error, got %v", err)
	}
	if apiErr.Code != APIErrorCodeUnauthorized {
		t.Fatalf("unexpected code %q", apiErr.Code)
	}
	var rich *goerrors.Error
	if !goerrors.As(err, &rich) {
		t.Fatalf("expected rich error")
	}
	if rich.Code != 401 {
		t.Fatalf("expected status carried as code, got %d", rich.Code)
	}
}

func TestDecodeEnvelope_Non2xxWithDirectError(t *testing.T) {
	body := []byte(`{"code":"USER_NOT_FOUND","message":"no such account"}`)
	_, err := DecodeEnvelope[AuthData](404, body)
	apiErr, ok := APIErrorFromError(err)
	if !ok {
		t.Fatalf("expected api error, got %v", err)
	}
	if apiErr.Code != APIErrorCodeUserNotFound {
		t.Fatalf("unexpected code %q", apiErr.Code)
	}
}

func TestDecodeEnvelope_Non2xxWithOpaqueBody(t *testing.T) {
	_, err := DecodeEnvelope[AuthData](502, []byte("<html>bad gateway</html>"))
	if err == nil {
		t.Fatalf("expected invalid response error")
	}
	if IsAPIFailure(err) {
		t.Fatalf("opaque body must not classify as backend rejection")
	}
	if !IsDecodeFailure(err) {
		t.Fatalf("expected invalid-response classification, got %v", err)
	}
	var rich *goerrors.Error
	if !goerrors.As(err, &rich) {
		t.Fatalf("expected rich error")
	}
	if rich.Metadata["status_code"] != 502 {
		t.Fatalf("expected status metadata, got %v", rich.Metadata)
	}
	if rich.Metadata["body_excerpt"] == "" {
		t.Fatalf("expected body excerpt in metadata")
	}
}

func TestDecodeEnvelope_MalformedBodyIsDecodeFailure(t *testing.T) {
	_, err := DecodeEnvelope[AuthData](200, []byte("{not json"))
	if err == nil {
		t.Fatalf("expected decode failure")
	}
	if !IsDecodeFailure(err) || IsAPIFailure(err) {
		t.Fatalf("expected decode failure classification, got %v", err)
	}
}

func TestDecodeEnvelope_ScalarPayload(t *testing.T) {
	count, err := DecodeEnvelope[int](200, []byte(`{"data":7}`))
	if err != nil {
		t.Fatalf("decode wrapped scalar: %v", err)
	}
	if count == nil || *count != 7 {
		t.Fatalf("expected 7, got %v", count)
	}

	bare, err := DecodeEnvelope[int](200, []byte(`7`))
	if err != nil {
		t.Fatalf("decode bare scalar: %v", err)
	}
	if bare == nil || *bare != 7 {
		t.Fatalf("expected 7, got %v", bare)
	}
}

func TestEnvelopeSucceeded(t *testing.T) {
	truthy := true
	falsy := false
	payload := 1

	cases := []struct {
		name     string
		envelope Envelope[int]
		want     bool
	}{
		{"error always loses", Envelope[int]{Success: &truthy, Data: &payload, Error: &APIError{Message: "x"}}, false},
		{"data without flag wins", Envelope[int]{Data: &payload}, true},
		{"explicit true", Envelope[int]{Success: &truthy}, true},
		{"explicit false", Envelope[int]{Success: &falsy, Data: &payload}, false},
		{"empty", Envelope[int]{}, false},
	}
	for _, tc := range cases {
		if got := tc.envelope.Succeeded(); got != tc.want {
			t.Fatalf("%s: got %v want %v", tc.name, got, tc.want)
		}
	}
}
