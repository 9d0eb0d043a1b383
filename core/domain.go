package core

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Known backend error codes. The code space is open: unknown codes still
// decode, these are only recognized for caller convenience.
const (
	APIErrorCodeInvalidCredentials = "INVALID_CREDENTIALS"
	APIErrorCodeUnauthorized       = "UNAUTHORIZED"
	APIErrorCodeUserNotFound       = "USER_NOT_FOUND"
	APIErrorCodeInternal           = "INTERNAL_ERROR"
)

type APIError struct {
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
}

func (e APIError) Error() string {
	code := strings.TrimSpace(e.Code)
	if code == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", code, e.Message)
}

func (e APIError) IsZero() bool {
	return strings.TrimSpace(e.Code) == "" && strings.TrimSpace(e.Message) == ""
}

type User struct {
	ID            string    `json:"id,omitempty"`
	Email         string    `json:"email,omitempty"`
	Name          string    `json:"name,omitempty"`
	Image         string    `json:"image,omitempty"`
	EmailVerified bool      `json:"emailVerified,omitempty"`
	CreatedAt     *FlexTime `json:"createdAt,omitempty"`
	UpdatedAt     *FlexTime `json:"updatedAt,omitempty"`
}

// Session is the backend's session payload. Token is the only required field
// and the only piece of long-lived state: it is extracted and handed to the
// token store, the rest is discarded once the caller consumes it.
type Session struct {
	Token     string    `json:"token"`
	ExpiresAt *FlexTime `json:"expiresAt,omitempty"`
	CreatedAt *FlexTime `json:"createdAt,omitempty"`
	UpdatedAt *FlexTime `json:"updatedAt,omitempty"`
}

type AuthData struct {
	Session Session `json:"session"`
	User    *User   `json:"user,omitempty"`
}

// TokenChangeEvent describes one token-store mutation. An empty NewToken
// signals deletion; an empty OldToken means nothing was stored before.
type TokenChangeEvent struct {
	ID         string
	OldToken   string
	NewToken   string
	OccurredAt time.Time
}

func (e TokenChangeEvent) Deleted() bool {
	return strings.TrimSpace(e.NewToken) == ""
}

type SignInOptions struct {
	CallbackURL     string
	DisableRedirect bool
	Nonce           string
	AccessToken     string
}

type CandidateKind string

const (
	CandidateKindFlat      CandidateKind = "flat"
	CandidateKindEnveloped CandidateKind = "enveloped"
)

// IDTokenPayload is the enveloped carrier for a provider token.
type IDTokenPayload struct {
	Token       string `json:"token"`
	Nonce       string `json:"nonce,omitempty"`
	AccessToken string `json:"accessToken,omitempty"`
}

// FlatSignInBody is the legacy request shape: the provider token is a bare
// string keyed by the provider's token key, and the redirect/callback fields
// are transmitted as strings. The backend accepts this inconsistency
// verbatim, so the client reproduces it verbatim.
type FlatSignInBody struct {
	Provider        string
	TokenKey        string
	Token           string
	DisableRedirect bool
	CallbackURL     string
}

func (b FlatSignInBody) MarshalJSON() ([]byte, error) {
	key := strings.TrimSpace(b.TokenKey)
	if key == "" {
		key = "idToken"
	}
	payload := map[string]string{
		"provider": b.Provider,
		key:        b.Token,
	}
	if b.DisableRedirect {
		payload["disableRedirect"] = "true"
	}
	if strings.TrimSpace(b.CallbackURL) != "" {
		payload["callbackURL"] = b.CallbackURL
	}
	return json.Marshal(payload)
}

// EnvelopedSignInBody is the current request shape with natively typed
// redirect/callback fields.
type EnvelopedSignInBody struct {
	Provider        string         `json:"provider"`
	IDToken         IDTokenPayload `json:"idToken"`
	DisableRedirect *bool          `json:"disableRedirect,omitempty"`
	CallbackURL     string         `json:"callbackURL,omitempty"`
}

// SignInCandidate is a tagged union over the known request shapes. Keeping
// the shapes statically typed makes candidate selection exhaustive instead of
// funneling heterogeneous bodies through a type-erased encoder.
type SignInCandidate struct {
	Kind      CandidateKind
	Flat      FlatSignInBody
	Enveloped EnvelopedSignInBody
}

func (c SignInCandidate) EncodeBody() ([]byte, error) {
	switch c.Kind {
	case CandidateKindFlat:
		return json.Marshal(c.Flat)
	case CandidateKindEnveloped:
		return json.Marshal(c.Enveloped)
	default:
		return nil, fmt.Errorf("core: unknown sign-in candidate kind %q", string(c.Kind))
	}
}

type SignInRequest struct {
	Provider      string
	TokenProvider TokenProvider
	// IDToken bypasses the token provider when the caller already holds a
	// provider token.
	IDToken string
	Options SignInOptions
}

type RefreshRequest struct {
	RefreshToken string
}
