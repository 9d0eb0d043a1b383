package core

import (
	"context"
	"net/http"
	"strings"
	"time"
)

// signInRedirectPayload is the narrow fallback shape some backend variants
// answer sign-in with instead of a full auth payload.
type signInRedirectPayload struct {
	Redirect *bool  `json:"redirect,omitempty"`
	Token    string `json:"token,omitempty"`
	URL      string `json:"url,omitempty"`
}

// SignInNegotiator issues the ordered candidate request bodies for one
// sign-in call and resolves the first interpretable response. It never
// touches the token store; persisting the resulting token is the
// orchestrator's policy.
type SignInNegotiator struct {
	transport   TransportAdapter
	endpoint    string
	tokenHeader string
	timeout     time.Duration
	logger      Logger
}

func NewSignInNegotiator(
	transport TransportAdapter,
	endpoint string,
	tokenHeader string,
	timeout time.Duration,
	logger Logger,
) (*SignInNegotiator, error) {
	if transport == nil {
		return nil, dependencyError("core: sign-in negotiator requires a transport adapter")
	}
	if strings.TrimSpace(endpoint) == "" {
		return nil, dependencyError("core: sign-in negotiator requires an endpoint")
	}
	if strings.TrimSpace(tokenHeader) == "" {
		tokenHeader = DefaultTokenHeader
	}
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}
	return &SignInNegotiator{
		transport:   transport,
		endpoint:    strings.TrimSpace(endpoint),
		tokenHeader: strings.TrimSpace(tokenHeader),
		timeout:     timeout,
		logger:      logger,
	}, nil
}

// Negotiate tries each candidate request body in order and returns the first
// response that yields a non-empty session token. When every candidate fails
// it falls back to the narrow `{redirect, token, url}` shape and finally to a
// token-bearing response header, both evaluated against the most recent
// response received. The terminal failure prefers an explicit backend error
// over a generic decode failure.
func (n *SignInNegotiator) Negotiate(
	ctx context.Context,
	provider SignInProvider,
	token string,
	options SignInOptions,
	bearer string,
) (*AuthData, error) {
	if n == nil || n.transport == nil {
		return nil, dependencyError("core: sign-in negotiator is not configured")
	}
	if provider == nil {
		return nil, dependencyError("core: sign-in provider is required")
	}
	if strings.TrimSpace(token) == "" {
		return nil, missingTokenError(provider.ID())
	}

	candidates := provider.Candidates(token, options)
	if len(candidates) == 0 {
		return nil, dependencyError("core: provider produced no sign-in candidates")
	}

	var (
		lastResponse   *TransportResponse
		lastAPIFailure error
		lastFailure    error
	)

	for _, candidate := range candidates {
		body, err := candidate.EncodeBody()
		if err != nil {
			lastFailure = err
			continue
		}

		response, err := n.send(ctx, body, bearer)
		if err != nil {
			lastFailure = transportFailureError(err, "sign_in")
			continue
		}
		lastResponse = &response

		data, err := DecodeEnvelope[AuthData](response.StatusCode, response.Body)
		if err != nil {
			if IsAPIFailure(err) {
				lastAPIFailure = err
			} else {
				lastFailure = err
			}
			n.logCandidateMiss(candidate, response.StatusCode, err)
			continue
		}
		if resolved := n.resolveAuthData(data, response); resolved != nil {
			return resolved, nil
		}
		lastFailure = invalidResponseError(
			response.StatusCode,
			response.Body,
			"core: sign-in response carried no session token",
		)
		n.logCandidateMiss(candidate, response.StatusCode, lastFailure)
	}

	if data := n.resolveFallbacks(lastResponse); data != nil {
		return data, nil
	}

	if lastAPIFailure != nil {
		return nil, lastAPIFailure
	}
	if lastFailure != nil {
		return nil, lastFailure
	}
	return nil, invalidResponseError(0, nil, "core: sign-in negotiation exhausted all candidates")
}

func (n *SignInNegotiator) send(ctx context.Context, body []byte, bearer string) (TransportResponse, error) {
	headers := map[string]string{
		"Content-Type": "application/json",
		"Accept":       "application/json",
	}
	if strings.TrimSpace(bearer) != "" {
		headers["Authorization"] = "Bearer " + strings.TrimSpace(bearer)
	}
	return n.transport.Do(ctx, TransportRequest{
		Method:  http.MethodPost,
		URL:     n.endpoint,
		Headers: headers,
		Body:    body,
		Timeout: n.timeout,
	})
}

// resolveAuthData accepts a decoded payload when it carries a session token,
// falling back to the token response header when the body has none.
func (n *SignInNegotiator) resolveAuthData(data *AuthData, response TransportResponse) *AuthData {
	if data != nil && strings.TrimSpace(data.Session.Token) != "" {
		return data
	}
	headerToken := headerValue(response.Headers, n.tokenHeader)
	if headerToken == "" {
		return nil
	}
	if data == nil {
		return &AuthData{Session: Session{Token: headerToken}}
	}
	enriched := *data
	enriched.Session.Token = headerToken
	return &enriched
}

func (n *SignInNegotiator) resolveFallbacks(response *TransportResponse) *AuthData {
	if response == nil || response.StatusCode < 200 || response.StatusCode > 299 {
		return nil
	}
	if fallback, err := DecodeEnvelope[signInRedirectPayload](response.StatusCode, response.Body); err == nil && fallback != nil {
		if token := strings.TrimSpace(fallback.Token); token != "" {
			return &AuthData{Session: Session{Token: token}}
		}
	}
	if token := headerValue(response.Headers, n.tokenHeader); token != "" {
		return &AuthData{Session: Session{Token: token}}
	}
	return nil
}

func (n *SignInNegotiator) logCandidateMiss(candidate SignInCandidate, status int, err error) {
	if n == nil || n.logger == nil {
		return
	}
	n.logger.Debug("sign-in candidate rejected",
		"candidate_kind", string(candidate.Kind),
		"status_code", status,
		"error", err.Error(),
	)
}

func headerValue(headers map[string]string, name string) string {
	if len(headers) == 0 {
		return ""
	}
	for key, value := range headers {
		if strings.EqualFold(strings.TrimSpace(key), strings.TrimSpace(name)) {
			return strings.TrimSpace(value)
		}
	}
	return ""
}
