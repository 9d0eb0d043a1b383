package core

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	goerrors "github.com/goliatone/go-errors"
	glog "github.com/goliatone/go-logger/glog"
)

// Client is the client-facing session API. It composes the sign-in
// negotiator, the envelope decoder, and the injected token store, and owns
// the persistence policy: a successful session-bearing response stores the
// token, sign-out deletes it.
type Client struct {
	config          Config
	logger          Logger
	loggerProvider  LoggerProvider
	metricsRecorder MetricsRecorder
	errorMapper     ErrorMapper
	transport       TransportAdapter
	tokens          TokenStore
	registry        Registry
	negotiator      *SignInNegotiator
	now             func() time.Time
}

func New(runtime Config, options ...Option) (*Client, error) {
	builder := defaultClientBuilder(runtime)
	for _, option := range options {
		if option == nil {
			continue
		}
		option(&builder)
	}

	loggerProvider, logger := glog.Resolve("auth-client", builder.loggerProvider, builder.logger)
	logger = glog.Ensure(logger)
	if loggerProvider != nil {
		if named := loggerProvider.GetLogger("auth-client"); named != nil {
			logger = glog.Ensure(named)
		}
	}

	defaults := DefaultConfig()
	loaded, err := builder.configProvider.Load(context.Background(), defaults)
	if err != nil {
		return nil, err
	}
	resolved, err := builder.optionsResolver.Resolve(defaults, loaded, builder.runtimeConfig)
	if err != nil {
		return nil, err
	}
	if err := resolved.Validate(); err != nil {
		return nil, invalidEndpointError(err, resolved.BaseURL)
	}

	if builder.transport == nil {
		return nil, dependencyError("core: client requires a transport adapter")
	}
	if builder.tokenStore == nil {
		return nil, dependencyError("core: client requires a token store")
	}
	if builder.registry == nil {
		builder.registry = NewProviderRegistry()
	}

	negotiator, err := NewSignInNegotiator(
		builder.transport,
		resolved.EndpointURL(resolved.Endpoints.SignInSocial),
		resolved.resolvedTokenHeader(),
		resolved.resolvedTimeout(),
		logger,
	)
	if err != nil {
		return nil, err
	}

	return &Client{
		config:          resolved,
		logger:          logger,
		loggerProvider:  loggerProvider,
		metricsRecorder: builder.metricsRecorder,
		errorMapper:     builder.errorMapper,
		transport:       builder.transport,
		tokens:          builder.tokenStore,
		registry:        builder.registry,
		negotiator:      negotiator,
		now:             builder.now,
	}, nil
}

func (c *Client) Config() Config {
	if c == nil {
		return Config{}
	}
	return c.config
}

func (c *Client) RegisterProvider(provider SignInProvider) error {
	if c == nil || c.registry == nil {
		return dependencyError("core: client registry is not configured")
	}
	return c.registry.Register(provider)
}

// StoredToken reads the persisted session token without touching the
// network. An empty result means no session is stored.
func (c *Client) StoredToken(ctx context.Context) (string, error) {
	if c == nil || c.tokens == nil {
		return "", dependencyError("core: client token store is not configured")
	}
	return c.tokens.Retrieve(ctx)
}

// GetSession fetches the current session from the backend and persists the
// returned token. A nil result with a nil error means the backend reported
// no active session.
func (c *Client) GetSession(ctx context.Context) (data *AuthData, err error) {
	startedAt := c.now()
	defer func() {
		c.observeOperation(ctx, startedAt, "get_session", err, nil)
	}()

	response, sendErr := c.send(ctx, http.MethodGet, c.config.Endpoints.Session, nil, "get_session")
	if sendErr != nil {
		return nil, c.mapError(sendErr)
	}
	decoded, decodeErr := DecodeEnvelope[AuthData](response.StatusCode, response.Body)
	if decodeErr != nil {
		return nil, c.mapError(decodeErr)
	}
	decoded = c.withHeaderToken(decoded, response)
	if decoded == nil {
		return nil, nil
	}
	if persistErr := c.persistToken(ctx, decoded); persistErr != nil {
		return nil, c.mapError(persistErr)
	}
	return decoded, nil
}

// SignIn resolves the provider's candidate policy, acquires a provider token
// when the caller did not supply one, negotiates the sign-in call, and
// persists the resulting session token.
func (c *Client) SignIn(ctx context.Context, req SignInRequest) (data *AuthData, err error) {
	startedAt := c.now()
	providerID := strings.TrimSpace(req.Provider)
	defer func() {
		c.observeOperation(ctx, startedAt, "sign_in", err, map[string]any{"provider": providerID})
	}()

	if providerID == "" {
		return nil, c.mapError(badInputError("core: sign-in provider id is required"))
	}
	provider, ok := c.registry.Get(providerID)
	if !ok {
		return nil, c.mapError(badInputError("core: sign-in provider is not registered: " + providerID))
	}

	token := strings.TrimSpace(req.IDToken)
	if token == "" {
		if req.TokenProvider == nil {
			return nil, c.mapError(missingTokenError(providerID))
		}
		fetched, fetchErr := req.TokenProvider.FetchToken(ctx)
		if fetchErr != nil {
			return nil, c.mapError(providerDeniedError(providerID, fetchErr))
		}
		token = strings.TrimSpace(fetched)
	}
	if token == "" {
		return nil, c.mapError(missingTokenError(providerID))
	}

	bearer, bearerErr := c.tokens.Retrieve(ctx)
	if bearerErr != nil {
		return nil, c.mapError(bearerErr)
	}

	negotiated, negotiateErr := c.negotiator.Negotiate(ctx, provider, token, req.Options, bearer)
	if negotiateErr != nil {
		return nil, c.mapError(negotiateErr)
	}
	if persistErr := c.persistToken(ctx, negotiated); persistErr != nil {
		return nil, c.mapError(persistErr)
	}
	return negotiated, nil
}

// SignOut posts the sign-out call and deletes the stored token once the
// request succeeds, even when the response payload is empty.
func (c *Client) SignOut(ctx context.Context) (err error) {
	startedAt := c.now()
	defer func() {
		c.observeOperation(ctx, startedAt, "sign_out", err, nil)
	}()

	response, sendErr := c.send(ctx, http.MethodPost, c.config.Endpoints.SignOut, nil, "sign_out")
	if sendErr != nil {
		return c.mapError(sendErr)
	}
	if _, decodeErr := DecodeEnvelope[struct{}](response.StatusCode, response.Body); decodeErr != nil {
		return c.mapError(decodeErr)
	}
	if deleteErr := c.tokens.Delete(ctx); deleteErr != nil {
		return c.mapError(deleteErr)
	}
	return nil
}

type refreshBody struct {
	RefreshToken string `json:"refreshToken,omitempty"`
}

// Refresh exchanges a refresh token for a new session. The backend exposes
// the refresh call under two paths; the legacy path is tried only when the
// primary one yields an uninterpretable response. An explicit backend
// rejection is terminal and never falls through to the legacy path.
func (c *Client) Refresh(ctx context.Context, req RefreshRequest) (data *AuthData, err error) {
	startedAt := c.now()
	defer func() {
		c.observeOperation(ctx, startedAt, "refresh", err, nil)
	}()

	body, marshalErr := json.Marshal(refreshBody{RefreshToken: strings.TrimSpace(req.RefreshToken)})
	if marshalErr != nil {
		return nil, c.mapError(marshalErr)
	}

	var lastFailure error
	for _, path := range []string{c.config.Endpoints.Refresh, c.config.Endpoints.RefreshToken} {
		if strings.TrimSpace(path) == "" {
			continue
		}
		response, sendErr := c.send(ctx, http.MethodPost, path, body, "refresh")
		if sendErr != nil {
			lastFailure = sendErr
			continue
		}
		decoded, decodeErr := DecodeEnvelope[AuthData](response.StatusCode, response.Body)
		if decodeErr != nil {
			if IsAPIFailure(decodeErr) {
				return nil, c.mapError(decodeErr)
			}
			lastFailure = decodeErr
			continue
		}
		decoded = c.withHeaderToken(decoded, response)
		if decoded == nil || strings.TrimSpace(decoded.Session.Token) == "" {
			lastFailure = invalidResponseError(
				response.StatusCode,
				response.Body,
				"core: refresh response carried no session token",
			)
			continue
		}
		if persistErr := c.persistToken(ctx, decoded); persistErr != nil {
			return nil, c.mapError(persistErr)
		}
		return decoded, nil
	}

	if lastFailure != nil {
		return nil, c.mapError(lastFailure)
	}
	return nil, c.mapError(dependencyError("core: no refresh endpoint is configured"))
}

// send issues one request with the bearer credential attached best-effort:
// absence of a stored token is not an error at this layer.
func (c *Client) send(
	ctx context.Context,
	method string,
	path string,
	body []byte,
	operation string,
) (TransportResponse, error) {
	bearer, err := c.tokens.Retrieve(ctx)
	if err != nil {
		return TransportResponse{}, err
	}
	headers := map[string]string{
		"Accept": "application/json",
	}
	if len(body) > 0 {
		headers["Content-Type"] = "application/json"
	}
	if strings.TrimSpace(bearer) != "" {
		headers["Authorization"] = "Bearer " + strings.TrimSpace(bearer)
	}
	response, err := c.transport.Do(ctx, TransportRequest{
		Method:  method,
		URL:     c.config.EndpointURL(path),
		Headers: headers,
		Body:    body,
		Timeout: c.config.resolvedTimeout(),
	})
	if err != nil {
		return TransportResponse{}, transportFailureError(err, operation)
	}
	return response, nil
}

// withHeaderToken fills the session token from the configured response header
// when the decoded payload carries none.
func (c *Client) withHeaderToken(data *AuthData, response TransportResponse) *AuthData {
	if data != nil && strings.TrimSpace(data.Session.Token) != "" {
		return data
	}
	headerToken := headerValue(response.Headers, c.config.resolvedTokenHeader())
	if headerToken == "" {
		return data
	}
	if data == nil {
		return &AuthData{Session: Session{Token: headerToken}}
	}
	enriched := *data
	enriched.Session.Token = headerToken
	return &enriched
}

// persistToken stores a session token only after a fully decoded, successful
// result; a payload without a token is left alone.
func (c *Client) persistToken(ctx context.Context, data *AuthData) error {
	if data == nil {
		return nil
	}
	token := strings.TrimSpace(data.Session.Token)
	if token == "" {
		return nil
	}
	return c.tokens.Store(ctx, token)
}

func (c *Client) mapError(err error) error {
	if err == nil {
		return nil
	}
	if c != nil && c.errorMapper != nil {
		if rich := c.errorMapper(err); rich != nil {
			return rich
		}
	}
	return err
}

func badInputError(message string) error {
	return goerrors.New(message, goerrors.CategoryBadInput).
		WithCode(http.StatusBadRequest).
		WithTextCode(ErrorBadInput)
}
