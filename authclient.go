// Package authclient is a client for session-based identity backends. It
// signs in through social providers, normalizes the backend's inconsistent
// response shapes, and keeps the session token in a pluggable store.
package authclient

import (
	"strings"

	"github.com/goliatone/go-auth-client/core"
	"github.com/goliatone/go-auth-client/store"
	"github.com/goliatone/go-auth-client/transport"
)

type (
	Config         = core.Config
	EndpointConfig = core.EndpointConfig

	APIError       = core.APIError
	AuthData       = core.AuthData
	Session        = core.Session
	User           = core.User
	FlexTime       = core.FlexTime
	SignInRequest  = core.SignInRequest
	RefreshRequest = core.RefreshRequest
	SignInOptions  = core.SignInOptions

	TokenChangeEvent = core.TokenChangeEvent

	TransportAdapter = core.TransportAdapter
	TokenStore       = core.TokenStore
	SecureStore      = core.SecureStore
	TokenProvider    = core.TokenProvider
	TokenChangeSink  = core.TokenChangeSink
	SignInProvider   = core.SignInProvider

	Client = core.Client
	Option = core.Option
)

var (
	WithLogger          = core.WithLogger
	WithLoggerProvider  = core.WithLoggerProvider
	WithMetricsRecorder = core.WithMetricsRecorder
	WithErrorMapper     = core.WithErrorMapper
	WithTransport       = core.WithTransport
	WithTokenStore      = core.WithTokenStore
	WithRegistry        = core.WithRegistry
	WithConfigProvider  = core.WithConfigProvider

	DefaultConfig = core.DefaultConfig

	APIErrorFromError = core.APIErrorFromError
	IsAPIFailure      = core.IsAPIFailure
	IsMissingToken    = core.IsMissingToken
	IsDecodeFailure   = core.IsDecodeFailure
)

// New builds a client with a REST transport and an in-memory observable
// token store unless the caller wires their own. User options are applied
// after the defaults, so a WithTransport or WithTokenStore option always
// wins.
func New(cfg Config, options ...Option) (*Client, error) {
	tokens, err := NewObservableMemoryStore(cfg.StorageKey)
	if err != nil {
		return nil, err
	}
	defaults := []Option{
		WithTransport(transport.NewRESTAdapter(nil)),
		WithTokenStore(tokens),
	}
	return core.New(cfg, append(defaults, options...)...)
}

// NewObservableMemoryStore builds the default token store: an in-process
// secure store under the given storage key, wrapped with change
// notifications fanned out to the given sinks.
func NewObservableMemoryStore(storageKey string, sinks ...TokenChangeSink) (TokenStore, error) {
	if strings.TrimSpace(storageKey) == "" {
		storageKey = DefaultConfig().StorageKey
	}
	keyed, err := store.NewKeyedStore(store.NewMemoryStore(), storageKey)
	if err != nil {
		return nil, err
	}
	return store.NewObservableStore(keyed, store.NewMultiSink(sinks...))
}

// NewObservableStore wraps any token store with change notifications.
func NewObservableStore(inner TokenStore, sinks ...TokenChangeSink) (TokenStore, error) {
	return store.NewObservableStore(inner, store.NewMultiSink(sinks...))
}
