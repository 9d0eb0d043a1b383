package core

import (
	"context"
	"time"

	glog "github.com/goliatone/go-logger/glog"
)

type TransportRequest struct {
	Method               string
	URL                  string
	Headers              map[string]string
	Query                map[string]string
	Body                 []byte
	Metadata             map[string]any
	Timeout              time.Duration
	MaxResponseBodyBytes int64
	Idempotency          string
}

type TransportResponse struct {
	StatusCode int
	Headers    map[string]string
	Body       []byte
	Metadata   map[string]any
}

// TransportAdapter is the single-attempt request capability. Retry and
// backoff are a caller concern; the client never re-issues a request on its
// own beyond trying the next candidate shape.
type TransportAdapter interface {
	Kind() string
	Do(ctx context.Context, req TransportRequest) (TransportResponse, error)
}

// TokenStore persists the single session token. Retrieve returns an empty
// string when nothing is stored; absence is not an error.
type TokenStore interface {
	Store(ctx context.Context, token string) error
	Retrieve(ctx context.Context) (string, error)
	Delete(ctx context.Context) error
}

// SecureStore is the pluggable key-value persistence capability backing a
// TokenStore. Get reports presence explicitly so an empty stored value can be
// told apart from no value.
type SecureStore interface {
	Set(ctx context.Context, key string, value string) error
	Get(ctx context.Context, key string) (string, bool, error)
	Delete(ctx context.Context, key string) error
}

// TokenProvider produces a provider token through an external authorization
// flow (platform sign-in UI, OAuth fetch, test double). TokenKey labels the
// JSON field the legacy flat request shape carries the token under.
type TokenProvider interface {
	TokenKey() string
	FetchToken(ctx context.Context) (string, error)
}

// TokenChangeSink receives token mutation events. Delivery is fire-and-forget
// with no acknowledgement; events for the same store arrive in mutation order.
type TokenChangeSink interface {
	Notify(ctx context.Context, event TokenChangeEvent)
}

// SignInProvider shapes the ordered candidate request bodies for one identity
// provider.
type SignInProvider interface {
	ID() string
	Candidates(token string, opts SignInOptions) []SignInCandidate
}

type Registry interface {
	Register(provider SignInProvider) error
	Get(providerID string) (SignInProvider, bool)
	List() []SignInProvider
}

type MetricsRecorder interface {
	IncCounter(ctx context.Context, name string, value int64, tags map[string]string)
	ObserveHistogram(ctx context.Context, name string, value float64, tags map[string]string)
}

type Logger = glog.Logger

type LoggerProvider = glog.LoggerProvider

type FieldsLogger = glog.FieldsLogger
