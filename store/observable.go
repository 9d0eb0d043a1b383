package store

import (
	"context"
	"sync"
	"time"

	"github.com/goliatone/go-auth-client/core"
	"github.com/google/uuid"
)

// ObservableStore decorates a TokenStore with change notifications. Each
// mutation runs as a snapshot-write-emit critical section under one mutex, so
// events carry the true previous token and arrive in mutation order. Reads
// pass through without locking and never emit.
type ObservableStore struct {
	mu    sync.Mutex
	inner core.TokenStore
	sink  core.TokenChangeSink
	now   func() time.Time
}

type ObservableOption func(*ObservableStore)

// WithObservableClock overrides the event timestamp source.
func WithObservableClock(now func() time.Time) ObservableOption {
	return func(s *ObservableStore) {
		if now != nil {
			s.now = now
		}
	}
}

func NewObservableStore(inner core.TokenStore, sink core.TokenChangeSink, options ...ObservableOption) (*ObservableStore, error) {
	if inner == nil {
		return nil, storageError("observable store: inner token store is required", nil)
	}
	if sink == nil {
		sink = NopSink{}
	}
	store := &ObservableStore{
		inner: inner,
		sink:  sink,
		now:   time.Now,
	}
	for _, option := range options {
		option(store)
	}
	return store, nil
}

func (s *ObservableStore) Store(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	previous, err := s.inner.Retrieve(ctx)
	if err != nil {
		return err
	}
	if err := s.inner.Store(ctx, token); err != nil {
		return err
	}
	s.emit(ctx, previous, token)
	return nil
}

func (s *ObservableStore) Retrieve(ctx context.Context) (string, error) {
	return s.inner.Retrieve(ctx)
}

// Delete emits even when nothing was stored. A deletion event always reaches
// subscribers so session-ended handling does not depend on prior state.
func (s *ObservableStore) Delete(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	previous, err := s.inner.Retrieve(ctx)
	if err != nil {
		return err
	}
	if err := s.inner.Delete(ctx); err != nil {
		return err
	}
	s.emit(ctx, previous, "")
	return nil
}

func (s *ObservableStore) emit(ctx context.Context, oldToken, newToken string) {
	s.sink.Notify(ctx, core.TokenChangeEvent{
		ID:         uuid.NewString(),
		OldToken:   oldToken,
		NewToken:   newToken,
		OccurredAt: s.now().UTC(),
	})
}

var _ core.TokenStore = (*ObservableStore)(nil)
