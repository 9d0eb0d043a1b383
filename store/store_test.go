package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/goliatone/go-auth-client/core"
	goerrors "github.com/goliatone/go-errors"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	backend := NewMemoryStore()

	if _, found, err := backend.Get(ctx, "k"); err != nil || found {
		t.Fatalf("expected absent key, got found=%v err=%v", found, err)
	}
	if err := backend.Set(ctx, "k", "v"); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	value, found, err := backend.Get(ctx, "k")
	if err != nil || !found || value != "v" {
		t.Fatalf("expected v, got %q found=%v err=%v", value, found, err)
	}
	if err := backend.Delete(ctx, "k"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, found, _ := backend.Get(ctx, "k"); found {
		t.Fatalf("expected key gone after delete")
	}
}

func TestKeyedStoreRejectsEmptyToken(t *testing.T) {
	store, err := NewKeyedStore(NewMemoryStore(), "auth_client.session_token")
	if err != nil {
		t.Fatalf("new keyed store: %v", err)
	}
	err = store.Store(context.Background(), "")
	if err == nil {
		t.Fatalf("expected error storing empty token")
	}
	var rich *goerrors.Error
	if !goerrors.As(err, &rich) {
		t.Fatalf("expected rich error, got %T", err)
	}
	if rich.TextCode != core.ErrorStorageFailed {
		t.Fatalf("expected %s, got %s", core.ErrorStorageFailed, rich.TextCode)
	}
}

func TestKeyedStoreMissingTokenReadsEmpty(t *testing.T) {
	store, err := NewKeyedStore(NewMemoryStore(), "auth_client.session_token")
	if err != nil {
		t.Fatalf("new keyed store: %v", err)
	}
	token, err := store.Retrieve(context.Background())
	if err != nil {
		t.Fatalf("retrieve failed: %v", err)
	}
	if token != "" {
		t.Fatalf("expected empty token, got %q", token)
	}
}

type failingBackend struct{}

func (failingBackend) Set(context.Context, string, string) error { return errors.New("disk full") }
func (failingBackend) Get(context.Context, string) (string, bool, error) {
	return "", false, errors.New("disk gone")
}
func (failingBackend) Delete(context.Context, string) error { return errors.New("disk gone") }

func TestKeyedStoreWrapsBackendFailures(t *testing.T) {
	store, err := NewKeyedStore(failingBackend{}, "k")
	if err != nil {
		t.Fatalf("new keyed store: %v", err)
	}
	for name, call := range map[string]func() error{
		"store":    func() error { return store.Store(context.Background(), "tok") },
		"retrieve": func() error { _, err := store.Retrieve(context.Background()); return err },
		"delete":   func() error { return store.Delete(context.Background()) },
	} {
		err := call()
		var rich *goerrors.Error
		if !goerrors.As(err, &rich) || rich.TextCode != core.ErrorStorageFailed {
			t.Fatalf("%s: expected storage failure, got %v", name, err)
		}
	}
}

func newObservableForTest(t *testing.T, sink core.TokenChangeSink) *ObservableStore {
	t.Helper()
	keyed, err := NewKeyedStore(NewMemoryStore(), "k")
	if err != nil {
		t.Fatalf("new keyed store: %v", err)
	}
	store, err := NewObservableStore(keyed, sink)
	if err != nil {
		t.Fatalf("new observable store: %v", err)
	}
	return store
}

func TestObservableStoreEmitsSnapshotOnWrite(t *testing.T) {
	ctx := context.Background()
	var events []core.TokenChangeEvent
	store := newObservableForTest(t, SinkFunc(func(_ context.Context, e core.TokenChangeEvent) {
		events = append(events, e)
	}))

	if err := store.Store(ctx, "first"); err != nil {
		t.Fatalf("store failed: %v", err)
	}
	if err := store.Store(ctx, "second"); err != nil {
		t.Fatalf("store failed: %v", err)
	}

	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if events[0].OldToken != "" || events[0].NewToken != "first" {
		t.Fatalf("first event snapshot wrong: %+v", events[0])
	}
	if events[1].OldToken != "first" || events[1].NewToken != "second" {
		t.Fatalf("second event snapshot wrong: %+v", events[1])
	}
	if events[0].ID == "" || events[0].ID == events[1].ID {
		t.Fatalf("expected distinct non-empty event IDs")
	}
	if events[0].Deleted() || events[1].Deleted() {
		t.Fatalf("write events must not read as deletions")
	}
}

func TestObservableStoreDoubleDeleteEmitsTwice(t *testing.T) {
	ctx := context.Background()
	var events []core.TokenChangeEvent
	store := newObservableForTest(t, SinkFunc(func(_ context.Context, e core.TokenChangeEvent) {
		events = append(events, e)
	}))

	if err := store.Store(ctx, "tok"); err != nil {
		t.Fatalf("store failed: %v", err)
	}
	if err := store.Delete(ctx); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if err := store.Delete(ctx); err != nil {
		t.Fatalf("second delete failed: %v", err)
	}

	if len(events) != 3 {
		t.Fatalf("expected 3 events, got %d", len(events))
	}
	first, second := events[1], events[2]
	if !first.Deleted() || first.OldToken != "tok" {
		t.Fatalf("first delete event wrong: %+v", first)
	}
	if !second.Deleted() || second.OldToken != "" {
		t.Fatalf("second delete event wrong: %+v", second)
	}
}

func TestObservableStoreConcurrentMutationsSnapshotInOrder(t *testing.T) {
	ctx := context.Background()
	var (
		sinkMu sync.Mutex
		events []core.TokenChangeEvent
	)
	store := newObservableForTest(t, SinkFunc(func(_ context.Context, e core.TokenChangeEvent) {
		sinkMu.Lock()
		events = append(events, e)
		sinkMu.Unlock()
	}))

	const workers = 8
	const rounds = 25

	var wg sync.WaitGroup
	wg.Add(workers)
	for worker := 0; worker < workers; worker++ {
		go func(worker int) {
			defer wg.Done()
			for round := 0; round < rounds; round++ {
				token := fmt.Sprintf("tok-%d-%d", worker, round)
				if err := store.Store(ctx, token); err != nil {
					t.Errorf("store %s: %v", token, err)
					return
				}
				if err := store.Delete(ctx); err != nil {
					t.Errorf("delete after %s: %v", token, err)
					return
				}
			}
		}(worker)
	}
	wg.Wait()

	if len(events) != workers*rounds*2 {
		t.Fatalf("expected %d events, got %d", workers*rounds*2, len(events))
	}
	if events[0].OldToken != "" {
		t.Fatalf("first event must snapshot the empty initial state, got %q", events[0].OldToken)
	}
	for i := 1; i < len(events); i++ {
		if events[i].OldToken != events[i-1].NewToken {
			t.Fatalf("event %d reports stale old token %q, previous mutation wrote %q",
				i, events[i].OldToken, events[i-1].NewToken)
		}
	}
}

func TestObservableStoreReadsDoNotEmit(t *testing.T) {
	ctx := context.Background()
	count := 0
	store := newObservableForTest(t, SinkFunc(func(context.Context, core.TokenChangeEvent) {
		count++
	}))

	if err := store.Store(ctx, "tok"); err != nil {
		t.Fatalf("store failed: %v", err)
	}
	for i := 0; i < 5; i++ {
		if _, err := store.Retrieve(ctx); err != nil {
			t.Fatalf("retrieve failed: %v", err)
		}
	}
	if count != 1 {
		t.Fatalf("expected 1 event, got %d", count)
	}
}

func TestObservableStoreFailedWriteDoesNotEmit(t *testing.T) {
	count := 0
	store := newObservableForTest(t, SinkFunc(func(context.Context, core.TokenChangeEvent) {
		count++
	}))

	if err := store.Store(context.Background(), ""); err == nil {
		t.Fatalf("expected empty-token write to fail")
	}
	if count != 0 {
		t.Fatalf("expected no events after failed write, got %d", count)
	}
}

func TestObservableStoreClockOverride(t *testing.T) {
	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	var got core.TokenChangeEvent
	keyed, _ := NewKeyedStore(NewMemoryStore(), "k")
	store, err := NewObservableStore(keyed, SinkFunc(func(_ context.Context, e core.TokenChangeEvent) {
		got = e
	}), WithObservableClock(func() time.Time { return fixed }))
	if err != nil {
		t.Fatalf("new observable store: %v", err)
	}
	if err := store.Store(context.Background(), "tok"); err != nil {
		t.Fatalf("store failed: %v", err)
	}
	if !got.OccurredAt.Equal(fixed) {
		t.Fatalf("expected fixed timestamp, got %v", got.OccurredAt)
	}
}

func TestMultiSinkFansOutInOrder(t *testing.T) {
	var order []string
	sink := NewMultiSink(
		SinkFunc(func(context.Context, core.TokenChangeEvent) { order = append(order, "a") }),
		nil,
		SinkFunc(func(context.Context, core.TokenChangeEvent) { order = append(order, "b") }),
	)
	sink.Notify(context.Background(), core.TokenChangeEvent{ID: "e"})
	if len(order) != 2 || order[0] != "a" || order[1] != "b" {
		t.Fatalf("unexpected fan-out order: %v", order)
	}
}

func TestChannelSinkDropsWhenFull(t *testing.T) {
	sink := NewChannelSink(1)
	sink.Notify(context.Background(), core.TokenChangeEvent{ID: "kept"})
	sink.Notify(context.Background(), core.TokenChangeEvent{ID: "dropped"})

	select {
	case event := <-sink.Events():
		if event.ID != "kept" {
			t.Fatalf("expected kept event first, got %s", event.ID)
		}
	default:
		t.Fatalf("expected a buffered event")
	}
	select {
	case event := <-sink.Events():
		t.Fatalf("expected second event dropped, got %s", event.ID)
	default:
	}
}
