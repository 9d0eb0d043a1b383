package store

import (
	"context"

	"github.com/goliatone/go-auth-client/core"
)

// SinkFunc adapts a plain function to a TokenChangeSink.
type SinkFunc func(ctx context.Context, event core.TokenChangeEvent)

func (f SinkFunc) Notify(ctx context.Context, event core.TokenChangeEvent) {
	if f != nil {
		f(ctx, event)
	}
}

// NopSink discards events.
type NopSink struct{}

func (NopSink) Notify(context.Context, core.TokenChangeEvent) {}

// MultiSink fans one event out to every registered sink, in registration
// order.
type MultiSink struct {
	sinks []core.TokenChangeSink
}

func NewMultiSink(sinks ...core.TokenChangeSink) *MultiSink {
	filtered := make([]core.TokenChangeSink, 0, len(sinks))
	for _, sink := range sinks {
		if sink != nil {
			filtered = append(filtered, sink)
		}
	}
	return &MultiSink{sinks: filtered}
}

func (m *MultiSink) Notify(ctx context.Context, event core.TokenChangeEvent) {
	for _, sink := range m.sinks {
		sink.Notify(ctx, event)
	}
}

// ChannelSink bridges events onto a channel without blocking the store. When
// the channel is full the event is dropped; subscribers needing lossless
// delivery should drain promptly or use a SinkFunc.
type ChannelSink struct {
	events chan core.TokenChangeEvent
}

func NewChannelSink(buffer int) *ChannelSink {
	if buffer <= 0 {
		buffer = 16
	}
	return &ChannelSink{events: make(chan core.TokenChangeEvent, buffer)}
}

func (c *ChannelSink) Notify(_ context.Context, event core.TokenChangeEvent) {
	select {
	case c.events <- event:
	default:
	}
}

// Events exposes the receive side of the sink.
func (c *ChannelSink) Events() <-chan core.TokenChangeEvent {
	return c.events
}

var (
	_ core.TokenChangeSink = SinkFunc(nil)
	_ core.TokenChangeSink = NopSink{}
	_ core.TokenChangeSink = (*MultiSink)(nil)
	_ core.TokenChangeSink = (*ChannelSink)(nil)
)
