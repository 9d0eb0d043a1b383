// Package devkit provides test doubles for exercising the client without a
// live identity backend.
package devkit

import (
	"context"
	"fmt"
	"sync"

	"github.com/goliatone/go-auth-client/core"
)

// TransportScript is one canned exchange. When Path is set the script only
// matches requests whose URL ends with that path; unmatched requests fall
// through to the next unconsumed wildcard script.
type TransportScript struct {
	Path     string
	Response core.TransportResponse
	Err      error
}

// FakeTransport replays scripted responses in order and records every
// request it sees.
type FakeTransport struct {
	mu       sync.Mutex
	scripts  []TransportScript
	consumed []bool
	requests []core.TransportRequest
}

func NewFakeTransport(scripts ...TransportScript) *FakeTransport {
	return &FakeTransport{
		scripts:  append([]TransportScript(nil), scripts...),
		consumed: make([]bool, len(scripts)),
	}
}

func (t *FakeTransport) Kind() string { return "fake" }

func (t *FakeTransport) Do(_ context.Context, req core.TransportRequest) (core.TransportResponse, error) {
	if t == nil {
		return core.TransportResponse{}, fmt.Errorf("devkit: fake transport is nil")
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	t.requests = append(t.requests, cloneRequest(req))

	for i, script := range t.scripts {
		if t.consumed[i] {
			continue
		}
		if script.Path != "" && !hasPathSuffix(req.URL, script.Path) {
			continue
		}
		t.consumed[i] = true
		return cloneResponse(script.Response), script.Err
	}
	if len(t.scripts) > 0 {
		last := t.scripts[len(t.scripts)-1]
		return cloneResponse(last.Response), last.Err
	}
	return core.TransportResponse{StatusCode: 200, Headers: map[string]string{}}, nil
}

// Requests returns copies of every request received so far, oldest first.
func (t *FakeTransport) Requests() []core.TransportRequest {
	if t == nil {
		return nil
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]core.TransportRequest, 0, len(t.requests))
	for _, req := range t.requests {
		out = append(out, cloneRequest(req))
	}
	return out
}

func hasPathSuffix(url, path string) bool {
	if len(path) > len(url) {
		return false
	}
	return url[len(url)-len(path):] == path
}

func cloneRequest(in core.TransportRequest) core.TransportRequest {
	out := in
	out.Body = append([]byte(nil), in.Body...)
	out.Headers = cloneStringMap(in.Headers)
	out.Query = cloneStringMap(in.Query)
	out.Metadata = cloneAnyMap(in.Metadata)
	return out
}

func cloneResponse(in core.TransportResponse) core.TransportResponse {
	out := in
	out.Body = append([]byte(nil), in.Body...)
	out.Headers = cloneStringMap(in.Headers)
	out.Metadata = cloneAnyMap(in.Metadata)
	return out
}

func cloneStringMap(in map[string]string) map[string]string {
	out := map[string]string{}
	for key, value := range in {
		out[key] = value
	}
	return out
}

func cloneAnyMap(in map[string]any) map[string]any {
	out := map[string]any{}
	for key, value := range in {
		out[key] = value
	}
	return out
}

var _ core.TransportAdapter = (*FakeTransport)(nil)
