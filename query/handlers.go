// Package query exposes the read side of the session API as go-command
// queries.
package query

import (
	"context"

	"github.com/goliatone/go-auth-client/core"
)

type SessionReader interface {
	GetSession(ctx context.Context) (*core.AuthData, error)
	StoredToken(ctx context.Context) (string, error)
}

type GetSessionQuery struct {
	reader SessionReader
}

func NewGetSessionQuery(reader SessionReader) *GetSessionQuery {
	return &GetSessionQuery{reader: reader}
}

// Query returns nil with a nil error when no session is active.
func (q *GetSessionQuery) Query(ctx context.Context, _ GetSessionMessage) (*core.AuthData, error) {
	if q == nil || q.reader == nil {
		return nil, queryDependencyError("query: session reader is required")
	}
	return q.reader.GetSession(ctx)
}

type StoredTokenQuery struct {
	reader SessionReader
}

func NewStoredTokenQuery(reader SessionReader) *StoredTokenQuery {
	return &StoredTokenQuery{reader: reader}
}

func (q *StoredTokenQuery) Query(ctx context.Context, _ StoredTokenMessage) (string, error) {
	if q == nil || q.reader == nil {
		return "", queryDependencyError("query: session reader is required")
	}
	return q.reader.StoredToken(ctx)
}
