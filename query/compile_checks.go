package query

import (
	"github.com/goliatone/go-auth-client/core"
	gocmd "github.com/goliatone/go-command"
)

var (
	_ gocmd.Querier[GetSessionMessage, *core.AuthData] = (*GetSessionQuery)(nil)
	_ gocmd.Querier[StoredTokenMessage, string]        = (*StoredTokenQuery)(nil)
)
