package command

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-auth-client/core"
)

const (
	TypeSignIn  = "authclient.command.sign_in"
	TypeSignOut = "authclient.command.sign_out"
	TypeRefresh = "authclient.command.refresh"
)

type SignInMessage struct {
	Request core.SignInRequest
}

func (SignInMessage) Type() string { return TypeSignIn }

func (m SignInMessage) Validate() error {
	if strings.TrimSpace(m.Request.Provider) == "" {
		return fmt.Errorf("command: provider id is required")
	}
	if strings.TrimSpace(m.Request.IDToken) == "" && m.Request.TokenProvider == nil {
		return fmt.Errorf("command: an id token or token provider is required")
	}
	return nil
}

type SignOutMessage struct{}

func (SignOutMessage) Type() string { return TypeSignOut }

func (SignOutMessage) Validate() error { return nil }

type RefreshMessage struct {
	Request core.RefreshRequest
}

func (RefreshMessage) Type() string { return TypeRefresh }

// Validate accepts an empty refresh token: some backends key the refresh off
// the session cookie or bearer credential instead.
func (RefreshMessage) Validate() error { return nil }
