// Package command exposes the session mutations as go-command messages so
// hosts with a command bus can dispatch them like any other command.
package command

import (
	"context"

	"github.com/goliatone/go-auth-client/core"
	gocmd "github.com/goliatone/go-command"
)

type SessionMutator interface {
	SignIn(ctx context.Context, req core.SignInRequest) (*core.AuthData, error)
	SignOut(ctx context.Context) error
	Refresh(ctx context.Context, req core.RefreshRequest) (*core.AuthData, error)
}

type SignInCommand struct {
	service SessionMutator
}

func NewSignInCommand(service SessionMutator) *SignInCommand {
	return &SignInCommand{service: service}
}

func (c *SignInCommand) Execute(ctx context.Context, msg SignInMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: sign-in service is required")
	}
	out, err := c.service.SignIn(ctx, msg.Request)
	if err != nil {
		return err
	}
	storeResult(ctx, out)
	return nil
}

type SignOutCommand struct {
	service SessionMutator
}

func NewSignOutCommand(service SessionMutator) *SignOutCommand {
	return &SignOutCommand{service: service}
}

func (c *SignOutCommand) Execute(ctx context.Context, _ SignOutMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: sign-out service is required")
	}
	return c.service.SignOut(ctx)
}

type RefreshCommand struct {
	service SessionMutator
}

func NewRefreshCommand(service SessionMutator) *RefreshCommand {
	return &RefreshCommand{service: service}
}

func (c *RefreshCommand) Execute(ctx context.Context, msg RefreshMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: refresh service is required")
	}
	out, err := c.service.Refresh(ctx, msg.Request)
	if err != nil {
		return err
	}
	storeResult(ctx, out)
	return nil
}

func storeResult[T any](ctx context.Context, value T) {
	collector := gocmd.ResultFromContext[T](ctx)
	if collector == nil {
		return
	}
	collector.Store(value)
}
