package authclient

import (
	"fmt"

	authcommand "github.com/goliatone/go-auth-client/command"
	authquery "github.com/goliatone/go-auth-client/query"
)

// SessionService is what a client must expose to be driven through the
// command/query facade.
type SessionService interface {
	authcommand.SessionMutator
	authquery.SessionReader
}

type Commands struct {
	SignIn  *authcommand.SignInCommand
	SignOut *authcommand.SignOutCommand
	Refresh *authcommand.RefreshCommand
}

type Queries struct {
	GetSession  *authquery.GetSessionQuery
	StoredToken *authquery.StoredTokenQuery
}

// Facade packages the client's operations as go-command handlers for hosts
// that dispatch through a command bus.
type Facade struct {
	service  SessionService
	commands Commands
	queries  Queries
}

func NewFacade(service SessionService) (*Facade, error) {
	if service == nil {
		return nil, fmt.Errorf("authclient: session service is required")
	}
	return &Facade{
		service: service,
		commands: Commands{
			SignIn:  authcommand.NewSignInCommand(service),
			SignOut: authcommand.NewSignOutCommand(service),
			Refresh: authcommand.NewRefreshCommand(service),
		},
		queries: Queries{
			GetSession:  authquery.NewGetSessionQuery(service),
			StoredToken: authquery.NewStoredTokenQuery(service),
		},
	}, nil
}

func (f *Facade) Commands() Commands {
	if f == nil {
		return Commands{}
	}
	return f.commands
}

func (f *Facade) Queries() Queries {
	if f == nil {
		return Queries{}
	}
	return f.queries
}

func (f *Facade) Service() SessionService {
	if f == nil {
		return nil
	}
	return f.service
}

var _ SessionService = (*Client)(nil)
