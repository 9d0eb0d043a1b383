package command

import gocmd "github.com/goliatone/go-command"

var (
	_ gocmd.Commander[SignInMessage]  = (*SignInCommand)(nil)
	_ gocmd.Commander[SignOutMessage] = (*SignOutCommand)(nil)
	_ gocmd.Commander[RefreshMessage] = (*RefreshCommand)(nil)
)
