package devkit

import (
	"context"
	"fmt"
)

// StaticTokenProvider returns a fixed provider token, or a fixed error when
// Err is set.
type StaticTokenProvider struct {
	Key   string
	Token string
	Err   error
}

func (p StaticTokenProvider) TokenKey() string {
	if p.Key == "" {
		return "idToken"
	}
	return p.Key
}

func (p StaticTokenProvider) FetchToken(context.Context) (string, error) {
	if p.Err != nil {
		return "", p.Err
	}
	return p.Token, nil
}

// FailingTokenProvider always fails, simulating a user cancelling the
// platform sign-in flow.
func FailingTokenProvider(reason string) StaticTokenProvider {
	return StaticTokenProvider{Err: fmt.Errorf("devkit: %s", reason)}
}
