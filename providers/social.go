// Package providers builds the ordered candidate request shapes for each
// identity provider.
package providers

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-auth-client/core"
)

const defaultTokenKey = "idToken"

// SocialConfig describes how a provider's sign-in bodies are shaped.
// EnvelopedOnly providers skip the legacy flat shape entirely; everyone else
// tries flat first and falls back to the enveloped shape.
type SocialConfig struct {
	ID                 string
	TokenKey           string
	EnvelopedOnly      bool
	DefaultCallbackURL string
}

type SocialProvider struct {
	cfg SocialConfig
}

func NewSocialProvider(cfg SocialConfig) (*SocialProvider, error) {
	cfg.ID = strings.TrimSpace(strings.ToLower(cfg.ID))
	if cfg.ID == "" {
		return nil, fmt.Errorf("providers: provider id is required")
	}
	if strings.TrimSpace(cfg.TokenKey) == "" {
		cfg.TokenKey = defaultTokenKey
	}
	return &SocialProvider{cfg: cfg}, nil
}

func (p *SocialProvider) ID() string {
	if p == nil {
		return ""
	}
	return p.cfg.ID
}

func (p *SocialProvider) Candidates(token string, opts core.SignInOptions) []core.SignInCandidate {
	if p == nil {
		return nil
	}
	callbackURL := strings.TrimSpace(opts.CallbackURL)
	if callbackURL == "" {
		callbackURL = p.cfg.DefaultCallbackURL
	}

	enveloped := core.SignInCandidate{
		Kind: core.CandidateKindEnveloped,
		Enveloped: core.EnvelopedSignInBody{
			Provider: p.cfg.ID,
			IDToken: core.IDTokenPayload{
				Token:       token,
				Nonce:       opts.Nonce,
				AccessToken: opts.AccessToken,
			},
			CallbackURL: callbackURL,
		},
	}
	if opts.DisableRedirect {
		disabled := true
		enveloped.Enveloped.DisableRedirect = &disabled
	}

	if p.cfg.EnvelopedOnly {
		return []core.SignInCandidate{enveloped}
	}

	flat := core.SignInCandidate{
		Kind: core.CandidateKindFlat,
		Flat: core.FlatSignInBody{
			Provider:        p.cfg.ID,
			TokenKey:        p.cfg.TokenKey,
			Token:           token,
			DisableRedirect: opts.DisableRedirect,
			CallbackURL:     callbackURL,
		},
	}
	return []core.SignInCandidate{flat, enveloped}
}

var _ core.SignInProvider = (*SocialProvider)(nil)
