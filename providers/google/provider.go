package google

import (
	"github.com/goliatone/go-auth-client/core"
	"github.com/goliatone/go-auth-client/providers"
)

const ProviderID = "google"

type Config struct {
	TokenKey           string
	DefaultCallbackURL string
}

func New(cfg Config) (core.SignInProvider, error) {
	return providers.NewSocialProvider(providers.SocialConfig{
		ID:                 ProviderID,
		TokenKey:           cfg.TokenKey,
		DefaultCallbackURL: cfg.DefaultCallbackURL,
	})
}
