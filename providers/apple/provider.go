package apple

import (
	"github.com/goliatone/go-auth-client/core"
	"github.com/goliatone/go-auth-client/providers"
)

const ProviderID = "apple"

type Config struct {
	DefaultCallbackURL string
}

// New builds the Apple provider. Apple's backend rejects the legacy flat
// token shape, so only the enveloped candidate is ever produced.
func New(cfg Config) (core.SignInProvider, error) {
	return providers.NewSocialProvider(providers.SocialConfig{
		ID:                 ProviderID,
		EnvelopedOnly:      true,
		DefaultCallbackURL: cfg.DefaultCallbackURL,
	})
}
