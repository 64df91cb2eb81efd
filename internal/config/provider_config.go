package config

import (
	"strings"
	"time"
)

type Provider struct{}

var _ ProviderConfig = Provider{}

func (Provider) GetIssuerURL() string {
	return GetEnv("OIDC_ISSUER_URL", "")
}

func (Provider) GetClientID() string {
	return GetEnv("OIDC_CLIENT_ID", "")
}

func (Provider) GetClientSecret() string {
	return GetEnv("OIDC_CLIENT_SECRET", "")
}

func (Provider) GetRedirectURL() string {
	return EnvVars{}.GetBaseURL() + "/callback"
}

func (Provider) GetScopes() []string {
	return strings.Fields(GetEnv("OIDC_SCOPES", "openid profile email phone offline_access"))
}

func (Provider) GetLoginFlowTimeout() time.Duration {
	return 10 * time.Minute
}
