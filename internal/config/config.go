package config

import "time"

type Config interface {
	EnvConfig
	CorsConfig
	DataStoreConfig
	SessionConfig
	ProviderConfig
	StorageConfig
}

type EnvConfig interface {
	GetPort() string
	GetAppName() string
	GetBaseURL() string
	GetLogLevel() string
	GetEnv() string
}

type CorsConfig interface {
	GetAllowedOrigins() AllowedOrigins
	GetAllowedMethods() string
	GetAllowedHeaders() string
}

// DataStoreConfig describes the remote table the onboarding profile is written to.
type DataStoreConfig interface {
	GetDataStoreURL() string
	GetDataStoreKey() string
	GetProfileTable() string
}

// SessionConfig describes the two session tokens persisted in the browser.
type SessionConfig interface {
	GetAccessTokenCookie() string
	GetRefreshTokenCookie() string
	GetIdentityCookie() string
	GetAccessTokenSecret() string
	GetTokenLeeway() time.Duration
	GetSessionMaxAge() time.Duration
}

type ProviderConfig interface {
	GetIssuerURL() string
	GetClientID() string
	GetClientSecret() string
	GetRedirectURL() string
	GetScopes() []string
	GetLoginFlowTimeout() time.Duration
}

type StorageConfig interface {
	GetRedisAddr() string
	GetRedisPassword() string
}

type mainConfig struct {
	EnvVars
	Cors
	DataStore
	Session
	Provider
	Storage
}

func New() Config {
	return mainConfig{}
}
