package config

import "time"

type Session struct{}

var _ SessionConfig = Session{}

func (Session) GetAccessTokenCookie() string {
	return GetEnv("ACCESS_TOKEN_COOKIE", "supabase-access-token")
}

func (Session) GetRefreshTokenCookie() string {
	return GetEnv("REFRESH_TOKEN_COOKIE", "supabase-refresh-token")
}

func (Session) GetIdentityCookie() string {
	return GetEnv("IDENTITY_COOKIE", "provider-id-token")
}

// GetAccessTokenSecret returns the HS256 secret access tokens are signed with.
// When empty only expiry is checked and signature checks are left to the data store.
// Only set it when the provider issues data store tokens; RS256 or opaque provider tokens
// never verify against it and every submission would be skipped.
func (Session) GetAccessTokenSecret() string {
	return GetEnv("SUPABASE_JWT_SECRET", "")
}

func (Session) GetTokenLeeway() time.Duration {
	return 30 * time.Second
}

func (Session) GetSessionMaxAge() time.Duration {
	return 7 * 24 * time.Hour // matches the refresh token lifetime
}
