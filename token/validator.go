package token

// Validator reports whether the current session tokens are usable.
// Decoding and expiry rules belong to the implementation.
type Validator interface {
	AccessTokenValid() bool
	RefreshTokenValid() bool
}
