// Package tokens reads and clears the two session tokens the browser persists.
package tokens

// Name identifies one of the persisted session tokens.
type Name string

const (
	Access  Name = "access"
	Refresh Name = "refresh"
)

// Store is the persisted key-value storage holding the session tokens.
// It performs no validation of the values it returns.
type Store interface {
	Get(name Name) (string, bool)
	Set(name Name, value string, maxAge int) error
	Clear(name Name)
}

// ClearAll removes both session tokens.
func ClearAll(s Store) {
	s.Clear(Access)
	s.Clear(Refresh)
}
