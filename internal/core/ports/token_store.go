package ports

// TokenStore persists the single opaque session credential between runs.
// At most one credential is stored at a time; Set overwrites. Clear followed
// by Get always yields absent.
//
// Subscribe registers a callback invoked whenever credential presence changes
// (login, logout, server-side rejection). The returned func unsubscribes.
type TokenStore interface {
	Set(token string) error
	Get() (token string, ok bool)
	Clear() error
	Subscribe(fn func(present bool)) (unsubscribe func())
}
