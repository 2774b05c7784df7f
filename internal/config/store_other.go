//go:build !windows

package config

// NewDefaultStore returns the platform's native configuration backend.
func NewDefaultStore() Store {
	return NewViperStore("")
}
