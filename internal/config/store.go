package config

import (
	"strings"
)

const (
	servicesRoot  = `SYSTEM\CurrentControlSet\Services`
	parametersKey = "Parameters"
)

// Namespace addresses the configuration record of one service.
type Namespace struct {
	Service string
}

// NamespaceFor returns the namespace holding identity's parameters.
func NamespaceFor(identity string) Namespace {
	return Namespace{Service: identity}
}

// Path returns the registry-style path of the record relative to HKLM.
func (n Namespace) Path() string {
	return servicesRoot + `\` + n.Service + `\` + parametersKey
}

// Key returns the dotted key of a value for hierarchical key/value backends.
func (n Namespace) Key(name string) string {
	return strings.ToLower("services." + n.Service + "." + parametersKey + "." + name)
}

// Store reads values from a configuration backend.
// The boolean result reports whether the value is present. A non-nil error
// means the backend itself failed; a missing namespace or value is not an error.
type Store interface {
	Get(ns Namespace, key string) (string, bool, error)
	GetStrings(ns Namespace, key string) ([]string, bool, error)
}

// Writer persists values into a configuration backend.
type Writer interface {
	Set(ns Namespace, key, value string) error
	SetStrings(ns Namespace, key string, values []string) error
}
