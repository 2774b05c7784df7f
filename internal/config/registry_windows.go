//go:build windows

package config

import (
	"errors"
	"fmt"

	"golang.org/x/sys/windows/registry"
)

// RegistryStore reads and writes service parameters under HKEY_LOCAL_MACHINE.
type RegistryStore struct {
	root registry.Key
}

// NewRegistryStore creates a store rooted at HKEY_LOCAL_MACHINE.
func NewRegistryStore() *RegistryStore {
	return &RegistryStore{root: registry.LOCAL_MACHINE}
}

// NewDefaultStore returns the platform's native configuration backend.
func NewDefaultStore() Store {
	return NewRegistryStore()
}

// Get returns a REG_SZ or REG_EXPAND_SZ value; the latter is expanded.
func (s *RegistryStore) Get(ns Namespace, key string) (string, bool, error) {
	k, ok, err := s.open(ns)
	if err != nil || !ok {
		return "", false, err
	}
	defer k.Close()

	v, valType, err := k.GetStringValue(key)
	if errors.Is(err, registry.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}

	if valType == registry.EXPAND_SZ {
		expanded, err := registry.ExpandString(v)
		if err != nil {
			return "", false, fmt.Errorf("failed to expand %s: %w", key, err)
		}
		v = expanded
	}
	return v, true, nil
}

// GetStrings returns a REG_MULTI_SZ value.
func (s *RegistryStore) GetStrings(ns Namespace, key string) ([]string, bool, error) {
	k, ok, err := s.open(ns)
	if err != nil || !ok {
		return nil, false, err
	}
	defer k.Close()

	v, _, err := k.GetStringsValue(key)
	if errors.Is(err, registry.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return v, true, nil
}

// Set writes a REG_SZ value, creating the Parameters key if needed.
func (s *RegistryStore) Set(ns Namespace, key, value string) error {
	k, err := s.create(ns)
	if err != nil {
		return err
	}
	defer k.Close()

	if err := k.SetStringValue(key, value); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}
	return nil
}

// SetStrings writes a REG_MULTI_SZ value, creating the Parameters key if needed.
func (s *RegistryStore) SetStrings(ns Namespace, key string, values []string) error {
	k, err := s.create(ns)
	if err != nil {
		return err
	}
	defer k.Close()

	if err := k.SetStringsValue(key, values); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}
	return nil
}

// open returns ok=false when the namespace does not exist.
func (s *RegistryStore) open(ns Namespace) (registry.Key, bool, error) {
	k, err := registry.OpenKey(s.root, ns.Path(), registry.QUERY_VALUE)
	if errors.Is(err, registry.ErrNotExist) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to open HKLM\\%s: %w", ns.Path(), err)
	}
	return k, true, nil
}

func (s *RegistryStore) create(ns Namespace) (registry.Key, error) {
	k, _, err := registry.CreateKey(s.root, ns.Path(), registry.SET_VALUE)
	if err != nil {
		return 0, fmt.Errorf("failed to create HKLM\\%s: %w", ns.Path(), err)
	}
	return k, nil
}

// Ensure RegistryStore implements Store and Writer.
var (
	_ Store  = (*RegistryStore)(nil)
	_ Writer = (*RegistryStore)(nil)
)
