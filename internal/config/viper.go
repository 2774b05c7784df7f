package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"sync"

	"github.com/spf13/viper"
)

// ViperStore is a file and environment backed Store.
//
// A record lives under the table [services.<name>.parameters] of a TOML file;
// SVCWRAP_SERVICES_<NAME>_PARAMETERS_<KEY> environment variables override it.
type ViperStore struct {
	v          *viper.Viper
	configPath string

	once    sync.Once
	loadErr error
}

// NewViperStore creates a store reading configPath. An empty path searches
// the default config directory and the working directory for services.toml.
func NewViperStore(configPath string) *ViperStore {
	return &ViperStore{
		v:          viper.New(),
		configPath: configPath,
	}
}

// Get returns a single string value.
func (s *ViperStore) Get(ns Namespace, key string) (string, bool, error) {
	if err := s.load(); err != nil {
		return "", false, err
	}

	k := ns.Key(key)
	if !s.v.IsSet(k) {
		return "", false, nil
	}
	return s.v.GetString(k), true, nil
}

// GetStrings returns a list value. Environment overrides are split on whitespace.
func (s *ViperStore) GetStrings(ns Namespace, key string) ([]string, bool, error) {
	if err := s.load(); err != nil {
		return nil, false, err
	}

	k := ns.Key(key)
	if !s.v.IsSet(k) {
		return nil, false, nil
	}
	return s.v.GetStringSlice(k), true, nil
}

// ConfigFileUsed returns the path of the config file used, if any.
func (s *ViperStore) ConfigFileUsed() string {
	return s.v.ConfigFileUsed()
}

func (s *ViperStore) load() error {
	s.once.Do(func() {
		s.setupEnvBindings()
		s.loadErr = s.loadConfigFile()
	})
	return s.loadErr
}

// setupEnvBindings configures environment variable bindings.
func (s *ViperStore) setupEnvBindings() {
	s.v.SetEnvPrefix(EnvPrefix)
	s.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	s.v.AutomaticEnv()
}

// loadConfigFile reads the backing file. A missing file leaves every key absent.
func (s *ViperStore) loadConfigFile() error {
	if s.configPath != "" {
		s.v.SetConfigFile(s.configPath)
		s.v.SetConfigType("toml")
	} else {
		configDir, err := DefaultConfigDir()
		if err != nil {
			// Can't determine config dir, proceed with environment only
			return nil
		}

		s.v.SetConfigName(strings.TrimSuffix(ConfigFileName, ".toml"))
		s.v.SetConfigType("toml")
		s.v.AddConfigPath(configDir)
		s.v.AddConfigPath(".")
	}

	if err := s.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}

	return nil
}

// Ensure ViperStore implements Store.
var _ Store = (*ViperStore)(nil)
