package config

import (
	"fmt"
	"strings"

	"github.com/sharkusmanch/svcwrap/internal/domain"
)

// ServiceConfig is the per-instance configuration read once at startup.
type ServiceConfig struct {
	LogLevel       domain.LogLevel
	WorkDir        string
	Command        string
	Arguments      []string
	LogFile        string
	PushgatewayURL string
}

// Default returns the configuration used when the record is absent.
func Default() ServiceConfig {
	return ServiceConfig{
		LogLevel:       DefaultLogLevel,
		Command:        DefaultCommand,
		Arguments:      DefaultArguments(),
		LogFile:        DefaultLogFile,
		PushgatewayURL: DefaultPushgatewayURL,
	}
}

// Workload returns the command this configuration runs.
func (c ServiceConfig) Workload() domain.Workload {
	return domain.Workload{
		Command: c.Command,
		Args:    append([]string(nil), c.Arguments...),
		LogFile: c.LogFile,
	}
}

// HasWorkDir returns true if a working directory change is configured.
func (c ServiceConfig) HasWorkDir() bool {
	return c.WorkDir != ""
}

// Loader resolves a ServiceConfig from a Store, applying typed defaults.
type Loader struct {
	store Store
}

// NewLoader creates a new configuration loader over store.
func NewLoader(store Store) *Loader {
	return &Loader{store: store}
}

// Load reads the record for identity. Absent values fall back to their
// defaults; only a backend failure is returned, wrapped in domain.ErrConfigBackend.
func (l *Loader) Load(identity string) (ServiceConfig, error) {
	ns := NamespaceFor(identity)
	cfg := Default()

	level, ok, err := l.store.Get(ns, KeyLogLevel)
	if err != nil {
		return ServiceConfig{}, backendError(ns, KeyLogLevel, err)
	}
	if ok {
		cfg.LogLevel = domain.ParseLogLevel(level)
	}

	strs := []struct {
		key string
		dst *string
	}{
		{KeyWorkDir, &cfg.WorkDir},
		{KeyCommand, &cfg.Command},
		{KeyLogFile, &cfg.LogFile},
		{KeyPushgatewayURL, &cfg.PushgatewayURL},
	}
	for _, s := range strs {
		v, ok, err := l.store.Get(ns, s.key)
		if err != nil {
			return ServiceConfig{}, backendError(ns, s.key, err)
		}
		if ok && strings.TrimSpace(v) != "" {
			*s.dst = strings.TrimSpace(v)
		}
	}

	args, ok, err := l.store.GetStrings(ns, KeyArguments)
	if err != nil {
		return ServiceConfig{}, backendError(ns, KeyArguments, err)
	}
	if ok {
		cfg.Arguments = args
	}

	return cfg, nil
}

func backendError(ns Namespace, key string, err error) error {
	return fmt.Errorf("%w: reading %s\\%s: %w", domain.ErrConfigBackend, ns.Path(), key, err)
}
