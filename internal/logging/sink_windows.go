//go:build windows

package logging

import (
	"fmt"

	"golang.org/x/sys/windows/svc/eventlog"
)

// supportedEvents are the event types a source is registered for.
const supportedEvents = eventlog.Error | eventlog.Warning | eventlog.Info

// openSink opens the event log source named after the service.
func openSink(identity string) (Sink, error) {
	l, err := eventlog.Open(identity)
	if err != nil {
		return nil, err
	}
	return l, nil
}

// InstallSource registers identity as an event log source.
func InstallSource(identity string) error {
	if err := eventlog.InstallAsEventCreate(identity, supportedEvents); err != nil {
		return fmt.Errorf("failed to register event log source %s: %w", identity, err)
	}
	return nil
}

// RemoveSource deregisters identity as an event log source.
func RemoveSource(identity string) error {
	if err := eventlog.Remove(identity); err != nil {
		return fmt.Errorf("failed to deregister event log source %s: %w", identity, err)
	}
	return nil
}
