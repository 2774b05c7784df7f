//go:build !windows

package config

const (
	DefaultCommand = "/bin/sh"
	DefaultLogFile = "/tmp/service.log"
)

var defaultArguments = []string{"/tmp/service.sh"}
