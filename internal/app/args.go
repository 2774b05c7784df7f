package app

import (
	"fmt"
	"strings"

	"github.com/sharkusmanch/svcwrap/internal/domain"
)

// IdentityFromArgs extracts the service identity from launch arguments of
// the form "run-service <name>".
func IdentityFromArgs(argv []string) (string, error) {
	if len(argv) != 2 || argv[0] != domain.RunServiceCommand {
		return "", fmt.Errorf("%w: expected %q <name>, got %q",
			domain.ErrInvalidInvocation, domain.RunServiceCommand, strings.Join(argv, " "))
	}
	name := strings.TrimSpace(argv[1])
	if name == "" {
		return "", fmt.Errorf("%w: empty service name", domain.ErrInvalidInvocation)
	}
	return name, nil
}
