package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sharkusmanch/svcwrap/internal/domain"
)

func TestIdentityFromArgs(t *testing.T) {
	name, err := IdentityFromArgs([]string{"run-service", "svcfoo"})
	require.NoError(t, err)
	assert.Equal(t, "svcfoo", name)
}

func TestIdentityFromArgs_Invalid(t *testing.T) {
	tests := []struct {
		name string
		argv []string
	}{
		{"empty", nil},
		{"missing name", []string{"run-service"}},
		{"wrong verb", []string{"serve", "svcfoo"}},
		{"extra args", []string{"run-service", "svcfoo", "extra"}},
		{"blank name", []string{"run-service", " "}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := IdentityFromArgs(tt.argv)
			assert.ErrorIs(t, err, domain.ErrInvalidInvocation)
		})
	}
}
