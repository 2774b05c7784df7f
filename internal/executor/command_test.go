package executor

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sharkusmanch/svcwrap/internal/domain"
)

// TestHelperProcess is the child process spawned by the tests below.
func TestHelperProcess(t *testing.T) {
	if os.Getenv("SVCWRAP_WANT_HELPER_PROCESS") != "1" {
		return
	}

	args := os.Args
	for len(args) > 0 && args[0] != "--" {
		args = args[1:]
	}
	mode := ""
	if len(args) > 1 {
		mode = args[1]
	}

	fmt.Fprintln(os.Stdout, "hello stdout")
	fmt.Fprintln(os.Stderr, "hello stderr")

	switch mode {
	case "fail":
		os.Exit(3)
	default:
		os.Exit(0)
	}
}

func helperWorkload(logFile, mode string) domain.Workload {
	return domain.Workload{
		Command: os.Args[0],
		Args:    []string{"-test.run=TestHelperProcess", "--", mode},
		LogFile: logFile,
	}
}

func helperExecutor() *CommandExecutor {
	return NewCommandExecutor(WithEnv(map[string]string{"SVCWRAP_WANT_HELPER_PROCESS": "1"}))
}

func TestCommandExecutor_Execute_Success(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "service.log")

	result := helperExecutor().Execute(context.Background(), helperWorkload(logFile, "ok"))

	require.NotNil(t, result)
	assert.True(t, result.Success)
	assert.Equal(t, 0, result.ExitCode)
	assert.Empty(t, result.Error)
	assert.False(t, result.EndTime.Before(result.StartTime))

	data, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello stdout")
	assert.Contains(t, string(data), "hello stderr")
}

func TestCommandExecutor_Execute_AppendsAcrossRuns(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "service.log")
	require.NoError(t, os.WriteFile(logFile, []byte("previous run\n"), 0644))

	e := helperExecutor()
	e.Execute(context.Background(), helperWorkload(logFile, "ok"))
	e.Execute(context.Background(), helperWorkload(logFile, "ok"))

	data, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "previous run\n")
	assert.Equal(t, 2, strings.Count(string(data), "hello stdout"))
}

func TestCommandExecutor_Execute_NonZeroExit(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "service.log")

	result := helperExecutor().Execute(context.Background(), helperWorkload(logFile, "fail"))

	assert.False(t, result.Success)
	assert.Equal(t, 3, result.ExitCode)
	assert.Contains(t, result.Error, domain.ErrWorkloadExecution.Error())
}

func TestCommandExecutor_Execute_SpawnFailure(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "service.log")
	w := domain.Workload{
		Command: filepath.Join(t.TempDir(), "does-not-exist"),
		LogFile: logFile,
	}

	result := NewCommandExecutor().Execute(context.Background(), w)

	assert.False(t, result.Success)
	assert.Equal(t, -1, result.ExitCode)
	assert.NotEmpty(t, result.Error)

	// The log file is still created even though nothing ran.
	_, err := os.Stat(logFile)
	assert.NoError(t, err)
}

func TestCommandExecutor_Execute_LogFileUnavailable(t *testing.T) {
	spawned := 0
	e := NewCommandExecutor()
	e.command = func(ctx context.Context, name string, args ...string) *exec.Cmd {
		spawned++
		return exec.CommandContext(ctx, name, args...)
	}

	logFile := filepath.Join(t.TempDir(), "missing-dir", "service.log")
	result := e.Execute(context.Background(), helperWorkload(logFile, "ok"))

	assert.False(t, result.Success)
	assert.Equal(t, -1, result.ExitCode)
	assert.Contains(t, result.Error, "opening log file")
	assert.Equal(t, 0, spawned)
}

func TestMockExecutor_RecordsWorkloads(t *testing.T) {
	m := &MockExecutor{}
	w := domain.Workload{Command: "cmd", LogFile: "log"}

	result := m.Execute(context.Background(), w)

	assert.True(t, result.Success)
	assert.Equal(t, []domain.Workload{w}, m.Workloads())
}
