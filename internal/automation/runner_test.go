//go:build unix

package automation

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// shRunner runs scripts with /bin/sh -c so the tests work without osascript
func shRunner(timeout time.Duration) *Runner {
	return NewRunner(RunnerConfig{
		Interpreter: "/bin/sh",
		ScriptFlag:  "-c",
		Compiler:    "/bin/sh",
		Timeout:     timeout,
	}, nil)
}

func TestRunner_Defaults(t *testing.T) {
	r := NewRunner(RunnerConfig{}, nil)
	assert.Equal(t, "osascript", r.cfg.Interpreter)
	assert.Equal(t, "-e", r.cfg.ScriptFlag)
	assert.Equal(t, "osacompile", r.cfg.Compiler)
	assert.Equal(t, 30*time.Second, r.cfg.Timeout)
	assert.Equal(t, 10*time.Second, r.cfg.CompileTimeout)
}

func TestRunner_Success(t *testing.T) {
	r := shRunner(5 * time.Second)

	res, err := r.Execute(context.Background(), Invocation{Script: `printf '3\n\n  '`})
	require.NoError(t, err)
	assert.Equal(t, "3", res.Stdout)
	assert.Equal(t, 0, res.ExitCode)
}

func TestRunner_NonZeroExitIsClassified(t *testing.T) {
	r := shRunner(5 * time.Second)

	res, err := r.Execute(context.Background(), Invocation{
		Script: `echo "Keynote got an error: not allowed" >&2; exit 1`,
	})
	require.Error(t, err)
	require.NotNil(t, res)
	assert.Equal(t, 1, res.ExitCode)

	var ce *ClassifiedError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, KindApplication, ce.Kind)
}

func TestRunner_NonZeroExitWithoutStderr(t *testing.T) {
	r := shRunner(5 * time.Second)

	_, err := r.Execute(context.Background(), Invocation{Script: `exit 3`})

	var ce *ClassifiedError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, KindUnknown, ce.Kind)
	assert.Contains(t, ce.Message, "status 3")
}

func TestRunner_TimeoutKillsAndReaps(t *testing.T) {
	r := shRunner(200 * time.Millisecond)

	start := time.Now()
	_, err := r.Execute(context.Background(), Invocation{Script: `sleep 10`})
	elapsed := time.Since(start)

	var te *TimeoutError
	require.True(t, errors.As(err, &te), "expected TimeoutError, got %v", err)
	assert.Equal(t, 200*time.Millisecond, te.Timeout)
	assert.Less(t, elapsed, 200*time.Millisecond+reapDelay)

	// The process was waited for, so the pid no longer exists
	require.NotZero(t, te.PID)
	assert.ErrorIs(t, syscall.Kill(te.PID, 0), syscall.ESRCH)
}

func TestRunner_InvocationTimeoutOverridesDefault(t *testing.T) {
	r := shRunner(10 * time.Second)

	_, err := r.Execute(context.Background(), Invocation{Script: `sleep 5`, Timeout: 100 * time.Millisecond})

	var te *TimeoutError
	require.True(t, errors.As(err, &te))
	assert.Equal(t, 100*time.Millisecond, te.Timeout)
}

func TestRunner_CallerDeadlineReportsElapsed(t *testing.T) {
	r := shRunner(10 * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	_, err := r.Execute(ctx, Invocation{Script: `sleep 5`})

	var te *TimeoutError
	require.True(t, errors.As(err, &te), "expected TimeoutError, got %v", err)
	assert.GreaterOrEqual(t, te.Timeout, 100*time.Millisecond)
	assert.Less(t, te.Timeout, 10*time.Second)
	assert.NotContains(t, te.Error(), "10s")
}

func TestRunner_Cancelled(t *testing.T) {
	r := shRunner(10 * time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(100 * time.Millisecond)
		cancel()
	}()

	_, err := r.Execute(ctx, Invocation{Script: `sleep 5`})

	var ae *AutomationError
	require.True(t, errors.As(err, &ae))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunner_SpawnFailure(t *testing.T) {
	r := NewRunner(RunnerConfig{Interpreter: "/nonexistent/osascript"}, nil)

	res, err := r.Execute(context.Background(), Invocation{Script: "return 1"})
	assert.Nil(t, res)

	var ae *AutomationError
	require.True(t, errors.As(err, &ae))
	assert.Contains(t, ae.Op, "start")
}

func TestRunner_Compile(t *testing.T) {
	// "sh -o errexit" reads commands from stdin, standing in for osacompile -o
	r := NewRunner(RunnerConfig{Compiler: "/bin/sh"}, nil)
	out := filepath.Join(t.TempDir(), "probe.txt")

	err := r.Compile(context.Background(), "echo compiled > "+out, "errexit")
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "compiled\n", string(data))
}

func TestRunner_CompileFailure(t *testing.T) {
	r := NewRunner(RunnerConfig{Compiler: "/bin/sh"}, nil)

	err := r.Compile(context.Background(), "echo bad >&2; exit 2", "errexit")

	var ae *AutomationError
	require.True(t, errors.As(err, &ae))
	assert.Contains(t, err.Error(), "bad")
}
