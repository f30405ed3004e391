package automation

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"time"

	"keynote-mcp/internal/logger"
)

const (
	// DefaultTimeout bounds a single script run
	DefaultTimeout = 30 * time.Second
	// DefaultCompileTimeout bounds an osacompile run
	DefaultCompileTimeout = 10 * time.Second

	// reapDelay is how long Wait may block on output pipes after the
	// process group was killed
	reapDelay = 2 * time.Second
)

// Invocation is one fully rendered script plus its execution bound
type Invocation struct {
	Script  string
	Timeout time.Duration
}

// Result is the raw outcome of one interpreter run
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
	Duration time.Duration
}

// Executor runs automation scripts.
//
// Implementations must spawn at most one process per call and must never
// retry: Keynote side effects are not idempotent, so re-running a script
// after a failure or timeout could apply it twice (e.g. duplicate a slide
// twice). A failed call is reported to the caller, who decides.
type Executor interface {
	Execute(ctx context.Context, inv Invocation) (*Result, error)
}

// RunnerConfig configures the interpreter subprocess
type RunnerConfig struct {
	Interpreter    string        // default "osascript"
	ScriptFlag     string        // default "-e"
	Compiler       string        // default "osacompile"
	Timeout        time.Duration // default DefaultTimeout
	CompileTimeout time.Duration // default DefaultCompileTimeout
}

// Runner executes scripts with osascript
type Runner struct {
	cfg    RunnerConfig
	logger *logger.Logger
}

// NewRunner creates a Runner, filling unset config with defaults
func NewRunner(cfg RunnerConfig, log *logger.Logger) *Runner {
	if cfg.Interpreter == "" {
		cfg.Interpreter = "osascript"
	}
	if cfg.ScriptFlag == "" {
		cfg.ScriptFlag = "-e"
	}
	if cfg.Compiler == "" {
		cfg.Compiler = "osacompile"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.CompileTimeout <= 0 {
		cfg.CompileTimeout = DefaultCompileTimeout
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Runner{cfg: cfg, logger: log}
}

// Execute runs the script once. Errors are *AutomationError when the
// interpreter cannot be started, *TimeoutError when the bound is exceeded and
// *ClassifiedError when the interpreter exits non-zero.
func (r *Runner) Execute(ctx context.Context, inv Invocation) (*Result, error) {
	timeout := inv.Timeout
	if timeout <= 0 {
		timeout = r.cfg.Timeout
	}

	r.logger.Debug("running script (%d bytes, timeout %s)", len(inv.Script), timeout)

	res, err := r.run(ctx, timeout, nil, r.cfg.Interpreter, r.cfg.ScriptFlag, inv.Script)
	if err != nil {
		return res, err
	}

	if res.ExitCode != 0 {
		if classified, ok := Classify(res.Stderr); ok {
			return res, classified
		}
		return res, &ClassifiedError{
			Kind:    KindUnknown,
			Message: fmt.Sprintf("%s: interpreter exited with status %d", KindUnknown.Label(), res.ExitCode),
		}
	}

	res.Stdout = strings.TrimRight(res.Stdout, " \t\r\n")
	return res, nil
}

// Compile compiles script source into a .scpt file at outputPath
func (r *Runner) Compile(ctx context.Context, source, outputPath string) error {
	res, err := r.run(ctx, r.cfg.CompileTimeout, strings.NewReader(source), r.cfg.Compiler, "-o", outputPath)
	if err != nil {
		return err
	}
	if res.ExitCode != 0 {
		return &AutomationError{
			Op:  "compile script",
			Err: errors.New(strings.TrimSpace(res.Stderr)),
		}
	}
	return nil
}

// run owns the process for its whole lifetime: whatever path leaves this
// function, the process has been waited for. On timeout or cancellation the
// process group is killed first.
func (r *Runner) run(ctx context.Context, timeout time.Duration, stdin io.Reader, name string, args ...string) (*Result, error) {
	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(runCtx, name, args...)
	cmd.Stdin = stdin
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.WaitDelay = reapDelay
	configureProcess(cmd)

	start := time.Now()
	if err := cmd.Start(); err != nil {
		return nil, &AutomationError{Op: "start " + name, Err: err}
	}
	pid := cmd.Process.Pid

	waitErr := cmd.Wait()

	res := &Result{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		ExitCode: -1,
		Duration: time.Since(start),
	}
	if cmd.ProcessState != nil {
		res.ExitCode = cmd.ProcessState.ExitCode()
	}

	switch {
	case errors.Is(ctx.Err(), context.Canceled):
		r.logger.Warn("script cancelled after %s (pid %d)", res.Duration, pid)
		return res, &AutomationError{Op: "run " + name, Err: ctx.Err()}
	case errors.Is(runCtx.Err(), context.DeadlineExceeded):
		r.logger.Warn("script timed out after %s (pid %d killed)", res.Duration, pid)
		bound := timeout
		if ctx.Err() != nil {
			// the caller's deadline fired before ours
			bound = res.Duration.Round(time.Millisecond)
		}
		return res, &TimeoutError{Timeout: bound, PID: pid}
	}

	if waitErr != nil {
		var exitErr *exec.ExitError
		if !errors.As(waitErr, &exitErr) {
			return res, &AutomationError{Op: "wait " + name, Err: waitErr}
		}
	}

	r.logger.Debug("script finished in %s with status %d", res.Duration, res.ExitCode)
	return res, nil
}
