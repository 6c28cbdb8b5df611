// Package runner executes the small set of system commands the host facts
// probe depends on.
package runner

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// Failure categories returned by Run. Callers match them with errors.Is.
var (
	// ErrNotInvokable means the command could not be started at all: it is not
	// allowlisted, its arguments were rejected, or the binary is missing.
	ErrNotInvokable = errors.New("command not invokable")

	// ErrNonZeroExit means the command ran but reported failure.
	ErrNonZeroExit = errors.New("command exited with non-zero status")

	// ErrTimeout means the configured timeout elapsed before the command exited.
	ErrTimeout = errors.New("command timed out")
)

// Runner runs an external command synchronously and returns its stdout.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// CommandSpec defines the constraints for an allowlisted command.
type CommandSpec struct {
	// Path is the resolved path to the command binary.
	// Resolved at construction time via exec.LookPath, with a hardcoded fallback.
	Path string

	// FallbackPath is the hardcoded path used when LookPath fails.
	FallbackPath string

	// AllowedFlags are the flags that can be passed.
	AllowedFlags []string

	// MaxArgs is the maximum number of positional (non-flag) arguments allowed.
	MaxArgs int
}

// Options configures an AllowlistRunner.
type Options struct {
	// Timeout bounds every command. Zero leaves commands unbounded.
	Timeout time.Duration

	// PathOverrides replaces the resolved binary path for the named commands.
	PathOverrides map[string]string

	// Logger receives debug output. Defaults to the logrus standard logger.
	Logger logrus.FieldLogger
}

// AllowlistRunner executes only pre-approved commands with validated arguments.
// Commands are never run through a shell.
type AllowlistRunner struct {
	allowlist map[string]CommandSpec
	timeout   time.Duration
	log       logrus.FieldLogger
}

type entry struct {
	name            string
	unixFallback    string
	windowsFallback string
	allowedFlags    []string
	maxArgs         int
}

// entries is the default allowlist: one entry per command any probe strategy runs.
var entries = []entry{
	{"hostname", "/bin/hostname", `C:\Windows\System32\hostname.exe`, nil, 0},
	{"scutil", "/usr/sbin/scutil", "", []string{"--get"}, 1},
	{"sysctl", "/usr/sbin/sysctl", "", []string{"-n"}, 1},
	{"system_profiler", "/usr/sbin/system_profiler", "", nil, 1},
	{"lspci", "/usr/bin/lspci", "", []string{"-v"}, 0},
	{"powershell", "/usr/bin/pwsh", `C:\Windows\System32\WindowsPowerShell\v1.0\powershell.exe`,
		[]string{"-NoProfile", "-NonInteractive", "-Command"}, 1},
}

// Commands returns the names of every allowlisted command.
func Commands() []string {
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.name
	}
	return names
}

// resolveCommandPath attempts to find the command using exec.LookPath.
// Falls back to the provided default path if LookPath fails.
func resolveCommandPath(name, fallbackPath string) string {
	if path, err := exec.LookPath(name); err == nil {
		return path
	}
	return fallbackPath
}

// NewAllowlistRunner creates a runner with the default allowlist. Command paths
// are resolved via exec.LookPath at construction time, with hardcoded fallback
// paths for systems where the binary isn't in PATH.
func NewAllowlistRunner(opts Options) *AllowlistRunner {
	log := opts.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}

	allowlist := make(map[string]CommandSpec, len(entries))
	for _, e := range entries {
		fallback := e.unixFallback
		if runtime.GOOS == "windows" {
			fallback = e.windowsFallback
		}
		if fallback == "" {
			fallback = e.name
		}

		path := resolveCommandPath(e.name, fallback)
		if override, ok := opts.PathOverrides[e.name]; ok && override != "" {
			path = override
		}

		allowlist[e.name] = CommandSpec{
			Path:         path,
			FallbackPath: fallback,
			AllowedFlags: e.allowedFlags,
			MaxArgs:      e.maxArgs,
		}
	}

	return &AllowlistRunner{
		allowlist: allowlist,
		timeout:   opts.Timeout,
		log:       log.WithField("package", "runner"),
	}
}

// IsAllowed checks whether a command is in the allowlist.
func (r *AllowlistRunner) IsAllowed(name string) bool {
	_, ok := r.allowlist[name]
	return ok
}

// Spec returns the resolved spec for an allowlisted command.
func (r *AllowlistRunner) Spec(name string) (CommandSpec, bool) {
	spec, ok := r.allowlist[name]
	return spec, ok
}

// Run executes an allowlisted command with validated arguments and returns its
// stdout. Stdout from a failed command is discarded.
func (r *AllowlistRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	spec, ok := r.allowlist[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q not in allowlist", ErrNotInvokable, name)
	}

	if err := validateArgs(spec, args); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrNotInvokable, name, err)
	}

	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	r.log.WithFields(logrus.Fields{"command": name, "path": spec.Path, "args": args}).Debug("Running command")

	cmd := exec.CommandContext(ctx, spec.Path, args...)
	hideWindow(cmd)
	out, err := cmd.Output()

	if ctx.Err() == context.DeadlineExceeded {
		return nil, fmt.Errorf("%w: %s after %v", ErrTimeout, name, r.timeout)
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return nil, fmt.Errorf("%w: %s exited with status %d", ErrNonZeroExit, name, exitErr.ExitCode())
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrNotInvokable, name, err)
	}

	return out, nil
}

// validateArgs checks that all arguments comply with the CommandSpec constraints.
func validateArgs(spec CommandSpec, args []string) error {
	positionalCount := 0

	for _, arg := range args {
		if strings.HasPrefix(arg, "-") {
			if !isAllowedFlag(spec.AllowedFlags, arg) {
				return fmt.Errorf("flag %q not allowed for this command (allowed: %s)",
					arg, strings.Join(spec.AllowedFlags, ", "))
			}
		} else {
			positionalCount++
		}
	}

	if positionalCount > spec.MaxArgs {
		return fmt.Errorf("too many positional arguments: got %d, max %d",
			positionalCount, spec.MaxArgs)
	}

	return nil
}

// isAllowedFlag checks if a flag is in the allowed list.
func isAllowedFlag(allowed []string, flag string) bool {
	for _, f := range allowed {
		if f == flag {
			return true
		}
	}
	return false
}
