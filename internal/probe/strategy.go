package probe

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/ancients-collective/hostfacts/internal/runner"
	"github.com/ancients-collective/hostfacts/internal/types"
)

// DefaultMeminfoPath is the kernel memory statistics pseudo-file read on Linux.
const DefaultMeminfoPath = "/proc/meminfo"

// Options configures the strategy returned by NewStrategy.
type Options struct {
	// Runner executes system commands. Required for every family but Unknown.
	Runner runner.Runner

	// MeminfoPath overrides DefaultMeminfoPath.
	MeminfoPath string
}

// NewStrategy returns the strategy for the given OS family. Unrecognized
// families get the Unknown strategy.
func NewStrategy(family types.OSFamily, opts Options) Strategy {
	switch family {
	case types.FamilyWindows:
		return &windowsStrategy{run: opts.Runner}
	case types.FamilyMacOS:
		return &macStrategy{run: opts.Runner}
	case types.FamilyLinux:
		path := opts.MeminfoPath
		if path == "" {
			path = DefaultMeminfoPath
		}
		return &linuxStrategy{run: opts.Runner, meminfoPath: path}
	default:
		return unknownStrategy{}
	}
}

// runText runs a command and returns its stdout as text.
func runText(ctx context.Context, r runner.Runner, name string, args ...string) (string, error) {
	out, err := r.Run(ctx, name, args...)
	if err != nil {
		if errors.Is(err, runner.ErrTimeout) {
			return "", fmt.Errorf("%w: %w", ErrCommandNotInvokable, err)
		}
		return "", err
	}
	return decode(name, out)
}

// decode rejects output that is not valid UTF-8.
func decode(source string, out []byte) (string, error) {
	if !utf8.Valid(out) {
		return "", fmt.Errorf("%w: %s", ErrUndecodableOutput, source)
	}
	return string(out), nil
}
