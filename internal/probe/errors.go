package probe

import (
	"errors"

	"github.com/ancients-collective/hostfacts/internal/runner"
)

// Failure categories. None of them crosses the Probe boundary.
var (
	ErrCommandNotInvokable = runner.ErrNotInvokable
	ErrNonZeroExit         = runner.ErrNonZeroExit
	ErrUndecodableOutput   = errors.New("output is not valid UTF-8")
	ErrNoMatchingPattern   = errors.New("no matching pattern")
)

// Category names the failure category of err for logging.
func Category(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNonZeroExit):
		return "non_zero_exit"
	case errors.Is(err, ErrUndecodableOutput):
		return "undecodable_output"
	case errors.Is(err, ErrNoMatchingPattern):
		return "no_matching_pattern"
	default:
		return "command_not_invokable"
	}
}
