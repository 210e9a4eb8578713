package capability

import (
	"errors"
	"fmt"
)

var (
	ErrProviderNotRegistered = errors.New("CAP_NOT_REGISTERED: provider is not registered")
	ErrProviderUnavailable   = errors.New("CAP_UNAVAILABLE: provider reported unavailable")
	ErrActivationFailed      = errors.New("CAP_ACTIVATION_FAILED: provider activation failed")
	ErrInstallCancelled      = errors.New("INS_CANCELLED: install cancelled by user")
	// ErrProbeFailed marks a platform probe that raised instead of
	// returning a negative result. Callers treat it as "probe says
	// unavailable", never as fatal.
	ErrProbeFailed = errors.New("PLT_PROBE_FAILED: platform probe failed")
)

// CommandError reports a non-zero exit from an automatic install
// command. Spawn failures are plain errors, not CommandErrors.
type CommandError struct {
	ExitCode int
	Stderr   string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("INS_COMMAND_FAILED: exit %d: %s", e.ExitCode, e.Stderr)
}
