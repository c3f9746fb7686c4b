package errors

import (
	"errors"
	"fmt"

	"github.com/victorstack-ai/wp-wowrevenue-authz-guard/pkg/shared"
)

// CommandError represents an error that occurred during command execution, storing the exit code to report.
type CommandError struct {
	ExitCode    int
	CommonError string
}

// Error implements the error interface, returning the message from the common error.
func (e *CommandError) Error() string {
	return e.CommonError
}

// NewCommandError creates a new CommandError instance for the failed command.
func NewCommandError(err error, code int) *CommandError {
	return &CommandError{
		ExitCode:    code,
		CommonError: err.Error(),
	}
}

// VerdictError carries a completed scan's risk verdict up to the process exit code.
// It is not a failure and is never printed as one.
type VerdictError struct {
	ExitCode int
	Verdict  string
}

func (e *VerdictError) Error() string {
	return fmt.Sprintf("scan verdict: %s", e.Verdict)
}

// NewHighRiskVerdict returns the verdict error reported for a high risk scan.
func NewHighRiskVerdict() *VerdictError {
	return &VerdictError{
		ExitCode: shared.ExitHighRisk,
		Verdict:  shared.VerdictHighRisk,
	}
}

// ExitCode maps an error returned by a command to the process exit code.
func ExitCode(err error) int {
	if err == nil {
		return shared.ExitLowerRisk
	}

	var verdictErr *VerdictError
	if errors.As(err, &verdictErr) {
		return verdictErr.ExitCode
	}

	var cmdErr *CommandError
	if errors.As(err, &cmdErr) {
		return cmdErr.ExitCode
	}
	return shared.ExitFailure
}

// IsVerdict reports whether err only carries a scan verdict.
func IsVerdict(err error) bool {
	var verdictErr *VerdictError
	return errors.As(err, &verdictErr)
}
