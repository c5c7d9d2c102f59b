package executor

import (
	"fmt"

	"github.com/pkg/errors"
)

// ExecutionFailure is returned when a subprocess exited with a non-zero
// code. It carries the fully resolved command line and the exit code so the
// operator sees exactly what failed before the sweep aborts.
type ExecutionFailure struct {
	CommandLine string
	ExitCode    int
}

// Error implements the error interface.
func (e *ExecutionFailure) Error() string {
	return fmt.Sprintf("command %q exited with code %d", e.CommandLine, e.ExitCode)
}

// Run executes the command synchronously: it launches the process, waits
// unconditionally for its termination and checks the exit code. Any non-zero
// exit yields an *ExecutionFailure, which callers must treat as fatal to the
// whole sweep.
func Run(exec Executor, command Command) error {
	handle, err := exec.Execute(command)
	if err != nil {
		return errors.Wrapf(err, "could not launch %q", command.Render())
	}
	defer handle.Clean()

	handle.Wait(0)

	exitCode, err := handle.ExitCode()
	if err != nil {
		return errors.Wrapf(err, "could not read exit code of %q", handle.CommandLine())
	}

	if exitCode != 0 {
		return &ExecutionFailure{
			CommandLine: handle.CommandLine(),
			ExitCode:    exitCode,
		}
	}

	return nil
}
