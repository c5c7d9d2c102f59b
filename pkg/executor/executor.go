// Package executor is responsible for launching external processes for the
// sweep. It renders structured command descriptors, applies the configured
// isolation decorators and gives back a handle to wait for termination and
// inspect the exit code.
package executor

// Executor is responsible for creating an execution environment for a given
// command. It returns a TaskHandle when the process started gracefully.
// The process runs asynchronously; use Run for the blocking
// execute-and-check pattern the sweep is built on.
type Executor interface {
	// Execute launches the described command on the underlying platform.
	Execute(command Command) (TaskHandle, error)
	// Name returns user-friendly name of the executor.
	Name() string
}
