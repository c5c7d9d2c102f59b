package executor

import (
	"os"
	"time"
)

// TaskState is an enum presenting current task state.
type TaskState int

const (
	// RUNNING task state means that task is still running.
	RUNNING TaskState = iota
	// TERMINATED task state means that task completed or stopped.
	TERMINATED
)

// TaskHandle represents a launched process which can be waited for,
// stopped or monitored.
type TaskHandle interface {
	// CommandLine returns the fully resolved command line the process was
	// started with, decorators included.
	CommandLine() string
	// Stop terminates the task.
	Stop() error
	// Status returns the state of the task.
	Status() TaskState
	// ExitCode returns the exit code. If the task is not terminated it
	// returns an error.
	ExitCode() (int, error)
	// StdoutFile returns a file handle to the task's stdout file.
	StdoutFile() (*os.File, error)
	// StderrFile returns a file handle to the task's stderr file.
	StderrFile() (*os.File, error)
	// Wait blocks for task completion. Timeout zero means wait
	// unconditionally. It returns true if the task is terminated.
	Wait(timeout time.Duration) bool
	// Clean closes the task's stdout & stderr files.
	Clean() error
	// EraseOutput removes the task's stderr file and, when stdout was not
	// redirected to a caller-owned artifact, the stdout file as well.
	EraseOutput() error
}
