package executor

import (
	"os"
	"os/exec"
	"syscall"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/liam0215/mixgraph-experiment-tools/pkg/isolation"
)

// Local is responsible for providing the execution environment on the local
// machine via exec.Command. Every command is wrapped with the configured
// isolation decorators before launch.
type Local struct {
	decorators isolation.Decorators
}

// NewLocal returns a Local instance without any decorators.
func NewLocal() Local {
	return Local{}
}

// NewLocalIsolated returns a Local instance wrapping every command with the
// given decorators.
func NewLocalIsolated(decorators ...isolation.Decorator) Local {
	return Local{decorators: isolation.Decorators(decorators)}
}

// Name returns user-friendly name of the executor.
func (l Local) Name() string {
	return "Local Executor"
}

// Execute renders and runs the command given as input.
// The returned TaskHandle is able to stop & monitor the provisioned process.
func (l Local) Execute(command Command) (TaskHandle, error) {
	commandLine := l.decorators.Decorate(command.Render())

	// The fully resolved command line is logged before execution for
	// operator traceability.
	log.Infof("Executing %q", commandLine)

	var stdoutFile *os.File
	var err error
	stdoutIsArtifact := command.StdoutPath != ""
	if stdoutIsArtifact {
		stdoutFile, err = os.Create(command.StdoutPath)
		if err != nil {
			return nil, errors.Wrapf(err, "could not create output file %q", command.StdoutPath)
		}
	} else {
		stdoutFile, err = os.CreateTemp("", "dbsweep_stdout_")
		if err != nil {
			return nil, errors.Wrap(err, "could not create stdout file")
		}
	}

	stderrFile, err := os.CreateTemp("", "dbsweep_stderr_")
	if err != nil {
		return nil, errors.Wrap(err, "could not create stderr file")
	}

	cmd := exec.Command("sh", "-c", commandLine)
	// It is important to set an additional process group ID for the parent
	// process and its children to be able to kill the whole tree.
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	cmd.Stdout = stdoutFile
	cmd.Stderr = stderrFile

	err = cmd.Start()
	if err != nil {
		return nil, errors.Wrapf(err, "could not start %q", commandLine)
	}

	log.Debugf("Started %q with pid %d", commandLine, cmd.Process.Pid)

	statusChannel := make(chan int, 1)

	// Wait for the local task in a goroutine.
	go func() {
		// Wait() returns an error on non-zero exit; the exit code is read
		// from the process state in either case.
		cmd.Wait()

		var exitCode int
		waitStatus := cmd.ProcessState.Sys().(syscall.WaitStatus)
		if waitStatus.Exited() {
			exitCode = waitStatus.ExitStatus()
		} else {
			// Termination by signal is reported as a negative code.
			exitCode = -int(waitStatus.Signal())
		}

		stdoutFile.Sync()

		log.Debugf("Ended %q with exit code %d; stdout in %q, stderr in %q",
			commandLine, exitCode, stdoutFile.Name(), stderrFile.Name())

		statusChannel <- exitCode
	}()

	return &localTaskHandle{
		commandLine:      commandLine,
		pid:              cmd.Process.Pid,
		statusChannel:    statusChannel,
		stdoutFile:       stdoutFile,
		stderrFile:       stderrFile,
		stdoutIsArtifact: stdoutIsArtifact,
	}, nil
}

// localTaskHandle implements the TaskHandle interface for processes started
// by the Local executor.
type localTaskHandle struct {
	commandLine      string
	pid              int
	statusChannel    chan int
	terminated       bool
	exitCode         int
	stdoutFile       *os.File
	stderrFile       *os.File
	stdoutIsArtifact bool
}

// CommandLine returns the fully resolved command line.
func (task *localTaskHandle) CommandLine() string {
	return task.commandLine
}

// Status returns the state of the task.
func (task *localTaskHandle) Status() TaskState {
	if !task.terminated {
		return RUNNING
	}
	return TERMINATED
}

// ExitCode returns the exit code. It is only allowed to use this method when
// the task is terminated.
func (task *localTaskHandle) ExitCode() (int, error) {
	if !task.terminated {
		return 0, errors.New("task is not terminated")
	}
	return task.exitCode, nil
}

// StdoutFile returns a file handle to the task's stdout file.
func (task *localTaskHandle) StdoutFile() (*os.File, error) {
	if _, err := task.stdoutFile.Seek(0, 0); err != nil {
		return nil, errors.Wrap(err, "could not rewind stdout file")
	}
	return task.stdoutFile, nil
}

// StderrFile returns a file handle to the task's stderr file.
func (task *localTaskHandle) StderrFile() (*os.File, error) {
	if _, err := task.stderrFile.Seek(0, 0); err != nil {
		return nil, errors.Wrap(err, "could not rewind stderr file")
	}
	return task.stderrFile, nil
}

func (task *localTaskHandle) completeTask(exitCode int) {
	task.terminated = true
	task.exitCode = exitCode
}

// Stop terminates the task.
func (task *localTaskHandle) Stop() error {
	if task.terminated {
		return nil
	}

	// We signal the entire process group. The kill syscall interprets a
	// negated PID N as the process group N belongs to.
	log.Debugf("Sending SIGTERM to process group %d", task.pid)
	if err := syscall.Kill(-task.pid, syscall.SIGTERM); err != nil {
		return errors.Wrapf(err, "could not stop %q", task.commandLine)
	}

	task.completeTask(<-task.statusChannel)
	return nil
}

// Wait blocks until the process is terminated or the timeout elapsed.
// Timeout zero means wait unconditionally, which is how the sweep waits for
// multi-hour benchmark runs.
func (task *localTaskHandle) Wait(timeout time.Duration) bool {
	if task.terminated {
		return true
	}

	if timeout == 0 {
		task.completeTask(<-task.statusChannel)
		return true
	}

	select {
	case exitCode := <-task.statusChannel:
		task.completeTask(exitCode)
		return true
	case <-time.After(timeout):
		return false
	}
}

// Clean closes the task's stdout & stderr files.
func (task *localTaskHandle) Clean() error {
	if err := task.stdoutFile.Close(); err != nil {
		return errors.Wrapf(err, "could not close %q", task.stdoutFile.Name())
	}
	if err := task.stderrFile.Close(); err != nil {
		return errors.Wrapf(err, "could not close %q", task.stderrFile.Name())
	}
	return nil
}

// EraseOutput removes the task's temporary output files. A stdout file which
// is a caller-owned artifact is left in place.
func (task *localTaskHandle) EraseOutput() error {
	if !task.stdoutIsArtifact {
		if err := os.Remove(task.stdoutFile.Name()); err != nil {
			return errors.Wrapf(err, "could not remove %q", task.stdoutFile.Name())
		}
	}
	if err := os.Remove(task.stderrFile.Name()); err != nil {
		return errors.Wrapf(err, "could not remove %q", task.stderrFile.Name())
	}
	return nil
}
