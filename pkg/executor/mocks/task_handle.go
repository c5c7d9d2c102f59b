package mocks

import (
	"os"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/liam0215/mixgraph-experiment-tools/pkg/executor"
)

// TaskHandle mock
type TaskHandle struct {
	mock.Mock
}

// CommandLine provides a mock function with no fields
func (_m *TaskHandle) CommandLine() string {
	ret := _m.Called()
	return ret.Get(0).(string)
}

// Stop provides a mock function with no fields
func (_m *TaskHandle) Stop() error {
	ret := _m.Called()
	return ret.Error(0)
}

// Status provides a mock function with no fields
func (_m *TaskHandle) Status() executor.TaskState {
	ret := _m.Called()
	return ret.Get(0).(executor.TaskState)
}

// ExitCode provides a mock function with no fields
func (_m *TaskHandle) ExitCode() (int, error) {
	ret := _m.Called()
	return ret.Get(0).(int), ret.Error(1)
}

// StdoutFile provides a mock function with no fields
func (_m *TaskHandle) StdoutFile() (*os.File, error) {
	ret := _m.Called()

	var r0 *os.File
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*os.File)
	}
	return r0, ret.Error(1)
}

// StderrFile provides a mock function with no fields
func (_m *TaskHandle) StderrFile() (*os.File, error) {
	ret := _m.Called()

	var r0 *os.File
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*os.File)
	}
	return r0, ret.Error(1)
}

// Wait provides a mock function with given fields: timeout
func (_m *TaskHandle) Wait(timeout time.Duration) bool {
	ret := _m.Called(timeout)
	return ret.Get(0).(bool)
}

// Clean provides a mock function with no fields
func (_m *TaskHandle) Clean() error {
	ret := _m.Called()
	return ret.Error(0)
}

// EraseOutput provides a mock function with no fields
func (_m *TaskHandle) EraseOutput() error {
	ret := _m.Called()
	return ret.Error(0)
}
