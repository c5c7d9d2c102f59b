package sweep

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/stretchr/testify/mock"

	"github.com/liam0215/mixgraph-experiment-tools/pkg/executor"
	"github.com/liam0215/mixgraph-experiment-tools/pkg/executor/mocks"
	"github.com/liam0215/mixgraph-experiment-tools/pkg/workloads/dbbench"
)

func terminatedHandle(exitCode int) *mocks.TaskHandle {
	handle := new(mocks.TaskHandle)
	handle.On("Wait", mock.Anything).Return(true)
	handle.On("ExitCode").Return(exitCode, nil)
	handle.On("CommandLine").Return("mocked command")
	handle.On("Clean").Return(nil)
	return handle
}

func TestPreparer(t *testing.T) {
	bench := dbbench.DefaultConfig()
	bench.DBPath = "/mnt/nvme/db"
	compression := dbbench.CompressionOptions{Type: "iaa", Options: "execution_path=sw"}

	Convey("While preparing the database for a backend", t, func() {
		exec := new(mocks.Executor)
		preparer := NewPreparer(exec, bench, 8388608)

		Convey("The database is destroyed before it is repopulated", func() {
			deletions := 0
			loads := 0
			exec.On("Execute", mock.MatchedBy(func(command executor.Command) bool {
				return command.Path == "rm"
			})).Return(terminatedHandle(0), nil).Run(func(args mock.Arguments) {
				So(loads, ShouldEqual, 0)
				deletions++
			})
			exec.On("Execute", mock.MatchedBy(func(command executor.Command) bool {
				return command.Path == bench.Path
			})).Return(terminatedHandle(0), nil).Run(func(args mock.Arguments) {
				So(deletions, ShouldEqual, 1)
				loads++
			})

			So(preparer.Prepare("sw", compression), ShouldBeNil)
			So(deletions, ShouldEqual, 1)
			So(loads, ShouldEqual, 1)

			Convey("And the deletion targets the database path", func() {
				deletion := exec.Calls[0].Arguments.Get(0).(executor.Command)
				So(deletion.Render(), ShouldEqual, "rm -rf /mnt/nvme/db")
			})

			Convey("And the load phase uses the population cache size", func() {
				load := exec.Calls[1].Arguments.Get(0).(executor.Command)
				So(load.Render(), ShouldContainSubstring, "--benchmarks=fillrandom")
				So(load.Render(), ShouldContainSubstring, "--cache_size=8388608")
			})
		})

		Convey("A failed deletion aborts without populating on top of stale data", func() {
			exec.On("Execute", mock.MatchedBy(func(command executor.Command) bool {
				return command.Path == "rm"
			})).Return(terminatedHandle(1), nil)

			err := preparer.Prepare("sw", compression)

			failure, ok := err.(*PreparationFailure)
			So(ok, ShouldBeTrue)
			So(failure.Backend, ShouldEqual, "sw")
			// The load phase was never attempted.
			So(len(exec.Calls), ShouldEqual, 1)
		})

		Convey("A non-zero load phase exit is a preparation failure", func() {
			exec.On("Execute", mock.MatchedBy(func(command executor.Command) bool {
				return command.Path == "rm"
			})).Return(terminatedHandle(0), nil)
			exec.On("Execute", mock.MatchedBy(func(command executor.Command) bool {
				return command.Path == bench.Path
			})).Return(terminatedHandle(7), nil)

			err := preparer.Prepare("sw", compression)

			failure, ok := err.(*PreparationFailure)
			So(ok, ShouldBeTrue)

			execFailure, ok := failure.Cause.(*executor.ExecutionFailure)
			So(ok, ShouldBeTrue)
			So(execFailure.ExitCode, ShouldEqual, 7)
		})
	})
}
