package isolation

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestDecorators(t *testing.T) {
	Convey("While using isolation decorators", t, func() {
		Convey("Taskset prefixes the command with the CPU list", func() {
			decorator := NewTaskset("0-3,8")
			So(decorator.Decorate("db_bench --num=1"), ShouldEqual, "taskset -c 0-3,8 db_bench --num=1")
		})

		Convey("Taskset with empty CPU list leaves the command untouched", func() {
			decorator := NewTaskset("")
			So(decorator.Decorate("db_bench"), ShouldEqual, "db_bench")
		})

		Convey("Sudo prefixes the command", func() {
			So(NewSudo().Decorate("rm -rf /tmp/db"), ShouldEqual, "sudo rm -rf /tmp/db")
		})

		Convey("Decorators chain applies in order", func() {
			chain := Decorators{NewTaskset("2"), NewSudo()}
			So(chain.Decorate("db_bench"), ShouldEqual, "sudo taskset -c 2 db_bench")
		})

		Convey("Empty chain is identity", func() {
			So(Decorators{}.Decorate("db_bench"), ShouldEqual, "db_bench")
		})
	})
}
