package metadata

import (
	"path/filepath"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func TestMetadata(t *testing.T) {
	Convey("While using the sweep metadata store", t, func() {
		path := filepath.Join(t.TempDir(), "sweep.db")

		store, err := Open(path, "cache_sizes: [1048576]")
		So(err, ShouldBeNil)
		defer store.Close()

		Convey("A fresh store has a session ID and no cells", func() {
			So(store.SweepID(), ShouldNotBeEmpty)

			cells, err := store.Cells()
			So(err, ShouldBeNil)
			So(cells, ShouldBeEmpty)
		})

		Convey("Recorded cells are returned in insertion order", func() {
			So(store.RecordCell(1048576, "sw", 0, "/r/exp_1048576_sw", 90*time.Second), ShouldBeNil)
			So(store.RecordCell(1048576, "hw", 0, "/r/exp_1048576_hw", 75*time.Second), ShouldBeNil)

			cells, err := store.Cells()
			So(err, ShouldBeNil)
			So(cells, ShouldHaveLength, 2)
			So(cells[0].Backend, ShouldEqual, "sw")
			So(cells[0].Artifact, ShouldEqual, "/r/exp_1048576_sw")
			So(cells[0].Duration, ShouldEqual, 90*time.Second)
			So(cells[1].Backend, ShouldEqual, "hw")
		})

		Convey("Recording the same cell twice fails", func() {
			So(store.RecordCell(1048576, "sw", 0, "/r/exp_1048576_sw", time.Second), ShouldBeNil)
			So(store.RecordCell(1048576, "sw", 0, "/r/exp_1048576_sw", time.Second), ShouldNotBeNil)
		})

		Convey("Two sweeps in the same database keep separate records", func() {
			So(store.RecordCell(1048576, "sw", 0, "/r/exp_1048576_sw", time.Second), ShouldBeNil)

			other, err := Open(path, "")
			So(err, ShouldBeNil)
			defer other.Close()

			So(other.SweepID(), ShouldNotEqual, store.SweepID())

			cells, err := other.Cells()
			So(err, ShouldBeNil)
			So(cells, ShouldBeEmpty)
		})
	})
}
