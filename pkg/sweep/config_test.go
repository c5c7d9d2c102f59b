package sweep

import (
	"os"
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

const testConfigYAML = `
cache_sizes: [1048576, 2097152]
population_cache_size: 8388608
repetitions: 2
output_dir: /tmp/results
backends:
  sw:
    type: com.intel.iaa_compressor_rocksdb
    options: execution_path=sw;compression_mode=dynamic
  hw:
    type: com.intel.iaa_compressor_rocksdb
    options: execution_path=hw;compression_mode=dynamic
bench:
  path: /opt/rocksdb/db_bench
  db_path: /mnt/nvme/db
  key_count: 50000000
  key_size: 48
  read_count: 4200000
cpu_list: 0-7
use_sudo: true
`

func TestConfig(t *testing.T) {
	Convey("While loading sweep configuration", t, func() {
		Convey("A YAML file overrides the defaults", func() {
			path := filepath.Join(t.TempDir(), "sweep.yaml")
			So(os.WriteFile(path, []byte(testConfigYAML), 0644), ShouldBeNil)

			config, err := LoadConfig(path)
			So(err, ShouldBeNil)

			So(config.CacheSizes, ShouldResemble, []int64{1048576, 2097152})
			So(config.Repetitions, ShouldEqual, 2)
			So(config.PopulationCacheSize, ShouldEqual, 8388608)
			So(config.Bench.Path, ShouldEqual, "/opt/rocksdb/db_bench")
			So(config.Bench.DBPath, ShouldEqual, "/mnt/nvme/db")
			So(config.CPUList, ShouldEqual, "0-7")
			So(config.UseSudo, ShouldBeTrue)
			So(config.Backends["sw"].Options, ShouldEqual, "execution_path=sw;compression_mode=dynamic")
			So(config.Validate(), ShouldBeNil)
		})

		Convey("A missing file yields the default configuration", func() {
			config, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
			So(err, ShouldBeNil)
			So(config.Validate(), ShouldBeNil)
			So(config.Repetitions, ShouldEqual, 1)
			So(config.CacheSizes[0], ShouldEqual, 1<<20)
		})

		Convey("A malformed file is an error", func() {
			path := filepath.Join(t.TempDir(), "sweep.yaml")
			So(os.WriteFile(path, []byte(":\n  - not yaml"), 0644), ShouldBeNil)

			_, err := LoadConfig(path)
			So(err, ShouldNotBeNil)
		})

		Convey("Backend labels enumerate in sorted order", func() {
			config := DefaultConfig()
			So(config.BackendLabels(), ShouldResemble, []string{"hw", "sw"})
		})

		Convey("The cell count covers the full cross product", func() {
			config := DefaultConfig()
			config.CacheSizes = []int64{1, 2, 3}
			config.Repetitions = 4
			So(config.CellCount(), ShouldEqual, 3*2*4)
		})
	})
}
