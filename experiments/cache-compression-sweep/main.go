// The cache-compression-sweep binary drives db_bench across a matrix of
// cache sizes and compression backends. For every (cache size, backend) pair
// it repopulates the database from scratch and then measures the mixgraph
// workload, writing one artifact per cell for the analysis tooling.
package main

import (
	"strconv"

	"github.com/goccy/go-yaml"
	"github.com/sirupsen/logrus"

	"github.com/liam0215/mixgraph-experiment-tools/pkg/conf"
	"github.com/liam0215/mixgraph-experiment-tools/pkg/executor"
	"github.com/liam0215/mixgraph-experiment-tools/pkg/isolation"
	"github.com/liam0215/mixgraph-experiment-tools/pkg/metadata"
	"github.com/liam0215/mixgraph-experiment-tools/pkg/sweep"
	"github.com/liam0215/mixgraph-experiment-tools/pkg/utils/errutil"
)

var (
	configFlag = conf.NewStringFlag(
		"config", "Path to the sweep YAML configuration file.", "sweep.yaml")

	// Scalar overrides on top of the configuration file. Empty or zero means
	// the file (or default) value is kept.
	cacheSizesFlag = conf.NewSliceFlag(
		"cache_size", "Cache sizes in bytes to sweep, in order (--cache_size=1048576,2097152).")
	populationCacheSizeFlag = conf.NewIntFlag(
		"population_cache_size", "Cache size in bytes used only while populating the database.", 0)
	repetitionsFlag = conf.NewIntFlag(
		"repetitions", "Number of measurements per (cache size, backend) pair.", 0)
	outputDirFlag = conf.NewStringFlag(
		"output_dir", "Directory receiving one artifact per matrix cell.", "")
	dbBenchPathFlag = conf.NewStringFlag(
		"db_bench_path", "Path to the db_bench binary.", "")
	dbPathFlag = conf.NewStringFlag(
		"db_path", "Database directory recreated for every (cache size, backend) pair.", "")
	cpusFlag = conf.NewStringFlag(
		"cpus", "CPU list every subprocess is pinned to with taskset (empty disables pinning).", "")
	noSudoFlag = conf.NewBoolFlag(
		"no_sudo", "Do not prefix subprocesses with the privilege elevation prefix.", false)
	metadataDBFlag = conf.NewStringFlag(
		"metadata_db", "Path of the sqlite sweep record (empty disables metadata).", "")
)

// applyFlags overrides file-based configuration with explicitly set flags.
func applyFlags(config *sweep.Config) {
	if sizes := cacheSizesFlag.Value(); len(sizes) > 0 {
		cacheSizes := []int64{}
		for _, size := range sizes {
			parsed, err := strconv.ParseInt(size, 10, 64)
			errutil.CheckWithContext(err, "parsing --cache_size")
			cacheSizes = append(cacheSizes, parsed)
		}
		config.CacheSizes = cacheSizes
	}
	if populationCacheSizeFlag.Value() > 0 {
		config.PopulationCacheSize = int64(populationCacheSizeFlag.Value())
	}
	if repetitionsFlag.Value() > 0 {
		config.Repetitions = repetitionsFlag.Value()
	}
	if outputDirFlag.Value() != "" {
		config.OutputDir = outputDirFlag.Value()
	}
	if dbBenchPathFlag.Value() != "" {
		config.Bench.Path = dbBenchPathFlag.Value()
	}
	if dbPathFlag.Value() != "" {
		config.Bench.DBPath = dbPathFlag.Value()
	}
	if cpusFlag.Value() != "" {
		config.CPUList = cpusFlag.Value()
	}
	if noSudoFlag.Value() {
		config.UseSudo = false
	}
	if metadataDBFlag.Value() != "" {
		config.MetadataDB = metadataDBFlag.Value()
	}
}

func main() {
	conf.SetAppName("cache-compression-sweep")
	conf.SetHelp(`Cache size vs compression sweep for db_bench.
For every configured cache size and compression backend the database is
destroyed, repopulated with fillrandom and measured with the mixgraph mixed
workload. Each measurement's stdout lands in one artifact file named
exp_<cacheSize>_<backend> in the output directory. The first failing
subprocess aborts the whole sweep.`)

	errutil.Check(conf.ParseFlags())
	logrus.SetLevel(conf.LogLevel())

	config, err := sweep.LoadConfig(configFlag.Value())
	errutil.Check(err)
	applyFlags(&config)
	errutil.Check(config.Validate())

	decorators := []isolation.Decorator{}
	if config.CPUList != "" {
		decorators = append(decorators, isolation.NewTaskset(config.CPUList))
	}
	if config.UseSudo {
		decorators = append(decorators, isolation.NewSudo())
	}

	run := sweep.New(config, executor.NewLocalIsolated(decorators...))

	if config.MetadataDB != "" {
		configDump, err := yaml.Marshal(config)
		errutil.CheckWithContext(err, "serializing configuration")

		store, err := metadata.Open(config.MetadataDB, string(configDump))
		errutil.CheckWithContext(err, "opening metadata store")
		defer store.Close()

		logrus.Infof("Recording sweep %s into %q", store.SweepID(), config.MetadataDB)
		run = run.WithRecorder(store)
	}

	errutil.Check(run.Run())
}
