// Package dbbench encodes the command line contract of the external db_bench
// benchmark executable. The sweep invokes it in two modes per backend: a
// fillrandom load phase which populates a fresh database, and a mixgraph
// measurement phase which runs the mixed read/write/seek workload against an
// already populated database.
package dbbench

import (
	"github.com/liam0215/mixgraph-experiment-tools/pkg/executor"
)

const name = "db_bench"

// Config holds the db_bench invocation parameters shared by the load and the
// measurement phases. Defaults mirror the mixgraph "all_dist" workload shape
// published with the benchmark.
type Config struct {
	// Path to the db_bench binary.
	Path string `yaml:"path"`
	// DBPath is the database directory both phases operate on.
	DBPath string `yaml:"db_path"`

	// KeyCount is the number of keys written by the load phase.
	KeyCount int64 `yaml:"key_count"`
	// KeySize is the key size in bytes.
	KeySize int `yaml:"key_size"`
	// ReadCount is the total number of reads issued by the measurement phase.
	ReadCount int64 `yaml:"read_count"`

	// Operation mix ratios. They should sum to 1.
	MixGetRatio  float64 `yaml:"mix_get_ratio"`
	MixPutRatio  float64 `yaml:"mix_put_ratio"`
	MixSeekRatio float64 `yaml:"mix_seek_ratio"`

	// Time-varying rate sine parameters.
	SineMixRateIntervalMilliseconds int     `yaml:"sine_mix_rate_interval_milliseconds"`
	SineA                           float64 `yaml:"sine_a"`
	SineB                           float64 `yaml:"sine_b"`
	SineD                           float64 `yaml:"sine_d"`

	// Key-range access distribution shape.
	KeyRangeDistA float64 `yaml:"keyrange_dist_a"`
	KeyRangeDistB float64 `yaml:"keyrange_dist_b"`
	KeyRangeDistC float64 `yaml:"keyrange_dist_c"`
	KeyRangeDistD float64 `yaml:"keyrange_dist_d"`
	KeyRangeNum   int     `yaml:"keyrange_num"`

	// Value size distribution (generalized pareto).
	ValueK     float64 `yaml:"value_k"`
	ValueSigma float64 `yaml:"value_sigma"`

	// Iterator scan length distribution (generalized pareto).
	IterK     float64 `yaml:"iter_k"`
	IterSigma float64 `yaml:"iter_sigma"`
}

// DefaultConfig is a constructor for Config with the workload shape used by
// the cache size vs compression experiment.
func DefaultConfig() Config {
	return Config{
		Path:      "db_bench",
		DBPath:    "/tmp/dbsweep_db",
		KeyCount:  50000000,
		KeySize:   48,
		ReadCount: 4200000,

		MixGetRatio:  0.83,
		MixPutRatio:  0.14,
		MixSeekRatio: 0.03,

		SineMixRateIntervalMilliseconds: 5000,
		SineA:                           1000,
		SineB:                           0.000073,
		SineD:                           4500,

		KeyRangeDistA: 14.18,
		KeyRangeDistB: -2.917,
		KeyRangeDistC: 0.0164,
		KeyRangeDistD: -0.08082,
		KeyRangeNum:   30,

		ValueK:     0.2615,
		ValueSigma: 25.45,

		IterK:     2.517,
		IterSigma: 14.236,
	}
}

// CompressionOptions selects a compression backend. Both fields are passed
// through verbatim; the sweep does not interpret them.
type CompressionOptions struct {
	// Type is the value of --compression_type, e.g. "zstd" or a compressor
	// plugin identifier.
	Type string `yaml:"type"`
	// Options is the value of --compressor_options; empty means the flag is
	// omitted.
	Options string `yaml:"options"`
}

func (c Config) compressionArgs(compression CompressionOptions) []executor.Arg {
	args := []executor.Arg{{Name: "compression_type", Value: compression.Type}}
	if compression.Options != "" {
		args = append(args, executor.Arg{Name: "compressor_options", Value: compression.Options})
	}
	return args
}

// LoadCommand builds the fillrandom invocation which populates a fresh
// database with the given compression backend. The cache size used here is
// the fixed population cache size, not a matrix dimension.
func (c Config) LoadCommand(compression CompressionOptions, cacheSize int64) executor.Command {
	return executor.NewCommand(c.Path,
		executor.Arg{Name: "benchmarks", Value: "fillrandom"},
		executor.Arg{Name: "db", Value: c.DBPath},
		executor.Arg{Name: "num", Value: c.KeyCount},
		executor.Arg{Name: "key_size", Value: c.KeySize},
		executor.Arg{Name: "cache_size", Value: cacheSize},
	).WithArgs(c.compressionArgs(compression)...)
}

// MixGraphCommand builds the mixgraph invocation which measures the mixed
// workload against the already populated database, redirecting its stdout
// verbatim into outputPath.
func (c Config) MixGraphCommand(compression CompressionOptions, cacheSize int64, outputPath string) executor.Command {
	return executor.NewCommand(c.Path,
		executor.Arg{Name: "benchmarks", Value: "mixgraph"},
		executor.Arg{Name: "use_existing_db", Value: true},
		executor.Arg{Name: "db", Value: c.DBPath},
		executor.Arg{Name: "num", Value: c.KeyCount},
		executor.Arg{Name: "key_size", Value: c.KeySize},
		executor.Arg{Name: "cache_size", Value: cacheSize},
		executor.Arg{Name: "reads", Value: c.ReadCount},
		executor.Arg{Name: "mix_get_ratio", Value: c.MixGetRatio},
		executor.Arg{Name: "mix_put_ratio", Value: c.MixPutRatio},
		executor.Arg{Name: "mix_seek_ratio", Value: c.MixSeekRatio},
		executor.Arg{Name: "sine_mix_rate_interval_milliseconds", Value: c.SineMixRateIntervalMilliseconds},
		executor.Arg{Name: "sine_a", Value: c.SineA},
		executor.Arg{Name: "sine_b", Value: c.SineB},
		executor.Arg{Name: "sine_d", Value: c.SineD},
		executor.Arg{Name: "keyrange_dist_a", Value: c.KeyRangeDistA},
		executor.Arg{Name: "keyrange_dist_b", Value: c.KeyRangeDistB},
		executor.Arg{Name: "keyrange_dist_c", Value: c.KeyRangeDistC},
		executor.Arg{Name: "keyrange_dist_d", Value: c.KeyRangeDistD},
		executor.Arg{Name: "keyrange_num", Value: c.KeyRangeNum},
		executor.Arg{Name: "value_k", Value: c.ValueK},
		executor.Arg{Name: "value_sigma", Value: c.ValueSigma},
		executor.Arg{Name: "iter_k", Value: c.IterK},
		executor.Arg{Name: "iter_sigma", Value: c.IterSigma},
	).WithArgs(c.compressionArgs(compression)...).WithStdout(outputPath)
}

// Name returns a human readable name for the workload.
func (c Config) Name() string {
	return name
}
