package sweep

import (
	"os"
	"sort"

	"github.com/goccy/go-yaml"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/liam0215/mixgraph-experiment-tools/pkg/workloads/dbbench"
)

// Config is the immutable description of one sweep: the configuration matrix,
// the workload shape and the process-launch options. It is constructed once
// at startup and never modified while the sweep runs.
type Config struct {
	// CacheSizes is the ordered outer dimension of the matrix, in bytes.
	CacheSizes []int64 `yaml:"cache_sizes"`
	// Backends maps a compression backend label to its pass-through options.
	Backends map[string]dbbench.CompressionOptions `yaml:"backends"`
	// PopulationCacheSize is the fixed cache size used only during the load
	// phase, in bytes.
	PopulationCacheSize int64 `yaml:"population_cache_size"`
	// Repetitions is the number of measurement runs per (cacheSize, backend).
	Repetitions int `yaml:"repetitions"`
	// OutputDir receives one artifact per executed matrix cell.
	OutputDir string `yaml:"output_dir"`

	// Bench is the external benchmark contract: binary path, database path
	// and workload shape parameters.
	Bench dbbench.Config `yaml:"bench"`

	// CPUList pins every subprocess with `taskset -c`; empty disables
	// pinning.
	CPUList string `yaml:"cpu_list"`
	// UseSudo prefixes every subprocess with the privilege elevation prefix.
	UseSudo bool `yaml:"use_sudo"`

	// MetadataDB is the path of the sqlite sweep record; empty disables
	// metadata collection.
	MetadataDB string `yaml:"metadata_db"`
}

// DefaultConfig is a constructor for Config reproducing the original cache
// size vs compression speedup experiment: cache sizes from 1 MiB to 4 GiB in
// powers of two, software and hardware execution paths of the IAA compressor
// plugin.
func DefaultConfig() Config {
	cacheSizes := []int64{}
	for size := int64(1 << 20); size <= int64(4)<<30; size <<= 1 {
		cacheSizes = append(cacheSizes, size)
	}

	return Config{
		CacheSizes: cacheSizes,
		Backends: map[string]dbbench.CompressionOptions{
			"sw": {
				Type:    "com.intel.iaa_compressor_rocksdb",
				Options: "execution_path=sw;compression_mode=dynamic;level=0",
			},
			"hw": {
				Type:    "com.intel.iaa_compressor_rocksdb",
				Options: "execution_path=hw;compression_mode=dynamic;level=0",
			},
		},
		PopulationCacheSize: 8 << 20,
		Repetitions:         1,
		OutputDir:           "./experiment_results",
		Bench:               dbbench.DefaultConfig(),
		UseSudo:             true,
	}
}

// LoadConfig reads the sweep configuration from a YAML file. A missing file
// is not an error: the default configuration is returned so the tool works
// out of the box.
func LoadConfig(path string) (Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Infof("Config file %q not found, using default configuration", path)
			return config, nil
		}
		return config, errors.Wrapf(err, "could not read config file %q", path)
	}

	if err := yaml.Unmarshal(data, &config); err != nil {
		return config, errors.Wrapf(err, "could not parse config file %q", path)
	}

	return config, nil
}

// Validate rejects configurations which cannot describe a well-formed matrix.
func (c Config) Validate() error {
	if len(c.CacheSizes) == 0 {
		return errors.New("no cache sizes configured")
	}
	for _, size := range c.CacheSizes {
		if size <= 0 {
			return errors.Errorf("invalid cache size %d: must be positive", size)
		}
	}
	if len(c.Backends) == 0 {
		return errors.New("no compression backends configured")
	}
	if c.PopulationCacheSize <= 0 {
		return errors.Errorf("invalid population cache size %d: must be positive", c.PopulationCacheSize)
	}
	if c.Repetitions <= 0 {
		return errors.Errorf("invalid repetition count %d: must be positive", c.Repetitions)
	}
	if c.OutputDir == "" {
		return errors.New("no output directory configured")
	}
	if c.Bench.Path == "" {
		return errors.New("no benchmark binary configured")
	}
	if c.Bench.DBPath == "" {
		return errors.New("no database path configured")
	}
	return nil
}

// BackendLabels returns the backend labels in the order the sweep iterates
// them. The backend set is a map, so the order carries no meaning beyond
// completeness; sorting makes consecutive sweeps reproducible.
func (c Config) BackendLabels() []string {
	labels := make([]string, 0, len(c.Backends))
	for label := range c.Backends {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels
}

// CellCount returns the total number of matrix cells the sweep will execute.
func (c Config) CellCount() int {
	return len(c.CacheSizes) * len(c.Backends) * c.Repetitions
}
