package sweep

import (
	log "github.com/sirupsen/logrus"

	"github.com/liam0215/mixgraph-experiment-tools/pkg/executor"
	"github.com/liam0215/mixgraph-experiment-tools/pkg/workloads/dbbench"
)

// Measurer runs the measurement phase for one matrix cell: the mixgraph
// workload against the already populated database, with the subprocess
// stdout redirected verbatim into the cell's artifact.
type Measurer struct {
	exec      executor.Executor
	bench     dbbench.Config
	outputDir string
}

// NewMeasurer is a constructor for Measurer.
func NewMeasurer(exec executor.Executor, bench dbbench.Config, outputDir string) Measurer {
	return Measurer{
		exec:      exec,
		bench:     bench,
		outputDir: outputDir,
	}
}

// Measure runs one measurement and returns the path of the written artifact.
// The cache size here is the matrix dimension under test; the population
// cache size plays no role in this phase. The workload is read-mostly with a
// bounded write fraction, so it does not change the database's logical
// content between repetitions.
func (m Measurer) Measure(backend string, compression dbbench.CompressionOptions, cacheSize int64, repetition int) (string, error) {
	outputPath := ArtifactPath(m.outputDir, cacheSize, backend, repetition)

	log.Infof("Measuring backend %q with cache size %d (repetition %d) into %q",
		backend, cacheSize, repetition, outputPath)

	measure := m.bench.MixGraphCommand(compression, cacheSize, outputPath)
	if err := executor.Run(m.exec, measure); err != nil {
		return "", &MeasurementFailure{Backend: backend, CacheSize: cacheSize, Cause: err}
	}

	return outputPath, nil
}
