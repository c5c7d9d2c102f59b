package sweep

import (
	log "github.com/sirupsen/logrus"

	"github.com/liam0215/mixgraph-experiment-tools/pkg/executor"
	"github.com/liam0215/mixgraph-experiment-tools/pkg/workloads/dbbench"
)

// Preparer owns the transition of the database directory to a freshly
// populated state for one compression backend: it destroys any prior state
// and runs the benchmark's load phase with the fixed population cache size.
type Preparer struct {
	exec                executor.Executor
	bench               dbbench.Config
	populationCacheSize int64
}

// NewPreparer is a constructor for Preparer.
func NewPreparer(exec executor.Executor, bench dbbench.Config, populationCacheSize int64) Preparer {
	return Preparer{
		exec:                exec,
		bench:               bench,
		populationCacheSize: populationCacheSize,
	}
}

// Prepare destroys any prior database state and populates a fresh database
// with the given backend's compression configuration. It returns only after
// the load phase has fully exited. Populating on top of stale data is never
// acceptable, so a failed deletion aborts instead of proceeding.
func (p Preparer) Prepare(backend string, compression dbbench.CompressionOptions) error {
	log.Infof("Destroying database at %q", p.bench.DBPath)

	// rm -rf treats an absent directory as a no-op, which matches the
	// first-iteration case.
	destroy := executor.NewCommand("rm",
		executor.Arg{Value: "-rf"},
		executor.Arg{Value: p.bench.DBPath},
	)
	if err := executor.Run(p.exec, destroy); err != nil {
		return &PreparationFailure{Backend: backend, Cause: err}
	}

	log.Infof("Populating database for backend %q", backend)

	load := p.bench.LoadCommand(compression, p.populationCacheSize)
	if err := executor.Run(p.exec, load); err != nil {
		return &PreparationFailure{Backend: backend, Cause: err}
	}

	return nil
}
