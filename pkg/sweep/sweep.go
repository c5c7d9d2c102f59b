// Package sweep implements the benchmark sweep engine: it enumerates the
// (cache size × compression backend × repetition) matrix in a fixed nested
// order and, for every backend at every cache size, repopulates the database
// once and measures it repetition-count times. Execution is strictly
// sequential; the database directory is owned exclusively by the currently
// executing cell, which is what makes the freshly-populated invariant hold
// without any locking. The first failure at any step aborts the whole sweep.
package sweep

import (
	"os"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/liam0215/mixgraph-experiment-tools/pkg/executor"
	"github.com/liam0215/mixgraph-experiment-tools/pkg/workloads/dbbench"
)

type preparer interface {
	Prepare(backend string, compression dbbench.CompressionOptions) error
}

type measurer interface {
	Measure(backend string, compression dbbench.CompressionOptions, cacheSize int64, repetition int) (string, error)
}

// Recorder persists one completed matrix cell. Implemented by the metadata
// store; a nil Recorder disables recording.
type Recorder interface {
	RecordCell(cacheSize int64, backend string, repetition int, artifactPath string, duration time.Duration) error
}

// Sweep drives the full ordered execution of all matrix cells.
type Sweep struct {
	config   Config
	preparer preparer
	measurer measurer
	recorder Recorder
}

// New is a constructor for Sweep. All subprocesses run through the given
// executor so launch options apply uniformly to both phases.
func New(config Config, exec executor.Executor) *Sweep {
	return &Sweep{
		config:   config,
		preparer: NewPreparer(exec, config.Bench, config.PopulationCacheSize),
		measurer: NewMeasurer(exec, config.Bench, config.OutputDir),
	}
}

// WithRecorder attaches a Recorder to the sweep.
func (s *Sweep) WithRecorder(recorder Recorder) *Sweep {
	s.recorder = recorder
	return s
}

// Run executes every cell of the configured matrix exactly once, in
// deterministic order: outer loop over cache sizes as configured, inner loop
// over backends in sorted label order, then repetitions. For each
// (cacheSize, backend) pair the database is repopulated exactly once before
// the measurements, even when the backend's data did not change since the
// previous cache size iteration, so every measurement starts from an
// identical, comparable database state.
//
// The first error from any step is returned immediately; cells after it are
// not executed and no cleanup is attempted. An aborted sweep may leave the
// database partially populated or deleted and requires a fresh restart.
func (s *Sweep) Run() error {
	if err := s.config.Validate(); err != nil {
		return err
	}

	if err := os.MkdirAll(s.config.OutputDir, 0755); err != nil {
		return errors.Wrapf(err, "could not create output directory %q", s.config.OutputDir)
	}

	labels := s.config.BackendLabels()
	log.Infof("Starting sweep: %d cache sizes x %d backends x %d repetitions = %d cells",
		len(s.config.CacheSizes), len(labels), s.config.Repetitions, s.config.CellCount())

	cell := 0
	for _, cacheSize := range s.config.CacheSizes {
		for _, backend := range labels {
			compression := s.config.Backends[backend]

			if err := s.preparer.Prepare(backend, compression); err != nil {
				return err
			}

			for repetition := 0; repetition < s.config.Repetitions; repetition++ {
				cell++
				log.Infof("Cell %d/%d: backend %q, cache size %d, repetition %d",
					cell, s.config.CellCount(), backend, cacheSize, repetition)

				started := time.Now()
				artifactPath, err := s.measurer.Measure(backend, compression, cacheSize, repetition)
				if err != nil {
					return err
				}

				if s.recorder != nil {
					err = s.recorder.RecordCell(cacheSize, backend, repetition,
						artifactPath, time.Since(started))
					if err != nil {
						return errors.Wrap(err, "could not record measurement")
					}
				}
			}
		}
	}

	log.Infof("Sweep done: %d cells executed, artifacts in %q", cell, s.config.OutputDir)
	return nil
}
