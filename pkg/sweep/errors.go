package sweep

import "fmt"

// PreparationFailure is returned when destroying or repopulating the
// database for a backend failed. It aborts the whole sweep.
type PreparationFailure struct {
	Backend string
	Cause   error
}

// Error implements the error interface.
func (e *PreparationFailure) Error() string {
	return fmt.Sprintf("preparing database for backend %q failed: %v", e.Backend, e.Cause)
}

// Unwrap returns the underlying failure.
func (e *PreparationFailure) Unwrap() error {
	return e.Cause
}

// MeasurementFailure is returned when a measurement phase subprocess failed.
// It aborts the whole sweep.
type MeasurementFailure struct {
	Backend   string
	CacheSize int64
	Cause     error
}

// Error implements the error interface.
func (e *MeasurementFailure) Error() string {
	return fmt.Sprintf("measuring backend %q with cache size %d failed: %v",
		e.Backend, e.CacheSize, e.Cause)
}

// Unwrap returns the underlying failure.
func (e *MeasurementFailure) Unwrap() error {
	return e.Cause
}
