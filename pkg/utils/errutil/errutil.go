// Package errutil provides top-level error handling for the sweep binaries.
package errutil

import (
	"github.com/sirupsen/logrus"
)

// Check logs the supplied error and exits if it is non-nil. Intended for the
// top of the call stack only; everything below propagates errors explicitly.
func Check(err error) {
	if err != nil {
		logrus.Debugf("%+v", err)
		logrus.Fatalf("%v", err)
	}
}

// CheckWithContext checks the error and exits if it is non-nil, logging
// additional context information.
func CheckWithContext(err error, context string) {
	if err != nil {
		logrus.Debugf("%s: %+v", context, err)
		logrus.Fatalf("%s: %v", context, err)
	}
}
