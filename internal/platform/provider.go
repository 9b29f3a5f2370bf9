package platform

import (
	"fmt"
	"runtime"
)

// ErrUnsupported is returned when no native backend is registered for the
// current OS.
var ErrUnsupported = fmt.Errorf("no accessibility backend for %s/%s; use a synthetic tree fixture or build with a native backend", runtime.GOOS, runtime.GOARCH)

// NewAdapterFunc is set by native backend packages via init().
var NewAdapterFunc func() (Adapter, error)

// NewAdapter returns the native adapter for the current OS.
func NewAdapter() (Adapter, error) {
	if NewAdapterFunc == nil {
		return nil, ErrUnsupported
	}
	return NewAdapterFunc()
}
