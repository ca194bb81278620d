package versiongate

import (
	"runtime"
	"sync"
)

var (
	runtimeVersionOnce sync.Once
	runtimeVersion     string
)

// RuntimeVersion returns the version string of the running Go runtime.
// It is read once per process.
func RuntimeVersion() string {
	runtimeVersionOnce.Do(func() {
		runtimeVersion = runtime.Version()
	})
	return runtimeVersion
}

// Resolve returns override when set, otherwise the process runtime version.
func Resolve(override string) string {
	if override != "" {
		return override
	}
	return RuntimeVersion()
}
