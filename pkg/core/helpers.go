package core

import (
	"runtime"
)

// MaxCPUThreads returns NumCPU minus reserved threads, never less than one
func MaxCPUThreads(reserved int) int {
	return max(runtime.NumCPU()-reserved, 1)
}
