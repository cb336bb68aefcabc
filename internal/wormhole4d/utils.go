package wormhole4d

import (
	"math"
	"runtime"
)

func isFinite(x Real) bool { return !math.IsInf(x, 0) && !math.IsNaN(x) }

func imax(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// workerCount resolves a requested worker count: non-positive means one per CPU.
func workerCount(n int) int {
	if n <= 0 {
		n = runtime.NumCPU()
	}
	return imax(n, 1)
}
