package main

import "runtime"

// Worker pool sizing.
const (
	minWorkers = 1
	maxWorkers = 16
)

// resolvePoolSize determines the number of render workers.
// Priority: explicit flag > GOMAXPROCS (adjusted by automaxprocs for
// containers).
func resolvePoolSize(flagWorkers int) int {
	if flagWorkers > 0 {
		return flagWorkers
	}
	return clampWorkers(runtime.GOMAXPROCS(0))
}

func clampWorkers(n int) int {
	if n < minWorkers {
		return minWorkers
	}
	if n > maxWorkers {
		return maxWorkers
	}
	return n
}
