// Package orchestrator provides the map-reduce training loop that drives
// objective.LogLikelihoodObjective over a batch: the numerical core stays
// single-threaded per example, and this package fans examples out across a
// worker pool. It shards a batch of examples across a worker pool built on
// golang.org/x/sync/errgroup, evaluates objective.LogLikelihoodObjective
// per example in a private per-worker gradient accumulator, and reduces
// those accumulators in worker order so the summed loss and gradient are
// identical regardless of goroutine scheduling.
package orchestrator
