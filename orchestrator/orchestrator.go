package orchestrator

import (
	"context"
	"fmt"

	"github.com/crfchain/crfcore/objective"
	"golang.org/x/sync/errgroup"
)

// Orchestrator fans a batch of examples out across a worker pool and
// reduces their loss/gradient contributions deterministically.
type Orchestrator struct {
	Objective *objective.LogLikelihoodObjective
}

// New returns an Orchestrator driving obj.
func New(obj *objective.LogLikelihoodObjective) *Orchestrator {
	return &Orchestrator{Objective: obj}
}

// Run evaluates every example in examples under theta, summing their
// log-likelihood contributions into loss and their sparse gradients into
// gradient (a freshly allocated slice the same length as theta). Examples
// are partitioned into workers contiguous shards; each shard accumulates
// into its own private gradient buffer, and shards are reduced in
// ascending shard order once every worker finishes, so the result is
// identical across runs regardless of goroutine scheduling.
//
// Fails with ErrInvalidWorkerCount if workers < 1. If any example's
// Evaluate call errors (illegal gold path, dimension mismatch, an
// infeasible or numerically unstable example), Run returns that error
// wrapped with the example's index, and the group's context is canceled so
// other in-flight workers stop early rather than complete wasted work.
func (o *Orchestrator) Run(ctx context.Context, examples []*objective.IndexedExample, theta []float64, workers int) (float64, []float64, error) {
	if workers < 1 {
		return 0, nil, ErrInvalidWorkerCount
	}

	n := len(examples)
	if n == 0 {
		return 0, make([]float64, len(theta)), nil
	}
	if workers > n {
		workers = n
	}

	partialLoss := make([]float64, workers)
	partialGrad := make([][]float64, workers)

	group, groupCtx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		w := w
		lo, hi := shardBounds(n, workers, w)

		group.Go(func() error {
			// Each worker gets its own objective over the shared, read-only
			// Encoder: LogLikelihoodObjective.kernel carries reusable scratch
			// buffers that are not safe for concurrent Evaluate calls.
			workerObj := objective.New(o.Objective.Encoder)
			localGrad := make([]float64, len(theta))
			var localLoss float64

			for i := lo; i < hi; i++ {
				select {
				case <-groupCtx.Done():
					return groupCtx.Err()
				default:
				}

				ll, err := workerObj.Evaluate(theta, localGrad, examples[i])
				if err != nil {
					return fmt.Errorf("orchestrator: example %d: %w", i, err)
				}
				localLoss += ll
			}

			partialLoss[w] = localLoss
			partialGrad[w] = localGrad
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return 0, nil, err
	}

	var loss float64
	gradient := make([]float64, len(theta))
	for w := 0; w < workers; w++ {
		loss += partialLoss[w]
		for i, v := range partialGrad[w] {
			gradient[i] += v
		}
	}

	return loss, gradient, nil
}

// shardBounds returns the [lo, hi) range of example indices assigned to
// shard w of workers, balanced so the first n%workers shards get one extra
// item rather than leaving any shard empty while others overflow.
func shardBounds(n, workers, w int) (int, int) {
	base := n / workers
	rem := n % workers

	lo := w*base + min(w, rem)
	hi := lo + base
	if w < rem {
		hi++
	}
	return lo, hi
}
