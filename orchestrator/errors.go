package orchestrator

import "errors"

// ErrInvalidWorkerCount indicates Run was called with workers < 1.
var ErrInvalidWorkerCount = errors.New("orchestrator: workers must be >= 1")
