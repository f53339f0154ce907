package engine

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/chazu/foilworks/pkg/design"
)

// EvalTimeout is the default hard limit for a single evaluation.
const EvalTimeout = 5 * time.Second

// Fatal evaluation failures.
var (
	ErrTimeout    = errors.New("evaluation timed out")
	ErrSuperseded = errors.New("evaluation superseded by newer request")
	ErrPanic      = errors.New("panic during evaluation")
	ErrBusy       = errors.New("too many evaluations in flight")
)

// evalResult is the internal type used to pass evaluation results through channels.
type evalResult struct {
	design   *design.Design
	errors   []EvalError
	warnings []EvalWarning
	err      error
}

// waitWithTimeout waits for a result from ch, but returns ErrTimeout
// if the evaluation exceeds timeout. It uses a generation counter to
// discard stale results from previous evaluations.
//
// On timeout, the goroutine may still be running; the generation check
// ensures its result is discarded when it eventually completes.
func waitWithTimeout(
	ch <-chan evalResult,
	gen uint64,
	mu *sync.Mutex,
	currentGen *uint64,
	timeout time.Duration,
) (*EvalResult, error) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case res := <-ch:
		mu.Lock()
		current := *currentGen
		mu.Unlock()

		if gen != current {
			return nil, ErrSuperseded
		}
		if res.err != nil {
			return nil, res.err
		}
		return &EvalResult{Design: res.design, Errors: res.errors, Warnings: res.warnings}, nil

	case <-timer.C:
		return nil, fmt.Errorf("%w after %s", ErrTimeout, timeout)
	}
}
