// Package engine provides the Lisp evaluation engine for foilworks.
// It wraps zygomys in a sandboxed environment and produces a wing Design
// from user source code.
package engine

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/chazu/foilworks/pkg/airfoil"
	"github.com/chazu/foilworks/pkg/design"
	zygo "github.com/glycerine/zygomys/zygo"
	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"
)

// EvalError represents a non-fatal error encountered during evaluation,
// such as a parse error or a runtime error in user code.
type EvalError struct {
	Line    int    `json:"line,omitempty"`
	Col     int    `json:"col,omitempty"`
	Message string `json:"message"`
}

func (e EvalError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Message)
	}
	return e.Message
}

// EvalWarning represents a non-fatal warning produced during evaluation.
type EvalWarning struct {
	Section string `json:"section,omitempty"`
	Message string `json:"message"`
}

// EvalResult bundles the full output of an evaluation for use by UI bindings.
type EvalResult struct {
	Design   *design.Design
	Errors   []EvalError
	Warnings []EvalWarning
}

// Engine wraps the zygomys interpreter for airfoil scripts.
// It is safe for concurrent use; each call to Evaluate creates a fresh
// sandboxed environment for determinism. A newer call supersedes an
// older one still in flight, so servers create one Engine per request.
type Engine struct {
	mu         sync.Mutex
	generation uint64

	timeout   time.Duration
	lib       airfoil.BaseLibrary
	maxPoints int
	slots     *semaphore.Weighted
	log       *zap.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithTimeout overrides EvalTimeout.
func WithTimeout(d time.Duration) Option {
	return func(e *Engine) {
		if d > 0 {
			e.timeout = d
		}
	}
}

// WithBaseLibrary supplies the 6-series base shapes used by naca6.
func WithBaseLibrary(lib airfoil.BaseLibrary) Option {
	return func(e *Engine) { e.lib = lib }
}

// WithMaxPoints caps the :n argument of the generator builtins.
// Zero means no cap.
func WithMaxPoints(n int) Option {
	return func(e *Engine) { e.maxPoints = n }
}

// WithSlots bounds the evaluations in flight across every Engine sharing
// sem. A slot is held until the interpreter goroutine returns, which may
// be long after a timeout has been reported, since zygomys cannot be
// interrupted mid-run. When no slot is free Evaluate fails with ErrBusy.
func WithSlots(sem *semaphore.Weighted) Option {
	return func(e *Engine) { e.slots = sem }
}

// WithLogger sets the logger used for evaluation diagnostics.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

// NewEngine creates a new Engine instance.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{timeout: EvalTimeout, log: zap.NewNop()}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Evaluate takes Lisp source code and produces a new Design.
// Each call creates a fresh zygomys sandbox for deterministic evaluation.
//
// Return semantics:
//   - On success: returns design + nil errors + nil error
//   - On parse/eval failure: returns nil design + eval errors + nil error
//   - On fatal failure (timeout, panic, busy): returns nil + nil + error
func (e *Engine) Evaluate(source string) (*design.Design, []EvalError, error) {
	res, err := e.EvaluateFull(source)
	if err != nil {
		return nil, nil, err
	}
	return res.Design, res.Errors, nil
}

// EvaluateFull is Evaluate plus design validation warnings.
func (e *Engine) EvaluateFull(source string) (*EvalResult, error) {
	if e.slots != nil && !e.slots.TryAcquire(1) {
		return nil, ErrBusy
	}

	e.mu.Lock()
	e.generation++
	gen := e.generation
	e.mu.Unlock()

	ch := make(chan evalResult, 1)
	start := time.Now()

	go func() {
		if e.slots != nil {
			defer e.slots.Release(1)
		}
		defer func() {
			if r := recover(); r != nil {
				ch <- evalResult{err: fmt.Errorf("%w: %v", ErrPanic, r)}
			}
		}()

		d, evalErrs, warnings, err := e.evaluate(source)
		ch <- evalResult{design: d, errors: evalErrs, warnings: warnings, err: err}
	}()

	res, err := waitWithTimeout(ch, gen, &e.mu, &e.generation, e.timeout)
	if err != nil {
		e.log.Warn("evaluation failed", zap.Uint64("generation", gen), zap.Error(err))
		return nil, err
	}
	e.log.Debug("evaluation finished",
		zap.Uint64("generation", gen),
		zap.Duration("elapsed", time.Since(start)),
		zap.Int("errors", len(res.Errors)),
		zap.Int("warnings", len(res.Warnings)),
	)
	return res, nil
}

// evaluate performs the actual zygomys evaluation in a fresh sandbox.
func (e *Engine) evaluate(source string) (*design.Design, []EvalError, []EvalWarning, error) {
	// Empty source is a valid program that produces an empty design.
	if strings.TrimSpace(source) == "" {
		return design.New(), nil, nil, nil
	}

	// Sandbox mode prevents user code from accessing the filesystem or syscalls.
	env := zygo.NewZlispSandbox()
	defer env.Stop()

	d := design.New()
	registerBuiltins(env, d, builtinConfig{lib: e.lib, maxPoints: e.maxPoints})

	err := env.LoadString(preprocessSource(source))
	if err != nil {
		return nil, parseZygomysError(err), nil, nil
	}

	_, err = env.Run()
	if err != nil {
		return nil, parseZygomysError(err), nil, nil
	}

	errs, warnings := design.Validate(d)
	if len(errs) > 0 {
		evalErrs := make([]EvalError, len(errs))
		for i, f := range errs {
			evalErrs[i] = EvalError{Message: f.Error()}
		}
		return nil, evalErrs, nil, nil
	}

	var evalWarnings []EvalWarning
	for _, w := range warnings {
		evalWarnings = append(evalWarnings, EvalWarning{Section: w.Section, Message: w.Message})
	}
	return d, nil, evalWarnings, nil
}

// linePattern matches zygomys error messages that include "Error on line N: ..."
var linePattern = regexp.MustCompile(`(?i)(?:error )?on line (\d+):\s*(.*)`)

// linePatternShort matches simpler "line N: ..." patterns.
var linePatternShort = regexp.MustCompile(`(?i)^line (\d+):\s*(.*)`)

// parseZygomysError converts a zygomys error into one or more EvalError values.
// It attempts to extract line number information from the error message.
func parseZygomysError(err error) []EvalError {
	msg := err.Error()

	// zygomys formats parse errors as "Error on line N: <details>\n"
	for _, re := range []*regexp.Regexp{linePattern, linePatternShort} {
		if m := re.FindStringSubmatch(msg); m != nil {
			line, _ := strconv.Atoi(m[1])
			return []EvalError{{
				Line:    line,
				Message: strings.TrimSpace(m[2]),
			}}
		}
	}

	// Fallback: no line info available.
	return []EvalError{{Message: strings.TrimSpace(msg)}}
}
