// Package joy is go-joy's public embedding surface: construct an
// Interpreter, feed it source, and read back the resulting stack. It
// wraps internal/interp the way the teacher's pkg/dwscript wraps its own
// interpreter for host applications that want Joy as a library rather
// than a CLI.
package joy

import (
	"bytes"
	"io"

	"github.com/cwbudde/go-joy/internal/ast"
	"github.com/cwbudde/go-joy/internal/errors"
	"github.com/cwbudde/go-joy/internal/interp"
)

// Option configures an Interpreter at construction time.
type Option func(*interp.Evaluator)

// WithArgv sets the argument vector exposed to argc/argv.
func WithArgv(argv []string) Option { return func(e *interp.Evaluator) { interp.WithArgv(argv)(e) } }

// WithUndefError sets the undef-error flag (default true).
func WithUndefError(v bool) Option {
	return func(e *interp.Evaluator) { interp.WithUndefError(v)(e) }
}

// WithInput overrides the reader used by get/getch/getline.
func WithInput(r io.Reader) Option { return func(e *interp.Evaluator) { interp.WithInput(r)(e) } }

// WithShellEscape enables "$"-prefixed shell-escape lines.
func WithShellEscape(allow bool) Option {
	return func(e *interp.Evaluator) { interp.WithShellEscape(allow)(e) }
}

// WithIncludePaths sets finclude's search path list.
func WithIncludePaths(paths []string) Option {
	return func(e *interp.Evaluator) { interp.WithIncludePaths(paths)(e) }
}

// Interpreter is a standalone Joy execution context: one stack, one set
// of user definitions, independent of every other Interpreter.
type Interpreter struct {
	ev  *interp.Evaluator
	out *bytes.Buffer
}

// New creates an Interpreter. Output from put/putln/. and friends is
// captured and returned from Eval/Run via Result.Output.
func New(opts ...Option) *Interpreter {
	out := &bytes.Buffer{}
	ev := interp.New(out)
	for _, o := range opts {
		o(ev)
	}
	return &Interpreter{ev: ev, out: out}
}

// Result is the observable outcome of running a Joy program: the final
// stack (bottom-first, mirroring the `stack` primitive's own ordering
// reversed for readability), anything written to stdout-equivalent
// output, and the exit code an `abort`/`quit` would have produced.
type Result struct {
	Stack    []string
	Output   string
	ExitCode int
}

// Eval runs source against the Interpreter's live stack -- a later call
// sees the definitions and stack state left by an earlier one, the same
// continuity a REPL relies on.
func (it *Interpreter) Eval(source string) (*Result, error) {
	err := it.ev.Run(source, "<eval>")
	return it.result(err)
}

// Stack returns the current stack contents, bottom-first, as values
// rather than their printed form -- for embedders that want to inspect
// results programmatically instead of parsing Result.Stack's strings.
func (it *Interpreter) Stack() []ast.Value {
	return it.ev.Stack.Items()
}

func (it *Interpreter) result(err error) (*Result, error) {
	items := it.ev.Stack.Items()
	strs := make([]string, len(items))
	for i, v := range items {
		strs[i] = v.String()
	}
	res := &Result{Stack: strs, Output: it.out.String()}
	if exit, ok := err.(*errors.Exit); ok {
		res.ExitCode = exit.Code
		return res, nil
	}
	if err != nil {
		res.ExitCode = 1
		return res, err
	}
	return res, nil
}

// Run is a one-shot convenience wrapper: construct a fresh Interpreter,
// evaluate source once, and discard it.
func Run(source string, opts ...Option) (*Result, error) {
	return New(opts...).Eval(source)
}
