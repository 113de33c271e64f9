package interp

import (
	"bufio"
	"io"
	"math/rand"
	"os/exec"
	"time"

	"github.com/cwbudde/go-joy/internal/ast"
	"github.com/cwbudde/go-joy/internal/errors"
	"github.com/cwbudde/go-joy/internal/include"
	"github.com/cwbudde/go-joy/internal/lexer"
	"github.com/cwbudde/go-joy/internal/parser"
)

// Evaluator owns one Joy execution context: a stack, a user-definitions
// map, the registry of built-in primitives, the evaluator-wide flags
// from spec.md §3, and the I/O streams primitives read and write. Two
// Evaluators never share a stack or a definitions map.
type Evaluator struct {
	Stack      *Stack
	Defs       map[string]ast.Value // name -> Quotation value
	Registry   *PrimitiveRegistry
	UndefError  bool
	EchoMode    int64
	Autoput     int64
	Argv        []string
	AllowShell  bool

	Out io.Writer
	In  *bufio.Reader
	Rnd *rand.Rand

	Source string
	File   string
	pos    lexer.Position

	Started time.Time
	Include *include.Includer
}

// Option configures an Evaluator at construction time.
type Option func(*Evaluator)

// WithArgv sets the argument vector exposed to argc/argv.
func WithArgv(argv []string) Option { return func(e *Evaluator) { e.Argv = argv } }

// WithUndefError sets the undef-error flag (default true: an unresolved
// symbol is a fatal UndefinedWord rather than pushed as data).
func WithUndefError(v bool) Option { return func(e *Evaluator) { e.UndefError = v } }

// WithInput overrides the reader used by get/getch/getline. Without it
// the reader is empty, so reads see end of input; cmd/joy passes os.Stdin.
func WithInput(r io.Reader) Option { return func(e *Evaluator) { e.In = bufio.NewReader(r) } }

// WithShellEscape enables lexing of "$"-prefixed lines as shell-escape
// commands and their execution via "sh -c". Disabled by default.
func WithShellEscape(allow bool) Option { return func(e *Evaluator) { e.AllowShell = allow } }

// WithIncludePaths sets the search path list finclude resolves relative
// paths against, in addition to the path as given.
func WithIncludePaths(paths []string) Option {
	return func(e *Evaluator) { e.Include = include.New(paths) }
}

// New creates an Evaluator writing primitive output to out.
func New(out io.Writer, opts ...Option) *Evaluator {
	ev := &Evaluator{
		Stack:      NewStack(),
		Defs:       make(map[string]ast.Value),
		Registry:   NewStandardRegistry(),
		UndefError: true,
		Out:        out,
		In:         bufio.NewReader(io.LimitReader(nil, 0)),
		Rnd:        rand.New(rand.NewSource(time.Now().UnixNano())),
		Started:    time.Now(),
		Include:    include.New(nil),
	}
	for _, o := range opts {
		o(ev)
	}
	return ev
}

// Run scans, parses, and executes source in one step; file is used only
// for diagnostics.
func (ev *Evaluator) Run(source, file string) error {
	lx := lexer.New(source, lexer.WithShellEscape(ev.AllowShell))
	p := parser.New(lx, source, file)
	terms, err := p.Parse()
	if err != nil {
		return err
	}
	if lexErrs := lx.Errors(); len(lexErrs) > 0 {
		first := lexErrs[0]
		return errors.NewSyntaxError(first.Pos, first.Message, source, file)
	}
	ev.Source = source
	ev.File = file
	return ev.Execute(terms)
}

// Execute runs terms against the evaluator's live stack: the same loop
// used for top-level programs, user-definition bodies, and quotations
// run by combinators.
func (ev *Evaluator) Execute(terms []ast.Term) error {
	for _, t := range terms {
		if err := ev.execTerm(t); err != nil {
			return err
		}
	}
	return nil
}

func (ev *Evaluator) execTerm(t ast.Term) error {
	ev.pos = t.Pos

	if t.IsDefinition {
		ev.Defs[t.Def.Name] = ast.Quot(t.Def.Body)
		return nil
	}

	if t.IsShell {
		if !ev.AllowShell {
			return nil
		}
		cmd := exec.Command("sh", "-c", t.ShellCmd)
		cmd.Stdout = ev.Out
		cmd.Stderr = ev.Out
		cmd.Run()
		return nil
	}

	if t.Val.Kind == ast.Symbol {
		return ev.Resolve(t.Val.Str)
	}

	ev.Stack.Push(t.Val)
	return nil
}

// Resolve looks up name in the primitive registry, then the user
// definitions, and either executes it or, if undef-error is false,
// pushes name as a Symbol value.
func (ev *Evaluator) Resolve(name string) error {
	if prim, ok := ev.Registry.Lookup(name); ok {
		if ev.Stack.Depth() < prim.Arity {
			return ev.Underflow(name, prim.Arity)
		}
		return prim.Fn(ev)
	}
	if body, ok := ev.Defs[name]; ok {
		return ev.Execute(body.Quote)
	}
	if ev.UndefError {
		return errors.NewUndefinedWord(ev.pos, name, ev.Source, ev.File)
	}
	ev.Stack.Push(ast.Sym(name))
	return nil
}

// ExecQuotation runs the terms of a Quotation-kind value (or, for
// convenience, interprets a List's items as pushable literals).
func (ev *Evaluator) ExecQuotation(v ast.Value) error {
	if v.Kind == ast.Quotation {
		return ev.Execute(v.Quote)
	}
	if v.Kind == ast.List {
		for _, item := range v.Items {
			ev.Stack.Push(item)
		}
		return nil
	}
	return ev.TypeError("i", []string{"quotation"}, v.Kind)
}

// TypeCode returns the typeof/opcase type tag for v (spec.md §6); a
// Symbol is tagged 3 when bound to a primitive, 2 when bound to a user
// definition, or 0 when neither (a plain interned name).
func (ev *Evaluator) TypeCode(v ast.Value) int {
	switch v.Kind {
	case ast.Boolean:
		return 4
	case ast.Char:
		return 5
	case ast.Integer:
		return 6
	case ast.Set:
		return 7
	case ast.String:
		return 8
	case ast.List, ast.Quotation:
		return 9
	case ast.Float:
		return 10
	case ast.File:
		return 11
	case ast.Symbol:
		if _, ok := ev.Registry.Lookup(v.Str); ok {
			return 3
		}
		if _, ok := ev.Defs[v.Str]; ok {
			return 2
		}
		return 0
	default:
		return 0
	}
}

// Error-construction helpers shared by every primitive implementation.

func (ev *Evaluator) Underflow(op string, required int) error {
	return errors.NewStackUnderflow(ev.pos, op, required, ev.Stack.Depth(), ev.Source, ev.File)
}

func (ev *Evaluator) TypeError(op string, expected []string, actual ast.Kind) error {
	return errors.NewTypeError(ev.pos, op, expected, actual.String(), ev.Source, ev.File)
}

func (ev *Evaluator) DivByZero(op string) error {
	return errors.NewDivisionByZero(ev.pos, op, ev.Source, ev.File)
}

func (ev *Evaluator) EmptyAgg(op string) error {
	return errors.NewEmptyAggregate(ev.pos, op, ev.Source, ev.File)
}

func (ev *Evaluator) BoundsErr(op string, index, size int) error {
	return errors.NewEmptyAggregateBounds(ev.pos, op, index, size, ev.Source, ev.File)
}

func (ev *Evaluator) SetMemberErr(value int) error {
	return errors.NewSetMemberError(ev.pos, value, ev.Source, ev.File)
}
