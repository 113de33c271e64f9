// Package errors implements the error taxonomy of the Joy interpreter and
// formats diagnostics with source context, line/column information, and a
// caret pointing at the offending column.
package errors

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cwbudde/go-joy/internal/lexer"
)

// Positioned is implemented by every error kind in the taxonomy; it
// exposes the source position the error occurred at.
type Positioned interface {
	error
	Position() lexer.Position
}

// base carries the fields shared by every positioned error kind: where it
// happened, and the source text and file name needed to render context.
type base struct {
	Pos    lexer.Position
	Source string
	File   string
}

// Position implements Positioned.
func (b base) Position() lexer.Position {
	return b.Pos
}

// format renders "Error in <file>:<line>:<col>" followed by the source
// line and a caret, then the message. Matches the teacher's
// CompilerError.Format layout, generalized to the whole error taxonomy.
func (b base) format(message string, color bool) string {
	var sb strings.Builder

	if b.File != "" {
		sb.WriteString(fmt.Sprintf("Error in %s:%d:%d\n", b.File, b.Pos.Line, b.Pos.Column))
	} else {
		sb.WriteString(fmt.Sprintf("Error at line %d:%d\n", b.Pos.Line, b.Pos.Column))
	}

	if line := b.sourceLine(b.Pos.Line); line != "" {
		lineNumStr := fmt.Sprintf("%4d | ", b.Pos.Line)
		sb.WriteString(lineNumStr)
		sb.WriteString(line)
		sb.WriteString("\n")

		sb.WriteString(strings.Repeat(" ", len(lineNumStr)+b.Pos.Column-1))
		if color {
			sb.WriteString("\033[1;31m")
		}
		sb.WriteString("^")
		if color {
			sb.WriteString("\033[0m")
		}
		sb.WriteString("\n")
	}

	if color {
		sb.WriteString("\033[1m")
	}
	sb.WriteString(message)
	if color {
		sb.WriteString("\033[0m")
	}

	return sb.String()
}

func (b base) sourceLine(lineNum int) string {
	if b.Source == "" {
		return ""
	}
	lines := strings.Split(b.Source, "\n")
	if lineNum < 1 || lineNum > len(lines) {
		return ""
	}
	return lines[lineNum-1]
}

// SyntaxError reports a scanner or parser failure at a source position.
type SyntaxError struct {
	base
	Message string
}

func NewSyntaxError(pos lexer.Position, message, source, file string) *SyntaxError {
	return &SyntaxError{base: base{Pos: pos, Source: source, File: file}, Message: message}
}

func (e *SyntaxError) Error() string            { return e.Format(false) }
func (e *SyntaxError) Format(color bool) string { return e.format(e.Message, color) }

// SetMemberError reports a set literal member outside [0,63].
type SetMemberError struct {
	base
	Value int
}

func NewSetMemberError(pos lexer.Position, value int, source, file string) *SetMemberError {
	return &SetMemberError{base: base{Pos: pos, Source: source, File: file}, Value: value}
}

func (e *SetMemberError) Error() string { return e.Format(false) }
func (e *SetMemberError) Format(color bool) string {
	return e.format(fmt.Sprintf("set member %d out of range [0,63]", e.Value), color)
}

// StackUnderflow reports a primitive invoked with too few operands.
type StackUnderflow struct {
	base
	Op       string
	Required int
	Actual   int
}

func NewStackUnderflow(pos lexer.Position, op string, required, actual int, source, file string) *StackUnderflow {
	return &StackUnderflow{base: base{Pos: pos, Source: source, File: file}, Op: op, Required: required, Actual: actual}
}

func (e *StackUnderflow) Error() string { return e.Format(false) }
func (e *StackUnderflow) Format(color bool) string {
	return e.format(fmt.Sprintf("stack underflow in '%s': requires %d item(s), have %d", e.Op, e.Required, e.Actual), color)
}

// TypeError reports a primitive invoked with an operand of the wrong kind.
type TypeError struct {
	base
	Op       string
	Expected []string
	Actual   string
}

func NewTypeError(pos lexer.Position, op string, expected []string, actual, source, file string) *TypeError {
	return &TypeError{base: base{Pos: pos, Source: source, File: file}, Op: op, Expected: expected, Actual: actual}
}

func (e *TypeError) Error() string { return e.Format(false) }
func (e *TypeError) Format(color bool) string {
	return e.format(fmt.Sprintf("type error in '%s': expected %s, got %s", e.Op, strings.Join(e.Expected, " or "), e.Actual), color)
}

// UndefinedWord reports a symbol that resolved to neither a primitive nor
// a user definition, raised only when the evaluator's undef-error flag is
// set.
type UndefinedWord struct {
	base
	Name string
}

func NewUndefinedWord(pos lexer.Position, name, source, file string) *UndefinedWord {
	return &UndefinedWord{base: base{Pos: pos, Source: source, File: file}, Name: name}
}

func (e *UndefinedWord) Error() string { return e.Format(false) }
func (e *UndefinedWord) Format(color bool) string {
	return e.format("undefined word: "+e.Name, color)
}

// DivisionByZero reports a zero divisor passed to an arithmetic primitive.
type DivisionByZero struct {
	base
	Op string
}

func NewDivisionByZero(pos lexer.Position, op, source, file string) *DivisionByZero {
	return &DivisionByZero{base: base{Pos: pos, Source: source, File: file}, Op: op}
}

func (e *DivisionByZero) Error() string { return e.Format(false) }
func (e *DivisionByZero) Format(color bool) string {
	return e.format(fmt.Sprintf("division by zero in '%s'", e.Op), color)
}

// EmptyAggregate reports an operation (first, rest, at, of, ...) applied
// to an empty aggregate, or an out-of-bounds index. Index and Size are
// only meaningful when HasBounds is true.
type EmptyAggregate struct {
	base
	Op        string
	Index     int
	Size      int
	HasBounds bool
}

func NewEmptyAggregate(pos lexer.Position, op, source, file string) *EmptyAggregate {
	return &EmptyAggregate{base: base{Pos: pos, Source: source, File: file}, Op: op}
}

func NewEmptyAggregateBounds(pos lexer.Position, op string, index, size int, source, file string) *EmptyAggregate {
	return &EmptyAggregate{base: base{Pos: pos, Source: source, File: file}, Op: op, Index: index, Size: size, HasBounds: true}
}

func (e *EmptyAggregate) Error() string { return e.Format(false) }
func (e *EmptyAggregate) Format(color bool) string {
	if e.HasBounds {
		return e.format(fmt.Sprintf("'%s': index %d out of bounds for size %d", e.Op, e.Index, e.Size), color)
	}
	return e.format(fmt.Sprintf("'%s': empty aggregate", e.Op), color)
}

// IncludeError reports a failed "include" directive, carrying the path
// that failed and the chain of includes active at the time.
type IncludeError struct {
	base
	Path  string
	Stack []string
}

func NewIncludeError(pos lexer.Position, path string, stack []string, source, file string) *IncludeError {
	return &IncludeError{base: base{Pos: pos, Source: source, File: file}, Path: path, Stack: stack}
}

func (e *IncludeError) Error() string { return e.Format(false) }
func (e *IncludeError) Format(color bool) string {
	msg := fmt.Sprintf("include error: %s", e.Path)
	if len(e.Stack) > 0 {
		msg += " (include stack: " + strings.Join(e.Stack, " -> ") + ")"
	}
	return e.format(msg, color)
}

// Internal reports a bug surfaced to the user, carrying a stack trace.
type Internal struct {
	base
	Message string
	Trace   StackTrace
}

func NewInternal(pos lexer.Position, message string, trace StackTrace, source, file string) *Internal {
	return &Internal{base: base{Pos: pos, Source: source, File: file}, Message: message, Trace: trace}
}

func (e *Internal) Error() string { return e.Format(false) }
func (e *Internal) Format(color bool) string {
	msg := "internal error: " + e.Message
	if trace := e.Trace.String(); trace != "" {
		msg += "\n" + trace
	}
	return e.format(msg, color)
}

// Exit signals a requested process exit from quit/abort. It is not a
// failure per se: Evaluator.Run returns it like any other error, and
// cmd/joy translates it into a process exit code (pkg/joy into
// Result.ExitCode).
type Exit struct {
	Code int
}

func (e *Exit) Error() string {
	return "exit(" + strconv.Itoa(e.Code) + ")"
}

// FormatErrors formats multiple positioned errors, one after another.
func FormatErrors(errs []Positioned, color bool) string {
	if len(errs) == 0 {
		return ""
	}
	if len(errs) == 1 {
		if f, ok := errs[0].(interface{ Format(bool) string }); ok {
			return f.Format(color)
		}
		return errs[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d error(s):\n\n", len(errs)))
	for i, e := range errs {
		sb.WriteString(fmt.Sprintf("[Error %d of %d]\n", i+1, len(errs)))
		if f, ok := e.(interface{ Format(bool) string }); ok {
			sb.WriteString(f.Format(color))
		} else {
			sb.WriteString(e.Error())
		}
		if i < len(errs)-1 {
			sb.WriteString("\n\n")
		}
	}
	return sb.String()
}
