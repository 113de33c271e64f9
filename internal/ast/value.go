// Package ast defines the data shared by the Joy scanner, parser, and
// evaluator: the tagged-union Value type and the Term sum type a parsed
// program is built from. Value and Term are mutually recursive (a
// Quotation Value holds a term sequence; a Term may carry a Value) and so
// live together in one package; internal/interp imports this package and
// supplies all of the behavior (equality, ordering, casting, execution).
package ast

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/cwbudde/go-joy/internal/lexer"
)

// Kind tags the payload carried by a Value.
type Kind int

const (
	Integer Kind = iota
	Float
	Char
	Boolean
	String
	List
	Quotation
	Set
	Symbol
	File
)

var kindNames = [...]string{
	Integer:   "integer",
	Float:     "float",
	Char:      "char",
	Boolean:   "logical",
	String:    "string",
	List:      "list",
	Quotation: "list", // Quotation is a List at equality/printing time
	Set:       "set",
	Symbol:    "symbol",
	File:      "file",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// IsAggregate reports whether a value of this kind is a List, Quotation,
// String, or Set -- the four kinds that share aggregate operations
// (first/rest/size/concat/...).
func (k Kind) IsAggregate() bool {
	return k == List || k == Quotation || k == String || k == Set
}

// FileHandle is the payload of a File value. IsNull marks the sentinel
// "null file" produced by a failed fopen; Handle is nil in that case.
// Reader buffers Handle for fgetch/fgets; AtEOF and LastErr back feof
// and ferror, which otherwise have nothing to inspect on a raw
// io.ReadWriteCloser.
type FileHandle struct {
	Name    string
	Handle  io.ReadWriteCloser
	Reader  *bufio.Reader
	IsNull  bool
	AtEOF   bool
	LastErr error
}

// Value is a single Joy value: a kind tag plus the fields relevant to
// that kind. Unused fields for a given Kind are zero.
type Value struct {
	Kind  Kind
	Int   int64       // Integer
	Flt   float64     // Float
	Ch    rune        // Char
	Bool  bool        // Boolean
	Str   string      // String text, or Symbol name
	Items []Value     // List payload
	Quote []Term      // Quotation payload (unevaluated terms)
	Bits  uint64      // Set payload: membership bitmask over 0..63
	Fh    *FileHandle // File payload
}

// Term is one element of a parsed program or quotation: either a
// Definition (binds a name, produces no stack effect) or a Value (which
// may itself be a Symbol to resolve, a nested Quotation to push, or any
// other literal to push).
type Term struct {
	IsDefinition bool
	Def          Definition
	IsShell      bool // a "$..." shell-escape line; ShellCmd carries its text
	ShellCmd     string
	Val          Value
	Pos          lexer.Position
}

// Definition is a (name, body) pair; the parser emits a Term carrying one
// inline at the source position of its '==' clause.
type Definition struct {
	Name string
	Body []Term
}

// Constructors for the common literal kinds.

func Int(v int64) Value     { return Value{Kind: Integer, Int: v} }
func Flo(v float64) Value   { return Value{Kind: Float, Flt: v} }
func Chr(v rune) Value      { return Value{Kind: Char, Ch: v} }
func Bln(v bool) Value      { return Value{Kind: Boolean, Bool: v} }
func Str(v string) Value    { return Value{Kind: String, Str: v} }
func Sym(name string) Value { return Value{Kind: Symbol, Str: name} }
func Lst(items []Value) Value {
	if items == nil {
		items = []Value{}
	}
	return Value{Kind: List, Items: items}
}
func Quot(terms []Term) Value {
	if terms == nil {
		terms = []Term{}
	}
	return Value{Kind: Quotation, Quote: terms}
}
func SetOf(bits uint64) Value { return Value{Kind: Set, Bits: bits} }

// ValueTerm wraps a Value as a Term for use in a program or quotation.
func ValueTerm(v Value, pos lexer.Position) Term {
	return Term{Val: v, Pos: pos}
}

// SymbolTerm is shorthand for ValueTerm(Sym(name), pos).
func SymbolTerm(name string, pos lexer.Position) Term {
	return ValueTerm(Sym(name), pos)
}

// DefinitionTerm wraps a Definition as a Term.
func DefinitionTerm(def Definition, pos lexer.Position) Term {
	return Term{IsDefinition: true, Def: def, Pos: pos}
}

// ShellTerm wraps a shell-escape command line as a Term.
func ShellTerm(cmd string, pos lexer.Position) Term {
	return Term{IsShell: true, ShellCmd: cmd, Pos: pos}
}

// String renders a Value the way Joy's own printer would: quotations and
// lists as bracketed, space-separated sequences; strings double-quoted;
// chars with a leading apostrophe.
func (v Value) String() string {
	switch v.Kind {
	case Integer:
		return fmt.Sprintf("%d", v.Int)
	case Float:
		return formatFloat(v.Flt)
	case Char:
		return "'" + string(v.Ch)
	case Boolean:
		if v.Bool {
			return "true"
		}
		return "false"
	case String:
		return fmt.Sprintf("%q", v.Str)
	case Symbol:
		return v.Str
	case List:
		return bracket("[", v.Items, "]", func(x Value) string { return x.String() })
	case Quotation:
		return bracket("[", v.Quote, "]", func(t Term) string { return t.String() })
	case Set:
		return setString(v.Bits)
	case File:
		if v.Fh == nil || v.Fh.IsNull {
			return "<null-file>"
		}
		return "<file " + v.Fh.Name + ">"
	default:
		return "<?>"
	}
}

func formatFloat(f float64) string {
	s := fmt.Sprintf("%g", f)
	if !strings.ContainsAny(s, ".eEnN") {
		s += ".0"
	}
	return s
}

func setString(bits uint64) string {
	var sb strings.Builder
	sb.WriteByte('{')
	first := true
	for i := 0; i < 64; i++ {
		if bits&(1<<uint(i)) != 0 {
			if !first {
				sb.WriteByte(' ')
			}
			fmt.Fprintf(&sb, "%d", i)
			first = false
		}
	}
	sb.WriteByte('}')
	return sb.String()
}

func bracket[T any](open string, items []T, close string, render func(T) string) string {
	var sb strings.Builder
	sb.WriteString(open)
	for i, it := range items {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(render(it))
	}
	sb.WriteString(close)
	return sb.String()
}

// String renders a Term: a Definition clause, or its underlying Value
// (nested quotations render bracketed, symbols render bare).
func (t Term) String() string {
	if t.IsDefinition {
		return fmt.Sprintf("DEFINE %s == %s .", t.Def.Name, bracket("", t.Def.Body, "", func(tt Term) string { return tt.String() }))
	}
	if t.IsShell {
		return "$" + t.ShellCmd
	}
	return t.Val.String()
}
