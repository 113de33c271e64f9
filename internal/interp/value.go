package interp

import (
	"math"
	"math/bits"
	"strings"

	"github.com/cwbudde/go-joy/internal/ast"
	"github.com/cwbudde/go-joy/internal/lexer"
)

// aggLen returns the element count of an aggregate-kind Value.
func aggLen(v ast.Value) int {
	switch v.Kind {
	case ast.List:
		return len(v.Items)
	case ast.Quotation:
		return len(v.Quote)
	case ast.String:
		return len([]rune(v.Str))
	case ast.Set:
		return bits.OnesCount64(v.Bits)
	}
	return 0
}

// Truthy implements is_truthy per spec.md §4.1.
func Truthy(v ast.Value) bool {
	switch v.Kind {
	case ast.Boolean:
		return v.Bool
	case ast.Integer:
		return v.Int != 0
	case ast.Float:
		return v.Flt != 0
	case ast.String, ast.List, ast.Quotation, ast.Set:
		return aggLen(v) > 0
	case ast.File:
		return v.Fh != nil && !v.Fh.IsNull
	default:
		return true
	}
}

func isTextKind(v ast.Value) bool {
	return v.Kind == ast.String || v.Kind == ast.Symbol
}

func textOf(v ast.Value) string { return v.Str }

// numericOf returns the numeric value used by Joy's "=" for non-aggregate
// comparisons, and reports the empty-aggregate-as-zero rule for List,
// Quotation, and String.
func numericOf(v ast.Value) (float64, bool) {
	switch v.Kind {
	case ast.Integer:
		return float64(v.Int), true
	case ast.Float:
		return v.Flt, true
	case ast.Char:
		return float64(v.Ch), true
	case ast.Boolean:
		if v.Bool {
			return 1, true
		}
		return 0, true
	case ast.Set:
		return float64(v.Bits), true
	case ast.List, ast.Quotation, ast.String:
		if aggLen(v) == 0 {
			return 0, true
		}
		return 0, false
	default:
		return 0, false
	}
}

func isNonEmptyListOrQuot(v ast.Value) bool {
	return (v.Kind == ast.List || v.Kind == ast.Quotation) && aggLen(v) > 0
}

func isNonEmptyAggregate(v ast.Value) bool {
	return v.Kind.IsAggregate() && aggLen(v) > 0
}

// Equals implements Joy's "=": not structural. Non-empty List/Quotation
// values are never equal to anything. Float vs. Set compares IEEE-754
// bit pattern rather than numeric value; every other numeric-like pair
// compares by value.
func Equals(a, b ast.Value) bool {
	if isNonEmptyListOrQuot(a) || isNonEmptyListOrQuot(b) {
		return false
	}

	if a.Kind == ast.Float && b.Kind == ast.Set {
		return math.Float64bits(a.Flt) == b.Bits
	}
	if a.Kind == ast.Set && b.Kind == ast.Float {
		return math.Float64bits(b.Flt) == a.Bits
	}

	if isTextKind(a) && isTextKind(b) {
		return textOf(a) == textOf(b)
	}

	an, aok := numericOf(a)
	bn, bok := numericOf(b)
	if aok && bok {
		return an == bn
	}

	return false
}

// EqualDeep implements Joy's "equal": recursive structural equality,
// treating List and Quotation as interchangeable sequence kinds.
func EqualDeep(a, b ast.Value) bool {
	aIsSeq := a.Kind == ast.List || a.Kind == ast.Quotation
	bIsSeq := b.Kind == ast.List || b.Kind == ast.Quotation

	if aIsSeq && bIsSeq {
		sa, sb := seqOf(a), seqOf(b)
		if len(sa) != len(sb) {
			return false
		}
		for i := range sa {
			if !equalTerm(sa[i], sb[i]) {
				return false
			}
		}
		return true
	}
	if aIsSeq != bIsSeq {
		return false
	}

	if a.Kind == ast.Set && b.Kind == ast.Set {
		return a.Bits == b.Bits
	}
	if a.Kind == ast.String && b.Kind == ast.String {
		return a.Str == b.Str
	}

	return Equals(a, b)
}

func seqOf(v ast.Value) []ast.Term {
	if v.Kind == ast.List {
		terms := make([]ast.Term, len(v.Items))
		for i, it := range v.Items {
			terms[i] = ast.ValueTerm(it, lexer.Position{})
		}
		return terms
	}
	return v.Quote
}

func equalTerm(a, b ast.Term) bool {
	if a.IsDefinition != b.IsDefinition {
		return false
	}
	if a.IsDefinition {
		return a.Def.Name == b.Def.Name && equalTermSeq(a.Def.Body, b.Def.Body)
	}
	return EqualDeep(a.Val, b.Val)
}

func equalTermSeq(a, b []ast.Term) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !equalTerm(a[i], b[i]) {
			return false
		}
	}
	return true
}

// Compare implements Joy's three-way "compare": -1, 0, or 1.
func Compare(a, b ast.Value) int {
	if isNonEmptyAggregate(a) || isNonEmptyAggregate(b) {
		return 1
	}
	if a.Kind == ast.String && b.Kind == ast.String {
		return clampCompare(strings.Compare(a.Str, b.Str))
	}
	if a.Kind == ast.Symbol && b.Kind == ast.Symbol {
		if a.Str == b.Str {
			return 0
		}
		return 1
	}
	if a.Kind == ast.File && b.Kind == ast.File {
		if a.Fh == b.Fh {
			return 0
		}
		return 1
	}
	an, aok := numericOf(a)
	bn, bok := numericOf(b)
	if aok && bok {
		switch {
		case an < bn:
			return -1
		case an > bn:
			return 1
		default:
			return 0
		}
	}
	return 1
}

func clampCompare(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	default:
		return 0
	}
}
