package interp

import (
	"math"
	"testing"

	"github.com/cwbudde/go-joy/internal/ast"
)

// TestFloatSetBitEquality is testable property §8 invariant 6: if a set's
// 64-bit membership pattern equals a float's IEEE-754 bit pattern, the two
// compare equal under Equals (Joy's "=").
func TestFloatSetBitEquality(t *testing.T) {
	set := ast.SetOf(0b11) // members {0, 1}
	f := ast.Flo(math.Float64frombits(0b11))

	if !Equals(f, set) {
		t.Fatalf("Equals(float, set) = false, want true for matching bit patterns")
	}
	if !Equals(set, f) {
		t.Fatalf("Equals(set, float) = false, want true for matching bit patterns")
	}

	other := ast.Flo(math.Float64frombits(0b101))
	if Equals(other, set) {
		t.Fatal("Equals(float, set) = true for mismatched bit patterns, want false")
	}
}

// TestNonEmptyAggregatesNeverEqual is invariant 5: non-empty List/Quotation
// values are never "=" to anything, including themselves.
func TestNonEmptyAggregatesNeverEqual(t *testing.T) {
	l := ast.Lst([]ast.Value{ast.Int(1), ast.Int(2)})
	if Equals(l, l) {
		t.Fatal("Equals(L, L) = true for a non-empty list, want false")
	}
	if !EqualDeep(l, l) {
		t.Fatal("EqualDeep(L, L) = false for a non-empty list, want true")
	}
}

// TestEmptyAggregatesEqualEachOtherAndZero checks the §4.1 rule that empty
// aggregates equal each other and equal zero.
func TestEmptyAggregatesEqualEachOtherAndZero(t *testing.T) {
	emptyList := ast.Lst(nil)
	emptyStr := ast.Str("")
	zero := ast.Int(0)

	if !Equals(emptyList, emptyStr) {
		t.Fatal("Equals(empty list, empty string) = false, want true")
	}
	if !Equals(emptyList, zero) {
		t.Fatal("Equals(empty list, 0) = false, want true")
	}
}

// TestSymbolEqualsStringOfSameText checks §4.1: "a Symbol equals a String
// of the same text."
func TestSymbolEqualsStringOfSameText(t *testing.T) {
	if !Equals(ast.Sym("abc"), ast.Str("abc")) {
		t.Fatal("Equals(Symbol(abc), String(abc)) = false, want true")
	}
}

// TestCompareNonEmptyAggregateAlwaysOne checks Compare's rule that any
// non-empty aggregate operand yields 1 regardless of the other operand.
func TestCompareNonEmptyAggregateAlwaysOne(t *testing.T) {
	l := ast.Lst([]ast.Value{ast.Int(1)})
	if got := Compare(l, ast.Int(999)); got != 1 {
		t.Fatalf("Compare(nonEmptyList, 999) = %d, want 1", got)
	}
}

// TestTruthyRules spot-checks is_truthy for each kind named in §4.1.
func TestTruthyRules(t *testing.T) {
	cases := []struct {
		name string
		v    ast.Value
		want bool
	}{
		{"false boolean", ast.Bln(false), false},
		{"true boolean", ast.Bln(true), true},
		{"zero integer", ast.Int(0), false},
		{"nonzero integer", ast.Int(1), true},
		{"zero float", ast.Flo(0), false},
		{"empty string", ast.Str(""), false},
		{"nonempty string", ast.Str("x"), true},
		{"empty list", ast.Lst(nil), false},
		{"nonempty list", ast.Lst([]ast.Value{ast.Int(1)}), true},
		{"empty set", ast.SetOf(0), false},
		{"nonempty set", ast.SetOf(1), true},
	}
	for _, c := range cases {
		if got := Truthy(c.v); got != c.want {
			t.Errorf("Truthy(%s) = %v, want %v", c.name, got, c.want)
		}
	}
}
