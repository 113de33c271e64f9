package joy_test

import (
	"strings"
	"testing"

	"github.com/cwbudde/go-joy/pkg/joy"
)

// stackTop runs source and returns the printed top-of-stack item, failing
// the test if the run errored or left the stack empty.
func stackTop(t *testing.T, source string) string {
	t.Helper()
	res, err := joy.Run(source)
	if err != nil {
		t.Fatalf("joy.Run(%q) error: %v", source, err)
	}
	if len(res.Stack) == 0 {
		t.Fatalf("joy.Run(%q) left an empty stack", source)
	}
	return res.Stack[len(res.Stack)-1]
}

// TestConcreteScenarios exercises every numbered scenario in spec.md §8.
func TestConcreteScenarios(t *testing.T) {
	cases := []struct {
		name   string
		source string
		want   string
	}{
		{"addition", "3 4 +", "7"},
		{"define-square", "DEFINE sq == dup * . 7 sq", "49"},
		{"factorial-linrec", "5 [0 =] [pop 1] [dup 1 -] [*] linrec", "120"},
		{"fib10-binrec", "10 [small] [] [pred dup pred] [+] binrec", "55"},
		{"filter-fold-sum", "[1 2 3 4 5] [2 rem 0 =] filter 0 [+] fold", "6"},
		{"reverse-string", `"hello" reverse`, `"olleh"`},
		{"gcd-tailrec", "48 18 [dup 0 =] [pop] [dup rollup rem] tailrec", "6"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := stackTop(t, c.source)
			if got != c.want {
				t.Fatalf("%s = %q, want %q", c.source, got, c.want)
			}
		})
	}
}

// TestCondScenario checks scenario 7, which leaves two stack items.
func TestCondScenario(t *testing.T) {
	res, err := joy.Run(`[[[dup 1 =] "one"] [[dup 2 =] "two"] ["other"]] 2 swap cond`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Stack) != 2 || res.Stack[0] != "2" || res.Stack[1] != `"two"` {
		t.Fatalf("stack = %v, want [2 \"two\"]", res.Stack)
	}
}

// TestRedefinitionLocality is invariant 2 from spec.md §8: a Definition
// term only takes effect for executions occurring after its source
// position in the term stream.
func TestRedefinitionLocality(t *testing.T) {
	res, err := joy.Run(`DEFINE f == 1 . f DEFINE f == 2 . f`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Stack) != 2 || res.Stack[0] != "1" || res.Stack[1] != "2" {
		t.Fatalf("stack = %v, want [1 2]", res.Stack)
	}
}

// TestSnapshotPurity is invariant 3: "[P] nullary" leaves exactly one new
// value on top and the rest of the stack identical to before.
func TestSnapshotPurity(t *testing.T) {
	res, err := joy.Run(`1 2 3 [dup 10 *] nullary`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"1", "2", "3", "30"}
	if len(res.Stack) != len(want) {
		t.Fatalf("stack = %v, want %v", res.Stack, want)
	}
	for i := range want {
		if res.Stack[i] != want[i] {
			t.Fatalf("stack = %v, want %v", res.Stack, want)
		}
	}
}

// TestKindPreservation is invariant 4: map/filter/reverse/take/drop carry
// the aggregate kind of their input through to their output.
func TestKindPreservation(t *testing.T) {
	cases := []struct {
		name, source, want string
	}{
		{"map-preserves-string", `"abc" [ord succ chr] map`, `"bcd"`},
		{"filter-preserves-set", `{1 2 3 4} [2 >] filter`, "{3 4}"},
		{"reverse-preserves-list", "[1 2 3] reverse", "[3 2 1]"},
		{"take-preserves-string", `"hello" 3 take`, `"hel"`},
		{"drop-preserves-list", "[1 2 3 4] 2 drop", "[3 4]"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := stackTop(t, c.source)
			if got != c.want {
				t.Fatalf("%s = %q, want %q", c.source, got, c.want)
			}
		})
	}
}

// TestEqualityVsDeepEquality is invariant 5: for a non-empty list L,
// "L L =" is false but "L L equal" is true.
func TestEqualityVsDeepEquality(t *testing.T) {
	if got := stackTop(t, "[1 2 3] [1 2 3] ="); got != "false" {
		t.Fatalf("L L = = %q, want false", got)
	}
	if got := stackTop(t, "[1 2 3] [1 2 3] equal"); got != "true" {
		t.Fatalf("L L equal = %q, want true", got)
	}
}

// Invariant 6 (float vs. set bit-pattern equality) has no surface-level
// Joy primitive to construct a float from an arbitrary bit pattern, so it
// is exercised directly against internal/interp.Equals in
// internal/interp/value_test.go instead of through this package.

// TestBoundaryBehaviors checks the §8 boundary cases.
func TestBoundaryBehaviors(t *testing.T) {
	cases := []struct{ source, want string }{
		{"{} null", "true"},
		{"{} small", "true"},
		{"[] size", "0"},
		{"[1] small", "true"},
		{"[1 2] small", "false"},
		{"0 null", "true"},
		{"1 small", "true"},
		{"2 small", "false"},
	}
	for _, c := range cases {
		if got := stackTop(t, c.source); got != c.want {
			t.Fatalf("%s = %q, want %q", c.source, got, c.want)
		}
	}
}

// TestDivisionByZeroFails checks that integer division by zero raises a
// DivisionByZero error rather than succeeding or panicking.
func TestDivisionByZeroFails(t *testing.T) {
	_, err := joy.Run("5 0 /")
	if err == nil {
		t.Fatal("5 0 / succeeded, want DivisionByZero")
	}
	if !strings.Contains(err.Error(), "zero") {
		t.Fatalf("error = %v, want a division-by-zero message", err)
	}
}

// TestSetMemberOutOfRangeFails checks that a set literal containing a
// member outside [0,63] fails at parse time.
func TestSetMemberOutOfRangeFails(t *testing.T) {
	_, err := joy.Run("{0 64} .")
	if err == nil {
		t.Fatal("{0 64} parsed successfully, want a set-member error")
	}
}

// TestRoundTrips checks the round-trip and idempotence properties in §8.
func TestRoundTrips(t *testing.T) {
	if got := stackTop(t, `"hi" intern name`); got != `"hi"` {
		t.Fatalf(`"hi" intern name = %q, want "hi"`, got)
	}
	if got := stackTop(t, "[1 2 3] reverse reverse [1 2 3] equal"); got != "true" {
		t.Fatalf("double reverse = %q, want true", got)
	}
	if got := stackTop(t, "65 chr ord"); got != "65" {
		t.Fatalf("65 chr ord = %q, want 65", got)
	}
}

// TestUndefinedWordIsFatalByDefault checks that an unresolved symbol is a
// fatal error under the default undef-error flag.
func TestUndefinedWordIsFatalByDefault(t *testing.T) {
	_, err := joy.Run("totally-not-a-word")
	if err == nil {
		t.Fatal("expected an UndefinedWord error")
	}
}

// TestUndefErrorDisabledPushesSymbol checks that disabling undef-error
// pushes the unresolved name as a Symbol instead of failing.
func TestUndefErrorDisabledPushesSymbol(t *testing.T) {
	res, err := joy.Run("totally-not-a-word", joy.WithUndefError(false))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Stack) != 1 || res.Stack[0] != "totally-not-a-word" {
		t.Fatalf("stack = %v, want [totally-not-a-word]", res.Stack)
	}
}

// TestInterpreterContinuity checks that successive Eval calls on the same
// Interpreter see each other's stack and definitions, as a REPL requires.
func TestInterpreterContinuity(t *testing.T) {
	it := joy.New()
	if _, err := it.Eval("DEFINE double == dup + ."); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := it.Eval("21 double"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	stack := it.Stack()
	if len(stack) != 1 || stack[0].Int != 42 {
		t.Fatalf("stack = %v, want [42]", stack)
	}
}
