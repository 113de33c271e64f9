package interp

import (
	"math"
	"math/rand"

	"github.com/cwbudde/go-joy/internal/ast"
)

// asFloat reports the float64 value of an Integer or Float, for
// primitives that accept either and promote to float on a mixed pair.
func asFloat(v ast.Value) (float64, bool) {
	switch v.Kind {
	case ast.Integer:
		return float64(v.Int), true
	case ast.Float:
		return v.Flt, true
	}
	return 0, false
}

func isNumeric(v ast.Value) bool { return v.Kind == ast.Integer || v.Kind == ast.Float }

// numericBinOp pops two numeric operands and applies intOp when both are
// Integer, otherwise promotes both to float and applies floatOp.
func numericBinOp(ev *Evaluator, name string, intOp func(a, b int64) (int64, error), floatOp func(a, b float64) float64) error {
	vs, _ := ev.Stack.PopN(2)
	b, a := vs[0], vs[1]
	if !isNumeric(a) {
		return restoreTypeErr(ev, name, []string{"integer", "float"}, a, vs)
	}
	if !isNumeric(b) {
		return restoreTypeErr(ev, name, []string{"integer", "float"}, b, vs)
	}
	if a.Kind == ast.Integer && b.Kind == ast.Integer && intOp != nil {
		r, err := intOp(a.Int, b.Int)
		if err != nil {
			ev.Stack.PushAll(reversed(vs))
			return err
		}
		ev.Stack.Push(ast.Int(r))
		return nil
	}
	af, _ := asFloat(a)
	bf, _ := asFloat(b)
	ev.Stack.Push(ast.Flo(floatOp(af, bf)))
	return nil
}

func reversed(vs []ast.Value) []ast.Value {
	out := make([]ast.Value, len(vs))
	for i, v := range vs {
		out[len(vs)-1-i] = v
	}
	return out
}

func restoreTypeErr(ev *Evaluator, name string, expected []string, bad ast.Value, popped []ast.Value) error {
	ev.Stack.PushAll(reversed(popped))
	return ev.TypeError(name, expected, bad.Kind)
}

func registerArithPrimitives(r *PrimitiveRegistry) {
	reg := func(name string, arity int, sig string, fn PrimFunc) {
		r.Register(&Primitive{Name: name, Arity: arity, Signature: sig, Fn: fn})
	}

	reg("+", 2, "I J -> I+J", func(ev *Evaluator) error {
		return numericBinOp(ev, "+", func(a, b int64) (int64, error) { return a + b, nil }, func(a, b float64) float64 { return a + b })
	})
	reg("-", 2, "I J -> I-J", func(ev *Evaluator) error {
		return numericBinOp(ev, "-", func(a, b int64) (int64, error) { return a - b, nil }, func(a, b float64) float64 { return a - b })
	})
	reg("*", 2, "I J -> I*J", func(ev *Evaluator) error {
		return numericBinOp(ev, "*", func(a, b int64) (int64, error) { return a * b, nil }, func(a, b float64) float64 { return a * b })
	})
	reg("/", 2, "I J -> I/J", func(ev *Evaluator) error {
		return numericBinOp(ev, "/",
			func(a, b int64) (int64, error) {
				if b == 0 {
					return 0, ev.DivByZero("/")
				}
				return floorDiv(a, b), nil
			},
			func(a, b float64) float64 { return a / b })
	})
	reg("rem", 2, "I J -> I%J", func(ev *Evaluator) error {
		return numericBinOp(ev, "rem",
			func(a, b int64) (int64, error) {
				if b == 0 {
					return 0, ev.DivByZero("rem")
				}
				return a - floorDiv(a, b)*b, nil
			},
			func(a, b float64) float64 { return math.Mod(a, b) })
	})
	reg("div", 2, "I J -> Q R", func(ev *Evaluator) error {
		vs, _ := ev.Stack.PopN(2)
		b, a := vs[0], vs[1]
		if a.Kind != ast.Integer || b.Kind != ast.Integer {
			return restoreTypeErr(ev, "div", []string{"integer"}, a, vs)
		}
		if b.Int == 0 {
			ev.Stack.PushAll(reversed(vs))
			return ev.DivByZero("div")
		}
		q := floorDiv(a.Int, b.Int)
		rem := a.Int - q*b.Int
		ev.Stack.Push(ast.Int(q))
		ev.Stack.Push(ast.Int(rem))
		return nil
	})
	reg("abs", 1, "X -> |X|", unaryNumeric("abs", func(i int64) int64 {
		if i < 0 {
			return -i
		}
		return i
	}, math.Abs))
	reg("neg", 1, "X -> -X", unaryNumeric("neg", func(i int64) int64 { return -i }, func(f float64) float64 { return -f }))
	reg("sign", 1, "X -> -1|0|1", func(ev *Evaluator) error {
		v, _ := ev.Stack.Peek(0)
		if !isNumeric(v) {
			return ev.TypeError("sign", []string{"integer", "float"}, v.Kind)
		}
		ev.Stack.Pop()
		var s int64
		if v.Kind == ast.Integer {
			switch {
			case v.Int > 0:
				s = 1
			case v.Int < 0:
				s = -1
			}
		} else {
			switch {
			case v.Flt > 0:
				s = 1
			case v.Flt < 0:
				s = -1
			}
		}
		ev.Stack.Push(ast.Int(s))
		return nil
	})
	reg("succ", 1, "X -> X+1", unaryNumeric("succ", func(i int64) int64 { return i + 1 }, func(f float64) float64 { return f + 1 }))
	reg("pred", 1, "X -> X-1", unaryNumeric("pred", func(i int64) int64 { return i - 1 }, func(f float64) float64 { return f - 1 }))
	reg("max", 2, "X Y -> max", func(ev *Evaluator) error {
		return numericBinOp(ev, "max", func(a, b int64) (int64, error) {
			if a > b {
				return a, nil
			}
			return b, nil
		}, math.Max)
	})
	reg("min", 2, "X Y -> min", func(ev *Evaluator) error {
		return numericBinOp(ev, "min", func(a, b int64) (int64, error) {
			if a < b {
				return a, nil
			}
			return b, nil
		}, math.Min)
	})

	unaryFloat := func(name string, fn func(float64) float64) PrimFunc {
		return func(ev *Evaluator) error {
			v, _ := ev.Stack.Peek(0)
			f, ok := asFloat(v)
			if !ok {
				return ev.TypeError(name, []string{"integer", "float"}, v.Kind)
			}
			ev.Stack.Pop()
			ev.Stack.Push(ast.Flo(fn(f)))
			return nil
		}
	}
	reg("sin", 1, "F -> F", unaryFloat("sin", math.Sin))
	reg("cos", 1, "F -> F", unaryFloat("cos", math.Cos))
	reg("tan", 1, "F -> F", unaryFloat("tan", math.Tan))
	reg("asin", 1, "F -> F", unaryFloat("asin", math.Asin))
	reg("acos", 1, "F -> F", unaryFloat("acos", math.Acos))
	reg("atan", 1, "F -> F", unaryFloat("atan", math.Atan))
	reg("sinh", 1, "F -> F", unaryFloat("sinh", math.Sinh))
	reg("cosh", 1, "F -> F", unaryFloat("cosh", math.Cosh))
	reg("tanh", 1, "F -> F", unaryFloat("tanh", math.Tanh))
	reg("exp", 1, "F -> F", unaryFloat("exp", math.Exp))
	reg("log", 1, "F -> F", unaryFloat("log", math.Log))
	reg("log10", 1, "F -> F", unaryFloat("log10", math.Log10))
	reg("sqrt", 1, "F -> F", unaryFloat("sqrt", math.Sqrt))
	reg("ceil", 1, "F -> I", func(ev *Evaluator) error {
		v, _ := ev.Stack.Peek(0)
		f, ok := asFloat(v)
		if !ok {
			return ev.TypeError("ceil", []string{"integer", "float"}, v.Kind)
		}
		ev.Stack.Pop()
		ev.Stack.Push(ast.Int(int64(math.Ceil(f))))
		return nil
	})
	reg("floor", 1, "F -> I", func(ev *Evaluator) error {
		v, _ := ev.Stack.Peek(0)
		f, ok := asFloat(v)
		if !ok {
			return ev.TypeError("floor", []string{"integer", "float"}, v.Kind)
		}
		ev.Stack.Pop()
		ev.Stack.Push(ast.Int(int64(math.Floor(f))))
		return nil
	})
	reg("trunc", 1, "F -> I", func(ev *Evaluator) error {
		v, _ := ev.Stack.Peek(0)
		f, ok := asFloat(v)
		if !ok {
			return ev.TypeError("trunc", []string{"integer", "float"}, v.Kind)
		}
		ev.Stack.Pop()
		ev.Stack.Push(ast.Int(int64(math.Trunc(f))))
		return nil
	})
	reg("round", 1, "F -> I", func(ev *Evaluator) error {
		v, _ := ev.Stack.Peek(0)
		f, ok := asFloat(v)
		if !ok {
			return ev.TypeError("round", []string{"integer", "float"}, v.Kind)
		}
		ev.Stack.Pop()
		ev.Stack.Push(ast.Int(int64(math.Round(f))))
		return nil
	})
	reg("atan2", 2, "F1 F2 -> F", func(ev *Evaluator) error {
		return numericBinOp(ev, "atan2", nil, math.Atan2)
	})
	reg("pow", 2, "F1 F2 -> F", func(ev *Evaluator) error {
		return numericBinOp(ev, "pow", func(a, b int64) (int64, error) { return int64(math.Pow(float64(a), float64(b))), nil }, math.Pow)
	})
	reg("frexp", 1, "F -> F I", func(ev *Evaluator) error {
		v, _ := ev.Stack.Peek(0)
		f, ok := asFloat(v)
		if !ok {
			return ev.TypeError("frexp", []string{"float"}, v.Kind)
		}
		ev.Stack.Pop()
		frac, exp := math.Frexp(f)
		ev.Stack.Push(ast.Flo(frac))
		ev.Stack.Push(ast.Int(int64(exp)))
		return nil
	})
	reg("ldexp", 2, "F I -> F", func(ev *Evaluator) error {
		vs, _ := ev.Stack.PopN(2)
		exp, f := vs[0], vs[1]
		ff, ok := asFloat(f)
		if !ok || exp.Kind != ast.Integer {
			ev.Stack.PushAll(reversed(vs))
			return ev.TypeError("ldexp", []string{"float", "integer"}, exp.Kind)
		}
		ev.Stack.Push(ast.Flo(math.Ldexp(ff, int(exp.Int))))
		return nil
	})
	reg("modf", 1, "F -> F F", func(ev *Evaluator) error {
		v, _ := ev.Stack.Peek(0)
		f, ok := asFloat(v)
		if !ok {
			return ev.TypeError("modf", []string{"float"}, v.Kind)
		}
		ev.Stack.Pop()
		ip, fp := math.Modf(f)
		ev.Stack.Push(ast.Flo(ip))
		ev.Stack.Push(ast.Flo(fp))
		return nil
	})
	reg("rand", 0, " -> I", func(ev *Evaluator) error {
		ev.Stack.Push(ast.Int(ev.Rnd.Int63()))
		return nil
	})
	reg("srand", 1, "I -> ", func(ev *Evaluator) error {
		v, _ := ev.Stack.Pop()
		if v.Kind != ast.Integer {
			ev.Stack.Push(v)
			return ev.TypeError("srand", []string{"integer"}, v.Kind)
		}
		ev.Rnd = rand.New(rand.NewSource(v.Int))
		return nil
	})
}

func unaryNumeric(name string, intOp func(int64) int64, floatOp func(float64) float64) PrimFunc {
	return func(ev *Evaluator) error {
		v, _ := ev.Stack.Peek(0)
		if !isNumeric(v) {
			return ev.TypeError(name, []string{"integer", "float"}, v.Kind)
		}
		ev.Stack.Pop()
		if v.Kind == ast.Integer {
			ev.Stack.Push(ast.Int(intOp(v.Int)))
		} else {
			ev.Stack.Push(ast.Flo(floatOp(v.Flt)))
		}
		return nil
	}
}

// floorDiv implements Joy's floored integer division (rounds toward
// negative infinity, unlike Go's truncating /).
func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
