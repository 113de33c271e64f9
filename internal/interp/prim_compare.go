package interp

import "github.com/cwbudde/go-joy/internal/ast"

func registerComparePrimitives(r *PrimitiveRegistry) {
	reg := func(name string, arity int, sig string, fn PrimFunc) {
		r.Register(&Primitive{Name: name, Arity: arity, Signature: sig, Fn: fn})
	}

	cmp := func(name string, ok func(int) bool) PrimFunc {
		return func(ev *Evaluator) error {
			vs, _ := ev.Stack.PopN(2)
			b, a := vs[0], vs[1]
			ev.Stack.Push(ast.Bln(ok(Compare(a, b))))
			return nil
		}
	}
	reg("<", 2, "X Y -> B", cmp("<", func(c int) bool { return c < 0 }))
	reg(">", 2, "X Y -> B", cmp(">", func(c int) bool { return c > 0 }))
	reg("<=", 2, "X Y -> B", cmp("<=", func(c int) bool { return c <= 0 }))
	reg(">=", 2, "X Y -> B", cmp(">=", func(c int) bool { return c >= 0 }))

	reg("=", 2, "X Y -> B", func(ev *Evaluator) error {
		vs, _ := ev.Stack.PopN(2)
		ev.Stack.Push(ast.Bln(Equals(vs[1], vs[0])))
		return nil
	})
	reg("!=", 2, "X Y -> B", func(ev *Evaluator) error {
		vs, _ := ev.Stack.PopN(2)
		ev.Stack.Push(ast.Bln(!Equals(vs[1], vs[0])))
		return nil
	})
	reg("equal", 2, "X Y -> B", func(ev *Evaluator) error {
		vs, _ := ev.Stack.PopN(2)
		ev.Stack.Push(ast.Bln(EqualDeep(vs[1], vs[0])))
		return nil
	})
	reg("compare", 2, "X Y -> I", func(ev *Evaluator) error {
		vs, _ := ev.Stack.PopN(2)
		ev.Stack.Push(ast.Int(int64(Compare(vs[1], vs[0]))))
		return nil
	})

	reg("true", 0, " -> B", func(ev *Evaluator) error { ev.Stack.Push(ast.Bln(true)); return nil })
	reg("false", 0, " -> B", func(ev *Evaluator) error { ev.Stack.Push(ast.Bln(false)); return nil })

	reg("and", 2, "X Y -> Z", func(ev *Evaluator) error {
		vs, _ := ev.Stack.PopN(2)
		b, a := vs[0], vs[1]
		if a.Kind == ast.Set && b.Kind == ast.Set {
			ev.Stack.Push(ast.SetOf(a.Bits & b.Bits))
			return nil
		}
		ev.Stack.Push(ast.Bln(Truthy(a) && Truthy(b)))
		return nil
	})
	reg("or", 2, "X Y -> Z", func(ev *Evaluator) error {
		vs, _ := ev.Stack.PopN(2)
		b, a := vs[0], vs[1]
		if a.Kind == ast.Set && b.Kind == ast.Set {
			ev.Stack.Push(ast.SetOf(a.Bits | b.Bits))
			return nil
		}
		ev.Stack.Push(ast.Bln(Truthy(a) || Truthy(b)))
		return nil
	})
	reg("xor", 2, "X Y -> Z", func(ev *Evaluator) error {
		vs, _ := ev.Stack.PopN(2)
		b, a := vs[0], vs[1]
		if a.Kind == ast.Set && b.Kind == ast.Set {
			ev.Stack.Push(ast.SetOf(a.Bits ^ b.Bits))
			return nil
		}
		ev.Stack.Push(ast.Bln(Truthy(a) != Truthy(b)))
		return nil
	})
	reg("not", 1, "X -> Y", func(ev *Evaluator) error {
		v, _ := ev.Stack.Pop()
		if v.Kind == ast.Set {
			ev.Stack.Push(ast.SetOf(^v.Bits))
			return nil
		}
		ev.Stack.Push(ast.Bln(!Truthy(v)))
		return nil
	})
}
