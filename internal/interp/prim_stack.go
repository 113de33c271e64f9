package interp

import "github.com/cwbudde/go-joy/internal/ast"

func registerStackPrimitives(r *PrimitiveRegistry) {
	reg := func(name string, arity int, sig string, fn PrimFunc) {
		r.Register(&Primitive{Name: name, Arity: arity, Signature: sig, Fn: fn})
	}

	reg("dup", 1, "X -> X X", func(ev *Evaluator) error {
		v, _ := ev.Stack.Peek(0)
		ev.Stack.Push(v)
		return nil
	})
	reg("pop", 1, "X -> ", func(ev *Evaluator) error {
		ev.Stack.Pop()
		return nil
	})
	reg("swap", 2, "X Y -> Y X", func(ev *Evaluator) error {
		vs, _ := ev.Stack.PopN(2)
		ev.Stack.Push(vs[0])
		ev.Stack.Push(vs[1])
		return nil
	})
	reg("over", 2, "X Y -> X Y X", func(ev *Evaluator) error {
		y, _ := ev.Stack.Peek(0)
		x, _ := ev.Stack.Peek(1)
		_ = y
		ev.Stack.Push(x)
		return nil
	})
	reg("rotate", 3, "X Y Z -> Z Y X", func(ev *Evaluator) error {
		vs, _ := ev.Stack.PopN(3) // vs[0]=Z vs[1]=Y vs[2]=X
		ev.Stack.Push(vs[0])
		ev.Stack.Push(vs[1])
		ev.Stack.Push(vs[2])
		return nil
	})
	reg("rollup", 3, "X Y Z -> Z X Y", func(ev *Evaluator) error {
		vs, _ := ev.Stack.PopN(3) // Z Y X
		ev.Stack.Push(vs[0])
		ev.Stack.Push(vs[2])
		ev.Stack.Push(vs[1])
		return nil
	})
	reg("rolldown", 3, "X Y Z -> Y Z X", func(ev *Evaluator) error {
		vs, _ := ev.Stack.PopN(3) // Z Y X
		ev.Stack.Push(vs[1])
		ev.Stack.Push(vs[0])
		ev.Stack.Push(vs[2])
		return nil
	})
	reg("dupd", 2, "X Y -> X X Y", func(ev *Evaluator) error {
		vs, _ := ev.Stack.PopN(2) // Y X
		ev.Stack.Push(vs[1])
		ev.Stack.Push(vs[1])
		ev.Stack.Push(vs[0])
		return nil
	})
	reg("popd", 2, "X Y -> Y", func(ev *Evaluator) error {
		vs, _ := ev.Stack.PopN(2)
		ev.Stack.Push(vs[0])
		return nil
	})
	reg("swapd", 3, "X Y Z -> Y X Z", func(ev *Evaluator) error {
		vs, _ := ev.Stack.PopN(3) // Z Y X
		ev.Stack.Push(vs[1])
		ev.Stack.Push(vs[2])
		ev.Stack.Push(vs[0])
		return nil
	})
	reg("rollupd", 4, "X Y Z W -> Z X Y W", func(ev *Evaluator) error {
		vs, _ := ev.Stack.PopN(4) // W Z Y X
		ev.Stack.Push(vs[1])
		ev.Stack.Push(vs[3])
		ev.Stack.Push(vs[2])
		ev.Stack.Push(vs[0])
		return nil
	})
	reg("rolldownd", 4, "X Y Z W -> Y Z X W", func(ev *Evaluator) error {
		vs, _ := ev.Stack.PopN(4) // W Z Y X
		ev.Stack.Push(vs[2])
		ev.Stack.Push(vs[1])
		ev.Stack.Push(vs[3])
		ev.Stack.Push(vs[0])
		return nil
	})
	reg("rotated", 4, "X Y Z W -> Z Y X W", func(ev *Evaluator) error {
		vs, _ := ev.Stack.PopN(4) // W Z Y X
		ev.Stack.Push(vs[1])
		ev.Stack.Push(vs[2])
		ev.Stack.Push(vs[3])
		ev.Stack.Push(vs[0])
		return nil
	})
	reg("dup2", 2, "X Y -> X Y X Y", func(ev *Evaluator) error {
		y, _ := ev.Stack.Peek(0)
		x, _ := ev.Stack.Peek(1)
		ev.Stack.Push(x)
		ev.Stack.Push(y)
		return nil
	})
	reg("id", 0, " -> ", func(ev *Evaluator) error { return nil })
	reg("stack", 0, " -> List", func(ev *Evaluator) error {
		items := ev.Stack.Items()
		topFirst := make([]ast.Value, len(items))
		for i, v := range items {
			topFirst[len(items)-1-i] = v
		}
		ev.Stack.Push(ast.Lst(topFirst))
		return nil
	})
	reg("unstack", 1, "List -> ...", func(ev *Evaluator) error {
		v, _ := ev.Stack.Pop()
		var items []ast.Value
		switch v.Kind {
		case ast.List:
			items = v.Items
		case ast.Quotation:
			for _, t := range v.Quote {
				items = append(items, t.Val)
			}
		default:
			return ev.TypeError("unstack", []string{"list", "quotation"}, v.Kind)
		}
		for i := len(items) - 1; i >= 0; i-- {
			ev.Stack.Push(items[i])
		}
		return nil
	})
}
