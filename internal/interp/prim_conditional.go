package interp

import "github.com/cwbudde/go-joy/internal/ast"

// runBody executes a cond/case clause body: a Quotation or List clause
// runs as a program the way "i" would; any other value (spec.md's
// concrete scenario uses a bare string as a clause body) is simply
// pushed, since there is nothing to execute.
func (ev *Evaluator) runBody(v ast.Value) error {
	if v.Kind == ast.Quotation || v.Kind == ast.List {
		return ev.ExecQuotation(v)
	}
	ev.Stack.Push(v)
	return nil
}

// runCond drives the shared cond/condnestrec dispatch: try each
// [[B] T] clause in order, running the first whose B tests truthy;
// the final clause is the default, given either bare or wrapped in a
// singleton list.
func (ev *Evaluator) runCond(clauses []ast.Value) error {
	if len(clauses) == 0 {
		return nil
	}
	body, def := clauses[:len(clauses)-1], clauses[len(clauses)-1]
	for _, cl := range body {
		parts := items(cl)
		if len(parts) < 2 {
			continue
		}
		truthy, err := ev.snapshotTest("cond", parts[0])
		if err != nil {
			return err
		}
		if truthy {
			return ev.runBody(parts[1])
		}
	}
	if isAggregateKind(def) {
		if parts := items(def); len(parts) == 1 {
			return ev.runBody(parts[0])
		}
	}
	return ev.runBody(def)
}

func registerConditionalPrimitives(r *PrimitiveRegistry) {
	reg := func(name string, arity int, sig string, fn PrimFunc) {
		r.Register(&Primitive{Name: name, Arity: arity, Signature: sig, Fn: fn})
	}

	reg("ifte", 3, "[B] [T] [F] -> ...", func(ev *Evaluator) error {
		vs, _ := ev.Stack.PopN(3)
		f, t, b := vs[0], vs[1], vs[2]
		truthy, err := ev.snapshotTest("ifte", b)
		if err != nil {
			return err
		}
		if truthy {
			return ev.ExecQuotation(t)
		}
		return ev.ExecQuotation(f)
	})

	reg("branch", 3, "B [T] [F] -> ...", func(ev *Evaluator) error {
		vs, _ := ev.Stack.PopN(3)
		f, t, b := vs[0], vs[1], vs[2]
		if Truthy(b) {
			return ev.ExecQuotation(t)
		}
		return ev.ExecQuotation(f)
	})

	reg("cond", 1, "[[[B1]T1]..[D]] -> ...", func(ev *Evaluator) error {
		v, _ := ev.Stack.Pop()
		if !isAggregateKind(v) {
			ev.Stack.Push(v)
			return ev.TypeError("cond", []string{"list"}, v.Kind)
		}
		return ev.runCond(items(v))
	})

	reg("case", 2, "X [[V1 T1]..[D]] -> ...", func(ev *Evaluator) error {
		vs, _ := ev.Stack.PopN(2)
		clausesV, x := vs[0], vs[1]
		if !isAggregateKind(clausesV) {
			ev.Stack.PushAll(reversed(vs))
			return ev.TypeError("case", []string{"list"}, clausesV.Kind)
		}
		clauses := items(clausesV)
		if len(clauses) == 0 {
			return nil
		}
		body, def := clauses[:len(clauses)-1], clauses[len(clauses)-1]
		for _, cl := range body {
			parts := items(cl)
			if len(parts) < 2 {
				continue
			}
			if Equals(parts[0], x) {
				return ev.runBody(parts[1])
			}
		}
		ev.Stack.Push(x)
		if isAggregateKind(def) {
			if parts := items(def); len(parts) == 1 {
				return ev.runBody(parts[0])
			}
		}
		return ev.runBody(def)
	})

	reg("opcase", 2, "X [[V1 T1]..] -> L", func(ev *Evaluator) error {
		vs, _ := ev.Stack.PopN(2)
		clausesV, x := vs[0], vs[1]
		if !isAggregateKind(clausesV) {
			ev.Stack.PushAll(reversed(vs))
			return ev.TypeError("opcase", []string{"list"}, clausesV.Kind)
		}
		for _, cl := range items(clausesV) {
			parts := items(cl)
			if len(parts) < 2 {
				continue
			}
			if ev.TypeCode(parts[0]) == ev.TypeCode(x) {
				ev.Stack.Push(rebuild(ast.List, parts[1:]))
				return nil
			}
		}
		ev.Stack.Push(ast.Lst(nil))
		return nil
	})
}
