package interp

import "github.com/cwbudde/go-joy/internal/ast"

// snapshotTest runs q against a copy of the stack and reports whether the
// single value it leaves on top is truthy, restoring the stack to its
// pre-q state regardless of the outcome. This is the "snapshot-P"
// discipline shared by linrec, binrec, tailrec, genrec, cond and friends.
func (ev *Evaluator) snapshotTest(op string, q ast.Value) (bool, error) {
	base := ev.Stack.Snapshot()
	if err := ev.ExecQuotation(q); err != nil {
		ev.Stack.Restore(base)
		return false, err
	}
	res, ok := ev.Stack.Pop()
	if !ok {
		ev.Stack.Restore(base)
		return false, ev.EmptyAgg(op)
	}
	truthy := Truthy(res)
	ev.Stack.Restore(base)
	return truthy, nil
}

func isLeafValue(v ast.Value) bool {
	return v.Kind != ast.List && v.Kind != ast.Quotation
}

// reifyCall builds the quotation [[q1]..[qn] name], the literal form the
// spec's recursion combinators reify so that a combining step can invoke
// the recursive call explicitly (e.g. via "i") rather than the Go code
// calling itself behind the scenes.
func reifyCall(name string, qs ...ast.Value) ast.Value {
	terms := make([]ast.Term, 0, len(qs)+1)
	for _, q := range qs {
		terms = append(terms, ast.ValueTerm(q, ast.Term{}.Pos))
	}
	terms = append(terms, ast.SymbolTerm(name, ast.Term{}.Pos))
	return ast.Quot(terms)
}

func registerRecursionPrimitives(r *PrimitiveRegistry) {
	reg := func(name string, arity int, sig string, fn PrimFunc) {
		r.Register(&Primitive{Name: name, Arity: arity, Signature: sig, Fn: fn})
	}

	reg("primrec", 3, "X [I] [C] -> R", func(ev *Evaluator) error {
		vs, _ := ev.Stack.PopN(3)
		c, i, x := vs[0], vs[1], vs[2]
		var n int
		switch {
		case x.Kind == ast.Integer:
			n = int(x.Int)
			if n < 0 {
				n = 0
			}
			for k := n; k >= 1; k-- {
				ev.Stack.Push(ast.Int(int64(k)))
			}
		case isAggregateKind(x):
			elems := items(x)
			n = len(elems)
			ev.Stack.PushAll(elems)
		default:
			ev.Stack.PushAll(reversed(vs))
			return ev.TypeError("primrec", []string{"integer", "list", "string", "set"}, x.Kind)
		}
		if err := ev.ExecQuotation(i); err != nil {
			return err
		}
		for k := 0; k < n; k++ {
			if err := ev.ExecQuotation(c); err != nil {
				return err
			}
		}
		return nil
	})

	reg("linrec", 4, "[P] [T] [R1] [R2] -> ...", func(ev *Evaluator) error {
		vs, _ := ev.Stack.PopN(4)
		r2, r1, t, p := vs[0], vs[1], vs[2], vs[3]
		depth := 0
		for {
			done, err := ev.snapshotTest("linrec", p)
			if err != nil {
				return err
			}
			if done {
				if err := ev.ExecQuotation(t); err != nil {
					return err
				}
				break
			}
			if err := ev.ExecQuotation(r1); err != nil {
				return err
			}
			depth++
		}
		for k := 0; k < depth; k++ {
			if err := ev.ExecQuotation(r2); err != nil {
				return err
			}
		}
		return nil
	})

	reg("tailrec", 3, "[P] [T] [R1] -> ...", func(ev *Evaluator) error {
		vs, _ := ev.Stack.PopN(3)
		r1, t, p := vs[0], vs[1], vs[2]
		for {
			done, err := ev.snapshotTest("tailrec", p)
			if err != nil {
				return err
			}
			if done {
				return ev.ExecQuotation(t)
			}
			if err := ev.ExecQuotation(r1); err != nil {
				return err
			}
		}
	})

	var binrec func(ev *Evaluator, p, t, r1, r2 ast.Value) error
	binrec = func(ev *Evaluator, p, t, r1, r2 ast.Value) error {
		done, err := ev.snapshotTest("binrec", p)
		if err != nil {
			return err
		}
		if done {
			return ev.ExecQuotation(t)
		}
		if err := ev.ExecQuotation(r1); err != nil {
			return err
		}
		if err := binrec(ev, p, t, r1, r2); err != nil {
			return err
		}
		top, ok := ev.Stack.Pop()
		if !ok {
			return ev.EmptyAgg("binrec")
		}
		if err := binrec(ev, p, t, r1, r2); err != nil {
			return err
		}
		ev.Stack.Push(top)
		return ev.ExecQuotation(r2)
	}
	reg("binrec", 5, "X [P] [T] [R1] [R2] -> R", func(ev *Evaluator) error {
		vs, _ := ev.Stack.PopN(4)
		r2, r1, t, p := vs[0], vs[1], vs[2], vs[3]
		return binrec(ev, p, t, r1, r2)
	})

	var genrec func(ev *Evaluator, b, t, r1, r2 ast.Value) error
	genrec = func(ev *Evaluator, b, t, r1, r2 ast.Value) error {
		done, err := ev.snapshotTest("genrec", b)
		if err != nil {
			return err
		}
		if done {
			return ev.ExecQuotation(t)
		}
		if err := ev.ExecQuotation(r1); err != nil {
			return err
		}
		ev.Stack.Push(reifyCall("genrec", b, t, r1, r2))
		return ev.ExecQuotation(r2)
	}
	reg("genrec", 4, "[B] [T] [R1] [R2] -> ...", func(ev *Evaluator) error {
		vs, _ := ev.Stack.PopN(4)
		r2, r1, t, b := vs[0], vs[1], vs[2], vs[3]
		return genrec(ev, b, t, r1, r2)
	})

	// condlinrec tries a list of clauses in order: a terminal clause
	// [[B] T] runs T and stops; a recursive clause [[B] [R1] [R2]] runs
	// R1 and defers R2 until the chosen terminal unwinds, linrec-style,
	// so clauses chosen at different depths each contribute their own
	// R2 to the unwind.
	reg("condlinrec", 1, "[[[B1][T1]..][D]] -> ...", func(ev *Evaluator) error {
		v, _ := ev.Stack.Pop()
		if !isAggregateKind(v) {
			ev.Stack.Push(v)
			return ev.TypeError("condlinrec", []string{"list"}, v.Kind)
		}
		clauses := items(v)
		if len(clauses) == 0 {
			return nil
		}
		body := clauses[:len(clauses)-1]
		def := clauses[len(clauses)-1]
		var pending []ast.Value
		for {
			matched := false
			for _, cl := range body {
				parts := items(cl)
				if len(parts) < 2 {
					continue
				}
				b := parts[0]
				truthy, err := ev.snapshotTest("condlinrec", b)
				if err != nil {
					return err
				}
				if !truthy {
					continue
				}
				matched = true
				if len(parts) == 2 {
					if err := ev.ExecQuotation(parts[1]); err != nil {
						return err
					}
					goto unwind
				}
				if err := ev.ExecQuotation(parts[1]); err != nil {
					return err
				}
				pending = append(pending, parts[2])
				break
			}
			if !matched {
				dparts := items(def)
				if len(dparts) > 0 {
					if err := ev.ExecQuotation(dparts[0]); err != nil {
						return err
					}
				}
				break
			}
		}
	unwind:
		for i := len(pending) - 1; i >= 0; i-- {
			if err := ev.ExecQuotation(pending[i]); err != nil {
				return err
			}
		}
		return nil
	})

	// condnestrec has the dispatch contract of cond; it is registered
	// under its own name so a clause body can recurse by writing the
	// bare word "condnestrec" (itself a resolvable primitive) with the
	// same clause list reappearing as a literal in that body.
	reg("condnestrec", 1, "[[[B1]T1]..[D]] -> ...", func(ev *Evaluator) error {
		v, _ := ev.Stack.Pop()
		if !isAggregateKind(v) {
			ev.Stack.Push(v)
			return ev.TypeError("condnestrec", []string{"list"}, v.Kind)
		}
		return ev.runCond(items(v))
	})

	reg("treestep", 2, "T [P] -> ...", func(ev *Evaluator) error {
		vs, _ := ev.Stack.PopN(2)
		p, t := vs[0], vs[1]
		var walk func(ast.Value) error
		walk = func(node ast.Value) error {
			if isLeafValue(node) {
				ev.Stack.Push(node)
				return ev.ExecQuotation(p)
			}
			for _, child := range items(node) {
				if err := walk(child); err != nil {
					return err
				}
			}
			return nil
		}
		return walk(t)
	})

	reg("treerec", 3, "T [O] [C] -> ...", func(ev *Evaluator) error {
		vs, _ := ev.Stack.PopN(3)
		c, o, t := vs[0], vs[1], vs[2]
		if isLeafValue(t) {
			ev.Stack.Push(t)
			return ev.ExecQuotation(o)
		}
		ev.Stack.Push(t)
		ev.Stack.Push(reifyCall("treerec", o, c))
		return ev.ExecQuotation(c)
	})

	reg("treegenrec", 4, "T [O1] [O2] [C] -> ...", func(ev *Evaluator) error {
		vs, _ := ev.Stack.PopN(4)
		c, o2, o1, t := vs[0], vs[1], vs[2], vs[3]
		ev.Stack.Push(t)
		if isLeafValue(t) {
			return ev.ExecQuotation(o1)
		}
		if err := ev.ExecQuotation(o2); err != nil {
			return err
		}
		ev.Stack.Push(reifyCall("treegenrec", o1, o2, c))
		return ev.ExecQuotation(c)
	})
}
