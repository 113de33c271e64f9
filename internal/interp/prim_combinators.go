package interp

import "github.com/cwbudde/go-joy/internal/ast"

// runWithArg pushes x, runs q against a snapshot of the current stack,
// and returns whatever new values q produced (without disturbing the
// live stack), restoring it to its pre-call state. Used by bi/tri/
// cleave/spread, whose contract is "run an independent sub-computation
// and bring back its results".
func (ev *Evaluator) runWithArg(x ast.Value, q ast.Value) ([]ast.Value, error) {
	base := ev.Stack.Snapshot()
	ev.Stack.Push(x)
	if err := ev.ExecQuotation(q); err != nil {
		ev.Stack.Restore(base)
		return nil, err
	}
	after := ev.Stack.Snapshot()
	produced := append([]ast.Value{}, after[len(base):]...)
	ev.Stack.Restore(base)
	return produced, nil
}

// naryOnce runs p once against the stack with xs (bottom-to-top order)
// pushed on top of base, pops exactly one result, and restores base
// before pushing it. This is nullary (xs empty), unary/binary/ternary
// (xs has 1-3 elements popped together).
func (ev *Evaluator) naryOnce(op string, p ast.Value, xs []ast.Value) error {
	base := ev.Stack.Snapshot()
	ev.Stack.PushAll(xs)
	if err := ev.ExecQuotation(p); err != nil {
		ev.Stack.Restore(base)
		return err
	}
	res, ok := ev.Stack.Pop()
	if !ok {
		ev.Stack.Restore(base)
		return ev.EmptyAgg(op)
	}
	ev.Stack.Restore(base)
	ev.Stack.Push(res)
	return nil
}

// unaryN applies p independently to each of xs (bottom-to-top order),
// snapshotting and restoring per value, and pushes the results in the
// same order. Used by unary/unary2/3/4 and app1/2/3/4.
func (ev *Evaluator) unaryN(op string, p ast.Value, xs []ast.Value) error {
	base := ev.Stack.Snapshot()
	results := make([]ast.Value, len(xs))
	for i, x := range xs {
		ev.Stack.Restore(base)
		ev.Stack.Push(x)
		if err := ev.ExecQuotation(p); err != nil {
			ev.Stack.Restore(base)
			return err
		}
		res, ok := ev.Stack.Pop()
		if !ok {
			ev.Stack.Restore(base)
			return ev.EmptyAgg(op)
		}
		results[i] = res
	}
	ev.Stack.Restore(base)
	ev.Stack.PushAll(results)
	return nil
}

func registerCombinatorPrimitives(r *PrimitiveRegistry) {
	reg := func(name string, arity int, sig string, fn PrimFunc) {
		r.Register(&Primitive{Name: name, Arity: arity, Signature: sig, Fn: fn})
	}

	// --- execution ---

	reg("i", 1, "[P] -> ...", func(ev *Evaluator) error {
		q, _ := ev.Stack.Pop()
		return ev.ExecQuotation(q)
	})
	reg("x", 1, "[P] -> ...", func(ev *Evaluator) error {
		q, _ := ev.Stack.Peek(0)
		return ev.ExecQuotation(q)
	})
	reg("dip", 2, "X [P] -> P X", func(ev *Evaluator) error {
		p, _ := ev.Stack.Pop()
		return ev.dipHide(1, p)
	})
	reg("dipd", 3, "X Y [P] -> P Y X", func(ev *Evaluator) error {
		p, _ := ev.Stack.Pop()
		return ev.dipHide(2, p)
	})
	reg("dipdd", 4, "X Y Z [P] -> P Z Y X", func(ev *Evaluator) error {
		p, _ := ev.Stack.Pop()
		return ev.dipHide(3, p)
	})
	reg("keep", 2, "X [P] -> X P(X)", func(ev *Evaluator) error {
		p, _ := ev.Stack.Pop()
		x, _ := ev.Stack.Pop()
		base := ev.Stack.Snapshot()
		ev.Stack.Push(x)
		if err := ev.ExecQuotation(p); err != nil {
			return err
		}
		after := ev.Stack.Snapshot()
		produced := append([]ast.Value{}, after[len(base):]...)
		ev.Stack.Restore(base)
		ev.Stack.Push(x)
		ev.Stack.PushAll(produced)
		return nil
	})

	// --- arity-controlled ---

	reg("nullary", 1, "[P] -> R", func(ev *Evaluator) error {
		p, _ := ev.Stack.Pop()
		return ev.naryOnce("nullary", p, nil)
	})
	reg("unary", 2, "X [P] -> R", func(ev *Evaluator) error {
		p, _ := ev.Stack.Pop()
		x, _ := ev.Stack.Pop()
		return ev.naryOnce("unary", p, []ast.Value{x})
	})
	reg("binary", 3, "X Y [P] -> R", func(ev *Evaluator) error {
		p, _ := ev.Stack.Pop()
		vs, _ := ev.Stack.PopN(2)
		return ev.naryOnce("binary", p, []ast.Value{vs[1], vs[0]})
	})
	reg("ternary", 4, "X Y Z [P] -> R", func(ev *Evaluator) error {
		p, _ := ev.Stack.Pop()
		vs, _ := ev.Stack.PopN(3)
		return ev.naryOnce("ternary", p, []ast.Value{vs[2], vs[1], vs[0]})
	})
	unaryK := func(name string, k int) PrimFunc {
		return func(ev *Evaluator) error {
			p, _ := ev.Stack.Pop()
			vs, _ := ev.Stack.PopN(k)
			xs := make([]ast.Value, k)
			for i := 0; i < k; i++ {
				xs[i] = vs[k-1-i]
			}
			return ev.unaryN(name, p, xs)
		}
	}
	reg("unary2", 3, "X Y [P] -> RX RY", unaryK("unary2", 2))
	reg("unary3", 4, "X Y Z [P] -> RX RY RZ", unaryK("unary3", 3))
	reg("unary4", 5, "W X Y Z [P] -> ...", unaryK("unary4", 4))
	reg("app1", 2, "X [P] -> R", unaryK("app1", 1))
	reg("app2", 3, "X Y [P] -> RX RY", unaryK("app2", 2))
	reg("app3", 4, "X Y Z [P] -> RX RY RZ", unaryK("app3", 3))
	reg("app4", 5, "W X Y Z [P] -> ...", unaryK("app4", 4))

	reg("construct", 2, "[P] [[Q1]..[Qn]] -> R1..Rn", func(ev *Evaluator) error {
		vs, _ := ev.Stack.PopN(2)
		qs, p := vs[0], vs[1]
		preBase := ev.Stack.Snapshot()
		if err := ev.ExecQuotation(p); err != nil {
			ev.Stack.Restore(preBase)
			return err
		}
		postP := ev.Stack.Snapshot()
		var results []ast.Value
		for _, qi := range items(qs) {
			ev.Stack.Restore(postP)
			if err := ev.ExecQuotation(qi); err != nil {
				ev.Stack.Restore(preBase)
				return err
			}
			res, ok := ev.Stack.Pop()
			if !ok {
				ev.Stack.Restore(preBase)
				return ev.EmptyAgg("construct")
			}
			results = append(results, res)
		}
		ev.Stack.Restore(preBase)
		ev.Stack.PushAll(results)
		return nil
	})

	// --- iteration ---

	reg("step", 2, "A [P] -> ...", func(ev *Evaluator) error {
		vs, _ := ev.Stack.PopN(2)
		p, a := vs[0], vs[1]
		if !isAggregateKind(a) {
			return restoreTypeErr(ev, "step", []string{"list", "string", "set"}, a, vs)
		}
		for _, e := range items(a) {
			ev.Stack.Push(e)
			if err := ev.ExecQuotation(p); err != nil {
				return err
			}
		}
		return nil
	})
	reg("each", 2, "A [P] -> ...", func(ev *Evaluator) error {
		prim, _ := r.Lookup("step")
		return prim.Fn(ev)
	})
	reg("map", 2, "A [P] -> A'", func(ev *Evaluator) error {
		vs, _ := ev.Stack.PopN(2)
		p, a := vs[0], vs[1]
		if !isAggregateKind(a) {
			return restoreTypeErr(ev, "map", []string{"list", "string", "set"}, a, vs)
		}
		elems := items(a)
		base := ev.Stack.Snapshot()
		results := make([]ast.Value, 0, len(elems))
		for _, e := range elems {
			ev.Stack.Restore(base)
			ev.Stack.Push(e)
			if err := ev.ExecQuotation(p); err != nil {
				ev.Stack.Restore(base)
				return err
			}
			res, ok := ev.Stack.Pop()
			if !ok {
				ev.Stack.Restore(base)
				return ev.EmptyAgg("map")
			}
			results = append(results, res)
		}
		ev.Stack.Restore(base)
		ev.Stack.Push(rebuild(a.Kind, results))
		return nil
	})
	reg("filter", 2, "A [P] -> A'", func(ev *Evaluator) error {
		vs, _ := ev.Stack.PopN(2)
		p, a := vs[0], vs[1]
		if !isAggregateKind(a) {
			return restoreTypeErr(ev, "filter", []string{"list", "string", "set"}, a, vs)
		}
		kept, err := filterElems(ev, a, p)
		if err != nil {
			return err
		}
		ev.Stack.Push(rebuild(a.Kind, kept))
		return nil
	})
	reg("split", 2, "A [P] -> Ayes Ano", func(ev *Evaluator) error {
		vs, _ := ev.Stack.PopN(2)
		p, a := vs[0], vs[1]
		if !isAggregateKind(a) {
			return restoreTypeErr(ev, "split", []string{"list", "string", "set"}, a, vs)
		}
		elems := items(a)
		base := ev.Stack.Snapshot()
		var yes, no []ast.Value
		for _, e := range elems {
			ev.Stack.Restore(base)
			ev.Stack.Push(e)
			if err := ev.ExecQuotation(p); err != nil {
				ev.Stack.Restore(base)
				return err
			}
			res, ok := ev.Stack.Pop()
			if !ok {
				ev.Stack.Restore(base)
				return ev.EmptyAgg("split")
			}
			if Truthy(res) {
				yes = append(yes, e)
			} else {
				no = append(no, e)
			}
		}
		ev.Stack.Restore(base)
		ev.Stack.Push(rebuild(a.Kind, yes))
		ev.Stack.Push(rebuild(a.Kind, no))
		return nil
	})
	reg("fold", 3, "A V [P] -> R", func(ev *Evaluator) error {
		vs, _ := ev.Stack.PopN(3)
		p, v, a := vs[0], vs[1], vs[2]
		if !isAggregateKind(a) {
			return restoreTypeErr(ev, "fold", []string{"list", "string", "set"}, a, vs)
		}
		acc := v
		for _, e := range items(a) {
			ev.Stack.Push(acc)
			ev.Stack.Push(e)
			if err := ev.ExecQuotation(p); err != nil {
				return err
			}
			res, ok := ev.Stack.Pop()
			if !ok {
				return ev.EmptyAgg("fold")
			}
			acc = res
		}
		ev.Stack.Push(acc)
		return nil
	})
	quantifier := func(name string, wantAll bool) PrimFunc {
		return func(ev *Evaluator) error {
			vs, _ := ev.Stack.PopN(2)
			p, a := vs[0], vs[1]
			if !isAggregateKind(a) {
				return restoreTypeErr(ev, name, []string{"list", "string", "set"}, a, vs)
			}
			base := ev.Stack.Snapshot()
			result := wantAll
			for _, e := range items(a) {
				ev.Stack.Restore(base)
				ev.Stack.Push(e)
				if err := ev.ExecQuotation(p); err != nil {
					ev.Stack.Restore(base)
					return err
				}
				res, ok := ev.Stack.Pop()
				if !ok {
					ev.Stack.Restore(base)
					return ev.EmptyAgg(name)
				}
				t := Truthy(res)
				if wantAll && !t {
					result = false
					break
				}
				if !wantAll && t {
					result = true
					break
				}
			}
			ev.Stack.Restore(base)
			ev.Stack.Push(ast.Bln(result))
			return nil
		}
	}
	reg("any", 2, "A [P] -> B", quantifier("any", false))
	reg("some", 2, "A [P] -> B", quantifier("some", false))
	reg("all", 2, "A [P] -> B", quantifier("all", true))
	reg("times", 2, "N [P] -> ...", func(ev *Evaluator) error {
		vs, _ := ev.Stack.PopN(2)
		p, n := vs[0], vs[1]
		if n.Kind != ast.Integer {
			return restoreTypeErr(ev, "times", []string{"integer"}, n, vs)
		}
		for i := int64(0); i < n.Int; i++ {
			if err := ev.ExecQuotation(p); err != nil {
				return err
			}
		}
		return nil
	})
	reg("while", 2, "[B] [P] -> ...", func(ev *Evaluator) error {
		vs, _ := ev.Stack.PopN(2)
		p, b := vs[0], vs[1]
		for {
			base := ev.Stack.Snapshot()
			if err := ev.ExecQuotation(b); err != nil {
				ev.Stack.Restore(base)
				return err
			}
			res, ok := ev.Stack.Pop()
			if !ok {
				ev.Stack.Restore(base)
				return ev.EmptyAgg("while")
			}
			cont := Truthy(res)
			ev.Stack.Restore(base)
			if !cont {
				return nil
			}
			if err := ev.ExecQuotation(p); err != nil {
				return err
			}
		}
	})
	reg("loop", 1, "[P] -> ...", func(ev *Evaluator) error {
		p, _ := ev.Stack.Pop()
		for {
			if err := ev.ExecQuotation(p); err != nil {
				return err
			}
			res, ok := ev.Stack.Pop()
			if !ok {
				return ev.EmptyAgg("loop")
			}
			if !Truthy(res) {
				return nil
			}
		}
	})

	// --- parallel ---

	reg("bi", 3, "X [P] [Q] -> R1 R2", func(ev *Evaluator) error {
		vs, _ := ev.Stack.PopN(3)
		q, p, x := vs[0], vs[1], vs[2]
		return ev.parallelApply(x, []ast.Value{p, q})
	})
	reg("tri", 4, "X [P] [Q] [S] -> R1 R2 R3", func(ev *Evaluator) error {
		vs, _ := ev.Stack.PopN(4)
		s, q, p, x := vs[0], vs[1], vs[2], vs[3]
		return ev.parallelApply(x, []ast.Value{p, q, s})
	})
	reg("cleave", 3, "X [P1] [P2] -> R1 R2", func(ev *Evaluator) error {
		vs, _ := ev.Stack.PopN(3)
		q, p, x := vs[0], vs[1], vs[2]
		return ev.parallelApply(x, []ast.Value{p, q})
	})
	reg("spread", 1, "V1..Vn [[P1]..[Pn]] -> R1..Rn", func(ev *Evaluator) error {
		qs, _ := ev.Stack.Pop()
		ps := items(qs)
		n := len(ps)
		vs, ok := ev.Stack.PopN(n)
		if !ok {
			return ev.Underflow("spread", n+1)
		}
		results := make([]ast.Value, n)
		for i := 0; i < n; i++ {
			r, err := ev.runWithArg(vs[n-1-i], ps[i])
			if err != nil {
				return err
			}
			if len(r) == 0 {
				return ev.EmptyAgg("spread")
			}
			results[i] = r[len(r)-1]
		}
		ev.Stack.PushAll(results)
		return nil
	})
	reg("infra", 2, "L [P] -> L'", func(ev *Evaluator) error {
		vs, _ := ev.Stack.PopN(2)
		p, l := vs[0], vs[1]
		if !isAggregateKind(l) {
			return restoreTypeErr(ev, "infra", []string{"list", "string", "set"}, l, vs)
		}
		outerBase := ev.Stack.Snapshot()
		inner := reversed(items(l))
		ev.Stack.Restore(inner)
		if err := ev.ExecQuotation(p); err != nil {
			ev.Stack.Restore(outerBase)
			return err
		}
		resultStack := ev.Stack.Snapshot()
		topFirst := reversed(resultStack)
		ev.Stack.Restore(outerBase)
		ev.Stack.Push(ast.Lst(topFirst))
		return nil
	})
	reg("compose", 2, "[P] [Q] -> [P Q]", func(ev *Evaluator) error {
		vs, _ := ev.Stack.PopN(2)
		q, p := vs[0], vs[1]
		if p.Kind != ast.Quotation || q.Kind != ast.Quotation {
			return restoreTypeErr(ev, "compose", []string{"quotation"}, p, vs)
		}
		combined := append(append([]ast.Term{}, p.Quote...), q.Quote...)
		ev.Stack.Push(ast.Quot(combined))
		return nil
	})
}

func filterElems(ev *Evaluator, a, p ast.Value) ([]ast.Value, error) {
	elems := items(a)
	base := ev.Stack.Snapshot()
	var kept []ast.Value
	for _, e := range elems {
		ev.Stack.Restore(base)
		ev.Stack.Push(e)
		if err := ev.ExecQuotation(p); err != nil {
			ev.Stack.Restore(base)
			return nil, err
		}
		res, ok := ev.Stack.Pop()
		if !ok {
			ev.Stack.Restore(base)
			return nil, ev.EmptyAgg("filter")
		}
		if Truthy(res) {
			kept = append(kept, e)
		}
	}
	ev.Stack.Restore(base)
	return kept, nil
}

// dipHide pops n values beneath an already-popped quotation p, runs p,
// then restores those n values on top in their original relative order.
func (ev *Evaluator) dipHide(n int, p ast.Value) error {
	hidden := make([]ast.Value, n)
	for i := 0; i < n; i++ {
		v, ok := ev.Stack.Pop()
		if !ok {
			for j := i - 1; j >= 0; j-- {
				ev.Stack.Push(hidden[j])
			}
			return ev.Underflow("dip", n+1)
		}
		hidden[i] = v
	}
	err := ev.ExecQuotation(p)
	for i := n - 1; i >= 0; i-- {
		ev.Stack.Push(hidden[i])
	}
	return err
}

// parallelApply runs each of qs against its own copy of x (with the
// rest of the stack as context) and pushes the results of the first
// quotation, then the second, and so on.
func (ev *Evaluator) parallelApply(x ast.Value, qs []ast.Value) error {
	var all []ast.Value
	for _, q := range qs {
		r, err := ev.runWithArg(x, q)
		if err != nil {
			return err
		}
		all = append(all, r...)
	}
	ev.Stack.PushAll(all)
	return nil
}
