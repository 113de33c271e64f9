package interp

import "github.com/cwbudde/go-joy/internal/ast"

// items extracts the element sequence of an aggregate Value as []Value,
// converting Quotation terms to their pushed-form values and String
// runes to Char values, so aggregate primitives can operate uniformly.
func items(v ast.Value) []ast.Value {
	switch v.Kind {
	case ast.List:
		return v.Items
	case ast.Quotation:
		out := make([]ast.Value, len(v.Quote))
		for i, t := range v.Quote {
			if t.IsDefinition {
				out[i] = ast.Sym(t.Def.Name)
				continue
			}
			out[i] = t.Val
		}
		return out
	case ast.String:
		rs := []rune(v.Str)
		out := make([]ast.Value, len(rs))
		for i, r := range rs {
			out[i] = ast.Chr(r)
		}
		return out
	case ast.Set:
		var out []ast.Value
		for i := 0; i < 64; i++ {
			if v.Bits&(1<<uint(i)) != 0 {
				out = append(out, ast.Int(int64(i)))
			}
		}
		return out
	}
	return nil
}

// rebuild constructs an aggregate of the kind indicated by hint from
// elems, narrowing to String or Set when every element fits, and
// falling back to List otherwise (spec.md §8 kind-preservation rule).
func rebuild(hint ast.Kind, elems []ast.Value) ast.Value {
	switch hint {
	case ast.String:
		if allChars(elems) {
			rs := make([]rune, len(elems))
			for i, e := range elems {
				rs[i] = e.Ch
			}
			return ast.Str(string(rs))
		}
	case ast.Set:
		if bits, ok := allSmallInts(elems); ok {
			return ast.SetOf(bits)
		}
	}
	return ast.Lst(elems)
}

func allChars(elems []ast.Value) bool {
	for _, e := range elems {
		if e.Kind != ast.Char {
			return false
		}
	}
	return true
}

func allSmallInts(elems []ast.Value) (uint64, bool) {
	var bits uint64
	for _, e := range elems {
		if e.Kind != ast.Integer || e.Int < 0 || e.Int > 63 {
			return 0, false
		}
		bits |= 1 << uint(e.Int)
	}
	return bits, true
}

func isAggregateKind(v ast.Value) bool { return v.Kind.IsAggregate() }

func registerAggregatePrimitives(r *PrimitiveRegistry) {
	reg := func(name string, arity int, sig string, fn PrimFunc) {
		r.Register(&Primitive{Name: name, Arity: arity, Signature: sig, Fn: fn})
	}

	reg("cons", 2, "X A -> A'", func(ev *Evaluator) error {
		vs, _ := ev.Stack.PopN(2)
		a, x := vs[0], vs[1]
		if !isAggregateKind(a) {
			return restoreTypeErr(ev, "cons", []string{"list", "string", "set"}, a, vs)
		}
		elems := append([]ast.Value{x}, items(a)...)
		ev.Stack.Push(rebuild(a.Kind, elems))
		return nil
	})
	reg("swons", 2, "A X -> A'", func(ev *Evaluator) error {
		vs, _ := ev.Stack.PopN(2)
		x, a := vs[0], vs[1]
		if !isAggregateKind(a) {
			return restoreTypeErr(ev, "swons", []string{"list", "string", "set"}, a, vs)
		}
		elems := append([]ast.Value{x}, items(a)...)
		ev.Stack.Push(rebuild(a.Kind, elems))
		return nil
	})
	reg("first", 1, "A -> X", func(ev *Evaluator) error {
		v, _ := ev.Stack.Peek(0)
		if !isAggregateKind(v) {
			ev.Stack.Pop()
			return ev.TypeError("first", []string{"list", "string", "set"}, v.Kind)
		}
		elems := items(v)
		if len(elems) == 0 {
			return ev.EmptyAgg("first")
		}
		ev.Stack.Pop()
		ev.Stack.Push(elems[0])
		return nil
	})
	reg("rest", 1, "A -> A'", func(ev *Evaluator) error {
		v, _ := ev.Stack.Peek(0)
		if !isAggregateKind(v) {
			ev.Stack.Pop()
			return ev.TypeError("rest", []string{"list", "string", "set"}, v.Kind)
		}
		elems := items(v)
		if len(elems) == 0 {
			return ev.EmptyAgg("rest")
		}
		ev.Stack.Pop()
		ev.Stack.Push(rebuild(v.Kind, elems[1:]))
		return nil
	})
	reg("uncons", 1, "A -> First Rest", func(ev *Evaluator) error {
		v, _ := ev.Stack.Peek(0)
		if !isAggregateKind(v) {
			ev.Stack.Pop()
			return ev.TypeError("uncons", []string{"list", "string", "set"}, v.Kind)
		}
		elems := items(v)
		if len(elems) == 0 {
			return ev.EmptyAgg("uncons")
		}
		ev.Stack.Pop()
		ev.Stack.Push(elems[0])
		ev.Stack.Push(rebuild(v.Kind, elems[1:]))
		return nil
	})
	reg("unswons", 1, "A -> Rest First", func(ev *Evaluator) error {
		v, _ := ev.Stack.Peek(0)
		if !isAggregateKind(v) {
			ev.Stack.Pop()
			return ev.TypeError("unswons", []string{"list", "string", "set"}, v.Kind)
		}
		elems := items(v)
		if len(elems) == 0 {
			return ev.EmptyAgg("unswons")
		}
		ev.Stack.Pop()
		ev.Stack.Push(rebuild(v.Kind, elems[1:]))
		ev.Stack.Push(elems[0])
		return nil
	})
	reg("null", 1, "X -> B", func(ev *Evaluator) error {
		v, _ := ev.Stack.Pop()
		ev.Stack.Push(ast.Bln(!Truthy(v)))
		return nil
	})
	reg("small", 1, "X -> B", func(ev *Evaluator) error {
		v, _ := ev.Stack.Pop()
		var small bool
		if isNumeric(v) {
			f, _ := asFloat(v)
			small = f < 2
		} else if isAggregateKind(v) {
			small = aggLen(v) <= 1
		}
		ev.Stack.Push(ast.Bln(small))
		return nil
	})
	reg("size", 1, "A -> I", func(ev *Evaluator) error {
		v, _ := ev.Stack.Pop()
		if !isAggregateKind(v) {
			ev.Stack.Push(v)
			return ev.TypeError("size", []string{"list", "string", "set"}, v.Kind)
		}
		ev.Stack.Push(ast.Int(int64(aggLen(v))))
		return nil
	})
	reg("concat", 2, "A B -> C", func(ev *Evaluator) error {
		vs, _ := ev.Stack.PopN(2)
		b, a := vs[0], vs[1]
		if !isAggregateKind(a) || !isAggregateKind(b) {
			return restoreTypeErr(ev, "concat", []string{"list", "string", "set"}, a, vs)
		}
		elems := append(append([]ast.Value{}, items(a)...), items(b)...)
		ev.Stack.Push(rebuild(a.Kind, elems))
		return nil
	})
	reg("swoncat", 2, "B A -> C", func(ev *Evaluator) error {
		vs, _ := ev.Stack.PopN(2)
		a, b := vs[0], vs[1]
		if !isAggregateKind(a) || !isAggregateKind(b) {
			return restoreTypeErr(ev, "swoncat", []string{"list", "string", "set"}, a, vs)
		}
		elems := append(append([]ast.Value{}, items(a)...), items(b)...)
		ev.Stack.Push(rebuild(a.Kind, elems))
		return nil
	})
	reg("enconcat", 3, "X A1 A2 -> A1 X A2", func(ev *Evaluator) error {
		vs, _ := ev.Stack.PopN(3)
		a2, a1, x := vs[0], vs[1], vs[2]
		if !isAggregateKind(a1) || !isAggregateKind(a2) {
			return restoreTypeErr(ev, "enconcat", []string{"list", "string", "set"}, a1, vs)
		}
		elems := append(append(append([]ast.Value{}, items(a1)...), x), items(a2)...)
		ev.Stack.Push(rebuild(a1.Kind, elems))
		return nil
	})
	reg("reverse", 1, "A -> A'", func(ev *Evaluator) error {
		v, _ := ev.Stack.Pop()
		if !isAggregateKind(v) {
			ev.Stack.Push(v)
			return ev.TypeError("reverse", []string{"list", "string", "set"}, v.Kind)
		}
		elems := items(v)
		out := make([]ast.Value, len(elems))
		for i, e := range elems {
			out[len(elems)-1-i] = e
		}
		ev.Stack.Push(rebuild(v.Kind, out))
		return nil
	})
	reg("at", 2, "A N -> X", func(ev *Evaluator) error {
		vs, _ := ev.Stack.PopN(2)
		n, a := vs[0], vs[1]
		return doAt(ev, "at", a, n, vs)
	})
	reg("of", 2, "N A -> X", func(ev *Evaluator) error {
		vs, _ := ev.Stack.PopN(2)
		a, n := vs[0], vs[1]
		return doAt(ev, "of", a, n, vs)
	})
	reg("pick", 1, "... N -> ...Xn", func(ev *Evaluator) error {
		n, _ := ev.Stack.Pop()
		if n.Kind != ast.Integer {
			ev.Stack.Push(n)
			return ev.TypeError("pick", []string{"integer"}, n.Kind)
		}
		v, ok := ev.Stack.Peek(int(n.Int))
		if !ok {
			return ev.Underflow("pick", int(n.Int)+1)
		}
		ev.Stack.Push(v)
		return nil
	})
	reg("drop", 2, "A N -> A'", func(ev *Evaluator) error {
		vs, _ := ev.Stack.PopN(2)
		n, a := vs[0], vs[1]
		if !isAggregateKind(a) || n.Kind != ast.Integer {
			return restoreTypeErr(ev, "drop", []string{"list", "string", "set"}, a, vs)
		}
		elems := items(a)
		k := int(n.Int)
		if k < 0 {
			k = 0
		}
		if k > len(elems) {
			k = len(elems)
		}
		ev.Stack.Push(rebuild(a.Kind, elems[k:]))
		return nil
	})
	reg("take", 2, "A N -> A'", func(ev *Evaluator) error {
		vs, _ := ev.Stack.PopN(2)
		n, a := vs[0], vs[1]
		if !isAggregateKind(a) || n.Kind != ast.Integer {
			return restoreTypeErr(ev, "take", []string{"list", "string", "set"}, a, vs)
		}
		elems := items(a)
		k := int(n.Int)
		if k < 0 {
			k = 0
		}
		if k > len(elems) {
			k = len(elems)
		}
		ev.Stack.Push(rebuild(a.Kind, elems[:k]))
		return nil
	})
	reg("in", 2, "X A -> B", func(ev *Evaluator) error {
		vs, _ := ev.Stack.PopN(2)
		a, x := vs[0], vs[1]
		if !isAggregateKind(a) {
			return restoreTypeErr(ev, "in", []string{"list", "string", "set"}, a, vs)
		}
		ev.Stack.Push(ast.Bln(memberOf(x, a)))
		return nil
	})
	reg("has", 2, "A X -> B", func(ev *Evaluator) error {
		vs, _ := ev.Stack.PopN(2)
		x, a := vs[0], vs[1]
		if !isAggregateKind(a) {
			return restoreTypeErr(ev, "has", []string{"list", "string", "set"}, a, vs)
		}
		ev.Stack.Push(ast.Bln(memberOf(x, a)))
		return nil
	})
}

func memberOf(x, a ast.Value) bool {
	if a.Kind == ast.Set && x.Kind == ast.Integer {
		if x.Int < 0 || x.Int > 63 {
			return false
		}
		return a.Bits&(1<<uint(x.Int)) != 0
	}
	for _, e := range items(a) {
		if EqualDeep(e, x) {
			return true
		}
	}
	return false
}

func doAt(ev *Evaluator, op string, a, n ast.Value, popped []ast.Value) error {
	if !isAggregateKind(a) || n.Kind != ast.Integer {
		return restoreTypeErr(ev, op, []string{"list", "string", "set"}, a, popped)
	}
	elems := items(a)
	idx := int(n.Int)
	if idx < 0 || idx >= len(elems) {
		return ev.BoundsErr(op, idx, len(elems))
	}
	ev.Stack.Push(elems[idx])
	return nil
}
