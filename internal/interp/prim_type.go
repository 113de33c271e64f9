package interp

import "github.com/cwbudde/go-joy/internal/ast"

func registerTypePrimitives(r *PrimitiveRegistry) {
	reg := func(name string, arity int, sig string, fn PrimFunc) {
		r.Register(&Primitive{Name: name, Arity: arity, Signature: sig, Fn: fn})
	}

	pred := func(name string, test func(ast.Value) bool) PrimFunc {
		return func(ev *Evaluator) error {
			v, _ := ev.Stack.Peek(0)
			ev.Stack.Pop()
			ev.Stack.Push(ast.Bln(test(v)))
			return nil
		}
	}
	reg("integer", 1, "X -> B", pred("integer", func(v ast.Value) bool { return v.Kind == ast.Integer }))
	reg("float", 1, "X -> B", pred("float", func(v ast.Value) bool { return v.Kind == ast.Float }))
	reg("char", 1, "X -> B", pred("char", func(v ast.Value) bool { return v.Kind == ast.Char }))
	reg("string", 1, "X -> B", pred("string", func(v ast.Value) bool { return v.Kind == ast.String }))
	reg("list", 1, "X -> B", pred("list", func(v ast.Value) bool { return v.Kind == ast.List || v.Kind == ast.Quotation }))
	reg("logical", 1, "X -> B", pred("logical", func(v ast.Value) bool { return v.Kind == ast.Boolean }))
	reg("set", 1, "X -> B", pred("set", func(v ast.Value) bool { return v.Kind == ast.Set }))
	reg("file", 1, "X -> B", pred("file", func(v ast.Value) bool { return v.Kind == ast.File }))
	reg("leaf", 1, "X -> B", pred("leaf", func(v ast.Value) bool { return v.Kind != ast.List && v.Kind != ast.Quotation }))
	reg("user", 1, "X -> B", func(ev *Evaluator) error {
		v, _ := ev.Stack.Pop()
		isUser := false
		if v.Kind == ast.Symbol {
			_, isUser = ev.Defs[v.Str]
		}
		ev.Stack.Push(ast.Bln(isUser))
		return nil
	})
	reg("sametype", 2, "X Y -> B", func(ev *Evaluator) error {
		vs, _ := ev.Stack.PopN(2)
		ev.Stack.Push(ast.Bln(sameBroadKind(vs[0], vs[1])))
		return nil
	})
	reg("typeof", 1, "X -> I", func(ev *Evaluator) error {
		v, _ := ev.Stack.Pop()
		ev.Stack.Push(ast.Int(int64(ev.TypeCode(v))))
		return nil
	})

	ifKind := func(name string, test func(ast.Value) bool) PrimFunc {
		return func(ev *Evaluator) error {
			vs, _ := ev.Stack.PopN(3)
			f, t, x := vs[0], vs[1], vs[2]
			ev.Stack.Push(x)
			if test(x) {
				return ev.ExecQuotation(t)
			}
			return ev.ExecQuotation(f)
		}
	}
	reg("ifinteger", 3, "X [T] [F] -> ...", ifKind("ifinteger", func(v ast.Value) bool { return v.Kind == ast.Integer }))
	reg("iffloat", 3, "X [T] [F] -> ...", ifKind("iffloat", func(v ast.Value) bool { return v.Kind == ast.Float }))
	reg("ifchar", 3, "X [T] [F] -> ...", ifKind("ifchar", func(v ast.Value) bool { return v.Kind == ast.Char }))
	reg("ifstring", 3, "X [T] [F] -> ...", ifKind("ifstring", func(v ast.Value) bool { return v.Kind == ast.String }))
	reg("iflist", 3, "X [T] [F] -> ...", ifKind("iflist", func(v ast.Value) bool { return v.Kind == ast.List || v.Kind == ast.Quotation }))
	reg("iflogical", 3, "X [T] [F] -> ...", ifKind("iflogical", func(v ast.Value) bool { return v.Kind == ast.Boolean }))
	reg("ifset", 3, "X [T] [F] -> ...", ifKind("ifset", func(v ast.Value) bool { return v.Kind == ast.Set }))
	reg("iffile", 3, "X [T] [F] -> ...", ifKind("iffile", func(v ast.Value) bool { return v.Kind == ast.File }))
}

// sameBroadKind groups List/Quotation together; otherwise compares Kind
// directly, matching the other type predicates' treatment of the two
// sequence kinds as one observable type.
func sameBroadKind(a, b ast.Value) bool {
	norm := func(k ast.Kind) ast.Kind {
		if k == ast.Quotation {
			return ast.List
		}
		return k
	}
	return norm(a.Kind) == norm(b.Kind)
}
