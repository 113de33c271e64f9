package interp

// PrimFunc is the implementation of a single primitive word. It reads
// its operands off ev.Stack (which the caller has already verified has
// at least Arity items), pushes its results, and returns an error from
// the internal/errors taxonomy on failure.
type PrimFunc func(ev *Evaluator) error

// Primitive is one entry in the PrimitiveRegistry: a name, its minimum
// required stack depth, a short Joy-notation signature for "help", and
// its implementation.
type Primitive struct {
	Name      string
	Arity     int
	Signature string
	Fn        PrimFunc
}

// PrimitiveRegistry is a name -> Primitive map. Each Evaluator gets its
// own, populated once by NewStandardRegistry when the Evaluator is
// constructed and treated as read-only thereafter.
type PrimitiveRegistry struct {
	prims map[string]*Primitive
	order []string
}

// NewRegistry returns an empty registry.
func NewRegistry() *PrimitiveRegistry {
	return &PrimitiveRegistry{prims: make(map[string]*Primitive, 256)}
}

// Register adds p to the registry. Registering a name twice replaces
// the previous entry without duplicating it in enumeration order.
func (r *PrimitiveRegistry) Register(p *Primitive) {
	if _, exists := r.prims[p.Name]; !exists {
		r.order = append(r.order, p.Name)
	}
	r.prims[p.Name] = p
}

// Lookup returns the primitive registered under name, if any.
func (r *PrimitiveRegistry) Lookup(name string) (*Primitive, bool) {
	p, ok := r.prims[name]
	return p, ok
}

// Names returns every registered primitive name, in registration order.
func (r *PrimitiveRegistry) Names() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// NewStandardRegistry returns a registry with every built-in primitive
// from internal/interp's prim_*.go files registered.
func NewStandardRegistry() *PrimitiveRegistry {
	r := NewRegistry()
	registerStackPrimitives(r)
	registerArithPrimitives(r)
	registerComparePrimitives(r)
	registerAggregatePrimitives(r)
	registerTypePrimitives(r)
	registerCombinatorPrimitives(r)
	registerRecursionPrimitives(r)
	registerConditionalPrimitives(r)
	registerIOPrimitives(r)
	return r
}
