package behavior

import "fmt"

// LeafDef is a domain leaf kind together with its parameters. Compile must
// reject out-of-range parameters so a live tree never sees them.
type LeafDef[C any] interface {
	Compile() (Node[C], error)
}

// Kind tags the variant held by a Definition.
type Kind int

const (
	KindLeaf Kind = iota
	KindSequence
	KindSelector
	KindResetOn
)

func (k Kind) String() string {
	switch k {
	case KindLeaf:
		return "leaf"
	case KindSequence:
		return "sequence"
	case KindSelector:
		return "selector"
	case KindResetOn:
		return "reset"
	default:
		return "invalid"
	}
}

// Definition is an immutable blueprint of a tree. It holds no execution
// state; Compile turns it into a fresh live tree each time it is called.
type Definition[C any] struct {
	kind     Kind
	leaf     LeafDef[C]
	children []Definition[C]
	signal   func(ctx C) bool
}

func Leaf[C any](def LeafDef[C]) Definition[C] {
	return Definition[C]{kind: KindLeaf, leaf: def}
}

func Seq[C any](children ...Definition[C]) Definition[C] {
	return Definition[C]{kind: KindSequence, children: clone(children)}
}

func Sel[C any](children ...Definition[C]) Definition[C] {
	return Definition[C]{kind: KindSelector, children: clone(children)}
}

// ResetWhen wraps child in a ResetOn node driven by signal.
func ResetWhen[C any](signal func(ctx C) bool, child Definition[C]) Definition[C] {
	return Definition[C]{kind: KindResetOn, signal: signal, children: []Definition[C]{child}}
}

func (d Definition[C]) Kind() Kind { return d.kind }

// Children returns a copy of the nested definitions.
func (d Definition[C]) Children() []Definition[C] { return clone(d.children) }

// LeafDef returns the leaf kind for KindLeaf definitions.
func (d Definition[C]) LeafDef() (LeafDef[C], bool) {
	return d.leaf, d.kind == KindLeaf && d.leaf != nil
}

// Compile builds a new live tree. Calling it repeatedly yields independent
// instances that share nothing.
func (d Definition[C]) Compile() (Node[C], error) {
	switch d.kind {
	case KindLeaf:
		if d.leaf == nil {
			return nil, fmt.Errorf("%w: leaf without kind", ErrInvalidDefinition)
		}
		n, err := d.leaf.Compile()
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidDefinition, err)
		}
		return n, nil
	case KindSequence:
		children, err := compileAll(d.kind, d.children)
		if err != nil {
			return nil, err
		}
		return NewSequence(children...), nil
	case KindSelector:
		children, err := compileAll(d.kind, d.children)
		if err != nil {
			return nil, err
		}
		return NewSelector(children...), nil
	case KindResetOn:
		if d.signal == nil || len(d.children) != 1 {
			return nil, fmt.Errorf("%w: reset wrapper needs a signal and one child", ErrInvalidDefinition)
		}
		child, err := d.children[0].Compile()
		if err != nil {
			return nil, fmt.Errorf("reset: %w", err)
		}
		return NewResetOn(d.signal, child), nil
	default:
		return nil, fmt.Errorf("%w: kind %d", ErrInvalidDefinition, d.kind)
	}
}

// MustCompile is Compile for hard-coded definitions known to be valid.
func (d Definition[C]) MustCompile() Node[C] {
	n, err := d.Compile()
	if err != nil {
		panic(err)
	}
	return n
}

func compileAll[C any](kind Kind, defs []Definition[C]) ([]Node[C], error) {
	nodes := make([]Node[C], 0, len(defs))
	for i, def := range defs {
		n, err := def.Compile()
		if err != nil {
			return nil, fmt.Errorf("%s[%d]: %w", kind, i, err)
		}
		nodes = append(nodes, n)
	}
	return nodes, nil
}

func clone[C any](defs []Definition[C]) []Definition[C] {
	out := make([]Definition[C], len(defs))
	copy(out, defs)
	return out
}
