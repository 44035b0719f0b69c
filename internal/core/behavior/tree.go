package behavior

import "github.com/zeusync/tickbrain/internal/core/observability/log"

// Tree is a live root with a name, the last outcome it produced and a logger
// for terminal transitions.
type Tree[C any] struct {
	name   string
	root   Node[C]
	last   Outcome
	logger log.Log
}

// NewTree compiles def into a fresh instance.
func NewTree[C any](name string, def Definition[C], logger log.Log) (*Tree[C], error) {
	root, err := def.Compile()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.NewNop()
	}
	return &Tree[C]{
		name:   name,
		root:   root,
		last:   Waiting(0),
		logger: logger.With(log.String("tree", name)),
	}, nil
}

func (t *Tree[C]) Name() string { return t.name }

// Last is the outcome of the most recent Resume.
func (t *Tree[C]) Last() Outcome { return t.last }

func (t *Tree[C]) Resume(budget int, ctx C) Outcome {
	out := t.root.Resume(budget, ctx)
	if out.Terminal() {
		t.logger.Debug("tree finished activation",
			log.Stringer("outcome", out.State),
			log.Int("budget_left", out.Remaining))
	} else if out.Remaining <= 0 {
		t.logger.Warn("tree ran out of budget", log.Int("budget", budget))
	}
	t.last = out
	return out
}

func (t *Tree[C]) Reset(ctx C) {
	t.root.Reset(ctx)
	t.last = Waiting(0)
}
