package behavior

// Node is implemented by every tree node, leaf or composite.
//
// C is the per-tree blackboard, usually a pointer to a domain struct that the
// surrounding game system refreshes before every tick. Nodes own their own
// progress state; the context is only borrowed for the duration of a call.
type Node[C any] interface {
	// Resume continues the current activation. A node returning Waiting is
	// resumed from the same point on the next call.
	Resume(budget int, ctx C) Outcome
	// Reset drops any in-flight progress so the next Resume starts clean.
	Reset(ctx C)
}

// Func adapts a pair of functions to the Node contract. It is handy for tests
// and for one-off conditions that need no private state.
type Func[C any] struct {
	ResumeFn func(budget int, ctx C) Outcome
	ResetFn  func(ctx C)
}

func (l Func[C]) Resume(budget int, ctx C) Outcome { return l.ResumeFn(budget, ctx) }

func (l Func[C]) Reset(ctx C) {
	if l.ResetFn != nil {
		l.ResetFn(ctx)
	}
}

// Condition builds a stateless leaf that completes when pred holds and fails
// otherwise. It never waits.
func Condition[C any](pred func(ctx C) bool) Func[C] {
	return Func[C]{ResumeFn: func(budget int, ctx C) Outcome {
		if pred(ctx) {
			return Complete(budget)
		}
		return Failed(budget)
	}}
}
