package behavior

// Composite nodes: Sequence, Selector and the ResetOn wrapper.
//
// Sequence and Selector charge one unit of budget per child visit, before the
// visit. When the budget is spent they report Waiting and keep their cursor,
// so the next tick picks up at the same child.

// Sequence resumes children in order until one fails (AND).
type Sequence[C any] struct {
	children []Node[C]
	cursor   int
}

func NewSequence[C any](children ...Node[C]) *Sequence[C] {
	return &Sequence[C]{children: children}
}

func (s *Sequence[C]) Resume(budget int, ctx C) Outcome {
	for s.cursor < len(s.children) {
		if budget <= 0 {
			return Waiting(budget)
		}
		out := visit(s.children[s.cursor], budget, ctx)
		budget = out.Remaining
		switch out.State {
		case StateComplete:
			s.cursor++
		case StateFailed:
			s.cursor = 0
			return Failed(budget)
		default:
			return Waiting(budget)
		}
	}
	s.cursor = 0
	return Complete(budget)
}

// Reset rewinds the cursor. Only the child at the cursor can hold progress;
// children before it already completed and reset themselves.
func (s *Sequence[C]) Reset(ctx C) {
	if s.cursor < len(s.children) {
		s.children[s.cursor].Reset(ctx)
	}
	s.cursor = 0
}

// Selector resumes children in priority order until one completes (OR).
type Selector[C any] struct {
	children []Node[C]
	cursor   int
}

func NewSelector[C any](children ...Node[C]) *Selector[C] {
	return &Selector[C]{children: children}
}

func (s *Selector[C]) Resume(budget int, ctx C) Outcome {
	for s.cursor < len(s.children) {
		if budget <= 0 {
			return Waiting(budget)
		}
		out := visit(s.children[s.cursor], budget, ctx)
		budget = out.Remaining
		switch out.State {
		case StateComplete:
			s.cursor = 0
			return Complete(budget)
		case StateFailed:
			s.cursor++
		default:
			return Waiting(budget)
		}
	}
	s.cursor = 0
	return Failed(budget)
}

func (s *Selector[C]) Reset(ctx C) {
	if s.cursor < len(s.children) {
		s.children[s.cursor].Reset(ctx)
	}
	s.cursor = 0
}

// ResetOn forwards to its child until signal reports true. On that tick it
// throws away the child's progress and completes without resuming it.
type ResetOn[C any] struct {
	child  Node[C]
	signal func(ctx C) bool
}

func NewResetOn[C any](signal func(ctx C) bool, child Node[C]) *ResetOn[C] {
	return &ResetOn[C]{child: child, signal: signal}
}

func (r *ResetOn[C]) Resume(budget int, ctx C) Outcome {
	if r.signal(ctx) {
		r.child.Reset(ctx)
		return Complete(budget)
	}
	return r.child.Resume(budget, ctx)
}

func (r *ResetOn[C]) Reset(ctx C) { r.child.Reset(ctx) }

// visit charges one unit and resumes child with what is left. A child that
// reports more than it was given is clamped.
func visit[C any](child Node[C], budget int, ctx C) Outcome {
	budget--
	out := child.Resume(budget, ctx)
	if out.Remaining > budget {
		out.Remaining = budget
	}
	return out
}
