package brain

import (
	"fmt"

	"github.com/zeusync/tickbrain/internal/core/behavior"
	"github.com/zeusync/tickbrain/internal/core/observability/log"
)

// Perpetual drives a tree that never ends: every tick resumes it with the
// same budget, and a finished root simply starts over on the next tick.
type Perpetual[C any] struct {
	tree   *behavior.Tree[C]
	budget int
}

func NewPerpetual[C any](name string, def behavior.Definition[C], budget int, logger log.Log) (*Perpetual[C], error) {
	if budget <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidBudget, budget)
	}
	tree, err := behavior.NewTree(name, def, logger)
	if err != nil {
		return nil, fmt.Errorf("brain %s: %w", name, err)
	}
	return &Perpetual[C]{tree: tree, budget: budget}, nil
}

// Tick runs one think step. The outcome is only kept for inspection.
func (p *Perpetual[C]) Tick(ctx C) {
	p.tree.Resume(p.budget, ctx)
}

func (p *Perpetual[C]) Name() string { return p.tree.Name() }

func (p *Perpetual[C]) Last() behavior.Outcome { return p.tree.Last() }

// Reset drops all in-flight progress.
func (p *Perpetual[C]) Reset(ctx C) { p.tree.Reset(ctx) }
