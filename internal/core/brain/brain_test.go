package brain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeusync/tickbrain/internal/core/behavior"
	"github.com/zeusync/tickbrain/internal/core/observability/log"
)

type actor struct {
	ticks int
	fail  bool
}

// countdown waits for n resumes and then completes, or fails when the actor
// says so.
type countdown struct{ n int }

type countdownNode struct {
	n, seen int
}

func (c countdown) Compile() (behavior.Node[*actor], error) {
	return &countdownNode{n: c.n}, nil
}

func (c *countdownNode) Resume(budget int, a *actor) behavior.Outcome {
	a.ticks++
	if a.fail {
		return behavior.Failed(budget)
	}
	c.seen++
	if c.seen > c.n {
		c.seen = 0
		return behavior.Complete(budget)
	}
	return behavior.Waiting(budget)
}

func (c *countdownNode) Reset(*actor) { c.seen = 0 }

func waitTicks(n int) behavior.Definition[*actor] {
	return behavior.Leaf[*actor](countdown{n: n})
}

func TestPerpetualRestartsAfterTerminal(t *testing.T) {
	p, err := NewPerpetual("loop", waitTicks(1), 10, log.NewNop())
	require.NoError(t, err)
	a := &actor{}

	states := make([]behavior.State, 0, 6)
	for i := 0; i < 6; i++ {
		p.Tick(a)
		states = append(states, p.Last().State)
	}
	assert.Equal(t, []behavior.State{
		behavior.StateWaiting, behavior.StateComplete,
		behavior.StateWaiting, behavior.StateComplete,
		behavior.StateWaiting, behavior.StateComplete,
	}, states)
	assert.Equal(t, 6, a.ticks)
	assert.Equal(t, "loop", p.Name())
}

func TestPerpetualRejectsBadInput(t *testing.T) {
	_, err := NewPerpetual("loop", waitTicks(1), 0, nil)
	assert.ErrorIs(t, err, ErrInvalidBudget)

	_, err = NewPerpetual("loop", behavior.Leaf[*actor](nil), 5, nil)
	assert.Error(t, err)
}

func TestPerpetualBudgetIsPerTick(t *testing.T) {
	// each composite visit costs one unit, so three steps need several ticks
	def := behavior.Seq(waitTicks(0), waitTicks(0), waitTicks(0))
	p, err := NewPerpetual("short", def, 1, nil)
	require.NoError(t, err)
	a := &actor{}

	p.Tick(a)
	assert.Equal(t, behavior.StateWaiting, p.Last().State)
	assert.Equal(t, 1, a.ticks)
	for i := 0; i < 2; i++ {
		p.Tick(a)
	}
	assert.Equal(t, behavior.StateComplete, p.Last().State)
	assert.Equal(t, 3, a.ticks)
}

type teardownCall struct {
	key   string
	ctx   *actor
	state behavior.State
}

func newScripts(t *testing.T, calls *[]teardownCall) *Scripts[string, *actor] {
	t.Helper()
	s, err := NewScripts[string, *actor](10, func(key string, a *actor, out behavior.Outcome) {
		*calls = append(*calls, teardownCall{key: key, ctx: a, state: out.State})
	}, log.NewNop())
	require.NoError(t, err)
	return s
}

func TestScriptTeardownRunsExactlyOnce(t *testing.T) {
	var calls []teardownCall
	s := newScripts(t, &calls)
	a := &actor{}

	require.NoError(t, s.Start("player", "slash", waitTicks(2), a))
	for i := 0; i < 2; i++ {
		out, ok := s.Tick("player")
		require.True(t, ok)
		require.Equal(t, behavior.StateWaiting, out.State)
	}
	assert.Empty(t, calls)

	out, ok := s.Tick("player")
	require.True(t, ok)
	assert.Equal(t, behavior.StateComplete, out.State)
	require.Len(t, calls, 1)
	assert.Equal(t, teardownCall{key: "player", ctx: a, state: behavior.StateComplete}, calls[0])

	// gone for good
	_, ok = s.Tick("player")
	assert.False(t, ok)
	assert.False(t, s.Running("player"))
	assert.Len(t, calls, 1)
}

func TestScriptFailureTearsDown(t *testing.T) {
	var calls []teardownCall
	s := newScripts(t, &calls)

	require.NoError(t, s.Start("player", "slash", waitTicks(5), &actor{fail: true}))
	out, ok := s.Tick("player")
	require.True(t, ok)
	assert.Equal(t, behavior.StateFailed, out.State)
	require.Len(t, calls, 1)
	assert.Equal(t, behavior.StateFailed, calls[0].state)
}

func TestScriptStartWhileRunning(t *testing.T) {
	var calls []teardownCall
	s := newScripts(t, &calls)
	first := &actor{}

	require.NoError(t, s.Start("player", "slash", waitTicks(3), first))
	err := s.Start("player", "plunge", waitTicks(1), &actor{})
	assert.ErrorIs(t, err, ErrScriptRunning)

	ctx, ok := s.Context("player")
	require.True(t, ok)
	assert.Same(t, first, ctx)

	// other keys are independent
	require.NoError(t, s.Start("ghost", "slash", waitTicks(0), &actor{}))
	assert.Equal(t, 2, s.Len())
}

func TestScriptFreshInstancePerStart(t *testing.T) {
	var calls []teardownCall
	s := newScripts(t, &calls)
	def := waitTicks(1)

	require.NoError(t, s.Start("player", "slash", def, &actor{}))
	s.Tick("player")
	require.True(t, s.Cancel("player"))
	require.Len(t, calls, 1)
	assert.Equal(t, behavior.StateFailed, calls[0].state)
	assert.False(t, s.Cancel("player"))

	// progress from the cancelled instance does not leak into the new one
	require.NoError(t, s.Start("player", "slash", def, &actor{}))
	out, _ := s.Tick("player")
	assert.Equal(t, behavior.StateWaiting, out.State)
	out, _ = s.Tick("player")
	assert.Equal(t, behavior.StateComplete, out.State)
	assert.Len(t, calls, 2)
}

func TestTeardownMayStartNextScript(t *testing.T) {
	var s *Scripts[string, *actor]
	chained := 0
	s, err := NewScripts[string, *actor](10, func(key string, a *actor, out behavior.Outcome) {
		if chained == 0 {
			chained++
			assert.NoError(t, s.Start(key, "follow-up", waitTicks(0), a))
		}
	}, nil)
	require.NoError(t, err)

	require.NoError(t, s.Start("player", "slash", waitTicks(0), &actor{}))
	s.Tick("player")
	assert.True(t, s.Running("player"))
}

func TestScriptsRejectBadInput(t *testing.T) {
	_, err := NewScripts[string, *actor](-1, nil, nil)
	assert.ErrorIs(t, err, ErrInvalidBudget)

	s, err := NewScripts[string, *actor](3, nil, nil)
	require.NoError(t, err)
	err = s.Start("player", "broken", behavior.Seq(behavior.Leaf[*actor](nil)), &actor{})
	assert.ErrorIs(t, err, behavior.ErrInvalidDefinition)
	assert.False(t, s.Running("player"))

	_, ok := s.Context("player")
	assert.False(t, ok)
}
