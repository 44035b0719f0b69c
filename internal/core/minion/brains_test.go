package minion

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeusync/tickbrain/internal/core/behavior"
	"github.com/zeusync/tickbrain/internal/core/geom"
)

func TestArchetypesCompile(t *testing.T) {
	for name, mk := range Archetypes {
		t.Run(name, func(t *testing.T) {
			_, err := mk().Compile()
			assert.NoError(t, err)
		})
	}
}

func TestBrainLungeCycle(t *testing.T) {
	brain := compile(t, Brain())
	th := &Thoughts{OnTheGround: true, PlayerAt: geom.V(3, 0).Ptr(), FrameTime: 0.25, Animation: AnimIdle}

	require.Equal(t, behavior.StateWaiting, brain.Resume(budget, th).State)
	require.NotNil(t, th.LungeTowards)

	th.Animation = AnimLunge
	require.Equal(t, behavior.StateWaiting, brain.Resume(budget, th).State)

	th.AnimationComplete = true
	require.Equal(t, behavior.StateWaiting, brain.Resume(budget, th).State)
	assert.Nil(t, th.LungeTowards)
	assert.True(t, th.Idling)

	th.Animation, th.AnimationComplete = AnimIdle, false
	for i := 0; i < 2; i++ {
		require.Equal(t, behavior.StateWaiting, brain.Resume(budget, th).State)
	}
	assert.Equal(t, behavior.StateComplete, brain.Resume(budget, th).State)

	// the root restarts from the top on its own
	assert.Equal(t, behavior.StateWaiting, brain.Resume(budget, th).State)
	assert.NotNil(t, th.LungeTowards)
}

func TestBrainWindsUpWhenPlayerFar(t *testing.T) {
	brain := compile(t, Brain())
	th := &Thoughts{OnTheGround: true, PlayerAt: geom.V(9, 0).Ptr(), FrameTime: 0.5}

	require.Equal(t, behavior.StateWaiting, brain.Resume(budget, th).State)
	assert.True(t, th.Idling)
	assert.Nil(t, th.LungeTowards)

	th.Idling = false
	require.Equal(t, behavior.StateWaiting, brain.Resume(budget, th).State)
	assert.False(t, th.Idling)
	assert.NotNil(t, th.LungeTowards)
}

func TestBrainIdlesWithoutTarget(t *testing.T) {
	brain := compile(t, Brain())
	th := &Thoughts{OnTheGround: true}

	for i := 0; i < 5; i++ {
		assert.Equal(t, behavior.StateFailed, brain.Resume(budget, th).State)
	}
}

func TestHitStunResetsBrain(t *testing.T) {
	brain := compile(t, Brain())
	th := &Thoughts{OnTheGround: true, PlayerAt: geom.V(9, 0).Ptr(), FrameTime: 0.5}

	require.Equal(t, behavior.StateWaiting, brain.Resume(budget, th).State)

	th.HitStun = true
	assert.Equal(t, behavior.StateComplete, brain.Resume(budget, th).State)

	// the half-finished windup is gone: two more ticks are needed again
	th.HitStun = false
	th.Idling = false
	require.Equal(t, behavior.StateWaiting, brain.Resume(budget, th).State)
	assert.True(t, th.Idling)
	assert.Nil(t, th.LungeTowards)
}

func TestTimidBrainFlees(t *testing.T) {
	brain := compile(t, TimidBrain(0.5))
	th := &Thoughts{OnTheGround: true, SelfAt: geom.V(2, 0), PlayerAt: geom.V(4, 0).Ptr(), Health: 0.2}

	require.Equal(t, behavior.StateWaiting, brain.Resume(budget, th).State)
	require.NotNil(t, th.LungeTowards)
	assert.Equal(t, geom.V(-2, 0), th.LungeTowards.Direction)
	assert.Equal(t, 15.0, th.LungeTowards.Speed)
}

func TestShooterBrainFires(t *testing.T) {
	brain := compile(t, ShooterBrain())
	th := &Thoughts{PlayerAt: geom.V(10, 0).Ptr(), FrameTime: 0.5}

	require.Equal(t, behavior.StateWaiting, brain.Resume(budget, th).State)
	require.NotNil(t, th.ShootAt)
	assert.Equal(t, geom.V(10, 0), *th.ShootAt)
}
