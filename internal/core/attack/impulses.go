package attack

import (
	"github.com/google/uuid"

	"github.com/zeusync/tickbrain/internal/core/geom"
)

// Impulses is the blackboard of one in-flight attack. It lives exactly as
// long as the attack script that drives it.
type Impulses struct {
	AttackID uint32
	Damage   int

	// intents
	SetSpeed       *geom.Vec2
	PlayAnimation  string
	AnimationFrame *int
	Intangible     bool

	// sensed, refreshed by the world before every tick
	Speed             geom.Vec2
	OnTheGround       bool
	Animation         string
	AnimationComplete bool
	AnimationTime     float64
	HitMinions        []uuid.UUID
}

func NewImpulses(id uint32) *Impulses {
	return &Impulses{AttackID: id}
}

// Sense is one tick's observation of the attacker.
type Sense struct {
	Speed             geom.Vec2
	OnTheGround       bool
	Animation         string
	AnimationComplete bool
	FrameTime         float64
}

// Refresh copies a new observation in. The frame hold timer counts down by
// the tick's frame time.
func (i *Impulses) Refresh(s Sense) {
	i.Speed = s.Speed
	i.OnTheGround = s.OnTheGround
	i.Animation = s.Animation
	i.AnimationComplete = s.AnimationComplete
	i.AnimationTime -= s.FrameTime
}

// RecordHit notes a minion struck by this attack. Each minion counts once.
func (i *Impulses) RecordHit(id uuid.UUID) bool {
	for _, seen := range i.HitMinions {
		if seen == id {
			return false
		}
	}
	i.HitMinions = append(i.HitMinions, id)
	return true
}
