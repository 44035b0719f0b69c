package minion

import "github.com/zeusync/tickbrain/internal/core/geom"

const (
	AnimIdle  = "Idle"
	AnimLunge = "Lunge"
)

// Lunge is the impulse a minion asks for once its windup starts.
type Lunge struct {
	Direction geom.Vec2 `json:"direction"`
	Speed     float64   `json:"speed"`
	Rise      float64   `json:"rise"`
}

// Thoughts is the per-minion blackboard. The sense fields are refreshed by
// the world every tick; the intent fields are written by leaves and applied
// by the world afterwards.
type Thoughts struct {
	// sensed
	SelfAt            geom.Vec2
	PlayerAt          *geom.Vec2
	OnTheGround       bool
	Animation         string
	AnimationComplete bool
	HitStun           bool
	Health            float64
	FrameTime         float64

	// intents
	LungeTowards *Lunge
	ShootAt      *geom.Vec2
	Idling       bool
}

// Sense is one tick's observation of the world for a minion.
type Sense struct {
	SelfAt            geom.Vec2
	PlayerAt          *geom.Vec2
	OnTheGround       bool
	Animation         string
	AnimationComplete bool
	HitStun           bool
	Health            float64
	FrameTime         float64
}

// Refresh copies a new observation in and clears the idling flag. The lunge
// intent survives until the lunge leaf clears it; the world consumes ShootAt.
func (t *Thoughts) Refresh(s Sense) {
	t.SelfAt = s.SelfAt
	t.PlayerAt = s.PlayerAt
	t.OnTheGround = s.OnTheGround
	t.Animation = s.Animation
	t.AnimationComplete = s.AnimationComplete
	t.HitStun = s.HitStun
	t.Health = s.Health
	t.FrameTime = s.FrameTime
	t.Idling = false
}

// PlayerDirection is the offset from the minion to the player, if visible.
func (t *Thoughts) PlayerDirection() (geom.Vec2, bool) {
	if t.PlayerAt == nil {
		return geom.Vec2{}, false
	}
	return t.PlayerAt.Sub(t.SelfAt), true
}
