package arena

import (
	"math"

	"github.com/google/uuid"

	"github.com/zeusync/tickbrain/internal/core/attack"
	"github.com/zeusync/tickbrain/internal/core/brain"
	"github.com/zeusync/tickbrain/internal/core/geom"
	"github.com/zeusync/tickbrain/internal/core/minion"
)

const (
	hitStunTime     = 0.3
	knockbackSpeed  = 6
	knockbackRise   = 4
	contactRadius   = 1
	projectileSpeed = 12
	projectileTTL   = 2
	projectileHit   = 0.5
)

// Minion is an enemy driven by a perpetual brain.
type Minion struct {
	ID        uuid.UUID
	Archetype string
	Body
	HP, MaxHP int
	Sight     float64

	anim     clip
	stun     float64
	struck   bool
	thoughts *minion.Thoughts
	brain    *brain.Perpetual[*minion.Thoughts]
}

func (m *Minion) Dead() bool { return m.HP <= 0 }

func (m *Minion) sense(player *Player, dt float64) {
	var playerAt *geom.Vec2
	if !player.Down() && player.Position.Sub(m.Position).Length() <= m.Sight {
		playerAt = player.Position.Ptr()
	}
	m.anim.seen = m.anim.complete()
	m.thoughts.Refresh(minion.Sense{
		SelfAt:            m.Position,
		PlayerAt:          playerAt,
		OnTheGround:       m.OnTheGround,
		Animation:         m.anim.name,
		AnimationComplete: m.anim.seen,
		HitStun:           m.stun > 0,
		Health:            float64(m.HP) / float64(m.MaxHP),
		FrameTime:         dt,
	})
}

// hit applies damage and knocks the minion away from source.
func (m *Minion) hit(damage int, source geom.Vec2) {
	m.HP -= damage
	m.stun = hitStunTime
	dir := math.Copysign(1, m.Position.X-source.X)
	m.launch(geom.V(dir*knockbackSpeed, knockbackRise))
}

// Player is the controlled character. While an attack script runs the player
// is Attacking and the script's impulses steer it.
type Player struct {
	ID uuid.UUID
	Body
	HP    int
	Reach float64

	anim   clip
	state  PlayerState
	attack *attack.Impulses
	kind   attack.Type
}

type PlayerState int

const (
	Controlled PlayerState = iota
	Attacking
)

func (s PlayerState) String() string {
	if s == Attacking {
		return "attacking"
	}
	return "controlled"
}

func (p *Player) State() PlayerState { return p.state }

func (p *Player) Down() bool { return p.HP <= 0 }

func (p *Player) intangible() bool { return p.attack != nil && p.attack.Intangible }

func (p *Player) hurt(damage int) bool {
	if p.intangible() || p.Down() {
		return false
	}
	p.HP -= damage
	return true
}

type projectile struct {
	Position geom.Vec2
	Velocity geom.Vec2
	ttl      float64
}
