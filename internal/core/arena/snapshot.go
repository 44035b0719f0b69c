package arena

import (
	"github.com/google/uuid"

	"github.com/zeusync/tickbrain/internal/core/geom"
)

const (
	KindPlayer = "player"
	KindMinion = "minion"
)

// ActorSnapshot is the externally visible state of one actor.
type ActorSnapshot struct {
	ID        uuid.UUID `json:"id"`
	Kind      string    `json:"kind"`
	Archetype string    `json:"archetype,omitempty"`
	Position  geom.Vec2 `json:"position"`
	Animation string    `json:"animation"`
	Frame     *int      `json:"frame,omitempty"`
	Health    int       `json:"health"`
	// State is the player's control state or the last outcome of a minion's
	// brain.
	State string `json:"state"`
}

type Snapshot struct {
	Tick        uint64          `json:"tick"`
	Actors      []ActorSnapshot `json:"actors"`
	Projectiles []geom.Vec2     `json:"projectiles,omitempty"`
}

func (w *World) Snapshot() Snapshot {
	snap := Snapshot{
		Tick:   w.tick,
		Actors: make([]ActorSnapshot, 0, len(w.minions)+1),
	}
	p := w.player
	snap.Actors = append(snap.Actors, ActorSnapshot{
		ID:        p.ID,
		Kind:      KindPlayer,
		Position:  p.Position,
		Animation: p.anim.name,
		Frame:     copyInt(p.anim.frame),
		Health:    p.HP,
		State:     p.state.String(),
	})
	for _, m := range w.minions {
		if m.Dead() {
			continue
		}
		snap.Actors = append(snap.Actors, ActorSnapshot{
			ID:        m.ID,
			Kind:      KindMinion,
			Archetype: m.Archetype,
			Position:  m.Position,
			Animation: m.anim.name,
			Health:    m.HP,
			State:     m.brain.Last().State.String(),
		})
	}
	for _, pr := range w.projectiles {
		snap.Projectiles = append(snap.Projectiles, pr.Position)
	}
	return snap
}

func copyInt(v *int) *int {
	if v == nil {
		return nil
	}
	n := *v
	return &n
}
