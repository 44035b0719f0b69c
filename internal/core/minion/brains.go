package minion

import (
	"fmt"

	"github.com/zeusync/tickbrain/internal/core/behavior"
)

// Brain is the stock minion: lunge straight away when the player is close,
// otherwise wind up for a second first. A hit throws away whatever it was
// doing.
func Brain() behavior.Definition[*Thoughts] {
	return ResetOnHit(behavior.Sel(
		behavior.Seq(
			OnTheGround(),
			PlayerVisible(),
			PlayerInRange(5, 1),
			LungeAtPlayer(20, 10),
			WaitForGround(),
			Idle(1),
		),
		behavior.Seq(
			OnTheGround(),
			PlayerVisible(),
			Idle(1),
			LungeAtPlayer(20, 10),
			WaitForGround(),
			Idle(1),
		),
	))
}

// TimidBrain hops away from the player while health is below threshold and
// fights like Brain otherwise.
func TimidBrain(threshold float64) behavior.Definition[*Thoughts] {
	return ResetOnHit(behavior.Sel(
		behavior.Seq(
			OnTheGround(),
			PlayerVisible(),
			IsTimid(threshold),
			LungeAway(15, 8),
			WaitForGround(),
			Idle(0.5),
		),
		behavior.Seq(
			OnTheGround(),
			PlayerVisible(),
			PlayerInRange(5, 1),
			LungeAtPlayer(20, 10),
			WaitForGround(),
			Idle(1),
		),
	))
}

// ShooterBrain keeps its distance and fires when the player is visible.
func ShooterBrain() behavior.Definition[*Thoughts] {
	return ResetOnHit(behavior.Sel(
		behavior.Seq(
			OnTheGround(),
			PlayerVisible(),
			PlayerInRange(3, 2),
			LungeAway(12, 6),
			WaitForGround(),
		),
		behavior.Seq(
			PlayerVisible(),
			ShootAtPlayer(),
			Idle(1.5),
		),
	))
}

// Archetypes are the hard-coded brains addressable by name from config.
var Archetypes = map[string]func() behavior.Definition[*Thoughts]{
	"brute":   Brain,
	"timid":   func() behavior.Definition[*Thoughts] { return TimidBrain(0.35) },
	"shooter": ShooterBrain,
}

// Loader builds minion definitions from specs.
func Loader() behavior.Loader[*Thoughts] {
	return behavior.Loader[*Thoughts]{
		ParseLeaf: ParseLeaf,
		Signals:   map[string]func(*Thoughts) bool{"hit_stun": inHitStun},
	}
}

// ParseLeaf maps a spec leaf onto the minion vocabulary.
func ParseLeaf(kind string, p behavior.Params, child *behavior.Definition[*Thoughts]) (behavior.LeafDef[*Thoughts], error) {
	var (
		l   Leaf
		err error
	)
	switch kind {
	case "on_the_ground":
		l.Kind = KindOnTheGround
	case "wait_for_ground":
		l.Kind = KindWaitForGround
	case "player_visible":
		l.Kind = KindPlayerVisible
	case "shoot_at_player":
		l.Kind = KindShootAtPlayer
	case "is_timid":
		l.Kind = KindIsTimid
		l.Threshold, err = p.Float("threshold")
	case "player_in_range":
		l.Kind = KindPlayerInRange
		err = two(p, "dx", "dy", &l.A, &l.B)
	case "lunge_at_player":
		l.Kind = KindLungeAtPlayer
		err = two(p, "speed", "rise", &l.A, &l.B)
	case "lunge_away":
		l.Kind = KindLungeAway
		err = two(p, "speed", "rise", &l.A, &l.B)
	case "idle":
		l.Kind = KindIdle
		l.Duration, err = p.Float("duration")
	case "reset_on_hit":
		l.Kind = KindResetOnHit
		l.Child = child
	default:
		return nil, fmt.Errorf("%w: minion %q", behavior.ErrUnknownLeaf, kind)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", kind, err)
	}
	if err = l.validate(); err != nil {
		return nil, err
	}
	return l, nil
}

func two(p behavior.Params, ka, kb string, a, b *float64) error {
	var err error
	if *a, err = p.Float(ka); err != nil {
		return err
	}
	*b, err = p.Float(kb)
	return err
}
