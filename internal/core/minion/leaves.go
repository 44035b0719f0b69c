package minion

import (
	"fmt"
	"math"

	"github.com/zeusync/tickbrain/internal/core/behavior"
)

// LeafKind enumerates the minion vocabulary.
type LeafKind int

const (
	KindOnTheGround LeafKind = iota
	KindIsTimid
	KindWaitForGround
	KindPlayerVisible
	KindPlayerInRange
	KindLungeAtPlayer
	KindLungeAway
	KindShootAtPlayer
	KindIdle
	KindResetOnHit
)

var kindNames = map[LeafKind]string{
	KindOnTheGround:   "on_the_ground",
	KindIsTimid:       "is_timid",
	KindWaitForGround: "wait_for_ground",
	KindPlayerVisible: "player_visible",
	KindPlayerInRange: "player_in_range",
	KindLungeAtPlayer: "lunge_at_player",
	KindLungeAway:     "lunge_away",
	KindShootAtPlayer: "shoot_at_player",
	KindIdle:          "idle",
	KindResetOnHit:    "reset_on_hit",
}

func (k LeafKind) String() string {
	if n, ok := kindNames[k]; ok {
		return n
	}
	return fmt.Sprintf("LeafKind(%d)", int(k))
}

// Leaf is a minion leaf kind with its parameters. Which fields matter
// depends on Kind: A/B are the range half-extents or the lunge speed/rise.
type Leaf struct {
	Kind      LeafKind
	A, B      float64
	Duration  float64
	Threshold float64
	Child     *behavior.Definition[*Thoughts]
}

func OnTheGround() behavior.Definition[*Thoughts] { return def(Leaf{Kind: KindOnTheGround}) }

// IsTimid completes while health is below threshold, a ratio in [0,1].
func IsTimid(threshold float64) behavior.Definition[*Thoughts] {
	return def(Leaf{Kind: KindIsTimid, Threshold: threshold})
}

func WaitForGround() behavior.Definition[*Thoughts] { return def(Leaf{Kind: KindWaitForGround}) }
func PlayerVisible() behavior.Definition[*Thoughts] { return def(Leaf{Kind: KindPlayerVisible}) }

// PlayerInRange completes when the player is inside the box of half extents
// (dx, dy) centred on the minion.
func PlayerInRange(dx, dy float64) behavior.Definition[*Thoughts] {
	return def(Leaf{Kind: KindPlayerInRange, A: dx, B: dy})
}

func LungeAtPlayer(speed, rise float64) behavior.Definition[*Thoughts] {
	return def(Leaf{Kind: KindLungeAtPlayer, A: speed, B: rise})
}

// LungeAway jumps horizontally away from the player.
func LungeAway(speed, rise float64) behavior.Definition[*Thoughts] {
	return def(Leaf{Kind: KindLungeAway, A: speed, B: rise})
}

func ShootAtPlayer() behavior.Definition[*Thoughts] { return def(Leaf{Kind: KindShootAtPlayer}) }

// Idle holds for duration seconds of accumulated frame time.
func Idle(duration float64) behavior.Definition[*Thoughts] {
	return def(Leaf{Kind: KindIdle, Duration: duration})
}

// ResetOnHit abandons child and completes on any tick the minion is in hit stun.
func ResetOnHit(child behavior.Definition[*Thoughts]) behavior.Definition[*Thoughts] {
	return def(Leaf{Kind: KindResetOnHit, Child: &child})
}

func def(l Leaf) behavior.Definition[*Thoughts] { return behavior.Leaf[*Thoughts](l) }

func (l Leaf) Compile() (behavior.Node[*Thoughts], error) {
	if err := l.validate(); err != nil {
		return nil, err
	}
	if l.Kind == KindResetOnHit {
		child, err := l.Child.Compile()
		if err != nil {
			return nil, fmt.Errorf("reset_on_hit: %w", err)
		}
		return behavior.NewResetOn(inHitStun, child), nil
	}
	return &node{leaf: l}, nil
}

func (l Leaf) validate() error {
	switch l.Kind {
	case KindOnTheGround, KindWaitForGround, KindPlayerVisible, KindShootAtPlayer:
		return nil
	case KindIsTimid:
		if !(l.Threshold >= 0 && l.Threshold <= 1) {
			return fmt.Errorf("%w: is_timid threshold %v outside [0,1]", ErrInvalidParam, l.Threshold)
		}
	case KindPlayerInRange:
		if !nonNegative(l.A) || !nonNegative(l.B) {
			return fmt.Errorf("%w: player_in_range extents (%v, %v)", ErrInvalidParam, l.A, l.B)
		}
	case KindLungeAtPlayer, KindLungeAway:
		if !nonNegative(l.A) || math.IsNaN(l.B) || math.IsInf(l.B, 0) {
			return fmt.Errorf("%w: %s speed %v rise %v", ErrInvalidParam, l.Kind, l.A, l.B)
		}
	case KindIdle:
		if !nonNegative(l.Duration) {
			return fmt.Errorf("%w: idle duration %v", ErrInvalidParam, l.Duration)
		}
	case KindResetOnHit:
		if l.Child == nil {
			return fmt.Errorf("%w: reset_on_hit without child", ErrInvalidParam)
		}
	default:
		return fmt.Errorf("%w: %s", behavior.ErrUnknownLeaf, l.Kind)
	}
	return nil
}

func nonNegative(f float64) bool { return f >= 0 && !math.IsInf(f, 1) }

func inHitStun(t *Thoughts) bool { return t.HitStun }

// node is the live form of every minion leaf except ResetOnHit. Only Idle
// carries progress.
type node struct {
	leaf     Leaf
	progress float64
}

func (n *node) Resume(budget int, t *Thoughts) behavior.Outcome {
	switch n.leaf.Kind {
	case KindOnTheGround:
		return check(budget, t.OnTheGround)
	case KindIsTimid:
		return check(budget, t.Health < n.leaf.Threshold)
	case KindWaitForGround:
		if t.OnTheGround {
			return behavior.Complete(budget)
		}
		return behavior.Waiting(budget)
	case KindPlayerVisible:
		return check(budget, t.PlayerAt != nil)
	case KindPlayerInRange:
		dir, ok := t.PlayerDirection()
		return check(budget, ok && math.Abs(dir.X) <= n.leaf.A && math.Abs(dir.Y) <= n.leaf.B)
	case KindLungeAtPlayer, KindLungeAway:
		return n.lunge(budget, t)
	case KindShootAtPlayer:
		dir, ok := t.PlayerDirection()
		if !ok {
			return behavior.Failed(budget)
		}
		t.ShootAt = &dir
		return behavior.Complete(budget)
	case KindIdle:
		n.progress += t.FrameTime
		if n.progress < n.leaf.Duration {
			t.Idling = true
			return behavior.Waiting(budget)
		}
		n.progress = 0
		return behavior.Complete(budget)
	default:
		return behavior.Failed(budget)
	}
}

// lunge requests the impulse while grounded, then waits for the world to play
// the lunge animation through. Leaving the ground before the animation starts
// aborts the windup.
func (n *node) lunge(budget int, t *Thoughts) behavior.Outcome {
	if t.Animation == AnimLunge {
		if t.AnimationComplete {
			t.LungeTowards = nil
			return behavior.Complete(budget)
		}
		return behavior.Waiting(budget)
	}
	if !t.OnTheGround {
		t.LungeTowards = nil
		return behavior.Failed(budget)
	}
	dir, ok := t.PlayerDirection()
	if !ok {
		t.LungeTowards = nil
		return behavior.Failed(budget)
	}
	if n.leaf.Kind == KindLungeAway {
		dir.X, dir.Y = -dir.X, 0
	}
	t.LungeTowards = &Lunge{Direction: dir, Speed: n.leaf.A, Rise: n.leaf.B}
	return behavior.Waiting(budget)
}

func (n *node) Reset(*Thoughts) { n.progress = 0 }

func check(budget int, ok bool) behavior.Outcome {
	if ok {
		return behavior.Complete(budget)
	}
	return behavior.Failed(budget)
}
