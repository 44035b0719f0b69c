package attack

import (
	"fmt"
	"math"
	"strings"

	"github.com/zeusync/tickbrain/internal/core/behavior"
	"github.com/zeusync/tickbrain/internal/core/geom"
)

// LeafKind enumerates the attack-script vocabulary.
type LeafKind int

const (
	KindSetDamage LeafKind = iota
	KindVelocity
	KindClearVelocity
	KindPlayAnimation
	KindSetFrame
	KindWaitForFrame
	KindWaitForAnimation
	KindWaitForGround
	KindOnTheGround
	KindWaitForHit
	KindGoIntangible
)

var kindNames = [...]string{
	KindSetDamage:        "set_damage",
	KindVelocity:         "velocity",
	KindClearVelocity:    "clear_velocity",
	KindPlayAnimation:    "play_animation",
	KindSetFrame:         "set_frame",
	KindWaitForFrame:     "wait_for_frame",
	KindWaitForAnimation: "wait_for_animation",
	KindWaitForGround:    "wait_for_ground",
	KindOnTheGround:      "on_the_ground",
	KindWaitForHit:       "wait_for_hit",
	KindGoIntangible:     "go_intangible",
}

func (k LeafKind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("LeafKind(%d)", int(k))
}

// Leaf is an attack-script step. Every attack leaf is stateless, so the
// compiled node is a copy of the leaf itself.
type Leaf struct {
	Kind      LeafKind
	Damage    int
	Velocity  geom.Vec2
	Animation string
	Frame     int
	Hold      float64
}

func SetDamage(damage int) behavior.Definition[*Impulses] {
	return def(Leaf{Kind: KindSetDamage, Damage: damage})
}

func Velocity(x, y float64) behavior.Definition[*Impulses] {
	return def(Leaf{Kind: KindVelocity, Velocity: geom.V(x, y)})
}

func ClearVelocity() behavior.Definition[*Impulses] { return def(Leaf{Kind: KindClearVelocity}) }

func PlayAnimation(name string) behavior.Definition[*Impulses] {
	return def(Leaf{Kind: KindPlayAnimation, Animation: name})
}

// SetFrame pins the sprite to frame for hold seconds; pair with WaitForFrame.
func SetFrame(frame int, hold float64) behavior.Definition[*Impulses] {
	return def(Leaf{Kind: KindSetFrame, Frame: frame, Hold: hold})
}

func WaitForFrame() behavior.Definition[*Impulses] { return def(Leaf{Kind: KindWaitForFrame}) }

// WaitForAnimation waits until the requested animation has started and run
// to completion. It fails if nothing requested it.
func WaitForAnimation(name string) behavior.Definition[*Impulses] {
	return def(Leaf{Kind: KindWaitForAnimation, Animation: name})
}

func WaitForGround() behavior.Definition[*Impulses] { return def(Leaf{Kind: KindWaitForGround}) }
func OnTheGround() behavior.Definition[*Impulses]   { return def(Leaf{Kind: KindOnTheGround}) }
func WaitForHit() behavior.Definition[*Impulses]    { return def(Leaf{Kind: KindWaitForHit}) }
func GoIntangible() behavior.Definition[*Impulses]  { return def(Leaf{Kind: KindGoIntangible}) }

func def(l Leaf) behavior.Definition[*Impulses] { return behavior.Leaf[*Impulses](l) }

func (l Leaf) Compile() (behavior.Node[*Impulses], error) {
	if err := l.validate(); err != nil {
		return nil, err
	}
	return l, nil
}

func (l Leaf) validate() error {
	switch l.Kind {
	case KindClearVelocity, KindWaitForFrame, KindWaitForGround, KindOnTheGround, KindWaitForHit, KindGoIntangible:
		return nil
	case KindSetDamage:
		if l.Damage < 0 {
			return fmt.Errorf("%w: negative damage %d", ErrInvalidParam, l.Damage)
		}
	case KindVelocity:
		if !finite(l.Velocity.X) || !finite(l.Velocity.Y) {
			return fmt.Errorf("%w: velocity %v", ErrInvalidParam, l.Velocity)
		}
	case KindPlayAnimation, KindWaitForAnimation:
		if strings.TrimSpace(l.Animation) == "" {
			return fmt.Errorf("%w: %s needs an animation name", ErrInvalidParam, l.Kind)
		}
	case KindSetFrame:
		if l.Frame < 0 || !finite(l.Hold) || l.Hold < 0 {
			return fmt.Errorf("%w: set_frame %d for %v", ErrInvalidParam, l.Frame, l.Hold)
		}
	default:
		return fmt.Errorf("%w: %s", behavior.ErrUnknownLeaf, l.Kind)
	}
	return nil
}

func finite(f float64) bool { return !math.IsNaN(f) && !math.IsInf(f, 0) }

func (l Leaf) Resume(budget int, a *Impulses) behavior.Outcome {
	switch l.Kind {
	case KindSetDamage:
		a.Damage = l.Damage
	case KindVelocity:
		v := l.Velocity
		a.SetSpeed = &v
	case KindClearVelocity:
		a.SetSpeed = nil
	case KindSetFrame:
		frame := l.Frame
		a.AnimationFrame = &frame
		a.AnimationTime = l.Hold
	case KindPlayAnimation:
		a.PlayAnimation = l.Animation
	case KindGoIntangible:
		a.Intangible = true
	case KindWaitForFrame:
		return until(budget, a.AnimationTime <= 0)
	case KindWaitForGround:
		return until(budget, a.OnTheGround)
	case KindWaitForHit:
		return until(budget, len(a.HitMinions) > 0)
	case KindOnTheGround:
		if a.OnTheGround {
			return behavior.Complete(budget)
		}
		return behavior.Failed(budget)
	case KindWaitForAnimation:
		if a.Animation == l.Animation {
			a.PlayAnimation = ""
			return until(budget, a.AnimationComplete)
		}
		if a.PlayAnimation == "" {
			return behavior.Failed(budget)
		}
		return behavior.Waiting(budget)
	default:
		return behavior.Failed(budget)
	}
	return behavior.Complete(budget)
}

func (l Leaf) Reset(*Impulses) {}

func until(budget int, done bool) behavior.Outcome {
	if done {
		return behavior.Complete(budget)
	}
	return behavior.Waiting(budget)
}
