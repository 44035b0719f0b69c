package attack

import (
	"fmt"
	"strings"

	"github.com/zeusync/tickbrain/internal/core/behavior"
)

// TypeKind names the attacks the player can start.
type TypeKind int

const (
	Slash TypeKind = iota
	RunningSlash
	AirSlash
	Plunge
)

func (k TypeKind) String() string {
	switch k {
	case Slash:
		return "slash"
	case RunningSlash:
		return "running_slash"
	case AirSlash:
		return "air_slash"
	case Plunge:
		return "plunge"
	default:
		return fmt.Sprintf("TypeKind(%d)", int(k))
	}
}

// Type is an attack request. Speed is only read by RunningSlash.
type Type struct {
	Kind  TypeKind `yaml:"kind"`
	Speed float64  `yaml:"speed,omitempty"`
}

// ParseType accepts the names produced by TypeKind.String.
func ParseType(name string, speed float64) (Type, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "slash":
		return Type{Kind: Slash}, nil
	case "running_slash":
		return Type{Kind: RunningSlash, Speed: speed}, nil
	case "air_slash":
		return Type{Kind: AirSlash}, nil
	case "plunge":
		return Type{Kind: Plunge}, nil
	default:
		return Type{}, fmt.Errorf("%w: %q", ErrUnknownType, name)
	}
}

func (t Type) String() string { return t.Kind.String() }

// Definition returns the script for this attack. Each attack compiles its
// own instance and throws it away when the script ends.
func (t Type) Definition() behavior.Definition[*Impulses] {
	switch t.Kind {
	case Slash:
		return behavior.Seq(
			Velocity(0, 0),
			GoIntangible(),
			SetDamage(1),
			PlayAnimation("Slash"),
			WaitForAnimation("Slash"),
		)
	case RunningSlash:
		return behavior.Seq(
			Velocity(t.Speed, 0),
			GoIntangible(),
			SetDamage(1),
			PlayAnimation("RunningSlash"),
			WaitForAnimation("RunningSlash"),
		)
	case AirSlash:
		return behavior.Seq(
			GoIntangible(),
			SetDamage(1),
			SetFrame(0, 0.1),
			WaitForFrame(),
			PlayAnimation("AirSlash"),
			WaitForAnimation("AirSlash"),
		)
	case Plunge:
		return behavior.Seq(
			Velocity(0, -30),
			GoIntangible(),
			SetDamage(2),
			PlayAnimation("Plunge"),
			WaitForAnimation("Plunge"),
			WaitForGround(),
			ClearVelocity(),
		)
	default:
		return behavior.Seq[*Impulses]()
	}
}

// Loader builds attack scripts from specs.
func Loader() behavior.Loader[*Impulses] {
	return behavior.Loader[*Impulses]{ParseLeaf: ParseLeaf}
}

// ParseLeaf maps a spec leaf onto the attack vocabulary. Attack leaves have
// no children.
func ParseLeaf(kind string, p behavior.Params, _ *behavior.Definition[*Impulses]) (behavior.LeafDef[*Impulses], error) {
	var (
		l   Leaf
		err error
	)
	switch kind {
	case "set_damage":
		l.Kind = KindSetDamage
		l.Damage, err = p.Int("damage")
	case "velocity":
		l.Kind = KindVelocity
		if l.Velocity.X, err = p.Float("x"); err == nil {
			l.Velocity.Y, err = p.Float("y")
		}
	case "clear_velocity":
		l.Kind = KindClearVelocity
	case "play_animation":
		l.Kind = KindPlayAnimation
		l.Animation, err = p.String("name")
	case "wait_for_animation":
		l.Kind = KindWaitForAnimation
		l.Animation, err = p.String("name")
	case "set_frame":
		l.Kind = KindSetFrame
		if l.Frame, err = p.Int("frame"); err == nil {
			l.Hold, err = p.Float("hold")
		}
	case "wait_for_frame":
		l.Kind = KindWaitForFrame
	case "wait_for_ground":
		l.Kind = KindWaitForGround
	case "on_the_ground":
		l.Kind = KindOnTheGround
	case "wait_for_hit":
		l.Kind = KindWaitForHit
	case "go_intangible":
		l.Kind = KindGoIntangible
	default:
		return nil, fmt.Errorf("%w: attack %q", behavior.ErrUnknownLeaf, kind)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", kind, err)
	}
	if err = l.validate(); err != nil {
		return nil, err
	}
	return l, nil
}
