package arena

import "github.com/zeusync/tickbrain/internal/core/geom"

// Body is a point mass on a flat ground line. Y points up.
type Body struct {
	Position    geom.Vec2
	Velocity    geom.Vec2
	OnTheGround bool
}

// step integrates one frame. Gravity only pulls airborne bodies.
func (b *Body) step(dt, gravity, ground float64) {
	if !b.OnTheGround {
		b.Velocity.Y -= gravity * dt
	}
	b.Position = b.Position.Add(b.Velocity.Scale(dt))
	if b.Position.Y <= ground && b.Velocity.Y <= 0 {
		b.Position.Y = ground
		b.Velocity.Y = 0
		b.OnTheGround = true
		return
	}
	b.OnTheGround = false
}

func (b *Body) launch(v geom.Vec2) {
	b.Velocity = v
	if v.Y > 0 {
		b.OnTheGround = false
	}
}

const defaultClipLength = 0.5

// clip plays one named animation. Completion is read at sense time and
// remembered so the world can fall back to idle only after the brains saw it.
type clip struct {
	name   string
	time   float64
	length float64
	frame  *int
	seen   bool
}

func (c *clip) play(name string, lengths map[string]float64) {
	length, ok := lengths[name]
	if !ok {
		length = defaultClipLength
	}
	*c = clip{name: name, length: length}
}

func (c *clip) complete() bool { return c.time >= c.length }

func (c *clip) advance(dt float64) { c.time += dt }
