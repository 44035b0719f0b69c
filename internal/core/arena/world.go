package arena

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/zeusync/tickbrain/internal/config"
	"github.com/zeusync/tickbrain/internal/core/attack"
	"github.com/zeusync/tickbrain/internal/core/behavior"
	"github.com/zeusync/tickbrain/internal/core/brain"
	"github.com/zeusync/tickbrain/internal/core/events/bus"
	"github.com/zeusync/tickbrain/internal/core/geom"
	"github.com/zeusync/tickbrain/internal/core/minion"
	"github.com/zeusync/tickbrain/internal/core/observability/log"
	"github.com/zeusync/tickbrain/pkg/concurrent"
)

const playerHP = 10

// World is a deterministic toy side-on arena. Every Step runs sense, think
// and act for all actors in that order. A World is not safe for concurrent
// use; Run owns it.
type World struct {
	logger  log.Log
	tick    uint64
	dt      float64
	gravity float64
	ground  float64
	workers int
	clips   map[string]float64

	player      *Player
	minions     []*Minion
	projectiles []*projectile

	events   bus.EventBus
	attacks  *brain.Scripts[uuid.UUID, *attack.Impulses]
	attackID uint32
	requests []config.AttackConfig
}

func New(cfg *config.Config, logger log.Log) (*World, error) {
	if logger == nil {
		logger = log.NewNop()
	}
	catalog, err := NewCatalog(cfg.Archetypes)
	if err != nil {
		return nil, err
	}

	w := &World{
		logger:  logger.Named("arena"),
		dt:      cfg.FrameTime(),
		gravity: cfg.Arena.Gravity,
		ground:  cfg.Arena.GroundY,
		workers: cfg.Workers,
		clips:   cfg.Arena.Clips,
		events:  bus.New(),
		player: &Player{
			ID:    uuid.New(),
			Body:  Body{Position: cfg.Arena.Player.Position},
			HP:    playerHP,
			Reach: cfg.Arena.Player.Reach,
		},
	}
	w.player.OnTheGround = w.player.Position.Y <= w.ground
	w.player.anim.play(minion.AnimIdle, w.clips)

	w.attacks, err = brain.NewScripts[uuid.UUID, *attack.Impulses](cfg.Budget, w.attackEnded, w.logger)
	if err != nil {
		return nil, err
	}

	w.requests = append(w.requests, cfg.Arena.Player.Attacks...)
	sort.SliceStable(w.requests, func(i, j int) bool { return w.requests[i].Tick < w.requests[j].Tick })

	for i, mc := range cfg.Arena.Minions {
		if _, err = w.Spawn(catalog, mc, cfg.Budget); err != nil {
			return nil, fmt.Errorf("minion %d: %w", i, err)
		}
	}
	if catalog.Shared() > 0 {
		w.logger.Info("archetypes share definitions", log.Int("shared", catalog.Shared()))
	}
	return w, nil
}

// Spawn adds a minion with a freshly compiled brain.
func (w *World) Spawn(catalog *Catalog, mc config.MinionConfig, budget int) (*Minion, error) {
	def, err := catalog.Definition(mc.Archetype)
	if err != nil {
		return nil, err
	}
	hp := mc.Health
	if hp == 0 {
		hp = 3
	}
	m := &Minion{
		ID:        uuid.New(),
		Archetype: mc.Archetype,
		Body:      Body{Position: mc.Position},
		HP:        hp,
		MaxHP:     hp,
		Sight:     mc.Sight,
		thoughts:  &minion.Thoughts{},
	}
	m.OnTheGround = m.Position.Y <= w.ground
	m.anim.play(minion.AnimIdle, w.clips)
	m.brain, err = brain.NewPerpetual(mc.Archetype+"/"+m.ID.String()[:8], def, budget, w.logger)
	if err != nil {
		return nil, err
	}
	w.minions = append(w.minions, m)
	w.logger.Debug("minion spawned", log.String("id", m.ID.String()), log.String("archetype", mc.Archetype))
	return m, nil
}

func (w *World) Tick() uint64       { return w.tick }
func (w *World) Player() *Player    { return w.player }
func (w *World) Minions() []*Minion { return w.minions }

// Events is the bus the world publishes hits, deaths and attack lifecycle
// changes on. Handlers run inside Step.
func (w *World) Events() bus.EventBus { return w.events }

func (w *World) publish(typ string, actor uuid.UUID, data map[string]any) {
	if err := w.events.Publish(bus.Event{Type: typ, Tick: w.tick, Actor: actor, Data: data}); err != nil {
		w.logger.Warn("event handler failed", log.String("event", typ), log.Error(err))
	}
}

// RequestAttack starts an attack script for the player. It fails while
// another attack is still in flight.
func (w *World) RequestAttack(t attack.Type) error {
	if w.player.Down() {
		return ErrPlayerDown
	}
	w.attackID++
	imp := attack.NewImpulses(w.attackID)
	if err := w.attacks.Start(w.player.ID, t.String(), t.Definition(), imp); err != nil {
		return err
	}
	w.player.state = Attacking
	w.player.attack = imp
	w.player.kind = t
	w.logger.Debug("attack started", log.Stringer("attack", t), log.Int("attack_id", int(imp.AttackID)))
	w.publish(bus.AttackStarted, w.player.ID, map[string]any{"attack": t.String(), "attack_id": imp.AttackID})
	return nil
}

func (w *World) attackEnded(_ uuid.UUID, imp *attack.Impulses, out behavior.Outcome) {
	w.player.state = Controlled
	w.player.attack = nil
	w.player.anim.frame = nil
	w.logger.Info("attack finished",
		log.Stringer("attack", w.player.kind),
		log.Stringer("outcome", out.State),
		log.Int("hits", len(imp.HitMinions)))
	w.publish(bus.AttackFinished, w.player.ID, map[string]any{
		"attack":    w.player.kind.String(),
		"attack_id": imp.AttackID,
		"outcome":   out.State.String(),
		"hits":      len(imp.HitMinions),
	})
}

// Step advances the world by one tick and returns what it looks like after.
func (w *World) Step() Snapshot {
	w.tick++
	w.fireRequests()
	w.sense()
	w.think()
	w.act()
	return w.Snapshot()
}

func (w *World) fireRequests() {
	for len(w.requests) > 0 && uint64(w.requests[0].Tick) <= w.tick {
		req := w.requests[0]
		w.requests = w.requests[1:]
		t, err := attack.ParseType(req.Type, req.Speed)
		if err == nil {
			err = w.RequestAttack(t)
		}
		if err != nil {
			w.logger.Warn("attack request dropped", log.Int("tick", req.Tick), log.Error(err))
		}
	}
}

func (w *World) sense() {
	for _, m := range w.minions {
		if !m.Dead() {
			m.sense(w.player, w.dt)
		}
	}
	p := w.player
	p.anim.seen = p.anim.complete()
	if p.attack != nil {
		p.attack.Refresh(attack.Sense{
			Speed:             p.Velocity,
			OnTheGround:       p.OnTheGround,
			Animation:         p.anim.name,
			AnimationComplete: p.anim.seen,
			FrameTime:         w.dt,
		})
	}
}

// think resumes every brain. Minion brains only touch their own thoughts so
// they may run in parallel.
func (w *World) think() {
	alive := concurrent.Filter(w.minions, func(m *Minion) bool { return !m.Dead() })
	concurrent.Each(alive, w.workers, func(m *Minion) {
		m.brain.Tick(m.thoughts)
	})
	w.attacks.Tick(w.player.ID)
}

func (w *World) act() {
	for _, m := range w.minions {
		if !m.Dead() {
			w.actMinion(m)
		}
	}
	w.actPlayer()
	w.moveProjectiles()
}

func (w *World) actMinion(m *Minion) {
	th := m.thoughts
	played := false
	if m.stun > 0 {
		m.stun -= w.dt
		th.LungeTowards = nil
		th.ShootAt = nil
	} else {
		if th.LungeTowards != nil && m.anim.name != minion.AnimLunge && m.OnTheGround {
			l := th.LungeTowards
			m.anim.play(minion.AnimLunge, w.clips)
			m.launch(geom.V(math.Copysign(l.Speed, l.Direction.X), l.Rise))
			m.struck = false
			played = true
		}
		if th.ShootAt != nil {
			w.projectiles = append(w.projectiles, &projectile{
				Position: m.Position,
				Velocity: th.ShootAt.Normalize().Scale(projectileSpeed),
				ttl:      projectileTTL,
			})
			th.ShootAt = nil
		}
		if th.Idling && m.anim.name != minion.AnimIdle {
			m.anim.play(minion.AnimIdle, w.clips)
			played = true
		}
	}
	if !played && m.anim.seen {
		m.anim.play(minion.AnimIdle, w.clips)
	}

	m.step(w.dt, w.gravity, w.ground)
	if m.OnTheGround && m.stun <= 0 {
		m.Velocity.X = 0
	}

	if m.anim.name == minion.AnimLunge && !m.struck &&
		m.Position.Sub(w.player.Position).Length() < contactRadius && w.player.hurt(1) {
		m.struck = true
		w.logger.Debug("player struck", log.String("minion", m.ID.String()), log.Int("hp", w.player.HP))
		w.publish(bus.PlayerHurt, w.player.ID, map[string]any{"by": m.ID.String(), "hp": w.player.HP})
	}
	m.anim.advance(w.dt)
}

func (w *World) actPlayer() {
	p := w.player
	played := false
	gravity := w.gravity
	if imp := p.attack; imp != nil {
		if imp.PlayAnimation != "" && imp.PlayAnimation != p.anim.name {
			p.anim.play(imp.PlayAnimation, w.clips)
			played = true
		}
		if imp.AnimationFrame != nil {
			frame := *imp.AnimationFrame
			p.anim.frame = &frame
			imp.AnimationFrame = nil
		}
		if imp.SetSpeed != nil {
			p.Velocity = *imp.SetSpeed
			gravity = 0
		}
	}
	if !played && p.anim.seen {
		p.anim.play(minion.AnimIdle, w.clips)
	}

	p.step(w.dt, gravity, w.ground)
	if p.attack == nil && p.OnTheGround {
		p.Velocity.X = 0
	}

	if imp := p.attack; imp != nil && imp.Damage > 0 && p.anim.name != minion.AnimIdle && !p.anim.complete() {
		for _, m := range w.minions {
			if m.Dead() || m.Position.Sub(p.Position).Length() > p.Reach {
				continue
			}
			if imp.RecordHit(m.ID) {
				m.hit(imp.Damage, p.Position)
				w.logger.Debug("minion hit",
					log.String("minion", m.ID.String()),
					log.Int("damage", imp.Damage),
					log.Int("hp", m.HP))
				w.publish(bus.MinionHit, m.ID, map[string]any{"damage": imp.Damage, "hp": m.HP})
				if m.Dead() {
					w.publish(bus.MinionDied, m.ID, map[string]any{"archetype": m.Archetype})
				}
			}
		}
	}
	p.anim.advance(w.dt)
}

func (w *World) moveProjectiles() {
	kept := w.projectiles[:0]
	for _, pr := range w.projectiles {
		pr.Position = pr.Position.Add(pr.Velocity.Scale(w.dt))
		pr.ttl -= w.dt
		if pr.Position.Sub(w.player.Position).Length() < projectileHit && w.player.hurt(1) {
			w.publish(bus.PlayerHurt, w.player.ID, map[string]any{"by": "projectile", "hp": w.player.HP})
			continue
		}
		if pr.ttl > 0 && pr.Position.Y >= w.ground {
			kept = append(kept, pr)
		}
	}
	for i := len(kept); i < len(w.projectiles); i++ {
		w.projectiles[i] = nil
	}
	w.projectiles = kept
}

// Run steps the world every interval and hands each snapshot to publish.
// It stops after ticks steps when ticks is positive, or when ctx ends.
func (w *World) Run(ctx context.Context, interval time.Duration, ticks int, publish func(Snapshot)) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	w.logger.Info("arena running",
		log.Duration("interval", interval),
		log.Int("minions", len(w.minions)),
		log.Int("ticks", ticks))
	for {
		select {
		case <-ctx.Done():
			if errors.Is(ctx.Err(), context.Canceled) {
				return nil
			}
			return ctx.Err()
		case <-ticker.C:
			snap := w.Step()
			if publish != nil {
				publish(snap)
			}
			if ticks > 0 && w.tick >= uint64(ticks) {
				w.logger.Info("arena finished", log.Int("ticks", ticks), log.Int("player_hp", w.player.HP))
				return nil
			}
		}
	}
}
