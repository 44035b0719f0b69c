package brain

import (
	"fmt"
	"sync"

	"github.com/zeusync/tickbrain/internal/core/behavior"
	"github.com/zeusync/tickbrain/internal/core/observability/log"
)

// Teardown runs once when a script reaches Complete or Failed, or is
// cancelled. It is called without the Scripts lock held, so it may start the
// next script for the same key.
type Teardown[K comparable, C any] func(key K, ctx C, out behavior.Outcome)

type script[C any] struct {
	tree *behavior.Tree[C]
	ctx  C
}

// Scripts runs at most one disposable script per key. A script owns its
// context for its whole life and both are discarded when it ends.
type Scripts[K comparable, C any] struct {
	mu       sync.Mutex
	running  map[K]*script[C]
	budget   int
	teardown Teardown[K, C]
	logger   log.Log
}

func NewScripts[K comparable, C any](budget int, teardown Teardown[K, C], logger log.Log) (*Scripts[K, C], error) {
	if budget <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidBudget, budget)
	}
	if logger == nil {
		logger = log.NewNop()
	}
	return &Scripts[K, C]{
		running:  make(map[K]*script[C]),
		budget:   budget,
		teardown: teardown,
		logger:   logger.Named("scripts"),
	}, nil
}

// Start compiles a fresh instance of def for key.
func (s *Scripts[K, C]) Start(key K, name string, def behavior.Definition[C], ctx C) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.running[key]; exists {
		return fmt.Errorf("%w: %v", ErrScriptRunning, key)
	}
	tree, err := behavior.NewTree(name, def, s.logger)
	if err != nil {
		return fmt.Errorf("script %s: %w", name, err)
	}
	s.running[key] = &script[C]{tree: tree, ctx: ctx}
	s.logger.Debug("script started", log.String("script", name), log.Any("key", key))
	return nil
}

// Tick resumes the script for key. ok is false when nothing is running.
// A terminal outcome removes the script before teardown runs.
func (s *Scripts[K, C]) Tick(key K) (out behavior.Outcome, ok bool) {
	s.mu.Lock()
	sc, exists := s.running[key]
	if !exists {
		s.mu.Unlock()
		return behavior.Outcome{}, false
	}
	out = sc.tree.Resume(s.budget, sc.ctx)
	if out.Terminal() {
		delete(s.running, key)
	}
	s.mu.Unlock()

	if out.Terminal() {
		s.finish(key, sc, out)
	}
	return out, true
}

// Cancel ends the script for key early. Teardown sees a Failed outcome.
func (s *Scripts[K, C]) Cancel(key K) bool {
	s.mu.Lock()
	sc, exists := s.running[key]
	delete(s.running, key)
	s.mu.Unlock()

	if !exists {
		return false
	}
	s.finish(key, sc, behavior.Failed(s.budget))
	return true
}

func (s *Scripts[K, C]) finish(key K, sc *script[C], out behavior.Outcome) {
	s.logger.Debug("script ended",
		log.String("script", sc.tree.Name()),
		log.Any("key", key),
		log.Stringer("outcome", out.State))
	if s.teardown != nil {
		s.teardown(key, sc.ctx, out)
	}
}

func (s *Scripts[K, C]) Running(key K) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, exists := s.running[key]
	return exists
}

// Context returns the context owned by the script for key.
func (s *Scripts[K, C]) Context(key K) (C, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sc, exists := s.running[key]
	if !exists {
		var zero C
		return zero, false
	}
	return sc.ctx, true
}

func (s *Scripts[K, C]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.running)
}
