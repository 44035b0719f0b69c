package behavior

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/cespare/xxhash/v2"
	"gopkg.in/yaml.v3"
)

// Spec describes a Definition in YAML or JSON.
//
//	type: sequence
//	children:
//	  - {type: leaf, leaf: on_the_ground}
//	  - {type: leaf, leaf: idle, params: {duration: 1.0}}
type Spec struct {
	Type     string `json:"type" yaml:"type"`
	Leaf     string `json:"leaf,omitempty" yaml:"leaf,omitempty"`
	Signal   string `json:"signal,omitempty" yaml:"signal,omitempty"`
	Params   Params `json:"params,omitempty" yaml:"params,omitempty"`
	Children []Spec `json:"children,omitempty" yaml:"children,omitempty"`
	Child    *Spec  `json:"child,omitempty" yaml:"child,omitempty"`
}

// LoadJSON loads a spec from a JSON reader.
func LoadJSON(r io.Reader) (Spec, error) {
	var s Spec
	if err := json.NewDecoder(r).Decode(&s); err != nil {
		return Spec{}, err
	}
	return s, nil
}

// LoadYAML loads a spec from a YAML reader.
func LoadYAML(r io.Reader) (Spec, error) {
	var s Spec
	if err := yaml.NewDecoder(r).Decode(&s); err != nil {
		return Spec{}, err
	}
	return s, nil
}

// Fingerprint hashes the canonical YAML form of a spec. Equal specs hash
// equally regardless of the key order they were written in.
func Fingerprint(s Spec) (uint64, error) {
	b, err := yaml.Marshal(s)
	if err != nil {
		return 0, err
	}
	return xxhash.Sum64(b), nil
}

// LeafParser maps a leaf kind and its params onto a domain LeafDef. child is
// non-nil when the spec carried a nested child for wrapper leaves.
type LeafParser[C any] func(kind string, params Params, child *Definition[C]) (LeafDef[C], error)

// Loader turns specs into definitions for one context type.
type Loader[C any] struct {
	ParseLeaf LeafParser[C]
	// Signals names the predicates usable by "reset" specs.
	Signals map[string]func(ctx C) bool
}

func (l Loader[C]) Build(s Spec) (Definition[C], error) {
	switch strings.ToLower(s.Type) {
	case "sequence":
		children, err := l.buildAll(s.Children)
		if err != nil {
			return Definition[C]{}, fmt.Errorf("sequence: %w", err)
		}
		return Seq(children...), nil
	case "selector":
		children, err := l.buildAll(s.Children)
		if err != nil {
			return Definition[C]{}, fmt.Errorf("selector: %w", err)
		}
		return Sel(children...), nil
	case "reset":
		signal, ok := l.Signals[s.Signal]
		if !ok {
			return Definition[C]{}, fmt.Errorf("%w: reset signal %q", ErrInvalidDefinition, s.Signal)
		}
		if s.Child == nil {
			return Definition[C]{}, fmt.Errorf("%w: reset requires child", ErrInvalidDefinition)
		}
		child, err := l.Build(*s.Child)
		if err != nil {
			return Definition[C]{}, fmt.Errorf("reset: %w", err)
		}
		return ResetWhen(signal, child), nil
	case "leaf", "":
		if l.ParseLeaf == nil {
			return Definition[C]{}, fmt.Errorf("%w: %s", ErrUnknownLeaf, s.Leaf)
		}
		var child *Definition[C]
		if s.Child != nil {
			c, err := l.Build(*s.Child)
			if err != nil {
				return Definition[C]{}, fmt.Errorf("%s: %w", s.Leaf, err)
			}
			child = &c
		}
		def, err := l.ParseLeaf(s.Leaf, s.Params, child)
		if err != nil {
			return Definition[C]{}, err
		}
		return Leaf(def), nil
	default:
		return Definition[C]{}, fmt.Errorf("%w: %s", ErrUnknownNode, s.Type)
	}
}

func (l Loader[C]) buildAll(specs []Spec) ([]Definition[C], error) {
	defs := make([]Definition[C], 0, len(specs))
	for i, s := range specs {
		d, err := l.Build(s)
		if err != nil {
			return nil, fmt.Errorf("child %d: %w", i, err)
		}
		defs = append(defs, d)
	}
	return defs, nil
}

// Params carries leaf parameters decoded from config.
type Params map[string]any

// Float reads a numeric param. YAML and JSON decode numbers differently so
// every numeric kind is accepted.
func (p Params) Float(key string) (float64, error) {
	v, ok := p[key]
	if !ok {
		return 0, fmt.Errorf("missing param %q", key)
	}
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	default:
		return 0, fmt.Errorf("param %q: expected number, got %T", key, v)
	}
}

func (p Params) Int(key string) (int, error) {
	f, err := p.Float(key)
	if err != nil {
		return 0, err
	}
	if f != float64(int(f)) {
		return 0, fmt.Errorf("param %q: expected integer, got %v", key, f)
	}
	return int(f), nil
}

func (p Params) String(key string) (string, error) {
	v, ok := p[key]
	if !ok {
		return "", fmt.Errorf("missing param %q", key)
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("param %q: expected string, got %T", key, v)
	}
	return s, nil
}
