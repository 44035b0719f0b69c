package arena

import (
	"fmt"
	"sort"

	"github.com/zeusync/tickbrain/internal/core/behavior"
	"github.com/zeusync/tickbrain/internal/core/minion"
)

// Catalog resolves archetype names to minion brain definitions. Specs with
// the same fingerprint are built once and share the definition.
type Catalog struct {
	defs   map[string]behavior.Definition[*minion.Thoughts]
	shared int
}

func NewCatalog(specs map[string]behavior.Spec) (*Catalog, error) {
	c := &Catalog{defs: make(map[string]behavior.Definition[*minion.Thoughts], len(minion.Archetypes)+len(specs))}
	for name, mk := range minion.Archetypes {
		c.defs[name] = mk()
	}

	names := make([]string, 0, len(specs))
	for name := range specs {
		names = append(names, name)
	}
	sort.Strings(names)

	loader := minion.Loader()
	built := make(map[uint64]behavior.Definition[*minion.Thoughts], len(specs))
	for _, name := range names {
		spec := specs[name]
		fp, err := behavior.Fingerprint(spec)
		if err != nil {
			return nil, fmt.Errorf("archetype %s: %w", name, err)
		}
		if def, ok := built[fp]; ok {
			c.defs[name] = def
			c.shared++
			continue
		}
		def, err := loader.Build(spec)
		if err != nil {
			return nil, fmt.Errorf("archetype %s: %w", name, err)
		}
		if _, err = def.Compile(); err != nil {
			return nil, fmt.Errorf("archetype %s: %w", name, err)
		}
		built[fp] = def
		c.defs[name] = def
	}
	return c, nil
}

func (c *Catalog) Definition(name string) (behavior.Definition[*minion.Thoughts], error) {
	def, ok := c.defs[name]
	if !ok {
		return behavior.Definition[*minion.Thoughts]{}, fmt.Errorf("%w: %s", ErrUnknownArchetype, name)
	}
	return def, nil
}

// Shared is the number of archetypes that reused an identical spec.
func (c *Catalog) Shared() int { return c.shared }

func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.defs))
	for name := range c.defs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
