package behavior

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// wrapDef compiles its child and waits on it, standing in for wrapper leaves.
type wrapDef struct{ child Definition[*testCtx] }

func (w wrapDef) Compile() (Node[*testCtx], error) { return w.child.Compile() }

func testLoader() Loader[*testCtx] {
	return Loader[*testCtx]{
		ParseLeaf: func(kind string, params Params, child *Definition[*testCtx]) (LeafDef[*testCtx], error) {
			switch kind {
			case "ok":
				return probeDef{name: "ok", state: StateComplete}, nil
			case "wait":
				if _, err := params.Float("duration"); err != nil {
					return nil, err
				}
				return probeDef{name: "wait", state: StateWaiting}, nil
			case "wrap":
				if child == nil {
					return nil, fmt.Errorf("wrap needs child")
				}
				return wrapDef{child: *child}, nil
			default:
				return nil, fmt.Errorf("%w: %s", ErrUnknownLeaf, kind)
			}
		},
		Signals: map[string]func(*testCtx) bool{
			"interrupt": func(c *testCtx) bool { return c.interrupt },
		},
	}
}

func TestLoadYAMLAndBuild(t *testing.T) {
	src := `
type: reset
signal: interrupt
child:
  type: selector
  children:
    - type: sequence
      children:
        - {leaf: ok}
        - {type: leaf, leaf: wait, params: {duration: 1}}
    - type: leaf
      leaf: wrap
      child: {leaf: ok}
`
	spec, err := LoadYAML(strings.NewReader(src))
	require.NoError(t, err)

	def, err := testLoader().Build(spec)
	require.NoError(t, err)
	assert.Equal(t, KindResetOn, def.Kind())

	tree := def.MustCompile()
	ctx := &testCtx{}
	assert.Equal(t, StateWaiting, tree.Resume(bigBudget, ctx).State)
	assert.Equal(t, []string{"ok", "wait"}, ctx.visits)

	ctx.interrupt = true
	assert.Equal(t, StateComplete, tree.Resume(bigBudget, ctx).State)
}

func TestLoadJSON(t *testing.T) {
	spec, err := LoadJSON(strings.NewReader(`{"type":"sequence","children":[{"leaf":"wait","params":{"duration":0.5}}]}`))
	require.NoError(t, err)
	require.Len(t, spec.Children, 1)

	d, err := spec.Children[0].Params.Float("duration")
	require.NoError(t, err)
	assert.Equal(t, 0.5, d)

	_, err = testLoader().Build(spec)
	assert.NoError(t, err)
}

func TestBuildErrors(t *testing.T) {
	cases := []struct {
		name string
		spec Spec
		want error
	}{
		{"unknown type", Spec{Type: "parallel"}, ErrUnknownNode},
		{"unknown leaf", Spec{Type: "sequence", Children: []Spec{{Leaf: "fly"}}}, ErrUnknownLeaf},
		{"unknown signal", Spec{Type: "reset", Signal: "nope", Child: &Spec{Leaf: "ok"}}, ErrInvalidDefinition},
		{"reset without child", Spec{Type: "reset", Signal: "interrupt"}, ErrInvalidDefinition},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := testLoader().Build(tc.spec)
			assert.ErrorIs(t, err, tc.want)
		})
	}

	_, err := testLoader().Build(Spec{Leaf: "wait"})
	assert.ErrorContains(t, err, `missing param "duration"`)

	_, err = Loader[*testCtx]{}.Build(Spec{Leaf: "ok"})
	assert.ErrorIs(t, err, ErrUnknownLeaf)
}

func TestFingerprintIgnoresKeyOrder(t *testing.T) {
	a, err := LoadYAML(strings.NewReader("type: leaf\nleaf: wait\nparams: {duration: 1, label: x}\n"))
	require.NoError(t, err)
	b, err := LoadYAML(strings.NewReader("params: {label: x, duration: 1}\nleaf: wait\ntype: leaf\n"))
	require.NoError(t, err)
	c, err := LoadYAML(strings.NewReader("type: leaf\nleaf: wait\nparams: {duration: 2}\n"))
	require.NoError(t, err)

	fa, err := Fingerprint(a)
	require.NoError(t, err)
	fb, err := Fingerprint(b)
	require.NoError(t, err)
	fc, err := Fingerprint(c)
	require.NoError(t, err)

	assert.Equal(t, fa, fb)
	assert.NotEqual(t, fa, fc)
}

func TestParams(t *testing.T) {
	p := Params{"f": 1.5, "i": 3, "s": "Slash", "frac": 2.5}

	f, err := p.Float("i")
	require.NoError(t, err)
	assert.Equal(t, 3.0, f)

	i, err := p.Int("i")
	require.NoError(t, err)
	assert.Equal(t, 3, i)

	_, err = p.Int("frac")
	assert.Error(t, err)

	s, err := p.String("s")
	require.NoError(t, err)
	assert.Equal(t, "Slash", s)

	_, err = p.String("f")
	assert.Error(t, err)
	_, err = p.Float("s")
	assert.Error(t, err)
	_, err = p.Float("missing")
	assert.Error(t, err)
}
