package behavior

type testCtx struct {
	visits    []string
	interrupt bool
}

// probe reports a fixed state and records how it was driven.
type probe struct {
	name     string
	state    State
	resumes  int
	resets   int
	progress int
}

func (p *probe) Resume(budget int, ctx *testCtx) Outcome {
	p.resumes++
	ctx.visits = append(ctx.visits, p.name)
	if p.state == StateWaiting {
		p.progress++
	}
	return Outcome{State: p.state, Remaining: budget}
}

func (p *probe) Reset(*testCtx) {
	p.resets++
	p.progress = 0
}

func probes(states ...State) ([]*probe, []Node[*testCtx]) {
	names := "abcdefghij"
	ps := make([]*probe, len(states))
	nodes := make([]Node[*testCtx], len(states))
	for i, st := range states {
		ps[i] = &probe{name: string(names[i]), state: st}
		nodes[i] = ps[i]
	}
	return ps, nodes
}

// probeDef compiles to a fresh probe each time and remembers the instances.
type probeDef struct {
	name      string
	state     State
	err       error
	instances *[]*probe
}

func (d probeDef) Compile() (Node[*testCtx], error) {
	if d.err != nil {
		return nil, d.err
	}
	p := &probe{name: d.name, state: d.state}
	if d.instances != nil {
		*d.instances = append(*d.instances, p)
	}
	return p, nil
}
