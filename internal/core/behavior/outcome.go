package behavior

// State is the three-valued result of one evaluation step.
type State int

const (
	StateComplete State = iota
	StateFailed
	StateWaiting
)

func (s State) String() string {
	switch s {
	case StateComplete:
		return "Complete"
	case StateFailed:
		return "Failed"
	case StateWaiting:
		return "Waiting"
	default:
		return "Invalid"
	}
}

// Outcome is what a node reports back from Resume, together with the part of
// the budget it did not spend. Remaining never exceeds the budget passed in.
type Outcome struct {
	State     State
	Remaining int
}

func Complete(remaining int) Outcome { return Outcome{State: StateComplete, Remaining: remaining} }
func Failed(remaining int) Outcome   { return Outcome{State: StateFailed, Remaining: remaining} }
func Waiting(remaining int) Outcome  { return Outcome{State: StateWaiting, Remaining: remaining} }

// Terminal reports whether the activation is over (Complete or Failed).
func (o Outcome) Terminal() bool { return o.State != StateWaiting }

func (o Outcome) String() string { return o.State.String() }
