package field

// Edit is a state cell for one input. It threads its state through Apply so
// collaborators that handle change events one at a time need not carry the
// previous NumericField themselves.
type Edit struct {
	Name   string
	Config Config
	State  NumericField
}

// NewEdit creates a cell starting at initial.
func NewEdit(name string, cfg Config, initial float64) *Edit {
	return &Edit{Name: name, Config: cfg, State: New(initial)}
}

// Set applies raw as the new input text and reports whether the edit was
// accepted. A rejected edit leaves the state unchanged.
func (e *Edit) Set(raw string) bool {
	next, ok := parse(e.Config, raw)
	if ok {
		e.State = next
	}
	return ok
}

// SetPercentageOf sets the cell to percentage percent of base.
func (e *Edit) SetPercentageOf(base, percentage float64) bool {
	return e.Set(PercentageText(base, percentage))
}

// Value returns the last accepted numeric value.
func (e *Edit) Value() float64 {
	return e.State.Value
}
