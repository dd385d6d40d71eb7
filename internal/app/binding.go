package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/okian/launchdash/internal/adapters/chart"
	"github.com/okian/launchdash/internal/domain/types"
)

// Slot ids shared by the layout and the callback registry.
const (
	SiteDropdownID  = "site-dropdown"
	PayloadSliderID = "payload-slider"
	PieChartID      = "success-pie-chart"
	ScatterChartID  = "success-payload-scatter-chart"
)

// State is the decoded value of every input slot at invocation time.
type State struct {
	Site    types.Selector
	Payload types.PayloadRange
}

// CallbackFunc computes an output figure from the current input state.
type CallbackFunc func(ctx context.Context, st State) (chart.Figure, error)

// CallbackSpec describes which inputs drive an output.
type CallbackSpec struct {
	Output string   `json:"output"`
	Inputs []string `json:"inputs"`
}

type binding struct {
	spec CallbackSpec
	fn   CallbackFunc
}

// Bindings is the registry of callbacks keyed by output slot id.
type Bindings struct {
	mu    sync.RWMutex
	order []string
	byOut map[string]binding
}

// NewBindings creates an empty registry.
func NewBindings() *Bindings {
	return &Bindings{byOut: make(map[string]binding)}
}

// Register binds fn to output, driven by the ordered inputs.
func (b *Bindings) Register(output string, inputs []string, fn CallbackFunc) error {
	if output == "" || fn == nil {
		return fmt.Errorf("%w: output id and callback are required", ErrBadInput)
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.byOut[output]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateOutput, output)
	}
	in := make([]string, len(inputs))
	copy(in, inputs)
	b.byOut[output] = binding{spec: CallbackSpec{Output: output, Inputs: in}, fn: fn}
	b.order = append(b.order, output)
	return nil
}

// Specs lists registered callbacks in registration order.
func (b *Bindings) Specs() []CallbackSpec {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make([]CallbackSpec, 0, len(b.order))
	for _, o := range b.order {
		s := b.byOut[o].spec
		s.Inputs = append([]string(nil), s.Inputs...)
		out = append(out, s)
	}
	return out
}

func (b *Bindings) lookup(output string) (binding, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	bd, ok := b.byOut[output]
	return bd, ok
}

// UpdateRequest carries the output to recompute and the current input values.
type UpdateRequest struct {
	Output string                     `json:"output"`
	Inputs map[string]json.RawMessage `json:"inputs"`
}

// UpdateResponse is the recomputed figure and its SVG rendering.
type UpdateResponse struct {
	Output string       `json:"output"`
	Figure chart.Figure `json:"figure"`
	SVG    string       `json:"svg,omitempty"`
}

// decodeState reads the declared inputs over the defaults. Inputs the
// callback does not declare are ignored.
func decodeState(inputs map[string]json.RawMessage, declared []string, def State) (State, error) {
	st := def
	for _, id := range declared {
		raw, ok := inputs[id]
		if !ok || len(raw) == 0 || string(raw) == "null" {
			continue
		}
		switch id {
		case SiteDropdownID:
			var site string
			if err := json.Unmarshal(raw, &site); err != nil {
				return State{}, fmt.Errorf("%w: %s: %v", ErrBadInput, id, err)
			}
			st.Site = types.ParseSelector(site)
		case PayloadSliderID:
			var v []float64
			if err := json.Unmarshal(raw, &v); err != nil {
				return State{}, fmt.Errorf("%w: %s: %v", ErrBadInput, id, err)
			}
			if len(v) != 2 {
				return State{}, fmt.Errorf("%w: %s: want [lo, hi], got %d values", ErrBadInput, id, len(v))
			}
			rng := types.PayloadRange{Lo: v[0], Hi: v[1]}
			if err := rng.Validate(); err != nil {
				return State{}, fmt.Errorf("%w: %s: %w", ErrBadInput, id, err)
			}
			st.Payload = rng
		}
	}
	return st, nil
}
