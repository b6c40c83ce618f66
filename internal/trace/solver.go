package trace

import (
	"fmt"
	"strings"

	"github.com/banshee-data/vmtomo/internal/vm"
)

// Params carries the tuning knobs of a solver run. DefaultParams gives the
// values used in routine surveys; load site overrides from JSON on top.
type Params struct {
	GridSize         [3]int   `json:"grid_size,omitempty"`         // zero value: match the model dimensions
	ForwardStar      [3]int   `json:"forward_star,omitempty"`      // search stencil half-widths
	MinAngle         float64  `json:"min_angle_deg,omitempty"`     // min angle between search directions
	MinVelocity      float64  `json:"min_velocity,omitempty"`      // km/s, floor for traced rays
	MaxNodeSize      int      `json:"max_node_size,omitempty"`     // avg nodes allocated per ray path
	TopLayer         int      `json:"top_layer,omitempty"`         // shallowest layer to trace through
	BottomLayer      *int     `json:"bottom_layer,omitempty"`      // nil: the model's bottom layer
	StaticCorrection *float64 `json:"static_correction,omitempty"` // nil: 0.0
}

// DefaultParams returns the standard solver settings.
func DefaultParams() Params {
	return Params{
		ForwardStar: [3]int{12, 12, 24},
		MinAngle:    0.5,
		MinVelocity: 1.4,
		MaxNodeSize: 620,
	}
}

// Run describes one per-receiver solver invocation: the model to trace
// through, where the staged inputs live, and which instrument to trace.
type Run struct {
	ModelFile string
	InputDir  string
	RayFile   string

	Instrument Instrument
	Append     bool // keep an existing ray archive open and add to it
}

// ControlScript renders the here-document control stream the solver reads on
// stdin, one invocation per receiver. The field order is fixed by the solver
// and must not be reordered. The model is consulted for dimension defaults
// and the 2D special cases.
func ControlScript(m *vm.Model, p Params, r Run) string {
	gs := p.GridSize
	if gs == [3]int{} {
		gs = [3]int{m.Nx(), m.Ny(), m.Nz()}
	}
	star := p.ForwardStar
	// degenerate dimensions get a zero-width star
	if m.Nx() == 1 {
		star[0] = 0
	} else if m.Ny() == 1 {
		star[1] = 0
	}
	bottom := m.Nr()
	if p.BottomLayer != nil {
		bottom = *p.BottomLayer
	}
	appendFlag := 0
	if r.Append {
		appendFlag = 1
	}
	static := 0.0
	if p.StaticCorrection != nil {
		static = *p.StaticCorrection
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", r.ModelFile)
	fmt.Fprintf(&b, "%d\n", r.Instrument.Ensemble)
	fmt.Fprintf(&b, "%d,%d,%d\n", gs[0], gs[1], gs[2])
	fmt.Fprintf(&b, "%g\n", 1/p.MinVelocity)
	fmt.Fprintf(&b, "%d\n", p.MaxNodeSize)
	fmt.Fprintf(&b, "%-10.5f %-10.5f %-10.5f\n", r.Instrument.X, r.Instrument.Y, r.Instrument.Z)
	fmt.Fprintf(&b, "%d,%d\n", p.TopLayer, bottom)
	fmt.Fprintf(&b, "%d,%d,%d\n", star[0], star[1], star[2])
	fmt.Fprintf(&b, "%g\n", p.MinAngle)
	fmt.Fprintf(&b, "%s/%s\n", r.InputDir, ShotFile)
	fmt.Fprintf(&b, "%s/%s\n", r.InputDir, PickFile)
	fmt.Fprintf(&b, "%s\n", r.RayFile)
	fmt.Fprintf(&b, "%d\n", appendFlag)
	fmt.Fprintf(&b, "%g\n", static)
	return b.String()
}
