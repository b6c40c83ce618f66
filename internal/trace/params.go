package trace

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/banshee-data/vmtomo/internal/fsutil"
)

// LoadParams reads site overrides from a JSON file and applies them on top
// of DefaultParams. Fields omitted from the file keep their defaults, so
// partial configs are safe.
func LoadParams(fs fsutil.FileSystem, path string) (Params, error) {
	p := DefaultParams()
	clean := filepath.Clean(path)
	if ext := filepath.Ext(clean); ext != ".json" {
		return p, fmt.Errorf("trace: params file must have .json extension, got %q", ext)
	}
	data, err := fs.ReadFile(clean)
	if err != nil {
		return p, fmt.Errorf("trace: reading params file: %w", err)
	}
	if err := json.Unmarshal(data, &p); err != nil {
		return p, fmt.Errorf("trace: parsing params file: %w", err)
	}
	if err := p.Validate(); err != nil {
		return p, fmt.Errorf("trace: invalid params: %w", err)
	}
	return p, nil
}

// Validate rejects parameter combinations the solver cannot run with.
func (p Params) Validate() error {
	if p.MinVelocity <= 0 {
		return fmt.Errorf("min_velocity must be positive, got %g", p.MinVelocity)
	}
	if p.MinAngle <= 0 {
		return fmt.Errorf("min_angle_deg must be positive, got %g", p.MinAngle)
	}
	if p.MaxNodeSize < 1 {
		return fmt.Errorf("max_node_size must be at least 1, got %d", p.MaxNodeSize)
	}
	for _, n := range p.ForwardStar {
		if n < 0 {
			return fmt.Errorf("forward_star entries must be non-negative, got %v", p.ForwardStar)
		}
	}
	if p.TopLayer < 0 {
		return fmt.Errorf("top_layer must be non-negative, got %d", p.TopLayer)
	}
	if p.BottomLayer != nil && *p.BottomLayer < p.TopLayer {
		return fmt.Errorf("bottom_layer %d is above top_layer %d", *p.BottomLayer, p.TopLayer)
	}
	return nil
}
