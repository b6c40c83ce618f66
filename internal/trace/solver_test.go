package trace

import (
	"strings"
	"testing"

	"github.com/banshee-data/vmtomo/internal/fsutil"
	"github.com/banshee-data/vmtomo/internal/vm"
)

func TestControlScript(t *testing.T) {
	m := vm.New(vm.Point3{}, vm.Point3{X: 50, Y: 0, Z: 30}, 0.5, 0.5, 0.5, 2)
	r := Run{
		ModelFile:  "/data/line1.vm",
		InputDir:   "forward",
		RayFile:    "/data/line1.ray",
		Instrument: Instrument{Ensemble: 101, X: 25, Y: 0, Z: 4.2},
	}
	got := ControlScript(m, DefaultParams(), r)

	want := strings.Join([]string{
		"/data/line1.vm",
		"101",
		"101,1,61",
		"0.7142857142857143",
		"620",
		"25.00000   0.00000    4.20000   ",
		"0,2",
		"12,0,24", // 2D model zeroes the y star
		"0.5",
		"forward/shots.dat",
		"forward/picks.dat",
		"/data/line1.ray",
		"0",
		"0",
	}, "\n") + "\n"
	if got != want {
		t.Errorf("control script:\n%s\nwant:\n%s", got, want)
	}
}

func TestControlScriptOverrides(t *testing.T) {
	m := vm.New(vm.Point3{}, vm.Point3{X: 10, Y: 10, Z: 10}, 1, 1, 1, 3)
	p := DefaultParams()
	p.GridSize = [3]int{64, 64, 32}
	bottom := 1
	p.BottomLayer = &bottom
	static := 0.25
	p.StaticCorrection = &static
	r := Run{Instrument: Instrument{Ensemble: 1}, Append: true}

	got := ControlScript(m, p, r)
	for _, want := range []string{"64,64,32\n", "0,1\n", "12,12,24\n", "0.25\n", "\n1\n"} {
		if !strings.Contains(got, want) {
			t.Errorf("control script missing %q:\n%s", want, got)
		}
	}
}

func TestLoadParams(t *testing.T) {
	fs := fsutil.NewMemoryFileSystem()
	if err := fs.WriteFile("params.json", []byte(`{"min_velocity": 1.2, "max_node_size": 800}`), 0o644); err != nil {
		t.Fatal(err)
	}

	p, err := LoadParams(fs, "params.json")
	if err != nil {
		t.Fatal(err)
	}
	if p.MinVelocity != 1.2 {
		t.Errorf("MinVelocity = %g, want 1.2", p.MinVelocity)
	}
	if p.MaxNodeSize != 800 {
		t.Errorf("MaxNodeSize = %d, want 800", p.MaxNodeSize)
	}
	// omitted fields keep defaults
	if p.MinAngle != 0.5 || p.ForwardStar != [3]int{12, 12, 24} {
		t.Errorf("defaults lost: %+v", p)
	}
}

func TestLoadParamsRejectsBadInput(t *testing.T) {
	fs := fsutil.NewMemoryFileSystem()
	if _, err := LoadParams(fs, "params.yaml"); err == nil {
		t.Error("expected error for non-JSON extension")
	}
	if err := fs.WriteFile("bad.json", []byte(`{"min_velocity": -1}`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadParams(fs, "bad.json"); err == nil {
		t.Error("expected validation error for negative min_velocity")
	}
}
