package trace

import (
	"strings"
	"testing"

	"github.com/banshee-data/vmtomo/internal/fsutil"
)

type staticSource struct {
	insts []Instrument
	shots []Shot
	picks []Pick
}

func (s staticSource) Instruments() ([]Instrument, error) { return s.insts, nil }
func (s staticSource) Shots() ([]Shot, error)             { return s.shots, nil }
func (s staticSource) Picks() ([]Pick, error)             { return s.picks, nil }

func TestWriteInputs(t *testing.T) {
	fs := fsutil.NewMemoryFileSystem()
	w := &InputWriter{FS: fs, Dir: "forward"}
	src := staticSource{
		insts: []Instrument{{Ensemble: 101, X: 10.5, Y: 0, Z: 4.2}},
		shots: []Shot{
			{Trace: 1, X: 0, Y: 0, Z: 0.006},
			{Trace: 2, X: 0.2, Y: 0, Z: 0.006},
		},
		picks: []Pick{
			{Ensemble: 101, Trace: 1, Branch: 1, SubID: 0, Offset: 10.5, Time: 4.31, Error: 0.03},
			{Ensemble: 101, Trace: 2, Branch: 1, SubID: 0, Offset: 10.3, Time: 4.27, Error: 0.03},
		},
	}

	if err := w.WriteInputs(src); err != nil {
		t.Fatal(err)
	}

	inst, err := fs.ReadFile("forward/inst.dat")
	if err != nil {
		t.Fatal(err)
	}
	if got, want := string(inst), "101 10.500000 0.000000 4.200000\n"; got != want {
		t.Errorf("inst.dat = %q, want %q", got, want)
	}

	shots, err := fs.ReadFile("forward/shots.dat")
	if err != nil {
		t.Fatal(err)
	}
	if lines := strings.Count(string(shots), "\n"); lines != 2 {
		t.Errorf("shots.dat has %d rows, want 2", lines)
	}

	picks, err := fs.ReadFile("forward/picks.dat")
	if err != nil {
		t.Fatal(err)
	}
	first := strings.SplitN(string(picks), "\n", 2)[0]
	if want := "101 1 1 0 10.500000 4.310000 0.030000"; first != want {
		t.Errorf("first pick row = %q, want %q", first, want)
	}
	if !fs.Exists("forward") {
		t.Error("staging directory was not created")
	}
}
