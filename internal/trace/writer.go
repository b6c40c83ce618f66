package trace

import (
	"bytes"
	"fmt"
	"path/filepath"

	"github.com/banshee-data/vmtomo/internal/fsutil"
)

// Default input file names inside a staging directory. The solver takes the
// paths on its control stream, so the names are convention rather than
// contract.
const (
	InstrumentFile = "inst.dat"
	ShotFile       = "shots.dat"
	PickFile       = "picks.dat"
)

// InputWriter stages the ASCII tables a solver run reads: one row per
// instrument, shot, and pick, whitespace separated.
type InputWriter struct {
	FS  fsutil.FileSystem
	Dir string // staging directory, created if missing
}

// WriteInputs pulls geometry and picks from src and writes the three input
// files into the staging directory.
func (w *InputWriter) WriteInputs(src PickSource) error {
	if err := w.FS.MkdirAll(w.Dir, 0o755); err != nil {
		return fmt.Errorf("trace: creating input dir %s: %w", w.Dir, err)
	}

	insts, err := src.Instruments()
	if err != nil {
		return fmt.Errorf("trace: listing instruments: %w", err)
	}
	var buf bytes.Buffer
	for _, in := range insts {
		fmt.Fprintf(&buf, "%d %.6f %.6f %.6f\n", in.Ensemble, in.X, in.Y, in.Z)
	}
	if err := w.writeTable(InstrumentFile, &buf); err != nil {
		return err
	}

	shots, err := src.Shots()
	if err != nil {
		return fmt.Errorf("trace: listing shots: %w", err)
	}
	buf.Reset()
	for _, s := range shots {
		fmt.Fprintf(&buf, "%d %.6f %.6f %.6f\n", s.Trace, s.X, s.Y, s.Z)
	}
	if err := w.writeTable(ShotFile, &buf); err != nil {
		return err
	}

	picks, err := src.Picks()
	if err != nil {
		return fmt.Errorf("trace: listing picks: %w", err)
	}
	buf.Reset()
	for _, p := range picks {
		fmt.Fprintf(&buf, "%d %d %d %d %.6f %.6f %.6f\n",
			p.Ensemble, p.Trace, p.Branch, p.SubID, p.Offset, p.Time, p.Error)
	}
	return w.writeTable(PickFile, &buf)
}

func (w *InputWriter) writeTable(name string, buf *bytes.Buffer) error {
	path := filepath.Join(w.Dir, name)
	if err := w.FS.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("trace: writing %s: %w", path, err)
	}
	return nil
}
