// Package trace stages the input files the external raytracing solver
// consumes: ASCII instrument, shot, and pick tables plus the per-receiver
// control scripts that drive a solver run.
package trace

// Instrument is a receiver position keyed by ensemble number.
type Instrument struct {
	Ensemble int
	X, Y, Z  float64
}

// Shot is a source position keyed by trace (shot) number.
type Shot struct {
	Trace   int
	X, Y, Z float64
}

// Pick is one picked traveltime: which instrument recorded which shot, the
// model branch and sub-id the pick belongs to, and the picked time with its
// assigned uncertainty.
type Pick struct {
	Ensemble int // instrument number
	Trace    int // shot number
	Branch   int
	SubID    int
	Offset   float64 // source-receiver range, km
	Time     float64 // seconds
	Error    float64 // pick uncertainty, seconds
}

// PickSource yields the survey geometry and picks to stage for a solver run.
// The pick store itself (database, file import) lives elsewhere.
type PickSource interface {
	Instruments() ([]Instrument, error)
	Shots() ([]Shot, error)
	Picks() ([]Pick, error)
}
