package rayfan

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/banshee-data/vmtomo/internal/vm"
)

// Residuals returns travel_time - pick_time + static_correction per ray.
// Positive residuals mean the model is slow relative to the data.
func (f *Rayfan) Residuals() []float64 {
	res := make([]float64, f.NRays())
	for i := range res {
		res[i] = f.TravelTimes[i] - f.PickTimes[i] + f.StaticCorrection
	}
	return res
}

// RMS returns the root-mean-square traveltime residual of the fan.
func (f *Rayfan) RMS() float64 {
	var sum float64
	res := f.Residuals()
	for _, r := range res {
		sum += r * r
	}
	return math.Sqrt(sum / float64(len(res)))
}

// Chi2 returns the error-normalized squared residual per ray.
func (f *Rayfan) Chi2() []float64 {
	chi2 := make([]float64, f.NRays())
	for i, r := range f.Residuals() {
		c := r / f.PickErrors[i]
		chi2[i] = c * c
	}
	return chi2
}

// MeanChi2 returns the fan's mean chi-squared misfit. A value near 1 means
// residuals are consistent with the assigned pick errors.
func (f *Rayfan) MeanChi2() float64 {
	return stat.Mean(f.Chi2(), nil)
}

// Offsets returns the horizontal source-receiver distance per ray, taken
// from the ray path endpoints. Rays with an empty path report 0.
func (f *Rayfan) Offsets() []float64 {
	off := make([]float64, f.NRays())
	for i, path := range f.Paths {
		if len(path) == 0 {
			continue
		}
		a, b := path[0], path[len(path)-1]
		off[i] = math.Hypot(b.X-a.X, b.Y-a.Y)
	}
	return off
}

// Azimuths returns the geographic shot azimuth per ray in degrees, measured
// clockwise from north and wrapped into [0, 360). Rays with an empty path
// report 0.
func (f *Rayfan) Azimuths() []float64 {
	az := make([]float64, f.NRays())
	for i, path := range f.Paths {
		if len(path) == 0 {
			continue
		}
		a, b := path[0], path[len(path)-1]
		deg := 90 - math.Atan2(b.Y-a.Y, b.X-a.X)*180/math.Pi
		az[i] = math.Mod(math.Mod(deg, 360)+360, 360)
	}
	return az
}

// BottomPoints returns each ray's deepest path vertex (the turning point).
// Rays with an empty path report the zero point.
func (f *Rayfan) BottomPoints() []vm.Point3 {
	bp := make([]vm.Point3, f.NRays())
	for i, path := range f.Paths {
		for j, p := range path {
			if j == 0 || p.Z > bp[i].Z {
				bp[i] = p
			}
		}
	}
	return bp
}

// MeanRMS returns the mean of the per-fan RMS residuals.
func (g *Group) MeanRMS() float64 {
	rms := make([]float64, len(g.Rayfans))
	for i, f := range g.Rayfans {
		rms[i] = f.RMS()
	}
	return stat.Mean(rms, nil)
}

// MeanChi2 returns the mean of the per-fan mean chi-squared misfits.
func (g *Group) MeanChi2() float64 {
	chi2 := make([]float64, len(g.Rayfans))
	for i, f := range g.Rayfans {
		chi2[i] = f.MeanChi2()
	}
	return stat.Mean(chi2, nil)
}

// Residuals concatenates the per-ray residuals of all fans.
func (g *Group) Residuals() []float64 {
	res := make([]float64, 0, g.NRays())
	for _, f := range g.Rayfans {
		res = append(res, f.Residuals()...)
	}
	return res
}

// Offsets concatenates the per-ray offsets of all fans.
func (g *Group) Offsets() []float64 {
	off := make([]float64, 0, g.NRays())
	for _, f := range g.Rayfans {
		off = append(off, f.Offsets()...)
	}
	return off
}

// Azimuths concatenates the per-ray azimuths of all fans.
func (g *Group) Azimuths() []float64 {
	az := make([]float64, 0, g.NRays())
	for _, f := range g.Rayfans {
		az = append(az, f.Azimuths()...)
	}
	return az
}

// BottomPoints concatenates the per-ray turning points of all fans.
func (g *Group) BottomPoints() []vm.Point3 {
	bp := make([]vm.Point3, 0, g.NRays())
	for _, f := range g.Rayfans {
		bp = append(bp, f.BottomPoints()...)
	}
	return bp
}
