// Package ringocc simulates stellar occultation lightcurves caused by a
// planetary ring segment, using scalar Fresnel diffraction. An aperture
// encoding the ring's radial transmission profile is built at the physical
// scale implied by the observation wavelength and distance, propagated to
// the observer's plane with Trester's single-FFT method, and reduced to a
// time-series lightcurve along the track of relative motion.
package ringocc

import (
	"errors"
	"fmt"
	"math"
)

// ErrApertureShape reports an aperture that is not square or whose side
// length is odd, which leaves the centering convention undefined.
var ErrApertureShape = errors.New("aperture must be square with an even number of points per side")

// TransmissionFunc maps a signed radial offset from the ring's midline (km)
// to the transmitted light fraction in [0, 1]. It must be defined at least
// over [-width/2, +width/2]; queries outside a profile's tabulated domain
// return ErrProfileDomain.
type TransmissionFunc func(offsetKm float64) (float64, error)

const micronsToKm = 1e-9

// BuildRingAperture builds the complex-transmission aperture for a vertical
// ring segment running through the field. The grid resolution and the field
// of view are not free parameters: gridSize = sqrt(lam*D/npts) and
// FOV = gridSize*npts, so changing npts changes both at once.
//
// Cells with |column offset| <= ringWidthKm/2 carry the transmission value
// at that offset; all other cells are 1.0 (unocculted starlight). The
// returned FOV and grid size satisfy fovKm/gridSizeKm == npts by
// construction.
func BuildRingAperture(wavelengthMicrons, distanceKm float64, npts int, ringWidthKm float64,
	transmission TransmissionFunc) (ap [][]float64, fovKm, gridSizeKm float64, err error) {

	if wavelengthMicrons <= 0 {
		return nil, 0, 0, fmt.Errorf("wavelength must be positive, got %g microns", wavelengthMicrons)
	}
	if distanceKm <= 0 {
		return nil, 0, 0, fmt.Errorf("distance must be positive, got %g km", distanceKm)
	}
	if npts <= 0 || npts%2 != 0 {
		return nil, 0, 0, fmt.Errorf("npts must be a positive even integer, got %d", npts)
	}
	if ringWidthKm <= 0 {
		return nil, 0, 0, fmt.Errorf("ring width must be positive, got %g km", ringWidthKm)
	}
	if transmission == nil {
		return nil, 0, 0, errors.New("transmission function must not be nil")
	}

	lamKm := wavelengthMicrons * micronsToKm
	gridSizeKm = math.Sqrt(lamKm * distanceKm / float64(npts))
	fovKm = gridSizeKm * float64(npts)

	n2 := npts / 2
	wid2 := ringWidthKm / 2.0

	// Transmission depends only on the column offset, so the top row defines
	// the whole aperture. The remaining rows are copies of it.
	top := make([]float64, npts)
	for col := 0; col < npts; col++ {
		x := float64(col-n2) * gridSizeKm
		if math.Abs(x) > wid2 {
			top[col] = 1.0
			continue
		}
		t, err := transmission(x)
		if err != nil {
			return nil, 0, 0, fmt.Errorf("transmission at offset %g km: %w", x, err)
		}
		if math.IsNaN(t) || math.IsInf(t, 0) || t < 0 || t > 1 {
			return nil, 0, 0, fmt.Errorf("transmission at offset %g km is %g, want a finite value in [0,1]", x, t)
		}
		top[col] = t
	}

	ap = make([][]float64, npts)
	for row := range ap {
		ap[row] = make([]float64, npts)
		copy(ap[row], top)
	}
	return ap, fovKm, gridSizeKm, nil
}

// BuildSolidAperture builds an aperture with a centered elliptical opaque
// body: 0 inside the ellipse, 1 outside. The plate scale is fovKm/npts.
// aKm and bKm are the semi-axes along the column and row directions. This
// generator is not part of the ring lightcurve path; it is kept for solid
// body occultation experiments.
func BuildSolidAperture(fovKm float64, npts int, aKm, bKm float64) ([][]float64, error) {
	if fovKm <= 0 {
		return nil, fmt.Errorf("field of view must be positive, got %g km", fovKm)
	}
	if npts <= 0 || npts%2 != 0 {
		return nil, fmt.Errorf("npts must be a positive even integer, got %d", npts)
	}
	if aKm <= 0 || bKm <= 0 {
		return nil, fmt.Errorf("ellipse semi-axes must be positive, got a=%g km b=%g km", aKm, bKm)
	}

	mpts := Linspace(-fovKm/2.0, fovKm/2.0, npts)
	ap := make([][]float64, npts)
	for row := range ap {
		ap[row] = make([]float64, npts)
		y := mpts[row]
		for col := range ap[row] {
			x := mpts[col]
			if (x/aKm)*(x/aKm)+(y/bKm)*(y/bKm) < 1.0 {
				ap[row][col] = 0.0
			} else {
				ap[row][col] = 1.0
			}
		}
	}
	return ap, nil
}

// FresnelScale returns the Fresnel scale sqrt(lam*D/2) in km. The grid
// resolution should sample this by at least a handful of points for
// diffraction structure to be resolved.
func FresnelScale(wavelengthMicrons, distanceKm float64) float64 {
	return math.Sqrt(wavelengthMicrons * micronsToKm * distanceKm / 2.0)
}

// Linspace is provided to match numpy's linspace().
func Linspace(start, end float64, n int) []float64 {
	if n <= 1 {
		return []float64{start}
	}

	step := (end - start) / float64(n-1)

	x := make([]float64, n)
	for i := 0; i < n; i++ {
		x[i] = start + float64(i)*step
	}
	return x
}
