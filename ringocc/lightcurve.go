package ringocc

import (
	"errors"
	"fmt"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Point is a single sample of the extracted lightcurve.
type Point struct {
	TimeSec float64 // Time from mid-ring crossing (s)
	Flux    float64 // Stellar flux normalized to an out-of-event baseline of 1
}

// Baseline returns the median of the leading window of a lightcurve row.
// The window must be chosen by the caller so that no ring-diffraction
// structure is present in it (an out-of-event region).
func Baseline(row []float64, window int) (float64, error) {
	if window <= 0 || window > len(row) {
		return 0, fmt.Errorf("baseline window %d out of range for a row of %d points", window, len(row))
	}
	vals := make([]float64, window)
	copy(vals, row[:window])
	sort.Float64s(vals)
	return stat.Quantile(0.5, stat.Empirical, vals, nil), nil
}

// ExtractLightcurve reduces a square observer-plane intensity field to a
// 1-D lightcurve. The cut is taken through the field's center row (the
// ring's radial midline under BuildRingAperture's orientation), normalized
// by the median of its leading baselineWindow points, and converted from
// spatial offset to time using a constant relative event velocity:
// t = (i - npts/2) * gridSizeKm / v.
//
// The baseline used is returned so the caller can apply the same scale to
// the full field (see NormalizeField).
func ExtractLightcurve(field [][]float64, gridSizeKm, eventVelocityKmPerSec float64, baselineWindow int) ([]Point, float64, error) {
	npts := len(field)
	if npts == 0 || npts%2 != 0 {
		return nil, 0, ErrApertureShape
	}
	for _, row := range field {
		if len(row) != npts {
			return nil, 0, ErrApertureShape
		}
	}
	if gridSizeKm <= 0 {
		return nil, 0, fmt.Errorf("grid size must be positive, got %g km", gridSizeKm)
	}
	if eventVelocityKmPerSec <= 0 {
		return nil, 0, fmt.Errorf("event velocity must be positive, got %g km/s", eventVelocityKmPerSec)
	}

	n2 := npts / 2
	row := field[n2]

	baseline, err := Baseline(row, baselineWindow)
	if err != nil {
		return nil, 0, err
	}
	if baseline <= 0 {
		return nil, 0, errors.New("baseline is not positive; the out-of-event window holds no flux")
	}

	points := make([]Point, npts)
	for i := 0; i < npts; i++ {
		points[i] = Point{
			TimeSec: float64(i-n2) * gridSizeKm / eventVelocityKmPerSec,
			Flux:    row[i] / baseline,
		}
	}
	return points, baseline, nil
}

// NormalizeField divides the whole field by the given baseline in place, so
// unocculted flux reads 1.0 everywhere.
func NormalizeField(field [][]float64, baseline float64) {
	for _, row := range field {
		for i := range row {
			row[i] /= baseline
		}
	}
}
