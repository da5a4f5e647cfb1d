package ringocc

import (
	"errors"
	"math"
	"testing"
)

func opaque(float64) (float64, error) { return 0.0, nil }

func uniformAperture(npts int, v float64) [][]float64 {
	ap := make([][]float64, npts)
	for i := range ap {
		ap[i] = make([]float64, npts)
		for j := range ap[i] {
			ap[i][j] = v
		}
	}
	return ap
}

func TestPropagateShapeErrors(t *testing.T) {
	cases := map[string][][]float64{
		"empty":      {},
		"odd size":   uniformAperture(5, 1.0),
		"non-square": {{1, 1}, {1, 1}, {1, 1}, {1, 1}},
		"ragged":     {{1, 1, 1, 1}, {1, 1}, {1, 1, 1, 1}, {1, 1, 1, 1}},
	}
	for name, ap := range cases {
		if _, _, err := Propagate(ap); !errors.Is(err, ErrApertureShape) {
			t.Errorf("%s: error = %v, want ErrApertureShape", name, err)
		}
	}
}

// With no occulting structure at all, the Fresnel chirp transforms to a
// spectrally flat field: the normalized lightcurve must read 1.0 everywhere.
func TestPropagateFullyTransparentApertureIsFlat(t *testing.T) {
	const npts = 256
	ap := uniformAperture(npts, 1.0)

	field, residual, err := Propagate(ap)
	if err != nil {
		t.Fatalf("Propagate: %v", err)
	}
	if residual > ImagTolerance {
		t.Errorf("imaginary residual %g exceeds tolerance %g", residual, ImagTolerance)
	}

	points, _, err := ExtractLightcurve(field, 0.1, 5.8, 50)
	if err != nil {
		t.Fatalf("ExtractLightcurve: %v", err)
	}
	for i, p := range points {
		if math.Abs(p.Flux-1.0) > 1e-6 {
			t.Fatalf("flux[%d] = %.12f, want 1.0 (no ring, no occultation signature)", i, p.Flux)
		}
	}
}

func TestPropagateOpaqueApertureIsDark(t *testing.T) {
	field, _, err := Propagate(uniformAperture(64, 0.0))
	if err != nil {
		t.Fatalf("Propagate: %v", err)
	}
	for r, row := range field {
		for c, v := range row {
			if v != 0.0 {
				t.Fatalf("field[%d][%d] = %g, want 0 for a fully opaque aperture", r, c, v)
			}
		}
	}
}

func TestPropagateIntensityNonNegative(t *testing.T) {
	table := flatTable(t, 1.0, 8.0, 100)
	ap, _, _, err := BuildRingAperture(testWavelengthMicrons, testDistanceKm, 256, 8.0, table.Transmission)
	if err != nil {
		t.Fatalf("BuildRingAperture: %v", err)
	}
	field, residual, err := Propagate(ap)
	if err != nil {
		t.Fatalf("Propagate: %v", err)
	}
	if residual > ImagTolerance {
		t.Errorf("imaginary residual %g exceeds tolerance %g", residual, ImagTolerance)
	}
	for r, row := range field {
		for c, v := range row {
			if v < 0 {
				t.Fatalf("field[%d][%d] = %g, intensity must be non-negative", r, c, v)
			}
		}
	}
	if len(field) != 256 || len(field[0]) != 256 {
		t.Fatalf("field is %dx%d, want 256x256", len(field), len(field[0]))
	}
}

// The physical setup has no chirality: an even transmission profile must
// produce a center row that mirrors about the center index.
func TestPropagateEvenProfileSymmetry(t *testing.T) {
	const npts = 256
	const widthKm = 8.0
	table := flatTable(t, 1.0, widthKm, 100)

	ap, _, _, err := BuildRingAperture(testWavelengthMicrons, testDistanceKm, npts, widthKm, table.Transmission)
	if err != nil {
		t.Fatalf("BuildRingAperture: %v", err)
	}
	field, _, err := Propagate(ap)
	if err != nil {
		t.Fatalf("Propagate: %v", err)
	}

	n2 := npts / 2
	row := field[n2]
	for k := 1; k < n2; k++ {
		a, b := row[n2+k], row[n2-k]
		if diff := math.Abs(a - b); diff > 1e-9*(math.Abs(a)+math.Abs(b)+1) {
			t.Fatalf("row[%d] = %g and row[%d] = %g are not mirror images", n2+k, a, n2-k, b)
		}
	}
}

// An opaque strip produces the classic sharp-edged shadow: a deep central
// dip flanked by diffraction ringing, symmetric about the center.
func TestPropagateOpaqueStripShadow(t *testing.T) {
	const npts = 256
	const widthKm = 8.0

	ap, _, grid, err := BuildRingAperture(testWavelengthMicrons, testDistanceKm, npts, widthKm, opaque)
	if err != nil {
		t.Fatalf("BuildRingAperture: %v", err)
	}
	field, _, err := Propagate(ap)
	if err != nil {
		t.Fatalf("Propagate: %v", err)
	}
	points, _, err := ExtractLightcurve(field, grid, 5.8, 40)
	if err != nil {
		t.Fatalf("ExtractLightcurve: %v", err)
	}

	n2 := npts / 2
	if points[n2].Flux > 0.25 {
		t.Errorf("central flux = %g, want a deep shadow behind an opaque strip", points[n2].Flux)
	}

	maxFlux := 0.0
	for _, p := range points {
		maxFlux = math.Max(maxFlux, p.Flux)
	}
	if maxFlux < 1.01 {
		t.Errorf("max flux = %g, sharp edges should produce diffraction overshoot above 1", maxFlux)
	}
}
