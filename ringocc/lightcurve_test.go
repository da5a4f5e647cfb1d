package ringocc

import (
	"math"
	"testing"
)

func TestBaseline(t *testing.T) {
	row := []float64{3, 1, 2, 5, 4, 100, 200}

	got, err := Baseline(row, 5)
	if err != nil {
		t.Fatalf("Baseline: %v", err)
	}
	if got != 3.0 {
		t.Errorf("Baseline = %g, want 3 (median of the leading five points)", got)
	}

	if _, err := Baseline(row, 0); err == nil {
		t.Error("window 0: expected an error")
	}
	if _, err := Baseline(row, len(row)+1); err == nil {
		t.Error("window past the end: expected an error")
	}
}

func TestExtractLightcurveTimeAxis(t *testing.T) {
	const npts = 64
	const grid = 0.25
	const v = 5.8
	field := uniformAperture(npts, 2.0) // constant intensity, baseline 2

	points, baseline, err := ExtractLightcurve(field, grid, v, 10)
	if err != nil {
		t.Fatalf("ExtractLightcurve: %v", err)
	}
	if baseline != 2.0 {
		t.Errorf("baseline = %g, want 2", baseline)
	}
	if len(points) != npts {
		t.Fatalf("len(points) = %d, want %d", len(points), npts)
	}

	n2 := npts / 2
	if points[n2].TimeSec != 0 {
		t.Errorf("center time = %g, want 0", points[n2].TimeSec)
	}
	for i, p := range points {
		wantT := float64(i-n2) * grid / v
		if math.Abs(p.TimeSec-wantT) > 1e-15 {
			t.Errorf("t[%d] = %g, want %g", i, p.TimeSec, wantT)
		}
		if p.Flux != 1.0 {
			t.Errorf("flux[%d] = %g, want 1 after baseline normalization", i, p.Flux)
		}
	}
}

// Dividing an already-normalized lightcurve's baseline window by its own
// baseline must yield 1.0.
func TestNormalizationIdempotence(t *testing.T) {
	const npts = 256
	const window = 40
	table := flatTable(t, 1.0, 8.0, 100)

	ap, _, grid, err := BuildRingAperture(testWavelengthMicrons, testDistanceKm, npts, 8.0, table.Transmission)
	if err != nil {
		t.Fatalf("BuildRingAperture: %v", err)
	}
	field, _, err := Propagate(ap)
	if err != nil {
		t.Fatalf("Propagate: %v", err)
	}
	points, baseline, err := ExtractLightcurve(field, grid, 5.8, window)
	if err != nil {
		t.Fatalf("ExtractLightcurve: %v", err)
	}

	fluxes := make([]float64, len(points))
	for i, p := range points {
		fluxes[i] = p.Flux
	}
	again, err := Baseline(fluxes, window)
	if err != nil {
		t.Fatalf("Baseline: %v", err)
	}
	if math.Abs(again-1.0) > 1e-12 {
		t.Errorf("baseline of the normalized window = %.15f, want 1.0", again)
	}

	// Normalizing the full field by the same baseline makes its center row
	// match the extracted fluxes.
	NormalizeField(field, baseline)
	for i, want := range fluxes {
		if got := field[npts/2][i]; math.Abs(got-want) > 1e-12 {
			t.Fatalf("normalized field row[%d] = %g, extracted flux = %g", i, got, want)
		}
	}
}

func TestExtractLightcurveErrors(t *testing.T) {
	if _, _, err := ExtractLightcurve([][]float64{{1, 1}, {1, 1}, {1, 1}}, 0.1, 5.8, 1); err == nil {
		t.Error("non-square field: expected an error")
	}
	field := uniformAperture(64, 1.0)
	if _, _, err := ExtractLightcurve(field, 0, 5.8, 10); err == nil {
		t.Error("zero grid size: expected an error")
	}
	if _, _, err := ExtractLightcurve(field, 0.1, 0, 10); err == nil {
		t.Error("zero velocity: expected an error")
	}
	if _, _, err := ExtractLightcurve(field, 0.1, 5.8, 0); err == nil {
		t.Error("zero baseline window: expected an error")
	}
	dark := uniformAperture(64, 0.0)
	if _, _, err := ExtractLightcurve(dark, 0.1, 5.8, 10); err == nil {
		t.Error("zero baseline flux: expected an error")
	}
}

// Higher optical depth at the same ring width digs a deeper dip; sharp
// profile edges ring while soft centrally-peaked edges do not.
func TestLightcurveProfileShapes(t *testing.T) {
	const npts = 512
	const widthKm = 10.0
	const window = 60

	extract := func(offsets, taus []float64) []Point {
		t.Helper()
		table, err := NewTransmissionTable(offsets, taus)
		if err != nil {
			t.Fatalf("NewTransmissionTable: %v", err)
		}
		ap, _, grid, err := BuildRingAperture(testWavelengthMicrons, testDistanceKm, npts, widthKm, table.Transmission)
		if err != nil {
			t.Fatalf("BuildRingAperture: %v", err)
		}
		field, _, err := Propagate(ap)
		if err != nil {
			t.Fatalf("Propagate: %v", err)
		}
		points, _, err := ExtractLightcurve(field, grid, 5.8, window)
		if err != nil {
			t.Fatalf("ExtractLightcurve: %v", err)
		}
		return points
	}

	minFlux := func(points []Point) (float64, int) {
		min, at := math.Inf(1), -1
		for i, p := range points {
			if p.Flux < min {
				min, at = p.Flux, i
			}
		}
		return min, at
	}
	maxFlux := func(points []Point) float64 {
		max := math.Inf(-1)
		for _, p := range points {
			max = math.Max(max, p.Flux)
		}
		return max
	}

	shallow := extract(FlatTauSamples(0.1, widthKm, 100))
	deep := extract(FlatTauSamples(1.0, widthKm, 100))
	peaked := extract(CenterPeakedTauSamples(1.0, widthKm, 101))

	shallowMin, shallowAt := minFlux(shallow)
	deepMin, _ := minFlux(deep)

	// tau=0.1 gives a shallow dip of tens of percent, not near-total.
	if shallowMin < 0.6 || shallowMin > 0.97 {
		t.Errorf("tau=0.1 min flux = %g, want a shallow dip", shallowMin)
	}
	if deepMin >= shallowMin {
		t.Errorf("tau=1.0 min flux %g not deeper than tau=0.1 min flux %g", deepMin, shallowMin)
	}

	// The dip sits near t=0, within the ring's half width of the center.
	n2 := npts / 2
	_, _, grid, err := BuildRingAperture(testWavelengthMicrons, testDistanceKm, npts, widthKm, fullyTransparent)
	if err != nil {
		t.Fatalf("BuildRingAperture: %v", err)
	}
	halfWidthPts := int(widthKm / 2.0 / grid)
	if d := shallowAt - n2; d < -halfWidthPts || d > halfWidthPts {
		t.Errorf("tau=0.1 dip at index %d, want within %d points of the center %d", shallowAt, halfWidthPts, n2)
	}

	// Sharp edges ring; the soft-edged centrally peaked profile does not.
	if got := maxFlux(deep); got < 1.01 {
		t.Errorf("flat tau=1.0 max flux = %g, want visible ringing above 1", got)
	}
	if sharp, soft := maxFlux(deep), maxFlux(peaked); soft >= sharp {
		t.Errorf("centrally peaked max flux %g not below sharp-edged max flux %g", soft, sharp)
	}
}
