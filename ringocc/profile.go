package ringocc

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/interp"
)

// ErrProfileDomain reports a transmission profile queried outside the radial
// range it was tabulated over. This is a caller sizing mismatch between ring
// width, sample count and profile table range.
var ErrProfileDomain = errors.New("transmission profile evaluated outside its radial domain")

// domainSlack absorbs the last-ulp rounding of sampled offsets against the
// table endpoints.
const domainSlack = 1e-9

// TransmissionTable is a radial ring profile tabulated as (offset, optical
// depth) pairs and interpolated as transmission = exp(-tau). It is only
// valid within the sampled offset range.
type TransmissionTable struct {
	minKm, maxKm float64
	pl           interp.PiecewiseLinear
}

// NewTransmissionTable builds an interpolated transmission profile from
// ordered (offsetKm, opticalDepth) samples. Offsets must be strictly
// increasing and there must be at least two samples.
func NewTransmissionTable(offsetsKm, opticalDepths []float64) (*TransmissionTable, error) {
	if len(offsetsKm) != len(opticalDepths) {
		return nil, fmt.Errorf("length mismatch: %d offsets, %d optical depths", len(offsetsKm), len(opticalDepths))
	}
	if len(offsetsKm) < 2 {
		return nil, errors.New("a transmission table needs at least two samples")
	}
	for i := 1; i < len(offsetsKm); i++ {
		if offsetsKm[i] <= offsetsKm[i-1] {
			return nil, fmt.Errorf("offsets must be strictly increasing (offset[%d]=%g, offset[%d]=%g)",
				i-1, offsetsKm[i-1], i, offsetsKm[i])
		}
	}

	tr := make([]float64, len(opticalDepths))
	for i, tau := range opticalDepths {
		if math.IsNaN(tau) || math.IsInf(tau, 0) || tau < 0 {
			return nil, fmt.Errorf("optical depth at offset %g km is %g, want a finite non-negative value",
				offsetsKm[i], tau)
		}
		tr[i] = math.Exp(-tau)
	}

	t := &TransmissionTable{minKm: offsetsKm[0], maxKm: offsetsKm[len(offsetsKm)-1]}
	if err := t.pl.Fit(offsetsKm, tr); err != nil {
		return nil, fmt.Errorf("fitting transmission table: %w", err)
	}
	return t, nil
}

// Transmission returns the interpolated transmitted light fraction at the
// given radial offset. Offsets outside the tabulated range return
// ErrProfileDomain.
func (t *TransmissionTable) Transmission(offsetKm float64) (float64, error) {
	if offsetKm < t.minKm-domainSlack || offsetKm > t.maxKm+domainSlack {
		return 0, fmt.Errorf("offset %g km outside [%g, %g] km: %w",
			offsetKm, t.minKm, t.maxKm, ErrProfileDomain)
	}
	if offsetKm < t.minKm {
		offsetKm = t.minKm
	} else if offsetKm > t.maxKm {
		offsetKm = t.maxKm
	}
	return t.pl.Predict(offsetKm), nil
}

// DomainKm returns the offset range the table is valid over.
func (t *TransmissionTable) DomainKm() (minKm, maxKm float64) {
	return t.minKm, t.maxKm
}

// FlatTauSamples tabulates a constant optical depth across the full ring
// width, with n steps spanning [-width/2, +width/2].
func FlatTauSamples(tau, ringWidthKm float64, n int) (offsetsKm, opticalDepths []float64) {
	wid2 := ringWidthKm / 2.0
	offsetsKm = Linspace(-wid2, wid2, n)
	opticalDepths = make([]float64, n)
	for i := range opticalDepths {
		opticalDepths[i] = tau
	}
	return offsetsKm, opticalDepths
}

// CenterPeakedTauSamples tabulates a parabolic profile that is zero at the
// ring edges and rises to peakTau at the midline. Its soft edges produce a
// lightcurve dip free of diffraction ringing.
func CenterPeakedTauSamples(peakTau, ringWidthKm float64, n int) (offsetsKm, opticalDepths []float64) {
	return parabolicTauSamples(0.0, peakTau, ringWidthKm, n)
}

// EdgePeakedTauSamples tabulates a parabolic profile that peaks at edgeTau
// on the ring edges and falls to zero at the midline.
func EdgePeakedTauSamples(edgeTau, ringWidthKm float64, n int) (offsetsKm, opticalDepths []float64) {
	return parabolicTauSamples(edgeTau, 0.0, ringWidthKm, n)
}

// parabolicTauSamples scales the parabola offset^2 linearly so that the
// optical depth is edgeTau at the sampled edges and centerTau at the
// sampled minimum of the parabola.
func parabolicTauSamples(edgeTau, centerTau, ringWidthKm float64, n int) (offsetsKm, opticalDepths []float64) {
	wid2 := ringWidthKm / 2.0
	offsetsKm = Linspace(-wid2, wid2, n)

	pb := make([]float64, n)
	pbMax := math.Inf(-1)
	pbMin := math.Inf(1)
	for i, w := range offsetsKm {
		pb[i] = w * w
		pbMax = math.Max(pbMax, pb[i])
		pbMin = math.Min(pbMin, pb[i])
	}

	// edgeTau = m*pbMax + b, centerTau = m*pbMin + b
	m := (edgeTau - centerTau) / (pbMax - pbMin)
	b := edgeTau - m*pbMax

	opticalDepths = make([]float64, n)
	for i := range opticalDepths {
		opticalDepths[i] = m*pb[i] + b
	}
	return offsetsKm, opticalDepths
}
