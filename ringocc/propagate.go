package ringocc

import (
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"
)

// ImagTolerance is the largest residual imaginary magnitude in the squared
// observer field that is regarded as floating-point noise. A larger residual
// indicates an upstream asymmetry bug, not physics; callers may report it
// but the real part is still taken.
const ImagTolerance = 1e-9

// Propagate computes the observer-plane intensity field from a transmission
// aperture using Trester's modified-aperture method: the observer E-field is
// the Fourier transform of the aperture times exp((ik/2z)*(x^2+y^2)). With
// the sampling convention of BuildRingAperture, npts = lam*z in grid units,
// so the phase term reduces to exp((i*pi/npts)*(y^2+x^2)) and wavelength and
// distance never need to be re-derived here.
//
// The returned intensity is Re(E * conj(E)), cyclically shifted by npts/2
// along both axes so the on-axis (undiffracted) term sits at the geometric
// center, matching the aperture's own centering. The absolute scale is
// arbitrary; remove it downstream with baseline normalization.
//
// imagResidual reports the largest |Im(E * conj(E))| encountered. It is
// non-fatal and may be compared against ImagTolerance.
func Propagate(ap [][]float64) (intensity [][]float64, imagResidual float64, err error) {
	npts := len(ap)
	if npts == 0 || npts%2 != 0 {
		return nil, 0, ErrApertureShape
	}
	for _, row := range ap {
		if len(row) != npts {
			return nil, 0, ErrApertureShape
		}
	}

	n2 := npts / 2

	// Modified aperture M = ap * eTerm on index grids centered at n2.
	M := make([][]complex128, npts)
	for row := range M {
		M[row] = make([]complex128, npts)
		y := float64(row - n2)
		for col := range M[row] {
			x := float64(col - n2)
			phase := math.Pi / float64(npts) * (y*y + x*x)
			M[row][col] = complex(ap[row][col], 0) * cmplx.Exp(complex(0, phase))
		}
	}

	fft2InPlace(M)

	// Intensity with the zero-frequency term rolled from (0,0) to (n2,n2).
	intensity = make([][]float64, npts)
	for row := range intensity {
		intensity[row] = make([]float64, npts)
	}
	for row := 0; row < npts; row++ {
		for col := 0; col < npts; col++ {
			e := M[row][col]
			p := e * cmplx.Conj(e)
			if im := math.Abs(imag(p)); im > imagResidual {
				imagResidual = im
			}
			intensity[(row+n2)%npts][(col+n2)%npts] = real(p)
		}
	}
	return intensity, imagResidual, nil
}

// fft2InPlace applies an unnormalized forward 2D FFT, rows then columns,
// using Gonum's CmplxFFT. The matrix must be square.
func fft2InPlace(a [][]complex128) {
	n := len(a)
	fft := fourier.NewCmplxFFT(n)

	// rows
	tmp := make([]complex128, n)
	for y := 0; y < n; y++ {
		copy(tmp, a[y])
		fft.Coefficients(tmp, tmp)
		copy(a[y], tmp)
	}

	// cols
	col := make([]complex128, n)
	for x := 0; x < n; x++ {
		for y := 0; y < n; y++ {
			col[y] = a[y][x]
		}
		fft.Coefficients(col, col)
		for y := 0; y < n; y++ {
			a[y][x] = col[y]
		}
	}
}
