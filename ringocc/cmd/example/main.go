// Example program demonstrating how to use the ringocc package to:
// 1. Build four radial ring profiles (flat tau=0.1, flat tau=1.0,
//    centrally peaked, edge peaked)
// 2. Build the diffracting aperture for each and propagate it to the
//    observer's plane
// 3. Extract normalized lightcurves and report their dip depths
//
// Usage:
//
//	go run main.go
//
// The parameters reproduce the reference event: 0.5 micron light, a ring
// at 43 AU, a 46 km wide ring, and a 5.8 km/s event velocity.
package main

import (
	"fmt"
	"log"
	"math"
	"time"

	"github.com/bob-anderson-ok/RingOccDiffraction/ringocc"
)

func main() {
	fmt.Println("Ring Occultation Lightcurve Example")
	fmt.Println("===================================")

	const (
		wavelengthMicrons = 0.5
		distanceKm        = 43 * 1.5e8
		npts              = 1024
		ringWidthKm       = 46.0
		nRad              = 100
		eventVelocity     = 5.8 // km/s
		baselineWindow    = 50
	)

	type namedProfile struct {
		name          string
		offsets, taus []float64
	}

	flat01Off, flat01Tau := ringocc.FlatTauSamples(0.1, ringWidthKm, nRad)
	flat10Off, flat10Tau := ringocc.FlatTauSamples(1.0, ringWidthKm, nRad)
	cpOff, cpTau := ringocc.CenterPeakedTauSamples(0.1, ringWidthKm, nRad)
	seOff, seTau := ringocc.EdgePeakedTauSamples(0.1, ringWidthKm, nRad)

	profiles := []namedProfile{
		{"flat tau=0.1", flat01Off, flat01Tau},
		{"flat tau=1.0", flat10Off, flat10Tau},
		{"centrally peaked tau=0.1", cpOff, cpTau},
		{"edge peaked tau=0.1", seOff, seTau},
	}

	fmt.Printf("\nFresnel scale: %0.3f km\n", ringocc.FresnelScale(wavelengthMicrons, distanceKm))

	for _, prof := range profiles {
		table, err := ringocc.NewTransmissionTable(prof.offsets, prof.taus)
		if err != nil {
			log.Fatalf("%s: building the transmission table: %v", prof.name, err)
		}

		ap, fov, grid, err := ringocc.BuildRingAperture(wavelengthMicrons, distanceKm, npts, ringWidthKm, table.Transmission)
		if err != nil {
			log.Fatalf("%s: building the aperture: %v", prof.name, err)
		}

		start := time.Now()
		field, residual, err := ringocc.Propagate(ap)
		if err != nil {
			log.Fatalf("%s: propagating: %v", prof.name, err)
		}
		elapsed := time.Since(start)

		if residual > ringocc.ImagTolerance {
			log.Printf("%s: warning: imaginary residual %g exceeds %g", prof.name, residual, ringocc.ImagTolerance)
		}

		points, _, err := ringocc.ExtractLightcurve(field, grid, eventVelocity, baselineWindow)
		if err != nil {
			log.Fatalf("%s: extracting the lightcurve: %v", prof.name, err)
		}

		minFlux := math.Inf(1)
		maxFlux := math.Inf(-1)
		tAtMin := 0.0
		for _, p := range points {
			if p.Flux < minFlux {
				minFlux = p.Flux
				tAtMin = p.TimeSec
			}
			maxFlux = math.Max(maxFlux, p.Flux)
		}

		fmt.Printf("\n%s\n", prof.name)
		fmt.Printf("  field of view %0.1f km, grid %0.4f km, propagation took %s\n", fov, grid, elapsed)
		fmt.Printf("  dip minimum %0.3f at t=%0.2f s, peak flux %0.3f\n", minFlux, tAtMin, maxFlux)
	}

	fmt.Println("\nDone!")
}
