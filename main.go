package main

import (
	"fmt"
	"os"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	json "github.com/KevinWang15/go-json5"

	"github.com/bob-anderson-ok/RingOccDiffraction/ringocc"
)

// !!!!! This MUST match the app name given in the run configuration !!!!!
const version = "1_0_0"

// !!!!! This MUST match the app name given in the run configuration !!!!!

const auToKm = 1.495979e+8

type RingOccEvent struct {
	Title                 string
	ShowInput             bool
	WindowSizePixels      int
	WavelengthMicrons     float64
	DistanceAu            float64
	DistanceKm            float64
	NumPoints             int
	RingWidthKm           float64
	ProfileType           string
	Tau                   float64
	ProfileSteps          int
	PathToProfileTable    string
	ProfileTable          [][2]float64
	EventVelocityKmPerSec float64
	BaselinePoints        int
}

func main() {

	programStart := time.Now()

	// We supply an ID (hopefully unique) because we may need to use the preferences API
	myApp := app.NewWithID("com.gmail.ok.anderson.bob.ringocc")
	w := myApp.NewWindow("RingOccDiffractionApp - ring occultation lightcurve simulator")
	w.Resize(fyne.Size{Height: 800, Width: 1200})

	args := os.Args

	if len(args) != 2 {
		fmt.Println("\n\tWrong number of arguments.\n\tUsage: RingOccDiffractionApp <parameter-file>")
		os.Exit(1)
	}

	path := args[1]

	// Read the Json5 (or Json) parameter file
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Println(fmt.Errorf("\n\tAttempt to read input file %q failed: %w\n", path, err))
		os.Exit(2)
	}

	// Parse json(5) data into a generic container
	var jsonTable map[string]interface{}
	err = json.Unmarshal(data, &jsonTable)
	if err != nil {
		fmt.Println(fmt.Errorf("\n\tFormat error in file %q: %w\n", path, err))
		os.Exit(3)
	}

	var event RingOccEvent
	msg, ok := validateJsonFileAndFillEvent(jsonTable, &event)
	if !ok {
		fmt.Println(msg)
		os.Exit(4)
	}

	// Check for user wanting printout of complete jsonTable
	if event.ShowInput {
		fmt.Printf("%s", "\nPrintout of  complete jsonTable contents...\n")
		fmt.Println(string(data))
	}

	// If a path to a profile table json file was given, read it
	if event.PathToProfileTable != "" {
		data, err := os.ReadFile(event.PathToProfileTable)
		if err != nil {
			fmt.Println(fmt.Errorf("\n\tAttempt to read file %q failed: %w\n", event.PathToProfileTable, err))
			os.Exit(5)
		}
		var profileTable [][2]float64
		profileTable, err = parseArrayFormat(data)
		if err != nil {
			fmt.Println(fmt.Errorf("\n\tError reading profile table file %q: %w\n", event.PathToProfileTable, err))
			os.Exit(6)
		}
		if len(profileTable) < 2 {
			fmt.Println(fmt.Errorf("\n\tThe profile table file %q needs at least two entries.", event.PathToProfileTable))
			os.Exit(7)
		}
		event.ProfileTable = profileTable
	}

	// Sanity checks on the aperture dimensions
	if event.NumPoints < 16 {
		fmt.Println(fmt.Errorf("\n\tThe aperture must be at least 16 points on a side."))
		os.Exit(8)
	}
	if event.NumPoints%2 != 0 {
		fmt.Println(fmt.Errorf("\n\tThe aperture side length must be even."))
		os.Exit(8)
	}

	Npts := event.NumPoints // Just a shorthand version

	fmt.Printf("\nVersion %s\n\n", version)

	// A distance in km takes priority; otherwise convert from AU.
	distanceKm := event.DistanceKm
	if distanceKm == 0.0 {
		distanceKm = event.DistanceAu * auToKm
	}

	if distanceKm <= 0.0 {
		fmt.Println(fmt.Errorf("\n\tDistance given is invalid."))
		os.Exit(9)
	}
	if event.WavelengthMicrons <= 0.0 {
		fmt.Println(fmt.Errorf("\n\tWavelength must be positive."))
		os.Exit(9)
	}
	if event.RingWidthKm <= 0.0 {
		fmt.Println(fmt.Errorf("\n\tRing width must be positive."))
		os.Exit(9)
	}
	if event.EventVelocityKmPerSec <= 0.0 {
		fmt.Println(fmt.Errorf("\n\tEvent velocity must be positive."))
		os.Exit(9)
	}

	start := time.Now() // Time generation of the transmission profile

	offsets, taus, err := buildProfileSamples(event)
	if err != nil {
		fmt.Println(fmt.Errorf("\n\tBuilding the radial profile failed: %w", err))
		os.Exit(10)
	}

	table, err := ringocc.NewTransmissionTable(offsets, taus)
	if err != nil {
		fmt.Println(fmt.Errorf("\n\tBuilding the transmission table failed: %w", err))
		os.Exit(10)
	}

	MakeProfilePlot(offsets, taus, "ringProfile.png")

	aperture, fovKm, gridSizeKm, err := ringocc.BuildRingAperture(
		event.WavelengthMicrons, distanceKm, Npts, event.RingWidthKm, table.Transmission)
	if err != nil {
		fmt.Println(fmt.Errorf("\n\tBuilding the ring aperture failed: %w", err))
		os.Exit(11)
	}

	elapsed := time.Since(start)
	fmt.Printf("Generation of the ring aperture took %s\n\n", elapsed)

	fmt.Printf("Field of view is %0.3f km\n", fovKm)
	fmt.Printf("Resolution in the aperture plane is %0.4f km/pixel\n", gridSizeKm)
	fresnelScale := ringocc.FresnelScale(event.WavelengthMicrons, distanceKm)
	fmt.Printf("Fresnel scale is %0.3f km\n", fresnelScale)
	samplesPerFresnelScale := int(fresnelScale / gridSizeKm)
	fmt.Printf("Samples per Fresnel scale is %d  (To see diffraction effects, this number should be at least 5)\n\n", samplesPerFresnelScale)

	start = time.Now()
	intensity, imagResidual, err := ringocc.Propagate(aperture)
	if err != nil {
		fmt.Println(fmt.Errorf("\n\tPropagation to the observer plane failed: %w", err))
		os.Exit(12)
	}
	elapsed = time.Since(start)
	fmt.Printf("Calculation of the observation intensity took %s\n", elapsed)

	if imagResidual > ringocc.ImagTolerance {
		// Non-fatal: the real part is still valid, but an upstream asymmetry is suspect.
		fmt.Printf("Warning: imaginary residual %g in the squared field exceeds %g\n", imagResidual, ringocc.ImagTolerance)
	}

	points, baseline, err := ringocc.ExtractLightcurve(intensity, gridSizeKm, event.EventVelocityKmPerSec, event.BaselinePoints)
	if err != nil {
		fmt.Println(fmt.Errorf("\n\tLightcurve extraction failed: %w", err))
		os.Exit(13)
	}
	ringocc.NormalizeField(intensity, baseline)

	// Make a user-friendly .png of the observation intensity matrix
	imgForDisplay, err := MatrixToGrayViewPercentile(intensity, 0.0, 100)
	if err != nil {
		fmt.Println(fmt.Errorf("creation of the display image failed: %w", err))
		os.Exit(14)
	}

	err = SaveGrayPNG("observerField8bit.png", imgForDisplay)
	if err != nil {
		fmt.Println(fmt.Errorf("writing of %q failed: %w", "observerField8bit.png", err))
		os.Exit(15)
	}

	// Make the scientific (well-defined scaling) version of the intensity matrix
	occultImage, err := MatrixToGray16Data(intensity, 4000)
	if err != nil {
		fmt.Println(fmt.Errorf("creation of occultImage failed: %w", err))
		os.Exit(16)
	}

	err = SaveGray16PNG("observerField16bit.png", occultImage)
	if err != nil {
		fmt.Println(fmt.Errorf("writing of %q failed: %w", "observerField16bit.png", err))
		os.Exit(17)
	}

	plotImage, err := makeLightcurvePlotImage(points, 1200, 500, event)
	if err != nil {
		fmt.Println(fmt.Errorf("creation of the lightcurve plot failed: %w", err))
		os.Exit(18)
	}

	err = saveImagePNG("ringLightcurve.png", plotImage)
	if err != nil {
		fmt.Println(fmt.Errorf("writing of %q failed: %w", "ringLightcurve.png", err))
		os.Exit(19)
	}

	elapsed = time.Since(programStart)
	fmt.Printf("\nTotal program run time is %s\n", elapsed)

	if event.WindowSizePixels > 0 { // We have lots of displays to make!
		size := event.WindowSizePixels

		winTitle := event.Title
		if winTitle == "" {
			winTitle = fmt.Sprintf("Ring occultation (%s profile)", event.ProfileType)
		}

		// w is our main window, created at the beginning of the program
		w.SetTitle(winTitle)
		w.SetPadded(false)
		w.CenterOnScreen()

		img := canvas.NewImageFromFile("observerField8bit.png")

		img.FillMode = canvas.ImageFillContain
		w.Resize(fyne.Size{Height: float32(size), Width: float32(size)})

		w.SetContent(container.NewStack(img))
		w.Show()

		plotImg := canvas.NewImageFromImage(plotImage)
		plotImg.FillMode = canvas.ImageFillContain
		plotImg.SetMinSize(fyne.NewSize(1200, 500))

		w2 := myApp.NewWindow("Ring occultation lightcurve")
		w2.SetContent(container.NewCenter(plotImg))
		w2.Resize(fyne.NewSize(950, 550))
		w2.Show()

		profileImg := canvas.NewImageFromFile("ringProfile.png")
		profileImg.FillMode = canvas.ImageFillContain
		profileImg.SetMinSize(fyne.NewSize(1200, 500))

		w3 := myApp.NewWindow("Radial ring profile")
		w3.SetContent(container.NewCenter(profileImg))
		w3.Resize(fyne.NewSize(950, 550))
		w3.Show()

		w.ShowAndRun()
	}
}

// buildProfileSamples turns the parameter file's profile selection into
// (offset, optical depth) samples spanning the full ring width.
func buildProfileSamples(event RingOccEvent) (offsetsKm, taus []float64, err error) {
	switch event.ProfileType {
	case "flat":
		offsetsKm, taus = ringocc.FlatTauSamples(event.Tau, event.RingWidthKm, event.ProfileSteps)
	case "center_peaked":
		offsetsKm, taus = ringocc.CenterPeakedTauSamples(event.Tau, event.RingWidthKm, event.ProfileSteps)
	case "edge_peaked":
		offsetsKm, taus = ringocc.EdgePeakedTauSamples(event.Tau, event.RingWidthKm, event.ProfileSteps)
	case "table":
		offsetsKm = make([]float64, len(event.ProfileTable))
		taus = make([]float64, len(event.ProfileTable))
		for i, pair := range event.ProfileTable {
			offsetsKm[i] = pair[0]
			taus[i] = pair[1]
		}
	default:
		return nil, nil, fmt.Errorf("unknown profile type %q", event.ProfileType)
	}
	return offsetsKm, taus, nil
}
