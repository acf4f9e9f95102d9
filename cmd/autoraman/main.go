// Command autoraman drives Raman spectrum acquisition and calibration.
//
// Usage:
//
//	autoraman <command> [flags]
//
// Commands:
//
//	acq        run an acquisition session over the profile's positions
//	calibrate  build a calibration from neon and acetonitrile spectra
//	apply      relabel a pixel-indexed spectrum with a saved calibration
//	plot       render a spectrum CSV as a PNG
//
// Examples:
//
//	autoraman acq -env testing -averages 8
//	autoraman calibrate -neon neon.csv -acetonitrile acn.csv -out cal.bin
//	autoraman apply -calibration cal.bin -in well_A1.csv -out well_A1_cm1.csv
//	autoraman plot -in well_A1_cm1.csv -out well_A1.png -xlabel "Wavenumber (cm⁻¹)"
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/cwbudde/algo-raman/acq"
	"github.com/cwbudde/algo-raman/config"
	"github.com/cwbudde/algo-raman/export"
	"github.com/cwbudde/algo-raman/measure/calib"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	var err error

	switch os.Args[1] {
	case "acq":
		err = runAcq(os.Args[2:])
	case "calibrate":
		err = runCalibrate(os.Args[2:])
	case "apply":
		err = runApply(os.Args[2:])
	case "plot":
		err = runPlot(os.Args[2:])
	case "-h", "-help", "--help", "help":
		usage()
		return
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", os.Args[1])
		usage()
		os.Exit(2)
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, "autoraman:", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: autoraman <acq|calibrate|apply|plot> [flags]")
}

func runAcq(args []string) error {
	fs := flag.NewFlagSet("acq", flag.ExitOnError)
	profilePath := fs.String("profile", "", "profile path (default ~/autoraman/profile.yml)")
	env := fs.String("env", "", "profile environment override")
	averages := fs.Int("averages", 1, "exposures to average per position")
	positionsPath := fs.String("positions", "", "Micro-Manager position list file")
	pixels := fs.Int("pixels", 2048, "detector pixel count for simulated devices")
	integrationMs := fs.Float64("integration-ms", 0, "integration time in ms")
	laserMw := fs.Float64("laser-mw", 0, "laser power in mW")
	saveDir := fs.String("out", "", "output directory override")
	verbose := fs.Bool("v", false, "verbose logging")
	fs.Parse(args)

	path := *profilePath
	if path == "" {
		var err error
		if path, err = config.DefaultPath(); err != nil {
			return err
		}
	}

	profile, err := config.Load(path, *env)
	if err != nil {
		return err
	}

	kind, err := acq.KindFromName(profile.Spectrometer)
	if err != nil {
		return fmt.Errorf("%w: %q", err, profile.Spectrometer)
	}

	dev, err := acq.NewDevice(kind, profile.Simulate, *pixels, 0)
	if err != nil {
		return err
	}

	var positions []export.StagePosition
	if *positionsPath != "" {
		if positions, err = export.ReadStagePositions(*positionsPath); err != nil {
			return err
		}
	}

	dir := profile.SaveDir
	if *saveDir != "" {
		dir = *saveDir
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	session := acq.NewSession(dev, acq.SessionConfig{
		Averages:          *averages,
		SaveDir:           dir,
		Positions:         positions,
		IntegrationTimeMs: *integrationMs,
		LaserPowerMw:      *laserMw,
		Logger:            logger,
	})

	return session.Run()
}

func runCalibrate(args []string) error {
	fs := flag.NewFlagSet("calibrate", flag.ExitOnError)
	neonPath := fs.String("neon", "", "neon lamp spectrum CSV")
	acnPath := fs.String("acetonitrile", "", "acetonitrile spectrum CSV")
	outPath := fs.String("out", "calibration.bin", "calibration output path")
	excitation := fs.Float64("excitation", calib.DefaultExcitationWavelengthNm, "excitation wavelength in nm")
	plotPath := fs.String("plot", "", "optional calibrated-axis PNG")
	fs.Parse(args)

	if *neonPath == "" || *acnPath == "" {
		return fmt.Errorf("calibrate needs -neon and -acetonitrile")
	}

	_, neon, err := export.ReadSpectrum(*neonPath)
	if err != nil {
		return err
	}

	_, acn, err := export.ReadSpectrum(*acnPath)
	if err != nil {
		return err
	}

	c := calib.New(calib.WithExcitationWavelength(*excitation))

	wavenumbers, err := c.Calibrate(neon, acn)
	if err != nil {
		return err
	}

	if err := c.Save(*outPath); err != nil {
		return err
	}

	fmt.Printf("calibrated %d pixels: %.1f to %.1f cm⁻¹, saved to %s\n",
		len(wavenumbers), wavenumbers[0], wavenumbers[len(wavenumbers)-1], *outPath)

	if *plotPath != "" {
		return export.PlotSpectrum(*plotPath, "Calibrated acetonitrile spectrum",
			"Wavenumber (cm⁻¹)", wavenumbers, acn)
	}

	return nil
}

func runApply(args []string) error {
	fs := flag.NewFlagSet("apply", flag.ExitOnError)
	calPath := fs.String("calibration", "calibration.bin", "calibration blob path")
	inPath := fs.String("in", "", "pixel-indexed spectrum CSV")
	outPath := fs.String("out", "", "wavenumber-labeled output CSV")
	fs.Parse(args)

	if *inPath == "" || *outPath == "" {
		return fmt.Errorf("apply needs -in and -out")
	}

	c := calib.New()
	if err := c.Load(*calPath); err != nil {
		return err
	}

	pixels, intensities, err := export.ReadSpectrum(*inPath)
	if err != nil {
		return err
	}

	wavenumbers, err := c.Apply(pixels)
	if err != nil {
		return err
	}

	return export.WriteSpectrum(*outPath, wavenumbers, intensities,
		[]string{"Wavenumber (cm-1)", "Intensity"})
}

func runPlot(args []string) error {
	fs := flag.NewFlagSet("plot", flag.ExitOnError)
	inPath := fs.String("in", "", "spectrum CSV")
	outPath := fs.String("out", "spectrum.png", "PNG output path")
	title := fs.String("title", "", "plot title")
	xLabel := fs.String("xlabel", "Pixel", "x axis label")
	fs.Parse(args)

	if *inPath == "" {
		return fmt.Errorf("plot needs -in")
	}

	x, y, err := export.ReadSpectrum(*inPath)
	if err != nil {
		return err
	}

	return export.PlotSpectrum(*outPath, *title, *xLabel, x, y)
}
