package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/gogpu/z0matrix/internal/config"
)

// ExitError carries the process exit status for an error.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string { return e.Err.Error() }

func (e *ExitError) Unwrap() error { return e.Err }

func usageError(err error) error {
	return &ExitError{Code: 2, Err: err}
}

// options is the parsed command line.
type options struct {
	file    *config.File
	fromRaw string
	version bool
}

// parseArgs builds the run configuration: defaults, then the -config file,
// then every flag given explicitly. It returns (nil, nil) when help was
// requested.
func parseArgs(args []string, output io.Writer) (*options, error) {
	def := config.Default()

	fs := flag.NewFlagSet("z0matrix", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.Usage = func() {
		fmt.Fprint(output, `
z0matrix - renders an N×N matrix of Mandelbrot variants, one per seed z0.

Usage:
  z0matrix [options]

Options:
`)
		fs.PrintDefaults()
	}

	var (
		configPath = fs.String("config", "", "HCL configuration file.")
		n          = fs.Int("n", def.Matrix.LatticeSide, "Seeds per lattice side (N).")
		panel      = fs.Int("panel", def.Matrix.PanelSize, "Panel side in pixels (P).")
		iter       = fs.Int("iter", def.Matrix.MaxIter, "Maximum iterations per cell.")
		radius     = fs.Float64("radius", def.Matrix.EscapeRadius, "Escape radius.")
		seedRadius = fs.Float64("seed-radius", def.Matrix.SeedRadius, "Seeds span [-r, r] on both axes.")
		workers    = fs.Int("workers", def.Matrix.Workers, "Worker goroutines. 0 uses GOMAXPROCS.")
		out        = fs.String("out", def.Output.Path, "Output image (.png, .jpg, .tiff, .bmp).")
		cmap       = fs.String("cmap", def.Output.Colormap, "Colormap: turbo, viridis, plasma, magma, inferno, gray.")
		origin     = fs.String("origin", def.Output.Origin, "Where canvas row 0 goes: 'lower' or 'upper'.")
		title      = fs.String("title", def.Output.Title, "Caption above the image. Empty disables the band.")
		size       = fs.Int("size", def.Output.Size, "Longest image side in pixels. 0 keeps the canvas size.")
		raw        = fs.String("raw", def.Output.RawPath, "Also write the float canvas to this zstd dump.")
		fromRaw    = fs.String("from-raw", "", "Render from a canvas dump instead of computing.")
		mode       = fs.String("progress", def.Progress.Mode, "Progress output: 'none', 'log' or 'bar'.")
		listen     = fs.String("listen", def.Progress.Listen, "Serve progress over WebSocket on this address.")
		logLevel   = fs.String("log-level", def.Log.Level, "Logging level: 'debug', 'info', 'warn', 'error'.")
		logFormat  = fs.String("log-format", def.Log.Format, "Log output format: 'text' or 'json'.")
		version    = fs.Bool("version", false, "Print the version and exit.")
	)

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, nil
		}
		return nil, usageError(err)
	}
	if fs.NArg() > 0 {
		return nil, usageError(fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " ")))
	}

	opts := &options{file: def, fromRaw: *fromRaw, version: *version}
	if *version {
		return opts, nil
	}

	if *configPath != "" {
		f, err := config.Load(*configPath)
		if err != nil {
			return nil, usageError(err)
		}
		opts.file = f
	}

	f := opts.file
	fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "n":
			f.Matrix.LatticeSide = *n
		case "panel":
			f.Matrix.PanelSize = *panel
		case "iter":
			f.Matrix.MaxIter = *iter
		case "radius":
			f.Matrix.EscapeRadius = *radius
		case "seed-radius":
			f.Matrix.SeedRadius = *seedRadius
		case "workers":
			f.Matrix.Workers = *workers
		case "out":
			f.Output.Path = *out
		case "cmap":
			f.Output.Colormap = *cmap
		case "origin":
			f.Output.Origin = *origin
		case "title":
			f.Output.Title = *title
		case "size":
			f.Output.Size = *size
		case "raw":
			f.Output.RawPath = *raw
		case "progress":
			f.Progress.Mode = *mode
		case "listen":
			f.Progress.Listen = *listen
		case "log-level":
			f.Log.Level = *logLevel
		case "log-format":
			f.Log.Format = *logFormat
		}
	})

	if err := f.Validate(); err != nil {
		return nil, usageError(err)
	}
	return opts, nil
}
