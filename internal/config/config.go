// Package config loads z0matrix run settings from HCL files.
//
// Every block and attribute is optional; anything left out keeps its
// default. Expressions may use the variable pi and the functions abs, min,
// max, floor and ceil:
//
//	matrix {
//	  lattice_side = 500
//	  max_iter     = 32
//	}
//	plane {
//	  re_min = -pi / 2
//	  re_max = pi / 2
//	}
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"

	"github.com/gogpu/z0matrix"
	"github.com/gogpu/z0matrix/internal/colormap"
	"github.com/gogpu/z0matrix/internal/image"
)

// DefaultTitle is the caption drawn above the picture.
const DefaultTitle = "Z0-Mandel-Matrix: Mandelbrot Variants for z0 ≠ 0"

// Progress modes.
const (
	ProgressNone = "none"
	ProgressLog  = "log"
	ProgressBar  = "bar"
)

// Log formats.
const (
	LogText = "text"
	LogJSON = "json"
)

// File is a complete run configuration.
type File struct {
	Matrix   Matrix
	Plane    Plane
	Output   Output
	Progress Progress
	Log      Log
}

// Matrix holds the lattice and iteration settings.
type Matrix struct {
	LatticeSide  int     `hcl:"lattice_side,optional"`
	PanelSize    int     `hcl:"panel_size,optional"`
	MaxIter      int     `hcl:"max_iter,optional"`
	EscapeRadius float64 `hcl:"escape_radius,optional"`
	SeedRadius   float64 `hcl:"seed_radius,optional"`
	Workers      int     `hcl:"workers,optional"`
	ChunkSize    int     `hcl:"chunk_size,optional"`
}

// Plane is the region of the c-plane sampled by every panel.
type Plane struct {
	ReMin float64 `hcl:"re_min,optional"`
	ReMax float64 `hcl:"re_max,optional"`
	ImMin float64 `hcl:"im_min,optional"`
	ImMax float64 `hcl:"im_max,optional"`
}

// Output controls the rendered picture.
type Output struct {
	Path          string `hcl:"path,optional"`
	Colormap      string `hcl:"colormap,optional"`
	Origin        string `hcl:"origin,optional"`
	Title         string `hcl:"title,optional"`
	Size          int    `hcl:"size,optional"`
	Interpolation string `hcl:"interpolation,optional"`
	RawPath       string `hcl:"raw_path,optional"`
}

// Progress selects how progress is reported.
type Progress struct {
	Mode   string `hcl:"mode,optional"`
	Listen string `hcl:"listen,optional"`
}

// Log configures the process logger.
type Log struct {
	Level  string `hcl:"level,optional"`
	Format string `hcl:"format,optional"`
}

// Default returns the settings used when no file is given.
func Default() *File {
	core := z0matrix.DefaultConfig()
	return &File{
		Matrix: Matrix{
			LatticeSide:  core.LatticeSide,
			PanelSize:    core.PanelSize,
			MaxIter:      core.MaxIter,
			EscapeRadius: core.EscapeRadius,
			SeedRadius:   core.SeedRadius,
			Workers:      core.Workers,
			ChunkSize:    core.ChunkSize,
		},
		Plane: Plane{
			ReMin: core.Plane.ReMin,
			ReMax: core.Plane.ReMax,
			ImMin: core.Plane.ImMin,
			ImMax: core.Plane.ImMax,
		},
		Output: Output{
			Path:          "z0_mandel_matrix.png",
			Colormap:      "turbo",
			Origin:        "lower",
			Title:         DefaultTitle,
			Interpolation: "nearest",
		},
		Progress: Progress{Mode: ProgressLog},
		Log:      Log{Level: "info", Format: LogText},
	}
}

// rawFile captures each top-level block body; blocks are decoded one by
// one onto the defaults so absent attributes keep their values.
type rawFile struct {
	Matrix   []rawBlock `hcl:"matrix,block"`
	Plane    []rawBlock `hcl:"plane,block"`
	Output   []rawBlock `hcl:"output,block"`
	Progress []rawBlock `hcl:"progress,block"`
	Log      []rawBlock `hcl:"log,block"`
}

type rawBlock struct {
	Body hcl.Body `hcl:",remain"`
}

// evalContext exposes pi and a few numeric helpers to expressions.
func evalContext() *hcl.EvalContext {
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"pi": cty.NumberFloatVal(math.Pi),
		},
		Functions: map[string]function.Function{
			"abs":   stdlib.AbsoluteFunc,
			"min":   stdlib.MinFunc,
			"max":   stdlib.MaxFunc,
			"floor": stdlib.FloorFunc,
			"ceil":  stdlib.CeilFunc,
		},
	}
}

// Load reads and parses the HCL file at path.
func Load(path string) (*File, error) {
	src, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(src, path)
}

// Parse parses HCL source. filename is used in diagnostics only.
// The result is not validated; call Validate.
func Parse(src []byte, filename string) (*File, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("config: failed to parse %s: %w", filename, diags)
	}

	var root rawFile
	if diags := gohcl.DecodeBody(hclFile.Body, nil, &root); diags.HasErrors() {
		return nil, fmt.Errorf("config: failed to decode %s: %w", filename, diags)
	}

	f := Default()
	ctx := evalContext()
	blocks := []struct {
		name   string
		blocks []rawBlock
		target any
	}{
		{"matrix", root.Matrix, &f.Matrix},
		{"plane", root.Plane, &f.Plane},
		{"output", root.Output, &f.Output},
		{"progress", root.Progress, &f.Progress},
		{"log", root.Log, &f.Log},
	}
	for _, b := range blocks {
		if len(b.blocks) > 1 {
			return nil, fmt.Errorf("config: %s: block %q defined %d times", filename, b.name, len(b.blocks))
		}
		for _, blk := range b.blocks {
			if diags := gohcl.DecodeBody(blk.Body, ctx, b.target); diags.HasErrors() {
				return nil, fmt.Errorf("config: failed to decode %s block in %s: %w", b.name, filename, diags)
			}
		}
	}

	return f, nil
}

// Core returns the compositor configuration.
func (f *File) Core() z0matrix.Config {
	return z0matrix.Config{
		LatticeSide:  f.Matrix.LatticeSide,
		PanelSize:    f.Matrix.PanelSize,
		MaxIter:      f.Matrix.MaxIter,
		EscapeRadius: f.Matrix.EscapeRadius,
		SeedRadius:   f.Matrix.SeedRadius,
		Plane: z0matrix.Bounds{
			ReMin: f.Plane.ReMin,
			ReMax: f.Plane.ReMax,
			ImMin: f.Plane.ImMin,
			ImMax: f.Plane.ImMax,
		},
		Workers:   f.Matrix.Workers,
		ChunkSize: f.Matrix.ChunkSize,
	}
}

// Validate checks every setting and reports all problems at once. The
// returned error wraps z0matrix.ErrInvalidConfig.
func (f *File) Validate() error {
	var errs []error
	invalid := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{z0matrix.ErrInvalidConfig}, args...)...))
	}

	if err := f.Core().Validate(); err != nil {
		errs = append(errs, err)
	}

	if _, err := image.FormatFromPath(f.Output.Path); err != nil {
		invalid("output path %q: %v", f.Output.Path, err)
	}
	if f.Output.RawPath != "" && f.Output.RawPath == f.Output.Path {
		invalid("output raw_path must differ from path")
	}
	if _, err := colormap.Lookup(f.Output.Colormap); err != nil {
		invalid("%v", err)
	}
	if _, err := colormap.ParseOrigin(f.Output.Origin); err != nil {
		invalid("%v", err)
	}
	if _, err := image.ParseInterpolation(f.Output.Interpolation); err != nil {
		invalid("%v", err)
	}
	if f.Output.Size < 0 || f.Output.Size > z0matrix.MaxCanvasSide {
		invalid("output size %d must be between 0 and %d", f.Output.Size, z0matrix.MaxCanvasSide)
	}

	switch f.Progress.Mode {
	case ProgressNone, ProgressLog, ProgressBar:
	default:
		invalid("progress mode %q (want none, log or bar)", f.Progress.Mode)
	}

	if _, err := f.LogLevel(); err != nil {
		invalid("%v", err)
	}
	switch strings.ToLower(f.Log.Format) {
	case LogText, LogJSON:
	default:
		invalid("log format %q (want text or json)", f.Log.Format)
	}

	return errors.Join(errs...)
}

// LogLevel parses Log.Level.
func (f *File) LogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(f.Log.Level)); err != nil {
		return 0, fmt.Errorf("log level %q: %w", f.Log.Level, err)
	}
	return level, nil
}
