package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net"
	"time"

	"github.com/gogpu/z0matrix"
	"github.com/gogpu/z0matrix/internal/canvasio"
	"github.com/gogpu/z0matrix/internal/colormap"
	"github.com/gogpu/z0matrix/internal/config"
	"github.com/gogpu/z0matrix/internal/image"
	"github.com/gogpu/z0matrix/internal/progress"
)

// run is the whole program; main only maps its error to an exit status.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	opts, err := parseArgs(args, stderr)
	if err != nil || opts == nil {
		return err
	}
	if opts.version {
		fmt.Fprintln(stdout, "z0matrix", z0matrix.Version)
		return nil
	}

	f := opts.file
	logger := newLogger(f, stderr)
	z0matrix.SetLogger(logger)
	defer z0matrix.SetLogger(nil)

	reporter, stopServer, err := startProgress(ctx, f, logger, stderr)
	if err != nil {
		return err
	}
	defer stopServer()

	var (
		canvas  *z0matrix.Raster
		maxIter int
	)
	if opts.fromRaw != "" {
		canvas, maxIter, err = canvasio.ReadFile(opts.fromRaw)
		if err != nil {
			return err
		}
		logger.Info("z0matrix: loaded canvas", "path", opts.fromRaw,
			"canvas", fmt.Sprintf("%dx%d", canvas.Width, canvas.Height), "max_iter", maxIter)
	} else {
		c, err := z0matrix.NewCompositor(f.Core(), z0matrix.WithProgress(reporter))
		if err != nil {
			return usageError(err)
		}
		canvas, err = c.Compose(ctx)
		if err != nil {
			return err
		}
		maxIter = f.Matrix.MaxIter
	}

	if f.Output.RawPath != "" {
		if err := canvasio.WriteFile(f.Output.RawPath, canvas, maxIter); err != nil {
			return err
		}
		logger.Info("z0matrix: wrote canvas dump", "path", f.Output.RawPath)
	}

	return render(canvas, f.Output, logger)
}

// render colours, resizes, titles and saves the canvas.
func render(canvas *z0matrix.Raster, out config.Output, logger *slog.Logger) error {
	start := time.Now()

	// Validated by config.File.Validate.
	cmap, err := colormap.Lookup(out.Colormap)
	if err != nil {
		return usageError(err)
	}
	origin, err := colormap.ParseOrigin(out.Origin)
	if err != nil {
		return usageError(err)
	}
	interp, err := image.ParseInterpolation(out.Interpolation)
	if err != nil {
		return usageError(err)
	}

	lo, hi := canvas.MinMax()
	img := colormap.ColorizeRange(canvas, cmap, lo, hi, origin)

	fig := image.Figure{Size: out.Size, Interpolation: interp, Title: out.Title}
	pic, err := fig.Render(img)
	if err != nil {
		return err
	}

	if err := image.Save(out.Path, pic); err != nil {
		return err
	}

	logger.Info("z0matrix: wrote image",
		"path", out.Path,
		"size", fmt.Sprintf("%dx%d", pic.Bounds().Dx(), pic.Bounds().Dy()),
		"colormap", cmap.Name(),
		"range", fmt.Sprintf("[%g, %g]", lo, hi),
		"elapsed", time.Since(start))
	return nil
}

// startProgress assembles the reporters chosen in f. When a listen address
// is set the WebSocket server runs until the returned stop function is
// called.
func startProgress(ctx context.Context, f *config.File, logger *slog.Logger, stderr io.Writer) (z0matrix.Progress, func(), error) {
	var reporters []z0matrix.Progress
	switch f.Progress.Mode {
	case config.ProgressLog:
		reporters = append(reporters, progress.NewLog(logger, progress.DefaultStep))
	case config.ProgressBar:
		reporters = append(reporters, progress.NewBar(stderr))
	}

	if f.Progress.Listen == "" {
		return progress.Multi(reporters...), func() {}, nil
	}

	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", f.Progress.Listen)
	if err != nil {
		return nil, nil, fmt.Errorf("progress listener: %w", err)
	}

	b := progress.NewBroadcaster()
	serveCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := b.ServeListener(serveCtx, ln); err != nil {
			logger.Warn("z0matrix: progress server stopped", "err", err)
		}
	}()

	stop := func() {
		cancel()
		<-done
	}
	return progress.Multi(append(reporters, b)...), stop, nil
}
