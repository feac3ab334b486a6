// Command okpaint renders ROOT objects, stored as JSON, or
// TWebPainting XML documents, into SVG, PNG or PDF files.
//
// Usage:
//
//	okpaint [-config okpaint.toml] [-format svg|png|pdf|record] [-o dir] files...
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/benoitkugler/okpaint"
	"github.com/benoitkugler/okpaint/painting"
	"github.com/benoitkugler/okpaint/rootio"
	"github.com/benoitkugler/okpaint/shapes"
	"github.com/benoitkugler/okpaint/svgdraw"
	"golang.org/x/sync/errgroup"

	// backends
	_ "github.com/benoitkugler/okpaint/svgdoc"
	_ "github.com/benoitkugler/okpaint/svgpdf"
	_ "github.com/benoitkugler/okpaint/svgraster"
)

func main() {
	var (
		configFile  = flag.String("config", "", "TOML configuration file")
		format      = flag.String("format", "", "output format: "+strings.Join(svgdraw.Backends(), ", "))
		outputDir   = flag.String("o", "", "output directory")
		width       = flag.Float64("width", 0, "pad width, in pixels")
		height      = flag.Float64("height", 0, "pad height, in pixels")
		concurrency = flag.Int("j", 0, "number of files rendered concurrently")
		strict      = flag.Bool("strict", false, "fail on unsupported painting operations")
		verbose     = flag.Bool("v", false, "log debug messages")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	okpaint.SetLogger(logger)

	cfg, err := loadConfig(*configFile)
	if err != nil {
		logger.Error("loading configuration", "error", err)
		os.Exit(2)
	}
	// flags override the configuration file
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "format":
			cfg.Format = *format
		case "o":
			cfg.OutputDir = *outputDir
		case "width":
			cfg.Width = *width
		case "height":
			cfg.Height = *height
		case "j":
			cfg.Concurrency = *concurrency
		case "strict":
			if *strict {
				cfg.Painting.ErrorMode = painting.StrictErrorMode.String()
			}
		}
	})
	if err := cfg.validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(2)
	}
	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := renderAll(ctx, cfg, flag.Args()); err != nil {
		os.Exit(1)
	}
}

// renderAll renders the files concurrently. Every file is
// processed; the first error is returned.
func renderAll(ctx context.Context, cfg config, files []string) error {
	var g errgroup.Group
	g.SetLimit(cfg.Concurrency)
	for _, file := range files {
		g.Go(func() error {
			out, err := renderFile(ctx, cfg, file)
			if err != nil {
				okpaint.Logger().Error("rendering failed", "input", file, "error", err)
				return err
			}
			okpaint.Logger().Info("rendered", "input", file, "output", out)
			return nil
		})
	}
	return g.Wait()
}

var extensions = map[string]string{
	"svg":    ".svg",
	"png":    ".png",
	"pdf":    ".pdf",
	"record": ".txt",
}

// readInput decodes a JSON or XML (TWebPainting) file.
func readInput(file string) ([]shapes.Drawable, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if strings.EqualFold(filepath.Ext(file), ".xml") {
		p, err := rootio.DecodePaintingXML(f)
		if err != nil {
			return nil, err
		}
		return []shapes.Drawable{p}, nil
	}
	objs, err := rootio.Decode(f)
	if err != nil {
		return nil, err
	}
	return rootio.Drawables(objs), nil
}

// renderFile draws the objects of `input` and saves the
// result in the output directory, returning the output file name.
// Objects failing to draw do not prevent the output to be saved.
func renderFile(ctx context.Context, cfg config, input string) (string, error) {
	items, err := readInput(input)
	if err != nil {
		return "", err
	}
	opts, err := cfg.paintingOptions()
	if err != nil {
		return "", err
	}
	for i, item := range items {
		if p, ok := item.(*painting.Painting); ok {
			items[i] = p.WithOptions(opts)
		}
	}
	pal, err := cfg.palette()
	if err != nil {
		return "", err
	}

	backend, err := svgdraw.NewBackend(cfg.Format, cfg.Width, cfg.Height)
	if err != nil {
		return "", err
	}
	target := shapes.Target{
		Mapper:    cfg.mapper(),
		Backend:   backend,
		Colors:    pal,
		Precision: cfg.precision(),
	}
	drawErr := shapes.DrawAll(ctx, target, items...)

	ext, ok := extensions[cfg.Format]
	if !ok {
		ext = "." + cfg.Format
	}
	base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	out := filepath.Join(cfg.OutputDir, base+ext)
	if err := backend.SaveToFile(out); err != nil {
		return "", err
	}
	if drawErr != nil {
		return out, fmt.Errorf("%s: %w", input, drawErr)
	}
	return out, nil
}
