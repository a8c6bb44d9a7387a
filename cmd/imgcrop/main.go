// Command imgcrop rotates, mirrors, crops and grays an image without a window.
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"image-view/internal/crop"
	viewimage "image-view/internal/image"
	"image-view/internal/version"
	"image-view/internal/viewer"
	"image-view/pkg/geometry"
)

type options struct {
	in, out   string
	selection string
	rotate    int
	mirror    bool
	gray      bool
	fit       string
	verbose   bool
}

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	var opts options
	flag.StringVar(&opts.in, "in", "", "Input image: "+viewimage.FileFilter())
	flag.StringVar(&opts.out, "out", "", "Output image (format from extension)")
	flag.StringVar(&opts.selection, "select", "", "Crop rectangle x,y,w,h in the transformed image")
	flag.IntVar(&opts.rotate, "rotate", 0, "Rotate clockwise: 90, 180 or 270")
	flag.BoolVar(&opts.mirror, "mirror", false, "Mirror horizontally")
	flag.BoolVar(&opts.gray, "gray", false, "Convert to grayscale")
	flag.StringVar(&opts.fit, "fit", "", "Scale the result to fit WxH")
	flag.BoolVar(&opts.verbose, "v", false, "Verbose logging")
	showVersion := flag.Bool("version", false, "Print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(version.String())
		return
	}
	if opts.in == "" || opts.out == "" {
		fmt.Println("Usage: imgcrop -in <path> -out <path> [-rotate 90|180|270] [-mirror] [-select x,y,w,h] [-gray] [-fit WxH]")
		os.Exit(1)
	}

	if err := run(opts); err != nil {
		fmt.Fprintf(os.Stderr, "imgcrop: %v\n", err)
		os.Exit(1)
	}
}

func run(opts options) error {
	logger := slog.New(slog.DiscardHandler)
	if opts.verbose {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	layer, err := viewimage.Load(opts.in)
	if err != nil {
		return err
	}
	fmt.Printf("Loaded %s image: %dx%d pixels\n", layer.Format, layer.Width(), layer.Height())

	v := viewer.New(viewer.WithLogger(logger))
	defer v.Close()
	v.SetImage(layer.Image)

	switch opts.rotate {
	case 0:
	case 90:
		v.Rotate90()
	case 180:
		v.Rotate90()
		v.Rotate90()
	case 270:
		v.Rotate270()
	default:
		return fmt.Errorf("invalid rotation %d: want 90, 180 or 270", opts.rotate)
	}
	if opts.mirror {
		v.Mirror()
	}

	if opts.selection != "" {
		r, err := parseRect(opts.selection)
		if err != nil {
			return err
		}
		if !v.CommitSelection(float64(r.X), float64(r.Y), float64(r.Right()), float64(r.Bottom())) {
			return fmt.Errorf("selection %s rejected: smaller than %dx%d or outside %v",
				r, crop.MinSize, crop.MinSize, v.ImageSize())
		}
		if src, ok := v.SourceCrop(); ok {
			fmt.Printf("Crop %s (source %s)\n", v.Crop(), src)
		}
	}

	if opts.gray {
		if err := v.ApplyGrayscale(); err != nil {
			return err
		}
	}

	out, ok := v.VisibleRegion()
	if !ok {
		return fmt.Errorf("no image")
	}
	if opts.fit != "" {
		box, err := parseSize(opts.fit)
		if err != nil {
			return err
		}
		fit, ok := geometry.FitSize(geometry.NewSize(out.Bounds().Dx(), out.Bounds().Dy()), box)
		if !ok {
			return fmt.Errorf("invalid fit %q", opts.fit)
		}
		out = viewimage.Resize(out, fit.Display.Width, fit.Display.Height, viewimage.QualityHigh)
	}

	if err := viewimage.Save(opts.out, out); err != nil {
		return err
	}
	fmt.Printf("Wrote %s: %dx%d pixels\n", opts.out, out.Bounds().Dx(), out.Bounds().Dy())
	return nil
}

// parseRect parses "x,y,w,h".
func parseRect(s string) (geometry.Rect, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return geometry.Rect{}, fmt.Errorf("invalid selection %q: want x,y,w,h", s)
	}
	var vals [4]int
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return geometry.Rect{}, fmt.Errorf("invalid selection %q: %w", s, err)
		}
		vals[i] = n
	}
	return geometry.NewRect(vals[0], vals[1], vals[2], vals[3]), nil
}

// parseSize parses "WxH".
func parseSize(s string) (geometry.Size, error) {
	w, h, ok := strings.Cut(strings.ToLower(s), "x")
	if !ok {
		return geometry.Size{}, fmt.Errorf("invalid size %q: want WxH", s)
	}
	width, err := strconv.Atoi(w)
	if err != nil {
		return geometry.Size{}, fmt.Errorf("invalid size %q: %w", s, err)
	}
	height, err := strconv.Atoi(h)
	if err != nil {
		return geometry.Size{}, fmt.Errorf("invalid size %q: %w", s, err)
	}
	return geometry.NewSize(width, height), nil
}
