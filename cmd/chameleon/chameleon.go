package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/wbrown/chameleon"
	"github.com/wbrown/chameleon/imageutil"
	"github.com/wbrown/chameleon/swatch"
	"github.com/wbrown/chameleon/theme"
)

var log = logrus.New()

func main() {
	inputFile := flag.String("input", "", "Path to the input image")
	desktop := flag.Bool("desktop", false,
		"Treat -input as a wallpaper and crop it to the display size")
	screen := flag.Bool("screen", false,
		"Capture the display instead of reading an image")
	display := flag.Int("display", 0, "Display index for -desktop and -screen")
	icon := flag.Bool("icon", false,
		"Sample with icon weights: keep alpha, skip edges and contrast repair")
	crop := flag.String("crop", "", "Crop x,y,w,h applied before sampling")
	noCropDesktop := flag.Bool("nocrop-desktop", false,
		"Do not crop -desktop wallpapers to the display size")
	paramsFile := flag.String("params", "", "JSON file with selection weights")
	minContrast := flag.Float64("min-contrast", 0,
		"Minimum foreground contrast ratio (1-21), 0 for the default")
	format := flag.String("format", "", "Color format: hex or dec")
	role := flag.String("role", "",
		"Print a single role (e.g. Background1, Light2, Luminance)")
	swatchFile := flag.String("swatch", "", "Write a PNG swatch of the theme")
	preview := flag.Bool("preview", false, "Print colored chips to the terminal")
	posterizeFile := flag.String("posterize", "",
		"Write the image with every pixel replaced by its bucket color")
	buckets := flag.Bool("buckets", false, "Print the populated buckets")
	watch := flag.Duration("watch", 0,
		"Keep running and print the theme when the image changes; screens are recaptured at this interval")
	envFile := flag.String("env", "", "Env file with CHAMELEON_* defaults")
	verbose := flag.Bool("v", false, "Enable debug logging")
	jsonLogs := flag.Bool("json", false, "Log as JSON")
	flag.Parse()

	if *jsonLogs {
		log.SetFormatter(&logrus.JSONFormatter{})
	}
	if *verbose {
		log.SetLevel(logrus.DebugLevel)
	}

	if err := loadEnv(log, *envFile); err != nil {
		log.WithError(err).Fatal("Error loading environment")
	}

	if *inputFile == "" && !*screen {
		fmt.Println("Please provide the image using the -input flag, or use -screen")
		flag.PrintDefaults()
		os.Exit(1)
	}

	src, err := buildSource(*inputFile, *desktop, *screen, *display, *icon,
		*crop, !*noCropDesktop, *paramsFile)
	if err != nil {
		log.WithError(err).Fatal("Invalid source")
	}

	contrast := *minContrast
	if !isFlagSet("min-contrast") {
		contrast, err = envFloat(os.Getenv, envMinContrast, 0)
		if err != nil {
			log.WithError(err).Fatal("Invalid minimum contrast")
		}
	}
	src.MinContrast = float32(contrast)

	colorFormat, err := theme.ParseFormat(envString(os.Getenv, envFormat, "hex"))
	if isFlagSet("format") {
		colorFormat, err = theme.ParseFormat(*format)
	}
	if err != nil {
		log.WithError(err).Fatal("Invalid format")
	}

	sampler := theme.NewSampler(theme.WithLogger(log))

	if *posterizeFile != "" || *buckets {
		opts := inspectOptions{
			posterize: *posterizeFile,
			buckets:   *buckets,
			format:    colorFormat,
		}
		if err := inspect(sampler, src, opts); err != nil {
			log.WithError(err).Fatal("Error inspecting image")
		}
		return
	}

	out := output{
		role:    *role,
		format:  colorFormat,
		swatch:  *swatchFile,
		preview: *preview,
	}

	if !isFlagSet("watch") {
		t, err := sampler.Sample(src)
		if err != nil {
			log.WithError(err).Warn("Reporting fallback colors")
		}
		if err := out.print(t); err != nil {
			log.WithError(err).Fatal("Error writing output")
		}
		return
	}

	watchSource(sampler, src, out, *watch)
}

func isFlagSet(name string) bool {
	set := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}

func buildSource(input string, desktop, screen bool, display int, icon bool,
	crop string, cropDesktop bool, paramsFile string) (theme.Source, error) {
	src := theme.Source{
		Kind:        theme.KindFile,
		Path:        input,
		Display:     display,
		CropDesktop: cropDesktop,
		ForceIcon:   icon,
	}

	switch {
	case screen:
		src.Kind = theme.KindScreen
		src.Name = fmt.Sprintf("screen%d", display)
		src.Path = ""
	case desktop:
		src.Kind = theme.KindDesktop
		src.Name = "desktop"
	default:
		src.Name = filepath.Base(input)
	}

	rect, err := parseCrop(crop)
	if err != nil {
		return src, err
	}
	src.Crop = rect

	src.Fallback, err = parseFallback(os.Getenv)
	if err != nil {
		return src, err
	}

	if paramsFile != "" {
		src.Params, err = chameleon.LoadParams(paramsFile)
		if err != nil {
			return src, err
		}
	}

	return src, nil
}

type output struct {
	role    string
	format  theme.ColorFormat
	swatch  string
	preview bool
}

func (o output) print(t *theme.Theme) error {
	switch {
	case o.role == "Luminance":
		fmt.Printf("%.4f\n", t.Luminance)
	case o.role != "":
		r, err := chameleon.ParseRole(o.role)
		if err != nil {
			return err
		}
		fmt.Println(theme.Format(t.Color(r), o.format))
	case o.preview:
		fmt.Println(swatch.Terminal(t, o.format))
	default:
		fmt.Print(swatch.Table(t, o.format))
		fmt.Printf("%-20s %.4f\n", "Luminance", t.Luminance)
	}

	if o.swatch != "" {
		if err := swatch.Save(t, swatch.DefaultOptions(), o.swatch); err != nil {
			return err
		}
		log.WithField("path", o.swatch).Info("Swatch written")
	}
	return nil
}

// watchSource prints the theme of src whenever it changes, until the
// process is interrupted.
func watchSource(sampler *theme.Sampler, src theme.Source, out output, interval time.Duration) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := sampler.Watch(ctx, src, interval, func(t *theme.Theme, err error) {
		if err != nil {
			log.WithError(err).Warn("Reporting fallback colors")
		}
		if err := out.print(t); err != nil {
			log.WithError(err).Error("Error writing output")
		}
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		log.WithError(err).Fatal("Error watching source")
	}
	log.Info("Stopping")
}

type inspectOptions struct {
	posterize string
	buckets   bool
	format    theme.ColorFormat
}

// inspect analyses src without the theme cache and reports what the
// engine saw: the populated buckets, a posterized copy, or both.
func inspect(sampler *theme.Sampler, src theme.Source, opts inspectOptions) error {
	img, err := sampler.Load(src)
	if err != nil {
		return err
	}
	e := theme.Analyze(src, img)
	f := opts.format

	if opts.buckets {
		fmt.Printf("%d pixels, %d edge pixels\n",
			int(e.PixelCount()), int(e.EdgePixelCount()))
		for i := 0; i < chameleon.BucketCount; i++ {
			b, _ := e.Bucket(i)
			if b.Count == 0 {
				continue
			}
			fmt.Printf("%2d %s count=%.4f edge=%.4f luma=%.3f\n",
				i, theme.Format(e.BucketColor(bucketPixel(i)), f), b.Count, b.EdgeCount, b.Y)
		}
	}

	if opts.posterize != "" {
		out := imageutil.Posterize(img, e.BucketColor)
		if err := imageutil.SaveImage(out, opts.posterize); err != nil {
			return err
		}
		log.WithField("path", opts.posterize).Info("Posterized image written")
	}
	return nil
}

// bucketPixel returns a pixel that quantizes into bucket i.
func bucketPixel(i int) uint32 {
	r := uint32(i>>4) & 3
	g := uint32(i>>2) & 3
	b := uint32(i) & 3
	return 0xFF000000 | r<<22 | g<<14 | b<<6
}
