package cli

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/dixieflatline76/Polish/config"
	"github.com/dixieflatline76/Polish/pkg/enhance"
	"github.com/dixieflatline76/Polish/pkg/umask"
	"github.com/spf13/pflag"
)

// ErrUsage means too few positional arguments were given.
var ErrUsage = errors.New("usage")

// positional argument count: image_path contrast color brightness quality umask
const requiredArgs = 6

// Options is the parsed command line.
type Options struct {
	Target     string
	Contrast   float64
	Color      float64
	Brightness float64
	Quality    int
	Umask      string // validated umask argument, as given
	Sharpen    umask.Params
	OutputDir  string
	Verbose    bool
	Version    bool
}

// Settings returns the enhancement settings described by the options.
func (o Options) Settings() enhance.Settings {
	return enhance.Settings{
		Contrast:   o.Contrast,
		Color:      o.Color,
		Brightness: o.Brightness,
		Sharpen:    o.Sharpen,
	}
}

func newFlagSet(opts *Options, stderr io.Writer) *pflag.FlagSet {
	fs := pflag.NewFlagSet(strings.ToLower(config.AppName), pflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVarP(&opts.OutputDir, "output-dir", "o", config.DefaultOutputDir, "existing directory to write enhanced images to")
	fs.BoolVarP(&opts.Verbose, "verbose", "v", false, "log each pipeline stage")
	fs.BoolVar(&opts.Version, "version", false, "print the version and exit")
	fs.Usage = func() {
		fmt.Fprint(stderr, usage(fs))
	}
	return fs
}

func usage(fs *pflag.FlagSet) string {
	name := strings.ToLower(config.AppName)
	return fmt.Sprintf("Usage: %s [flags] <image_path: str> <contrast: float> <color: float> <brightness: float> <quality: int> <umask: str>\n\n"+
		"  umask is either radius=1,percent=65,threshold=2 or {\"radius\": 1, \"percent\": 65, \"threshold\": 2}.\n"+
		"  Put \"--\" before the arguments when a factor is negative.\n\n"+
		"Flags:\n%s", name, fs.FlagUsages())
}

// ParseArgs parses the command line (without the program name).
// It returns ErrUsage when fewer than six positional arguments are given and
// pflag.ErrHelp when help was requested.
func ParseArgs(args []string, stderr io.Writer) (Options, error) {
	var opts Options
	fs := newFlagSet(&opts, stderr)
	if err := fs.Parse(args); err != nil {
		return Options{}, err
	}
	if opts.Version {
		return opts, nil
	}
	if fs.NArg() < requiredArgs {
		return Options{}, ErrUsage
	}

	var err error
	opts.Target = fs.Arg(0)
	if opts.Contrast, err = parseFactor("contrast", fs.Arg(1)); err != nil {
		return Options{}, err
	}
	if opts.Color, err = parseFactor("color", fs.Arg(2)); err != nil {
		return Options{}, err
	}
	if opts.Brightness, err = parseFactor("brightness", fs.Arg(3)); err != nil {
		return Options{}, err
	}
	if opts.Quality, err = parseQuality(fs.Arg(4)); err != nil {
		return Options{}, err
	}
	if opts.Umask, err = umask.Validate(fs.Arg(5)); err != nil {
		return Options{}, err
	}
	if opts.Sharpen, err = umask.Parse(opts.Umask); err != nil {
		return Options{}, err
	}
	return opts, nil
}

func parseFactor(name, raw string) (float64, error) {
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", name, err)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%s: %q is not a finite number", name, raw)
	}
	return f, nil
}

func parseQuality(raw string) (int, error) {
	q, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("quality: %w", err)
	}
	if q < config.MinQuality || q > config.MaxQuality {
		return 0, fmt.Errorf("quality: %d is outside %d-%d", q, config.MinQuality, config.MaxQuality)
	}
	return q, nil
}
