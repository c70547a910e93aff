// Package cli is the command line front end: it parses arguments, wires the
// pipeline to the batch runner and maps failures to exit codes.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dixieflatline76/Polish/config"
	"github.com/dixieflatline76/Polish/pkg/batch"
	"github.com/dixieflatline76/Polish/pkg/enhance"
	"github.com/dixieflatline76/Polish/util/log"
	"github.com/spf13/pflag"
)

// Main runs the tool and returns the process exit code.
func Main(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	name := strings.ToLower(config.AppName)

	opts, err := ParseArgs(args, stderr)
	switch {
	case errors.Is(err, pflag.ErrHelp):
		return 0
	case errors.Is(err, ErrUsage):
		var discard Options
		fmt.Fprint(stderr, usage(newFlagSet(&discard, stderr)))
		return 1
	case err != nil:
		fmt.Fprintf(stderr, "%s: %v\n", name, err)
		return 1
	}

	if opts.Version {
		fmt.Fprintf(stdout, "%s %s\n", name, config.AppVersion)
		return 0
	}

	log.SetDebug(opts.Verbose)
	if err := Run(ctx, opts, batch.SystemClock{}, stdout); err != nil {
		fmt.Fprintf(stderr, "%s: %v\n", name, err)
		return 1
	}
	return 0
}

// Run enhances opts.Target and prints every written path to stdout.
func Run(ctx context.Context, opts Options, clock batch.Clock, stdout io.Writer) error {
	pipeline := enhance.NewPipeline(opts.Settings())
	files := batch.NewFileManager(opts.OutputDir, clock)
	runner := batch.NewRunner(pipeline, files, opts.Quality, stdout)

	log.Debugf("cli: target=%s contrast=%g color=%g brightness=%g quality=%d umask=%s output=%s",
		opts.Target, opts.Contrast, opts.Color, opts.Brightness, opts.Quality, opts.Sharpen, opts.OutputDir)

	written, err := runner.Run(ctx, opts.Target)
	if err != nil {
		return err
	}
	log.Printf("%s: enhanced %d image(s) into %s", strings.ToLower(config.AppName), len(written), files.OutputDir())
	return nil
}
