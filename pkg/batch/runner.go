// Package batch runs the enhancement pipeline over a file or a directory tree
// and writes timestamped JPEG outputs.
package batch

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/disintegration/imaging"
	"github.com/dixieflatline76/Polish/pkg/enhance"
	"github.com/dixieflatline76/Polish/util/log"
)

// ErrUnsupportedTarget is returned when the target is neither a directory nor a regular file.
var ErrUnsupportedTarget = errors.New("cannot parse input")

// Enhancer transforms a decoded image. *enhance.Pipeline implements it.
type Enhancer interface {
	Apply(ctx context.Context, img image.Image) (*image.NRGBA, error)
}

// Runner processes files one at a time. The first failure stops the run.
type Runner struct {
	enhancer Enhancer
	files    *FileManager
	quality  int
	out      io.Writer
}

// NewRunner creates a Runner. Output paths are printed to out, one per line.
func NewRunner(enhancer Enhancer, files *FileManager, quality int, out io.Writer) *Runner {
	if out == nil {
		out = io.Discard
	}
	return &Runner{
		enhancer: enhancer,
		files:    files,
		quality:  quality,
		out:      out,
	}
}

// Run enhances target, which may be a single file or a directory walked
// recursively. It returns the paths written before any failure.
func (r *Runner) Run(ctx context.Context, target string) ([]string, error) {
	if err := r.files.CheckOutputDir(); err != nil {
		return nil, err
	}

	info, err := os.Stat(target)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrUnsupportedTarget, target, err)
	}

	var inputs []string
	switch {
	case info.IsDir():
		fmt.Fprintf(r.out, "%s is a folder.\n", target)
		inputs, err = FindFiles(target)
		if err != nil {
			return nil, err
		}
		log.Debugf("batch: found %d files under %s", len(inputs), target)
	case info.Mode().IsRegular():
		inputs = []string{target}
	default:
		return nil, fmt.Errorf("%w %s: not a file or directory", ErrUnsupportedTarget, target)
	}

	written := make([]string, 0, len(inputs))
	for _, path := range inputs {
		if err := checkContext(ctx); err != nil {
			return written, err
		}
		outPath, err := r.ProcessFile(ctx, path)
		if err != nil {
			return written, err
		}
		written = append(written, outPath)
	}
	return written, nil
}

// ProcessFile decodes, enhances and saves a single image and returns the output path.
func (r *Runner) ProcessFile(ctx context.Context, path string) (string, error) {
	start := time.Now()

	img, err := decodeFile(path)
	if err != nil {
		return "", fmt.Errorf("decoding %s: %w", path, err)
	}

	enhanced, err := r.enhancer.Apply(ctx, img)
	if err != nil {
		return "", fmt.Errorf("enhancing %s: %w", path, err)
	}

	outPath, err := r.files.OutputPath(filepath.Base(path))
	if err != nil {
		return "", err
	}
	if err := imaging.Save(enhance.Flatten(enhanced), outPath, imaging.JPEGQuality(r.quality)); err != nil {
		return "", fmt.Errorf("saving %s: %w", outPath, err)
	}

	fmt.Fprintln(r.out, outPath)
	log.Debugf("batch: %s -> %s in %v", path, outPath, time.Since(start))
	return outPath, nil
}

func checkContext(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return nil
	}
}
