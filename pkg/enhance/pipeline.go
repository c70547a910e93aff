// Package enhance implements the fixed enhancement pipeline:
// contrast, then color, then brightness, then unsharp-mask sharpening.
package enhance

import (
	"context"
	"fmt"
	"image"
	"time"

	"github.com/disintegration/imaging"
	"github.com/dixieflatline76/Polish/pkg/umask"
	"github.com/dixieflatline76/Polish/util/log"
)

// Stage names, in the order they run.
const (
	StageContrast   = "contrast"
	StageColor      = "color"
	StageBrightness = "brightness"
	StageSharpen    = "sharpen"
)

// Settings holds the enhancement factors. A factor of 1 leaves the image
// unchanged for that stage.
type Settings struct {
	Contrast   float64
	Color      float64
	Brightness float64
	Sharpen    umask.Params
}

// Stage is one step of the pipeline.
type Stage struct {
	Name  string
	apply func(image.Image) *image.NRGBA
}

// Pipeline applies its stages to an image in order.
type Pipeline struct {
	stages []Stage
}

// NewPipeline builds the contrast → color → brightness → sharpen pipeline.
func NewPipeline(s Settings) *Pipeline {
	return &Pipeline{
		stages: []Stage{
			{Name: StageContrast, apply: func(img image.Image) *image.NRGBA { return Contrast(img, s.Contrast) }},
			{Name: StageColor, apply: func(img image.Image) *image.NRGBA { return Color(img, s.Color) }},
			{Name: StageBrightness, apply: func(img image.Image) *image.NRGBA { return Brightness(img, s.Brightness) }},
			{Name: StageSharpen, apply: func(img image.Image) *image.NRGBA { return UnsharpMask(img, s.Sharpen) }},
		},
	}
}

// Stages returns the stage names in execution order.
func (p *Pipeline) Stages() []string {
	names := make([]string, len(p.stages))
	for i, s := range p.stages {
		names[i] = s.Name
	}
	return names
}

// Apply runs every stage on img. The context is checked before each stage.
func (p *Pipeline) Apply(ctx context.Context, img image.Image) (*image.NRGBA, error) {
	out := imaging.Clone(img)
	for _, s := range p.stages {
		if err := checkContext(ctx); err != nil {
			return nil, fmt.Errorf("%s: %w", s.Name, err)
		}
		if !log.DebugEnabled() {
			out = s.apply(out)
			continue
		}
		start := time.Now()
		out = s.apply(out)
		log.Debugf("enhance: %s took %v", s.Name, time.Since(start))
	}
	return out, nil
}

func checkContext(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return nil
	}
}
