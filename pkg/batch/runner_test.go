package batch

import (
	"bytes"
	"context"
	"errors"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/dixieflatline76/Polish/pkg/enhance"
	"github.com/dixieflatline76/Polish/pkg/umask"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func testPipeline() *enhance.Pipeline {
	return enhance.NewPipeline(enhance.Settings{
		Contrast:   1.4,
		Color:      1.4,
		Brightness: 0.75,
		Sharpen:    umask.Params{Radius: 1, Percent: 65, Threshold: 2},
	})
}

func TestRunner_SingleFile(t *testing.T) {
	tmpDir := t.TempDir()
	outDir := filepath.Join(tmpDir, "output")
	require.NoError(t, os.Mkdir(outDir, 0755))
	input := writeTestImage(t, tmpDir, "photo.png", 32, 24)

	var stdout bytes.Buffer
	r := NewRunner(testPipeline(), NewFileManager(outDir, newFixedClock(fixedTime)), 90, &stdout)

	written, err := r.Run(context.Background(), input)
	require.NoError(t, err)

	expected := filepath.Join(outDir, "20260102030405photo.png.jpg")
	assert.Equal(t, []string{expected}, written)
	assert.Equal(t, expected+"\n", stdout.String())

	out, err := imaging.Open(expected)
	require.NoError(t, err)
	assert.Equal(t, 32, out.Bounds().Dx())
	assert.Equal(t, 24, out.Bounds().Dy())
}

func TestRunner_Directory(t *testing.T) {
	tmpDir := t.TempDir()
	inDir := filepath.Join(tmpDir, "in")
	outDir := filepath.Join(tmpDir, "output")
	require.NoError(t, os.Mkdir(outDir, 0755))
	writeTestImage(t, inDir, "a.png", 8, 8)
	writeTestImage(t, inDir, filepath.Join("sub", "b.jpg"), 8, 8)

	var stdout bytes.Buffer
	clock := newFixedClock(fixedTime)
	r := NewRunner(testPipeline(), NewFileManager(outDir, clock), 80, &stdout)

	written, err := r.Run(context.Background(), inDir)
	require.NoError(t, err)

	expected := []string{
		filepath.Join(outDir, "20260102030405a.png.jpg"),
		filepath.Join(outDir, "20260102030405b.jpg.jpg"),
	}
	assert.Equal(t, expected, written)
	assert.Equal(t, inDir+" is a folder.\n"+expected[0]+"\n"+expected[1]+"\n", stdout.String())
	for _, p := range expected {
		assert.FileExists(t, p)
	}
	clock.AssertNumberOfCalls(t, "Now", 2)
}

func TestRunner_SameNameSameSecondOverwrites(t *testing.T) {
	tmpDir := t.TempDir()
	inDir := filepath.Join(tmpDir, "in")
	outDir := filepath.Join(tmpDir, "output")
	require.NoError(t, os.Mkdir(outDir, 0755))
	writeTestImage(t, inDir, filepath.Join("one", "x.png"), 8, 8)
	writeTestImage(t, inDir, filepath.Join("two", "x.png"), 16, 16)

	r := NewRunner(testPipeline(), NewFileManager(outDir, newFixedClock(fixedTime)), 90, nil)
	written, err := r.Run(context.Background(), inDir)
	require.NoError(t, err)
	require.Len(t, written, 2)
	assert.Equal(t, written[0], written[1])

	entries, err := os.ReadDir(outDir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)

	// The later file wins.
	out, err := imaging.Open(written[1])
	require.NoError(t, err)
	assert.Equal(t, 16, out.Bounds().Dx())
}

func TestRunner_FailureAbortsBatch(t *testing.T) {
	tmpDir := t.TempDir()
	inDir := filepath.Join(tmpDir, "in")
	outDir := filepath.Join(tmpDir, "output")
	require.NoError(t, os.Mkdir(outDir, 0755))
	writeTestImage(t, inDir, "a.png", 8, 8)
	require.NoError(t, os.WriteFile(filepath.Join(inDir, "b.txt"), []byte("not an image"), 0644))
	writeTestImage(t, inDir, "c.png", 8, 8)

	r := NewRunner(testPipeline(), NewFileManager(outDir, newFixedClock(fixedTime)), 90, nil)
	written, err := r.Run(context.Background(), inDir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "b.txt")
	assert.Equal(t, []string{filepath.Join(outDir, "20260102030405a.png.jpg")}, written)
	assert.NoFileExists(t, filepath.Join(outDir, "20260102030405c.png.jpg"))
}

func TestRunner_EnhancerError(t *testing.T) {
	tmpDir := t.TempDir()
	input := writeTestImage(t, tmpDir, "photo.png", 8, 8)
	boom := errors.New("boom")

	enhancer := new(MockEnhancer)
	enhancer.On("Apply", mock.Anything, mock.Anything).Return(nil, boom)

	r := NewRunner(enhancer, NewFileManager(tmpDir, newFixedClock(fixedTime)), 90, nil)
	_, err := r.Run(context.Background(), input)
	assert.ErrorIs(t, err, boom)
	enhancer.AssertNumberOfCalls(t, "Apply", 1)
}

func TestRunner_MissingOutputDir(t *testing.T) {
	tmpDir := t.TempDir()
	input := writeTestImage(t, tmpDir, "photo.png", 8, 8)

	enhancer := new(MockEnhancer)
	r := NewRunner(enhancer, NewFileManager(filepath.Join(tmpDir, "output"), newFixedClock(fixedTime)), 90, nil)
	_, err := r.Run(context.Background(), input)
	assert.ErrorIs(t, err, os.ErrNotExist)
	enhancer.AssertNotCalled(t, "Apply", mock.Anything, mock.Anything)
}

func TestRunner_MissingTarget(t *testing.T) {
	tmpDir := t.TempDir()
	r := NewRunner(testPipeline(), NewFileManager(tmpDir, newFixedClock(fixedTime)), 90, nil)

	_, err := r.Run(context.Background(), filepath.Join(tmpDir, "nope.png"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsupportedTarget)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestRunner_CancelledContext(t *testing.T) {
	tmpDir := t.TempDir()
	inDir := filepath.Join(tmpDir, "in")
	writeTestImage(t, inDir, "a.png", 8, 8)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := NewRunner(testPipeline(), NewFileManager(tmpDir, newFixedClock(fixedTime)), 90, nil)
	written, err := r.Run(ctx, inDir)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, written)
}

func TestRunner_TransparentInputFlattened(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "clear.png")
	require.NoError(t, imaging.Save(imaging.New(4, 4, color.NRGBA{0, 0, 0, 0}), path))

	identity := enhance.NewPipeline(enhance.Settings{
		Contrast: 1, Color: 1, Brightness: 1,
		Sharpen: umask.Params{Radius: 1},
	})
	r := NewRunner(identity, NewFileManager(tmpDir, newFixedClock(fixedTime)), 100, nil)
	outPath, err := r.ProcessFile(context.Background(), path)
	require.NoError(t, err)

	out, err := imaging.Open(outPath)
	require.NoError(t, err)
	red, green, blue, _ := out.At(2, 2).RGBA()
	assert.Greater(t, red, uint32(0xf000))
	assert.Greater(t, green, uint32(0xf000))
	assert.Greater(t, blue, uint32(0xf000))
}
