package batch

import (
	"context"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockClock returns whatever time the test programs it with.
type MockClock struct {
	mock.Mock
}

func (m *MockClock) Now() time.Time {
	args := m.Called()
	return args.Get(0).(time.Time)
}

func newFixedClock(ts time.Time) *MockClock {
	c := new(MockClock)
	c.On("Now").Return(ts)
	return c
}

// MockEnhancer records Apply calls.
type MockEnhancer struct {
	mock.Mock
}

func (m *MockEnhancer) Apply(ctx context.Context, img image.Image) (*image.NRGBA, error) {
	args := m.Called(ctx, img)
	out, _ := args.Get(0).(*image.NRGBA)
	return out, args.Error(1)
}

var fixedTime = time.Date(2026, time.January, 2, 3, 4, 5, 0, time.Local)

// writeTestImage saves a small image at dir/name, creating parent directories.
func writeTestImage(t *testing.T, dir, name string, w, h int) string {
	t.Helper()
	path := filepath.Join(dir, name)
	img := imaging.New(w, h, color.NRGBA{120, 80, 40, 255})
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, imaging.Save(img, path))
	return path
}
