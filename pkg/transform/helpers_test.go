package transform_test

import (
	"image"
	"image/color"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gocv.io/x/gocv"
)

var white = color.RGBA{R: 255, G: 255, B: 255, A: 255}

// uniform returns a rows x cols image filled with value on every channel.
func uniform(rows, cols int, typ gocv.MatType, value float64) *gocv.Mat {
	m := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(value, value, value, 0), rows, cols, typ)
	return &m
}

// square returns a black BGR image with a filled white square in its middle.
func square(size int) *gocv.Mat {
	m := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(0, 0, 0, 0), size, size, gocv.MatTypeCV8UC3)
	quarter := size / 4
	gocv.Rectangle(&m, image.Rect(quarter, quarter, size-quarter, size-quarter), white, -1)
	return &m
}

// writeImage saves a square image in a temporary directory and returns its path.
func writeImage(t *testing.T, size int) string {
	t.Helper()
	img := square(size)
	defer img.Close()
	path := filepath.Join(t.TempDir(), "square.png")
	require.True(t, gocv.IMWrite(path, *img))
	return path
}

func closeMat(m *gocv.Mat) {
	if m != nil {
		_ = m.Close()
	}
}

// release closes out unless it is the input of the stage.
func release(in, out *gocv.Mat) {
	if out != in {
		closeMat(out)
	}
}
