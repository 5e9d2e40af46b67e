package main

import (
	"bytes"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocv.io/x/gocv"

	"github.com/askiada/go-cvpg/pkg/pipeline/param"
)

// execute runs the root command with a configuration file in dir.
func execute(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{"--config", filepath.Join(dir, "cvpg.yaml")}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func writeSquare(t *testing.T, dir, name string) string {
	t.Helper()
	m := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(0, 0, 0, 0), 64, 48, gocv.MatTypeCV8UC3)
	defer m.Close()
	gocv.Rectangle(&m, image.Rect(12, 16, 36, 48), color.RGBA{R: 255, G: 255, B: 255, A: 255}, -1)
	path := filepath.Join(dir, name)
	require.True(t, gocv.IMWrite(path, m))
	return path
}

func TestList(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	out, err := execute(t, dir, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Canny\n")
	assert.Contains(t, out, "HoughLinesP\n")
	assert.FileExists(t, filepath.Join(dir, "cvpg.yaml"))
}

func TestParams(t *testing.T) {
	t.Parallel()

	out, err := execute(t, t.TempDir(), "params", "GoodFeaturesToTrack")
	require.NoError(t, err)
	assert.Contains(t, out, "GoodFeaturesToTrack.max_corners")
	assert.Contains(t, out, "DrawCirclesFromPoints.color")
	assert.Contains(t, out, "0,0,255")

	_, err = execute(t, t.TempDir(), "params", "Sobel")
	assert.Error(t, err)
}

func TestRun(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	first := writeSquare(t, dir, "first.png")
	second := writeSquare(t, dir, "second.png")
	outDir := filepath.Join(dir, "out")
	graph := filepath.Join(dir, "graph.dot")

	_, err := execute(t, dir, "run", "Canny",
		"--image", first, "--image", second,
		"--set", "threshold1=50", "--set", "Canny.threshold2=150",
		"--out", outDir, "--graph", graph, "--jobs", "2", "--slowest", "1",
	)
	require.NoError(t, err)

	for _, name := range []string{"first", "second"} {
		img := gocv.IMRead(filepath.Join(outDir, name+"_Canny.png"), gocv.IMReadUnchanged)
		assert.False(t, img.Empty(), name)
		assert.Equal(t, 64, img.Rows(), name)
		assert.Equal(t, 48, img.Cols(), name)
		assert.Equal(t, 1, img.Channels(), name)
		_ = img.Close()

		dot, err := os.ReadFile(filepath.Join(dir, "graph_"+name+".dot"))
		require.NoError(t, err, name)
		assert.Contains(t, string(dot), "Canny")
	}
}

func TestRunErrors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	img := writeSquare(t, dir, "square.png")

	tcs := map[string]struct {
		args []string
		want error
	}{
		"invalid set":   {[]string{"run", "Canny", "--image", img, "--set", "threshold1"}, ErrInvalidSet},
		"unknown param": {[]string{"run", "Canny", "--image", img, "--set", "sigma=1"}, param.ErrUnknownParam},
		"out of range":  {[]string{"run", "Canny", "--image", img, "--set", "threshold1=5000"}, param.ErrOutOfRange},
	}
	for name, tc := range tcs {
		_, err := execute(t, dir, append(tc.args, "--out", filepath.Join(dir, "out"))...)
		assert.ErrorIs(t, err, tc.want, name)
	}

	_, err := execute(t, dir, "run", "Canny")
	assert.Error(t, err, "image is required")
}
