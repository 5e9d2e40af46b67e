package transform_test

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocv.io/x/gocv"

	"github.com/askiada/go-cvpg/pkg/pipeline"
	"github.com/askiada/go-cvpg/pkg/transform"
)

func TestDisabledStagePassesInputThrough(t *testing.T) {
	t.Parallel()

	s, err := transform.NewGaussianBlur(transform.Disabled())
	require.NoError(t, err)
	assert.False(t, s.Enabled())

	in := uniform(8, 8, gocv.MatTypeCV8UC3, 10)
	defer in.Close()
	out, extra := s.Process(in, "extra")
	assert.Same(t, in, out)
	assert.Equal(t, "extra", extra)
	assert.NoError(t, s.Err())
}

func TestMissingImageIsRecorded(t *testing.T) {
	t.Parallel()

	tcs := map[string]func() (pipeline.Stage, error){
		"GaussianBlur": func() (pipeline.Stage, error) {
			return transform.NewGaussianBlur()
		},
		"Canny": func() (pipeline.Stage, error) {
			return transform.NewCanny()
		},
		"Resize": func() (pipeline.Stage, error) {
			return transform.NewResize()
		},
	}
	for name, newStage := range tcs {
		newStage := newStage
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			s, err := newStage()
			require.NoError(t, err)

			out, extra := s.Process(nil, 1)
			assert.Nil(t, out)
			assert.Equal(t, 1, extra)
			assert.ErrorIs(t, s.Err(), transform.ErrNoImage)
		})
	}
}

func TestOpenCVFailureIsRecorded(t *testing.T) {
	t.Parallel()

	tcs := map[string]func() (pipeline.Stage, error){
		"MedianBlur with a large kernel on floats": func() (pipeline.Stage, error) {
			s, err := transform.NewMedianBlur()
			if err != nil {
				return nil, err
			}
			return s, s.Params().SetText("k_size", "7")
		},
		"Canny on floats": func() (pipeline.Stage, error) {
			return transform.NewCanny()
		},
		"HoughLinesP on floats": func() (pipeline.Stage, error) {
			return transform.NewHoughLinesP()
		},
	}
	for name, newStage := range tcs {
		newStage := newStage
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			s, err := newStage()
			require.NoError(t, err)

			in := uniform(16, 16, gocv.MatTypeCV32FC1, 1)
			defer closeMat(in)
			out, extra := s.Process(in, "keep")
			assert.Error(t, s.Err())
			assert.Same(t, in, out)
			assert.Equal(t, "keep", extra)
		})
	}
}

func TestSetEnabledTriggersAttachedWindow(t *testing.T) {
	t.Parallel()

	s, err := transform.NewMedianBlur()
	require.NoError(t, err)
	require.NoError(t, s.SetEnabled(false), "not attached yet")

	calls := 0
	s.Attach(func() error {
		calls++
		return nil
	})
	require.NoError(t, s.SetEnabled(true))
	require.NoError(t, s.Params().SetText("k_size", "7"))
	assert.Equal(t, 2, calls)

	other := 0
	s.Attach(func() error {
		other++
		return nil
	})
	require.NoError(t, s.Params().SetText("k_size", "9"))
	assert.Equal(t, 2, calls)
	assert.Equal(t, 1, other)
}

func TestBlurs(t *testing.T) {
	t.Parallel()

	gaussian, err := transform.NewGaussianBlur()
	require.NoError(t, err)
	require.NoError(t, gaussian.Params().SetText("k_size_x", "4"), "even sizes are rounded up")
	median, err := transform.NewMedianBlur()
	require.NoError(t, err)
	filter, err := transform.NewFilter2D()
	require.NoError(t, err)

	tcs := map[string]pipeline.Stage{
		"GaussianBlur": gaussian,
		"MedianBlur":   median,
		"Filter2D":     filter,
	}
	for name, s := range tcs {
		in := uniform(16, 12, gocv.MatTypeCV8UC3, 100)
		out, _ := s.Process(in, nil)
		require.NoError(t, s.Err(), name)
		assert.Equal(t, 16, out.Rows(), name)
		assert.Equal(t, 12, out.Cols(), name)
		assert.Equal(t, 3, out.Channels(), name)
		assert.Equal(t, uint8(100), out.GetVecbAt(8, 6)[0], "%s keeps a uniform image", name)
		release(in, out)
		closeMat(in)
	}
}

func TestFilter2DWithoutNormalization(t *testing.T) {
	t.Parallel()

	s, err := transform.NewFilter2D()
	require.NoError(t, err)
	require.NoError(t, s.Params().SetText("kernel", "0,0,0;0,2,0;0,0,0"))
	require.NoError(t, s.Params().SetText("normalize", "false"))

	in := uniform(5, 5, gocv.MatTypeCV8UC1, 20)
	defer in.Close()
	out, _ := s.Process(in, nil)
	defer release(in, out)
	require.NoError(t, s.Err())
	assert.Equal(t, uint8(40), out.GetUCharAt(2, 2))
}

func TestCanny(t *testing.T) {
	t.Parallel()

	s, err := transform.NewCanny()
	require.NoError(t, err)

	flat := uniform(20, 20, gocv.MatTypeCV8UC3, 50)
	defer flat.Close()
	out, _ := s.Process(flat, nil)
	require.NoError(t, s.Err())
	assert.Equal(t, 1, out.Channels())
	assert.Zero(t, gocv.CountNonZero(*out))
	release(flat, out)

	sq := square(40)
	defer sq.Close()
	out, _ = s.Process(sq, nil)
	defer release(sq, out)
	require.NoError(t, s.Err())
	assert.Positive(t, gocv.CountNonZero(*out))
}

func TestThreshold(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		value float64
		set   map[string]string
		want  uint8
	}{
		"above":    {value: 200, want: 255},
		"below":    {value: 100, want: 0},
		"inverted": {value: 200, set: map[string]string{"type": "Binary Inverted"}, want: 0},
		"max":      {value: 200, set: map[string]string{"max_value": "80"}, want: 80},
	}
	for name, tc := range tcs {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			s, err := transform.NewThreshold()
			require.NoError(t, err)
			for k, v := range tc.set {
				require.NoError(t, s.Params().SetText(k, v))
			}

			in := uniform(4, 4, gocv.MatTypeCV8UC1, tc.value)
			defer in.Close()
			out, _ := s.Process(in, nil)
			defer release(in, out)
			require.NoError(t, s.Err())
			assert.Equal(t, tc.want, out.GetUCharAt(1, 1))
		})
	}
}

func TestThresholdOtsu(t *testing.T) {
	t.Parallel()

	s, err := transform.NewThreshold()
	require.NoError(t, err)
	require.NoError(t, s.Params().SetText("otsu", "true"))

	in := square(40)
	defer in.Close()
	out, _ := s.Process(in, nil)
	defer release(in, out)
	require.NoError(t, s.Err())
	assert.Equal(t, 1, out.Channels())
	assert.Equal(t, uint8(255), out.GetUCharAt(20, 20))
	assert.Equal(t, uint8(0), out.GetUCharAt(0, 0))
}

func TestInRange(t *testing.T) {
	t.Parallel()

	s, err := transform.NewInRange()
	require.NoError(t, err)

	in := uniform(4, 4, gocv.MatTypeCV8UC3, 120)
	defer in.Close()
	out, _ := s.Process(in, nil)
	require.NoError(t, s.Err())
	assert.Equal(t, 16, gocv.CountNonZero(*out))
	release(in, out)

	require.NoError(t, s.Params().SetText("ch_1", "0,100"))
	out, _ = s.Process(in, nil)
	defer release(in, out)
	require.NoError(t, s.Err())
	assert.Zero(t, gocv.CountNonZero(*out))
}

func TestCvtColor(t *testing.T) {
	t.Parallel()

	s, err := transform.NewCvtColor()
	require.NoError(t, err)

	in := uniform(4, 4, gocv.MatTypeCV8UC3, 10)
	defer in.Close()
	out, _ := s.Process(in, nil)
	assert.Same(t, in, out, "BGR keeps the image")

	require.NoError(t, s.Params().SetText("color_space", "GRAY"))
	out, _ = s.Process(in, nil)
	require.NoError(t, s.Err())
	assert.Equal(t, 1, out.Channels())

	require.NoError(t, s.Params().SetText("color_space", "HSV"))
	gray := out
	defer gray.Close()
	out, _ = s.Process(gray, nil)
	assert.Same(t, gray, out)
	assert.ErrorIs(t, s.Err(), transform.ErrChannels)
}

func TestGeometry(t *testing.T) {
	t.Parallel()

	border, err := transform.NewCopyMakeBorder()
	require.NoError(t, err)
	require.NoError(t, border.Params().SetText("left", "0"))
	resize, err := transform.NewResize()
	require.NoError(t, err)
	require.NoError(t, resize.Params().SetText("size", "200,150"))

	tcs := map[string]struct {
		stage      pipeline.Stage
		rows, cols int
	}{
		"CopyMakeBorder": {stage: border, rows: 30, cols: 20},
		"Resize":         {stage: resize, rows: 150, cols: 200},
	}
	for name, tc := range tcs {
		in := uniform(10, 10, gocv.MatTypeCV8UC3, 10)
		out, _ := tc.stage.Process(in, nil)
		require.NoError(t, tc.stage.Err(), name)
		assert.Equal(t, tc.rows, out.Rows(), name)
		assert.Equal(t, tc.cols, out.Cols(), name)
		release(in, out)
		closeMat(in)
	}
}

func TestBlankCanvas(t *testing.T) {
	t.Parallel()

	s, err := transform.NewBlankCanvas()
	require.NoError(t, err)
	require.NoError(t, s.Params().SetText("color", "1,2,3"))
	require.NoError(t, s.Params().SetText("img_shape", "300,200"))

	out, extra := s.Process(nil, "kept")
	defer closeMat(out)
	require.NoError(t, s.Err())
	assert.Equal(t, "kept", extra)
	assert.Equal(t, 200, out.Rows())
	assert.Equal(t, 300, out.Cols())
	assert.Equal(t, gocv.Vecb{1, 2, 3}, out.GetVecbAt(10, 10))
}

func TestGoodFeaturesToTrack(t *testing.T) {
	t.Parallel()

	s, err := transform.NewGoodFeaturesToTrack()
	require.NoError(t, err)

	in := square(100)
	defer in.Close()
	out, extra := s.Process(in, nil)
	require.NoError(t, s.Err())
	assert.Same(t, in, out)

	points, ok := extra.([]image.Point)
	require.True(t, ok)
	assert.NotEmpty(t, points)
	found, ok := s.Params().Get("found")
	require.True(t, ok)
	assert.Contains(t, found.String(), "corners")
}

func TestHoughLinesP(t *testing.T) {
	t.Parallel()

	s, err := transform.NewHoughLinesP()
	require.NoError(t, err)

	in := uniform(100, 100, gocv.MatTypeCV8UC1, 0)
	defer in.Close()
	require.NoError(t, gocv.Line(in, image.Pt(10, 50), image.Pt(90, 50), white, 1))

	out, extra := s.Process(in, nil)
	require.NoError(t, s.Err())
	assert.Same(t, in, out)
	segments, ok := extra.([]transform.Segment)
	require.True(t, ok)
	require.NotEmpty(t, segments)
	assert.Equal(t, 50, segments[0].From.Y)
	assert.Equal(t, 50, segments[0].To.Y)
}

func TestDrawCirclesFromPoints(t *testing.T) {
	t.Parallel()

	s, err := transform.NewDrawCirclesFromPoints()
	require.NoError(t, err)

	in := uniform(20, 20, gocv.MatTypeCV8UC1, 0)
	defer in.Close()

	out, extra := s.Process(in, nil)
	assert.Same(t, in, out, "nothing to draw")
	assert.Nil(t, extra)

	out, _ = s.Process(in, []image.Point{{X: 5, Y: 5}})
	require.NoError(t, s.Err())
	assert.Equal(t, 3, out.Channels())
	assert.Equal(t, gocv.Vecb{0, 0, 255}, out.GetVecbAt(5, 5))
	assert.Equal(t, gocv.Vecb{0, 0, 0}, out.GetVecbAt(15, 15))
	release(in, out)

	out, _ = s.Process(in, "points")
	assert.Same(t, in, out)
	assert.ErrorIs(t, s.Err(), transform.ErrExtraType)
}

func TestDrawLinesByEndpoints(t *testing.T) {
	t.Parallel()

	s, err := transform.NewDrawLinesByEndpoints()
	require.NoError(t, err)
	require.NoError(t, s.Params().SetText("color", "255,0,0"))

	in := uniform(20, 20, gocv.MatTypeCV8UC3, 0)
	defer in.Close()
	segments := []transform.Segment{{From: image.Pt(0, 10), To: image.Pt(19, 10)}}
	out, extra := s.Process(in, segments)
	defer release(in, out)
	require.NoError(t, s.Err())
	assert.Equal(t, segments, extra)
	assert.Equal(t, gocv.Vecb{255, 0, 0}, out.GetVecbAt(10, 10))
	assert.Equal(t, gocv.Vecb{0, 0, 0}, out.GetVecbAt(0, 0))

	_, _ = s.Process(in, []image.Point{})
	assert.ErrorIs(t, s.Err(), transform.ErrExtraType)
}
