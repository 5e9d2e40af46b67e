package pipeline_test

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"gocv.io/x/gocv"

	"github.com/askiada/go-cvpg/pkg/pipeline"
	"github.com/askiada/go-cvpg/pkg/pipeline/model"
	"github.com/askiada/go-cvpg/pkg/pipeline/param"
)

var errNoImage = errors.New("no image")

// loader ignores its input and returns a 2x2 single channel image filled with value.
type loader struct {
	value uint8
	calls int
}

func (l *loader) Process(img *gocv.Mat, extra any) (*gocv.Mat, any) {
	l.calls++
	m := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(float64(l.value), 0, 0, 0), 2, 2, gocv.MatTypeCV8UC1)
	return &m, []uint8{l.value, l.value, l.value, l.value}
}

func (l *loader) Err() error { return nil }

func (l *loader) Name() string { return "loader" }

// valueSetter writes its value at (row, col) in the image and in the extra slice.
type valueSetter struct {
	row, col int
	value    *param.Slider[int]
	calls    int
	err      error
}

func newValueSetter(t *testing.T, row, col, value int) *valueSetter {
	t.Helper()
	v, err := param.NewIntSlider(0, 255, param.WithDefault(value))
	require.NoError(t, err)
	return &valueSetter{row: row, col: col, value: v}
}

func (vs *valueSetter) Process(img *gocv.Mat, extra any) (*gocv.Mat, any) {
	vs.calls++
	vs.err = nil
	if img == nil {
		vs.err = errNoImage
		return img, extra
	}
	v := uint8(vs.value.Value())
	img.SetUCharAt(vs.row, vs.col, v)
	if e, ok := extra.([]uint8); ok {
		e[vs.row*2+vs.col] = v
	}
	return img, extra
}

func (vs *valueSetter) Err() error { return vs.err }

func (vs *valueSetter) Name() string { return "value setter" }

func (vs *valueSetter) Attach(trigger func() error) {
	if !vs.value.Bound() {
		_ = vs.value.Bind(func() error { return trigger() })
	}
}

// failing always records an error and passes its input through.
type failing struct{}

func (failing) Process(img *gocv.Mat, extra any) (*gocv.Mat, any) { return img, extra }

func (failing) Err() error { return errors.New("boom") }

func filled(value uint8) *gocv.Mat {
	m := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(float64(value), 0, 0, 0), 2, 2, gocv.MatTypeCV8UC1)
	return &m
}

// values returns the pixels of a 2x2 single channel image, row by row.
func values(t *testing.T, m *gocv.Mat) []uint8 {
	t.Helper()
	require.NotNil(t, m)
	require.False(t, m.Empty())
	res := make([]uint8, 0, 4)
	for r := 0; r < 2; r++ {
		for c := 0; c < 2; c++ {
			res = append(res, m.GetUCharAt(r, c))
		}
	}
	return res
}

func closeMat(m *gocv.Mat) {
	if m != nil {
		_ = m.Close()
	}
}

// newTestPipeline returns
//
//	[loader(0), setter(0,0,1), setter(0,1,2)] -> [setter(1,0,3), setter(1,1,4)]
func newTestPipeline(t *testing.T, opts ...model.PipelineOption) (*pipeline.Pipeline, [][]*valueSetter) {
	t.Helper()
	seq := &pipeline.Sequence{}
	setters := [][]*valueSetter{
		{newValueSetter(t, 0, 0, 1), newValueSetter(t, 0, 1, 2)},
		{newValueSetter(t, 1, 0, 3), newValueSetter(t, 1, 1, 4)},
	}
	w0 := pipeline.NewWindow([]pipeline.Stage{&loader{}, setters[0][0], setters[0][1]}, pipeline.WithSequence(seq))
	w1 := pipeline.NewWindow([]pipeline.Stage{setters[1][0], setters[1][1]}, pipeline.WithSequence(seq))
	p, err := pipeline.New([]*pipeline.Window{w0, w1}, opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = p.Close() })
	return p, setters
}
