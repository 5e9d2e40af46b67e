package param_test

import (
	"image"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/askiada/go-cvpg/pkg/pipeline/param"
)

type counter struct{ calls int }

func (c *counter) trigger() error {
	c.calls++
	return nil
}

func TestNewIntSliderDefault(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		opts    []param.Option
		want    int
		wantErr error
	}{
		"no default":       {want: 1},
		"default in range": {opts: []param.Option{param.WithDefault(5)}, want: 5},
		"default on max":   {opts: []param.Option{param.WithDefault(10)}, want: 10},
		"default too low":  {opts: []param.Option{param.WithDefault(0)}, wantErr: param.ErrInvalidDefault},
		"default too high": {opts: []param.Option{param.WithDefault(11)}, wantErr: param.ErrInvalidDefault},
		"float default":    {opts: []param.Option{param.WithDefault(2.5)}, wantErr: param.ErrInvalidDefault},
		"string default":   {opts: []param.Option{param.WithDefault("3")}, wantErr: param.ErrInvalidDefault},
	}
	for name, tc := range tcs {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			s, err := param.NewIntSlider(1, 10, tc.opts...)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, s.Value())
			assert.Equal(t, param.KindIntSlider, s.Kind())
		})
	}
}

func TestNewSliderInvalidRange(t *testing.T) {
	t.Parallel()

	_, err := param.NewFloatSlider(2, 1)
	assert.ErrorIs(t, err, param.ErrInvalidRange)
}

func TestFloatParamsRejectNaN(t *testing.T) {
	t.Parallel()

	_, err := param.NewFloatSlider(0, 50, param.WithDefault(math.NaN()))
	assert.ErrorIs(t, err, param.ErrInvalidDefault)
	_, err = param.NewFloatSpinBox(0, 50, param.WithDefault(math.NaN()))
	assert.ErrorIs(t, err, param.ErrInvalidDefault)
	_, err = param.NewFloatSlider(math.NaN(), 50)
	assert.ErrorIs(t, err, param.ErrInvalidRange)

	s, err := param.NewFloatSlider(0, 50, param.WithDefault(3))
	require.NoError(t, err)
	c := &counter{}
	require.NoError(t, s.Bind(c.trigger))

	tcs := map[string]func() error{
		"set":       func() error { return s.Set(math.NaN()) },
		"text":      func() error { return s.SetText("NaN") },
		"text +Inf": func() error { return s.SetText("+Inf") },
	}
	for name, set := range tcs {
		assert.ErrorIs(t, set(), param.ErrOutOfRange, name)
	}
	assert.InDelta(t, 3.0, s.Value(), 1e-9)
	assert.Zero(t, c.calls)
}

func TestFloatSliderAcceptsIntDefault(t *testing.T) {
	t.Parallel()

	s, err := param.NewFloatSlider(0, 1, param.WithDefault(1), param.WithStep(0.1))
	require.NoError(t, err)
	assert.InDelta(t, 1.0, s.Value(), 1e-9)
	assert.InDelta(t, 0.1, s.Step(), 1e-9)
	assert.Equal(t, param.KindFloatSlider, s.Kind())
}

func TestSliderSetUnboundDoesNotTrigger(t *testing.T) {
	t.Parallel()

	s, err := param.NewIntSlider(0, 10)
	require.NoError(t, err)
	require.NoError(t, s.Set(4))
	assert.Equal(t, 4, s.Value())
	assert.False(t, s.Bound())
}

func TestSliderSetTriggers(t *testing.T) {
	t.Parallel()

	c := &counter{}
	s, err := param.NewIntSlider(0, 10)
	require.NoError(t, err)
	require.NoError(t, s.Bind(c.trigger))

	require.NoError(t, s.Set(7))
	assert.Equal(t, 7, s.Value())
	assert.Equal(t, 1, c.calls)

	assert.ErrorIs(t, s.Set(11), param.ErrOutOfRange)
	assert.Equal(t, 7, s.Value())
	assert.Equal(t, 1, c.calls)
}

func TestSliderSetTextPropagatesCallbackError(t *testing.T) {
	t.Parallel()

	s, err := param.NewIntSlider(0, 10)
	require.NoError(t, err)
	require.NoError(t, s.Bind(func() error { return assert.AnError }))

	assert.ErrorIs(t, s.SetText("3"), assert.AnError)
	assert.Equal(t, 3, s.Value())
	assert.ErrorIs(t, s.SetText("3.5"), param.ErrInvalidText)
}

func TestBindOnce(t *testing.T) {
	t.Parallel()

	s, err := param.NewIntSlider(0, 10)
	require.NoError(t, err)
	assert.ErrorIs(t, s.Bind(nil), param.ErrCallbackNotSet)
	require.NoError(t, s.Bind(func() error { return nil }))
	assert.ErrorIs(t, s.Bind(func() error { return nil }), param.ErrAlreadyBound)
}

func TestSliderSetRange(t *testing.T) {
	t.Parallel()

	c := &counter{}
	s, err := param.NewIntSlider(0, 100, param.WithDefault(80))
	require.NoError(t, err)
	require.NoError(t, s.Bind(c.trigger))

	require.NoError(t, s.SetRange(0, 50))
	assert.Equal(t, 50, s.Value())
	assert.Equal(t, 1, c.calls)

	require.NoError(t, s.SetRange(10, 60))
	assert.Equal(t, 50, s.Value())
	assert.Equal(t, 1, c.calls)

	assert.ErrorIs(t, s.SetRange(5, 1), param.ErrInvalidRange)

	fixed, err := param.NewIntSlider(0, 1, param.FixedRange())
	require.NoError(t, err)
	assert.False(t, fixed.EditableRange())
	assert.ErrorIs(t, fixed.SetRange(0, 2), param.ErrFixedRange)
}

func TestSpinBox(t *testing.T) {
	t.Parallel()

	s, err := param.NewFloatSpinBox(0.5, 2, param.WithDefault(1.5))
	require.NoError(t, err)
	assert.Equal(t, param.KindFloatSpinBox, s.Kind())
	assert.InDelta(t, 1.5, s.Value(), 1e-9)
	require.NoError(t, s.SetText("0.75"))
	assert.InDelta(t, 0.75, s.Value(), 1e-9)
	assert.Equal(t, "0.75", s.String())

	_, err = param.NewIntSpinBox(1, 5, param.WithDefault(6))
	assert.ErrorIs(t, err, param.ErrInvalidDefault)
}

func TestEnableDoesNotChangeValue(t *testing.T) {
	t.Parallel()

	s, err := param.NewIntSlider(0, 10, param.WithDefault(3))
	require.NoError(t, err)
	s.SetEnabled(false)
	assert.False(t, s.Enabled())
	assert.Equal(t, 3, s.Value())
	s.SetEnabled(true)
	assert.True(t, s.Enabled())
	assert.Equal(t, 3, s.Value())
}

func TestComboBox(t *testing.T) {
	t.Parallel()

	keys := []string{"binary", "to zero"}
	values := map[string]int{"binary": 0, "to zero": 3}

	c, err := param.NewComboBox(keys, values)
	require.NoError(t, err)
	assert.Equal(t, "binary", c.Key())
	assert.Equal(t, 0, c.Value())

	c, err = param.NewComboBox(keys, values, param.WithDefault("to zero"))
	require.NoError(t, err)
	assert.Equal(t, 3, c.Value())

	_, err = param.NewComboBox(keys, values, param.WithDefault("missing"))
	assert.ErrorIs(t, err, param.ErrInvalidDefault)

	_, err = param.NewComboBox([]string{"a"}, map[string]int{})
	assert.ErrorIs(t, err, param.ErrUnknownOption)

	assert.ErrorIs(t, c.Set("missing"), param.ErrUnknownOption)
	require.NoError(t, c.SetText("binary"))
	assert.Equal(t, 0, c.Any())
	assert.Equal(t, keys, c.Options())
}

func TestCheckBox(t *testing.T) {
	t.Parallel()

	_, err := param.NewCheckBox(param.WithDefault(1))
	assert.ErrorIs(t, err, param.ErrInvalidDefault)

	c := &counter{}
	cb, err := param.NewCheckBox(param.WithDefault(true))
	require.NoError(t, err)
	require.NoError(t, cb.Bind(c.trigger))

	require.NoError(t, cb.SetState(param.PartiallyChecked))
	assert.True(t, cb.Value())
	assert.Equal(t, 1, c.calls)

	require.NoError(t, cb.SetState(param.Unchecked))
	assert.False(t, cb.Value())
	assert.Equal(t, 2, c.calls)

	require.NoError(t, cb.SetText("true"))
	assert.True(t, cb.Value())
	assert.ErrorIs(t, cb.SetText("maybe"), param.ErrInvalidText)
}

func TestColorPicker(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		def     any
		want    param.Color
		wantErr error
	}{
		"no default":          {want: param.White},
		"slice":               {def: []int{255, 0, 10}, want: param.Color{255, 0, 10}},
		"array":               {def: [3]int{1, 2, 3}, want: param.Color{1, 2, 3}},
		"two components":      {def: []int{1, 2}, wantErr: param.ErrInvalidDefault},
		"component too large": {def: []int{1, 2, 256}, wantErr: param.ErrInvalidDefault},
		"negative component":  {def: []int{-1, 2, 3}, wantErr: param.ErrInvalidDefault},
		"wrong type":          {def: "red", wantErr: param.ErrInvalidDefault},
	}
	for name, tc := range tcs {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			c, err := param.NewColorPicker(param.WithDefault(tc.def))
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, c.Value())
		})
	}
}

func TestColorRGBA(t *testing.T) {
	t.Parallel()

	rgba := param.Color{10, 20, 30}.RGBA()
	assert.Equal(t, uint8(30), rgba.R)
	assert.Equal(t, uint8(20), rgba.G)
	assert.Equal(t, uint8(10), rgba.B)
	assert.Equal(t, uint8(255), rgba.A)
}

func TestLabel(t *testing.T) {
	t.Parallel()

	c := &counter{}
	l := param.NewLabel("Found %d points")
	require.NoError(t, l.Bind(c.trigger))
	assert.True(t, l.ReadOnly())
	assert.Equal(t, "", l.String())

	l.Update(12)
	assert.Equal(t, "Found 12 points", l.String())
	assert.Equal(t, 0, c.calls)
	assert.ErrorIs(t, l.SetText("3"), param.ErrReadOnly)
}

func TestDimensions2D(t *testing.T) {
	t.Parallel()

	d, err := param.NewDefaultDimensions2D()
	require.NoError(t, err)
	assert.Equal(t, param.Size{Width: 500, Height: 500}, d.Value())
	assert.Equal(t, 150, d.Min())
	assert.Equal(t, 800, d.Max())

	d, err = param.NewDefaultDimensions2D(param.WithDefault([]int{200, 300}), param.WithPrefix("size "))
	require.NoError(t, err)
	assert.Equal(t, param.Size{Width: 200, Height: 300}, d.Value())
	assert.Equal(t, "size 200x300", d.String())

	_, err = param.NewDefaultDimensions2D(param.WithDefault([]int{1, 2, 3}))
	assert.ErrorIs(t, err, param.ErrInvalidDefault)
	_, err = param.NewDefaultDimensions2D(param.WithDefault([]int{100, 300}))
	assert.ErrorIs(t, err, param.ErrInvalidDefault, "a default must be accepted by Set")

	small, err := param.NewDimensions2D(10, 200)
	require.NoError(t, err)
	assert.Equal(t, param.Size{Width: 200, Height: 200}, small.Value())

	require.NoError(t, d.SetText("640, 480"))
	assert.Equal(t, param.Size{Width: 640, Height: 480}, d.Value())
	assert.ErrorIs(t, d.Set(100, 480), param.ErrOutOfRange)
	assert.ErrorIs(t, d.SetText("640"), param.ErrInvalidText)
}

func TestArrayDefaults(t *testing.T) {
	t.Parallel()

	a, err := param.NewArray()
	require.NoError(t, err)
	r, c := a.Value().Dims()
	assert.Equal(t, 3, r)
	assert.Equal(t, 3, c)
	assert.Equal(t, image.Pt(-1, -1), a.Anchor())
	assert.Equal(t, "1,1,1;1,1,1;1,1,1", a.String())

	a, err = param.NewArray(param.WithDims(1))
	require.NoError(t, err)
	r, c = a.Value().Dims()
	assert.Equal(t, 1, r)
	assert.Equal(t, 3, c)

	_, err = param.NewArray(param.WithDefault([]float64{1}))
	assert.ErrorIs(t, err, param.ErrInvalidDefault)

	_, err = param.NewArray(param.WithDims(3))
	assert.ErrorIs(t, err, param.ErrInvalidDefault)
}

func TestArrayValueIsACopy(t *testing.T) {
	t.Parallel()

	def := mat.NewDense(2, 2, []float64{1, 0, 0, 1})
	a, err := param.NewArray(param.WithDefault(def))
	require.NoError(t, err)

	def.Set(0, 0, 9)
	v := a.Value()
	v.Set(1, 1, 9)
	assert.Equal(t, "1,0;0,1", a.String())
}

func TestArraySetTextAndAnchor(t *testing.T) {
	t.Parallel()

	c := &counter{}
	a, err := param.NewArray()
	require.NoError(t, err)
	require.NoError(t, a.Bind(c.trigger))

	require.NoError(t, a.SetText("0,-1,0;-1,5,-1;0,-1,0"))
	assert.InDelta(t, 5.0, a.Value().At(1, 1), 1e-9)
	assert.ErrorIs(t, a.SetText("1,2;3"), param.ErrInvalidText)

	require.NoError(t, a.SetAnchor(image.Pt(0, 2)))
	assert.Equal(t, image.Pt(0, 2), a.Anchor())
	assert.ErrorIs(t, a.SetAnchor(image.Pt(3, 0)), param.ErrOutOfRange)
	assert.Equal(t, 2, c.calls)

	noAnchor, err := param.NewArray(param.WithoutAnchor())
	require.NoError(t, err)
	assert.ErrorIs(t, noAnchor.SetAnchor(image.Pt(0, 0)), param.ErrAnchorDisabled)
}

func TestArrayShape(t *testing.T) {
	t.Parallel()

	a, err := param.NewArray(param.WithStructElement())
	require.NoError(t, err)
	assert.False(t, a.Editable())

	require.NoError(t, a.SetShape(param.ShapeCross))
	assert.Equal(t, "0,1,0;1,1,1;0,1,0", a.String())
	assert.Equal(t, param.ShapeCross, a.Shape())
	assert.ErrorIs(t, a.SetShape("star"), param.ErrUnknownOption)

	free, err := param.NewArray()
	require.NoError(t, err)
	assert.ErrorIs(t, free.SetShape(param.ShapeRect), param.ErrReadOnly)
}

func TestSliderPair(t *testing.T) {
	t.Parallel()

	c := &counter{}
	s, err := param.NewSliderPair(0, 255, param.WithDefault(param.Pair{Low: 5, High: 6}))
	require.NoError(t, err)
	assert.Equal(t, param.Pair{Low: 0, High: 255}, s.Value())
	require.NoError(t, s.Bind(c.trigger))

	require.NoError(t, s.SetLow(10))
	require.NoError(t, s.SetHigh(100))
	assert.Equal(t, param.Pair{Low: 10, High: 100}, s.Value())
	assert.Equal(t, 2, c.calls)
	assert.ErrorIs(t, s.SetHigh(300), param.ErrOutOfRange)
	require.NoError(t, s.SetText("1,2"))
	assert.Equal(t, "1,2", s.String())
}
