package transform

import (
	"github.com/pkg/errors"
	"gocv.io/x/gocv"

	"github.com/askiada/go-cvpg/pkg/pipeline/param"
)

// Canny detects edges. Colour images are converted to gray first, so the
// output is always a single channel image.
type Canny struct {
	Base
	threshold1, threshold2 *param.Slider[int]
}

func NewCanny(opts ...Option) (*Canny, error) {
	b := newBuilder()
	threshold1, err := param.NewIntSlider(0, 1000, param.WithDefault(100),
		param.WithHelpText("Lower hysteresis threshold"))
	b.add("threshold1", threshold1, err)
	threshold2, err := param.NewIntSlider(0, 1000, param.WithDefault(200),
		param.WithHelpText("Upper hysteresis threshold"))
	b.add("threshold2", threshold2, err)
	set, err := b.result("Canny")
	if err != nil {
		return nil, err
	}

	return &Canny{
		Base:       newBase("Canny", set, opts),
		threshold1: threshold1,
		threshold2: threshold2,
	}, nil
}

func (c *Canny) Process(img *gocv.Mat, extra any) (*gocv.Mat, any) {
	return c.run(img, extra, func(img *gocv.Mat, extra any) (*gocv.Mat, any, error) {
		if err := requireImage(img); err != nil {
			return nil, nil, err
		}
		g, err := gray(img)
		if err != nil {
			return nil, nil, err
		}
		defer g.Close()

		dst := gocv.NewMat()
		err = gocv.Canny(g, &dst, float32(c.threshold1.Value()), float32(c.threshold2.Value()))
		if err != nil {
			_ = dst.Close()
			return nil, nil, errors.Wrap(err, "unable to detect edges")
		}
		return &dst, extra, nil
	})
}

// Threshold applies a fixed level threshold to every pixel. With Otsu, the
// level is computed from the gray image and the thresh param is ignored.
type Threshold struct {
	Base
	thresh   *param.Slider[int]
	maxValue *param.Slider[int]
	kind     *param.ComboBox[gocv.ThresholdType]
	otsu     *param.CheckBox
}

func NewThreshold(opts ...Option) (*Threshold, error) {
	b := newBuilder()
	thresh, err := param.NewIntSlider(0, 255, param.WithDefault(127))
	b.add("thresh", thresh, err)
	maxValue, err := param.NewIntSlider(0, 255, param.WithDefault(255))
	b.add("max_value", maxValue, err)
	kind, err := param.NewComboBox(thresholdKeys, thresholdTypes)
	b.add("type", kind, err)
	otsu, err := param.NewCheckBox(param.WithHelpText("Compute the threshold with Otsu's method"))
	b.add("otsu", otsu, err)
	set, err := b.result("Threshold")
	if err != nil {
		return nil, err
	}

	return &Threshold{
		Base:     newBase("Threshold", set, opts),
		thresh:   thresh,
		maxValue: maxValue,
		kind:     kind,
		otsu:     otsu,
	}, nil
}

func (t *Threshold) Process(img *gocv.Mat, extra any) (*gocv.Mat, any) {
	return t.run(img, extra, func(img *gocv.Mat, extra any) (*gocv.Mat, any, error) {
		if err := requireImage(img); err != nil {
			return nil, nil, err
		}

		src := *img
		typ := t.kind.Value()
		if t.otsu.Value() {
			g, err := gray(img)
			if err != nil {
				return nil, nil, err
			}
			defer g.Close()
			src = g
			typ |= gocv.ThresholdOtsu
		}

		dst := gocv.NewMat()
		// Threshold reports failures through the last exception only.
		gocv.ClearLastException()
		gocv.Threshold(src, &dst, float32(t.thresh.Value()), float32(t.maxValue.Value()), typ)
		if err := gocv.LastExceptionError(); err != nil {
			_ = dst.Close()
			return nil, nil, errors.Wrap(err, "unable to threshold")
		}
		return &dst, extra, nil
	})
}

// InRange returns a mask of the pixels whose channels all lie within their range.
type InRange struct {
	Base
	channels [3]*param.SliderPair
}

func NewInRange(opts ...Option) (*InRange, error) {
	b := newBuilder()
	ir := &InRange{}
	names := [3]string{"ch_0", "ch_1", "ch_2"}
	for i, name := range names {
		p, err := param.NewSliderPair(0, 255)
		b.add(name, p, err)
		ir.channels[i] = p
	}
	set, err := b.result("InRange")
	if err != nil {
		return nil, err
	}
	ir.Base = newBase("InRange", set, opts)

	return ir, nil
}

func (ir *InRange) Process(img *gocv.Mat, extra any) (*gocv.Mat, any) {
	return ir.run(img, extra, func(img *gocv.Mat, extra any) (*gocv.Mat, any, error) {
		if err := requireImage(img); err != nil {
			return nil, nil, err
		}
		if img.Channels() > 3 {
			return nil, nil, errors.Wrapf(ErrChannels, "expected at most 3, got %d", img.Channels())
		}

		var low, high [3]float64
		for i, ch := range ir.channels {
			v := ch.Value()
			low[i], high[i] = float64(v.Low), float64(v.High)
		}

		dst := gocv.NewMat()
		err := gocv.InRangeWithScalar(*img,
			gocv.NewScalar(low[0], low[1], low[2], 0),
			gocv.NewScalar(high[0], high[1], high[2], 0),
			&dst,
		)
		if err != nil {
			_ = dst.Close()
			return nil, nil, errors.Wrap(err, "unable to compute range mask")
		}
		return &dst, extra, nil
	})
}
