package transform

import (
	"image"

	"github.com/pkg/errors"
	"gocv.io/x/gocv"

	"github.com/askiada/go-cvpg/pkg/pipeline/param"
)

// DrawCirclesFromPoints draws a circle around every point of the extra value,
// a []image.Point. Gray images are converted to BGR.
type DrawCirclesFromPoints struct {
	Base
	color     *param.ColorPicker
	radius    *param.Slider[int]
	thickness *param.Slider[int]
}

func NewDrawCirclesFromPoints(opts ...Option) (*DrawCirclesFromPoints, error) {
	b := newBuilder()
	color, err := param.NewColorPicker(param.WithDefault([]int{0, 0, 255}))
	b.add("color", color, err)
	radius, err := param.NewIntSlider(1, 50, param.WithDefault(2))
	b.add("radius", radius, err)
	thickness, err := param.NewIntSlider(-1, 20, param.WithDefault(-1),
		param.WithHelpText("-1 fills the circle"))
	b.add("thickness", thickness, err)
	set, err := b.result("DrawCirclesFromPoints")
	if err != nil {
		return nil, err
	}

	return &DrawCirclesFromPoints{
		Base:      newBase("DrawCirclesFromPoints", set, opts),
		color:     color,
		radius:    radius,
		thickness: thickness,
	}, nil
}

func (d *DrawCirclesFromPoints) Process(img *gocv.Mat, extra any) (*gocv.Mat, any) {
	return d.run(img, extra, func(img *gocv.Mat, extra any) (*gocv.Mat, any, error) {
		if err := requireImage(img); err != nil {
			return nil, nil, err
		}
		if extra == nil {
			return img, extra, nil
		}
		points, ok := extra.([]image.Point)
		if !ok {
			return nil, nil, errors.Wrapf(ErrExtraType, "expected []image.Point, got %T", extra)
		}

		dst, err := bgr(img)
		if err != nil {
			return nil, nil, err
		}
		c := d.color.Value().RGBA()
		for _, p := range points {
			err = gocv.Circle(&dst, p, d.radius.Value(), c, d.thickness.Value())
			if err != nil {
				_ = dst.Close()
				return nil, nil, errors.Wrap(err, "unable to draw circle")
			}
		}
		return &dst, extra, nil
	})
}

// DrawLinesByEndpoints draws every segment of the extra value, a []Segment.
// Gray images are converted to BGR.
type DrawLinesByEndpoints struct {
	Base
	color     *param.ColorPicker
	thickness *param.Slider[int]
}

func NewDrawLinesByEndpoints(opts ...Option) (*DrawLinesByEndpoints, error) {
	b := newBuilder()
	color, err := param.NewColorPicker(param.WithDefault([]int{0, 0, 255}))
	b.add("color", color, err)
	thickness, err := param.NewIntSlider(1, 100, param.WithDefault(2))
	b.add("thickness", thickness, err)
	set, err := b.result("DrawLinesByEndpoints")
	if err != nil {
		return nil, err
	}

	return &DrawLinesByEndpoints{
		Base:      newBase("DrawLinesByEndpoints", set, opts),
		color:     color,
		thickness: thickness,
	}, nil
}

func (d *DrawLinesByEndpoints) Process(img *gocv.Mat, extra any) (*gocv.Mat, any) {
	return d.run(img, extra, func(img *gocv.Mat, extra any) (*gocv.Mat, any, error) {
		if err := requireImage(img); err != nil {
			return nil, nil, err
		}
		if extra == nil {
			return img, extra, nil
		}
		segments, ok := extra.([]Segment)
		if !ok {
			return nil, nil, errors.Wrapf(ErrExtraType, "expected []Segment, got %T", extra)
		}

		dst, err := bgr(img)
		if err != nil {
			return nil, nil, err
		}
		c := d.color.Value().RGBA()
		for _, s := range segments {
			err = gocv.Line(&dst, s.From, s.To, c, d.thickness.Value())
			if err != nil {
				_ = dst.Close()
				return nil, nil, errors.Wrap(err, "unable to draw line")
			}
		}
		return &dst, extra, nil
	})
}
