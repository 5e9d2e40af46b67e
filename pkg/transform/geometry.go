package transform

import (
	"image"

	"github.com/pkg/errors"
	"gocv.io/x/gocv"

	"github.com/askiada/go-cvpg/pkg/pipeline/param"
)

// CopyMakeBorder pads an image.
type CopyMakeBorder struct {
	Base
	top, bottom, left, right *param.Slider[int]
	border                   *param.ComboBox[gocv.BorderType]
	color                    *param.ColorPicker
}

func NewCopyMakeBorder(opts ...Option) (*CopyMakeBorder, error) {
	b := newBuilder()
	sides := make(map[string]*param.Slider[int], 4)
	for _, name := range []string{"top", "bottom", "left", "right"} {
		s, err := param.NewIntSlider(0, 200, param.WithDefault(10))
		b.add(name, s, err)
		sides[name] = s
	}
	border, err := param.NewComboBox(
		[]string{"Constant", "Replicate", "Reflect", "Reflect 101", "Wrap"},
		map[string]gocv.BorderType{
			"Constant":    gocv.BorderConstant,
			"Replicate":   gocv.BorderReplicate,
			"Reflect":     gocv.BorderReflect,
			"Reflect 101": gocv.BorderReflect101,
			"Wrap":        gocv.BorderWrap,
		},
	)
	b.add("border_type", border, err)
	color, err := param.NewColorPicker(param.WithDefault([]int{0, 0, 0}),
		param.WithHelpText("Used by the Constant border"))
	b.add("color", color, err)
	set, err := b.result("CopyMakeBorder")
	if err != nil {
		return nil, err
	}

	return &CopyMakeBorder{
		Base:   newBase("CopyMakeBorder", set, opts),
		top:    sides["top"],
		bottom: sides["bottom"],
		left:   sides["left"],
		right:  sides["right"],
		border: border,
		color:  color,
	}, nil
}

func (c *CopyMakeBorder) Process(img *gocv.Mat, extra any) (*gocv.Mat, any) {
	return c.run(img, extra, func(img *gocv.Mat, extra any) (*gocv.Mat, any, error) {
		if err := requireImage(img); err != nil {
			return nil, nil, err
		}

		dst := gocv.NewMat()
		err := gocv.CopyMakeBorder(*img, &dst,
			c.top.Value(), c.bottom.Value(), c.left.Value(), c.right.Value(),
			c.border.Value(), c.color.Value().RGBA(),
		)
		if err != nil {
			_ = dst.Close()
			return nil, nil, errors.Wrap(err, "unable to add border")
		}
		return &dst, extra, nil
	})
}

// Resize scales an image to a fixed size.
type Resize struct {
	Base
	size          *param.Dimensions2D
	interpolation *param.ComboBox[gocv.InterpolationFlags]
}

func NewResize(opts ...Option) (*Resize, error) {
	b := newBuilder()
	size, err := param.NewDefaultDimensions2D(param.WithPrefix("size "))
	b.add("size", size, err)
	interpolation, err := param.NewComboBox(interpolationKeys, interpolations)
	b.add("interpolation", interpolation, err)
	set, err := b.result("Resize")
	if err != nil {
		return nil, err
	}

	return &Resize{
		Base:          newBase("Resize", set, opts),
		size:          size,
		interpolation: interpolation,
	}, nil
}

func (r *Resize) Process(img *gocv.Mat, extra any) (*gocv.Mat, any) {
	return r.run(img, extra, func(img *gocv.Mat, extra any) (*gocv.Mat, any, error) {
		if err := requireImage(img); err != nil {
			return nil, nil, err
		}

		size := r.size.Value()
		dst := gocv.NewMat()
		err := gocv.Resize(*img, &dst, image.Pt(size.Width, size.Height), 0, 0, r.interpolation.Value())
		if err != nil {
			_ = dst.Close()
			return nil, nil, errors.Wrap(err, "unable to resize")
		}
		return &dst, extra, nil
	})
}
