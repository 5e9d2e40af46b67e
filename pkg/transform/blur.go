package transform

import (
	"image"

	"github.com/pkg/errors"
	"gocv.io/x/gocv"

	"github.com/askiada/go-cvpg/pkg/pipeline/param"
)

// GaussianBlur smooths an image with a Gaussian kernel. Even kernel sizes are
// rounded up to the next odd number.
type GaussianBlur struct {
	Base
	kSizeX, kSizeY *param.Slider[int]
	sigmaX, sigmaY *param.Slider[float64]
	border         *param.ComboBox[gocv.BorderType]
}

func NewGaussianBlur(opts ...Option) (*GaussianBlur, error) {
	b := newBuilder()
	kSizeX, err := param.NewIntSlider(1, 51, param.WithDefault(5), param.WithStep(2))
	b.add("k_size_x", kSizeX, err)
	kSizeY, err := param.NewIntSlider(1, 51, param.WithDefault(5), param.WithStep(2))
	b.add("k_size_y", kSizeY, err)
	sigmaX, err := param.NewFloatSlider(0, 50, param.WithStep(0.1),
		param.WithHelpText("0 computes sigma from the kernel size"))
	b.add("sigma_x", sigmaX, err)
	sigmaY, err := param.NewFloatSlider(0, 50, param.WithStep(0.1),
		param.WithHelpText("0 uses sigma_x"))
	b.add("sigma_y", sigmaY, err)
	border, err := param.NewComboBox(borderKeys, borderTypes)
	b.add("border_type", border, err)
	set, err := b.result("GaussianBlur")
	if err != nil {
		return nil, err
	}

	return &GaussianBlur{
		Base:   newBase("GaussianBlur", set, opts),
		kSizeX: kSizeX,
		kSizeY: kSizeY,
		sigmaX: sigmaX,
		sigmaY: sigmaY,
		border: border,
	}, nil
}

func (g *GaussianBlur) Process(img *gocv.Mat, extra any) (*gocv.Mat, any) {
	return g.run(img, extra, func(img *gocv.Mat, extra any) (*gocv.Mat, any, error) {
		if err := requireImage(img); err != nil {
			return nil, nil, err
		}

		ksize := image.Pt(oddKernel(g.kSizeX.Value()), oddKernel(g.kSizeY.Value()))
		dst := gocv.NewMat()
		err := gocv.GaussianBlur(*img, &dst, ksize, g.sigmaX.Value(), g.sigmaY.Value(), g.border.Value())
		if err != nil {
			_ = dst.Close()
			return nil, nil, errors.Wrap(err, "unable to blur")
		}
		return &dst, extra, nil
	})
}

// MedianBlur replaces every pixel with the median of its neighbourhood.
type MedianBlur struct {
	Base
	kSize *param.Slider[int]
}

func NewMedianBlur(opts ...Option) (*MedianBlur, error) {
	b := newBuilder()
	kSize, err := param.NewIntSlider(1, 99, param.WithDefault(5), param.WithStep(2))
	b.add("k_size", kSize, err)
	set, err := b.result("MedianBlur")
	if err != nil {
		return nil, err
	}

	return &MedianBlur{
		Base:  newBase("MedianBlur", set, opts),
		kSize: kSize,
	}, nil
}

func (m *MedianBlur) Process(img *gocv.Mat, extra any) (*gocv.Mat, any) {
	return m.run(img, extra, func(img *gocv.Mat, extra any) (*gocv.Mat, any, error) {
		if err := requireImage(img); err != nil {
			return nil, nil, err
		}

		dst := gocv.NewMat()
		err := gocv.MedianBlur(*img, &dst, oddKernel(m.kSize.Value()))
		if err != nil {
			_ = dst.Close()
			return nil, nil, errors.Wrap(err, "unable to blur")
		}
		return &dst, extra, nil
	})
}

// Filter2D convolves an image with a user defined kernel.
type Filter2D struct {
	Base
	kernel    *param.Array
	normalize *param.CheckBox
	delta     *param.SpinBox[float64]
	border    *param.ComboBox[gocv.BorderType]
}

func NewFilter2D(opts ...Option) (*Filter2D, error) {
	b := newBuilder()
	kernel, err := param.NewArray()
	b.add("kernel", kernel, err)
	normalize, err := param.NewCheckBox(param.WithDefault(true),
		param.WithHelpText("Divide the kernel by the sum of its values"))
	b.add("normalize", normalize, err)
	delta, err := param.NewFloatSpinBox(-255, 255, param.WithDefault(0.0))
	b.add("delta", delta, err)
	border, err := param.NewComboBox(borderKeys, borderTypes)
	b.add("border_type", border, err)
	set, err := b.result("Filter2D")
	if err != nil {
		return nil, err
	}

	return &Filter2D{
		Base:      newBase("Filter2D", set, opts),
		kernel:    kernel,
		normalize: normalize,
		delta:     delta,
		border:    border,
	}, nil
}

// kernelMat converts the kernel param to a 64-bit float Mat. The caller closes it.
func (f *Filter2D) kernelMat() gocv.Mat {
	k := f.kernel.Value()
	rows, cols := k.Dims()

	sum := 0.0
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			sum += k.At(r, c)
		}
	}
	scale := 1.0
	if f.normalize.Value() && sum != 0 {
		scale = 1 / sum
	}

	m := gocv.NewMatWithSize(rows, cols, gocv.MatTypeCV64F)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			m.SetDoubleAt(r, c, k.At(r, c)*scale)
		}
	}
	return m
}

func (f *Filter2D) Process(img *gocv.Mat, extra any) (*gocv.Mat, any) {
	return f.run(img, extra, func(img *gocv.Mat, extra any) (*gocv.Mat, any, error) {
		if err := requireImage(img); err != nil {
			return nil, nil, err
		}

		kernel := f.kernelMat()
		defer kernel.Close()

		dst := gocv.NewMat()
		err := gocv.Filter2D(*img, &dst, -1, kernel, f.kernel.Anchor(), f.delta.Value(), f.border.Value())
		if err != nil {
			_ = dst.Close()
			return nil, nil, errors.Wrap(err, "unable to filter")
		}
		return &dst, extra, nil
	})
}
