package transform

import (
	"github.com/pkg/errors"
	"gocv.io/x/gocv"

	"github.com/askiada/go-cvpg/pkg/pipeline/param"
)

// CvtColor converts a BGR image to another colour space.
type CvtColor struct {
	Base
	colorSpace *param.ComboBox[conversion]
}

func NewCvtColor(opts ...Option) (*CvtColor, error) {
	b := newBuilder()
	colorSpace, err := param.NewComboBox(colorSpaceKeys, colorSpaces)
	b.add("color_space", colorSpace, err)
	set, err := b.result("CvtColor")
	if err != nil {
		return nil, err
	}

	return &CvtColor{
		Base:       newBase("CvtColor", set, opts),
		colorSpace: colorSpace,
	}, nil
}

func (c *CvtColor) Process(img *gocv.Mat, extra any) (*gocv.Mat, any) {
	return c.run(img, extra, func(img *gocv.Mat, extra any) (*gocv.Mat, any, error) {
		if err := requireImage(img); err != nil {
			return nil, nil, err
		}
		conv := c.colorSpace.Value()
		if conv.keep {
			return img, extra, nil
		}
		if img.Channels() != 3 {
			return nil, nil, errors.Wrapf(ErrChannels, "expected 3, got %d", img.Channels())
		}

		dst := gocv.NewMat()
		err := gocv.CvtColor(*img, &dst, conv.code)
		if err != nil {
			_ = dst.Close()
			return nil, nil, errors.Wrapf(err, "unable to convert to %s", c.colorSpace.Key())
		}
		return &dst, extra, nil
	})
}
