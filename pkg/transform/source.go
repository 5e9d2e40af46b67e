package transform

import (
	"os"

	"github.com/pkg/errors"
	"gocv.io/x/gocv"

	"github.com/askiada/go-cvpg/pkg/pipeline/param"
)

// LoadImage is a source stage returning the image read from a file. It ignores its input.
type LoadImage struct {
	Base
	path string
	img  gocv.Mat
}

// NewLoadImage reads the colour image at path.
func NewLoadImage(path string, opts ...Option) (*LoadImage, error) {
	if path == "" {
		return nil, ErrEmptyPath
	}
	_, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(ErrFileNotFound, "%s", path)
		}
		return nil, errors.Wrapf(err, "unable to stat %s", path)
	}

	img := gocv.IMRead(path, gocv.IMReadColor)
	if img.Empty() {
		_ = img.Close()
		return nil, errors.Wrapf(ErrUnreadableImage, "%s", path)
	}

	return &LoadImage{
		Base: newBase("LoadImage", param.NewSet(), opts),
		path: path,
		img:  img,
	}, nil
}

func (l *LoadImage) Path() string { return l.path }

func (l *LoadImage) Process(img *gocv.Mat, extra any) (*gocv.Mat, any) {
	return l.run(img, extra, func(*gocv.Mat, any) (*gocv.Mat, any, error) {
		out := l.img.Clone()
		return &out, nil, nil
	})
}

// Close releases the loaded image.
func (l *LoadImage) Close() error {
	return l.img.Close()
}

// BlankCanvas is a source stage returning an image filled with a colour.
type BlankCanvas struct {
	Base
	size  *param.Dimensions2D
	color *param.ColorPicker
}

func NewBlankCanvas(opts ...Option) (*BlankCanvas, error) {
	b := newBuilder()
	size, err := param.NewDimensions2D(100, 800, param.WithDefault([]int{250, 250}))
	b.add("img_shape", size, err)
	color, err := param.NewColorPicker(param.WithDefault([]int{0, 0, 0}))
	b.add("color", color, err)
	set, err := b.result("BlankCanvas")
	if err != nil {
		return nil, err
	}

	return &BlankCanvas{
		Base:  newBase("BlankCanvas", set, opts),
		size:  size,
		color: color,
	}, nil
}

func (bc *BlankCanvas) Process(img *gocv.Mat, extra any) (*gocv.Mat, any) {
	return bc.run(img, extra, func(_ *gocv.Mat, extra any) (*gocv.Mat, any, error) {
		size, c := bc.size.Value(), bc.color.Value()
		out := gocv.NewMatWithSizeFromScalar(
			gocv.NewScalar(float64(c[0]), float64(c[1]), float64(c[2]), 0),
			size.Height, size.Width, gocv.MatTypeCV8UC3,
		)
		return &out, extra, nil
	})
}
