package pipeline

import (
	"github.com/mohae/deepcopy"
	"gocv.io/x/gocv"
)

// present reports whether img holds a frame.
func present(img *gocv.Mat) bool {
	return img != nil && !img.Empty()
}

// cloneMat returns an independent copy of img.
func cloneMat(img *gocv.Mat) *gocv.Mat {
	if img == nil {
		return nil
	}
	c := img.Clone()
	return &c
}

func closeMat(img *gocv.Mat) {
	if img != nil {
		_ = img.Close()
	}
}

// copyExtra returns a deep copy of extra. Mats are cloned, every other value
// goes through deepcopy, which honours deepcopy.Interface.
func copyExtra(extra any) any {
	switch e := extra.(type) {
	case nil:
		return nil
	case *gocv.Mat:
		return cloneMat(e)
	case gocv.Mat:
		return e.Clone()
	default:
		return deepcopy.Copy(extra)
	}
}

// closeExtra releases extra when it holds a Mat.
func closeExtra(extra any) {
	switch e := extra.(type) {
	case *gocv.Mat:
		closeMat(e)
	case gocv.Mat:
		_ = e.Close()
	}
}

// frame is an image and its auxiliary value.
type frame struct {
	img   *gocv.Mat
	extra any
}

func (f frame) clone() frame {
	return frame{img: cloneMat(f.img), extra: copyExtra(f.extra)}
}

func (f frame) close() {
	closeMat(f.img)
	closeExtra(f.extra)
}
