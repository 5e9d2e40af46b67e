package transform

import (
	"image"
	"math"

	"github.com/pkg/errors"
	"gocv.io/x/gocv"

	"github.com/askiada/go-cvpg/pkg/pipeline/param"
)

// Segment is a line segment found by HoughLinesP.
type Segment struct {
	From image.Point
	To   image.Point
}

// GoodFeaturesToTrack finds the strongest corners of an image. The image is
// passed through and the corners, as []image.Point, become the extra value.
type GoodFeaturesToTrack struct {
	Base
	maxCorners   *param.Slider[int]
	qualityLevel *param.Slider[float64]
	minDistance  *param.Slider[float64]
	found        *param.Label
}

func NewGoodFeaturesToTrack(opts ...Option) (*GoodFeaturesToTrack, error) {
	b := newBuilder()
	maxCorners, err := param.NewIntSlider(1, 1000, param.WithDefault(100))
	b.add("max_corners", maxCorners, err)
	qualityLevel, err := param.NewFloatSlider(0.001, 1, param.WithDefault(0.01), param.WithStep(0.001),
		param.WithHelpText("Minimal accepted quality, relative to the best corner"))
	b.add("quality_level", qualityLevel, err)
	minDistance, err := param.NewFloatSlider(0, 100, param.WithDefault(10))
	b.add("min_distance", minDistance, err)
	found := param.NewLabel("Found %d corners")
	b.add("found", found, nil)
	set, err := b.result("GoodFeaturesToTrack")
	if err != nil {
		return nil, err
	}

	return &GoodFeaturesToTrack{
		Base:         newBase("GoodFeaturesToTrack", set, opts),
		maxCorners:   maxCorners,
		qualityLevel: qualityLevel,
		minDistance:  minDistance,
		found:        found,
	}, nil
}

func (g *GoodFeaturesToTrack) Process(img *gocv.Mat, extra any) (*gocv.Mat, any) {
	return g.run(img, extra, func(img *gocv.Mat, _ any) (*gocv.Mat, any, error) {
		if err := requireImage(img); err != nil {
			return nil, nil, err
		}
		src, err := gray(img)
		if err != nil {
			return nil, nil, err
		}
		defer src.Close()

		corners := gocv.NewMat()
		defer corners.Close()
		err = gocv.GoodFeaturesToTrack(src, &corners, g.maxCorners.Value(), g.qualityLevel.Value(), g.minDistance.Value())
		if err != nil {
			return nil, nil, errors.Wrap(err, "unable to find corners")
		}

		points := make([]image.Point, 0, corners.Rows())
		for i := 0; i < corners.Rows(); i++ {
			v := corners.GetVecfAt(i, 0)
			if len(v) < 2 {
				continue
			}
			points = append(points, image.Pt(int(math.Round(float64(v[0]))), int(math.Round(float64(v[1])))))
		}
		g.found.Update(len(points))

		return img, points, nil
	})
}

// HoughLinesP finds line segments in an edge map. The image is passed through
// and the segments, as []Segment, become the extra value.
type HoughLinesP struct {
	Base
	rho           *param.SpinBox[float64]
	theta         *param.SpinBox[float64]
	threshold     *param.SpinBox[int]
	minLineLength *param.SpinBox[int]
	maxLineGap    *param.SpinBox[int]
	found         *param.Label
}

func NewHoughLinesP(opts ...Option) (*HoughLinesP, error) {
	b := newBuilder()
	rho, err := param.NewFloatSpinBox(0.1, 10, param.WithDefault(1.0), param.WithStep(0.1),
		param.WithHelpText("Distance resolution in pixels"))
	b.add("rho", rho, err)
	theta, err := param.NewFloatSpinBox(0.1, 180, param.WithDefault(1.0), param.WithStep(0.1),
		param.WithHelpText("Angle resolution in degrees"))
	b.add("theta", theta, err)
	threshold, err := param.NewIntSpinBox(1, 500, param.WithDefault(50))
	b.add("threshold", threshold, err)
	minLineLength, err := param.NewIntSpinBox(0, 1000, param.WithDefault(30))
	b.add("min_line_length", minLineLength, err)
	maxLineGap, err := param.NewIntSpinBox(0, 500, param.WithDefault(10))
	b.add("max_line_gap", maxLineGap, err)
	found := param.NewLabel("Found %d lines")
	b.add("found", found, nil)
	set, err := b.result("HoughLinesP")
	if err != nil {
		return nil, err
	}

	return &HoughLinesP{
		Base:          newBase("HoughLinesP", set, opts),
		rho:           rho,
		theta:         theta,
		threshold:     threshold,
		minLineLength: minLineLength,
		maxLineGap:    maxLineGap,
		found:         found,
	}, nil
}

func (h *HoughLinesP) Process(img *gocv.Mat, extra any) (*gocv.Mat, any) {
	return h.run(img, extra, func(img *gocv.Mat, _ any) (*gocv.Mat, any, error) {
		if err := requireImage(img); err != nil {
			return nil, nil, err
		}
		src, err := gray(img)
		if err != nil {
			return nil, nil, err
		}
		defer src.Close()

		lines := gocv.NewMat()
		defer lines.Close()
		err = gocv.HoughLinesPWithParams(src, &lines,
			float32(h.rho.Value()),
			float32(h.theta.Value()*math.Pi/180),
			h.threshold.Value(),
			float32(h.minLineLength.Value()),
			float32(h.maxLineGap.Value()),
		)
		if err != nil {
			return nil, nil, errors.Wrap(err, "unable to find lines")
		}

		segments := make([]Segment, 0, lines.Rows())
		for i := 0; i < lines.Rows(); i++ {
			v := lines.GetVeciAt(i, 0)
			if len(v) < 4 {
				continue
			}
			segments = append(segments, Segment{
				From: image.Pt(int(v[0]), int(v[1])),
				To:   image.Pt(int(v[2]), int(v[3])),
			})
		}
		h.found.Update(len(segments))

		return img, segments, nil
	})
}
