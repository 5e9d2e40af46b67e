package transform

import "gocv.io/x/gocv"

// Option lists shared by several stages, in display order.

var borderKeys = []string{"Default", "Constant", "Replicate", "Reflect", "Reflect 101"}

var borderTypes = map[string]gocv.BorderType{
	"Default":     gocv.BorderDefault,
	"Constant":    gocv.BorderConstant,
	"Replicate":   gocv.BorderReplicate,
	"Reflect":     gocv.BorderReflect,
	"Reflect 101": gocv.BorderReflect101,
}

var interpolationKeys = []string{"Linear", "Nearest", "Cubic", "Area", "Lanczos4"}

var interpolations = map[string]gocv.InterpolationFlags{
	"Linear":   gocv.InterpolationLinear,
	"Nearest":  gocv.InterpolationNearestNeighbor,
	"Cubic":    gocv.InterpolationCubic,
	"Area":     gocv.InterpolationArea,
	"Lanczos4": gocv.InterpolationLanczos4,
}

var thresholdKeys = []string{"Binary", "Binary Inverted", "Truncate", "To Zero", "To Zero Inverted"}

var thresholdTypes = map[string]gocv.ThresholdType{
	"Binary":           gocv.ThresholdBinary,
	"Binary Inverted":  gocv.ThresholdBinaryInv,
	"Truncate":         gocv.ThresholdTrunc,
	"To Zero":          gocv.ThresholdToZero,
	"To Zero Inverted": gocv.ThresholdToZeroInv,
}

// conversion is a colour space conversion from BGR. keep leaves the image as is.
type conversion struct {
	code gocv.ColorConversionCode
	keep bool
}

var colorSpaceKeys = []string{"BGR", "HSV", "LAB", "YUV", "RGB", "GRAY"}

var colorSpaces = map[string]conversion{
	"BGR":  {keep: true},
	"HSV":  {code: gocv.ColorBGRToHSV},
	"LAB":  {code: gocv.ColorBGRToLab},
	"YUV":  {code: gocv.ColorBGRToYUV},
	"RGB":  {code: gocv.ColorBGRToRGB},
	"GRAY": {code: gocv.ColorBGRToGray},
}
