package param

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

const (
	DefaultDimensionMin = 150
	DefaultDimensionMax = 800
	DefaultDimension    = 500
)

// Size is a width and a height.
type Size struct {
	Width  int
	Height int
}

// Dimensions2D holds a pair of integers, both in the same bounds.
type Dimensions2D struct {
	common
	prefix   string
	min, max int
	value    Size
}

// NewDimensions2D creates a pair bounded by [minVal, maxVal]. The default, if
// given, must have exactly 2 elements within the bounds. It is (500, 500)
// otherwise, moved inside the bounds when needed.
func NewDimensions2D(minVal, maxVal int, opts ...Option) (*Dimensions2D, error) {
	o := newOptions(opts)
	if minVal > maxVal {
		return nil, errors.Wrapf(ErrInvalidRange, "min %d, max %d", minVal, maxVal)
	}
	d := &Dimensions2D{
		common: newCommon(o),
		prefix: o.prefix,
		min:    minVal,
		max:    maxVal,
	}
	fallback := min(max(DefaultDimension, minVal), maxVal)
	d.value = Size{Width: fallback, Height: fallback}
	if !o.hasDefault {
		return d, nil
	}

	var def []int
	switch t := o.def.(type) {
	case Size:
		def = []int{t.Width, t.Height}
	case [2]int:
		def = t[:]
	case []int:
		def = t
	default:
		return nil, errors.Wrapf(ErrInvalidDefault, "default must be a list of 2 integers, got %T", o.def)
	}
	if len(def) != 2 {
		return nil, errors.Wrapf(ErrInvalidDefault, "default must have 2 elements, got %d", len(def))
	}
	if !d.contains(def[0]) || !d.contains(def[1]) {
		return nil, errors.Wrapf(ErrInvalidDefault, "default must be between %d and %d. Got %dx%d", minVal, maxVal, def[0], def[1])
	}
	d.value = Size{Width: def[0], Height: def[1]}

	return d, nil
}

// NewDefaultDimensions2D creates a pair bounded by [150, 800].
func NewDefaultDimensions2D(opts ...Option) (*Dimensions2D, error) {
	return NewDimensions2D(DefaultDimensionMin, DefaultDimensionMax, opts...)
}

func (d *Dimensions2D) Kind() Kind { return KindDimensions2D }

func (d *Dimensions2D) Prefix() string { return d.prefix }

func (d *Dimensions2D) Min() int { return d.min }

func (d *Dimensions2D) Max() int { return d.max }

func (d *Dimensions2D) Value() Size { return d.value }

func (d *Dimensions2D) Any() any { return d.value }

func (d *Dimensions2D) contains(v int) bool { return v >= d.min && v <= d.max }

func (d *Dimensions2D) Set(width, height int) error {
	for _, v := range [2]int{width, height} {
		if !d.contains(v) {
			return errors.Wrapf(ErrOutOfRange, "%d not in [%d, %d]", v, d.min, d.max)
		}
	}
	return storeAndTrigger(&d.common, &d.value, Size{Width: width, Height: height}, false)
}

// SetText parses "width,height".
func (d *Dimensions2D) SetText(s string) error {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return errors.Wrapf(ErrInvalidText, "%q must be width,height", s)
	}
	w, err := parseNumber[int](parts[0])
	if err != nil {
		return err
	}
	h, err := parseNumber[int](parts[1])
	if err != nil {
		return err
	}
	return d.Set(w, h)
}

func (d *Dimensions2D) String() string {
	return fmt.Sprintf("%s%dx%d", d.prefix, d.value.Width, d.value.Height)
}

var _ Param = (*Dimensions2D)(nil)
