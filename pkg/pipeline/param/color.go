package param

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/pkg/errors"
)

// Color is a colour in blue, green, red order.
type Color [3]uint8

// White is the default colour of a ColorPicker.
var White = Color{255, 255, 255}

// RGBA converts c to an opaque colour.
func (c Color) RGBA() color.RGBA {
	return color.RGBA{R: c[2], G: c[1], B: c[0], A: 255}
}

func (c Color) String() string {
	return fmt.Sprintf("%d,%d,%d", c[0], c[1], c[2])
}

// ColorPicker holds a BGR colour.
type ColorPicker struct {
	common
	value Color
}

// NewColorPicker creates a colour param. The default, if given, must have
// exactly 3 components in [0, 255]. It is white otherwise.
func NewColorPicker(opts ...Option) (*ColorPicker, error) {
	o := newOptions(opts)
	c := &ColorPicker{common: newCommon(o), value: White}
	if !o.hasDefault {
		return c, nil
	}

	def, err := toColor(o.def)
	if err != nil {
		return nil, errors.Wrap(ErrInvalidDefault, err.Error())
	}
	c.value = def

	return c, nil
}

func toColor(v any) (Color, error) {
	var comps []int
	switch t := v.(type) {
	case Color:
		return t, nil
	case [3]uint8:
		return Color(t), nil
	case [3]int:
		comps = t[:]
	case []int:
		comps = t
	default:
		return Color{}, errors.Errorf("colour must be a list of 3 integers, got %T", v)
	}

	if len(comps) != 3 {
		return Color{}, errors.Errorf("colour must have 3 components, got %d", len(comps))
	}
	var c Color
	for i, v := range comps {
		if v < 0 || v > 255 {
			return Color{}, errors.Errorf("component %d must be between 0 and 255, got %d", i, v)
		}
		c[i] = uint8(v)
	}
	return c, nil
}

func (c *ColorPicker) Kind() Kind { return KindColorPicker }

func (c *ColorPicker) Value() Color { return c.value }

func (c *ColorPicker) Any() any { return c.value }

func (c *ColorPicker) Set(v Color) error {
	return storeAndTrigger(&c.common, &c.value, v, false)
}

// SetText parses "b,g,r".
func (c *ColorPicker) SetText(s string) error {
	parts := strings.Split(s, ",")
	comps := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := parseNumber[int](p)
		if err != nil {
			return err
		}
		comps = append(comps, n)
	}
	v, err := toColor(comps)
	if err != nil {
		return errors.Wrap(ErrInvalidText, err.Error())
	}
	return c.Set(v)
}

func (c *ColorPicker) String() string { return c.value.String() }

var _ Param = (*ColorPicker)(nil)
