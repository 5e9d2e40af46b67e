package param

import "github.com/pkg/errors"

// Slider is a numeric value between a minimum and a maximum.
type Slider[T Number] struct {
	bounded[T]
	editableRange bool
}

// NewIntSlider creates a slider over integers. The default is min unless WithDefault is given.
func NewIntSlider(minVal, maxVal int, opts ...Option) (*Slider[int], error) {
	return newSlider(minVal, maxVal, opts...)
}

// NewFloatSlider creates a slider over floats. The default is min unless WithDefault is given.
func NewFloatSlider(minVal, maxVal float64, opts ...Option) (*Slider[float64], error) {
	return newSlider(minVal, maxVal, opts...)
}

func newSlider[T Number](minVal, maxVal T, opts ...Option) (*Slider[T], error) {
	o := newOptions(opts)
	b, err := newBounded(minVal, maxVal, o)
	if err != nil {
		return nil, err
	}
	return &Slider[T]{bounded: b, editableRange: !o.fixedRange}, nil
}

func (s *Slider[T]) Kind() Kind {
	if isFloat[T]() {
		return KindFloatSlider
	}
	return KindIntSlider
}

func (s *Slider[T]) EditableRange() bool { return s.editableRange }

// SetRange changes the bounds of the slider. A value outside the new bounds is
// moved to the nearest one and the callback runs.
func (s *Slider[T]) SetRange(minVal, maxVal T) error {
	if !s.editableRange {
		return ErrFixedRange
	}
	if minVal > maxVal {
		return errors.Wrapf(ErrInvalidRange, "min %v, max %v", minVal, maxVal)
	}
	s.min, s.max = minVal, maxVal

	switch {
	case s.value < minVal:
		return storeAndTrigger(&s.common, &s.value, minVal, false)
	case s.value > maxVal:
		return storeAndTrigger(&s.common, &s.value, maxVal, false)
	}
	return nil
}

var (
	_ Param = (*Slider[int])(nil)
	_ Param = (*Slider[float64])(nil)
)
