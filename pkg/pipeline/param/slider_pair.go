package param

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// Pair is a lower and an upper bound.
type Pair struct {
	Low  int
	High int
}

// SliderPair holds two integers sharing the same bounds, such as the lower
// and upper limits of a threshold.
type SliderPair struct {
	common
	min, max int
	value    Pair
}

// NewSliderPair creates a pair initialised to {min, max}. Any default is ignored.
func NewSliderPair(minVal, maxVal int, opts ...Option) (*SliderPair, error) {
	if minVal > maxVal {
		return nil, errors.Wrapf(ErrInvalidRange, "min %d, max %d", minVal, maxVal)
	}
	return &SliderPair{
		common: newCommon(newOptions(opts)),
		min:    minVal,
		max:    maxVal,
		value:  Pair{Low: minVal, High: maxVal},
	}, nil
}

func (s *SliderPair) Kind() Kind { return KindSliderPair }

func (s *SliderPair) Min() int { return s.min }

func (s *SliderPair) Max() int { return s.max }

func (s *SliderPair) Value() Pair { return s.value }

func (s *SliderPair) Any() any { return s.value }

func (s *SliderPair) Set(p Pair) error {
	if err := s.check(p.Low); err != nil {
		return err
	}
	if err := s.check(p.High); err != nil {
		return err
	}
	return storeAndTrigger(&s.common, &s.value, p, false)
}

func (s *SliderPair) SetLow(v int) error {
	return s.Set(Pair{Low: v, High: s.value.High})
}

func (s *SliderPair) SetHigh(v int) error {
	return s.Set(Pair{Low: s.value.Low, High: v})
}

func (s *SliderPair) check(v int) error {
	if v < s.min || v > s.max {
		return errors.Wrapf(ErrOutOfRange, "%d not in [%d, %d]", v, s.min, s.max)
	}
	return nil
}

// SetText parses "low,high".
func (s *SliderPair) SetText(text string) error {
	parts := strings.Split(text, ",")
	if len(parts) != 2 {
		return errors.Wrapf(ErrInvalidText, "%q must be low,high", text)
	}
	low, err := parseNumber[int](parts[0])
	if err != nil {
		return err
	}
	high, err := parseNumber[int](parts[1])
	if err != nil {
		return err
	}
	return s.Set(Pair{Low: low, High: high})
}

func (s *SliderPair) String() string {
	return fmt.Sprintf("%d,%d", s.value.Low, s.value.High)
}

var _ Param = (*SliderPair)(nil)
