package param

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Number is the value type of sliders and spin boxes.
type Number interface {
	int | int64 | float64
}

func isFloat[T Number]() bool {
	var zero T
	_, ok := any(zero).(float64)
	return ok
}

// toNumber converts a default value to T. Integer params only accept integers.
func toNumber[T Number](v any) (T, bool) {
	switch n := v.(type) {
	case T:
		return n, true
	case int:
		return T(n), true
	case int32:
		return T(n), true
	case int64:
		return T(n), true
	case float32:
		if !isFloat[T]() {
			return 0, false
		}
		return T(n), true
	case float64:
		if !isFloat[T]() {
			return 0, false
		}
		return T(n), true
	}
	return 0, false
}

func parseNumber[T Number](s string) (T, error) {
	s = strings.TrimSpace(s)
	if isFloat[T]() {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, errors.Wrapf(ErrInvalidText, "%q is not a number", s)
		}
		return T(f), nil
	}
	i, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, errors.Wrapf(ErrInvalidText, "%q is not an integer", s)
	}
	return T(i), nil
}

// bounded is a numeric value constrained to [min, max].
type bounded[T Number] struct {
	common
	min, max, step T
	value          T
}

func newBounded[T Number](minVal, maxVal T, o *options) (bounded[T], error) {
	b := bounded[T]{
		common: newCommon(o),
		min:    minVal,
		max:    maxVal,
		step:   T(o.step),
	}
	if !(minVal <= maxVal) {
		return b, errors.Wrapf(ErrInvalidRange, "min %v, max %v", minVal, maxVal)
	}
	if b.step <= 0 {
		b.step = 1
	}

	b.value = minVal
	if !o.hasDefault {
		return b, nil
	}

	def, ok := toNumber[T](o.def)
	if !ok {
		return b, errors.Wrapf(ErrInvalidDefault, "default must be a %T, got %T", def, o.def)
	}
	if !b.contains(def) {
		return b, errors.Wrapf(ErrInvalidDefault, "default must be between %v and %v. Got %v", minVal, maxVal, def)
	}
	b.value = def

	return b, nil
}

// contains reports whether v lies within the bounds. NaN never does.
func (b *bounded[T]) contains(v T) bool {
	return v >= b.min && v <= b.max
}

func (b *bounded[T]) Value() T { return b.value }

func (b *bounded[T]) Any() any { return b.value }

func (b *bounded[T]) Min() T { return b.min }

func (b *bounded[T]) Max() T { return b.max }

func (b *bounded[T]) Step() T { return b.step }

// Set stores v and runs the callback. v must lie within the bounds.
func (b *bounded[T]) Set(v T) error {
	if !b.contains(v) {
		return errors.Wrapf(ErrOutOfRange, "%v not in [%v, %v]", v, b.min, b.max)
	}
	return storeAndTrigger(&b.common, &b.value, v, false)
}

func (b *bounded[T]) SetText(s string) error {
	v, err := parseNumber[T](s)
	if err != nil {
		return err
	}
	return b.Set(v)
}

// SetStep changes the increment. Non positive steps are rejected.
func (b *bounded[T]) SetStep(step T) error {
	if step <= 0 {
		return errors.Wrapf(ErrOutOfRange, "step must be positive, got %v", step)
	}
	b.step = step
	return nil
}

func (b *bounded[T]) String() string {
	return strconv.FormatFloat(float64(b.value), 'g', -1, 64)
}
