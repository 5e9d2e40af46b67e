package param

// SpinBox is a numeric value edited with increment and decrement buttons.
type SpinBox[T Number] struct {
	bounded[T]
}

// NewIntSpinBox creates an integer spin box bounded by [minVal, maxVal].
func NewIntSpinBox(minVal, maxVal int, opts ...Option) (*SpinBox[int], error) {
	return newSpinBox(minVal, maxVal, opts...)
}

// NewFloatSpinBox creates a float spin box bounded by [minVal, maxVal].
func NewFloatSpinBox(minVal, maxVal float64, opts ...Option) (*SpinBox[float64], error) {
	return newSpinBox(minVal, maxVal, opts...)
}

func newSpinBox[T Number](minVal, maxVal T, opts ...Option) (*SpinBox[T], error) {
	b, err := newBounded(minVal, maxVal, newOptions(opts))
	if err != nil {
		return nil, err
	}
	return &SpinBox[T]{bounded: b}, nil
}

func (s *SpinBox[T]) Kind() Kind {
	if isFloat[T]() {
		return KindFloatSpinBox
	}
	return KindIntSpinBox
}

var (
	_ Param = (*SpinBox[int])(nil)
	_ Param = (*SpinBox[float64])(nil)
)
