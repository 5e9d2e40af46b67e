package param

import (
	"fmt"
)

// Kind identifies the variant of a Param.
type Kind string

const (
	KindIntSlider    Kind = "int_slider"
	KindFloatSlider  Kind = "float_slider"
	KindIntSpinBox   Kind = "int_spinbox"
	KindFloatSpinBox Kind = "float_spinbox"
	KindComboBox     Kind = "combobox"
	KindCheckBox     Kind = "checkbox"
	KindColorPicker  Kind = "color_picker"
	KindLabel        Kind = "label"
	KindDimensions2D Kind = "dimensions_2d"
	KindArray        Kind = "array"
	KindSliderPair   Kind = "slider_pair"
)

// Param is a single editable value of a stage.
type Param interface {
	fmt.Stringer

	Kind() Kind
	// Any returns the current value.
	Any() any
	// SetText parses s and stores the result as the new value.
	SetText(s string) error

	Label() string
	HelpText() string
	ReadOnly() bool
	Enabled() bool
	SetEnabled(enabled bool)

	// Bind registers the callback called after every change. It can only be called once.
	Bind(onChange func() error) error
	Bound() bool

	// Widget returns the handle attached by the user interface, if any.
	Widget() any
	SetWidget(widget any)

	base() *common
}

type options struct {
	label         string
	helpText      string
	readOnly      bool
	def           any
	hasDefault    bool
	step          float64
	fixedRange    bool
	prefix        string
	dims          int
	noAnchor      bool
	structElement bool
}

func newOptions(opts []Option) *options {
	o := &options{step: 1, dims: 2}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Option configures a Param at construction.
type Option func(o *options)

// WithLabel sets the displayed label. By default the name given to Set.Add is used.
func WithLabel(label string) Option {
	return func(o *options) {
		o.label = label
	}
}

// WithHelpText sets the tooltip text.
func WithHelpText(text string) Option {
	return func(o *options) {
		o.helpText = text
	}
}

// ReadOnly marks the param as not editable by the user.
func ReadOnly() Option {
	return func(o *options) {
		o.readOnly = true
	}
}

// WithDefault sets the initial value. Its type must match the variant.
func WithDefault(v any) Option {
	return func(o *options) {
		o.def = v
		o.hasDefault = v != nil
	}
}

// WithStep sets the increment of sliders and spin boxes.
func WithStep(step float64) Option {
	return func(o *options) {
		o.step = step
	}
}

// FixedRange prevents sliders from having their bounds edited.
func FixedRange() Option {
	return func(o *options) {
		o.fixedRange = true
	}
}

// WithPrefix sets the text displayed in front of a Dimensions2D.
func WithPrefix(prefix string) Option {
	return func(o *options) {
		o.prefix = prefix
	}
}

// WithDims sets the number of dimensions of an Array, 1 or 2.
func WithDims(dims int) Option {
	return func(o *options) {
		o.dims = dims
	}
}

// WithoutAnchor disables the anchor of an Array.
func WithoutAnchor() Option {
	return func(o *options) {
		o.noAnchor = true
	}
}

// WithStructElement lets the user pick a structuring element for an Array.
func WithStructElement() Option {
	return func(o *options) {
		o.structElement = true
	}
}

type common struct {
	label    string
	helpText string
	readOnly bool
	disabled bool
	onChange func() error
	widget   any
}

func newCommon(o *options) common {
	return common{
		label:    o.label,
		helpText: o.helpText,
		readOnly: o.readOnly,
	}
}

func (c *common) base() *common { return c }

func (c *common) Label() string { return c.label }

func (c *common) HelpText() string { return c.helpText }

func (c *common) ReadOnly() bool { return c.readOnly }

func (c *common) Enabled() bool { return !c.disabled }

// SetEnabled enables or disables the param and its label. The value is kept.
func (c *common) SetEnabled(enabled bool) { c.disabled = !enabled }

func (c *common) Widget() any { return c.widget }

func (c *common) SetWidget(widget any) { c.widget = widget }

func (c *common) Bound() bool { return c.onChange != nil }

func (c *common) Bind(onChange func() error) error {
	if onChange == nil {
		return ErrCallbackNotSet
	}
	if c.onChange != nil {
		return ErrAlreadyBound
	}
	c.onChange = onChange
	return nil
}

func (c *common) trigger() error {
	if c.onChange == nil {
		return nil
	}
	return c.onChange()
}

// storeAndTrigger overwrites dst unless the new value is empty, then runs the callback if the param is bound.
func storeAndTrigger[T any](c *common, dst *T, v T, empty bool) error {
	if !empty {
		*dst = v
	}
	return c.trigger()
}
