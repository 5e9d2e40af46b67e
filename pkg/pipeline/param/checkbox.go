package param

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// CheckState is the state of a CheckBox.
type CheckState int

const (
	Unchecked CheckState = iota
	PartiallyChecked
	Checked
)

// CheckBox is a boolean toggle.
type CheckBox struct {
	common
	value bool
}

// NewCheckBox creates a toggle. The default, if given, must be a bool.
func NewCheckBox(opts ...Option) (*CheckBox, error) {
	o := newOptions(opts)
	c := &CheckBox{common: newCommon(o)}
	if !o.hasDefault {
		return c, nil
	}

	def, ok := o.def.(bool)
	if !ok {
		return nil, errors.Wrapf(ErrInvalidDefault, "default must be a bool, got %T", o.def)
	}
	c.value = def

	return c, nil
}

func (c *CheckBox) Kind() Kind { return KindCheckBox }

func (c *CheckBox) Value() bool { return c.value }

func (c *CheckBox) Any() any { return c.value }

func (c *CheckBox) Set(v bool) error {
	return storeAndTrigger(&c.common, &c.value, v, false)
}

// SetState stores the state coming from a tri-state widget. A partial state
// keeps the current value but still runs the callback.
func (c *CheckBox) SetState(state CheckState) error {
	return storeAndTrigger(&c.common, &c.value, state == Checked, state == PartiallyChecked)
}

func (c *CheckBox) SetText(s string) error {
	v, err := strconv.ParseBool(strings.TrimSpace(s))
	if err != nil {
		return errors.Wrapf(ErrInvalidText, "%q is not a bool", s)
	}
	return c.Set(v)
}

func (c *CheckBox) String() string { return strconv.FormatBool(c.value) }

var _ Param = (*CheckBox)(nil)
