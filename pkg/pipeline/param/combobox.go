package param

import (
	"github.com/pkg/errors"
)

// ComboBox selects one value among named options.
type ComboBox[V any] struct {
	common
	keys   []string
	values map[string]V
	key    string
}

// NewComboBox creates a choice over keys, in display order. Every key must be
// present in values. The default, if given, is a key; otherwise the first key is selected.
func NewComboBox[V any](keys []string, values map[string]V, opts ...Option) (*ComboBox[V], error) {
	o := newOptions(opts)
	if len(keys) == 0 {
		return nil, errors.Wrap(ErrInvalidDefault, "at least one option is required")
	}
	for _, k := range keys {
		if _, ok := values[k]; !ok {
			return nil, errors.Wrapf(ErrUnknownOption, "option %q has no value", k)
		}
	}

	c := &ComboBox[V]{
		common: newCommon(o),
		keys:   append([]string(nil), keys...),
		values: values,
		key:    keys[0],
	}
	if !o.hasDefault {
		return c, nil
	}

	def, ok := o.def.(string)
	if !ok {
		return nil, errors.Wrapf(ErrInvalidDefault, "default must be an option key, got %T", o.def)
	}
	if _, ok := values[def]; !ok {
		return nil, errors.Wrapf(ErrInvalidDefault, "%q is not an option", def)
	}
	c.key = def

	return c, nil
}

func (c *ComboBox[V]) Kind() Kind { return KindComboBox }

// Key returns the selected option.
func (c *ComboBox[V]) Key() string { return c.key }

// Value returns the value mapped to the selected option.
func (c *ComboBox[V]) Value() V { return c.values[c.key] }

func (c *ComboBox[V]) Any() any { return c.Value() }

// Options returns the option keys in display order.
func (c *ComboBox[V]) Options() []string { return append([]string(nil), c.keys...) }

func (c *ComboBox[V]) Set(key string) error {
	if _, ok := c.values[key]; !ok {
		return errors.Wrapf(ErrUnknownOption, "%q", key)
	}
	return storeAndTrigger(&c.common, &c.key, key, false)
}

func (c *ComboBox[V]) SetText(s string) error { return c.Set(s) }

func (c *ComboBox[V]) String() string { return c.key }

var _ Param = (*ComboBox[int])(nil)
