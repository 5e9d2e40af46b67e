package param

import "fmt"

// Label displays a value computed by its stage. It is always read only and
// updates never run the callback.
type Label struct {
	common
	format string
	value  any
}

// NewLabel creates a label rendered with format, for example "Found %d points".
func NewLabel(format string, opts ...Option) *Label {
	o := newOptions(opts)
	l := &Label{common: newCommon(o), format: format}
	l.readOnly = true
	if o.hasDefault {
		l.value = o.def
	}
	return l
}

func (l *Label) Kind() Kind { return KindLabel }

func (l *Label) Value() any { return l.value }

func (l *Label) Any() any { return l.value }

// Update stores v without running the callback.
func (l *Label) Update(v any) { l.value = v }

func (l *Label) SetText(string) error { return ErrReadOnly }

func (l *Label) String() string {
	if l.value == nil {
		return ""
	}
	return fmt.Sprintf(l.format, l.value)
}

var _ Param = (*Label)(nil)
