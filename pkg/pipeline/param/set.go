package param

import (
	"strings"

	"github.com/pkg/errors"
)

// Set is an ordered list of named params.
type Set struct {
	names  []string
	params map[string]Param
}

func NewSet() *Set {
	return &Set{params: make(map[string]Param)}
}

// Add appends p under name. A param without a label is labelled from its
// name, "k_size_x" becomes "K Size X".
func (s *Set) Add(name string, p Param) error {
	if _, ok := s.params[name]; ok {
		return errors.Wrapf(ErrDuplicateParam, "%q", name)
	}
	if c := p.base(); c.label == "" {
		c.label = labelFromName(name)
	}
	s.names = append(s.names, name)
	s.params[name] = p
	return nil
}

// MustAdd is like Add but panics on duplicates. It is meant for constructors
// declaring a fixed list of params.
func (s *Set) MustAdd(name string, p Param) {
	if err := s.Add(name, p); err != nil {
		panic(err)
	}
}

func labelFromName(name string) string {
	words := strings.FieldsFunc(name, func(r rune) bool { return r == '_' || r == '-' || r == ' ' })
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

func (s *Set) Get(name string) (Param, bool) {
	p, ok := s.params[name]
	return p, ok
}

// Names returns the param names in insertion order.
func (s *Set) Names() []string { return append([]string(nil), s.names...) }

func (s *Set) Len() int { return len(s.names) }

// Each calls fn for every param in order and stops at the first error.
func (s *Set) Each(fn func(name string, p Param) error) error {
	for _, name := range s.names {
		if err := fn(name, s.params[name]); err != nil {
			return err
		}
	}
	return nil
}

// Bind binds onChange to every param of the set.
func (s *Set) Bind(onChange func() error) error {
	return s.Each(func(name string, p Param) error {
		return errors.Wrapf(p.Bind(onChange), "param %q", name)
	})
}

// SetText parses v into the param called name.
func (s *Set) SetText(name, v string) error {
	p, ok := s.params[name]
	if !ok {
		return errors.Wrapf(ErrUnknownParam, "%q", name)
	}
	return errors.Wrapf(p.SetText(v), "param %q", name)
}
