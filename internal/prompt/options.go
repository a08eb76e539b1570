package prompt

import (
	"fmt"
)

// Source is a fixed, ordered list of choices addressed by dense 0-based
// indices. Prompts only read from it.
type Source[T comparable] interface {
	// Len returns the number of choices.
	Len() int
	// Value returns the choice at index i, or false when i is out of range.
	Value(i int) (T, bool)
	// Label returns the text displayed for the choice at index i.
	Label(i int) string
	// Index returns the position of v, or false when v is not a choice.
	Index(v T) (int, bool)
}

// Choice pairs a value with the label it is displayed with. An empty Label
// falls back to the value's default label.
type Choice[T comparable] struct {
	Value T
	Label string
}

// Options is the standard Source: a table built once from a list of values.
// Labels default to the value's String method, or its fmt.Sprint form.
//
// Example:
//
//	speeds := prompt.NewOptions(Slow, Medium, Fast).WithLabel(Fast, "Blazing")
type Options[T comparable] struct {
	values []T
	labels []string
	index  map[T]int
}

// NewOptions creates options from values in declaration order. Duplicate
// values keep their first index.
func NewOptions[T comparable](values ...T) *Options[T] {
	o := &Options[T]{
		values: make([]T, 0, len(values)),
		labels: make([]string, 0, len(values)),
		index:  make(map[T]int, len(values)),
	}
	for _, v := range values {
		o.add(v, "")
	}
	return o
}

// Choices creates options from explicit value/label pairs.
func Choices[T comparable](choices ...Choice[T]) *Options[T] {
	o := NewOptions[T]()
	for _, c := range choices {
		o.add(c.Value, c.Label)
	}
	return o
}

func (o *Options[T]) add(v T, label string) {
	if label == "" {
		label = defaultLabel(v)
	}
	if _, dup := o.index[v]; !dup {
		o.index[v] = len(o.values)
	}
	o.values = append(o.values, v)
	o.labels = append(o.labels, label)
}

// WithLabel overrides the label of v. Unknown values are ignored.
func (o *Options[T]) WithLabel(v T, label string) *Options[T] {
	if i, ok := o.index[v]; ok {
		o.labels[i] = label
	}
	return o
}

// Values returns a copy of the values in order.
func (o *Options[T]) Values() []T {
	out := make([]T, len(o.values))
	copy(out, o.values)
	return out
}

// Len implements Source
func (o *Options[T]) Len() int {
	return len(o.values)
}

// Value implements Source
func (o *Options[T]) Value(i int) (T, bool) {
	if i < 0 || i >= len(o.values) {
		var zero T
		return zero, false
	}
	return o.values[i], true
}

// Label implements Source
func (o *Options[T]) Label(i int) string {
	if i < 0 || i >= len(o.labels) {
		return ""
	}
	return o.labels[i]
}

// Index implements Source
func (o *Options[T]) Index(v T) (int, bool) {
	i, ok := o.index[v]
	return i, ok
}

func defaultLabel(v any) string {
	return fmt.Sprint(v)
}
