// AngelaMos | 2026
// enum.go

// Package catalog defines the closed value sets used by tenant records and
// user accounts. The metadata is presentational only; no value set carries a
// transition graph.
package catalog

import (
	"strings"
)

type Option struct {
	Value       string `json:"value"`
	DisplayName string `json:"display_name"`
	Color       string `json:"color"`
}

type Enum[T ~string] struct {
	name    string
	options []Option
	index   map[T]Option
}

func newEnum[T ~string](name string, options ...Option) *Enum[T] {
	e := &Enum[T]{
		name:    name,
		options: options,
		index:   make(map[T]Option, len(options)),
	}
	for _, o := range options {
		e.index[T(o.Value)] = o
	}
	return e
}

func (e *Enum[T]) Name() string {
	return e.name
}

func (e *Enum[T]) Valid(v T) bool {
	_, ok := e.index[v]
	return ok
}

func (e *Enum[T]) Option(v T) (Option, bool) {
	o, ok := e.index[v]
	return o, ok
}

func (e *Enum[T]) Options() []Option {
	out := make([]Option, len(e.options))
	copy(out, e.options)
	return out
}

func (e *Enum[T]) Values() []string {
	out := make([]string, 0, len(e.options))
	for _, o := range e.options {
		out = append(out, o.Value)
	}
	return out
}

// SQLList renders the values as a quoted list for CHECK constraints.
func (e *Enum[T]) SQLList() string {
	quoted := make([]string, 0, len(e.options))
	for _, o := range e.options {
		quoted = append(quoted, "'"+strings.ReplaceAll(o.Value, "'", "''")+"'")
	}
	return strings.Join(quoted, ", ")
}

// OneOf renders the values for a validator "oneof" tag parameter.
func (e *Enum[T]) OneOf() string {
	return strings.Join(e.Values(), " ")
}

func displayName[T ~string](e *Enum[T], v T) string {
	if o, ok := e.index[v]; ok {
		return o.DisplayName
	}
	return string(v)
}

func color[T ~string](e *Enum[T], v T) string {
	if o, ok := e.index[v]; ok {
		return o.Color
	}
	return "#9E9E9E"
}
