// Package query builds the filter, sort, and ID-selection parameters of
// API request URLs. Filter and sort specs preserve insertion order, and
// values are modeled as explicit scalar-or-list unions instead of
// untyped parameters.
package query

import (
	"fmt"
	"net/url"
	"strings"
)

// FilterValue is a scalar-or-list filter parameter. A scalar renders as
// filters[key]=v, a list as one filters[key][]=v per element.
type FilterValue struct {
	scalar string
	list   []string
	isList bool
}

// Scalar wraps a single filter value.
func Scalar(v string) FilterValue {
	return FilterValue{scalar: v}
}

// List wraps a multi-valued filter. Element order is preserved in the
// encoded query string.
func List(vs ...string) FilterValue {
	return FilterValue{list: vs, isList: true}
}

type filterPair struct {
	key   string
	value FilterValue
}

// Filters is an ordered set of filter parameters. Keys are unique;
// setting a key again replaces its value in place.
type Filters struct {
	pairs []filterPair
}

// NewFilters returns an empty filter set.
func NewFilters() *Filters {
	return &Filters{}
}

// Set adds or replaces the filter for key, preserving first-insertion
// order.
func (f *Filters) Set(key string, value FilterValue) *Filters {
	for i := range f.pairs {
		if f.pairs[i].key == key {
			f.pairs[i].value = value
			return f
		}
	}
	f.pairs = append(f.pairs, filterPair{key: key, value: value})
	return f
}

// Len returns the number of filter keys.
func (f *Filters) Len() int {
	if f == nil {
		return 0
	}
	return len(f.pairs)
}

// Encode renders the filter set as query string fragments, each
// prefixed with "&", in insertion order.
func (f *Filters) Encode() string {
	if f == nil {
		return ""
	}
	var b strings.Builder
	for _, p := range f.pairs {
		if p.value.isList {
			for _, v := range p.value.list {
				fmt.Fprintf(&b, "&filters[%s][]=%s", p.key, url.QueryEscape(v))
			}
			continue
		}
		fmt.Fprintf(&b, "&filters[%s]=%s", p.key, url.QueryEscape(p.value.scalar))
	}
	return b.String()
}

type sortPair struct {
	key       string
	direction string
}

// Sort is an ordered set of sort parameters, each rendering as
// order_by[key]=direction.
type Sort struct {
	pairs []sortPair
}

// NewSort returns an empty sort spec.
func NewSort() *Sort {
	return &Sort{}
}

// Set adds or replaces the direction for key, preserving
// first-insertion order.
func (s *Sort) Set(key, direction string) *Sort {
	for i := range s.pairs {
		if s.pairs[i].key == key {
			s.pairs[i].direction = direction
			return s
		}
	}
	s.pairs = append(s.pairs, sortPair{key: key, direction: direction})
	return s
}

// Len returns the number of sort keys.
func (s *Sort) Len() int {
	if s == nil {
		return 0
	}
	return len(s.pairs)
}

// Encode renders the sort spec as query string fragments, each prefixed
// with "&", in insertion order.
func (s *Sort) Encode() string {
	if s == nil {
		return ""
	}
	var b strings.Builder
	for _, p := range s.pairs {
		fmt.Fprintf(&b, "&order_by[%s]=%s", p.key, url.QueryEscape(p.direction))
	}
	return b.String()
}
