// Package extract reads logical fields out of a rendered DOM snapshot.
//
// Every field is a Cascade: an ordered list of strategies evaluated until
// one yields a non-empty, trimmed value. Profiles are plain data (lists of
// fields) so they can be audited and tested without a live page.
package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Strategy reads one candidate value from scope. An empty result means
// "no value here" and lets the cascade move on.
type Strategy func(scope *goquery.Selection) string

// Cascade is an ordered fallback chain for one logical field.
type Cascade []Strategy

// Eval runs the strategies in order and returns the first non-empty
// trimmed value. Strategies after the winning one are never called.
func (c Cascade) Eval(scope *goquery.Selection) (string, bool) {
	for _, strategy := range c {
		if v := strings.TrimSpace(strategy(scope)); v != "" {
			return v, true
		}
	}
	return "", false
}

// Strategy lets a cascade be nested inside another cascade.
func (c Cascade) Strategy() Strategy {
	return func(scope *goquery.Selection) string {
		v, _ := c.Eval(scope)
		return v
	}
}

// Field binds a name to its cascade and the value used when every
// strategy comes up empty.
type Field struct {
	Name    string
	Cascade Cascade
	Default string
}

// ListField extracts an ordered list of values for one name.
type ListField struct {
	Name    string
	Collect func(scope *goquery.Selection) []string
}

// Profile is the set of field cascades for one target kind.
type Profile struct {
	Name   string
	Fields []Field
	Lists  []ListField
}

// Extract evaluates every field and list of the profile against scope.
func (p Profile) Extract(scope *goquery.Selection) RawFields {
	raw := RawFields{
		values:  make(map[string]string, len(p.Fields)),
		missing: make(map[string]bool),
		lists:   make(map[string][]string, len(p.Lists)),
	}
	for _, f := range p.Fields {
		v, ok := f.Cascade.Eval(scope)
		if !ok {
			v = f.Default
			raw.missing[f.Name] = true
		}
		raw.values[f.Name] = v
	}
	for _, l := range p.Lists {
		raw.lists[l.Name] = l.Collect(scope)
	}
	return raw
}

// RawFields is the unnormalized output of one profile evaluation.
type RawFields struct {
	values  map[string]string
	missing map[string]bool
	lists   map[string][]string
}

// NewRawFields builds RawFields directly, mostly for tests of the
// normalizer. Fields absent from values are reported as missing.
func NewRawFields(values map[string]string, lists map[string][]string) RawFields {
	raw := RawFields{values: values, missing: make(map[string]bool), lists: lists}
	for k, v := range values {
		if v == "" {
			raw.missing[k] = true
		}
	}
	return raw
}

// Get returns the value of a field, its default when no strategy matched.
func (r RawFields) Get(name string) string {
	return r.values[name]
}

// Found reports whether some strategy produced the field's value.
func (r RawFields) Found(name string) bool {
	_, ok := r.values[name]
	return ok && !r.missing[name]
}

// List returns the named list, nil when absent.
func (r RawFields) List(name string) []string {
	return r.lists[name]
}
