package datekey

import (
	"fmt"
	"sort"
	"strings"
)

// DateSet is an unordered collection of unique calendar days.
type DateSet map[DateKey]struct{}

func NewSet(keys ...DateKey) DateSet {
	s := make(DateSet, len(keys))
	for _, k := range keys {
		s[k] = struct{}{}
	}
	return s
}

func (s DateSet) Add(d DateKey)    { s[d] = struct{}{} }
func (s DateSet) Remove(d DateKey) { delete(s, d) }

func (s DateSet) Contains(d DateKey) bool {
	_, ok := s[d]
	return ok
}

func (s DateSet) Len() int { return len(s) }

func (s DateSet) Clone() DateSet {
	out := make(DateSet, len(s))
	for k := range s {
		out[k] = struct{}{}
	}
	return out
}

func (s DateSet) Equal(other DateSet) bool {
	if len(s) != len(other) {
		return false
	}
	for k := range s {
		if !other.Contains(k) {
			return false
		}
	}
	return true
}

// List returns the members sorted ascending, the order every display
// surface (taglists, comma-joined form fields) renders in.
func (s DateSet) List() []DateKey {
	out := make([]DateKey, 0, len(s))
	for k := range s {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Union returns a new set with the members of both a and b.
func Union(a, b DateSet) DateSet {
	out := a.Clone()
	for k := range b {
		out[k] = struct{}{}
	}
	return out
}

// Difference returns the members of a that are not in b.
func Difference(a, b DateSet) DateSet {
	out := make(DateSet)
	for k := range a {
		if !b.Contains(k) {
			out[k] = struct{}{}
		}
	}
	return out
}

// ParseMode controls how ParseList treats malformed tokens.
type ParseMode int

const (
	// ParseLenient drops malformed tokens silently. Free-text admin
	// input keeps the legacy forgiving behavior.
	ParseLenient ParseMode = iota
	// ParseStrict fails on the first malformed token. Anything about to
	// be persisted must go through strict parsing.
	ParseStrict
)

// ParseList splits comma-separated text into a DateSet. Whitespace is
// trimmed and empty tokens are ignored in both modes.
func ParseList(text string, mode ParseMode) (DateSet, error) {
	out := make(DateSet)
	for _, token := range strings.Split(text, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		d, err := Parse(token)
		if err != nil {
			if mode == ParseLenient {
				continue
			}
			return nil, fmt.Errorf("parse date list: %w", err)
		}
		out.Add(d)
	}
	return out, nil
}

// FormatList renders the set as comma-joined canonical strings in
// ascending order, the legacy text-field submission format.
func FormatList(s DateSet) string {
	keys := s.List()
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = string(k)
	}
	return strings.Join(parts, ",")
}
