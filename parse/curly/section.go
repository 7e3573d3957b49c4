package curly

import (
	"fmt"
	"strconv"
)

// =========================
// Section Values
// =========================

// Section is a populated instance of a schema. Each slot holds the value of
// the field declared at the same position: a string (or whatever the
// schema's processor returned), a *Section, or a []any for multi fields.
type Section struct {
	schema *Schema
	values []any
}

func newSection(schema *Schema) *Section {
	return &Section{schema: schema, values: make([]any, len(schema.fields))}
}

func (s *Section) Schema() *Schema { return s.schema }

func (s *Section) slot(name string) int {
	i := s.schema.index(name)
	if i < 0 {
		panic(fmt.Sprintf("curly: %s has no field %q", s.schema.name, name))
	}
	return i
}

// Value returns the stored value of a field. For multi fields it is a []any.
func (s *Section) Value(name string) any {
	return s.values[s.slot(name)]
}

// Values returns the values of a multi field, or a one-element slice
// holding a single field's value.
func (s *Section) Values(name string) []any {
	i := s.slot(name)
	if s.schema.fields[i].Multi {
		l, _ := s.values[i].([]any)
		return l
	}
	return []any{s.values[i]}
}

// String returns a field's value as text. Processed values are formatted
// with fmt; a nil value yields "".
func (s *Section) String(name string) string {
	return text(s.Value(name))
}

func (s *Section) Strings(name string) []string {
	values := s.Values(name)
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, text(v))
	}
	return out
}

// Sub returns the nested section stored in a single Section field.
func (s *Section) Sub(name string) *Section {
	sub, _ := s.Value(name).(*Section)
	return sub
}

// Subs returns the nested sections stored in a multi Section field.
func (s *Section) Subs(name string) []*Section {
	values := s.Values(name)
	out := make([]*Section, 0, len(values))
	for _, v := range values {
		if sub, ok := v.(*Section); ok {
			out = append(out, sub)
		}
	}
	return out
}

func text(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	default:
		return fmt.Sprint(t)
	}
}

// =========================
// Safe Access Helpers
// =========================

// Get walks field names through nested sections. Inside a multi field the
// next path element may be a decimal index.
func Get(root *Section, path ...string) (any, bool) {
	var cur any = root
	for _, p := range path {
		switch c := cur.(type) {
		case *Section:
			i := c.schema.index(p)
			if i < 0 {
				return nil, false
			}
			cur = c.values[i]
		case []any:
			idx, err := strconv.Atoi(p)
			if err != nil || idx < 0 || idx >= len(c) {
				return nil, false
			}
			cur = c[idx]
		default:
			return nil, false
		}
	}
	return cur, true
}

// ToUntyped converts a value tree into plain maps, slices and leaves keyed
// by field name.
func ToUntyped(v any) any {
	switch t := v.(type) {
	case *Section:
		m := make(map[string]any, len(t.values))
		for i, f := range t.schema.fields {
			m[f.Name] = ToUntyped(t.values[i])
		}
		return m
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = ToUntyped(e)
		}
		return out
	default:
		return t
	}
}
