package curly

import (
	"context"
	"errors"
	"fmt"
)

// =========================
// Field Descriptors
// =========================

type Kind uint8

const (
	KindString Kind = iota + 1
	KindSection
	KindHeader
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindSection:
		return "section"
	case KindHeader:
		return "header"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Field describes one declared field of a schema.
// Ident is the keyword used in the file and defaults to Name.
// Header fields never have an Ident: their value is the bare string
// before a sub-section's opening curly.
type Field struct {
	Name       string
	Ident      string
	Kind       Kind
	Multi      bool
	Schema     *Schema
	Default    any
	HasDefault bool
}

type FieldOption func(*Field)

// WithIdent sets the keyword used for the field in the file.
func WithIdent(ident string) FieldOption {
	return func(f *Field) { f.Ident = ident }
}

// Multi lets the field repeat; values accumulate in order.
func Multi() FieldOption {
	return func(f *Field) { f.Multi = true }
}

// WithDefault makes the field optional. A nil default is allowed.
func WithDefault(v any) FieldOption {
	return func(f *Field) {
		f.Default = v
		f.HasDefault = true
	}
}

func StringField(name string, opts ...FieldOption) Field {
	return newField(name, KindString, nil, opts)
}

func SectionField(name string, schema *Schema, opts ...FieldOption) Field {
	return newField(name, KindSection, schema, opts)
}

func HeaderField(name string) Field {
	return Field{Name: name, Kind: KindHeader}
}

func newField(name string, kind Kind, schema *Schema, opts []FieldOption) Field {
	f := Field{Name: name, Kind: kind, Schema: schema}
	for _, opt := range opts {
		opt(&f)
	}
	return f
}

// =========================
// Schema
// =========================

// ProcessFunc transforms or validates a raw String or Header value before it
// is stored. A returned error is reported as an invalid value on the
// current line.
type ProcessFunc func(ctx context.Context, f *Field, raw string) (any, error)

// Schema is the ordered, validated set of fields a section accepts.
// It is immutable once built and may be shared by concurrent parses.
type Schema struct {
	name    string
	fields  []Field
	idents  map[string]int
	header  int
	process ProcessFunc
}

var ErrSchema = errors.New("invalid schema")

// NewSchema validates the field descriptors and builds a schema.
func NewSchema(name string, fields ...Field) (*Schema, error) {
	s := &Schema{
		name:   name,
		fields: make([]Field, len(fields)),
		idents: make(map[string]int, len(fields)),
		header: -1,
	}
	copy(s.fields, fields)

	names := make(map[string]struct{}, len(fields))
	for i := range s.fields {
		f := &s.fields[i]
		fail := func(msg string) error {
			return fmt.Errorf("%w: %s.%s: %s", ErrSchema, name, f.Name, msg)
		}

		if f.Name == "" {
			return nil, fmt.Errorf("%w: %s: field %d has no name", ErrSchema, name, i)
		}
		if _, dup := names[f.Name]; dup {
			return nil, fail("name is duplicated")
		}
		names[f.Name] = struct{}{}

		switch f.Kind {
		case KindString:
			if f.Schema != nil {
				return nil, fail("schema is not allowed for String")
			}
			if f.Multi && f.HasDefault {
				return nil, fail("default is not allowed together with multi")
			}
		case KindSection:
			if f.Schema == nil {
				return nil, fail("schema is required for Section")
			}
			if f.HasDefault {
				return nil, fail("default is not allowed for Section")
			}
		case KindHeader:
			switch {
			case s.header >= 0:
				return nil, fail("Header is duplicated")
			case f.Ident != "":
				return nil, fail("ident is not allowed for Header")
			case f.Multi:
				return nil, fail("multi is not allowed for Header")
			case f.Schema != nil:
				return nil, fail("schema is not allowed for Header")
			case f.HasDefault:
				return nil, fail("default is not allowed for Header")
			}
			s.header = i
			continue
		default:
			return nil, fail(fmt.Sprintf("kind %v is unknown", f.Kind))
		}

		if f.Ident == "" {
			f.Ident = f.Name
		}
		if _, dup := s.idents[f.Ident]; dup {
			return nil, fail("ident is duplicated")
		}
		s.idents[f.Ident] = i
	}

	return s, nil
}

// MustSchema is like NewSchema but panics on an invalid declaration.
// Use it for schemas declared in code.
func MustSchema(name string, fields ...Field) *Schema {
	s, err := NewSchema(name, fields...)
	if err != nil {
		panic(err)
	}
	return s
}

// WithProcessor returns a copy of s that runs fn on every String and Header value.
func (s *Schema) WithProcessor(fn ProcessFunc) *Schema {
	c := *s
	c.process = fn
	return &c
}

func (s *Schema) Name() string { return s.name }

// Fields returns the descriptors in declaration order.
func (s *Schema) Fields() []Field {
	out := make([]Field, len(s.fields))
	copy(out, s.fields)
	return out
}

// Field looks up a descriptor by name.
func (s *Schema) Field(name string) (*Field, bool) {
	i := s.index(name)
	if i < 0 {
		return nil, false
	}
	return &s.fields[i], true
}

// Header returns the header descriptor, if the schema declares one.
func (s *Schema) Header() (*Field, bool) {
	if s.header < 0 {
		return nil, false
	}
	return &s.fields[s.header], true
}

func (s *Schema) lookup(ident string) (*Field, int, bool) {
	i, ok := s.idents[ident]
	if !ok {
		return nil, -1, false
	}
	return &s.fields[i], i, true
}

func (s *Schema) index(name string) int {
	for i := range s.fields {
		if s.fields[i].Name == name {
			return i
		}
	}
	return -1
}
