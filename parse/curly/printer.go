package curly

import (
	"bufio"
	"bytes"
	"encoding"
	"fmt"
	"io"
	"os"
	"strings"
)

const indent = "   "

// =========================
// Diagnostic Dump
// =========================

// Dump writes a diagnostic rendering of s to standard output.
func Dump(s *Section) {
	_ = Fdump(os.Stdout, s)
}

// Fdump writes a diagnostic rendering of s to w:
//
//	Server {
//	   .id = "web1"
//	   .ports = [
//	      "80"
//	   ]
//	}
//
// Raw strings are quoted without escaping; processed values print as fmt
// formats them.
func Fdump(w io.Writer, s *Section) error {
	d := &dumper{w: bufio.NewWriter(w)}
	d.section(s, 0, false)
	return d.w.Flush()
}

type dumper struct {
	w *bufio.Writer
}

func (d *dumper) section(s *Section, level int, multi bool) {
	if multi {
		d.line(level, s.schema.name+" {")
	} else {
		d.line(0, s.schema.name+" {")
	}

	for i, f := range s.schema.fields {
		d.write(level+1, "."+f.Name+" = ")
		if f.Multi {
			d.line(0, "[")
		}

		values := []any{s.values[i]}
		if f.Multi {
			values, _ = s.values[i].([]any)
		}

		for _, v := range values {
			switch f.Kind {
			case KindString, KindHeader:
				str, raw := v.(string)
				if raw {
					str = `"` + str + `"`
				} else {
					str = fmt.Sprint(v)
				}
				if f.Multi {
					d.line(level+2, str)
				} else {
					d.line(0, str)
				}
			case KindSection:
				sub, _ := v.(*Section)
				if f.Multi {
					d.section(sub, level+2, true)
				} else {
					d.section(sub, level+1, false)
				}
			}
		}

		if f.Multi {
			d.line(level+1, "]")
		}
	}

	d.line(level, "}")
}

func (d *dumper) write(level int, s string) {
	d.w.WriteString(strings.Repeat(indent, level))
	d.w.WriteString(s)
}

func (d *dumper) line(level int, s string) {
	d.write(level, s)
	d.w.WriteByte('\n')
}

// =========================
// Source Encoding
// =========================

// Marshal renders s in the notation Parse reads, so that parsing the
// result with the same schema yields an equal section.
func Marshal(s *Section) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, s); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Encode writes the source notation of s to w. A nil value is omitted only
// when nil is the field's default; otherwise it is written as "". Processed
// values are written from their text form.
func Encode(w io.Writer, s *Section) error {
	e := &encoder{w: bufio.NewWriter(w)}
	if err := e.body(s, 0); err != nil {
		return err
	}
	return e.w.Flush()
}

type encoder struct {
	w *bufio.Writer
}

func (e *encoder) body(s *Section, level int) error {
	for i, f := range s.schema.fields {
		if f.Kind == KindHeader {
			continue
		}

		values := []any{s.values[i]}
		if f.Multi {
			values, _ = s.values[i].([]any)
		}

		for _, v := range values {
			if v == nil && f.HasDefault && f.Default == nil {
				continue
			}
			if err := e.statement(&f, v, level); err != nil {
				return err
			}
		}
	}
	return nil
}

func (e *encoder) statement(f *Field, v any, level int) error {
	pad := strings.Repeat(indent, level)

	if f.Kind == KindString {
		str, err := marshalText(v)
		if err != nil {
			return fmt.Errorf("%s: %w", f.Ident, err)
		}
		fmt.Fprintf(e.w, "%s%s %s\n", pad, f.Ident, quote(str))
		return nil
	}

	sub, ok := v.(*Section)
	if !ok {
		return fmt.Errorf("%s: expected a section, got %T", f.Ident, v)
	}

	e.w.WriteString(pad + f.Ident + " ")
	if h, ok := sub.schema.Header(); ok {
		str, err := marshalText(sub.values[sub.schema.header])
		if err != nil {
			return fmt.Errorf("%s.%s: %w", f.Ident, h.Name, err)
		}
		e.w.WriteString(quote(str) + " ")
	}
	e.w.WriteString("{\n")

	if err := e.body(sub, level+1); err != nil {
		return err
	}

	e.w.WriteString(pad + "}\n")
	return nil
}

func marshalText(v any) (string, error) {
	switch t := v.(type) {
	case string:
		return t, nil
	case encoding.TextMarshaler:
		b, err := t.MarshalText()
		return string(b), err
	case nil:
		return "", nil
	default:
		return fmt.Sprint(t), nil
	}
}

// quote escapes backslashes and double quotes, the only characters the
// tokenizer treats specially inside a double-quoted string.
func quote(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for _, r := range s {
		if r == '\\' || r == '"' {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	b.WriteByte('"')
	return b.String()
}
