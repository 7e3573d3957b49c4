package curly

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"
)

// =========================
// Public API
// =========================

// Parse reads filename, decoded with the named text encoding ("" means
// UTF-8), as the implicit top-level section of schema.
// Every failure is returned as a single *Error.
//
// Parse panics if schema declares a Header field, because the top-level
// section has no opening line to carry it.
func Parse(ctx context.Context, filename, encoding string, schema *Schema) (*Section, error) {
	mustBeRoot(schema)

	dec, err := lookupEncoding(encoding)
	if err != nil {
		return nil, wrapError(filename, 0, err)
	}

	f, err := os.Open(filename)
	if err != nil {
		return nil, wrapError(filename, 0, err)
	}
	defer f.Close()

	return run(ctx, filename, dec.reader(f), dec, schema)
}

// ParseReader is like Parse but reads UTF-8 text from r.
// name is only used in error messages.
func ParseReader(ctx context.Context, name string, r io.Reader, schema *Schema) (*Section, error) {
	mustBeRoot(schema)
	return run(ctx, name, r, textDecoder{strict: true}, schema)
}

func mustBeRoot(schema *Schema) {
	if h, ok := schema.Header(); ok {
		panic(fmt.Sprintf("curly: %s.%s: can not have Header, as it is the main section", schema.name, h.Name))
	}
}

func run(ctx context.Context, name string, r io.Reader, dec textDecoder, schema *Schema) (*Section, error) {
	p := &parser{
		r:   bufio.NewReader(r),
		dec: dec,
	}

	section, err := p.parseSection(ctx, schema, false)
	if err != nil {
		return nil, wrapError(name, p.lineNo, err)
	}
	return section, nil
}

// =========================
// Parser Implementation
// =========================

// parser holds the state of one parse run. Nested sections share it, so the
// line cursor moves through the whole file exactly once.
type parser struct {
	r      *bufio.Reader
	dec    textDecoder
	lineNo int
	atEOF  bool
	tokens []Token
	pos    int
}

type fieldState uint8

const (
	unset fieldState = iota
	defaulted
	set
)

func (p *parser) parseSection(ctx context.Context, schema *Schema, inSub bool) (*Section, error) {
	section := newSection(schema)
	states := make([]fieldState, len(schema.fields))

	for i, f := range schema.fields {
		switch {
		case f.Multi:
			section.values[i] = []any{}
			states[i] = defaulted
		case f.HasDefault:
			section.values[i] = f.Default
			states[i] = defaulted
		}
	}

	if inSub {
		if _, ok := schema.Header(); ok {
			value, err := p.expect(String)
			if err != nil {
				return nil, err
			}
			if err := p.store(ctx, section, states, schema.header, value); err != nil {
				return nil, err
			}
		}
		if _, err := p.expect(CurlyOpen); err != nil {
			return nil, err
		}
		if err := p.eol(); err != nil {
			return nil, err
		}
	}

	closed := false
	for {
		more, err := p.readLine(ctx)
		if err != nil {
			return nil, err
		}
		if !more {
			break
		}
		if len(p.tokens) == 0 {
			continue
		}

		tok, _ := p.next()
		if tok.Kind == CurlyClose && inSub {
			if err := p.eol(); err != nil {
				return nil, err
			}
			closed = true
			break
		}

		if tok.Kind != Keyword {
			return nil, expected(Keyword, tok.Start)
		}
		f, i, ok := schema.lookup(tok.Value)
		if !ok {
			return nil, syntaxErr(ErrUnknownKeyword, tok.Start, "Unknown keyword")
		}

		var value any
		switch f.Kind {
		case KindString:
			if value, err = p.expect(String); err != nil {
				return nil, err
			}
			if err := p.eol(); err != nil {
				return nil, err
			}
		case KindSection:
			if value, err = p.parseSection(ctx, f.Schema, true); err != nil {
				return nil, err
			}
		}

		if err := p.store(ctx, section, states, i, value); err != nil {
			return nil, err
		}
	}

	if inSub && !closed {
		return nil, syntaxErr(ErrUnterminatedSection, NoColumn, "Unterminated section (missing closing curly)")
	}

	var missing []string
	for i, f := range schema.fields {
		if states[i] == unset {
			ident := f.Ident
			if ident == "" {
				ident = f.Name
			}
			missing = append(missing, ident)
		}
	}
	if len(missing) > 0 {
		return nil, syntaxErr(ErrMissingValue, NoColumn, "Missing value for %s", strings.Join(missing, ", "))
	}

	return section, nil
}

// store assigns or appends a value after running the schema's processor on
// String and Header values.
func (p *parser) store(ctx context.Context, section *Section, states []fieldState, i int, value any) error {
	schema := section.schema
	f := &schema.fields[i]

	if !f.Multi && states[i] == set {
		return syntaxErr(ErrDuplicateField, NoColumn, "%s is already defined", f.Ident)
	}

	if f.Kind != KindSection && schema.process != nil {
		processed, err := schema.process(ctx, f, value.(string))
		if err != nil {
			return &SyntaxError{Err: fmt.Errorf("%w: %w", ErrInvalidValue, err), Msg: err.Error(), Col: NoColumn}
		}
		value = processed
	}

	if f.Multi {
		section.values[i] = append(section.values[i].([]any), value)
	} else {
		section.values[i] = value
	}
	states[i] = set
	return nil
}

// readLine reads and tokenizes the next physical line. It reports false at
// end of file. The line counter advances on every attempt before EOF.
func (p *parser) readLine(ctx context.Context) (bool, error) {
	if p.atEOF {
		return false, nil
	}
	if err := ctx.Err(); err != nil {
		return false, err
	}

	p.lineNo++

	line, err := p.readRaw()
	if err != nil && !errors.Is(err, io.EOF) {
		return false, err
	}
	if err != nil && line == "" {
		p.atEOF = true
		return false, nil
	}
	if err := p.dec.check(line); err != nil {
		return false, err
	}

	tokens, err := Tokenize(strings.TrimRightFunc(line, unicode.IsSpace))
	if err != nil {
		return false, err
	}
	p.tokens = tokens
	p.pos = 0
	return true, nil
}

// readRaw returns the next line without its terminator. "\n", "\r\n" and a
// lone "\r" all end a line. The error is io.EOF only when input ran out
// before a terminator.
func (p *parser) readRaw() (string, error) {
	var b strings.Builder
	for {
		c, err := p.r.ReadByte()
		if err != nil {
			return b.String(), err
		}
		switch c {
		case '\n':
			return b.String(), nil
		case '\r':
			if next, err := p.r.Peek(1); err == nil && next[0] == '\n' {
				_, _ = p.r.ReadByte()
			}
			return b.String(), nil
		}
		b.WriteByte(c)
	}
}

// next consumes the next token of the current line. ok is false at end of line.
func (p *parser) next() (Token, bool) {
	if p.pos >= len(p.tokens) {
		return Token{}, false
	}
	tok := p.tokens[p.pos]
	p.pos++
	return tok, true
}

func (p *parser) expect(kind TokenKind) (string, error) {
	tok, ok := p.next()
	if !ok {
		return "", expected(kind, EndOfLine)
	}
	if tok.Kind != kind {
		return "", expected(kind, tok.Start)
	}
	return tok.Value, nil
}

func (p *parser) eol() error {
	if tok, ok := p.next(); ok {
		return syntaxErr(ErrExpected, tok.Start, "End of line expected")
	}
	return nil
}

func expected(kind TokenKind, col int) error {
	return syntaxErr(ErrExpected, col, "%v is expected", kind)
}
