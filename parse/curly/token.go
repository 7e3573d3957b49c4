package curly

import (
	"strings"
	"unicode"
)

// =========================
// Tokens
// =========================

type TokenKind uint8

const (
	CurlyOpen TokenKind = iota + 1
	CurlyClose
	String
	Keyword
)

// String returns the name used in "X is expected" messages.
func (k TokenKind) String() string {
	switch k {
	case CurlyOpen:
		return "Opening curly"
	case CurlyClose:
		return "Closing curly"
	case String:
		return "String"
	case Keyword:
		return "Keyword"
	default:
		return "Unknown token"
	}
}

// Token is one lexical element of a line.
// Start is the 0-based character offset of its first character.
type Token struct {
	Kind  TokenKind
	Value string
	Start int
}

// =========================
// Tokenizer
// =========================

// Tokenize splits one line, without its line terminator, into tokens.
// Everything after an unquoted '#' is a comment.
func Tokenize(line string) ([]Token, error) {
	t := tokenizer{line: []rune(line)}
	if err := t.run(); err != nil {
		return nil, err
	}
	return t.tokens, nil
}

type tokenizer struct {
	line    []rune
	current int
	start   int
	tokens  []Token
}

func (t *tokenizer) run() error {
	for {
		t.start = t.current
		ch, ok := t.next()

		switch {
		case !ok, ch == '#':
			return nil
		case unicode.IsSpace(ch):
			continue
		case ch == '{':
			t.add(CurlyOpen, "")
		case ch == '}':
			t.add(CurlyClose, "")
		case ch == '\'' || ch == '"':
			if err := t.quoted(ch); err != nil {
				return err
			}
		case isAlpha(ch):
			for isAlnum(t.peek()) {
				t.current++
			}
			t.add(Keyword, "")
		default:
			return syntaxErr(ErrInvalidCharacter, t.start, "Invalid character")
		}
	}
}

func (t *tokenizer) quoted(sep rune) error {
	var b strings.Builder
	escape := false

	for {
		ch, ok := t.next()
		switch {
		case !ok:
			return syntaxErr(ErrUnterminatedString, t.start, "Unterminated quoted string")
		case escape:
			b.WriteRune(ch)
			escape = false
		case ch == '\\':
			escape = true
		case ch == sep:
			t.tokens = append(t.tokens, Token{Kind: String, Value: b.String(), Start: t.start})
			return nil
		default:
			b.WriteRune(ch)
		}
	}
}

// add appends a token; an empty value means the matched source text.
func (t *tokenizer) add(kind TokenKind, value string) {
	if value == "" {
		value = string(t.line[t.start:t.current])
	}
	t.tokens = append(t.tokens, Token{Kind: kind, Value: value, Start: t.start})
}

func (t *tokenizer) next() (rune, bool) {
	if t.current >= len(t.line) {
		return 0, false
	}
	ch := t.line[t.current]
	t.current++
	return ch, true
}

func (t *tokenizer) peek() rune {
	if t.current >= len(t.line) {
		return 0
	}
	return t.line[t.current]
}

func isAlpha(ch rune) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch == '_'
}

func isAlnum(ch rune) bool {
	return isAlpha(ch) || (ch >= '0' && ch <= '9')
}
