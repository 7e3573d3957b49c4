package curly

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
)

// textDecoder turns raw file bytes into UTF-8 text.
// strict means the input is UTF-8 and is validated as is, since the UTF-8
// decoder would silently replace invalid bytes.
type textDecoder struct {
	enc    encoding.Encoding
	strict bool
}

// lookupEncoding resolves a WHATWG encoding label such as "utf-8",
// "latin1" or "windows-1252". An empty label means UTF-8.
func lookupEncoding(label string) (textDecoder, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return textDecoder{enc: unicode.UTF8, strict: true}, nil
	}

	enc, err := htmlindex.Get(label)
	if err != nil {
		return textDecoder{}, fmt.Errorf("unknown encoding: %s", label)
	}
	if name, _ := htmlindex.Name(enc); name == "utf-8" {
		return textDecoder{enc: enc, strict: true}, nil
	}
	return textDecoder{enc: enc}, nil
}

func (d textDecoder) reader(r io.Reader) io.Reader {
	if d.strict {
		return r
	}
	return d.enc.NewDecoder().Reader(r)
}

// check validates one decoded line. The x/text decoders replace undecodable
// input with U+FFFD, so a line holding it is accepted only if it encodes
// back. UTF-16 can encode U+FFFD, so an unpaired surrogate still passes.
func (d textDecoder) check(line string) error {
	if d.strict {
		if !utf8.ValidString(line) {
			return fmt.Errorf("%w: invalid UTF-8 sequence", ErrDecode)
		}
		return nil
	}
	if !strings.ContainsRune(line, utf8.RuneError) {
		return nil
	}
	if _, err := d.enc.NewEncoder().String(line); err != nil {
		return fmt.Errorf("%w: invalid byte sequence", ErrDecode)
	}
	return nil
}
