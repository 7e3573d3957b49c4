package parse

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/BurntSushi/toml"
	"github.com/dzjyyds666/curlyconf/parse/curly"
	"gopkg.in/yaml.v3"
)

// =========================
// Export
// =========================

// Export encodes a parsed value (usually a *curly.Section, or anything
// curly.Get returned) in the given format.
func Export(w io.Writer, v any, format Format) error {
	data := curly.ToUntyped(v)

	switch format {
	case formats.JSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(data)
	case formats.YAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(data); err != nil {
			return err
		}
		return enc.Close()
	case formats.TOML:
		m, ok := dropNil(data).(map[string]any)
		if !ok {
			// TOML documents are tables, so leaves are wrapped.
			m = map[string]any{"value": dropNil(data)}
		}
		return toml.NewEncoder(w).Encode(m)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

// dropNil removes nil leaves, which TOML can not represent.
func dropNil(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			if e == nil {
				continue
			}
			out[k] = dropNil(e)
		}
		return out
	case []any:
		out := make([]any, 0, len(t))
		for _, e := range t {
			if e == nil {
				continue
			}
			out = append(out, dropNil(e))
		}
		return out
	default:
		return t
	}
}
