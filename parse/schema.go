package parse

// Package parse 提供 curly 配置的外围工具：从 YAML/TOML 描述文件加载 schema，
// 以及把解析结果导出为 JSON / YAML / TOML。

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/dzjyyds666/curlyconf/parse/curly"
	"gopkg.in/yaml.v3"
)

// =========================
// Schema Description
// =========================

// SchemaSpec is the on-disk description of a curly schema.
type SchemaSpec struct {
	Name   string      `yaml:"name" toml:"name"`
	Fields []FieldSpec `yaml:"fields" toml:"fields"`
}

// FieldSpec describes one field. Kind is "string", "section" or "header";
// Default is only meaningful for strings, and Schema only for sections.
type FieldSpec struct {
	Name    string      `yaml:"name" toml:"name"`
	Ident   string      `yaml:"ident,omitempty" toml:"ident,omitempty"`
	Kind    string      `yaml:"kind" toml:"kind"`
	Multi   bool        `yaml:"multi,omitempty" toml:"multi,omitempty"`
	Default *string     `yaml:"default,omitempty" toml:"default,omitempty"`
	Schema  *SchemaSpec `yaml:"schema,omitempty" toml:"schema,omitempty"`
}

var ErrSchemaFile = errors.New("schema file")

type Format string

var formats = struct {
	JSON Format
	YAML Format
	TOML Format
}{
	JSON: "json",
	YAML: "yaml",
	TOML: "toml",
}

// FormatFromPath picks a format from a file extension, defaulting to JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return formats.YAML
	case ".toml":
		return formats.TOML
	default:
		return formats.JSON
	}
}

// ParseFormat validates a user supplied format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case formats.JSON, formats.YAML, formats.TOML:
		return f, nil
	default:
		return "", fmt.Errorf("unsupported format: %s", s)
	}
}

// LoadSchema reads a YAML or TOML schema description, chosen by extension.
func LoadSchema(path string) (*curly.Schema, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var spec SchemaSpec
	switch FormatFromPath(path) {
	case formats.TOML:
		if _, err := toml.Decode(string(content), &spec); err != nil {
			return nil, fmt.Errorf("%w %s: TOML parse error: %w", ErrSchemaFile, path, err)
		}
	default:
		if err := yaml.Unmarshal(content, &spec); err != nil {
			return nil, fmt.Errorf("%w %s: YAML parse error: %w", ErrSchemaFile, path, err)
		}
	}

	schema, err := spec.Build()
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrSchemaFile, path, err)
	}
	if h, ok := schema.Header(); ok {
		return nil, fmt.Errorf("%w %s: %s.%s: can not have header, as it is the main section",
			ErrSchemaFile, path, schema.Name(), h.Name)
	}
	return schema, nil
}

// Build turns the description into a validated schema.
func (s *SchemaSpec) Build() (*curly.Schema, error) {
	if s.Name == "" {
		return nil, errors.New("schema has no name")
	}

	fields := make([]curly.Field, 0, len(s.Fields))
	for _, fs := range s.Fields {
		f, err := fs.build(s.Name)
		if err != nil {
			return nil, err
		}
		fields = append(fields, f)
	}
	return curly.NewSchema(s.Name, fields...)
}

func (fs *FieldSpec) build(parent string) (curly.Field, error) {
	var opts []curly.FieldOption
	if fs.Ident != "" {
		opts = append(opts, curly.WithIdent(fs.Ident))
	}
	if fs.Multi {
		opts = append(opts, curly.Multi())
	}
	if fs.Default != nil {
		opts = append(opts, curly.WithDefault(*fs.Default))
	}

	switch strings.ToLower(fs.Kind) {
	case "", "string":
		if fs.Schema != nil {
			return curly.Field{}, fmt.Errorf("%s.%s: schema is not allowed for string", parent, fs.Name)
		}
		return curly.StringField(fs.Name, opts...), nil
	case "section":
		if fs.Schema == nil {
			return curly.Field{}, fmt.Errorf("%s.%s: schema is required for section", parent, fs.Name)
		}
		sub, err := fs.Schema.Build()
		if err != nil {
			return curly.Field{}, err
		}
		return curly.SectionField(fs.Name, sub, opts...), nil
	case "header":
		if len(opts) > 0 || fs.Schema != nil {
			return curly.Field{}, fmt.Errorf("%s.%s: header takes no ident, multi, default or schema", parent, fs.Name)
		}
		return curly.HeaderField(fs.Name), nil
	default:
		return curly.Field{}, fmt.Errorf("%s.%s: kind %q is unknown", parent, fs.Name, fs.Kind)
	}
}
