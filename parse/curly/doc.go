// Package curly implements a schema-driven parser for a small curly-brace
// configuration language.
//
// A file is the implicit top-level section. Every statement sits on its own
// line and is either a string field or a nested section:
//
//	# comment
//	name "value"
//	server "web1" {
//	   root '/srv/www'
//	}
//
// Strings use ' or " and a backslash takes the next character literally.
// Keywords match [A-Za-z_][A-Za-z0-9_]*.
//
// Callers describe what a section accepts with a Schema built from
// StringField, SectionField and HeaderField descriptors. A header is the
// optional string between a nested section's keyword and its opening curly.
//
// Scope:
// - line-oriented tokenizer with character positions
// - recursive section interpreter shared across nested sections
// - diagnostic dump and a re-parseable encoder
//
// Non-goals:
// - numeric or boolean literals
// - include directives
// - multi-line strings
package curly
