// Package command loads the extension's command registry: one TOML file
// per command under the commands directory, keyed by a name derived from
// the file path. Prompt bodies are opaque text; the loader validates
// structure only, never prompt content.
package command

import (
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Extension is the file extension for command definitions.
const Extension = ".toml"

// Definition is one named command: a short description and a free-text
// prompt body interpreted by the hosting runtime.
type Definition struct {
	// Name is derived from the file path, never stored in the file.
	Name string
	// File is the path the definition was loaded from.
	File string

	Description string
	Prompt      string
}

// record is the on-disk shape. The multiline tag keeps serialized prompt
// bodies readable and round-trip safe for embedded quotes and newlines.
type record struct {
	Description string `toml:"description"`
	Prompt      string `toml:"prompt,multiline"`
}

// Parse decodes one command definition. The file argument is used for
// error reporting and becomes Definition.File.
func Parse(content []byte, name, file string) (*Definition, error) {
	var rec record
	if err := toml.Unmarshal(content, &rec); err != nil {
		return nil, &ParseError{File: file, Err: err}
	}

	if strings.TrimSpace(rec.Prompt) == "" {
		return nil, &EmptyPromptError{File: file}
	}

	return &Definition{
		Name:        name,
		File:        file,
		Description: rec.Description,
		Prompt:      rec.Prompt,
	}, nil
}

// ParseFile reads and parses a single command file. The derived name is
// taken from the base filename only; use LoadDir for namespaced names.
func ParseFile(file string) (*Definition, error) {
	content, err := os.ReadFile(file)
	if err != nil {
		return nil, &ParseError{File: file, Err: err}
	}
	return Parse(content, DeriveName(filepath.Base(file)), file)
}

// Serialize renders a definition back to TOML. Prompt bodies survive
// Serialize then Parse without truncation.
func Serialize(d *Definition) ([]byte, error) {
	return toml.Marshal(record{
		Description: d.Description,
		Prompt:      d.Prompt,
	})
}

// IsCommandFile reports whether a filename looks like a command definition.
func IsCommandFile(name string) bool {
	if strings.HasPrefix(name, ".") {
		return false
	}
	return strings.EqualFold(filepath.Ext(name), Extension)
}

// DeriveName converts a slash-separated path relative to the commands
// directory into a command name: the extension is stripped, each element
// is normalized, and elements are joined with ":" so subdirectories
// namespace their commands (git/setup.toml -> git:setup).
func DeriveName(relPath string) string {
	relPath = strings.TrimSuffix(relPath, path.Ext(relPath))

	parts := strings.Split(relPath, "/")
	for i, p := range parts {
		parts[i] = normalizeElement(p)
	}
	return strings.Join(parts, ":")
}

// normalizeElement lowercases a path element and collapses runs of spaces
// and underscores into single hyphens.
func normalizeElement(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))

	var b strings.Builder
	lastHyphen := false
	for _, r := range s {
		switch {
		case r == ' ' || r == '_' || r == '-':
			if !lastHyphen && b.Len() > 0 {
				b.WriteByte('-')
				lastHyphen = true
			}
		default:
			b.WriteRune(r)
			lastHyphen = false
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
