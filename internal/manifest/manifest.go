// Package manifest loads and validates the folio.json extension manifest.
// The manifest is a single JSON record identifying the extension and the
// context file the hosting runtime loads alongside it. Comments and
// trailing commas are tolerated on input; serialized output is plain JSON.
package manifest

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"

	"github.com/kennyg/folio/internal/logging"
)

// Filename is the manifest filename at an extension root.
const Filename = "folio.json"

// Manifest identifies an extension installation.
type Manifest struct {
	// Name is a short identifier, used as the command prefix by the
	// hosting runtime.
	Name string `json:"name"`

	// Version is a semantic version string. Advisory only; no
	// compatibility logic is enforced.
	Version string `json:"version"`

	// ContextFileName is a path, relative to the extension root, of the
	// document loaded as ambient context.
	ContextFileName string `json:"contextFileName"`
}

// Parse decodes manifest bytes into a Manifest and checks field presence.
// Input may contain JSONC comments and trailing commas.
func Parse(data []byte) (*Manifest, error) {
	var m Manifest
	if err := json.Unmarshal(jsonc.ToJSON(data), &m); err != nil {
		return nil, &MalformedError{Reason: "invalid JSON", Err: err}
	}
	if err := m.validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// validate performs field presence checks. Shape errors beyond presence
// (wrong JSON types) are caught by the decoder in Parse.
func (m *Manifest) validate() error {
	if strings.TrimSpace(m.Name) == "" {
		return &MalformedError{Reason: "missing required field: name"}
	}
	if strings.TrimSpace(m.Version) == "" {
		return &MalformedError{Reason: "missing required field: version"}
	}
	if strings.TrimSpace(m.ContextFileName) == "" {
		return &MalformedError{Reason: "missing required field: contextFileName"}
	}
	return nil
}

// Serialize renders a Manifest as indented JSON. For all valid manifests,
// Parse(Serialize(m)) yields a value identical to m.
func Serialize(m *Manifest) ([]byte, error) {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// Load reads and validates the manifest at dir/folio.json, then verifies
// that the context file it references exists under dir.
func Load(dir string) (*Manifest, error) {
	path := filepath.Join(dir, Filename)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &MalformedError{Path: path, Reason: "manifest not found"}
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	m, err := Parse(data)
	if err != nil {
		var malformed *MalformedError
		if errors.As(err, &malformed) {
			malformed.Path = path
		}
		return nil, err
	}

	contextPath := filepath.Join(dir, filepath.FromSlash(m.ContextFileName))
	info, statErr := os.Stat(contextPath)
	if statErr != nil || info.IsDir() {
		return nil, &MissingContextError{Manifest: path, ContextFile: m.ContextFileName}
	}

	logging.Debug().
		Str("manifest", path).
		Str("name", m.Name).
		Str("version", m.Version).
		Msg("manifest loaded")

	return m, nil
}
