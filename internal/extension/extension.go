// Package extension ties the loaders together: the standard layout of an
// extension workspace and a whole-extension load used by the CLI.
package extension

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/kennyg/folio/internal/command"
	"github.com/kennyg/folio/internal/manifest"
)

// Standard directory names under an extension root.
const (
	CommandsDirName  = "commands"
	TemplatesDirName = "templates"
)

// Extension is a fully loaded extension workspace.
type Extension struct {
	// Root is the directory containing folio.json.
	Root string

	Manifest *manifest.Manifest
	Commands *command.Set
}

// Load reads the manifest and the command registry at root. Either
// failure aborts the load; a missing commands directory is an empty
// registry, not an error.
func Load(root string) (*Extension, error) {
	m, err := manifest.Load(root)
	if err != nil {
		return nil, err
	}

	set, err := command.LoadDir(filepath.Join(root, CommandsDirName))
	if err != nil {
		return nil, err
	}

	return &Extension{Root: root, Manifest: m, Commands: set}, nil
}

// CommandsDir returns the registry directory under the root.
func (e *Extension) CommandsDir() string {
	return filepath.Join(e.Root, CommandsDirName)
}

// TemplatesDir returns the template source root under the root.
func (e *Extension) TemplatesDir() string {
	return filepath.Join(e.Root, TemplatesDirName)
}

// ContextFilePath returns the resolved path of the manifest's context file.
func (e *Extension) ContextFilePath() string {
	return filepath.Join(e.Root, filepath.FromSlash(e.Manifest.ContextFileName))
}

// BuiltinTokens returns the default substitutions folio provides when
// imprinting: the consumer project's name plus the extension's identity.
// Values files and --set flags may override them.
func BuiltinTokens(m *manifest.Manifest, projectName string) map[string]string {
	return map[string]string{
		"PROJECT_NAME":      projectName,
		"EXTENSION_NAME":    m.Name,
		"EXTENSION_VERSION": m.Version,
	}
}

// FindRoot walks up from start looking for a directory containing
// folio.json, so folio commands work from anywhere inside an extension.
func FindRoot(start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", err
	}

	for {
		candidate := filepath.Join(dir, manifest.Filename)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break // reached filesystem root
		}
		dir = parent
	}

	return "", fmt.Errorf("no %s found in %s or any parent directory", manifest.Filename, start)
}
