// Package scaffold holds the embedded starter workspace written by
// `folio draft`: a manifest, a context file, two example commands, and an
// example template asset.
package scaffold

import (
	"embed"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/kennyg/folio/internal/extension"
	"github.com/kennyg/folio/internal/template"
)

//go:embed all:assets
var assetsFS embed.FS

const assetsRoot = "assets"

// ContextFileName is the context file the scaffold ships with and the
// name its manifest points at.
const ContextFileName = "CONTEXT.md"

// File is one scaffold asset.
type File struct {
	// Path is relative to the workspace root.
	Path    string
	Content []byte
}

// Files returns the scaffold assets in lexical order.
func Files() ([]File, error) {
	var files []File

	err := fs.WalkDir(assetsFS, assetsRoot, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		content, err := assetsFS.ReadFile(p)
		if err != nil {
			return err
		}

		rel := strings.TrimPrefix(p, assetsRoot+"/")
		files = append(files, File{Path: rel, Content: content})
		return nil
	})
	if err != nil {
		return nil, err
	}

	return files, nil
}

// Write renders the scaffold into dest and returns the created paths.
// Assets under templates/ are copied verbatim: their placeholder tokens
// belong to imprint time, not draft time. Everything else is rendered
// with the given substitutions.
func Write(dest string, subs map[string]string) ([]string, error) {
	files, err := Files()
	if err != nil {
		return nil, err
	}

	var created []string
	for _, f := range files {
		content := f.Content
		if !strings.HasPrefix(f.Path, extension.TemplatesDirName+"/") {
			content, err = template.Render(f.Content, subs, f.Path)
			if err != nil {
				return created, err
			}
		}

		target := filepath.Join(dest, filepath.FromSlash(f.Path))
		if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
			return created, err
		}
		if err := os.WriteFile(target, content, 0644); err != nil {
			return created, err
		}
		created = append(created, path.Clean(f.Path))
	}

	return created, nil
}
