package scaffold

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/kennyg/folio/internal/extension"
	"github.com/kennyg/folio/internal/template"
)

func TestFiles(t *testing.T) {
	files, err := Files()
	if err != nil {
		t.Fatalf("Files() error = %v", err)
	}

	var paths []string
	for _, f := range files {
		paths = append(paths, f.Path)
	}
	want := []string{
		"CONTEXT.md",
		"commands/setup.toml",
		"commands/status.toml",
		"folio.json",
		"templates/tracks.md",
	}
	if !reflect.DeepEqual(paths, want) {
		t.Fatalf("scaffold paths = %v, want %v", paths, want)
	}

	for _, f := range files {
		if len(f.Content) == 0 {
			t.Errorf("%s is empty", f.Path)
		}
	}
}

func TestWrite(t *testing.T) {
	dest := t.TempDir()
	subs := map[string]string{
		"EXTENSION_NAME":    "demo",
		"EXTENSION_VERSION": "1.0.0",
		"CONTEXT_FILE":      ContextFileName,
	}

	created, err := Write(dest, subs)
	if err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if len(created) != 5 {
		t.Fatalf("created %d files, want 5: %v", len(created), created)
	}

	// The written workspace loads as a working extension.
	ext, err := extension.Load(dest)
	if err != nil {
		t.Fatalf("Load() on scaffold output error = %v", err)
	}
	if ext.Manifest.Name != "demo" || ext.Manifest.Version != "1.0.0" {
		t.Errorf("manifest = %s v%s, want demo v1.0.0", ext.Manifest.Name, ext.Manifest.Version)
	}
	if got, want := ext.Commands.Names(), []string{"setup", "status"}; !reflect.DeepEqual(got, want) {
		t.Errorf("command names = %v, want %v", got, want)
	}

	// Non-template assets are rendered at draft time.
	context, err := os.ReadFile(filepath.Join(dest, ContextFileName))
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(context), "[EXTENSION_NAME]") {
		t.Error("CONTEXT.md still contains an unrendered token")
	}
	if !strings.Contains(string(context), "demo") {
		t.Error("CONTEXT.md does not mention the extension name")
	}

	// Template assets keep their tokens for imprint time.
	tracks, err := os.ReadFile(filepath.Join(dest, "templates", "tracks.md"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(tracks), "[PROJECT_NAME]") {
		t.Error("templates/tracks.md lost its placeholder token")
	}
}

func TestWrite_MissingSubstitution(t *testing.T) {
	dest := t.TempDir()
	_, err := Write(dest, map[string]string{
		"EXTENSION_NAME":    "demo",
		"EXTENSION_VERSION": "1.0.0",
		// CONTEXT_FILE deliberately absent.
	})

	var unresolved *template.UnresolvedError
	if !errors.As(err, &unresolved) {
		t.Fatalf("error = %T, want *template.UnresolvedError", err)
	}
	if unresolved.Token != "CONTEXT_FILE" {
		t.Errorf("Token = %s, want CONTEXT_FILE", unresolved.Token)
	}
}
