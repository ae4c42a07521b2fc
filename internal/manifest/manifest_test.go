package manifest

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		want       *Manifest
		wantErr    bool
		wantReason string
	}{
		{
			name:  "plain manifest",
			input: `{"name":"review-kit","version":"1.2.0","contextFileName":"CONTEXT.md"}`,
			want:  &Manifest{Name: "review-kit", Version: "1.2.0", ContextFileName: "CONTEXT.md"},
		},
		{
			name: "line comments tolerated",
			input: `{
  // extension identity
  "name": "review-kit",
  "version": "1.2.0",
  "contextFileName": "CONTEXT.md"
}`,
			want: &Manifest{Name: "review-kit", Version: "1.2.0", ContextFileName: "CONTEXT.md"},
		},
		{
			name: "block comments and trailing commas tolerated",
			input: `{
  "name": "review-kit", /* the command prefix */
  "version": "1.2.0",
  "contextFileName": "CONTEXT.md",
}`,
			want: &Manifest{Name: "review-kit", Version: "1.2.0", ContextFileName: "CONTEXT.md"},
		},
		{
			name:  "unknown fields ignored",
			input: `{"name":"x","version":"1.0.0","contextFileName":"c.md","homepage":"https://example.com"}`,
			want:  &Manifest{Name: "x", Version: "1.0.0", ContextFileName: "c.md"},
		},
		{
			name:  "context file in subdirectory",
			input: `{"name":"x","version":"0.1.0","contextFileName":"docs/CONTEXT.md"}`,
			want:  &Manifest{Name: "x", Version: "0.1.0", ContextFileName: "docs/CONTEXT.md"},
		},
		{
			name:       "missing name",
			input:      `{"version":"1.0.0","contextFileName":"CONTEXT.md"}`,
			wantErr:    true,
			wantReason: "name",
		},
		{
			name:       "missing version",
			input:      `{"name":"x","contextFileName":"CONTEXT.md"}`,
			wantErr:    true,
			wantReason: "version",
		},
		{
			name:       "missing context file name",
			input:      `{"name":"x","version":"1.0.0"}`,
			wantErr:    true,
			wantReason: "contextFileName",
		},
		{
			name:       "blank name",
			input:      `{"name":"  ","version":"1.0.0","contextFileName":"CONTEXT.md"}`,
			wantErr:    true,
			wantReason: "name",
		},
		{
			name:    "not json",
			input:   `name = "x"`,
			wantErr: true,
		},
		{
			name:    "wrong field type",
			input:   `{"name":"x","version":2,"contextFileName":"CONTEXT.md"}`,
			wantErr: true,
		},
		{
			name:    "empty input",
			input:   "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse([]byte(tt.input))
			if (err != nil) != tt.wantErr {
				t.Fatalf("Parse() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				var malformed *MalformedError
				if !errors.As(err, &malformed) {
					t.Fatalf("error = %T, want *MalformedError", err)
				}
				if tt.wantReason != "" && !strings.Contains(malformed.Reason, tt.wantReason) {
					t.Errorf("Reason = %q, want mention of %q", malformed.Reason, tt.wantReason)
				}
				return
			}
			if *got != *tt.want {
				t.Errorf("Parse() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestSerializeRoundTrip(t *testing.T) {
	tests := []struct {
		name     string
		manifest Manifest
	}{
		{"simple", Manifest{Name: "review-kit", Version: "1.0.0", ContextFileName: "CONTEXT.md"}},
		{"nested context path", Manifest{Name: "a", Version: "0.0.1", ContextFileName: "docs/nested/AGENT.md"}},
		{"name with unicode", Manifest{Name: "presse-à-bras", Version: "2.0.0-rc.1", ContextFileName: "CONTEXT.md"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := Serialize(&tt.manifest)
			if err != nil {
				t.Fatalf("Serialize() error = %v", err)
			}

			got, err := Parse(data)
			if err != nil {
				t.Fatalf("Parse(Serialize()) error = %v", err)
			}
			if *got != tt.manifest {
				t.Errorf("round trip = %+v, want %+v", got, tt.manifest)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, Filename),
		`{"name":"review-kit","version":"1.0.0","contextFileName":"CONTEXT.md"}`)
	writeFile(t, filepath.Join(dir, "CONTEXT.md"), "# Context\n")

	m, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if m.Name != "review-kit" {
		t.Errorf("Name = %q, want review-kit", m.Name)
	}
	if m.ContextFileName != "CONTEXT.md" {
		t.Errorf("ContextFileName = %q, want CONTEXT.md", m.ContextFileName)
	}
}

func TestLoad_MissingManifest(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(dir)
	if err == nil {
		t.Fatal("Load() expected error for missing manifest")
	}

	var malformed *MalformedError
	if !errors.As(err, &malformed) {
		t.Fatalf("error = %T, want *MalformedError", err)
	}
	if malformed.Path != filepath.Join(dir, Filename) {
		t.Errorf("Path = %q, want %q", malformed.Path, filepath.Join(dir, Filename))
	}
}

func TestLoad_MalformedCarriesPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, Filename)
	writeFile(t, path, `{"name":"x"`)

	_, err := Load(dir)
	var malformed *MalformedError
	if !errors.As(err, &malformed) {
		t.Fatalf("error = %T, want *MalformedError", err)
	}
	if malformed.Path != path {
		t.Errorf("Path = %q, want %q", malformed.Path, path)
	}
	if !strings.Contains(err.Error(), path) {
		t.Errorf("error message %q does not name the manifest file", err.Error())
	}
}

func TestLoad_MissingContextFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, Filename),
		`{"name":"x","version":"1.0.0","contextFileName":"GONE.md"}`)

	_, err := Load(dir)
	if err == nil {
		t.Fatal("Load() expected error for missing context file")
	}

	var missing *MissingContextError
	if !errors.As(err, &missing) {
		t.Fatalf("error = %T, want *MissingContextError", err)
	}
	if missing.ContextFile != "GONE.md" {
		t.Errorf("ContextFile = %q, want GONE.md", missing.ContextFile)
	}
	if !strings.Contains(err.Error(), "GONE.md") {
		t.Errorf("error message %q does not name the context file", err.Error())
	}
}

func TestLoad_ContextFileIsDirectory(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, Filename),
		`{"name":"x","version":"1.0.0","contextFileName":"docs"}`)
	if err := os.Mkdir(filepath.Join(dir, "docs"), 0755); err != nil {
		t.Fatal(err)
	}

	_, err := Load(dir)
	var missing *MissingContextError
	if !errors.As(err, &missing) {
		t.Fatalf("error = %T, want *MissingContextError", err)
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}
