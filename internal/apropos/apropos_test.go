package apropos

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"
)

func writeCommand(t *testing.T, dir, rel, content string) string {
	t.Helper()
	path := filepath.Join(dir, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestExtractKeywords(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "plain words minus stopwords",
			text: "Create a new release branch",
			want: []string{"create", "new", "release", "branch"},
		},
		{
			name: "case folded and deduplicated",
			text: "branch Branch BRANCH",
			want: []string{"branch"},
		},
		{
			name: "punctuation becomes word breaks",
			text: "git-flow: finish/publish!",
			want: []string{"git", "flow", "finish", "publish"},
		},
		{
			name: "short words dropped",
			text: "do it by PR",
			want: nil,
		},
		{
			name: "stopwords only",
			text: "the user should use your file",
			want: nil,
		},
		{
			name: "digits survive",
			text: "migrate to http2 schema",
			want: []string{"migrate", "http2", "schema"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := extractKeywords(tt.text)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("extractKeywords(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestBuildIndex(t *testing.T) {
	dir := t.TempDir()
	releasePath := writeCommand(t, dir, "release.toml",
		"description = \"Cut a release branch\"\n\nprompt = \"Tag the build.\"\n")
	writeCommand(t, dir, "status.toml", "prompt = \"Report workflow state.\"\n")

	index, err := BuildIndex(dir)
	if err != nil {
		t.Fatalf("BuildIndex() error = %v", err)
	}
	if len(index.Commands) != 2 {
		t.Fatalf("indexed %d commands, want 2", len(index.Commands))
	}

	release := index.Commands[0]
	if release.Name != "release" {
		t.Fatalf("Commands[0].Name = %s, want release", release.Name)
	}
	if release.File != releasePath {
		t.Errorf("File = %s, want %s", release.File, releasePath)
	}
	if release.ModTime == 0 {
		t.Error("ModTime not recorded")
	}
	if want := []string{"cut", "release", "branch", "tag", "build"}; !reflect.DeepEqual(release.Keywords, want) {
		t.Errorf("Keywords = %v, want %v", release.Keywords, want)
	}

	if index.Commands[1].Name != "status" {
		t.Errorf("Commands[1].Name = %s, want status", index.Commands[1].Name)
	}
}

func TestBuildIndex_MissingDir(t *testing.T) {
	index, err := BuildIndex(filepath.Join(t.TempDir(), "commands"))
	if err != nil {
		t.Fatalf("BuildIndex() error = %v", err)
	}
	if len(index.Commands) != 0 {
		t.Errorf("Commands = %v, want none", index.Commands)
	}
}

func TestSaveAndLoadIndex(t *testing.T) {
	dir := t.TempDir()
	want := &Index{
		Generated: time.Unix(1700000000, 0).UTC(),
		Commands: []Entry{
			{
				Name:        "release",
				File:        filepath.Join(dir, "release.toml"),
				Description: "Cut a release branch",
				Keywords:    []string{"cut", "release", "branch"},
				ModTime:     1700000000,
			},
		},
	}

	if err := SaveIndex(dir, want); err != nil {
		t.Fatalf("SaveIndex() error = %v", err)
	}

	raw, err := os.ReadFile(filepath.Join(dir, IndexFileName))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(raw), "# Apropos index") {
		t.Error("cache file is missing its do-not-edit header")
	}

	got, err := LoadIndex(dir)
	if err != nil {
		t.Fatalf("LoadIndex() error = %v", err)
	}
	if got == nil {
		t.Fatal("LoadIndex() = nil for an existing cache")
	}
	if !got.Generated.Equal(want.Generated) {
		t.Errorf("Generated = %v, want %v", got.Generated, want.Generated)
	}
	if !reflect.DeepEqual(got.Commands, want.Commands) {
		t.Errorf("Commands = %+v, want %+v", got.Commands, want.Commands)
	}
}

func TestLoadIndex_Missing(t *testing.T) {
	index, err := LoadIndex(t.TempDir())
	if err != nil {
		t.Fatalf("LoadIndex() error = %v", err)
	}
	if index != nil {
		t.Errorf("LoadIndex() = %+v, want nil for a missing cache", index)
	}
}

func TestIsStale(t *testing.T) {
	dir := t.TempDir()
	releasePath := writeCommand(t, dir, "release.toml", "prompt = \"Cut a branch.\"\n")

	if stale, err := IsStale(dir, nil); err != nil || !stale {
		t.Fatalf("IsStale(nil index) = %v, %v, want true", stale, err)
	}

	index, err := BuildIndex(dir)
	if err != nil {
		t.Fatal(err)
	}
	if stale, err := IsStale(dir, index); err != nil || stale {
		t.Fatalf("fresh index reported stale: %v, %v", stale, err)
	}

	// The cache file itself is not a command and never stales the index.
	if err := SaveIndex(dir, index); err != nil {
		t.Fatal(err)
	}
	if stale, _ := IsStale(dir, index); stale {
		t.Error("writing the cache staled the index")
	}

	// Touching a command file stales it.
	future := time.Now().Add(2 * time.Hour)
	if err := os.Chtimes(releasePath, future, future); err != nil {
		t.Fatal(err)
	}
	if stale, _ := IsStale(dir, index); !stale {
		t.Error("modified command not detected")
	}

	index, err = BuildIndex(dir)
	if err != nil {
		t.Fatal(err)
	}
	if stale, _ := IsStale(dir, index); stale {
		t.Error("rebuilt index still stale")
	}

	// So does adding a command.
	writeCommand(t, dir, "status.toml", "prompt = \"Report state.\"\n")
	if stale, _ := IsStale(dir, index); !stale {
		t.Error("added command not detected")
	}

	index, err = BuildIndex(dir)
	if err != nil {
		t.Fatal(err)
	}

	// And removing one.
	if err := os.Remove(releasePath); err != nil {
		t.Fatal(err)
	}
	if stale, _ := IsStale(dir, index); !stale {
		t.Error("removed command not detected")
	}
}

func TestSearch(t *testing.T) {
	index := &Index{
		Commands: []Entry{
			{Name: "release", Description: "Cut a release branch", Keywords: []string{"cut", "release", "branch"}},
			{Name: "git:finish", Description: "Finish the current branch", Keywords: []string{"finish", "current", "branch"}},
			{Name: "status", Description: "Summarize workflow state", Keywords: []string{"summarize", "workflow", "state"}},
		},
	}

	t.Run("exact name outranks everything", func(t *testing.T) {
		results := Search(index, "release")
		if len(results) != 1 {
			t.Fatalf("got %d results, want 1", len(results))
		}
		if results[0].Entry.Name != "release" {
			t.Errorf("top result = %s, want release", results[0].Entry.Name)
		}
		// name 100 + description 10 + keyword 20
		if results[0].Score != 130 {
			t.Errorf("Score = %d, want 130", results[0].Score)
		}
	})

	t.Run("shared keyword keeps index order on ties", func(t *testing.T) {
		results := Search(index, "branch")
		if len(results) != 2 {
			t.Fatalf("got %d results, want 2", len(results))
		}
		if results[0].Entry.Name != "release" || results[1].Entry.Name != "git:finish" {
			t.Errorf("order = %s, %s", results[0].Entry.Name, results[1].Entry.Name)
		}
	})

	t.Run("substring matches score lower than exact", func(t *testing.T) {
		exact := Search(index, "finish")
		partial := Search(index, "fin")
		if len(exact) != 1 || len(partial) != 1 {
			t.Fatalf("got %d and %d results, want 1 and 1", len(exact), len(partial))
		}
		if partial[0].Score >= exact[0].Score {
			t.Errorf("partial score %d >= exact score %d", partial[0].Score, exact[0].Score)
		}
	})

	t.Run("multi word queries accumulate", func(t *testing.T) {
		results := Search(index, "workflow state")
		if len(results) != 1 {
			t.Fatalf("got %d results, want 1", len(results))
		}
		if results[0].Entry.Name != "status" {
			t.Errorf("top result = %s, want status", results[0].Entry.Name)
		}
	})

	t.Run("no match", func(t *testing.T) {
		if results := Search(index, "zebra"); results != nil {
			t.Errorf("Search() = %v, want nil", results)
		}
	})

	t.Run("nil index", func(t *testing.T) {
		if results := Search(nil, "release"); results != nil {
			t.Errorf("Search() = %v, want nil", results)
		}
	})
}
