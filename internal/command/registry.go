package command

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/kennyg/folio/internal/logging"
)

// Set is a command registry keyed by derived name.
type Set struct {
	byName map[string]*Definition
}

// CommandFile is a discovered registry entry before parsing.
type CommandFile struct {
	Path string // path on disk
	Name string // derived command name
}

// Files enumerates the command files under dir in walk order, deriving
// each name from its path, without parsing anything. A missing directory
// is an empty registry. Dot-prefixed files and directories are skipped.
func Files(dir string) ([]CommandFile, error) {
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return nil, nil
	}

	var files []CommandFile
	err := filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if p != dir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if !IsCommandFile(d.Name()) {
			return nil
		}

		rel, err := filepath.Rel(dir, p)
		if err != nil {
			return err
		}
		files = append(files, CommandFile{Path: p, Name: DeriveName(filepath.ToSlash(rel))})
		return nil
	})
	if err != nil {
		return nil, err
	}

	return files, nil
}

// LoadDir enumerates command files under dir (recursively), parses each,
// and returns the registry. The load is all-or-nothing: the first
// malformed file, empty prompt, or duplicate derived name aborts with the
// corresponding error, because a silently incomplete command set is a
// user-visible regression for the hosting runtime.
func LoadDir(dir string) (*Set, error) {
	files, err := Files(dir)
	if err != nil {
		return nil, err
	}

	set := &Set{byName: make(map[string]*Definition)}
	for _, f := range files {
		if existing, ok := set.byName[f.Name]; ok {
			return nil, &DuplicateError{Name: f.Name, File: f.Path, Existing: existing.File}
		}

		content, err := os.ReadFile(f.Path)
		if err != nil {
			return nil, &ParseError{File: f.Path, Err: err}
		}

		def, err := Parse(content, f.Name, f.Path)
		if err != nil {
			return nil, err
		}
		set.byName[f.Name] = def
	}

	logging.Debug().Str("dir", dir).Int("commands", set.Len()).Msg("registry loaded")
	return set, nil
}

// Len returns the number of commands in the set.
func (s *Set) Len() int { return len(s.byName) }

// Get looks up a command by derived name.
func (s *Set) Get(name string) (*Definition, bool) {
	d, ok := s.byName[name]
	return d, ok
}

// Names returns all derived names, sorted.
func (s *Set) Names() []string {
	names := make([]string, 0, len(s.byName))
	for n := range s.byName {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// All returns every definition, ordered by name.
func (s *Set) All() []*Definition {
	defs := make([]*Definition, 0, len(s.byName))
	for _, n := range s.Names() {
		defs = append(defs, s.byName[n])
	}
	return defs
}
