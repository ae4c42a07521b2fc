package template

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/kennyg/folio/internal/logging"
)

// Policy selects what Distribute does when a destination file already
// exists. The choice is exposed rather than hardcoded because re-running
// setup against an initialized project is an expected use.
type Policy string

const (
	// PolicyOverwrite replaces existing destination files unconditionally.
	PolicyOverwrite Policy = "overwrite"
	// PolicySkip preserves existing destination files and records a notice.
	PolicySkip Policy = "skip"
)

// ParsePolicy validates a policy name from user input.
func ParsePolicy(s string) (Policy, error) {
	switch Policy(strings.ToLower(strings.TrimSpace(s))) {
	case PolicyOverwrite:
		return PolicyOverwrite, nil
	case PolicySkip, "skip-existing":
		return PolicySkip, nil
	}
	return "", fmt.Errorf("unknown policy %q (use %q or %q)", s, PolicyOverwrite, PolicySkip)
}

// Options configures one distribution run.
type Options struct {
	// Source is the template root to copy from.
	Source string
	// Dest is the destination root to copy into.
	Dest string
	// Substitutions maps token names to replacement text.
	Substitutions map[string]string
	// Policy governs existing destination files.
	Policy Policy
	// DryRun computes the report without writing anything.
	DryRun bool
}

// Report records the outcome of a distribution run, in source order.
type Report struct {
	// Written are files created or replaced in the destination.
	Written []string
	// Skipped are files left untouched under PolicySkip.
	Skipped []string
	// Unwritten are files that did not reach the destination because the
	// run aborted. Empty on success.
	Unwritten []string
}

// Distribute copies every template asset from Source into Dest, applying
// substitutions. The operation is all-or-nothing: every file is read and
// rendered before the first write, so an unresolved token aborts with
// zero bytes written; a write failure aborts immediately and the report
// names every file that did not get written.
//
// Concurrent runs against the same destination are unsupported.
func Distribute(opts Options) (*Report, error) {
	if opts.Policy == "" {
		opts.Policy = PolicySkip
	}

	assets, err := collect(opts.Source)
	if err != nil {
		return nil, err
	}

	report := &Report{}

	// Render everything up front. No destination write happens until the
	// whole template set resolves.
	rendered := make(map[string][]byte, len(assets))
	for _, a := range assets {
		content, err := os.ReadFile(filepath.Join(opts.Source, filepath.FromSlash(a.rel)))
		if err != nil {
			report.Unwritten = relPaths(assets)
			return report, fmt.Errorf("read template %s: %w", a.rel, err)
		}
		out, err := Render(content, opts.Substitutions, a.rel)
		if err != nil {
			report.Unwritten = relPaths(assets)
			return report, err
		}
		rendered[a.rel] = out
	}

	for i, a := range assets {
		destPath := filepath.Join(opts.Dest, filepath.FromSlash(a.rel))

		if _, err := os.Stat(destPath); err == nil && opts.Policy == PolicySkip {
			report.Skipped = append(report.Skipped, a.rel)
			continue
		}

		if opts.DryRun {
			report.Written = append(report.Written, a.rel)
			continue
		}

		if err := writeAsset(destPath, rendered[a.rel], a.mode); err != nil {
			for _, remaining := range assets[i:] {
				report.Unwritten = append(report.Unwritten, remaining.rel)
			}
			return report, &WriteError{Path: destPath, Err: err}
		}
		report.Written = append(report.Written, a.rel)

		logging.Debug().Str("file", a.rel).Msg("template written")
	}

	return report, nil
}

// asset is one file discovered under the source root.
type asset struct {
	rel  string // slash-normalized path relative to the source root
	mode fs.FileMode
}

// collect walks the source root gathering template files in lexical
// order. Dot-prefixed files and directories are not distributed. A
// missing source root is an empty template set, not an error.
func collect(source string) ([]asset, error) {
	if _, err := os.Stat(source); os.IsNotExist(err) {
		return nil, nil
	}

	var assets []asset

	err := filepath.WalkDir(source, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if p != source && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasPrefix(d.Name(), ".") {
			return nil
		}

		rel, err := filepath.Rel(source, p)
		if err != nil {
			return err
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		assets = append(assets, asset{rel: filepath.ToSlash(rel), mode: info.Mode()})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan templates: %w", err)
	}

	return assets, nil
}

func writeAsset(destPath string, content []byte, mode fs.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(destPath), 0755); err != nil {
		return err
	}
	perm := mode.Perm()
	if perm == 0 {
		perm = 0644
	}
	return os.WriteFile(destPath, content, perm)
}

func relPaths(assets []asset) []string {
	paths := make([]string, len(assets))
	for i, a := range assets {
		paths[i] = a.rel
	}
	return paths
}
