// Package archive builds the release artifact: a gzip-compressed tar of
// an extension tree, excluding a denylist of paths. Relative paths and
// permission bits are preserved. Archive bytes are not deterministic
// across runs (tar embeds timestamps); release artifacts do not need to
// be content-addressed.
package archive

import (
	"archive/tar"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/klauspost/compress/gzip"

	"github.com/kennyg/folio/internal/logging"
)

// Options configures one packaging run.
type Options struct {
	// Root is the directory tree to archive.
	Root string
	// Output is the artifact path to write.
	Output string
	// ExcludePrefixes are path-segment prefixes relative to Root:
	// ".git" excludes ".git/config" but not ".gitignore".
	ExcludePrefixes []string
	// ExcludeGlobs are doublestar patterns matched against the
	// slash-normalized relative path, e.g. "**/*.bak".
	ExcludeGlobs []string
}

// Entry describes one archived file.
type Entry struct {
	Path   string      `json:"path"` // slash-normalized, relative to Root
	Size   int64       `json:"size"`
	Mode   fs.FileMode `json:"-"`
	SHA256 string      `json:"sha256"`
}

// Write produces the archive and returns its entries in archive order.
// Only regular files are archived; the output artifact itself is always
// excluded when it lands under Root. Any underlying I/O failure aborts
// with a WriteError; retries belong to the invoking CI system.
func Write(opts Options) ([]Entry, error) {
	files, err := collect(opts)
	if err != nil {
		return nil, err
	}

	if dir := filepath.Dir(opts.Output); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, &WriteError{Output: opts.Output, Err: err}
		}
	}

	out, err := os.Create(opts.Output)
	if err != nil {
		return nil, &WriteError{Output: opts.Output, Err: err}
	}
	defer out.Close()

	gz := gzip.NewWriter(out)
	tw := tar.NewWriter(gz)

	var entries []Entry
	for _, rel := range files {
		entry, err := addFile(tw, opts.Root, rel)
		if err != nil {
			return nil, &WriteError{Output: opts.Output, Err: err}
		}
		entries = append(entries, entry)
	}

	if err := tw.Close(); err != nil {
		return nil, &WriteError{Output: opts.Output, Err: err}
	}
	if err := gz.Close(); err != nil {
		return nil, &WriteError{Output: opts.Output, Err: err}
	}
	if err := out.Close(); err != nil {
		return nil, &WriteError{Output: opts.Output, Err: err}
	}

	logging.Debug().Str("output", opts.Output).Int("files", len(entries)).Msg("archive written")
	return entries, nil
}

// collect walks Root and returns the slash-normalized relative paths to
// archive, in lexical order.
func collect(opts Options) ([]string, error) {
	prefixes := normalizePrefixes(opts.ExcludePrefixes)

	// Never archive the artifact into itself.
	if rel, err := filepath.Rel(opts.Root, opts.Output); err == nil && !strings.HasPrefix(rel, "..") {
		prefixes = append(prefixes, filepath.ToSlash(rel))
	}

	var files []string
	err := filepath.WalkDir(opts.Root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if p == opts.Root {
			return nil
		}

		rel, err := filepath.Rel(opts.Root, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if excluded(rel, prefixes, opts.ExcludeGlobs) {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		if excluded(rel, prefixes, opts.ExcludeGlobs) {
			return nil
		}

		files = append(files, rel)
		return nil
	})
	if err != nil {
		return nil, &WriteError{Output: opts.Output, Err: fmt.Errorf("scan %s: %w", opts.Root, err)}
	}

	return files, nil
}

// addFile streams one file into the tar writer, hashing as it copies.
func addFile(tw *tar.Writer, root, rel string) (Entry, error) {
	path := filepath.Join(root, filepath.FromSlash(rel))

	info, err := os.Stat(path)
	if err != nil {
		return Entry{}, err
	}

	hdr, err := tar.FileInfoHeader(info, "")
	if err != nil {
		return Entry{}, err
	}
	hdr.Name = rel

	if err := tw.WriteHeader(hdr); err != nil {
		return Entry{}, err
	}

	f, err := os.Open(path)
	if err != nil {
		return Entry{}, err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(io.MultiWriter(tw, h), f); err != nil {
		return Entry{}, err
	}

	return Entry{
		Path:   rel,
		Size:   info.Size(),
		Mode:   info.Mode(),
		SHA256: hex.EncodeToString(h.Sum(nil)),
	}, nil
}

// List reads an archive back, returning its entries in archive order.
func List(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	gz, err := gzip.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	defer gz.Close()

	tr := tar.NewReader(gz)
	var entries []Entry
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		if hdr.Typeflag != tar.TypeReg {
			continue
		}

		h := sha256.New()
		if _, err := io.Copy(h, tr); err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}

		entries = append(entries, Entry{
			Path:   hdr.Name,
			Size:   hdr.Size,
			Mode:   hdr.FileInfo().Mode(),
			SHA256: hex.EncodeToString(h.Sum(nil)),
		})
	}

	return entries, nil
}

// normalizePrefixes strips "./" and trailing slashes so prefixes compare
// cleanly against relative paths.
func normalizePrefixes(prefixes []string) []string {
	out := make([]string, 0, len(prefixes))
	for _, p := range prefixes {
		p = filepath.ToSlash(p)
		p = strings.TrimPrefix(p, "./")
		p = strings.Trim(p, "/")
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// excluded reports whether a relative path matches an exclusion prefix
// or glob.
func excluded(rel string, prefixes, globs []string) bool {
	for _, p := range prefixes {
		if rel == p || strings.HasPrefix(rel, p+"/") {
			return true
		}
	}
	for _, g := range globs {
		if ok, err := doublestar.Match(g, rel); err == nil && ok {
			return true
		}
	}
	return false
}

// HashFile returns the sha256: digest of a file, matching the hash format
// used in listings and summaries.
func HashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return "sha256:" + hex.EncodeToString(h.Sum(nil)), nil
}
