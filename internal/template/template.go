// Package template distributes template assets into a consumer project,
// substituting bracketed placeholder tokens. Tokens follow one fixed
// syntax: an all-caps name in square brackets, e.g. [PROJECT_NAME].
// A token without a defined substitution fails the whole operation;
// literal tokens are never silently emitted.
package template

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// tokenRe matches placeholder tokens. Names start with a capital letter
// and continue with capitals, digits, or underscores, so prose like
// markdown link text is not mistaken for a token.
var tokenRe = regexp.MustCompile(`\[([A-Z][A-Z0-9_]+)\]`)

// Placeholder is one token occurrence found in template content.
type Placeholder struct {
	Token   string // name without brackets
	File    string // relative path within the template set
	Line    int    // 1-based line of first occurrence
	Context string // the trimmed line it was found on
}

// Scan finds the placeholder tokens in content, one entry per distinct
// token with the line and context of its first occurrence.
func Scan(content []byte, file string) []Placeholder {
	var found []Placeholder
	seen := make(map[string]bool)

	for i, line := range strings.Split(string(content), "\n") {
		for _, m := range tokenRe.FindAllStringSubmatch(line, -1) {
			token := m[1]
			if seen[token] {
				continue
			}
			seen[token] = true
			found = append(found, Placeholder{
				Token:   token,
				File:    file,
				Line:    i + 1,
				Context: strings.TrimSpace(line),
			})
		}
	}

	return found
}

// AssetInfo describes one distributable file and the distinct tokens it
// carries.
type AssetInfo struct {
	Path   string
	Tokens []Placeholder
}

// Assets lists the files Distribute would copy from source, with the
// tokens found in each. A missing source root yields an empty list.
func Assets(source string) ([]AssetInfo, error) {
	assets, err := collect(source)
	if err != nil {
		return nil, err
	}

	infos := make([]AssetInfo, 0, len(assets))
	for _, a := range assets {
		content, err := os.ReadFile(filepath.Join(source, filepath.FromSlash(a.rel)))
		if err != nil {
			return nil, fmt.Errorf("read template %s: %w", a.rel, err)
		}
		infos = append(infos, AssetInfo{Path: a.rel, Tokens: Scan(content, a.rel)})
	}

	return infos, nil
}

// Render substitutes every recognized token in content. If any token has
// no entry in subs, Render fails with UnresolvedError and returns no
// output. Content without tokens is returned unchanged.
func Render(content []byte, subs map[string]string, file string) ([]byte, error) {
	for _, p := range Scan(content, file) {
		if _, ok := subs[p.Token]; !ok {
			return nil, &UnresolvedError{Token: p.Token, File: file, Line: p.Line}
		}
	}

	rendered := tokenRe.ReplaceAllFunc(content, func(m []byte) []byte {
		name := string(m[1 : len(m)-1])
		return []byte(subs[name])
	})
	return rendered, nil
}
