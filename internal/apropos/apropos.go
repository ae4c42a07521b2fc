// Package apropos maintains a keyword index over the command registry so
// `folio apropos` can answer "which command do I want for X" without
// re-reading every prompt body. The index is a YAML cache next to the
// commands, rebuilt when any command file's mtime changes.
package apropos

import (
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/kennyg/folio/internal/command"
)

// IndexFileName is the cache file written inside the commands directory.
const IndexFileName = ".apropos"

// Index is the cached search index.
type Index struct {
	Generated time.Time `yaml:"generated"`
	Commands  []Entry   `yaml:"commands"`
}

// Entry is one indexed command.
type Entry struct {
	Name        string   `yaml:"name"`
	File        string   `yaml:"file"`
	Description string   `yaml:"description"`
	Keywords    []string `yaml:"keywords"`
	ModTime     int64    `yaml:"mod_time"`
}

// common stopwords filtered out of extracted keywords
var stopwords = map[string]bool{
	"a": true, "an": true, "the": true, "and": true, "or": true, "but": true,
	"in": true, "on": true, "at": true, "to": true, "for": true, "of": true,
	"with": true, "by": true, "from": true, "as": true, "is": true, "was": true,
	"are": true, "were": true, "been": true, "be": true, "have": true, "has": true,
	"had": true, "do": true, "does": true, "did": true, "will": true, "would": true,
	"could": true, "should": true, "may": true, "might": true, "must": true,
	"this": true, "that": true, "these": true, "those": true, "it": true,
	"its": true, "when": true, "then": true, "not": true, "your": true,
	"you": true, "use": true, "using": true, "used": true, "can": true,
	"any": true, "all": true, "one": true, "each": true, "file": true,
	"user": true, "project": true,
}

// LoadIndex reads the cached index from a commands directory. A missing
// cache is (nil, nil), not an error.
func LoadIndex(commandsDir string) (*Index, error) {
	data, err := os.ReadFile(filepath.Join(commandsDir, IndexFileName))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var index Index
	if err := yaml.Unmarshal(data, &index); err != nil {
		return nil, err
	}
	return &index, nil
}

// SaveIndex writes the index cache into a commands directory.
func SaveIndex(commandsDir string, index *Index) error {
	data, err := yaml.Marshal(index)
	if err != nil {
		return err
	}

	header := "# Apropos index - auto-generated, do not edit\n"
	return os.WriteFile(filepath.Join(commandsDir, IndexFileName), append([]byte(header), data...), 0644)
}

// IsStale reports whether any command file is newer than its indexed
// entry, or was added or removed since the index was built.
func IsStale(commandsDir string, index *Index) (bool, error) {
	if index == nil {
		return true, nil
	}

	indexed := make(map[string]int64, len(index.Commands))
	for _, e := range index.Commands {
		indexed[e.File] = e.ModTime
	}

	stale := false
	err := filepath.WalkDir(commandsDir, func(p string, d fs.DirEntry, err error) error {
		if err != nil || stale {
			return err
		}
		if d.IsDir() {
			if p != commandsDir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if !command.IsCommandFile(d.Name()) {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return nil
		}
		if t, ok := indexed[p]; !ok || t != info.ModTime().Unix() {
			stale = true
			return nil
		}
		delete(indexed, p)
		return nil
	})
	if err != nil {
		return true, err
	}

	// Entries for files that no longer exist also stale the index.
	return stale || len(indexed) > 0, nil
}

// BuildIndex loads the registry and builds a fresh index.
func BuildIndex(commandsDir string) (*Index, error) {
	set, err := command.LoadDir(commandsDir)
	if err != nil {
		return nil, err
	}

	index := &Index{
		Generated: time.Now(),
		Commands:  []Entry{},
	}

	for _, def := range set.All() {
		modTime := int64(0)
		if info, err := os.Stat(def.File); err == nil {
			modTime = info.ModTime().Unix()
		}

		index.Commands = append(index.Commands, Entry{
			Name:        def.Name,
			File:        def.File,
			Description: def.Description,
			Keywords:    extractKeywords(def.Description + " " + def.Prompt),
			ModTime:     modTime,
		})
	}

	return index, nil
}

// extractKeywords normalizes text and returns its distinct non-stopword
// terms of three or more characters, in first-seen order.
func extractKeywords(text string) []string {
	re := regexp.MustCompile(`[^a-zA-Z0-9\s]`)
	normalized := re.ReplaceAllString(strings.ToLower(text), " ")

	seen := make(map[string]bool)
	var keywords []string
	for _, word := range strings.Fields(normalized) {
		if len(word) < 3 || stopwords[word] || seen[word] {
			continue
		}
		seen[word] = true
		keywords = append(keywords, word)
	}

	return keywords
}

// SearchResult is one scored match.
type SearchResult struct {
	Entry Entry
	Score int // higher is better
}

// Search scores every indexed command against the query words and returns
// matches sorted by descending score.
func Search(index *Index, query string) []SearchResult {
	if index == nil || len(index.Commands) == 0 {
		return nil
	}

	queryWords := strings.Fields(strings.ToLower(query))
	var results []SearchResult

	for _, entry := range index.Commands {
		if score := scoreMatch(entry, queryWords); score > 0 {
			results = append(results, SearchResult{Entry: entry, Score: score})
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	return results
}

func scoreMatch(entry Entry, queryWords []string) int {
	score := 0
	nameLower := strings.ToLower(entry.Name)
	descLower := strings.ToLower(entry.Description)

	for _, qw := range queryWords {
		// Exact name match is highest value
		if nameLower == qw {
			score += 100
		} else if strings.Contains(nameLower, qw) {
			score += 50
		}

		if strings.Contains(descLower, qw) {
			score += 10
		}

		for _, kw := range entry.Keywords {
			if kw == qw {
				score += 20
			} else if strings.Contains(kw, qw) {
				score += 5
			}
		}
	}

	return score
}
