package archive

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

// ListingVersion identifies the listing document format.
const ListingVersion = "1"

// Listing is a JSON contents manifest for a built archive: one record per
// archived file plus the digest of the artifact itself. CI publishes it
// next to the archive so consumers can verify what they downloaded.
type Listing struct {
	Version       string    `json:"version"`
	GeneratedAt   time.Time `json:"generatedAt"`
	Archive       string    `json:"archive"`
	ArchiveSHA256 string    `json:"archiveSha256"`
	TotalFiles    int       `json:"totalFiles"`
	Files         []Entry   `json:"files"`
}

// NewListing assembles a listing for a written archive.
func NewListing(output string, entries []Entry, archiveSum string) *Listing {
	return &Listing{
		Version:       ListingVersion,
		GeneratedAt:   time.Now().UTC(),
		Archive:       filepath.Base(output),
		ArchiveSHA256: archiveSum,
		TotalFiles:    len(entries),
		Files:         entries,
	}
}

// WriteFile serializes the listing as indented JSON.
func (l *Listing) WriteFile(path string) error {
	data, err := json.MarshalIndent(l, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0644)
}
