package ingest

import (
	"bufio"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/jobsift/jobsift/app/normalize"
)

// Provider is the input boundary to the scraping collaborators: they own
// page loads and retries, this side only consumes the fragments they
// deliver.
type Provider interface {
	// Pending lists batches ready for ingestion, oldest first.
	Pending() ([]string, error)
	// Read parses one batch into raw fragments.
	Read(path string) ([]normalize.RawFragment, error)
	// Done disposes of a fully processed batch.
	Done(path string) error
}

// InboxProvider watches a drop directory. Scrapers write one fragment per
// line into *.ndjson files; a processed file is deleted.
type InboxProvider struct {
	dir string
}

var _ Provider = (*InboxProvider)(nil)

func NewInboxProvider(dir string) *InboxProvider {
	return &InboxProvider{dir: dir}
}

func (p *InboxProvider) Pending() ([]string, error) {
	if _, err := os.Stat(p.dir); os.IsNotExist(err) {
		return nil, nil
	}

	files, err := filepath.Glob(filepath.Join(p.dir, "*.ndjson"))
	if err != nil {
		return nil, fmt.Errorf("failed to list inbox: %w", err)
	}

	sort.Strings(files)
	return files, nil
}

// Read parses one NDJSON batch. A malformed line is logged and skipped so
// one bad fragment never sinks the rest of the batch.
func (p *InboxProvider) Read(path string) ([]normalize.RawFragment, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open batch: %w", err)
	}
	defer f.Close()

	var fragments []normalize.RawFragment

	scanner := bufio.NewScanner(f)
	// job descriptions routinely exceed the default 64KB line limit
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var frag normalize.RawFragment
		if err := json.Unmarshal(line, &frag); err != nil {
			slog.Warn("Skipping malformed fragment",
				"file", filepath.Base(path), "line", lineNo, "error", err)
			continue
		}
		fragments = append(fragments, frag)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read batch: %w", err)
	}

	return fragments, nil
}

func (p *InboxProvider) Done(path string) error {
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("failed to remove batch: %w", err)
	}
	return nil
}
