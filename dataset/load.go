package dataset

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/cwbudde/algo-nmr/dsp/signal"
)

// Entry is a classified file of an acquisition directory.
type Entry struct {
	Name     string
	Path     string
	Role     signal.Role
	EchoTime int
}

// Scan classifies the regular files of dir by name, in lexical order.
// Unmatched names are skipped; the first unlabeled solid echo name aborts the
// scan with [ErrMissingLabel].
func Scan(dir string) ([]Entry, error) {
	items, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("dataset: scan: %w", err)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Name() < items[j].Name() })

	var out []Entry
	for _, it := range items {
		if it.IsDir() {
			continue
		}
		role, echoTime, ok, err := Classify(it.Name())
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		out = append(out, Entry{
			Name:     it.Name(),
			Path:     filepath.Join(dir, it.Name()),
			Role:     role,
			EchoTime: echoTime,
		})
	}
	return out, nil
}

// Load scans dir and reads every classified file.
func Load(dir string) ([]signal.Labeled, error) {
	entries, err := Scan(dir)
	if err != nil {
		return nil, err
	}
	out := make([]signal.Labeled, 0, len(entries))
	for _, e := range entries {
		s, err := ReadFile(e.Path)
		if err != nil {
			return nil, err
		}
		out = append(out, signal.Labeled{
			Role:     e.Role,
			EchoTime: e.EchoTime,
			Source:   e.Name,
			Signal:   s,
		})
	}
	return out, nil
}

// Save writes every labeled signal into dir under its canonical file name
// and returns the written paths.
func Save(dir string, set []signal.Labeled) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("dataset: %w", err)
	}
	paths := make([]string, 0, len(set))
	for _, l := range set {
		name, err := FileName(l.Role, l.EchoTime)
		if err != nil {
			return paths, err
		}
		path := filepath.Join(dir, name)
		if err := WriteFile(path, l.Signal); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}
