// Package dataset inspects the bundled corpus directory.
//
// The corpus (孫子の兵法 as markdown, one chapter per file) is baked into the
// image at build time. This package only reports on it and guarantees the
// directory exists before the server starts; it never rewrites corpus files.
package dataset

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Entry describes a single corpus file.
type Entry struct {
	Name  string `json:"name"`
	Title string `json:"title,omitempty"`
	Size  int64  `json:"size"`
}

// Report summarises the state of the corpus directory.
type Report struct {
	Path       string  `json:"path"`
	Exists     bool    `json:"exists"`
	Entries    []Entry `json:"entries"`
	TotalBytes int64   `json:"total_bytes"`
}

// Empty reports whether the directory is missing or holds no files.
func (r Report) Empty() bool {
	return !r.Exists || len(r.Entries) == 0
}

// Inspect walks path and returns a Report. A missing directory is not an
// error: it yields Exists=false. Markdown files get their first-heading
// title extracted for the launch log.
func Inspect(path string) (Report, error) {
	rep := Report{Path: path}

	fis, err := os.ReadDir(path)
	if err != nil {
		if os.IsNotExist(err) {
			return rep, nil
		}
		return rep, fmt.Errorf("read %s: %w", path, err)
	}
	rep.Exists = true

	for _, fi := range fis {
		if fi.IsDir() {
			continue
		}
		info, err := fi.Info()
		if err != nil {
			return rep, fmt.Errorf("stat %s: %w", fi.Name(), err)
		}
		e := Entry{Name: fi.Name(), Size: info.Size()}
		if strings.HasSuffix(fi.Name(), ".md") {
			e.Title = readTitle(filepath.Join(path, fi.Name()))
		}
		rep.Entries = append(rep.Entries, e)
		rep.TotalBytes += info.Size()
	}
	sort.Slice(rep.Entries, func(i, j int) bool { return rep.Entries[i].Name < rep.Entries[j].Name })
	return rep, nil
}

// Ensure creates path (and parents) if missing. Returns whether it created
// anything; calling it on an existing directory is a no-op.
func Ensure(path string) (created bool, err error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, fmt.Errorf("stat %s: %w", path, err)
	}
	if err := os.MkdirAll(path, 0o755); err != nil {
		return false, fmt.Errorf("mkdir %s: %w", path, err)
	}
	return true, nil
}

// readTitle returns the first "# " heading of a markdown file, or
// "Unknown Title" when none is found or the file is unreadable.
func readTitle(path string) string {
	f, err := os.Open(path)
	if err != nil {
		return "Unknown Title"
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if line, ok := strings.CutPrefix(scanner.Text(), "# "); ok {
			return strings.TrimSpace(line)
		}
	}
	return "Unknown Title"
}
