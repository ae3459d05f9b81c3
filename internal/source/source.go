// Package source enumerates the files under a local folder or an S3 prefix
// and lays them out as a folder tree.
package source

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"sort"
	"strings"
)

var (
	ErrNotDirectory = errors.New("not a directory")
	ErrNotFound     = errors.New("folder does not exist")
)

// Entry is a file or directory relative to the source root, slash separated.
type Entry struct {
	Path  string
	IsDir bool
}

type Source interface {
	// Root is the location the source was opened with.
	Root() string
	Entries(ctx context.Context) ([]Entry, error)
	ReadFile(ctx context.Context, path string) ([]byte, error)
}

// Options control enumeration for every source kind.
type Options struct {
	// Exclude holds glob patterns matched against each path element.
	Exclude []string
	// Warn receives non-fatal enumeration problems.
	Warn func(path string, err error)
}

// Open returns an S3 source for s3:// locations and a local one otherwise.
func Open(ctx context.Context, location string, s3api S3API, opts Options) (Source, error) {
	if IsS3(location) {
		if s3api == nil {
			return nil, fmt.Errorf("%s: no S3 client configured", location)
		}
		return NewS3(s3api, location, opts)
	}
	return NewLocal(location, opts)
}

// Files returns the regular files among entries, in order.
func Files(entries []Entry) []string {
	var files []string
	for _, e := range entries {
		if !e.IsDir {
			files = append(files, e.Path)
		}
	}
	return files
}

// OutlineItem is one row of a folder tree.
type OutlineItem struct {
	Depth int
	Name  string
	IsDir bool
}

// Outline orders entries depth first, directories and files interleaved by
// name at each level, and returns them with their depth.
func Outline(entries []Entry) []OutlineItem {
	sorted := append([]Entry(nil), entries...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return comparePaths(sorted[i].Path, sorted[j].Path) < 0
	})

	items := make([]OutlineItem, 0, len(sorted))
	for _, e := range sorted {
		items = append(items, OutlineItem{
			Depth: strings.Count(e.Path, "/"),
			Name:  path.Base(e.Path),
			IsDir: e.IsDir,
		})
	}
	return items
}

func comparePaths(a, b string) int {
	pa, pb := strings.Split(a, "/"), strings.Split(b, "/")
	for i := 0; i < len(pa) && i < len(pb); i++ {
		if c := strings.Compare(pa[i], pb[i]); c != 0 {
			return c
		}
	}
	return len(pa) - len(pb)
}

func excluded(name string, patterns []string) bool {
	for _, p := range patterns {
		if ok, _ := path.Match(p, name); ok {
			return true
		}
	}
	return false
}

func excludedPath(p string, patterns []string) bool {
	for _, elem := range strings.Split(p, "/") {
		if excluded(elem, patterns) {
			return true
		}
	}
	return false
}

func statDir(location string) error {
	info, err := os.Stat(location)
	if errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%s: %w", location, ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to access folder: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s: %w", location, ErrNotDirectory)
	}
	return nil
}
