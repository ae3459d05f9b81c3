package source

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
)

// Local is a folder on disk.
type Local struct {
	root string
	opts Options
}

// NewLocal validates that root is an existing directory.
func NewLocal(root string, opts Options) (*Local, error) {
	if err := statDir(root); err != nil {
		return nil, err
	}
	return &Local{root: root, opts: opts}, nil
}

func (l *Local) Root() string { return l.root }

// Entries walks the folder with an explicit stack so deeply nested trees do
// not grow the call stack. Symlinks and other non-regular files are skipped,
// as are excluded names. A directory that cannot be listed is reported
// through Options.Warn and skipped, except for the root itself.
func (l *Local) Entries(ctx context.Context) ([]Entry, error) {
	var entries []Entry
	stack := []string{""}

	for len(stack) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		rel := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		dirents, err := os.ReadDir(filepath.Join(l.root, filepath.FromSlash(rel)))
		if err != nil {
			if rel == "" {
				return nil, fmt.Errorf("failed to read folder %s: %w", l.root, err)
			}
			if l.opts.Warn != nil {
				l.opts.Warn(rel, err)
			}
			continue
		}
		sort.Slice(dirents, func(i, j int) bool { return dirents[i].Name() < dirents[j].Name() })

		var subdirs []string
		for _, d := range dirents {
			if excluded(d.Name(), l.opts.Exclude) {
				continue
			}
			p := path.Join(rel, d.Name())
			switch {
			case d.IsDir():
				entries = append(entries, Entry{Path: p, IsDir: true})
				subdirs = append(subdirs, p)
			case d.Type().IsRegular():
				entries = append(entries, Entry{Path: p})
			}
		}
		for i := len(subdirs) - 1; i >= 0; i-- {
			stack = append(stack, subdirs[i])
		}
	}

	return entries, nil
}

func (l *Local) ReadFile(_ context.Context, p string) ([]byte, error) {
	return os.ReadFile(l.FullPath(p))
}

// FullPath joins a relative entry path onto the root.
func (l *Local) FullPath(p string) string {
	return filepath.Join(l.root, filepath.FromSlash(p))
}
