package template

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"sync"
)

// mergeFS implements fs.FS over an ordered stack of filesystems.
type mergeFS struct {
	// Remembers which filesystem of dirs held a name.
	cache map[string]fs.FS

	// Searched in order; the package-level tmpl/ is last.
	dirs []fs.FS

	// Skips the cache so files can come and go on disk.
	reload bool

	mu sync.RWMutex
}

// Open opens the file matching the name in the first filesystem containing it.
//
// Whenever a file is found, the filesystem it was found in is remembered
// and checked first next time.
// If that filesystem no longer has the file, the remaining ones are searched again.
func (mfs *mergeFS) Open(name string) (fs.File, error) {
	if !mfs.reload {
		mfs.mu.RLock()
		dir, ok := mfs.cache[name]
		mfs.mu.RUnlock()

		if ok {
			if file, err := dir.Open(name); err == nil {
				return file, nil
			}
		}
	}

	for _, dir := range mfs.dirs {
		if dir == nil {
			continue
		}

		file, err := dir.Open(name)
		if err == nil {
			mfs.mu.Lock()
			mfs.cache[name] = dir
			mfs.mu.Unlock()

			return file, nil
		}

		if !errors.Is(err, fs.ErrNotExist) && !errors.Is(err, fs.ErrInvalid) {
			return nil, fmt.Errorf("unable to open template %s: %w", name, err)
		}
	}

	return nil, &fs.PathError{Op: "open", Path: name, Err: fmt.Errorf("%w: %w", ErrNotExist, fs.ErrNotExist)}
}

//go:embed tmpl/*
var pkgFS embed.FS
