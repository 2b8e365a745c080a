// Package archive gives access to files stored inside of zip containers
// (EPUB books) on top of "archive/zip".
package archive

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"path"
	"sort"
	"strings"

	"github.com/gobwas/glob"
	"github.com/maruel/natural"
)

// ErrNotFound is returned when requested entry does not exist.
var ErrNotFound = errors.New("no such entry in archive")

// WalkFunc is called for each file in archive visited by Walk. The archive
// argument is the path passed to Walk. If an error is returned, processing
// stops.
type WalkFunc func(archive string, file *zip.File) error

// Walk visits all files in the archive with names matching glob pattern
// ("**" crosses directory boundaries, empty pattern matches everything).
// Archives with entries escaping extraction directory (absolute paths or
// ".." components) are rejected.
func Walk(archive, pattern string, walkFn WalkFunc) error {
	var g glob.Glob
	if len(pattern) > 0 {
		var err error
		if g, err = glob.Compile(pattern, '/'); err != nil {
			return fmt.Errorf("bad archive pattern %q: %w", pattern, err)
		}
	}

	r, err := zip.OpenReader(archive)
	if err != nil {
		return err
	}
	defer r.Close()

	for _, f := range r.File {
		name := f.FileHeader.Name
		if !isSafePath(name) {
			return fmt.Errorf("zip entry %q: unsafe path (absolute or contains path traversal)", name)
		}
		if f.FileInfo().IsDir() || (g != nil && !g.Match(name)) {
			continue
		}
		if err := walkFn(archive, f); err != nil {
			return err
		}
	}
	return nil
}

// List returns names of matching files in natural order.
func List(archive, pattern string) ([]string, error) {
	var names []string
	err := Walk(archive, pattern, func(_ string, f *zip.File) error {
		names = append(names, f.Name)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Sort(natural.StringSlice(names))
	return names, nil
}

// ReadFile returns content of the named entry, no more than limit bytes are
// read (limit <= 0 means no limit).
func ReadFile(archive, name string, limit int64) ([]byte, error) {
	name = strings.TrimPrefix(path.Clean("/"+name), "/")

	var (
		data  []byte
		found bool
	)
	err := Walk(archive, "", func(_ string, f *zip.File) error {
		if found || f.Name != name {
			return nil
		}
		found = true
		rc, err := f.Open()
		if err != nil {
			return fmt.Errorf("unable to open %s: %w", name, err)
		}
		defer rc.Close()

		var r io.Reader = rc
		if limit > 0 {
			r = io.LimitReader(rc, limit)
		}
		if data, err = io.ReadAll(r); err != nil {
			return fmt.Errorf("unable to read %s: %w", name, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return data, nil
}

// isSafePath returns false for paths that could escape the extraction
// directory: absolute paths and those containing ".." components.
func isSafePath(name string) bool {
	if path.IsAbs(name) || strings.HasPrefix(name, "/") || strings.HasPrefix(name, `\`) {
		return false
	}
	for _, part := range strings.Split(name, "/") {
		if part == ".." {
			return false
		}
	}
	return true
}
