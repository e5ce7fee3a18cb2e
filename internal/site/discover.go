// Package site runs a page processor over a built site directory.
package site

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"
)

// ErrNoPages is returned when discovery finds nothing to process.
var ErrNoPages = errors.New("no pages found")

// Discover returns every file under root on the OS filesystem whose name
// ends in ext.
func Discover(root, ext string) ([]string, error) {
	return DiscoverFs(afero.NewOsFs(), root, ext)
}

// DiscoverFs is Discover over an arbitrary filesystem. Paths are returned
// sorted so runs and reports are stable. Hidden directories are skipped.
func DiscoverFs(fsys afero.Fs, root, ext string) ([]string, error) {
	info, err := fsys.Stat(root)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s: not a directory", root)
	}

	var pages []string
	err = afero.Walk(fsys, root, func(path string, info fs.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			if path != root && strings.HasPrefix(info.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if info.Mode().IsRegular() && strings.HasSuffix(path, ext) {
			pages = append(pages, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", root, err)
	}
	if len(pages) == 0 {
		return nil, fmt.Errorf("%w under %s matching *%s", ErrNoPages, root, ext)
	}

	sort.Strings(pages)
	return pages, nil
}
