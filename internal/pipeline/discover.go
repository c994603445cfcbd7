package pipeline

import (
	"errors"
	"io/fs"
	"path/filepath"
	"slices"
	"strings"
)

const (
	reportPattern = "sub-*.html"
	figuresDir    = "figures"
)

// ErrNoReports is returned when the output directory holds no subject reports.
var ErrNoReports = errors.New("no subject reports found")

// Discover finds subject reports under root, skipping anything inside a
// figures directory. A symlinked root is followed; returned paths stay under
// root as given. Paths are sorted component by component so that a report's
// position is independent of separator characters.
func Discover(root string) ([]string, error) {
	resolved, err := filepath.EvalSymlinks(root)
	if err != nil {
		return nil, err
	}

	var paths []string
	err = filepath.WalkDir(resolved, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if d.Name() == figuresDir && path != resolved {
				return filepath.SkipDir
			}
			return nil
		}
		if ok, _ := filepath.Match(reportPattern, d.Name()); !ok {
			return nil
		}
		rel, err := filepath.Rel(resolved, path)
		if err != nil {
			return err
		}
		paths = append(paths, filepath.Join(root, rel))
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, ErrNoReports
	}

	slices.SortFunc(paths, func(a, b string) int {
		return slices.Compare(splitPath(a), splitPath(b))
	})
	return paths, nil
}

func splitPath(p string) []string {
	return strings.Split(filepath.ToSlash(filepath.Clean(p)), "/")
}
