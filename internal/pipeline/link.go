package pipeline

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// LinkResult says what LinkFigures did.
type LinkResult int

const (
	LinkCreated LinkResult = iota
	LinkKept
)

// LinkFigures makes <groupDir>/sub-<subject>/figures a symlink to target.
// An existing symlink is left untouched whatever it points at; any other
// file in its place is an error.
func LinkFigures(groupDir, subject, target string) (LinkResult, error) {
	subjDir := filepath.Join(groupDir, "sub-"+subject)
	if err := os.Mkdir(subjDir, 0o755); err != nil && !errors.Is(err, os.ErrExist) {
		return 0, fmt.Errorf("create subject dir: %w", err)
	}

	link := filepath.Join(subjDir, figuresDir)
	if info, err := os.Lstat(link); err == nil && info.Mode()&os.ModeSymlink != 0 {
		return LinkKept, nil
	}

	if err := os.Symlink(target, link); err != nil {
		return 0, fmt.Errorf("link figures for sub-%s: %w", subject, err)
	}
	return LinkCreated, nil
}
