package group

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// figurePlacer links one subject's figures directory into the group tree.
// The variant is chosen once per run: symlinks by default, a full copy
// when any image edits are requested, so the pipeline's original figures
// are never modified.
type figurePlacer interface {
	// place links src into dest. relTarget is the link target relative
	// to dest's directory, src the resolved source directory.
	place(src, relTarget, dest string) error
	name() string
}

type symlinkFigures struct{}

func (symlinkFigures) name() string { return "symlink" }

func (symlinkFigures) place(src, relTarget, dest string) error {
	if err := os.Symlink(relTarget, dest); err != nil {
		return fmt.Errorf("symlink figures: %w", err)
	}
	return nil
}

type copyFigures struct{}

func (copyFigures) name() string { return "copy" }

func (copyFigures) place(src, relTarget, dest string) error {
	if err := copyTree(src, dest); err != nil {
		return fmt.Errorf("copy figures: %w", err)
	}
	return nil
}

// copyTree recursively copies a directory. Regular files only; the
// figures directories fMRIPrep writes contain nothing else.
func copyTree(src, dest string) error {
	return filepath.WalkDir(src, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dest, rel)
		if d.IsDir() {
			return os.MkdirAll(target, 0o755)
		}
		return copyFile(path, target)
	})
}

func copyFile(src, dest string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dest)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
