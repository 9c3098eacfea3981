package backup

import (
	"io"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
)

// CopyItem copies a single file or a whole directory tree from src to dst.
// The same primitive serves both directions: capturing a live path into a
// backup set, and restoring a backup payload over a live path.
//
// After copying a file, the destination size is compared to the source and
// a mismatch wraps ErrSizeMismatch. Directory copies are verified by
// existence only. A missing source wraps ErrNotFound.
func CopyItem(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.Wrapf(ErrNotFound, "%s", src)
		}
		return errors.Wrapf(err, "stat %s", src)
	}

	if info.IsDir() {
		if err := os.MkdirAll(dst, 0o755); err != nil {
			return errors.Wrapf(err, "creating directory %s", dst)
		}
		if err := copyDir(src, dst); err != nil {
			return err
		}
		if _, err := os.Stat(dst); err != nil {
			return errors.Wrapf(err, "verifying directory %s", dst)
		}
		return nil
	}

	if err := copyFile(src, dst); err != nil {
		return err
	}

	dstInfo, err := os.Stat(dst)
	if err != nil {
		return errors.Wrapf(err, "verifying %s", dst)
	}
	if dstInfo.Size() != info.Size() {
		return errors.Wrapf(ErrSizeMismatch, "%s: copied %d bytes, source %d bytes",
			dst, dstInfo.Size(), info.Size())
	}

	return nil
}

// copyFile copies a single file from src to dst, preserving the source's
// permission bits. An existing destination is truncated.
func copyFile(src, dst string) error {
	srcFile, err := os.Open(src)
	if err != nil {
		return errors.Wrap(err, "opening source file")
	}
	defer srcFile.Close()

	srcInfo, err := srcFile.Stat()
	if err != nil {
		return errors.Wrap(err, "stat source file")
	}

	dstFile, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return errors.Wrap(err, "creating destination file")
	}

	if _, err := io.Copy(dstFile, srcFile); err != nil {
		dstFile.Close()
		return errors.Wrap(err, "copying file")
	}

	if err := dstFile.Close(); err != nil {
		return errors.Wrap(err, "closing destination file")
	}

	if err := os.Chmod(dst, srcInfo.Mode()); err != nil {
		return errors.Wrap(err, "setting permissions")
	}

	return nil
}

// copyDir recursively copies a directory from src to dst.
// dst is expected to already exist.
func copyDir(src, dst string) error {
	entries, err := os.ReadDir(src)
	if err != nil {
		return errors.Wrapf(err, "reading directory %s", src)
	}

	for _, entry := range entries {
		srcPath := filepath.Join(src, entry.Name())
		dstPath := filepath.Join(dst, entry.Name())

		if entry.IsDir() {
			if err := os.MkdirAll(dstPath, 0o755); err != nil {
				return errors.Wrapf(err, "creating directory %s", dstPath)
			}
			if err := copyDir(srcPath, dstPath); err != nil {
				return err
			}
		} else {
			if err := copyFile(srcPath, dstPath); err != nil {
				return err
			}
		}
	}

	return nil
}
