package source

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
	"io/fs"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/spf13/afero"
)

// copyFile copies a regular file from src to dst, returning the SHA256 hash
// of the copied bytes, the source mode, and the byte count. The destination
// is created with 0644 permissions initially, then updated to match the
// source file's permission bits.
func copyFile(fsys afero.Fs, src, dst string) (hash string, mode fs.FileMode, size int64, err error) {
	srcFile, err := fsys.Open(src)
	if err != nil {
		return "", 0, 0, errors.Wrap(err, "opening source file")
	}
	defer srcFile.Close()

	srcInfo, err := srcFile.Stat()
	if err != nil {
		return "", 0, 0, errors.Wrap(err, "stat source file")
	}
	mode = srcInfo.Mode()

	dstFile, err := fsys.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return "", 0, 0, errors.Wrap(err, "creating destination file")
	}

	// Compute hash while copying
	h := sha256.New()
	w := io.MultiWriter(dstFile, h)

	size, err = io.Copy(w, srcFile)
	if err != nil {
		dstFile.Close()
		return "", 0, 0, errors.Wrap(err, "copying file")
	}

	if err := dstFile.Close(); err != nil {
		return "", 0, 0, errors.Wrap(err, "closing destination file")
	}

	// Set permissions to match source
	if err := fsys.Chmod(dst, mode); err != nil {
		return "", 0, 0, errors.Wrap(err, "setting permissions")
	}

	return hex.EncodeToString(h.Sum(nil)), mode, size, nil
}
