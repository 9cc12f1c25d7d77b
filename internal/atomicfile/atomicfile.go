// Package atomicfile replaces files by writing a sibling temp file and
// renaming it over the destination, so readers never observe a torn write.
package atomicfile

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/gvdb/itemctl/pkg/constants"
	"github.com/gvdb/itemctl/pkg/errors"
)

// WriteFile writes data to path atomically.
//
// If perm is 0 the mode of the existing file is kept, falling back to
// constants.FilePermissions for new files. Errors are *errors.IOError and
// the destination is untouched whenever an error is returned.
func WriteFile(path string, data []byte, perm os.FileMode) error {
	if perm == 0 {
		if st, err := os.Stat(path); err == nil {
			perm = st.Mode().Perm()
		} else {
			perm = constants.FilePermissions
		}
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return errors.NewIOError("create", dir, err)
	}

	tmpPath := tmp.Name()
	committed := false
	defer func() {
		_ = tmp.Close()
		if !committed {
			_ = os.Remove(tmpPath)
		}
	}()

	// Some filesystems reject chmod; the rename still goes ahead.
	_ = tmp.Chmod(perm)

	if _, err := tmp.Write(data); err != nil {
		return errors.NewIOError("write", tmpPath, err)
	}
	if err := tmp.Sync(); err != nil {
		return errors.NewIOError("sync", tmpPath, err)
	}
	if err := tmp.Close(); err != nil {
		return errors.NewIOError("close", tmpPath, err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		if runtime.GOOS != "windows" {
			return errors.NewIOError("rename", path, err)
		}
		// Windows refuses to rename over an existing file.
		_ = os.Remove(path)
		if err2 := os.Rename(tmpPath, path); err2 != nil {
			return errors.NewIOError("rename", path, err)
		}
	}

	committed = true
	return nil
}
