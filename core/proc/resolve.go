package proc

import (
	"io/fs"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// ErrNotFound is the error resulting if a path search failed to find an executable file.
var ErrNotFound = exec.ErrNotFound

func findExecutable(fsys afero.Fs, file string) error {
	d, err := fsys.Stat(file)
	if err != nil {
		return err
	}
	if m := d.Mode(); !m.IsDir() && m&0111 != 0 {
		return nil
	}
	return fs.ErrPermission
}

// LookPath searches for an executable named file in the directories named by
// path, a colon delimited list. If file contains a slash, it is tried directly
// and path is not consulted. The result may be an absolute path or a path
// relative to the current directory; first match wins.
func LookPath(fsys afero.Fs, path string, file string) (string, error) {
	if strings.Contains(file, "/") {
		err := findExecutable(fsys, file)
		if err == nil {
			return file, nil
		}
		return "", err
	}
	for _, dir := range filepath.SplitList(path) {
		if dir == "" {
			// Unix shell semantics: path element "" means "."
			dir = "."
		}
		candidate := filepath.Join(dir, file)
		if err := findExecutable(fsys, candidate); err == nil {
			return candidate, nil
		}
	}
	return "", ErrNotFound
}
