package convert

import (
	"io"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// WriteFile writes doc to path through a temporary file in the same
// directory, so path holds either the old contents or the whole document.
func WriteFile(path string, doc []byte) error {
	dir, name := filepath.Split(path)
	if dir == "" {
		dir = "."
	}
	tmp, err := ioutil.TempFile(dir, "."+name+".tmp_*")
	if err != nil {
		return errors.Wrap(err, "error creating temporary file")
	}
	if _, err := tmp.Write(doc); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return errors.Wrap(err, "error writing temporary file")
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return errors.Wrap(err, "error closing temporary file")
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		os.Remove(tmp.Name())
		return errors.Wrap(err, "error setting file mode")
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return errors.Wrap(err, "error moving output into place")
	}
	return nil
}

// WriteOutput writes doc to path, or to w when path is empty.
func WriteOutput(path string, w io.Writer, doc []byte) error {
	if path == "" {
		_, err := w.Write(doc)
		return errors.Wrap(err, "error writing output")
	}
	return WriteFile(path, doc)
}
