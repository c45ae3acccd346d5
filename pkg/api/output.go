package api

import (
	"io"
	"os"
	"path/filepath"

	"github.com/gompdf/gominvoice/pkg/invoice"
)

// CountWriter counts the bytes written through it.
type CountWriter struct {
	w io.Writer
	n int64
}

func NewCountWriter(w io.Writer) *CountWriter {
	return &CountWriter{w: w}
}

// Write implements io.Writer
func (cw *CountWriter) Write(p []byte) (int, error) {
	n, err := cw.w.Write(p)
	cw.n += int64(n)
	return n, err
}

// BytesWritten returns the total number of bytes written
func (cw *CountWriter) BytesWritten() int64 {
	return cw.n
}

// publish writes data to path through a temporary file in the same directory and a
// rename, so readers never observe a partial document. The directory is created when
// missing.
func publish(path string, data []byte) (n int64, err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return 0, &invoice.IOError{Op: "create directory", Path: dir, Err: err}
	}

	tmp, err := os.CreateTemp(dir, ".invoice-*.tmp")
	if err != nil {
		return 0, &invoice.IOError{Op: "create temporary file in", Path: dir, Err: err}
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	cw := NewCountWriter(tmp)
	if _, err = cw.Write(data); err != nil {
		return 0, &invoice.IOError{Op: "write", Path: tmp.Name(), Err: err}
	}
	if err = tmp.Sync(); err != nil {
		return 0, &invoice.IOError{Op: "sync", Path: tmp.Name(), Err: err}
	}
	if err = tmp.Chmod(0o644); err != nil {
		return 0, &invoice.IOError{Op: "chmod", Path: tmp.Name(), Err: err}
	}
	if err = tmp.Close(); err != nil {
		return 0, &invoice.IOError{Op: "close", Path: tmp.Name(), Err: err}
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return 0, &invoice.IOError{Op: "rename", Path: path, Err: err}
	}
	return cw.BytesWritten(), nil
}
