package io

import (
	"io"
	"os"
	"path/filepath"

	bxerrors "github.com/vpoulailleau/boxaro/pkg/errors"
)

// WriteOutput writes a rendered document to w.
func WriteOutput(w io.Writer, data []byte) error {
	if _, err := w.Write(data); err != nil {
		return bxerrors.Wrap(bxerrors.ErrCodeInvalidInput, err, "write output")
	}
	return nil
}

// ExportFile writes data to path, creating parent directories as needed.
// This is a convenience wrapper around [WriteOutput] for file-based output.
func ExportFile(path string, data []byte) error {
	if err := bxerrors.ValidatePath(path); err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return bxerrors.Wrap(bxerrors.ErrCodeInvalidInput, err, "create %s", dir)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return bxerrors.Wrap(bxerrors.ErrCodeInvalidInput, err, "create %s", path)
	}
	if err := WriteOutput(f, data); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return bxerrors.Wrap(bxerrors.ErrCodeInvalidInput, err, "close %s", path)
	}
	return nil
}
