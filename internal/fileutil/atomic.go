// Package fileutil writes report files without exposing partial output.
package fileutil

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// WriteAtomic streams a file through fn into a temporary sibling and renames
// it over filename once fn succeeds. Readers see either the previous file or
// the complete new one.
func WriteAtomic(filename string, perm os.FileMode, fn func(w io.Writer) error) (err error) {
	// The temp file must live on the same filesystem for rename to be atomic
	tmp, err := os.CreateTemp(filepath.Dir(filename), filepath.Base(filename)+".tmp.*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmpPath)
		}
	}()

	bw := bufio.NewWriter(tmp)
	if err = fn(bw); err != nil {
		return err
	}
	if err = bw.Flush(); err != nil {
		return fmt.Errorf("flush %s: %w", filename, err)
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("sync %s: %w", filename, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", filename, err)
	}
	if err = os.Chmod(tmpPath, perm); err != nil {
		return fmt.Errorf("chmod %s: %w", filename, err)
	}
	if err = os.Rename(tmpPath, filename); err != nil {
		return fmt.Errorf("rename %s: %w", filename, err)
	}
	return nil
}

// WriteFileAtomic is WriteAtomic for an in-memory payload
func WriteFileAtomic(filename string, data []byte, perm os.FileMode) error {
	return WriteAtomic(filename, perm, func(w io.Writer) error {
		_, err := w.Write(data)
		return err
	})
}
