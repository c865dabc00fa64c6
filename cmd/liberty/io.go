package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/klauspost/compress/gzip"
)

// readLibertyFile reads a liberty file, transparently decompressing input
// whose path ends in .gz.
func readLibertyFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		zr, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("reading gzip header of %s: %w", path, err)
		}
		defer zr.Close()
		r = zr
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return data, nil
}

// writeLibertyFile writes text to path, gzip-compressing when the path ends
// in .gz.
func writeLibertyFile(path, text string) error {
	return writeMaybeGzip(path, text, strings.HasSuffix(path, ".gz"))
}

func writeMaybeGzip(path, text string, compress bool) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}

	if compress {
		zw := gzip.NewWriter(f)
		if _, err := io.WriteString(zw, text); err != nil {
			f.Close()
			return fmt.Errorf("writing %s: %w", path, err)
		}
		if err := zw.Close(); err != nil {
			f.Close()
			return fmt.Errorf("compressing %s: %w", path, err)
		}
	} else {
		if _, err := io.WriteString(f, text); err != nil {
			f.Close()
			return fmt.Errorf("writing %s: %w", path, err)
		}
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}
	return nil
}

// replaceFile atomically replaces path by writing a uniquely named temporary
// file next to it and renaming over the original. Compression follows the
// final path, not the temporary name.
func replaceFile(path, text string) error {
	tmp := filepath.Join(filepath.Dir(path), fmt.Sprintf(".%s.%s.tmp", filepath.Base(path), uuid.NewString()))
	if err := writeMaybeGzip(tmp, text, strings.HasSuffix(path, ".gz")); err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replacing %s: %w", path, err)
	}
	return nil
}
