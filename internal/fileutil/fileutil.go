// Package fileutil holds the byte-level copy and compare primitives used by
// the transfer engine.
package fileutil

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
)

const compareChunk = 64 * 1024

// CopyFile writes the bytes of src to dst, creating or truncating it, and
// fsyncs before returning. Permission bits and modification time follow src.
func CopyFile(src, dst string) (err error) {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open source: %w", err)
	}
	defer in.Close()
	info, err := in.Stat()
	if err != nil {
		return fmt.Errorf("stat source: %w", err)
	}

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return fmt.Errorf("create destination: %w", err)
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close destination: %w", cerr)
		}
	}()

	if _, err := io.Copy(out, in); err != nil {
		return fmt.Errorf("copy data: %w", err)
	}
	if err := out.Sync(); err != nil {
		return fmt.Errorf("sync destination: %w", err)
	}
	if err := os.Chtimes(dst, info.ModTime(), info.ModTime()); err != nil {
		return fmt.Errorf("preserve modification time: %w", err)
	}
	return nil
}

// FilesEqual reports whether a and b hold exactly the same bytes. Sizes are
// compared first so differing lengths never read content.
func FilesEqual(a, b string) (bool, error) {
	af, asize, err := openSized(a)
	if err != nil {
		return false, err
	}
	defer af.Close()
	bf, bsize, err := openSized(b)
	if err != nil {
		return false, err
	}
	defer bf.Close()

	if asize != bsize {
		return false, nil
	}
	return sameContent(af, bf)
}

func openSized(path string) (*os.File, int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("open %s: %w", path, err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, 0, fmt.Errorf("stat %s: %w", path, err)
	}
	return f, info.Size(), nil
}

// sameContent compares two streams chunk by chunk until both end.
func sameContent(a, b io.Reader) (bool, error) {
	abuf := make([]byte, compareChunk)
	bbuf := make([]byte, compareChunk)
	for {
		an, aerr := io.ReadFull(a, abuf)
		bn, berr := io.ReadFull(b, bbuf)
		aEnd, bEnd := isEnd(aerr), isEnd(berr)
		if aerr != nil && !aEnd {
			return false, aerr
		}
		if berr != nil && !bEnd {
			return false, berr
		}
		if !bytes.Equal(abuf[:an], bbuf[:bn]) {
			return false, nil
		}
		if aEnd || bEnd {
			return aEnd == bEnd, nil
		}
	}
}

func isEnd(err error) bool {
	return errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF)
}
