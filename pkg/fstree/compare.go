package fstree

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
)

const compareBufferSize = 32 * 1024

// SameContent reports whether the files at a and b hold exactly the same
// bytes. A file that exists on only one side is always different, and two
// missing files are never equal; two existing empty files are equal.
func SameContent(a, b string) (bool, error) {
	fa, err := os.Open(a)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("compare %s: %w", a, err)
	}
	defer fa.Close()

	fb, err := os.Open(b)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("compare %s: %w", b, err)
	}
	defer fb.Close()

	ia, err := fa.Stat()
	if err != nil {
		return false, fmt.Errorf("compare %s: %w", a, err)
	}
	ib, err := fb.Stat()
	if err != nil {
		return false, fmt.Errorf("compare %s: %w", b, err)
	}
	if !ia.Mode().IsRegular() || !ib.Mode().IsRegular() {
		return false, nil
	}
	if ia.Size() != ib.Size() {
		return false, nil
	}

	ra := bufio.NewReaderSize(fa, compareBufferSize)
	rb := bufio.NewReaderSize(fb, compareBufferSize)
	bufA := make([]byte, compareBufferSize)
	bufB := make([]byte, compareBufferSize)
	for {
		na, errA := io.ReadFull(ra, bufA)
		nb, errB := io.ReadFull(rb, bufB)
		if !bytes.Equal(bufA[:na], bufB[:nb]) {
			return false, nil
		}
		doneA := errors.Is(errA, io.EOF) || errors.Is(errA, io.ErrUnexpectedEOF)
		doneB := errors.Is(errB, io.EOF) || errors.Is(errB, io.ErrUnexpectedEOF)
		if errA != nil && !doneA {
			return false, fmt.Errorf("compare %s: %w", a, errA)
		}
		if errB != nil && !doneB {
			return false, fmt.Errorf("compare %s: %w", b, errB)
		}
		if doneA || doneB {
			return doneA && doneB, nil
		}
	}
}
