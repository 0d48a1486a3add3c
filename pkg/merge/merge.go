// Package merge implements the per-file three-way merges used when one
// commit is merged into another: a lockstep line merge for text and a
// whole-file merge for binary content.
//
// The three sides are named from the point of view of the branch being
// merged into: current is the staged copy, incoming is the copy from the
// commit being merged in, and base is the copy from their shared ancestor.
package merge

import (
	"bytes"
	"errors"
	"fmt"
)

// ErrConflict is matched by every *ConflictError.
var ErrConflict = errors.New("merge conflict")

// ConflictError reports an irreconcilable difference. Line is the 1-based
// line of a line merge conflict, or 0 for a whole-file conflict.
type ConflictError struct {
	Line int
}

func (e *ConflictError) Error() string {
	if e.Line == 0 {
		return "merge conflict: both sides changed the file"
	}
	return fmt.Sprintf("merge conflict at line %d", e.Line)
}

func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}

// Lines merges three text versions line by line in lockstep. Line i of each
// side is compared with line i of the others (a side that has run out
// contributes an empty line):
//
//   - incoming == current: take incoming
//   - incoming == base:    take current (only current changed)
//   - current == base:     take incoming (only incoming changed)
//   - otherwise:           conflict
//
// Once incoming is exhausted, the remaining current lines are appended
// verbatim. Lines keep their terminators, so a missing final newline is a
// difference like any other.
func Lines(current, incoming, base []byte) ([]byte, error) {
	cur := SplitLines(current)
	inc := SplitLines(incoming)
	bas := SplitLines(base)

	var out bytes.Buffer
	for i, in := range inc {
		c := lineAt(cur, i)
		b := lineAt(bas, i)
		switch {
		case bytes.Equal(in, c):
			out.Write(in)
		case bytes.Equal(in, b):
			out.Write(c)
		case bytes.Equal(c, b):
			out.Write(in)
		default:
			return nil, &ConflictError{Line: i + 1}
		}
	}
	for i := len(inc); i < len(cur); i++ {
		out.Write(cur[i])
	}
	return out.Bytes(), nil
}

// Whole merges two versions of a file as opaque bytes. If current equals
// incoming, or current still equals base, incoming wins; if only current
// changed, current is kept. A missing base never equals anything.
func Whole(current, incoming, base []byte, baseExists bool) ([]byte, error) {
	switch {
	case bytes.Equal(current, incoming):
		return clone(incoming), nil
	case baseExists && bytes.Equal(current, base):
		return clone(incoming), nil
	case baseExists && bytes.Equal(incoming, base):
		return clone(current), nil
	default:
		return nil, &ConflictError{}
	}
}

// SplitLines splits data after every '\n'. Each line keeps its terminator;
// a trailing fragment without one is the last line. Empty input has no
// lines.
func SplitLines(data []byte) [][]byte {
	var lines [][]byte
	for len(data) > 0 {
		i := bytes.IndexByte(data, '\n')
		if i < 0 {
			lines = append(lines, data)
			break
		}
		lines = append(lines, data[:i+1])
		data = data[i+1:]
	}
	return lines
}

func lineAt(lines [][]byte, i int) []byte {
	if i < len(lines) {
		return lines[i]
	}
	return nil
}

func clone(b []byte) []byte {
	return append([]byte{}, b...)
}
