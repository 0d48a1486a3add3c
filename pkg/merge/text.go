package merge

import "unicode/utf8"

// IsText reports whether every given version decodes as UTF-8 text. A
// single undecodable byte sequence on any side routes the file to the
// whole-file merge.
func IsText(versions ...[]byte) bool {
	for _, v := range versions {
		if !utf8.Valid(v) {
			return false
		}
	}
	return true
}
