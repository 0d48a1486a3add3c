package object

import (
	"strings"
	"time"
)

// ID is an opaque commit identifier: IDLength random lowercase hex
// characters. Ids are not derived from content, so two commits with the
// same snapshot still get distinct ids.
type ID string

const (
	// IDLength is the number of hex characters in a full commit id.
	IDLength = 40
	// ShortIDLength is the display length of an abbreviated id.
	ShortIDLength = 6
)

// NoParent is the parent recorded for a root commit.
const NoParent ID = "None"

// Short returns the display form of the id.
func (id ID) Short() string {
	if len(id) > ShortIDLength {
		return string(id[:ShortIDLength])
	}
	return string(id)
}

// IsNone reports whether id is unset or the root sentinel.
func (id ID) IsNone() bool {
	return id == "" || id == NoParent
}

// Valid reports whether id has the shape of a commit id.
func (id ID) Valid() bool {
	if len(id) != IDLength {
		return false
	}
	return strings.Trim(string(id), "0123456789abcdef") == ""
}

// Commit is the metadata record of an immutable commit. The commit's file
// tree lives next to the record, see Store.SnapshotPath.
type Commit struct {
	ID        ID
	Parents   []ID // [first] or [first, second]; a root commit has [NoParent]
	Date      time.Time
	Message   string
	Signature string
}

// FirstParent returns the first parent, or NoParent for a root commit.
func (c *Commit) FirstParent() ID {
	if len(c.Parents) == 0 {
		return NoParent
	}
	return c.Parents[0]
}

// IsMerge reports whether the commit has a second parent.
func (c *Commit) IsMerge() bool {
	return len(c.Parents) > 1
}
