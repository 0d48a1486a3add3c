package object

import (
	"bytes"
	"fmt"
	"strings"
	"time"
)

// DateLayout is the timestamp format of the date= field.
const DateLayout = "Mon Jan 02 15:04:05 2006 -0700"

// MarshalCommit serializes a commit metadata record:
//
//	parent=<id>[, <second id>]
//	date=<DateLayout>
//	signature=<sig>        (only when signed)
//	message=<text>
//
// The message is the final field and runs to the end of the record, so it
// may contain newlines. The id is not part of the record; it is the file
// name.
func MarshalCommit(c *Commit) []byte {
	parents := c.Parents
	if len(parents) == 0 {
		parents = []ID{NoParent}
	}
	names := make([]string, len(parents))
	for i, p := range parents {
		names[i] = string(p)
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "parent=%s\n", strings.Join(names, ", "))
	fmt.Fprintf(&buf, "date=%s\n", c.Date.Format(DateLayout))
	if strings.TrimSpace(c.Signature) != "" {
		fmt.Fprintf(&buf, "signature=%s\n", c.Signature)
	}
	fmt.Fprintf(&buf, "message=%s", c.Message)
	return buf.Bytes()
}

// UnmarshalCommit parses a metadata record written by MarshalCommit.
func UnmarshalCommit(data []byte) (*Commit, error) {
	c := &Commit{}
	rest := string(data)
	sawParent := false

	for rest != "" {
		line, tail, _ := strings.Cut(rest, "\n")
		key, val, ok := strings.Cut(line, "=")
		if !ok {
			return nil, fmt.Errorf("unmarshal commit: malformed line %q", line)
		}

		switch key {
		case "parent":
			for _, p := range strings.Split(val, ",") {
				p = strings.TrimSpace(p)
				if p == "" {
					continue
				}
				c.Parents = append(c.Parents, ID(p))
			}
			sawParent = true
		case "date":
			ts, err := time.Parse(DateLayout, strings.TrimSpace(val))
			if err != nil {
				return nil, fmt.Errorf("unmarshal commit: bad date %q: %w", val, err)
			}
			c.Date = ts
		case "signature":
			c.Signature = val
		case "message":
			// Everything after "message=" belongs to the message.
			c.Message = strings.TrimPrefix(rest, "message=")
			tail = ""
		default:
			return nil, fmt.Errorf("unmarshal commit: unknown key %q", key)
		}
		rest = tail
	}

	if !sawParent {
		return nil, fmt.Errorf("unmarshal commit: missing parent field")
	}
	if len(c.Parents) == 0 {
		c.Parents = []ID{NoParent}
	}
	if len(c.Parents) > 2 {
		return nil, fmt.Errorf("unmarshal commit: %d parents, at most 2 allowed", len(c.Parents))
	}
	return c, nil
}
