package object

import "bytes"

// CommitSigningPayload returns the canonical bytes that are signed for a
// commit: the id followed by the metadata record without its signature.
func CommitSigningPayload(c *Commit) []byte {
	if c == nil {
		return nil
	}
	copyCommit := *c
	copyCommit.Signature = ""

	var buf bytes.Buffer
	buf.WriteString("id=")
	buf.WriteString(string(c.ID))
	buf.WriteByte('\n')
	buf.Write(MarshalCommit(&copyCommit))
	return buf.Bytes()
}
