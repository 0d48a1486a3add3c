package repo

import (
	"archive/tar"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"

	"github.com/odvcencio/wit/pkg/fstree"
	"github.com/odvcencio/wit/pkg/object"
)

// Archive writes the snapshot of id to w as a zstd-compressed tar stream.
// Entries are in path order and stamped with the commit date, so archiving
// the same commit twice yields the same bytes.
func (r *Repo) Archive(id object.ID, w io.Writer) error {
	c, err := r.Store.ReadCommit(id)
	if err != nil {
		return fmt.Errorf("archive: %w", err)
	}
	cfg, err := r.ReadConfig()
	if err != nil {
		return fmt.Errorf("archive: %w", err)
	}

	root := r.Store.SnapshotPath(id)
	files, err := fstree.ListFiles(root)
	if err != nil {
		return fmt.Errorf("archive: %w", err)
	}

	enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(cfg.ArchiveLevel()))
	if err != nil {
		return fmt.Errorf("archive: zstd: %w", err)
	}
	tw := tar.NewWriter(enc)
	for _, rel := range files {
		if err := writeTarFile(tw, filepath.Join(root, filepath.FromSlash(rel)), rel, c); err != nil {
			enc.Close()
			return fmt.Errorf("archive %s: %w", rel, err)
		}
	}
	if err := tw.Close(); err != nil {
		enc.Close()
		return fmt.Errorf("archive: tar: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("archive: zstd: %w", err)
	}

	r.log.Info().Str("commit", string(id)).Int("files", len(files)).Msg("archived")
	return nil
}

func writeTarFile(tw *tar.Writer, path, name string, c *object.Commit) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return err
	}
	hdr := &tar.Header{
		Typeflag: tar.TypeReg,
		Name:     name,
		Mode:     int64(info.Mode().Perm()),
		Size:     info.Size(),
		ModTime:  c.Date,
	}
	if err := tw.WriteHeader(hdr); err != nil {
		return err
	}
	_, err = io.Copy(tw, f)
	return err
}
