package catalogs

import (
	"bufio"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/agentstation/utc"

	"github.com/lucheestiy/bizcatalog/pkg/constants"
	"github.com/lucheestiy/bizcatalog/pkg/errors"
)

// Encode writes each record of every batch as one JSON line.
func Encode(w io.Writer, batches ...[]*Company) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	for _, batch := range batches {
		for _, c := range batch {
			if err := enc.Encode(c); err != nil {
				return err
			}
		}
	}
	return nil
}

// Write replaces the catalog at path with the given batches, in order.
// Lines are written to path+".tmp" first and renamed over path once
// everything has been flushed and synced, so readers never see a partial
// catalog.
func Write(path string, batches ...[]*Company) error {
	if err := os.MkdirAll(filepath.Dir(path), constants.DirPermissions); err != nil {
		return errors.WrapIO("create", filepath.Dir(path), err)
	}

	tmpPath := path + constants.TempSuffix
	f, err := os.OpenFile(tmpPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, constants.FilePermissions) //nolint:gosec // path comes from configuration
	if err != nil {
		return errors.WrapIO("create", tmpPath, err)
	}

	bw := bufio.NewWriterSize(f, constants.WriteBufferSize)
	if err := Encode(bw, batches...); err != nil {
		_ = f.Close()
		_ = os.Remove(tmpPath)
		return errors.WrapIO("write", tmpPath, err)
	}
	if err := bw.Flush(); err != nil {
		_ = f.Close()
		_ = os.Remove(tmpPath)
		return errors.WrapIO("write", tmpPath, err)
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		_ = os.Remove(tmpPath)
		return errors.WrapIO("sync", tmpPath, err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return errors.WrapIO("close", tmpPath, err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return errors.WrapIO("rename", path, err)
	}
	return nil
}

// BackupPath returns the timestamped backup name for a catalog, e.g.
// data/companies.backup-20250101T120000Z.jsonl for data/companies.jsonl.
func BackupPath(path string, at utc.Time) string {
	ext := filepath.Ext(path)
	if ext == "" {
		ext = ".jsonl"
	}
	base := strings.TrimSuffix(path, filepath.Ext(path))
	return base + ".backup-" + at.UTC().Format(constants.TimeFormatBackup) + ext
}

// Backup copies the catalog at path to its timestamped backup name and
// returns that name.
func Backup(path string, at utc.Time) (string, error) {
	dst := BackupPath(path, at)

	src, err := os.Open(path) //nolint:gosec // path comes from configuration
	if err != nil {
		if os.IsNotExist(err) {
			return "", errors.NewNotFoundError("catalog", path)
		}
		return "", errors.WrapIO("open", path, err)
	}
	defer func() { _ = src.Close() }()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, constants.FilePermissions) //nolint:gosec // derived from the catalog path
	if err != nil {
		return "", errors.WrapIO("create", dst, err)
	}
	if _, err := io.Copy(out, src); err != nil {
		_ = out.Close()
		return "", errors.WrapIO("copy", dst, err)
	}
	if err := out.Sync(); err != nil {
		_ = out.Close()
		return "", errors.WrapIO("sync", dst, err)
	}
	if err := out.Close(); err != nil {
		return "", errors.WrapIO("close", dst, err)
	}
	return dst, nil
}
