package store

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
)

// CreateBackup copies the database file into a backup/ directory next to it,
// named with the given timestamp. Returns the backup path.
func CreateBackup(dbPath string, now time.Time) (string, error) {
	src, err := os.Open(dbPath)
	if err != nil {
		return "", err
	}
	defer src.Close()

	dir := filepath.Join(filepath.Dir(dbPath), "backup")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	name := fmt.Sprintf("%s_%s", now.Format("2006-01-02_15-04-05"), filepath.Base(dbPath))
	dst := filepath.Join(dir, name)
	out, err := os.Create(dst)
	if err != nil {
		return "", err
	}
	defer out.Close()

	if _, err := io.Copy(out, src); err != nil {
		return "", err
	}
	return dst, nil
}
