package storage

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"nutrition-tracker/internal/nutrition"

	"github.com/dustin/go-humanize"
)

// ArtifactStore provides file-based storage for rendered reports.
// Reports are written to workDir first and relocated into logsDir afterwards.
type ArtifactStore struct {
	workDir string
	logsDir string
}

// NewArtifactStore creates a new ArtifactStore. A relative logsDir lives
// inside workDir. logsDir is created lazily on first relocation.
func NewArtifactStore(workDir, logsDir string) *ArtifactStore {
	if workDir == "" {
		workDir = "."
	}
	if logsDir == "" {
		logsDir = "logs"
	}
	if !filepath.IsAbs(logsDir) {
		logsDir = filepath.Join(workDir, logsDir)
	}
	return &ArtifactStore{workDir: workDir, logsDir: logsDir}
}

// Save writes report to name inside the work directory, replacing any
// existing file of the same name, and returns its path.
func (s *ArtifactStore) Save(name, report string) (string, error) {
	path := filepath.Join(s.workDir, name)
	if err := os.WriteFile(path, []byte(report), 0644); err != nil {
		return "", nutrition.NewFailure(nutrition.KindArtifactWrite, fmt.Errorf("failed to write report file %s: %w", path, err))
	}
	return path, nil
}

// Relocate moves the file at path into the logs directory and returns the new path.
// On failure the file is left where it was.
func (s *ArtifactStore) Relocate(path string) (string, error) {
	if err := os.MkdirAll(s.logsDir, 0755); err != nil {
		return path, nutrition.NewFailure(nutrition.KindArtifactRelocate, fmt.Errorf("failed to create logs directory %s: %w", s.logsDir, err))
	}

	target := filepath.Join(s.logsDir, filepath.Base(path))
	if err := os.Rename(path, target); err != nil {
		return path, nutrition.NewFailure(nutrition.KindArtifactRelocate, fmt.Errorf("failed to move %s to %s: %w", path, target, err))
	}
	return target, nil
}

// LogsDir returns the directory relocated reports end up in.
func (s *ArtifactStore) LogsDir() string {
	return s.logsDir
}

// Usage summarizes the files kept in the logs directory.
type Usage struct {
	Files int
	Bytes uint64
}

// String renders the usage with a human readable size.
func (u Usage) String() string {
	return fmt.Sprintf("%d files, %s", u.Files, humanize.Bytes(u.Bytes))
}

// LogsUsage walks the logs directory. A missing directory reports zero usage.
func (s *ArtifactStore) LogsUsage() (Usage, error) {
	var u Usage
	err := filepath.WalkDir(s.logsDir, func(_ string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		u.Files++
		u.Bytes += uint64(info.Size())
		return nil
	})
	if err != nil && !os.IsNotExist(err) {
		return Usage{}, fmt.Errorf("failed to walk logs directory %s: %w", s.logsDir, err)
	}
	return u, nil
}
