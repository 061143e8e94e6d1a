package files

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"orderetl/internal/config"
)

// Manager provides file management operations rooted at the resolved paths
type Manager struct {
	paths     *config.Paths
	discovery *Discovery
	logger    *slog.Logger
}

// NewManager creates a new file manager instance
func NewManager(paths *config.Paths, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		paths:     paths,
		discovery: NewDiscovery(paths.ProgramDataDir),
		logger:    logger,
	}
}

// FileExists checks if a file exists at the given path
func (m *Manager) FileExists(path string) bool {
	fullPath := m.resolvePath(path)
	_, err := os.Stat(fullPath)
	exists := err == nil

	m.logger.Debug("FileExists check",
		slog.String("path", path),
		slog.String("full_path", fullPath),
		slog.Bool("exists", exists))

	return exists
}

// ClearOutputs removes every <source>_data.json and <source>_data.csv file
// from program_data. The metadata file is never removed. Returns the
// removed file names.
func (m *Manager) ClearOutputs() ([]string, error) {
	metaName := filepath.Base(m.paths.MetaFile)
	var removed []string
	for _, pattern := range []string{"*" + config.OutputSuffix + ".json", "*" + config.OutputSuffix + ".csv"} {
		matches, err := m.discovery.FindFilesByPattern(".", pattern)
		if err != nil {
			return removed, err
		}
		for _, match := range matches {
			if match.Name == metaName {
				continue
			}
			if err := os.Remove(match.Path); err != nil && !os.IsNotExist(err) {
				return removed, fmt.Errorf("failed to remove %s: %w", match.Path, err)
			}
			m.logger.Debug("Removed stale output", slog.String("file", match.Name))
			removed = append(removed, match.Name)
		}
	}
	return removed, nil
}

// CopyFile copies a file from source to destination
func (m *Manager) CopyFile(src, dst string) error {
	srcPath := m.resolvePath(src)
	dstPath := m.resolvePath(dst)

	if err := os.MkdirAll(filepath.Dir(dstPath), 0755); err != nil {
		return fmt.Errorf("failed to create destination directory: %w", err)
	}

	srcFile, err := os.Open(srcPath)
	if err != nil {
		return fmt.Errorf("failed to open source file: %w", err)
	}
	defer srcFile.Close()

	dstFile, err := os.Create(dstPath)
	if err != nil {
		return fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dstFile.Close()

	if _, err := io.Copy(dstFile, srcFile); err != nil {
		return fmt.Errorf("failed to copy file content: %w", err)
	}

	return dstFile.Sync()
}

// MoveFile moves a file from source to destination
func (m *Manager) MoveFile(src, dst string) error {
	srcPath := m.resolvePath(src)
	dstPath := m.resolvePath(dst)

	m.logger.Info("Moving file",
		slog.String("src_path", srcPath),
		slog.String("dst_path", dstPath))

	if err := os.MkdirAll(filepath.Dir(dstPath), 0755); err != nil {
		return fmt.Errorf("failed to create destination directory: %w", err)
	}

	// Try rename first (atomic if on same filesystem)
	if err := os.Rename(srcPath, dstPath); err == nil {
		return nil
	}

	// Fall back to copy and delete
	if err := m.CopyFile(srcPath, dstPath); err != nil {
		return err
	}

	return os.Remove(srcPath)
}

// WriteFile writes data to a file, creating parent directories
func (m *Manager) WriteFile(path string, data []byte) error {
	fullPath := m.resolvePath(path)

	m.logger.Debug("Writing file",
		slog.String("full_path", fullPath),
		slog.Int("size_bytes", len(data)))

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	return os.WriteFile(fullPath, data, 0644)
}

// resolvePath resolves a relative path against program_data
func (m *Manager) resolvePath(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(m.paths.ProgramDataDir, path)
}
