package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Paths contains every resolved path the tool reads or writes
type Paths struct {
	BaseDir        string
	InputDir       string
	ProgramDataDir string
	ConfigDir      string
	ReadDataDir    string

	HeadersFile string
	MetaFile    string
	TransitCSV  string
	TransitJSON string
	MetricsFile string
	LockFile    string
}

// NewPaths resolves the configured paths against the base directory.
// Layout:
//
//	<base>/
//	  ├── config/          (headers.json, transit_times.json)
//	  ├── input_data/      (one subdirectory per source)
//	  ├── program_data/    (<source>_data.json|csv, meta_data.json)
//	  └── read_data/       (archived inputs, by run date)
func NewPaths(cfg PathsConfig) (*Paths, error) {
	base := cfg.BaseDir
	if base == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %v", err)
		}
		base = wd
	}
	base, err := filepath.Abs(base)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve base directory: %v", err)
	}

	resolve := func(dir, p string) string {
		if p == "" || filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(dir, p)
	}

	configDir := resolve(base, cfg.ConfigDir)
	programDataDir := resolve(base, cfg.ProgramDataDir)

	paths := &Paths{
		BaseDir:        base,
		InputDir:       resolve(base, cfg.InputDir),
		ProgramDataDir: programDataDir,
		ConfigDir:      configDir,
		ReadDataDir:    resolve(base, cfg.ReadDataDir),
		HeadersFile:    resolve(configDir, cfg.HeadersFile),
		MetaFile:       resolve(programDataDir, cfg.MetaFile),
		TransitCSV:     resolve(base, cfg.TransitCSV),
		TransitJSON:    resolve(configDir, cfg.TransitJSON),
		MetricsFile:    resolve(programDataDir, cfg.MetricsFile),
		LockFile:       filepath.Join(programDataDir, LockFileName),
	}
	return paths, nil
}

// GetPaths resolves the paths of a loaded configuration
func (c *Config) GetPaths() (*Paths, error) {
	return NewPaths(c.Paths)
}

// OutputPath returns program_data/<source>_data.<ext>
func (p *Paths) OutputPath(source, ext string) string {
	ext = strings.TrimPrefix(ext, ".")
	return filepath.Join(p.ProgramDataDir, source+OutputSuffix+"."+ext)
}

// ArchiveDir returns read_data/<YYYY-MM-DD>/<source>
func (p *Paths) ArchiveDir(day time.Time, source string) string {
	return filepath.Join(p.ReadDataDir, day.Format("2006-01-02"), source)
}

// IsReservedSource reports whether an output of source would land on the
// metadata, metrics or lock file
func (p *Paths) IsReservedSource(source string) bool {
	reserved := []string{p.MetaFile, p.MetricsFile, p.LockFile}
	for _, ext := range []string{"json", "csv"} {
		out := filepath.Clean(p.OutputPath(source, ext))
		for _, r := range reserved {
			if r != "" && out == filepath.Clean(r) {
				return true
			}
		}
	}
	return false
}

// LogPathResolution logs every resolved path at debug level
func (p *Paths) LogPathResolution(logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}
	logger.Debug("Resolved paths",
		slog.String("base_dir", p.BaseDir),
		slog.String("input_dir", p.InputDir),
		slog.String("program_data_dir", p.ProgramDataDir),
		slog.String("config_dir", p.ConfigDir),
		slog.String("read_data_dir", p.ReadDataDir),
		slog.String("headers_file", p.HeadersFile),
		slog.String("meta_file", p.MetaFile))
}
