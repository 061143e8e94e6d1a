package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration
type Config struct {
	Logging  LoggingConfig  `yaml:"logging" envconfig:"LOGGING"`
	Paths    PathsConfig    `yaml:"paths" envconfig:"PATHS"`
	Pipeline PipelineConfig `yaml:"pipeline" envconfig:"PIPELINE"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level       string `yaml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn warning error"`
	Format      string `yaml:"format" envconfig:"FORMAT" validate:"oneof=json text"`
	Output      string `yaml:"output" envconfig:"OUTPUT" validate:"oneof=console file both"`
	FilePath    string `yaml:"file_path" envconfig:"FILE_PATH"`
	Development bool   `yaml:"development" envconfig:"DEVELOPMENT"`
}

// PathsConfig contains file system paths configuration.
// Relative entries resolve against BaseDir, which defaults to the working directory.
type PathsConfig struct {
	BaseDir        string `yaml:"base_dir" envconfig:"BASE_DIR"`
	InputDir       string `yaml:"input_dir" envconfig:"INPUT_DIR" validate:"required"`
	ProgramDataDir string `yaml:"program_data_dir" envconfig:"PROGRAM_DATA_DIR" validate:"required"`
	ConfigDir      string `yaml:"config_dir" envconfig:"CONFIG_DIR" validate:"required"`
	ReadDataDir    string `yaml:"read_data_dir" envconfig:"READ_DATA_DIR" validate:"required"`
	HeadersFile    string `yaml:"headers_file" envconfig:"HEADERS_FILE" validate:"required"`
	MetaFile       string `yaml:"meta_file" envconfig:"META_FILE" validate:"required"`
	TransitCSV     string `yaml:"transit_csv" envconfig:"TRANSIT_CSV" validate:"required"`
	TransitJSON    string `yaml:"transit_json" envconfig:"TRANSIT_JSON" validate:"required"`
	MetricsFile    string `yaml:"metrics_file" envconfig:"METRICS_FILE"`
}

// PipelineConfig controls how the ingest run reads, cleans and writes records
type PipelineConfig struct {
	Workers      int               `yaml:"workers" envconfig:"WORKERS" validate:"min=1,max=64"`
	OutputFormat string            `yaml:"output_format" envconfig:"OUTPUT_FORMAT" validate:"oneof=json csv both"`
	DedupPolicy  string            `yaml:"dedup_policy" envconfig:"DEDUP_POLICY" validate:"oneof=last first"`
	CSVBOM       bool              `yaml:"csv_bom" envconfig:"CSV_BOM"`
	Archive      bool              `yaml:"archive" envconfig:"ARCHIVE"`
	Normalizers  map[string]string `yaml:"normalizers" envconfig:"NORMALIZERS" validate:"dive,keys,required,endkeys,oneof=dtx address_suffix none"`
}

// Output format values
const (
	OutputJSON = "json"
	OutputCSV  = "csv"
	OutputBoth = "both"
)

// WritesJSON reports whether the run writes JSON outputs
func (p PipelineConfig) WritesJSON() bool {
	return p.OutputFormat == OutputJSON || p.OutputFormat == OutputBoth
}

// WritesCSV reports whether the run writes CSV outputs
func (p PipelineConfig) WritesCSV() bool {
	return p.OutputFormat == OutputCSV || p.OutputFormat == OutputBoth
}

// Load builds configuration from defaults, then the config file, then environment
// variables. An empty configFile searches the well-known locations.
func Load(configFile string) (*Config, error) {
	cfg := Default()

	if configFile == "" {
		configFile = getConfigFilePath()
	}
	if configFile != "" {
		if err := loadFromFile(configFile, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
	}

	// Fields carry no envconfig defaults so unset variables leave file values alone
	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if err := cfg.resolvePaths(); err != nil {
		return nil, fmt.Errorf("failed to resolve paths: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// loadFromFile overlays the YAML file onto cfg
func loadFromFile(filePath string, cfg *Config) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// resolvePaths pins BaseDir to an absolute directory
func (c *Config) resolvePaths() error {
	if c.Paths.BaseDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to get working directory: %w", err)
		}
		c.Paths.BaseDir = wd
	}
	abs, err := filepath.Abs(c.Paths.BaseDir)
	if err != nil {
		return err
	}
	c.Paths.BaseDir = abs

	if c.Logging.FilePath != "" && !filepath.IsAbs(c.Logging.FilePath) {
		c.Logging.FilePath = filepath.Join(abs, c.Logging.FilePath)
	}
	return nil
}

// Validate checks struct constraints
func (c *Config) Validate() error {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	if err := v.Struct(c); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return err
		}
		msgs := make([]string, 0, len(fieldErrs))
		for _, fe := range fieldErrs {
			msgs = append(msgs, formatValidationError(fe))
		}
		return fmt.Errorf("%s", strings.Join(msgs, "; "))
	}

	if c.Logging.Level == "warning" {
		c.Logging.Level = "warn"
	}
	return nil
}

// formatValidationError formats validation error messages
func formatValidationError(fe validator.FieldError) string {
	field := fe.Namespace()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s (got %q)", field, strings.ReplaceAll(fe.Param(), " ", ", "), fmt.Sprint(fe.Value()))
	default:
		return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
	}
}

// getConfigFilePath returns the path to the config file
func getConfigFilePath() string {
	locations := []string{
		"orderetl.yaml",
		"config/orderetl.yaml",
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location
		}
	}

	return ""
}

// Default returns default configuration
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:    "info",
			Format:   "json",
			Output:   "console",
			FilePath: DefaultLogFile,
		},
		Paths: PathsConfig{
			InputDir:       DefaultInputDir,
			ProgramDataDir: DefaultProgramDataDir,
			ConfigDir:      DefaultConfigDir,
			ReadDataDir:    DefaultReadDataDir,
			HeadersFile:    DefaultHeadersFile,
			MetaFile:       DefaultMetaFile,
			TransitCSV:     DefaultTransitCSV,
			TransitJSON:    DefaultTransitJSON,
			MetricsFile:    DefaultMetricsFile,
		},
		Pipeline: PipelineConfig{
			Workers:      DefaultWorkers,
			OutputFormat: OutputJSON,
			DedupPolicy:  "last",
			CSVBOM:       true,
			Normalizers:  DefaultNormalizers(),
		},
	}
}
