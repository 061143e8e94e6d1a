package config

// Application constants
const (
	AppName   = "orderetl"
	EnvPrefix = "ORDERETL"

	// Directories, relative to the base directory
	DefaultInputDir       = "input_data"
	DefaultProgramDataDir = "program_data"
	DefaultConfigDir      = "config"
	DefaultReadDataDir    = "read_data"

	// Files. HeadersFile and TransitJSON live in the config directory,
	// MetaFile and MetricsFile in the program data directory.
	DefaultHeadersFile = "headers.json"
	DefaultMetaFile    = "meta_data.json"
	DefaultTransitCSV  = "src/update_config/transit_times.csv"
	DefaultTransitJSON = "transit_times.json"
	DefaultMetricsFile = "orderetl.prom"

	// Header merge inputs and output, in the config directory
	DefaultOverridesFile     = "data_types.json"
	DefaultMergedHeadersFile = "headers2.json"

	DefaultLogFile = "logs/orderetl.log"
	LockFileName   = ".orderetl.lock"

	// Output naming: <source>_data.<ext>
	OutputSuffix = "_data"

	DefaultWorkers = 4
)

// DefaultNormalizers returns the built-in source to normalizer bindings
func DefaultNormalizers() map[string]string {
	return map[string]string{
		"dataextract":      "dtx",
		"on_hold":          "address_suffix",
		"unshipped_orders": "address_suffix",
	}
}
