// Command orderetl consolidates order exports from several sources into
// deduplicated JSON/CSV files and maintains the related lookup tables.
//
// Usage:
//
//	orderetl ingest [--yes] [--archive]
//	orderetl transit update [--csv FILE] [--out FILE]
//	orderetl transit lookup COUNTRY QUEUE
//	orderetl headers show
//	orderetl headers merge [--overrides FILE] [--out FILE]
//	orderetl meta show
//
// Every command accepts --config to point at a YAML configuration file.
// Without it, orderetl.yaml and config/orderetl.yaml in the working
// directory are tried.
package main
