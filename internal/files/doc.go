// Package files provides file system operations and discovery utilities
// for the order consolidation pipeline.
//
// This package contains two main components:
//
// Discovery: finds source directories under input_data and the input files
// (csv, xlsx, xls) inside each of them, in name order. Spreadsheet editor
// lock files (~$*) are skipped.
//
// Manager: clears stale outputs from program_data, moves read inputs into
// the read_data archive and writes files with their parent directories.
//
// Example usage:
//
//	discovery := files.NewDiscovery(paths.InputDir)
//	sources, err := discovery.ListDirectories(".")
//
//	manager := files.NewManager(paths, logger)
//	removed, err := manager.ClearOutputs()
package files
