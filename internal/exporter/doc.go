// Package exporter writes the consolidated outputs of an ingest run.
//
// This package contains three main components:
//
// JSONWriter: writes a deduplicated order set as one object keyed by order
// number, columns in mapping order, 4-space indentation, no BOM.
//
// CSVWriter: core CSV writing with a header row, \n row terminators and an
// optional UTF-8 BOM for Excel compatibility.
//
// ReadMetadata / WriteMetadata: the flat run metadata file with per-file
// record counts and last_input_date.
//
// Example usage:
//
//	exp := exporter.NewExporter(paths, cfg.Pipeline, logger)
//	written, err := exp.Export("on_hold", orders)
package exporter
