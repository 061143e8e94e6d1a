// Package ingest implements the order consolidation run.
//
// A run scans input_data/, treating every subdirectory as a named source.
// For each source with a header mapping, its csv/xlsx/xls files are read in
// name order, mapped onto canonical column names and have their order
// numbers cleaned. The combined table is then normalized for the source,
// deduplicated by order number and written to program_data/. A flat metadata
// file records how many records were read from each file and when the run
// finished.
//
// Sources are processed concurrently with a bounded number of workers. A
// file that cannot be read or lacks mapped headers is logged and skipped;
// it is still listed in the metadata with a count of zero.
//
// Example usage:
//
//	p, err := ingest.NewPipeline(cfg, paths, headers, logger)
//	result, err := p.Run(ctx, ingest.Options{Confirm: prompt})
package ingest
