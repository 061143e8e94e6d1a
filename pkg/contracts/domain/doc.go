// Package domain holds the data contracts shared by the ingest pipeline,
// the exporters and the CLI: order records and tables, run metadata and the
// transit-times lookup.
package domain
