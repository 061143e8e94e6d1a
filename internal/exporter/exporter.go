package exporter

import (
	"log/slog"

	"orderetl/internal/config"
	"orderetl/pkg/contracts/domain"
)

// Exporter writes the consolidated output files of one source
type Exporter struct {
	paths    *config.Paths
	pipeline config.PipelineConfig
	json     *JSONWriter
	csv      *CSVWriter
}

// NewExporter creates an exporter for the configured output format
func NewExporter(paths *config.Paths, pipeline config.PipelineConfig, logger *slog.Logger) *Exporter {
	return &Exporter{
		paths:    paths,
		pipeline: pipeline,
		json:     NewJSONWriter(logger),
		csv:      NewCSVWriter(logger),
	}
}

// Export writes program_data/<source>_data.json and/or .csv and returns the written paths
func (e *Exporter) Export(source string, set *domain.OrderSet) ([]string, error) {
	var written []string

	if e.pipeline.WritesJSON() {
		path := e.paths.OutputPath(source, "json")
		if err := e.json.WriteOrders(path, set); err != nil {
			return written, err
		}
		written = append(written, path)
	}
	if e.pipeline.WritesCSV() {
		path := e.paths.OutputPath(source, "csv")
		if err := e.csv.WriteOrders(path, set, e.pipeline.CSVBOM); err != nil {
			return written, err
		}
		written = append(written, path)
	}
	return written, nil
}
