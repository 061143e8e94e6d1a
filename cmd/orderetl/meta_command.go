package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"orderetl/internal/exporter"
)

func newMetaCommand(ctx *commandContext) *cobra.Command {
	metaCmd := &cobra.Command{
		Use:   "meta",
		Short: "Inspect the metadata of the last ingest run",
	}
	metaCmd.AddCommand(newMetaShowCommand(ctx))
	return metaCmd
}

func newMetaShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print per-file record counts and the last input date",
		RunE: func(cmd *cobra.Command, args []string) error {
			meta, err := exporter.ReadMetadata(ctx.pathsValue().MetaFile)
			if err != nil {
				return err
			}

			var rows [][]string
			for _, source := range meta.SourceNames() {
				files := meta.Sources[source]
				if len(files) == 0 {
					rows = append(rows, []string{source, "-", "0"})
					continue
				}
				for _, name := range sortedKeys(files) {
					rows = append(rows, []string{source, name, strconv.Itoa(files[name])})
				}
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable([]string{"Source", "File", "Records"}, rows, []columnAlignment{alignLeft, alignLeft, alignRight}))
			last := meta.FormattedLastInputDate()
			if last == "" {
				last = "unknown"
			}
			fmt.Fprintf(out, "Last input date: %s\n", last)
			return nil
		},
	}
}
