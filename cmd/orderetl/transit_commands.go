package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"orderetl/internal/files"
	"orderetl/internal/transit"
)

func newTransitCommand(ctx *commandContext) *cobra.Command {
	transitCmd := &cobra.Command{
		Use:   "transit",
		Short: "Maintain the transit times lookup table",
	}

	transitCmd.AddCommand(newTransitUpdateCommand(ctx))
	transitCmd.AddCommand(newTransitLookupCommand(ctx))
	return transitCmd
}

func newTransitUpdateCommand(ctx *commandContext) *cobra.Command {
	var csvPath, outPath string

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Rewrite transit_times.json from the transit times CSV",
		RunE: func(cmd *cobra.Command, args []string) error {
			paths := ctx.pathsValue()
			if strings.TrimSpace(csvPath) == "" {
				csvPath = paths.TransitCSV
			}
			if strings.TrimSpace(outPath) == "" {
				outPath = paths.TransitJSON
			}

			times, err := transit.NewUpdater(files.NewManager(paths, ctx.loggerValue()), ctx.loggerValue()).Update(csvPath, outPath)
			if err != nil {
				return err
			}

			queues := 0
			for _, q := range times {
				queues += len(q)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d countries (%d ship queues) to %s\n", len(times), queues, outPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&csvPath, "csv", "", "Transit times CSV (default from configuration)")
	cmd.Flags().StringVar(&outPath, "out", "", "Output JSON file (default from configuration)")
	return cmd
}

func newTransitLookupCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "lookup COUNTRY QUEUE",
		Short: "Print the transit time for a country and ship queue",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			times, err := transit.Load(ctx.pathsValue().TransitJSON)
			if err != nil {
				return err
			}
			value, ok := times.Lookup(args[0], args[1])
			if !ok {
				return fmt.Errorf("no transit time for country %q and ship queue %q", args[0], args[1])
			}
			fmt.Fprintln(cmd.OutOrStdout(), value)
			return nil
		},
	}
}
