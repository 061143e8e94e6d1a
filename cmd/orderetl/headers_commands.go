package main

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"orderetl/internal/config"
	"orderetl/internal/files"
)

func newHeadersCommand(ctx *commandContext) *cobra.Command {
	headersCmd := &cobra.Command{
		Use:   "headers",
		Short: "Inspect and maintain the per-source header mapping",
	}

	headersCmd.AddCommand(newHeadersShowCommand(ctx))
	headersCmd.AddCommand(newHeadersMergeCommand(ctx))
	return headersCmd
}

func newHeadersShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show [SOURCE]",
		Short: "List the mapped sources, or the columns of one source",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadHeaders(ctx.pathsValue().HeadersFile)
			if err != nil {
				return err
			}
			bindings := ctx.config.Pipeline.Normalizers

			if len(args) == 1 {
				mapping, ok := cfg.Get(args[0])
				if !ok {
					return fmt.Errorf("source %q has no header mapping", args[0])
				}
				rows := make([][]string, 0, len(mapping))
				for _, m := range mapping {
					rows = append(rows, []string{m.Source, m.Target})
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Source column", "Field"}, rows, nil))
				return nil
			}

			rows := make([][]string, 0, cfg.Len())
			for _, source := range cfg.Sources() {
				mapping, _ := cfg.Get(source)
				normalizer := bindings[source]
				if normalizer == "" {
					normalizer = "none"
				}
				rows = append(rows, []string{source, strconv.Itoa(len(mapping)), strings.Join(mapping.Targets(), ", "), normalizer})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Source", "Columns", "Fields", "Normalizer"},
				rows,
				[]columnAlignment{alignLeft, alignRight, alignLeft, alignLeft},
			))
			return nil
		},
	}
}

func newHeadersMergeCommand(ctx *commandContext) *cobra.Command {
	var overridesPath, outPath string

	cmd := &cobra.Command{
		Use:   "merge",
		Short: "Apply target overrides to headers.json and write the merged mapping",
		Long: "For every source in headers.json, each source column that also appears in the\n" +
			"overrides file for that source takes the override's target. Nothing is added\n" +
			"or removed. headers.json itself is left untouched.",
		RunE: func(cmd *cobra.Command, args []string) error {
			paths := ctx.pathsValue()
			if strings.TrimSpace(overridesPath) == "" {
				overridesPath = filepath.Join(paths.ConfigDir, config.DefaultOverridesFile)
			}
			if strings.TrimSpace(outPath) == "" {
				outPath = filepath.Join(paths.ConfigDir, config.DefaultMergedHeadersFile)
			}

			current, err := config.LoadHeaders(paths.HeadersFile)
			if err != nil {
				return err
			}
			overrides, err := config.LoadHeaders(overridesPath)
			if err != nil {
				return err
			}

			merged, changed := config.MergeOverrides(current, overrides)
			data, err := config.EncodeHeaders(merged)
			if err != nil {
				return err
			}
			if err := files.NewManager(paths, ctx.loggerValue()).WriteFile(outPath, data); err != nil {
				return err
			}

			ctx.loggerValue().Info("Header mapping merged",
				"overrides", overridesPath,
				"output", outPath,
				"changed", changed)
			fmt.Fprintf(cmd.OutOrStdout(), "Updated %d column targets, wrote %s\n", changed, outPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&overridesPath, "overrides", "", "Overrides file (default config/data_types.json)")
	cmd.Flags().StringVar(&outPath, "out", "", "Output file (default config/headers2.json)")
	return cmd
}
