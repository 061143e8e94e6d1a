package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"orderetl/internal/config"
	apperrors "orderetl/internal/errors"
	"orderetl/internal/ingest"
)

func newIngestCommand(ctx *commandContext) *cobra.Command {
	var (
		yes     bool
		archive bool
		format  string
		workers int
	)

	cmd := &cobra.Command{
		Use:   "ingest",
		Short: "Read input_data into consolidated program_data outputs",
		Long: "Reads every source directory under input_data, maps and cleans the records,\n" +
			"deduplicates them by order number and writes program_data/<source>_data.json|csv\n" +
			"plus meta_data.json. Existing program data is replaced after confirmation.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("format") {
				cfg.Pipeline.OutputFormat = format
			}
			if cmd.Flags().Changed("workers") {
				cfg.Pipeline.Workers = workers
			}
			if archive {
				cfg.Pipeline.Archive = true
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			paths := ctx.pathsValue()
			headers, err := config.LoadHeaders(paths.HeadersFile)
			if err != nil {
				return err
			}

			pipeline, err := ingest.NewPipeline(cfg, paths, headers, ctx.loggerValue())
			if err != nil {
				return err
			}

			opts := ingest.Options{Archive: cfg.Pipeline.Archive}
			if !yes {
				opts.Confirm = newPrompt(cmd.InOrStdin(), cmd.OutOrStdout())
			}

			result, err := pipeline.Run(cmd.Context(), opts)
			if errors.Is(err, apperrors.ErrAborted) {
				fmt.Fprintln(cmd.OutOrStdout(), "Exiting without changes.")
				return nil
			}
			if err != nil {
				return err
			}

			printIngestSummary(cmd.OutOrStdout(), result)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Overwrite existing program data without asking")
	cmd.Flags().BoolVar(&archive, "archive", false, "Move read input files to read_data/<date>/<source>/")
	cmd.Flags().StringVar(&format, "format", config.OutputJSON, "Output format: json, csv or both")
	cmd.Flags().IntVar(&workers, "workers", config.DefaultWorkers, "Number of sources processed concurrently")

	return cmd
}

// newPrompt asks on out and reads the answer from in. A stdin that is not a
// terminal cannot answer, so the run is refused.
func newPrompt(in io.Reader, out io.Writer) ingest.ConfirmFunc {
	return func(lastInputDate string) (bool, error) {
		if !isInteractive(in) {
			return false, apperrors.NewValidationError("existing program data would be overwritten; rerun with --yes when stdin is not a terminal")
		}

		fmt.Fprintf(out, "Are you sure you want to overwrite the data from %s? (y/n): ", lastInputDate)
		answer, err := bufio.NewReader(in).ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return false, err
		}
		return strings.EqualFold(strings.TrimSpace(answer), "y"), nil
	}
}

// isInteractive reports whether in is a terminal. Readers that are not
// files (tests, pipes wired by the caller) count as interactive.
func isInteractive(in io.Reader) bool {
	f, ok := in.(*os.File)
	if !ok {
		return true
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func printIngestSummary(out io.Writer, result *ingest.Result) {
	headers := []string{"Source", "Files", "Skipped", "Read", "Written", "Normalizer"}
	rows := make([][]string, 0, len(result.Sources))
	for _, src := range result.Sources {
		skipped := 0
		for _, f := range src.Files {
			if f.Err != nil {
				skipped++
			}
		}
		normalizer := src.Normalizer
		if src.Skipped != "" {
			normalizer = src.Skipped
		}
		rows = append(rows, []string{
			src.Source,
			strconv.Itoa(len(src.Files)),
			strconv.Itoa(skipped),
			strconv.Itoa(src.RecordsRead),
			strconv.Itoa(src.RecordsWritten),
			normalizer,
		})
	}

	fmt.Fprintln(out, renderTable(headers, rows, []columnAlignment{alignLeft, alignRight, alignRight, alignRight, alignRight, alignLeft}))
	fmt.Fprintf(out, "Run %s finished at %s in %s\n",
		result.RunID,
		result.Metadata.FormattedLastInputDate(),
		result.Duration.Round(time.Millisecond))
}
