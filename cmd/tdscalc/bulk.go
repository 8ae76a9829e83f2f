package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/taxdesk/tds-calculator/internal/bulk"
	"github.com/taxdesk/tds-calculator/internal/output"
)

func newBulkCmd(a *app) *cobra.Command {
	var (
		format string
		outDir string
		stdout bool
	)
	cmd := &cobra.Command{
		Use:   "bulk <file.xlsx|file.csv>",
		Short: "Process a spreadsheet of payments and write a report",
		Long: `Process every row of an .xlsx or .csv file. Required columns are
"` + strings.Join(bulk.RequiredColumns, `", "`) + `".
Rows that cannot be parsed are reported as processing errors; the rest of the
batch is still calculated.`,
		Example: `  tdscalc bulk payments.xlsx
  tdscalc bulk payments.csv --format all --out reports/
  tdscalc bulk payments.csv --format summary --stdout`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format == "" {
				format = a.settings.Output.Format
			}
			if outDir == "" {
				outDir = a.settings.Output.Dir
			}

			engine, err := a.engine(nil)
			if err != nil {
				return err
			}
			processor := bulk.NewProcessor(engine, a.settings.Bulk.MaxRows)

			start := time.Now()
			report, err := processor.ProcessFile(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			a.logger.Info().
				Str("file", args[0]).
				Int("rows", report.Summary.Rows).
				Int("errors", report.Summary.Errors).
				Dur("elapsed", time.Since(start)).
				Msg("batch processed")

			if stdout {
				out, err := output.Render(report, format)
				if err != nil {
					return err
				}
				return writeOut(cmd, out)
			}

			paths, err := output.GenerateReport(report, format, outDir)
			if err != nil {
				return err
			}
			for _, p := range paths {
				fmt.Fprintln(cmd.OutOrStdout(), p)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "report format (console, summary, csv, detailed-csv, html, json, xlsx, all)")
	cmd.Flags().StringVarP(&outDir, "out", "o", "", "directory for report files")
	cmd.Flags().BoolVar(&stdout, "stdout", false, "print the report instead of writing a file")
	return cmd
}

func newTemplateCmd(a *app) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "template [path]",
		Short: "Write a sample bulk upload workbook",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "tds_bulk_template.xlsx"
			if len(args) == 1 {
				path = args[0]
			}
			if fileExists(path) && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}
			if dir := filepath.Dir(path); dir != "." {
				if err := os.MkdirAll(dir, 0o755); err != nil {
					return fmt.Errorf("create directory %s: %w", dir, err)
				}
			}

			f, err := os.Create(path)
			if err != nil {
				return fmt.Errorf("create %s: %w", path, err)
			}
			if err := bulk.WriteTemplate(f); err != nil {
				_ = f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
			a.logger.Info().Str("path", path).Msg("template written")
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	return cmd
}
