package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/taxdesk/tds-calculator/internal/calculation"
	"github.com/taxdesk/tds-calculator/internal/config"
	"github.com/taxdesk/tds-calculator/internal/output"
)

func newSectionsCmd(a *app) *cobra.Command {
	var (
		search string
		format string
		export string
	)
	cmd := &cobra.Command{
		Use:   "sections [code]",
		Short: "List TDS sections, or show one section in detail",
		Example: `  tdscalc sections
  tdscalc sections --search rent --format csv
  tdscalc sections 194NF
  tdscalc sections --export rules.yaml`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if export != "" {
				if err := config.NewInputParser().SaveToFile(a.registry, export); err != nil {
					return err
				}
				a.logger.Info().Str("path", export).Str("rules", a.registry.Version).Msg("rule table exported")
				return nil
			}

			if len(args) == 1 {
				section, err := a.registry.Lookup(args[0])
				if err != nil {
					return err
				}
				return writeOut(cmd, output.FormatSection(calculation.DescribeSection(section)))
			}

			out, err := output.FormatCatalog(calculation.SearchCatalog(a.registry, search), format)
			if err != nil {
				return err
			}
			return writeOut(cmd, out)
		},
	}

	cmd.Flags().StringVarP(&search, "search", "s", "", "filter by code or description")
	cmd.Flags().StringVarP(&format, "format", "f", "console", fmt.Sprintf("output format %v", output.CatalogFormats))
	cmd.Flags().StringVar(&export, "export", "", "write the loaded rule table as yaml to this path")
	return cmd
}
