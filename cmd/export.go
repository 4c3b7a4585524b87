package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"creativesync/internal/app"
	"creativesync/internal/core/port"
)

var (
	exportFormat string
	exportOutput string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the campaign analytics as JSON or CSV",
	Long: `Write the campaign analytics as JSON or CSV.

Examples:
  creativesync export                          # JSON to stdout
  creativesync export --format csv -o out.csv  # CSV to a file`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, logger, err := setup()
		if err != nil {
			return err
		}
		defer syncLogger(logger)

		a, err := app.New(cmd.Context(), cfg, logger)
		if err != nil {
			return err
		}
		defer a.Close()

		var body []byte
		switch exportFormat {
		case "json":
			if body, err = a.Exporter.ExportJSON(cmd.Context()); err != nil {
				return err
			}
		case "csv":
			body = []byte(a.Exporter.ExportCSV(cmd.Context()) + "\n")
		default:
			return fmt.Errorf("%q: %w", exportFormat, port.ErrUnknownFormat)
		}

		var out io.Writer = cmd.OutOrStdout()
		if exportOutput != "" && exportOutput != "-" {
			f, err := os.Create(exportOutput)
			if err != nil {
				return err
			}
			defer f.Close()
			out = f
		}
		_, err = out.Write(body)
		return err
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "json", "json or csv")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "-", "output file, - for stdout")
}
