package main

import (
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/ArturoR1986/roof-report/internal/schema"
)

var (
	renderRecordPath string
	renderSummary    bool
	renderJSON       bool
	renderOutDir     string
	renderFormats    string
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render reports from a saved record JSON",
	Long:  "Re-validates a saved record and renders it. No extraction and no re-derivation happen here: severity and urgency in the file are reviewer-owned and survive the round-trip.",
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(renderRecordPath)
		if err != nil {
			return eris.Wrapf(err, "read record %s", renderRecordPath)
		}

		parsed, err := schema.ParseRecordJSON(string(data))
		if err != nil {
			return err
		}
		rec, err := schema.Validate(parsed)
		if err != nil {
			return err
		}

		return emitRecord(cmd, rec, renderJSON, renderSummary, renderOutDir, renderFormats)
	},
}

func init() {
	renderCmd.Flags().StringVar(&renderRecordPath, "record", "", "path to a record JSON file (required)")
	renderCmd.Flags().BoolVar(&renderSummary, "summary", false, "include the condensed field summary")
	renderCmd.Flags().BoolVar(&renderJSON, "json", false, "print the normalized record as JSON instead of reports")
	renderCmd.Flags().StringVar(&renderOutDir, "out-dir", "", "directory for exported report files")
	renderCmd.Flags().StringVar(&renderFormats, "formats", "txt", "comma-separated export formats: txt,docx,pdf")
	_ = renderCmd.MarkFlagRequired("record")
	rootCmd.AddCommand(renderCmd)
}
