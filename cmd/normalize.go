package main

import (
	"github.com/spf13/cobra"
)

var (
	normalizeNotes    string
	normalizeFile     string
	normalizeEncoding string
	normalizeSummary  bool
	normalizeJSON     bool
	normalizeOutDir   string
	normalizeFormats  string
)

var normalizeCmd = &cobra.Command{
	Use:   "normalize",
	Short: "Normalize raw field notes into a service record",
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := readNoteInput(normalizeNotes, normalizeFile, normalizeEncoding)
		if err != nil {
			return err
		}

		orch := newOrchestrator(false)
		res := orch.Normalize(cmd.Context(), raw)
		if res.Failure != nil {
			return failureExit(cmd, res.Failure)
		}

		return emitRecord(cmd, res.Record, normalizeJSON, normalizeSummary, normalizeOutDir, normalizeFormats)
	},
}

func init() {
	normalizeCmd.Flags().StringVar(&normalizeNotes, "notes", "", "raw field notes text")
	normalizeCmd.Flags().StringVar(&normalizeFile, "notes-file", "", "path to a notes file, or - for stdin")
	normalizeCmd.Flags().StringVar(&normalizeEncoding, "encoding", "", "notes file encoding (default: UTF-8 with Windows-1252 fallback)")
	normalizeCmd.Flags().BoolVar(&normalizeSummary, "summary", false, "include the condensed field summary")
	normalizeCmd.Flags().BoolVar(&normalizeJSON, "json", false, "print the record as JSON instead of reports")
	normalizeCmd.Flags().StringVar(&normalizeOutDir, "out-dir", "", "directory for exported report files")
	normalizeCmd.Flags().StringVar(&normalizeFormats, "formats", "txt", "comma-separated export formats: txt,docx,pdf")
	rootCmd.AddCommand(normalizeCmd)
}
