package main

import (
	"github.com/spf13/cobra"

	"github.com/ArturoR1986/roof-report/internal/manual"
)

var (
	manualFile    string
	manualEntry   manual.Entry
	manualSummary bool
	manualJSON    bool
	manualOutDir  string
	manualFormats string
)

var manualCmd = &cobra.Command{
	Use:   "manual",
	Short: "Build a service record from typed field values",
	Long:  "Builds a record without the AI extractor: load a prepared YAML entry with --file and/or set individual fields with flags. Flags override file values. Severity and urgency are always derived, never typed in.",
	RunE: func(cmd *cobra.Command, args []string) error {
		entry := manualEntry
		if manualFile != "" {
			loaded, err := manual.LoadEntry(manualFile)
			if err != nil {
				return err
			}
			applyEntryFlags(cmd, &loaded)
			entry = loaded
		}

		rec, err := manual.BuildRecord(entry)
		if err != nil {
			return err
		}

		return emitRecord(cmd, rec, manualJSON, manualSummary, manualOutDir, manualFormats)
	},
}

// applyEntryFlags overlays explicitly set field flags onto a loaded entry.
func applyEntryFlags(cmd *cobra.Command, entry *manual.Entry) {
	flags := cmd.Flags()
	if flags.Changed("service-summary") {
		entry.ServiceSummary = manualEntry.ServiceSummary
	}
	if flags.Changed("roof-system") {
		entry.RoofSystem = manualEntry.RoofSystem
	}
	if flags.Changed("primary-issue") {
		entry.PrimaryIssue = manualEntry.PrimaryIssue
	}
	if flags.Changed("location") {
		entry.Location = manualEntry.Location
	}
	if flags.Changed("active-leak") {
		entry.ActiveLeakReported = manualEntry.ActiveLeakReported
	}
	if flags.Changed("observations") {
		entry.Observations = manualEntry.Observations
	}
	if flags.Changed("site-conditions") {
		entry.SiteConditions = manualEntry.SiteConditions
	}
	if flags.Changed("concerns") {
		entry.PotentialConcerns = manualEntry.PotentialConcerns
	}
	if flags.Changed("next-steps") {
		entry.NextSteps = manualEntry.NextSteps
	}
}

func init() {
	manualCmd.Flags().StringVar(&manualFile, "file", "", "path to a prepared YAML entry form")
	manualCmd.Flags().StringVar(&manualEntry.ServiceSummary, "service-summary", "", "one-paragraph summary of the visit")
	manualCmd.Flags().StringVar(&manualEntry.RoofSystem, "roof-system", "", "roof system (TPO, EPDM, ...)")
	manualCmd.Flags().StringVar(&manualEntry.PrimaryIssue, "primary-issue", "", "primary issue observed")
	manualCmd.Flags().StringVar(&manualEntry.Location, "location", "", "where on the roof")
	manualCmd.Flags().BoolVar(&manualEntry.ActiveLeakReported, "active-leak", false, "an active leak was reported or observed")
	manualCmd.Flags().StringVar(&manualEntry.Observations, "observations", "", "observations, one per line")
	manualCmd.Flags().StringVar(&manualEntry.SiteConditions, "site-conditions", "", "installation/site conditions, one per line")
	manualCmd.Flags().StringVar(&manualEntry.PotentialConcerns, "concerns", "", "potential concerns, one per line")
	manualCmd.Flags().StringVar(&manualEntry.NextSteps, "next-steps", "", "recommended next steps, one per line")
	manualCmd.Flags().BoolVar(&manualSummary, "summary", false, "include the condensed field summary")
	manualCmd.Flags().BoolVar(&manualJSON, "json", false, "print the record as JSON instead of reports")
	manualCmd.Flags().StringVar(&manualOutDir, "out-dir", "", "directory for exported report files")
	manualCmd.Flags().StringVar(&manualFormats, "formats", "txt", "comma-separated export formats: txt,docx,pdf")
	rootCmd.AddCommand(manualCmd)
}
