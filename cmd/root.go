package main

import (
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ArturoR1986/roof-report/internal/config"
)

// version is stamped by the release build via -ldflags.
var version = "dev"

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:     "roof-report",
	Version: version,
	Short:   "Roofing field notes to polished service reports",
	Long: "Normalizes rough technician field notes into a structured service record,\n" +
		"derives severity and urgency from fixed rules, and renders internal and\n" +
		"customer-facing reports.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return eris.Wrap(err, "load config")
		}
		cfg = c
		return config.InitLogger(cfg.Log)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
