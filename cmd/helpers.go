package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/ArturoR1986/roof-report/internal/export"
	"github.com/ArturoR1986/roof-report/internal/extract"
	"github.com/ArturoR1986/roof-report/internal/model"
	"github.com/ArturoR1986/roof-report/internal/notes"
	"github.com/ArturoR1986/roof-report/internal/report"
	"github.com/ArturoR1986/roof-report/internal/store"
	anthropicpkg "github.com/ArturoR1986/roof-report/pkg/anthropic"
)

const exportTitle = "Roof Service Report"

// initStore builds the session store selected by store.driver.
func initStore() (store.Store, error) {
	switch cfg.Store.Driver {
	case "sqlite":
		return store.NewSQLite(cfg.Store.DSN)
	default:
		return store.NewMemory(), nil
	}
}

// newOrchestrator builds the extraction orchestrator. paced adds the
// client-side request limiter batch runs need; single-shot commands skip it.
func newOrchestrator(paced bool) *extract.Orchestrator {
	var client anthropicpkg.Client
	if cfg.Anthropic.Key != "" {
		client = anthropicpkg.NewClient(cfg.Anthropic.Key)
	}

	var limiter *rate.Limiter
	if paced && cfg.Anthropic.RPM > 0 {
		limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(cfg.Anthropic.RPM)), 1)
	}

	return extract.NewOrchestrator(client, cfg.Anthropic.Model, cfg.Anthropic.MaxTokens, cfg.Anthropic.Temperature, limiter)
}

// readNoteInput resolves the raw note text from --notes, a file path, or
// stdin ("-").
func readNoteInput(notesText, notesFile, encoding string) (string, error) {
	if notesText != "" {
		return notesText, nil
	}
	if notesFile == "" {
		return "", eris.New("provide --notes or --notes-file")
	}
	if notesFile == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", eris.Wrap(err, "read stdin")
		}
		return strings.ReplaceAll(string(data), "\r\n", "\n"), nil
	}
	return notes.ReadFile(notesFile, encoding)
}

// reportText renders the full report body shared by the screen and exports:
// internal report, customer report, optional field summary, footer.
func reportText(rec *model.Record, withSummary bool) string {
	var b strings.Builder
	b.WriteString(report.RenderInternal(rec))
	b.WriteString("\n")
	b.WriteString(report.RenderCustomer(rec))
	if withSummary {
		b.WriteString("\n# Field Summary\n\n")
		b.WriteString(report.RenderFieldSummary(rec))
	}
	b.WriteString("\n")
	b.WriteString(report.Footer(time.Now()))
	return b.String()
}

// emitRecord prints the record (reports or JSON) and optionally exports it.
func emitRecord(cmd *cobra.Command, rec *model.Record, asJSON, withSummary bool, outDir, formats string) error {
	text := reportText(rec, withSummary)

	if asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		if err := enc.Encode(rec); err != nil {
			return eris.Wrap(err, "encode record")
		}
	} else {
		fmt.Fprint(cmd.OutOrStdout(), text)
		printClarifyingQuestions(cmd, rec.ClarifyingQuestions)
	}

	if outDir != "" {
		exportFormats(outDir, "report", text, splitFormats(formats))
	}
	return nil
}

func printClarifyingQuestions(cmd *cobra.Command, questions []string) {
	if len(questions) == 0 {
		return
	}
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "\nClarifying questions for the technician:")
	for _, q := range questions {
		fmt.Fprintln(out, "- "+q)
	}
}

// failureExit prints the classification and the manual-path hint, then
// returns the failure so the process exits non-zero without usage output or
// a stack trace.
func failureExit(cmd *cobra.Command, f *extract.Failure) error {
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	fmt.Fprintln(cmd.ErrOrStderr(), f.Message)
	fmt.Fprintln(cmd.ErrOrStderr(), "You can still produce a report by hand: roof-report manual --file entry.yaml")
	return f
}

func splitFormats(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.ToLower(strings.TrimSpace(p))
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// exportFormats writes the report in each requested format under outDir.
// A failed format is logged and skipped; the rest still get written.
func exportFormats(outDir, base, text string, formats []string) {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		zap.L().Warn("export: create output dir failed",
			zap.String("dir", outDir),
			zap.Error(err),
		)
		return
	}

	for _, format := range formats {
		path := filepath.Join(outDir, base+"."+format)

		var (
			data []byte
			err  error
		)
		switch format {
		case "txt":
			data = export.PlainText(text)
		case "docx":
			data, err = export.OfficeDocument(exportTitle, text)
		case "pdf":
			data, err = export.PDF(exportTitle, text)
		default:
			zap.L().Warn("export: unknown format", zap.String("format", format))
			continue
		}
		if err == nil {
			err = os.WriteFile(path, data, 0o644)
		}
		if err != nil {
			zap.L().Warn("export: format failed",
				zap.String("format", format),
				zap.Error(err),
			)
			continue
		}

		zap.L().Info("export: wrote file", zap.String("path", path))
	}
}
