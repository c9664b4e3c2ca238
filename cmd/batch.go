package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync/atomic"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ArturoR1986/roof-report/internal/export"
	"github.com/ArturoR1986/roof-report/internal/extract"
	"github.com/ArturoR1986/roof-report/internal/notes"
)

var (
	batchDir      string
	batchOut      string
	batchEncoding string
	batchLimit    int
	batchOutDir   string
	batchFormats  string
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Normalize a directory of note files and roll up a summary",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		files, err := notes.ListDir(batchDir)
		if err != nil {
			return err
		}

		orch := newOrchestrator(true)
		rows, err := processBatch(ctx, orch, files, batchLimit, cfg.Batch.MaxConcurrent, batchEncoding, batchOutDir, splitFormats(batchFormats))
		if err != nil {
			return err
		}

		if batchOut == "" || len(rows) == 0 {
			return nil
		}
		return writeBatchSummary(batchOut, rows)
	},
}

func init() {
	batchCmd.Flags().StringVar(&batchDir, "dir", "", "directory of note files (required)")
	batchCmd.Flags().StringVar(&batchOut, "out", "", "summary roll-up path (.xlsx or .csv)")
	batchCmd.Flags().StringVar(&batchEncoding, "encoding", "", "note file encoding (default: UTF-8 with Windows-1252 fallback)")
	batchCmd.Flags().IntVar(&batchLimit, "limit", 0, "max number of files to process (0 = all)")
	batchCmd.Flags().StringVar(&batchOutDir, "out-dir", "", "directory for per-file report exports")
	batchCmd.Flags().StringVar(&batchFormats, "formats", "txt", "per-file export formats when --out-dir is set")
	_ = batchCmd.MarkFlagRequired("dir")
	rootCmd.AddCommand(batchCmd)
}

// processBatch normalizes each note file concurrently. A failed file becomes
// a summary row; it never aborts the rest of the run.
func processBatch(ctx context.Context, orch *extract.Orchestrator, files []string, limit, concurrency int, encoding, outDir string, formats []string) ([]export.SummaryRow, error) {
	if len(files) == 0 {
		zap.L().Info("no note files found")
		return nil, nil
	}

	if limit > 0 && len(files) > limit {
		files = files[:limit]
	}

	zap.L().Info("processing batch",
		zap.Int("files", len(files)),
		zap.Int("concurrency", concurrency),
	)

	// One primer request writes the prompt cache before workers fan out, so
	// every worker reads the cached prompt instead of re-writing it.
	if orch.Ready() && len(files) > 1 {
		if err := orch.WarmCache(ctx); err != nil {
			zap.L().Warn("prompt cache warm-up failed", zap.Error(err))
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	rows := make([]export.SummaryRow, len(files))
	var succeeded, failed atomic.Int64

	for i, path := range files {
		g.Go(func() error {
			log := zap.L().With(zap.String("file", path))

			text, err := notes.ReadFile(path, encoding)
			if err != nil {
				failed.Add(1)
				log.Error("note file unreadable", zap.Error(err))
				rows[i] = export.NewSummaryRow(path, nil, "unreadable: "+err.Error())
				return nil
			}

			res := orch.Normalize(gctx, text)
			if res.Failure != nil {
				failed.Add(1)
				log.Error("normalization failed",
					zap.String("kind", string(res.Failure.Kind)),
					zap.String("message", res.Failure.Message),
				)
				rows[i] = export.NewSummaryRow(path, nil, res.Failure.Error())
				return nil // don't abort the batch on individual failure
			}

			succeeded.Add(1)
			rows[i] = export.NewSummaryRow(path, res.Record, "ok")
			log.Info("normalized",
				zap.String("severity", string(res.Record.Internal.Severity)),
				zap.String("urgency", string(res.Record.Internal.Urgency)),
			)

			if outDir != "" {
				base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
				exportFormats(outDir, base, reportText(res.Record, false), formats)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, eris.Wrap(err, "batch processing")
	}

	zap.L().Info("batch complete",
		zap.Int64("succeeded", succeeded.Load()),
		zap.Int64("failed", failed.Load()),
	)
	return rows, nil
}

// writeBatchSummary writes the roll-up in the format implied by the file
// extension.
func writeBatchSummary(path string, rows []export.SummaryRow) error {
	f, err := os.Create(path)
	if err != nil {
		return eris.Wrapf(err, "create summary %s", path)
	}
	defer f.Close() //nolint:errcheck

	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		err = export.BatchXLSX(rows, f)
	case ".csv":
		err = export.BatchCSV(rows, f)
	default:
		err = eris.Errorf("unsupported summary format %q (use .xlsx or .csv)", filepath.Ext(path))
	}
	if err != nil {
		return err
	}

	zap.L().Info("batch summary written",
		zap.String("path", path),
		zap.Int("rows", len(rows)),
	)
	return nil
}
