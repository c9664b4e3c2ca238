package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ArturoR1986/roof-report/internal/config"
	"github.com/ArturoR1986/roof-report/internal/extract"
	"github.com/ArturoR1986/roof-report/internal/manual"
	"github.com/ArturoR1986/roof-report/internal/model"
	"github.com/ArturoR1986/roof-report/internal/store"
)

// setTestConfig swaps the package-level config for one test.
func setTestConfig(t *testing.T, c *config.Config) {
	t.Helper()

	prev := cfg
	cfg = c
	t.Cleanup(func() { cfg = prev })
}

func sampleRecord(t *testing.T) *model.Record {
	t.Helper()

	rec, err := manual.BuildRecord(manual.Entry{
		ServiceSummary:     "Leak investigation at bay 3",
		RoofSystem:         "TPO",
		PrimaryIssue:       "Active leak",
		Location:           "Northeast corner",
		ActiveLeakReported: true,
		Observations:       "- open seam at curb",
		NextSteps:          "- open flashing and inspect",
	})
	require.NoError(t, err)
	return rec
}

func TestSplitFormats(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"txt", []string{"txt"}},
		{"txt,docx,pdf", []string{"txt", "docx", "pdf"}},
		{" TXT , Docx ", []string{"txt", "docx"}},
		{"txt,,pdf", []string{"txt", "pdf"}},
		{"", []string{}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, splitFormats(tt.in), "input %q", tt.in)
	}
}

func TestReadNoteInput_InlineTakesPrecedence(t *testing.T) {
	got, err := readNoteInput("ponding at drain", "ignored.txt", "")
	require.NoError(t, err)
	assert.Equal(t, "ponding at drain", got)
}

func TestReadNoteInput_RequiresSomeInput(t *testing.T) {
	_, err := readNoteInput("", "", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "provide --notes or --notes-file")
}

func TestReadNoteInput_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "note.txt")
	require.NoError(t, os.WriteFile(path, []byte("line one\r\nline two"), 0o644))

	got, err := readNoteInput("", path, "")
	require.NoError(t, err)
	assert.Equal(t, "line one\nline two", got)
}

func TestReportText_Sections(t *testing.T) {
	rec := sampleRecord(t)

	text := reportText(rec, false)
	assert.Contains(t, text, "# Internal Service Report")
	assert.Contains(t, text, "# Customer Report")
	assert.Contains(t, text, "Generated on:")
	assert.NotContains(t, text, "# Field Summary")

	withSummary := reportText(rec, true)
	assert.Contains(t, withSummary, "# Field Summary")
	assert.Contains(t, withSummary, "### 1. Issue Observed")
}

func TestEmitRecord_JSON(t *testing.T) {
	rec := sampleRecord(t)

	cmd := &cobra.Command{}
	var out bytes.Buffer
	cmd.SetOut(&out)

	require.NoError(t, emitRecord(cmd, rec, true, false, "", ""))
	assert.Contains(t, out.String(), `"internal_report"`)
	assert.Contains(t, out.String(), `"Leak investigation at bay 3"`)
}

func TestEmitRecord_TextWithQuestions(t *testing.T) {
	rec := sampleRecord(t)
	rec.ClarifyingQuestions = []string{"When was the leak first noticed?"}

	cmd := &cobra.Command{}
	var out bytes.Buffer
	cmd.SetOut(&out)

	require.NoError(t, emitRecord(cmd, rec, false, false, "", ""))
	assert.Contains(t, out.String(), "# Internal Service Report")
	assert.Contains(t, out.String(), "Clarifying questions for the technician:")
	assert.Contains(t, out.String(), "- When was the leak first noticed?")
}

func TestExportFormats_WritesRequestedOnly(t *testing.T) {
	dir := t.TempDir()

	exportFormats(dir, "report", "# Internal Service Report\n\nbody\n", []string{"txt", "hologram"})

	data, err := os.ReadFile(filepath.Join(dir, "report.txt"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "Internal Service Report")

	_, err = os.Stat(filepath.Join(dir, "report.hologram"))
	assert.True(t, os.IsNotExist(err))
}

func TestExportFormats_AllFormats(t *testing.T) {
	dir := t.TempDir()
	rec := sampleRecord(t)

	exportFormats(dir, "report", reportText(rec, false), []string{"txt", "docx", "pdf"})

	for _, name := range []string{"report.txt", "report.docx", "report.pdf"} {
		info, err := os.Stat(filepath.Join(dir, name))
		require.NoError(t, err, name)
		assert.Greater(t, info.Size(), int64(0), name)
	}
}

func TestInitStore_Memory(t *testing.T) {
	setTestConfig(t, &config.Config{Store: config.StoreConfig{Driver: "memory"}})

	st, err := initStore()
	require.NoError(t, err)
	defer st.Close()

	_, ok := st.(*store.MemoryStore)
	assert.True(t, ok)
}

func TestInitStore_SQLite(t *testing.T) {
	setTestConfig(t, &config.Config{Store: config.StoreConfig{
		Driver: "sqlite",
		DSN:    filepath.Join(t.TempDir(), "sessions.db"),
	}})

	st, err := initStore()
	require.NoError(t, err)
	defer st.Close()

	_, ok := st.(*store.SQLiteStore)
	assert.True(t, ok)
}

func TestNewOrchestrator_NoKey(t *testing.T) {
	setTestConfig(t, &config.Config{Anthropic: config.AnthropicConfig{
		Model:     "claude-sonnet-4-5-20250929",
		MaxTokens: 2048,
	}})

	assert.False(t, newOrchestrator(false).Ready())
}

func TestNewOrchestrator_WithKey(t *testing.T) {
	setTestConfig(t, &config.Config{Anthropic: config.AnthropicConfig{
		Key:       "sk-test",
		Model:     "claude-sonnet-4-5-20250929",
		MaxTokens: 2048,
		RPM:       30,
	}})

	assert.True(t, newOrchestrator(true).Ready())
}

func TestFailureExit(t *testing.T) {
	cmd := &cobra.Command{}
	var errOut bytes.Buffer
	cmd.SetErr(&errOut)

	f := &extract.Failure{Kind: extract.FailureBadPayload, Message: "AI returned invalid output."}
	err := failureExit(cmd, f)

	assert.Equal(t, f, err)
	assert.True(t, cmd.SilenceUsage)
	assert.True(t, cmd.SilenceErrors)
	assert.Contains(t, errOut.String(), "AI returned invalid output.")
	assert.Contains(t, errOut.String(), "roof-report manual --file")
}

func TestReportTextEndsWithFooterNote(t *testing.T) {
	text := reportText(sampleRecord(t), false)
	assert.True(t, strings.HasSuffix(text, "qualified roofing professional.\n"), "got tail %q", text[len(text)-60:])
}
