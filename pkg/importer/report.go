package importer

import (
	"fmt"
	"sort"
	"strings"

	"github.com/agentstation/utc"

	"github.com/lucheestiy/bizcatalog/pkg/builder"
	"github.com/lucheestiy/bizcatalog/pkg/dedupe"
	"github.com/lucheestiy/bizcatalog/pkg/taxonomy"
)

// Report summarizes an import run.
type Report struct {
	RunID  string `json:"run_id" yaml:"run_id"`
	Source string `json:"source" yaml:"source"`

	ExistingKept      int            `json:"existing_kept" yaml:"existing_kept"`
	Imported          int            `json:"imported" yaml:"imported"`
	ProcessedDoneRows int            `json:"processed_done_rows" yaml:"processed_done_rows"`
	Duplicates        map[string]int `json:"duplicates" yaml:"duplicates"`
	Skipped           map[string]int `json:"skipped" yaml:"skipped"`
	OutputJSONL       string         `json:"output_jsonl" yaml:"output_jsonl"`

	CombinedTotal   int            `json:"combined_total" yaml:"combined_total"`
	DroppedPrevious int            `json:"dropped_previous" yaml:"dropped_previous"`
	MalformedLines  int            `json:"malformed_lines" yaml:"malformed_lines"`
	Rubrics         map[string]int `json:"rubrics" yaml:"rubrics"`
	BackupPath      string         `json:"backup_path,omitempty" yaml:"backup_path,omitempty"`
	DryRun          bool           `json:"dry_run" yaml:"dry_run"`
	Written         bool           `json:"written" yaml:"written"`

	StartedAt  utc.Time `json:"started_at" yaml:"started_at"`
	FinishedAt utc.Time `json:"finished_at" yaml:"finished_at"`
	DurationMs int64    `json:"duration_ms" yaml:"duration_ms"`
}

func newReport(runID, source string, startedAt utc.Time) *Report {
	return &Report{
		RunID:      runID,
		Source:     source,
		Duplicates: make(map[string]int),
		Skipped:    make(map[string]int),
		Rubrics:    make(map[string]int),
		StartedAt:  startedAt,
	}
}

func (r *Report) addDuplicate(reason dedupe.Reason) {
	r.Duplicates[string(reason)]++
}

func (r *Report) addSkipped(reason builder.SkipReason) {
	r.Skipped[string(reason)]++
}

func (r *Report) setRubrics(counts map[taxonomy.Via]int) {
	for via, n := range counts {
		r.Rubrics[string(via)] = n
	}
}

// Finalize records the finish time and the combined catalog size.
func (r *Report) Finalize(finishedAt utc.Time) {
	r.FinishedAt = finishedAt
	r.DurationMs = finishedAt.Time.Sub(r.StartedAt.Time).Milliseconds()
	r.CombinedTotal = r.ExistingKept + r.Imported
}

// Summary returns a one-line human-readable summary.
func (r *Report) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "kept %d existing, imported %d of %d processed rows", r.ExistingKept, r.Imported, r.ProcessedDoneRows)
	if len(r.Duplicates) > 0 {
		fmt.Fprintf(&b, "; duplicates %s", formatCounts(r.Duplicates))
	}
	if len(r.Skipped) > 0 {
		fmt.Fprintf(&b, "; skipped %s", formatCounts(r.Skipped))
	}
	fmt.Fprintf(&b, "; total %d", r.CombinedTotal)
	if r.DryRun {
		b.WriteString(" (dry run)")
	}
	return b.String()
}

func formatCounts(m map[string]int) string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%d", k, m[k]))
	}
	return strings.Join(parts, " ")
}
