package output

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/lucheestiy/bizcatalog/internal/cmd/emoji"
	"github.com/lucheestiy/bizcatalog/pkg/catalogs"
	"github.com/lucheestiy/bizcatalog/pkg/constants"
	"github.com/lucheestiy/bizcatalog/pkg/importer"
)

// ReportToTableData converts an import report to a property/value table.
// Wide output adds the run bookkeeping fields.
func ReportToTableData(r *importer.Report, wide bool) Data {
	status := emoji.Success + " written"
	switch {
	case r.DryRun:
		status = emoji.Info + " dry run, nothing written"
	case !r.Written:
		status = emoji.Error + " not written"
	}

	rows := [][]string{
		{"Status", status},
		{"Source", r.Source},
		{"Existing kept", strconv.Itoa(r.ExistingKept)},
		{"Imported", strconv.Itoa(r.Imported)},
		{"Processed rows", strconv.Itoa(r.ProcessedDoneRows)},
		{"Duplicates", countsCell(r.Duplicates)},
		{"Skipped", countsCell(r.Skipped)},
		{"Combined total", strconv.Itoa(r.CombinedTotal)},
		{"Output", r.OutputJSONL},
	}
	if r.BackupPath != "" {
		rows = append(rows, []string{"Backup", r.BackupPath})
	}
	if r.MalformedLines > 0 {
		rows = append(rows, []string{"Malformed lines", emoji.Warning + " " + strconv.Itoa(r.MalformedLines)})
	}
	if wide {
		rows = append(rows,
			[]string{"Run ID", r.RunID},
			[]string{"Dropped previous", strconv.Itoa(r.DroppedPrevious)},
			[]string{"Rubrics", countsCell(r.Rubrics)},
			[]string{"Started", r.StartedAt.UTC().Format(constants.TimeFormatReport)},
			[]string{"Duration", fmt.Sprintf("%dms", r.DurationMs)},
		)
	}

	return Data{
		Headers:         []string{"Property", "Value"},
		Rows:            rows,
		ColumnAlignment: []Align{AlignLeft, AlignLeft},
	}
}

// StatsToTableData converts catalog stats to a table of counters followed
// by the largest categories. limit caps the category rows; 0 shows all.
func StatsToTableData(st *catalogs.Stats, limit int) Data {
	rows := [][]string{
		{"companies", "", strconv.Itoa(st.Total)},
	}
	for _, src := range sortedKeys(st.BySource) {
		rows = append(rows, []string{"source", src, strconv.Itoa(st.BySource[src])})
	}
	rows = append(rows,
		[]string{"categories", "", strconv.Itoa(st.Categories)},
		[]string{"rubrics", "", strconv.Itoa(st.Rubrics)},
		[]string{"with phones", "", strconv.Itoa(st.WithPhones)},
		[]string{"with emails", "", strconv.Itoa(st.WithEmails)},
		[]string{"with websites", "", strconv.Itoa(st.WithWebsites)},
		[]string{"with city", "", strconv.Itoa(st.WithCity)},
	)

	top := st.TopCategories
	if limit > 0 && len(top) > limit {
		top = top[:limit]
	}
	for _, cc := range top {
		rows = append(rows, []string{"category", cc.Name + " (" + cc.Slug + ")", strconv.Itoa(cc.Companies)})
	}

	return Data{
		Headers:         []string{"Metric", "Key", "Count"},
		Rows:            rows,
		ColumnAlignment: []Align{AlignLeft, AlignLeft, AlignRight},
	}
}

// ViolationsToTableData converts validation violations to table format.
// Details are truncated unless wide is set.
func ViolationsToTableData(violations []catalogs.Violation, wide bool) Data {
	rows := make([][]string, 0, len(violations))
	for _, v := range violations {
		detail := v.Detail
		if !wide && len([]rune(detail)) > 80 {
			detail = string([]rune(detail)[:77]) + "..."
		}
		rows = append(rows, []string{strconv.Itoa(v.Line), v.SourceID, v.Rule, detail})
	}
	return Data{
		Headers:         []string{"Line", "Source ID", "Rule", "Detail"},
		Rows:            rows,
		ColumnAlignment: []Align{AlignRight, AlignLeft, AlignLeft, AlignLeft},
	}
}

func countsCell(m map[string]int) string {
	if len(m) == 0 {
		return "-"
	}
	keys := sortedKeys(m)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+"="+strconv.Itoa(m[k]))
	}
	return strings.Join(parts, " ")
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
