package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"course-report/internal/report"
)

// Keep header order EXACT: downstream loaders index columns by position.
var summaryHeader = []string{
	"company",
	"courses",
	"total_hours",
}

// WriteCompanySummary writes the aggregated per-company totals as CSV, in
// report order (course count descending).
func WriteCompanySummary(w io.Writer, rows []report.CompanyTotal) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(summaryHeader); err != nil {
		return err
	}
	for _, row := range rows {
		rec := []string{
			row.Company,
			strconv.Itoa(row.Courses),
			strconv.FormatFloat(row.Hours, 'f', -1, 64),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
