package report

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strings"

	"course-report/internal/domain"
)

// CompanyTotal is one row of the rendered report: how many completed courses
// a company has and the hours they add up to.
type CompanyTotal struct {
	Company string
	Courses int
	Hours   float64
}

// Summarize folds the course records into one CompanyTotal per distinct
// company and returns them sorted by course count descending. Ties are broken
// by company name ascending so the report is deterministic.
func Summarize(records []domain.CourseRecord) []CompanyTotal {
	byCompany := map[string]*CompanyTotal{}
	for _, rec := range records {
		ct, ok := byCompany[rec.Company]
		if !ok {
			ct = &CompanyTotal{Company: rec.Company}
			byCompany[rec.Company] = ct
		}
		ct.Courses++
		ct.Hours += rec.DurationHours
	}

	rows := make([]CompanyTotal, 0, len(byCompany))
	for _, ct := range byCompany {
		rows = append(rows, *ct)
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Courses != rows[j].Courses {
			return rows[i].Courses > rows[j].Courses
		}
		return rows[i].Company < rows[j].Company
	})
	return rows
}

// Totals returns the grand totals over all rows, as printed on the TOTAL line.
func Totals(rows []CompanyTotal) (courses int, hours float64) {
	for _, row := range rows {
		courses += row.Courses
		hours += row.Hours
	}
	return courses, hours
}

var banner = strings.Repeat("=", 70)

// Render writes the fixed-format summary report. Keep the layout EXACT: the
// output is diffed between runs by downstream tooling.
func Render(w io.Writer, source string, rows []CompanyTotal) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "Reading file: %s\n\n", source)
	fmt.Fprintln(bw, banner)
	fmt.Fprintln(bw, "COURSES AND HOURS BY COMPANY")
	fmt.Fprintln(bw, banner)
	fmt.Fprintln(bw)

	for _, row := range rows {
		fmt.Fprintf(bw, "%-20s: %4d courses  |  %8.1f hours\n", row.Company, row.Courses, row.Hours)
	}

	totalCourses, totalHours := Totals(rows)

	fmt.Fprintln(bw)
	fmt.Fprintln(bw, banner)
	fmt.Fprintf(bw, "TOTAL: %d courses  |  %.1f hours\n", totalCourses, totalHours)
	fmt.Fprintln(bw, banner)
	fmt.Fprintln(bw)

	return bw.Flush()
}
