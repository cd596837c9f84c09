package reports

import "nutrition-diary-api/internal/nutrients"

// Format определяет формат отчёта
type Format string

const (
	FormatPDF Format = "pdf"
	FormatCSV Format = "csv"
)

// ParseFormat validates a format string; the empty string means PDF.
func ParseFormat(raw string) (Format, bool) {
	switch Format(raw) {
	case "", FormatPDF:
		return FormatPDF, true
	case FormatCSV:
		return FormatCSV, true
	default:
		return "", false
	}
}

// DayRow is one line of the report: a calendar day with its totals.
type DayRow struct {
	Date      string
	Calories  int
	Nutrients nutrients.Profile
}

// Summary holds averages over the days that actually have entries.
// TrackedDays counts days with at least one calorie logged.
type Summary struct {
	TrackedDays   int
	AvgCalories   int
	AvgProteins   float64
	AvgFats       float64
	AvgCarbs      float64
	TotalCalories int
}

// RangeReport is the assembled report for an inclusive date range.
type RangeReport struct {
	From    string
	To      string
	Days    []DayRow
	Summary Summary
}
