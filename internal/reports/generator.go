package reports

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/jung-kurt/gofpdf"
)

// Generate renders the report in the requested format.
func Generate(report *RangeReport, format Format) ([]byte, error) {
	switch format {
	case FormatPDF:
		return generatePDF(report)
	case FormatCSV:
		return generateCSV(report)
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

// generateCSV generates a CSV report
func generateCSV(report *RangeReport) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{"date", "calories", "proteins_g", "fats_g", "carbohydrates_g", "fiber_g"}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	for _, day := range report.Days {
		row := []string{
			day.Date,
			strconv.Itoa(day.Calories),
			formatGrams(day.Nutrients.Proteins),
			formatGrams(day.Nutrients.Fats),
			formatGrams(day.Nutrients.Carbohydrates),
			formatGrams(day.Nutrients.Fiber),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// generatePDF generates a PDF report with a summary and a per-day table.
// Labels are English: the built-in Arial font has no Cyrillic glyphs.
func generatePDF(report *RangeReport) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetFont("Arial", "", 16)
	pdf.AddPage()

	pdf.Cell(0, 10, "Nutrition report")
	pdf.Ln(8)

	pdf.SetFont("Arial", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Period: %s - %s", report.From, report.To))
	pdf.Ln(12)

	// Summary section
	pdf.SetFont("Arial", "", 14)
	pdf.Cell(0, 8, "Summary")
	pdf.Ln(8)

	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Tracked days: %d of %d", report.Summary.TrackedDays, len(report.Days)))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Total calories: %d kcal", report.Summary.TotalCalories))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Average calories per tracked day: %d kcal", report.Summary.AvgCalories))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Average proteins: %s g", formatGrams(report.Summary.AvgProteins)))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Average fats: %s g", formatGrams(report.Summary.AvgFats)))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Average carbohydrates: %s g", formatGrams(report.Summary.AvgCarbs)))
	pdf.Ln(12)

	// Per-day table
	pdf.SetFont("Arial", "", 14)
	pdf.Cell(0, 8, "Days")
	pdf.Ln(8)

	drawDaysTable(pdf, report.Days)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}

	return buf.Bytes(), nil
}

// drawDaysTable draws one row per calendar day.
func drawDaysTable(pdf *gofpdf.Fpdf, days []DayRow) {
	pdf.SetFont("Arial", "", 8)

	pdf.CellFormat(25, 6, "Date", "1", 0, "C", false, 0, "")
	pdf.CellFormat(25, 6, "Calories", "1", 0, "C", false, 0, "")
	pdf.CellFormat(25, 6, "Proteins", "1", 0, "C", false, 0, "")
	pdf.CellFormat(25, 6, "Fats", "1", 0, "C", false, 0, "")
	pdf.CellFormat(25, 6, "Carbs", "1", 0, "C", false, 0, "")
	pdf.CellFormat(25, 6, "Fiber", "1", 1, "C", false, 0, "")

	for _, day := range days {
		pdf.CellFormat(25, 6, day.Date, "1", 0, "C", false, 0, "")
		pdf.CellFormat(25, 6, strconv.Itoa(day.Calories), "1", 0, "C", false, 0, "")
		pdf.CellFormat(25, 6, formatGrams(day.Nutrients.Proteins), "1", 0, "C", false, 0, "")
		pdf.CellFormat(25, 6, formatGrams(day.Nutrients.Fats), "1", 0, "C", false, 0, "")
		pdf.CellFormat(25, 6, formatGrams(day.Nutrients.Carbohydrates), "1", 0, "C", false, 0, "")
		pdf.CellFormat(25, 6, formatGrams(day.Nutrients.Fiber), "1", 1, "C", false, 0, "")
	}
}

func formatGrams(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}
