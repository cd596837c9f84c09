package reports

import (
	"errors"
	"math"
	"time"

	"nutrition-diary-api/internal/meals"
)

var (
	ErrInvalidRange = errors.New("from must not be after to")
	ErrRangeTooLong = errors.New("date range exceeds the maximum report length")
)

// DaySource supplies daily records for a date range. *meals.Ledger
// satisfies it; unwritten days come back as empty records.
type DaySource interface {
	MealsByDateRange(start, end time.Time) []meals.DailyMeals
}

// Service собирает отчёты по дневнику питания
type Service struct {
	source       DaySource
	maxRangeDays int
}

// NewService создаёт новый сервис отчётов
func NewService(source DaySource, maxRangeDays int) *Service {
	return &Service{source: source, maxRangeDays: maxRangeDays}
}

// BuildRange assembles the report rows and summary for [from, to].
func (s *Service) BuildRange(from, to time.Time) (*RangeReport, error) {
	fromDay := from.UTC().Truncate(24 * time.Hour)
	toDay := to.UTC().Truncate(24 * time.Hour)

	if fromDay.After(toDay) {
		return nil, ErrInvalidRange
	}
	days := int(toDay.Sub(fromDay).Hours()/24) + 1
	if s.maxRangeDays > 0 && days > s.maxRangeDays {
		return nil, ErrRangeTooLong
	}

	records := s.source.MealsByDateRange(from, to)

	report := &RangeReport{
		From: fromDay.Format("2006-01-02"),
		To:   toDay.Format("2006-01-02"),
		Days: make([]DayRow, len(records)),
	}

	var sumProteins, sumFats, sumCarbs float64
	for i, day := range records {
		report.Days[i] = DayRow{
			Date:      day.Date.UTC().Format("2006-01-02"),
			Calories:  day.TotalCalories,
			Nutrients: day.TotalNutrients,
		}

		if day.TotalCalories > 0 {
			report.Summary.TrackedDays++
			report.Summary.TotalCalories += day.TotalCalories
			sumProteins += day.TotalNutrients.Proteins
			sumFats += day.TotalNutrients.Fats
			sumCarbs += day.TotalNutrients.Carbohydrates
		}
	}

	// Averages only over days that have entries, so empty padding days
	// don't dilute the numbers.
	if n := report.Summary.TrackedDays; n > 0 {
		report.Summary.AvgCalories = int(math.Round(float64(report.Summary.TotalCalories) / float64(n)))
		report.Summary.AvgProteins = roundTenth(sumProteins / float64(n))
		report.Summary.AvgFats = roundTenth(sumFats / float64(n))
		report.Summary.AvgCarbs = roundTenth(sumCarbs / float64(n))
	}

	return report, nil
}

func roundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}
