package products

import (
	"math"
	"sort"
	"strings"

	"nutrition-diary-api/internal/nutrients"
)

const (
	SortByName      = "name"
	SortByCalories  = "calories"
	SortByCreatedAt = "createdAt"

	OrderAsc  = "asc"
	OrderDesc = "desc"
)

// Query describes a presentation-layer view over the product list:
// a case-insensitive name filter plus a sort field and direction.
type Query struct {
	Search string
	SortBy string
	Order  string
}

// Filter returns the products matching the query, sorted.
// Unknown SortBy values behave like createdAt; the default order is
// descending, as in the product list screen.
func Filter(products []Product, q Query) []Product {
	result := make([]Product, 0, len(products))

	search := strings.ToLower(strings.TrimSpace(q.Search))
	for _, p := range products {
		if search == "" || strings.Contains(strings.ToLower(p.Name), search) {
			result = append(result, p)
		}
	}

	sort.SliceStable(result, func(i, j int) bool {
		var cmp int
		switch q.SortBy {
		case SortByName:
			cmp = strings.Compare(result[i].Name, result[j].Name)
		case SortByCalories:
			switch {
			case result[i].Calories < result[j].Calories:
				cmp = -1
			case result[i].Calories > result[j].Calories:
				cmp = 1
			}
		default:
			cmp = result[i].CreatedAt.Compare(result[j].CreatedAt)
		}
		if q.Order == OrderAsc {
			return cmp < 0
		}
		return cmp > 0
	})

	return result
}

// CatalogStats summarizes the catalog for the dashboard widgets.
// Summary is the average per-product profile rounded to one decimal.
type CatalogStats struct {
	Count           int               `json:"count"`
	TotalCalories   float64           `json:"totalCalories"`
	AverageCalories int               `json:"averageCalories"`
	Summary         nutrients.Profile `json:"summary"`
}

// Stats computes catalog summary statistics. An empty list yields
// all-zero stats.
func Stats(products []Product) CatalogStats {
	stats := CatalogStats{Count: len(products)}
	if len(products) == 0 {
		return stats
	}

	profiles := make([]nutrients.Profile, len(products))
	for i, p := range products {
		stats.TotalCalories += p.Calories
		profiles[i] = p.Nutrients
	}
	total := nutrients.Sum(profiles)

	count := float64(len(products))
	stats.AverageCalories = int(math.Round(stats.TotalCalories / count))
	stats.Summary = nutrients.Profile{
		Proteins:      math.Round(total.Proteins/count*10) / 10,
		Fats:          math.Round(total.Fats/count*10) / 10,
		Carbohydrates: math.Round(total.Carbohydrates/count*10) / 10,
		Fiber:         math.Round(total.Fiber/count*10) / 10,
	}
	return stats
}
