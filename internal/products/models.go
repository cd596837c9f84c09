package products

import (
	"fmt"
	"time"

	"nutrition-diary-api/internal/nutrients"
)

// Product is a catalog entry with per-100g nutrition values.
type Product struct {
	ID        string            `json:"id"`
	Name      string            `json:"name"`
	Calories  float64           `json:"calories"`
	Nutrients nutrients.Profile `json:"nutrients"`
	CreatedAt time.Time         `json:"createdAt"`
}

// CreateProductData is the payload for creating a product.
type CreateProductData struct {
	Name      string            `json:"name"`
	Calories  float64           `json:"calories"`
	Nutrients nutrients.Profile `json:"nutrients"`
}

// Validate validates the create payload.
func (d *CreateProductData) Validate() error {
	if d.Name == "" {
		return fmt.Errorf("name is required")
	}
	if d.Calories < 0 {
		return fmt.Errorf("calories must be non-negative")
	}
	if d.Nutrients.Proteins < 0 || d.Nutrients.Fats < 0 ||
		d.Nutrients.Carbohydrates < 0 || d.Nutrients.Fiber < 0 {
		return fmt.Errorf("nutrient values must be non-negative")
	}
	return nil
}

// UpdateProductData is a partial update: nil fields are left untouched
// (shallow merge over the stored record).
type UpdateProductData struct {
	Name      *string            `json:"name,omitempty"`
	Calories  *float64           `json:"calories,omitempty"`
	Nutrients *nutrients.Profile `json:"nutrients,omitempty"`
}

// Validate validates the update payload.
func (d *UpdateProductData) Validate() error {
	if d.Name != nil && *d.Name == "" {
		return fmt.Errorf("name must not be empty")
	}
	if d.Calories != nil && *d.Calories < 0 {
		return fmt.Errorf("calories must be non-negative")
	}
	if d.Nutrients != nil &&
		(d.Nutrients.Proteins < 0 || d.Nutrients.Fats < 0 ||
			d.Nutrients.Carbohydrates < 0 || d.Nutrients.Fiber < 0) {
		return fmt.Errorf("nutrient values must be non-negative")
	}
	return nil
}

// merge applies the partial update to a copy of p.
func (d *UpdateProductData) merge(p Product) Product {
	if d.Name != nil {
		p.Name = *d.Name
	}
	if d.Calories != nil {
		p.Calories = *d.Calories
	}
	if d.Nutrients != nil {
		p.Nutrients = *d.Nutrients
	}
	return p
}
