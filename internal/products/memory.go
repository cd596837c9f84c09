package products

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"nutrition-diary-api/internal/nutrients"
)

// MemoryCatalog keeps products in a mutex-guarded slice, preserving
// insertion order. It honors the same "not found" semantics as the
// remote variant so the two are interchangeable.
type MemoryCatalog struct {
	mu       sync.Mutex
	products []Product
	latency  time.Duration
}

// NewMemoryCatalog creates an empty in-memory catalog.
// latency > 0 simulates a network round trip before every operation.
func NewMemoryCatalog(latency time.Duration) *MemoryCatalog {
	return &MemoryCatalog{latency: latency}
}

// NewSeededMemoryCatalog creates an in-memory catalog preloaded with
// the reference product set.
func NewSeededMemoryCatalog(latency time.Duration) *MemoryCatalog {
	c := NewMemoryCatalog(latency)
	c.products = append(c.products, SeedProducts()...)
	return c
}

// SeedProducts returns the built-in demo products (values per 100 g).
func SeedProducts() []Product {
	return []Product{
		{
			ID:        "1",
			Name:      "Куриная грудка",
			Calories:  165,
			Nutrients: nutrients.Profile{Proteins: 31, Fats: 3.6},
			CreatedAt: time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC),
		},
		{
			ID:        "2",
			Name:      "Рис белый",
			Calories:  130,
			Nutrients: nutrients.Profile{Proteins: 2.7, Fats: 0.3, Carbohydrates: 28, Fiber: 0.4},
			CreatedAt: time.Date(2024, 1, 16, 14, 20, 0, 0, time.UTC),
		},
		{
			ID:        "3",
			Name:      "Брокколи",
			Calories:  34,
			Nutrients: nutrients.Profile{Proteins: 2.8, Fats: 0.4, Carbohydrates: 7, Fiber: 2.6},
			CreatedAt: time.Date(2024, 1, 17, 9, 15, 0, 0, time.UTC),
		},
		{
			ID:        "4",
			Name:      "Авокадо",
			Calories:  160,
			Nutrients: nutrients.Profile{Proteins: 2, Fats: 15, Carbohydrates: 9, Fiber: 7},
			CreatedAt: time.Date(2024, 1, 18, 16, 45, 0, 0, time.UTC),
		},
		{
			ID:        "5",
			Name:      "Овсянка",
			Calories:  389,
			Nutrients: nutrients.Profile{Proteins: 16.9, Fats: 6.9, Carbohydrates: 66.3, Fiber: 10.6},
			CreatedAt: time.Date(2024, 1, 19, 8, 0, 0, 0, time.UTC),
		},
	}
}

func (c *MemoryCatalog) wait(ctx context.Context) error {
	if c.latency <= 0 {
		return nil
	}
	select {
	case <-time.After(c.latency):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// List returns a copy of all products in insertion order.
func (c *MemoryCatalog) List(ctx context.Context) ([]Product, error) {
	if err := c.wait(ctx); err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	result := make([]Product, len(c.products))
	copy(result, c.products)
	return result, nil
}

// GetByID returns the product or (nil, nil) when the id is unknown.
func (c *MemoryCatalog) GetByID(ctx context.Context, id string) (*Product, error) {
	if err := c.wait(ctx); err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for _, p := range c.products {
		if p.ID == id {
			found := p
			return &found, nil
		}
	}
	return nil, nil
}

// Create assigns a fresh id and creation timestamp and appends the product.
func (c *MemoryCatalog) Create(ctx context.Context, data CreateProductData) (Product, error) {
	if err := c.wait(ctx); err != nil {
		return Product{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	product := Product{
		ID:        uuid.NewString(),
		Name:      data.Name,
		Calories:  data.Calories,
		Nutrients: data.Nutrients,
		CreatedAt: time.Now().UTC(),
	}
	c.products = append(c.products, product)
	return product, nil
}

// Update merges the provided fields over the stored record.
// Returns (nil, nil) when the id is unknown.
func (c *MemoryCatalog) Update(ctx context.Context, id string, data UpdateProductData) (*Product, error) {
	if err := c.wait(ctx); err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for i, p := range c.products {
		if p.ID == id {
			updated := data.merge(p)
			c.products[i] = updated
			return &updated, nil
		}
	}
	return nil, nil
}

// Delete removes the product. Returns (false, nil) when the id is unknown.
func (c *MemoryCatalog) Delete(ctx context.Context, id string) (bool, error) {
	if err := c.wait(ctx); err != nil {
		return false, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for i, p := range c.products {
		if p.ID == id {
			c.products = append(c.products[:i], c.products[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}
