package products

import (
	"context"
	"log"
	"sync"
)

// Store is the stateful product collection the rest of the application
// works with. It caches the catalog's product list, exposes boolean
// mutation results and keeps process-wide loading/error flags as a side
// channel: a failed operation returns false and leaves a readable
// message in Err until ClearError is called.
//
// The store is an explicit context object owned by the composition
// root; there are no package-level singletons.
type Store struct {
	catalog Catalog

	mu        sync.Mutex
	products  []Product
	loading   bool
	lastError string
}

// NewStore creates a store over the given catalog variant.
func NewStore(catalog Catalog) *Store {
	return &Store{catalog: catalog}
}

// Fetch loads the full product list from the catalog into the cache.
func (s *Store) Fetch(ctx context.Context) bool {
	s.begin()

	list, err := s.catalog.List(ctx)
	if err != nil {
		log.Printf("products: fetch failed: %v", err)
		s.finish("Ошибка при загрузке продуктов")
		return false
	}

	s.mu.Lock()
	s.products = list
	s.mu.Unlock()
	s.finish("")
	return true
}

// Initialize fetches the product list once; subsequent calls are no-ops
// while the cache is non-empty.
func (s *Store) Initialize(ctx context.Context) bool {
	s.mu.Lock()
	empty := len(s.products) == 0
	s.mu.Unlock()

	if !empty {
		return true
	}
	return s.Fetch(ctx)
}

// Add creates a product in the catalog and appends it to the cache.
func (s *Store) Add(ctx context.Context, data CreateProductData) bool {
	s.begin()

	product, err := s.catalog.Create(ctx, data)
	if err != nil {
		log.Printf("products: create failed: %v", err)
		s.finish("Ошибка при создании продукта")
		return false
	}

	s.mu.Lock()
	s.products = append(s.products, product)
	s.mu.Unlock()
	s.finish("")
	return true
}

// Remove deletes a product. Returns false both for an unknown id and
// for an infrastructure failure; only the latter records an error.
func (s *Store) Remove(ctx context.Context, id string) bool {
	s.begin()

	deleted, err := s.catalog.Delete(ctx, id)
	if err != nil {
		log.Printf("products: delete failed: %v", err)
		s.finish("Ошибка при удалении продукта")
		return false
	}

	if deleted {
		s.mu.Lock()
		for i, p := range s.products {
			if p.ID == id {
				s.products = append(s.products[:i], s.products[i+1:]...)
				break
			}
		}
		s.mu.Unlock()
	}
	s.finish("")
	return deleted
}

// Update applies a partial update and refreshes the cached record.
func (s *Store) Update(ctx context.Context, id string, data UpdateProductData) bool {
	s.begin()

	updated, err := s.catalog.Update(ctx, id, data)
	if err != nil {
		log.Printf("products: update failed: %v", err)
		s.finish("Ошибка при обновлении продукта")
		return false
	}
	if updated == nil {
		s.finish("")
		return false
	}

	s.mu.Lock()
	replaced := false
	for i, p := range s.products {
		if p.ID == id {
			s.products[i] = *updated
			replaced = true
			break
		}
	}
	if !replaced {
		// Cold cache: keep the refreshed record available locally, the
		// same way Add appends without a full fetch.
		s.products = append(s.products, *updated)
	}
	s.mu.Unlock()
	s.finish("")
	return true
}

// cached returns a copy of the cached record, or nil when absent.
func (s *Store) cached(id string) *Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.products {
		if p.ID == id {
			found := p
			return &found
		}
	}
	return nil
}

// GetByID resolves a product, consulting the local cache first to avoid
// a redundant round trip. (nil, nil) means the product does not exist;
// a non-nil error is an infrastructure failure (also recorded in Err).
func (s *Store) GetByID(ctx context.Context, id string) (*Product, error) {
	if p := s.cached(id); p != nil {
		return p, nil
	}

	s.begin()
	product, err := s.catalog.GetByID(ctx, id)
	if err != nil {
		log.Printf("products: get %s failed: %v", id, err)
		s.finish("Ошибка при загрузке продукта")
		return nil, err
	}
	s.finish("")
	return product, nil
}

// Products returns a copy of the cached product list.
func (s *Store) Products() []Product {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make([]Product, len(s.products))
	copy(result, s.products)
	return result
}

// Count returns the number of cached products.
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.products)
}

// Loading reports whether an operation is in flight. Overlapping calls
// share the flag; the last writer wins.
func (s *Store) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Err returns the message recorded by the last failed operation, or ""
// after a success or ClearError.
func (s *Store) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastError
}

// ClearError resets the error message.
func (s *Store) ClearError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastError = ""
}

func (s *Store) begin() {
	s.mu.Lock()
	s.loading = true
	s.lastError = ""
	s.mu.Unlock()
}

func (s *Store) finish(errMsg string) {
	s.mu.Lock()
	s.loading = false
	s.lastError = errMsg
	s.mu.Unlock()
}
