package products

import "context"

// Catalog is the contract every backing variant (in-memory or remote)
// implements. "Not found" is a valid result, never an error:
// GetByID and Update return (nil, nil), Delete returns (false, nil).
// Returned errors are infrastructure failures only.
type Catalog interface {
	List(ctx context.Context) ([]Product, error)
	GetByID(ctx context.Context, id string) (*Product, error)
	Create(ctx context.Context, data CreateProductData) (Product, error)
	Update(ctx context.Context, id string, data UpdateProductData) (*Product, error)
	Delete(ctx context.Context, id string) (bool, error)
}
