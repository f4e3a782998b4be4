package catalog

import "context"

// Provider is the read interface the storefront consumes. The storefront
// only needs list, list-featured, and by-id lookups.
type Provider interface {
	List(ctx context.Context) ([]Product, error)
	ListFeatured(ctx context.Context) ([]Product, error)
	GetByID(ctx context.Context, id string) (*Product, error)
}
