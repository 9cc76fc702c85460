package division

import "context"

// Repository describes division lookups needed by use cases.
type Repository interface {
	List(ctx context.Context) ([]Division, error)
	GetByName(ctx context.Context, name string) (Division, bool, error)
}
