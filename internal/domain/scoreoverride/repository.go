package scoreoverride

import "context"

// Repository persists overrides durably. Put is a last-write-wins upsert.
type Repository interface {
	Get(ctx context.Context, key string) (Override, bool, error)
	Put(ctx context.Context, item Override) error
	Remove(ctx context.Context, key string) error
	List(ctx context.Context) ([]Override, error)
}
