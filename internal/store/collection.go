package store

import "context"

// Collection is the operation surface shared by live and fallback mode.
// Find returns documents in stable order (insertion order in fallback
// mode, natural order on the live store); FindSorted orders descending
// by a time field, with limit 0 meaning no limit.
type Collection[T any] interface {
	Find(ctx context.Context, filter Filter) ([]T, error)
	FindSorted(ctx context.Context, filter Filter, timeField string, limit int64) ([]T, error)
	FindOne(ctx context.Context, filter Filter) (T, error)
	Insert(ctx context.Context, doc T) error
	ReplaceOne(ctx context.Context, filter Filter, doc T) (bool, error)
	DeleteOne(ctx context.Context, filter Filter) (bool, error)
	DeleteMany(ctx context.Context, filter Filter) (int64, error)
	Count(ctx context.Context, filter Filter) (int64, error)
}

// ByID is the common lookup filter for documents keyed by their _id.
func ByID(id string) Filter {
	return Filter{Eq: map[string]string{"_id": id}}
}
