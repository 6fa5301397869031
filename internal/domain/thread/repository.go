package thread

import "context"

// Store is the durable backing for the thread mapping. Inserts are
// insert-if-absent only; records are never updated or deleted.
type Store interface {
	GetByURL(ctx context.Context, pullRequestURL string) (threadTS string, found bool, err error)
	InsertIfAbsent(ctx context.Context, pullRequestURL, threadTS string) (inserted bool, err error)
}
