package domain

import "context"

// UnitOfWork runs fn inside a single database transaction.
type UnitOfWork interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}
