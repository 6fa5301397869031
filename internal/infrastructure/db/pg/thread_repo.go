package pg

import (
	"context"
	"database/sql"
	"errors"

	"prnotify/internal/domain"
)

// ThreadRepository is the durable side of the thread cache: one row per
// pull-request URL, written once, never updated or deleted.
type ThreadRepository struct {
	db  *sql.DB
	uow domain.UnitOfWork
}

func NewThreadRepository(db *sql.DB, uow domain.UnitOfWork) *ThreadRepository {
	return &ThreadRepository{db: db, uow: uow}
}

func (r *ThreadRepository) GetByURL(ctx context.Context, pullRequestURL string) (string, bool, error) {
	var ts string
	err := queryRow(ctx, r.db,
		`SELECT thread_ts FROM threads WHERE url = $1`,
		pullRequestURL,
	).Scan(&ts)

	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, storeErr("reading thread record", err)
	}
	return ts, true, nil
}

func (r *ThreadRepository) InsertIfAbsent(ctx context.Context, pullRequestURL, threadTS string) (bool, error) {
	var inserted bool

	err := r.uow.WithinTx(ctx, func(ctx context.Context) error {
		var exists bool
		if err := queryRow(ctx, r.db,
			`SELECT EXISTS(SELECT 1 FROM threads WHERE url = $1)`,
			pullRequestURL,
		).Scan(&exists); err != nil {
			return err
		}
		if exists {
			return nil
		}

		if _, err := exec(ctx, r.db,
			`INSERT INTO threads (url, thread_ts)
			 VALUES ($1, $2)
			 ON CONFLICT (url) DO NOTHING`,
			pullRequestURL, threadTS,
		); err != nil {
			return err
		}
		inserted = true
		return nil
	})

	if err != nil {
		return false, storeErr("recording thread", err)
	}
	return inserted, nil
}

func storeErr(msg string, err error) error {
	return &domain.DomainError{
		Code:    domain.ErrorCodeStore,
		Message: msg,
		Err:     err,
	}
}
