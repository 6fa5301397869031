package identity

import "context"

// Directory is the source-host user directory. LookupEmail returns the
// authoritative address for a username, or domain.ErrNotFound.
type Directory interface {
	LookupEmail(ctx context.Context, username string) (string, error)
}

type ChatUser struct {
	ID string
}

// ChatDirectory maps an email address to a chat-system identity, or
// domain.ErrNotFound when the address has no account.
type ChatDirectory interface {
	LookupByEmail(ctx context.Context, email string) (ChatUser, error)
}
