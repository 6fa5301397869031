package identity

import (
	"context"

	"go.uber.org/zap"

	"prnotify/internal/domain"
	"prnotify/internal/domain/event"
)

type Service interface {
	Resolve(ctx context.Context, ev event.Event) (event.Event, *ChatUser, error)
}

type service struct {
	directory Directory
	chat      ChatDirectory
	log       *zap.Logger
}

func NewService(directory Directory, chat ChatDirectory, log *zap.Logger) Service {
	return &service{
		directory: directory,
		chat:      chat,
		log:       log,
	}
}

// Resolve replaces anonymized actor emails with the directory's authoritative
// addresses and, for the interactive action kinds, attaches the addressee's
// chat identity. Directory failure is fatal for the event; a chat-identity
// miss degrades to a nil ChatUser and the renderer falls back to plain text.
func (s *service) Resolve(ctx context.Context, ev event.Event) (event.Event, *ChatUser, error) {
	var err error

	ev.Sender.Email, err = s.directory.LookupEmail(ctx, ev.Sender.Username)
	if err != nil {
		return event.Event{}, nil, resolutionErr(ev.Sender.Username, err)
	}

	ev.PullRequest.Author.Email, err = s.directory.LookupEmail(ctx, ev.PullRequest.Author.Username)
	if err != nil {
		return event.Event{}, nil, resolutionErr(ev.PullRequest.Author.Username, err)
	}

	if ev.Action.Kind == event.ActionReviewRequested {
		reviewer := *ev.Action.RequestedReviewer
		reviewer.Email, err = s.directory.LookupEmail(ctx, reviewer.Username)
		if err != nil {
			return event.Event{}, nil, resolutionErr(reviewer.Username, err)
		}
		ev.Action.RequestedReviewer = &reviewer
	}

	return ev, s.lookupAddressee(ctx, ev), nil
}

// lookupAddressee finds the chat identity of the user the notification
// addresses: the PR author for a review, the requested reviewer for a review
// request. Other action kinds address nobody.
func (s *service) lookupAddressee(ctx context.Context, ev event.Event) *ChatUser {
	var email string
	switch ev.Action.Kind {
	case event.ActionReviewed:
		email = ev.PullRequest.Author.Email
	case event.ActionReviewRequested:
		email = ev.Action.RequestedReviewer.Email
	default:
		return nil
	}

	u, err := s.chat.LookupByEmail(ctx, email)
	if err != nil {
		s.log.Info("chat identity unavailable, falling back to plain mention",
			zap.String("email", email),
			zap.Error(err),
		)
		return nil
	}
	return &u
}

func resolutionErr(username string, err error) error {
	return &domain.DomainError{
		Code:    domain.ErrorCodeResolution,
		Message: "directory lookup failed for " + username,
		Err:     err,
	}
}
