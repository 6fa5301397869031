package notify

import (
	"context"

	"go.uber.org/zap"

	"prnotify/internal/domain"
	"prnotify/internal/domain/event"
	"prnotify/internal/domain/identity"
	"prnotify/internal/domain/thread"
)

// ChatPoster posts a message to a channel. An empty threadTS posts a new
// root; the returned timestamp identifies the message's thread.
type ChatPoster interface {
	Post(ctx context.Context, channel string, msg Message, threadTS string) (string, error)
}

type Service interface {
	Dispatch(ctx context.Context, payload map[string]any)
}

type service struct {
	ids     identity.Service
	threads *thread.Cache
	poster  ChatPoster
	events  domain.EventBus
	channel string
	log     *zap.Logger
}

func NewService(
	ids identity.Service,
	threads *thread.Cache,
	poster ChatPoster,
	events domain.EventBus,
	channel string,
	log *zap.Logger,
) Service {
	return &service{
		ids:     ids,
		threads: threads,
		poster:  poster,
		events:  events,
		channel: channel,
		log:     log,
	}
}

// Dispatch runs one delivery through the pipeline:
// decode -> resolve identities -> thread lookup -> render -> post -> record.
// Every failure drops the event; there are no retries and no compensating
// actions, so a failed root post can mean the next event for the same PR
// opens a second thread. The logs are the only place that shows up.
func (s *service) Dispatch(ctx context.Context, payload map[string]any) {
	ev, err := event.Decode(payload)
	if err != nil {
		s.drop("decode failed", "", err)
		return
	}

	url := ev.PullRequest.URL

	resolved, chatUser, err := s.ids.Resolve(ctx, ev)
	if err != nil {
		s.drop("identity resolution failed", url, err)
		return
	}

	threadTS, exists := s.threads.Lookup(ctx, url)

	msg := Render(resolved, chatUser)

	postedTS, err := s.poster.Post(ctx, s.channel, msg, threadTS)
	if err != nil {
		s.drop("chat post failed, notification lost", url, &domain.DomainError{
			Code:    domain.ErrorCodePost,
			Message: "posting to " + s.channel,
			Err:     err,
		})
		return
	}

	s.log.Info("notification posted",
		zap.String("pull_request_url", url),
		zap.String("action", string(resolved.Action.Kind)),
		zap.Bool("is_reply", exists),
	)
	if s.events != nil {
		s.events.Publish(ctx, domain.Event{
			Type: "notification.posted",
			Payload: map[string]any{
				"pull_request_url": url,
				"action":           string(resolved.Action.Kind),
				"is_reply":         exists,
			},
		})
	}

	if exists {
		return
	}

	if s.threads.RecordIfAbsent(ctx, url, postedTS) {
		s.log.Info("thread created",
			zap.String("pull_request_url", url),
			zap.String("thread_ts", postedTS),
		)
		if s.events != nil {
			s.events.Publish(ctx, domain.Event{
				Type: "thread.created",
				Payload: map[string]any{
					"pull_request_url": url,
					"thread_ts":        postedTS,
				},
			})
		}
	}
}

func (s *service) drop(msg, url string, err error) {
	s.log.Error(msg,
		zap.String("pull_request_url", url),
		zap.String("code", string(domain.CodeOf(err))),
		zap.Error(err),
	)
	if s.events != nil {
		s.events.Publish(context.Background(), domain.Event{
			Type: "notification.dropped",
			Payload: map[string]any{
				"pull_request_url": url,
				"code":             string(domain.CodeOf(err)),
			},
		})
	}
}
