package notify

import (
	"strings"

	"prnotify/internal/domain/event"
	"prnotify/internal/domain/identity"
)

// Message is rendered notification content. Header is only set for thread
// roots of newly opened pull requests; Sections become mrkdwn blocks.
type Message struct {
	Header   string
	Sections []string
}

// Render produces the notification for an event. Pure and deterministic:
// identical input yields identical output, and no I/O happens here.
func Render(ev event.Event, chatUser *identity.ChatUser) Message {
	switch ev.Action.Kind {
	case event.ActionOpened:
		return renderOpened(ev)
	case event.ActionReviewed:
		return renderReviewed(ev, chatUser)
	case event.ActionReviewRequested:
		return renderReviewRequested(ev, chatUser)
	default:
		return renderBasicAction(ev)
	}
}

func renderOpened(ev event.Event) Message {
	owner, name, _ := strings.Cut(ev.RepositoryFullName, "/")

	return Message{
		Header: owner + " | " + name,
		Sections: []string{
			"Pull request " + pullRequestLink(ev.PullRequest) + " opened by " + ev.Sender.Username,
			">" + ev.PullRequest.Body,
		},
	}
}

func renderReviewed(ev event.Event, chatUser *identity.ChatUser) Message {
	return Message{
		Sections: []string{
			mention(chatUser, ev.PullRequest.Author.Username) + ", " +
				ev.Sender.Username + " has " + string(ev.Action.Review.Kind) + " your PR",
		},
	}
}

func renderReviewRequested(ev event.Event, chatUser *identity.ChatUser) Message {
	return Message{
		Sections: []string{
			mention(chatUser, ev.Action.RequestedReviewer.Username) + ", " +
				ev.Sender.Username + " has requested you to review " + pullRequestLink(ev.PullRequest),
		},
	}
}

func renderBasicAction(ev event.Event) Message {
	return Message{
		Sections: []string{
			pullRequestLink(ev.PullRequest) + " was " + string(ev.Action.Kind),
		},
	}
}

// pullRequestLink renders the PR as a clickable mrkdwn reference, never the
// bare URL.
func pullRequestLink(pr event.PullRequest) string {
	return "<" + pr.URL + "|" + pr.Title + ">"
}

func mention(u *identity.ChatUser, fallbackUsername string) string {
	if u != nil {
		return "<@" + u.ID + ">"
	}
	return fallbackUsername
}
