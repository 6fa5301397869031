package event

import (
	"fmt"
	"strings"

	"prnotify/internal/domain"
)

// Decode turns a webhook payload into an Event. The top-level "action" field
// selects the Action variant; "review.type" selects the Review variant.
// Decoding is pure: no I/O, and a failed decode constructs nothing.
// Unknown top-level fields are ignored.
func Decode(payload map[string]any) (Event, error) {
	kindRaw, err := getString(payload, "action")
	if err != nil {
		return Event{}, err
	}

	action, err := decodeAction(ActionKind(kindRaw), payload)
	if err != nil {
		return Event{}, err
	}

	prObj, err := getObject(payload, "pull_request")
	if err != nil {
		return Event{}, err
	}
	pr, err := decodePullRequest(prObj)
	if err != nil {
		return Event{}, err
	}

	senderObj, err := getObject(payload, "sender")
	if err != nil {
		return Event{}, err
	}
	sender, err := decodeActor(senderObj, "sender")
	if err != nil {
		return Event{}, err
	}

	repoObj, err := getObject(payload, "repository")
	if err != nil {
		return Event{}, err
	}
	fullName, err := getStringAt(repoObj, "full_name", "repository.full_name")
	if err != nil {
		return Event{}, err
	}
	if !strings.Contains(fullName, "/") {
		return Event{}, decodeErr("repository.full_name", fmt.Sprintf("%q is not owner/name", fullName))
	}

	return Event{
		Action:             action,
		PullRequest:        pr,
		Sender:             sender,
		RepositoryFullName: fullName,
	}, nil
}

func decodeAction(kind ActionKind, payload map[string]any) (Action, error) {
	switch kind {
	case ActionOpened, ActionClosed, ActionReopened, ActionEdited, ActionMerged:
		return Action{Kind: kind}, nil

	case ActionReviewed:
		obj, err := getObject(payload, "review")
		if err != nil {
			return Action{}, err
		}
		review, err := decodeReview(obj)
		if err != nil {
			return Action{}, err
		}
		return Action{Kind: kind, Review: &review}, nil

	case ActionReviewRequested:
		obj, err := getObject(payload, "requested_reviewer")
		if err != nil {
			return Action{}, err
		}
		reviewer, err := decodeActor(obj, "requested_reviewer")
		if err != nil {
			return Action{}, err
		}
		return Action{Kind: kind, RequestedReviewer: &reviewer}, nil

	default:
		return Action{}, &domain.DomainError{
			Code:    domain.ErrorCodeUnknownAction,
			Message: fmt.Sprintf("unrecognized action %q", string(kind)),
		}
	}
}

func decodeReview(obj map[string]any) (Review, error) {
	typ, err := getStringAt(obj, "type", "review.type")
	if err != nil {
		return Review{}, err
	}

	var kind ReviewKind
	switch typ {
	case "pull_request_review_approved":
		kind = ReviewApproved
	case "pull_request_review_rejected":
		kind = ReviewRejected
	case "pull_request_review_comment":
		kind = ReviewComment
	default:
		return Review{}, &domain.DomainError{
			Code:    domain.ErrorCodeUnknownAction,
			Message: fmt.Sprintf("unrecognized review type %q", typ),
		}
	}

	content, err := getStringAt(obj, "content", "review.content")
	if err != nil {
		return Review{}, err
	}

	return Review{Kind: kind, Content: content}, nil
}

func decodePullRequest(obj map[string]any) (PullRequest, error) {
	id, err := getUint(obj, "id", "pull_request.id")
	if err != nil {
		return PullRequest{}, err
	}
	url, err := getStringAt(obj, "url", "pull_request.url")
	if err != nil {
		return PullRequest{}, err
	}
	title, err := getStringAt(obj, "title", "pull_request.title")
	if err != nil {
		return PullRequest{}, err
	}
	body, err := getStringAt(obj, "body", "pull_request.body")
	if err != nil {
		return PullRequest{}, err
	}
	comments, err := getUint(obj, "comments", "pull_request.comments")
	if err != nil {
		return PullRequest{}, err
	}

	stateRaw, err := getStringAt(obj, "state", "pull_request.state")
	if err != nil {
		return PullRequest{}, err
	}
	state := PullRequestState(stateRaw)
	if state != StateOpen && state != StateClosed {
		return PullRequest{}, decodeErr("pull_request.state", fmt.Sprintf("unexpected value %q", stateRaw))
	}

	userObj, err := getObjectAt(obj, "user", "pull_request.user")
	if err != nil {
		return PullRequest{}, err
	}
	author, err := decodeActor(userObj, "pull_request.user")
	if err != nil {
		return PullRequest{}, err
	}

	return PullRequest{
		ID:       id,
		URL:      url,
		Title:    title,
		Body:     body,
		Comments: comments,
		State:    state,
		Author:   author,
	}, nil
}

func decodeActor(obj map[string]any, path string) (Actor, error) {
	email, err := getStringAt(obj, "email", path+".email")
	if err != nil {
		return Actor{}, err
	}
	username, err := getStringAt(obj, "username", path+".username")
	if err != nil {
		return Actor{}, err
	}
	return Actor{Email: email, Username: username}, nil
}

func decodeErr(field, reason string) error {
	return &domain.DomainError{
		Code:    domain.ErrorCodeDecode,
		Message: fmt.Sprintf("field %s: %s", field, reason),
	}
}

func getString(m map[string]any, key string) (string, error) {
	return getStringAt(m, key, key)
}

func getStringAt(m map[string]any, key, path string) (string, error) {
	v, ok := m[key]
	if !ok {
		return "", decodeErr(path, "missing")
	}
	s, ok := v.(string)
	if !ok {
		return "", decodeErr(path, "not a string")
	}
	return s, nil
}

func getObject(m map[string]any, key string) (map[string]any, error) {
	return getObjectAt(m, key, key)
}

func getObjectAt(m map[string]any, key, path string) (map[string]any, error) {
	v, ok := m[key]
	if !ok {
		return nil, decodeErr(path, "missing")
	}
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, decodeErr(path, "not an object")
	}
	return obj, nil
}

// getUint accepts float64 (encoding/json's number type for map payloads) and
// rejects negatives and fractions.
func getUint(m map[string]any, key, path string) (uint64, error) {
	v, ok := m[key]
	if !ok {
		return 0, decodeErr(path, "missing")
	}
	f, ok := v.(float64)
	if !ok {
		return 0, decodeErr(path, "not a number")
	}
	if f < 0 || f != float64(uint64(f)) {
		return 0, decodeErr(path, "not an unsigned integer")
	}
	return uint64(f), nil
}
