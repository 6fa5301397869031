package event_test

import (
	"encoding/json"
	"strings"
	"testing"

	"prnotify/internal/domain"
	"prnotify/internal/domain/event"
)

func payloadFromJSON(t *testing.T, raw string) map[string]any {
	t.Helper()
	var m map[string]any
	if err := json.Unmarshal([]byte(raw), &m); err != nil {
		t.Fatalf("unmarshal fixture: %v", err)
	}
	return m
}

const openedFixture = `{
	"action": "opened",
	"pull_request": {
		"id": 7,
		"url": "http://git.local/owner/repo/pulls/7",
		"title": "Add feature",
		"body": "does things",
		"comments": 0,
		"state": "open",
		"user": {"email": "author@noreply.local", "username": "alice"}
	},
	"sender": {"email": "sender@noreply.local", "username": "bob"},
	"repository": {"full_name": "owner/repo"}
}`

func TestDecodeOpened(t *testing.T) {
	ev, err := event.Decode(payloadFromJSON(t, openedFixture))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	if ev.Action.Kind != event.ActionOpened {
		t.Errorf("action kind = %q, want opened", ev.Action.Kind)
	}
	if ev.Action.Review != nil || ev.Action.RequestedReviewer != nil {
		t.Errorf("opened action should carry no payload")
	}
	if ev.PullRequest.ID != 7 {
		t.Errorf("pr id = %d, want 7", ev.PullRequest.ID)
	}
	if ev.PullRequest.URL != "http://git.local/owner/repo/pulls/7" {
		t.Errorf("pr url = %q", ev.PullRequest.URL)
	}
	if ev.PullRequest.State != event.StateOpen {
		t.Errorf("pr state = %q, want open", ev.PullRequest.State)
	}
	if ev.PullRequest.Author.Username != "alice" {
		t.Errorf("author = %q, want alice", ev.PullRequest.Author.Username)
	}
	if ev.Sender.Username != "bob" {
		t.Errorf("sender = %q, want bob", ev.Sender.Username)
	}
	if ev.RepositoryFullName != "owner/repo" {
		t.Errorf("repository = %q, want owner/repo", ev.RepositoryFullName)
	}
}

func TestDecodeReviewed(t *testing.T) {
	raw := strings.Replace(openedFixture, `"action": "opened",`,
		`"action": "reviewed", "review": {"type": "pull_request_review_approved", "content": "lgtm"},`, 1)

	ev, err := event.Decode(payloadFromJSON(t, raw))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	if ev.Action.Kind != event.ActionReviewed {
		t.Fatalf("action kind = %q, want reviewed", ev.Action.Kind)
	}
	if ev.Action.Review == nil {
		t.Fatal("reviewed action should carry a review")
	}
	if ev.Action.Review.Kind != event.ReviewApproved {
		t.Errorf("review kind = %q, want approved", ev.Action.Review.Kind)
	}
	if ev.Action.Review.Content != "lgtm" {
		t.Errorf("review content = %q, want lgtm", ev.Action.Review.Content)
	}
}

func TestDecodeReviewRequested(t *testing.T) {
	raw := strings.Replace(openedFixture, `"action": "opened",`,
		`"action": "review_requested", "requested_reviewer": {"email": "rev@noreply.local", "username": "carol"},`, 1)

	ev, err := event.Decode(payloadFromJSON(t, raw))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	if ev.Action.Kind != event.ActionReviewRequested {
		t.Fatalf("action kind = %q, want review_requested", ev.Action.Kind)
	}
	if ev.Action.RequestedReviewer == nil {
		t.Fatal("review_requested action should carry a reviewer")
	}
	if ev.Action.RequestedReviewer.Username != "carol" {
		t.Errorf("reviewer = %q, want carol", ev.Action.RequestedReviewer.Username)
	}
}

func TestDecodeUnknownAction(t *testing.T) {
	raw := strings.Replace(openedFixture, `"opened"`, `"unsupported_kind"`, 1)

	_, err := event.Decode(payloadFromJSON(t, raw))
	if err == nil {
		t.Fatal("expected error for unknown action")
	}
	if domain.CodeOf(err) != domain.ErrorCodeUnknownAction {
		t.Errorf("error code = %q, want UNKNOWN_ACTION", domain.CodeOf(err))
	}
}

func TestDecodeUnknownReviewType(t *testing.T) {
	raw := strings.Replace(openedFixture, `"action": "opened",`,
		`"action": "reviewed", "review": {"type": "pull_request_review_shrug", "content": ""},`, 1)

	_, err := event.Decode(payloadFromJSON(t, raw))
	if domain.CodeOf(err) != domain.ErrorCodeUnknownAction {
		t.Errorf("error code = %q, want UNKNOWN_ACTION", domain.CodeOf(err))
	}
}

func TestDecodeMissingURL(t *testing.T) {
	raw := strings.Replace(openedFixture, `"url": "http://git.local/owner/repo/pulls/7",`, ``, 1)

	_, err := event.Decode(payloadFromJSON(t, raw))
	if err == nil {
		t.Fatal("expected error for missing pull_request.url")
	}
	if domain.CodeOf(err) != domain.ErrorCodeDecode {
		t.Errorf("error code = %q, want DECODE_ERROR", domain.CodeOf(err))
	}
	if !strings.Contains(err.Error(), "pull_request.url") {
		t.Errorf("error should name the missing field, got %q", err.Error())
	}
}

func TestDecodeMistypedField(t *testing.T) {
	raw := strings.Replace(openedFixture, `"comments": 0`, `"comments": "zero"`, 1)

	_, err := event.Decode(payloadFromJSON(t, raw))
	if domain.CodeOf(err) != domain.ErrorCodeDecode {
		t.Fatalf("error code = %q, want DECODE_ERROR", domain.CodeOf(err))
	}
	if !strings.Contains(err.Error(), "pull_request.comments") {
		t.Errorf("error should name the field, got %q", err.Error())
	}
}

func TestDecodeBadState(t *testing.T) {
	raw := strings.Replace(openedFixture, `"state": "open"`, `"state": "draft"`, 1)

	_, err := event.Decode(payloadFromJSON(t, raw))
	if domain.CodeOf(err) != domain.ErrorCodeDecode {
		t.Errorf("error code = %q, want DECODE_ERROR", domain.CodeOf(err))
	}
}

func TestDecodeRepositoryFullNameNeedsSeparator(t *testing.T) {
	raw := strings.Replace(openedFixture, `"full_name": "owner/repo"`, `"full_name": "justrepo"`, 1)

	_, err := event.Decode(payloadFromJSON(t, raw))
	if domain.CodeOf(err) != domain.ErrorCodeDecode {
		t.Fatalf("error code = %q, want DECODE_ERROR", domain.CodeOf(err))
	}
	if !strings.Contains(err.Error(), "repository.full_name") {
		t.Errorf("error should name the field, got %q", err.Error())
	}
}

func TestDecodeIgnoresUnknownTopLevelFields(t *testing.T) {
	raw := strings.Replace(openedFixture, `"action": "opened",`,
		`"action": "opened", "extra_field": {"nested": true},`, 1)

	if _, err := event.Decode(payloadFromJSON(t, raw)); err != nil {
		t.Fatalf("unknown top-level fields should be ignored, got %v", err)
	}
}
