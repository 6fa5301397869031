package event

type Actor struct {
	Email    string
	Username string
}

type PullRequestState string

const (
	StateOpen   PullRequestState = "open"
	StateClosed PullRequestState = "closed"
)

type PullRequest struct {
	ID       uint64
	URL      string
	Title    string
	Body     string
	Comments uint64
	State    PullRequestState
	Author   Actor
}

type ReviewKind string

const (
	ReviewApproved ReviewKind = "approved"
	ReviewRejected ReviewKind = "rejected"
	ReviewComment  ReviewKind = "comment"
)

type Review struct {
	Kind    ReviewKind
	Content string
}

type ActionKind string

const (
	ActionOpened          ActionKind = "opened"
	ActionClosed          ActionKind = "closed"
	ActionReopened        ActionKind = "reopened"
	ActionEdited          ActionKind = "edited"
	ActionMerged          ActionKind = "merged"
	ActionReviewed        ActionKind = "reviewed"
	ActionReviewRequested ActionKind = "review_requested"
)

// Action is a tagged variant: Review is set only for ActionReviewed,
// RequestedReviewer only for ActionReviewRequested.
type Action struct {
	Kind              ActionKind
	Review            *Review
	RequestedReviewer *Actor
}

// Event is a decoded webhook delivery. Immutable once constructed; consumed
// once by the dispatcher and then discarded.
type Event struct {
	Action             Action
	PullRequest        PullRequest
	Sender             Actor
	RepositoryFullName string
}
