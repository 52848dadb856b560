package messaging

import "fmt"

// IssueKind classifies a data-integrity condition found while building a view.
type IssueKind string

const (
	// IssueMissingUser means a conversation references a user absent from the user set.
	IssueMissingUser IssueKind = "missing_user"
	// IssueNoMessages means no message belongs to the conversation's participant pair.
	IssueNoMessages IssueKind = "no_messages"
	// IssueStaleSummary means the stored last-message date or unread count
	// disagrees with the value derived from messages.
	IssueStaleSummary IssueKind = "stale_summary"
)

// Issue is a data-integrity condition. Issues never abort a query; the
// affected conversation is excluded or corrected and the issue is reported.
type Issue struct {
	Kind           IssueKind
	ConversationID string
	UserID         string
	Detail         string
}

func (i Issue) String() string {
	if i.UserID != "" {
		return fmt.Sprintf("%s: conversation %s, user %s: %s", i.Kind, i.ConversationID, i.UserID, i.Detail)
	}
	return fmt.Sprintf("%s: conversation %s: %s", i.Kind, i.ConversationID, i.Detail)
}
