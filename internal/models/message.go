package models

import "time"

// Message is a single note sent from one user to another.
type Message struct {
	ID          string
	SenderID    string
	RecipientID string
	Subject     string
	Content     string
	Date        time.Time
	Read        bool
}

// Conversation is a two-party thread summary.
// LastMessageDate and UnreadCount are stored snapshot values; the
// messaging package recomputes both from the message set.
type Conversation struct {
	ID              string
	Participants    [2]string
	LastMessageDate time.Time
	UnreadCount     int
}

// Has reports whether userID is one of the participants.
func (c Conversation) Has(userID string) bool {
	return c.Participants[0] == userID || c.Participants[1] == userID
}

// Other returns the participant that is not userID.
// The second return value is false when userID is not a participant.
func (c Conversation) Other(userID string) (string, bool) {
	switch userID {
	case c.Participants[0]:
		return c.Participants[1], true
	case c.Participants[1]:
		return c.Participants[0], true
	default:
		return "", false
	}
}

// Includes reports whether the message was exchanged by exactly this
// participant pair, in either direction.
func (c Conversation) Includes(m Message) bool {
	a, b := c.Participants[0], c.Participants[1]
	return (m.SenderID == a && m.RecipientID == b) || (m.SenderID == b && m.RecipientID == a)
}

// Dataset bundles the collections the portal reads.
type Dataset struct {
	Users         []User
	Conversations []Conversation
	Messages      []Message
}
