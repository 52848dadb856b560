// Package fixtures supplies the portal's demo dataset and loads
// replacement datasets from YAML files.
package fixtures

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/schoolportal/portal/internal/models"
)

// DateLayout is the zone-less timestamp layout used by fixture files.
// Such timestamps are read as UTC.
const DateLayout = "2006-01-02T15:04:05"

var ErrInvalidDataset = errors.New("invalid dataset")

type fileUser struct {
	ID     string `yaml:"id"`
	Name   string `yaml:"name"`
	Email  string `yaml:"email"`
	Role   string `yaml:"role"`
	Avatar string `yaml:"avatar,omitempty"`
}

type fileMessage struct {
	ID          string `yaml:"id"`
	SenderID    string `yaml:"sender_id"`
	RecipientID string `yaml:"recipient_id"`
	Subject     string `yaml:"subject"`
	Content     string `yaml:"content"`
	Date        string `yaml:"date"`
	Read        bool   `yaml:"read"`
}

type fileConversation struct {
	ID              string   `yaml:"id"`
	Participants    []string `yaml:"participants"`
	LastMessageDate string   `yaml:"last_message_date"`
	UnreadCount     int      `yaml:"unread_count"`
}

type file struct {
	Users         []fileUser         `yaml:"users"`
	Messages      []fileMessage      `yaml:"messages"`
	Conversations []fileConversation `yaml:"conversations"`
}

// LoadFile reads and validates a YAML dataset.
func LoadFile(path string) (models.Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return models.Dataset{}, fmt.Errorf("read fixtures: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a YAML dataset.
func Parse(data []byte) (models.Dataset, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return models.Dataset{}, fmt.Errorf("decode fixtures: %w", err)
	}

	var ds models.Dataset
	for _, u := range f.Users {
		ds.Users = append(ds.Users, models.User{
			ID:     u.ID,
			Name:   u.Name,
			Email:  u.Email,
			Role:   models.Role(u.Role),
			Avatar: u.Avatar,
		})
	}
	for _, m := range f.Messages {
		date, err := ParseDate(m.Date)
		if err != nil {
			return models.Dataset{}, fmt.Errorf("message %s: %w", m.ID, err)
		}
		ds.Messages = append(ds.Messages, models.Message{
			ID:          m.ID,
			SenderID:    m.SenderID,
			RecipientID: m.RecipientID,
			Subject:     m.Subject,
			Content:     m.Content,
			Date:        date,
			Read:        m.Read,
		})
	}
	for _, c := range f.Conversations {
		conv, err := conversation(c.ID, c.Participants, c.LastMessageDate, c.UnreadCount)
		if err != nil {
			return models.Dataset{}, err
		}
		ds.Conversations = append(ds.Conversations, conv)
	}

	if err := Validate(ds); err != nil {
		return models.Dataset{}, err
	}
	return ds, nil
}

// Marshal encodes a dataset in the fixture file format.
func Marshal(ds models.Dataset) ([]byte, error) {
	var f file
	for _, u := range ds.Users {
		f.Users = append(f.Users, fileUser{ID: u.ID, Name: u.Name, Email: u.Email, Role: string(u.Role), Avatar: u.Avatar})
	}
	for _, m := range ds.Messages {
		f.Messages = append(f.Messages, fileMessage{
			ID:          m.ID,
			SenderID:    m.SenderID,
			RecipientID: m.RecipientID,
			Subject:     m.Subject,
			Content:     m.Content,
			Date:        m.Date.UTC().Format(DateLayout),
			Read:        m.Read,
		})
	}
	for _, c := range ds.Conversations {
		f.Conversations = append(f.Conversations, fileConversation{
			ID:              c.ID,
			Participants:    []string{c.Participants[0], c.Participants[1]},
			LastMessageDate: c.LastMessageDate.UTC().Format(DateLayout),
			UnreadCount:     c.UnreadCount,
		})
	}
	return yaml.Marshal(f)
}

// ParseDate accepts RFC 3339 timestamps and zone-less DateLayout timestamps.
func ParseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return t, nil
}

func conversation(id string, participants []string, lastMessageDate string, unread int) (models.Conversation, error) {
	if len(participants) != 2 {
		return models.Conversation{}, fmt.Errorf("%w: conversation %s has %d participants, want 2",
			ErrInvalidDataset, id, len(participants))
	}
	conv := models.Conversation{
		ID:           id,
		Participants: [2]string{participants[0], participants[1]},
		UnreadCount:  unread,
	}
	if lastMessageDate != "" {
		date, err := ParseDate(lastMessageDate)
		if err != nil {
			return models.Conversation{}, fmt.Errorf("conversation %s: %w", id, err)
		}
		conv.LastMessageDate = date
	}
	return conv, nil
}

func mustDate(s string) time.Time {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}
