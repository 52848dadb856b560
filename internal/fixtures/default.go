package fixtures

import "github.com/schoolportal/portal/internal/models"

// DemoPassword is the password every demo account accepts.
const DemoPassword = "password"

// Default returns the demo dataset. Each call returns fresh slices.
func Default() models.Dataset {
	return models.Dataset{
		Users: []models.User{
			{ID: "user1", Name: "Admin User", Email: "admin@example.com", Role: models.RoleAdmin, Avatar: "https://i.pravatar.cc/150?img=1"},
			{ID: "user2", Name: "Parent User", Email: "parent@example.com", Role: models.RoleParent, Avatar: "https://i.pravatar.cc/150?img=2"},
			{ID: "user3", Name: "Teacher User", Email: "teacher@example.com", Role: models.RoleTeacher, Avatar: "https://i.pravatar.cc/150?img=3"},
			{ID: "user4", Name: "Official User", Email: "official@example.com", Role: models.RoleOfficial, Avatar: "https://i.pravatar.cc/150?img=4"},
			{ID: "user5", Name: "Another Teacher", Email: "teacher2@example.com", Role: models.RoleTeacher, Avatar: "https://i.pravatar.cc/150?img=5"},
		},
		Messages: []models.Message{
			{
				ID:          "msg1",
				SenderID:    "user3",
				RecipientID: "user2",
				Subject:     "Regarding John's Performance",
				Content:     "I wanted to discuss John's recent improvement in Mathematics. He's doing very well.",
				Date:        mustDate("2023-09-10T10:30:00"),
				Read:        true,
			},
			{
				ID:          "msg2",
				SenderID:    "user2",
				RecipientID: "user3",
				Subject:     "Re: John's Performance",
				Content:     "Thank you for letting me know. We've been practicing at home as well.",
				Date:        mustDate("2023-09-10T14:15:00"),
				Read:        true,
			},
			{
				ID:          "msg3",
				SenderID:    "user4",
				RecipientID: "user2",
				Subject:     "Parent-Teacher Meeting",
				Content:     "We're scheduling the next parent-teacher meeting for October 5th. Please confirm your availability.",
				Date:        mustDate("2023-09-15T09:00:00"),
				Read:        false,
			},
			{
				ID:          "msg4",
				SenderID:    "user3",
				RecipientID: "user2",
				Subject:     "Reading Assignment",
				Content:     "Just a reminder that John has a reading assignment due next Monday. Please ensure he completes it over the weekend.",
				Date:        mustDate("2023-09-16T15:45:00"),
				Read:        false,
			},
			{
				ID:          "msg5",
				SenderID:    "user3",
				RecipientID: "user5",
				Subject:     "Curriculum Updates",
				Content:     "I would like to discuss some proposed updates to the science curriculum for grade 10.",
				Date:        mustDate("2023-09-14T11:30:00"),
				Read:        true,
			},
			{
				ID:          "msg6",
				SenderID:    "user5",
				RecipientID: "user3",
				Subject:     "Re: Curriculum Updates",
				Content:     "I would be happy to discuss this. Let's schedule a meeting for next week.",
				Date:        mustDate("2023-09-14T14:20:00"),
				Read:        true,
			},
		},
		Conversations: []models.Conversation{
			{ID: "conv1", Participants: [2]string{"user2", "user3"}, LastMessageDate: mustDate("2023-09-16T15:45:00"), UnreadCount: 1},
			{ID: "conv2", Participants: [2]string{"user2", "user4"}, LastMessageDate: mustDate("2023-09-15T09:00:00"), UnreadCount: 1},
			{ID: "conv3", Participants: [2]string{"user3", "user5"}, LastMessageDate: mustDate("2023-09-14T14:20:00"), UnreadCount: 0},
		},
	}
}
