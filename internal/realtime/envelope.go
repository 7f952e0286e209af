package realtime

import (
	"time"

	"github.com/google/uuid"

	chatmodel "github.com/sang6174/ocean-chat-server-sub000/internal/chat/model"
	notifmodel "github.com/sang6174/ocean-chat-server-sub000/internal/notification/model"
)

// Envelope is the wire contract for every delivered payload. Field names
// and nesting must not change even if the serialization format does.
type Envelope struct {
	Type     string   `json:"type"`
	Metadata Metadata `json:"metadata"`
	Data     any      `json:"data"`
}

type Metadata struct {
	SenderID       uuid.UUID  `json:"senderId"`
	ToUserID       *uuid.UUID `json:"toUserId,omitempty"`
	ToConversation *uuid.UUID `json:"toConversation,omitempty"`
}

// Event-specific data payloads. Kept separate from the bun models so the
// wire shape survives storage refactors.

type conversationData struct {
	ID           uuid.UUID         `json:"id"`
	Type         string            `json:"type"`
	Name         string            `json:"name,omitempty"`
	CreatorID    uuid.UUID         `json:"creatorId"`
	LastEventAt  time.Time         `json:"lastEventAt"`
	Participants []participantData `json:"participants,omitempty"`
}

type participantData struct {
	UserID   uuid.UUID `json:"userId"`
	Role     string    `json:"role"`
	JoinedAt time.Time `json:"joinedAt"`
}

type messageData struct {
	ID             uuid.UUID `json:"id"`
	ConversationID uuid.UUID `json:"conversationId"`
	SenderID       uuid.UUID `json:"senderId"`
	Body           string    `json:"body"`
	CreatedAt      time.Time `json:"createdAt"`
}

type membersAddedData struct {
	ConversationID uuid.UUID         `json:"conversationId"`
	Added          []participantData `json:"added"`
}

type notificationData struct {
	ID          uuid.UUID `json:"id"`
	SenderID    uuid.UUID `json:"senderId"`
	RecipientID uuid.UUID `json:"recipientId"`
	Type        string    `json:"type"`
	Status      string    `json:"status"`
	IsRead      bool      `json:"isRead"`
	CreatedAt   time.Time `json:"createdAt"`
}

func toConversationData(c *chatmodel.Conversation, participants []*chatmodel.Participant) conversationData {
	d := conversationData{
		ID:          c.ID,
		Type:        c.Type,
		Name:        c.Name,
		CreatorID:   c.CreatorID,
		LastEventAt: c.LastEventAt,
	}
	for _, p := range participants {
		d.Participants = append(d.Participants, toParticipantData(p))
	}
	return d
}

func toParticipantData(p *chatmodel.Participant) participantData {
	return participantData{UserID: p.UserID, Role: p.Role, JoinedAt: p.JoinedAt}
}

func toMessageData(m *chatmodel.Message) messageData {
	return messageData{
		ID:             m.ID,
		ConversationID: m.ConversationID,
		SenderID:       m.SenderID,
		Body:           m.Body,
		CreatedAt:      m.CreatedAt,
	}
}

func toNotificationData(n *notifmodel.Notification) notificationData {
	return notificationData{
		ID:          n.ID,
		SenderID:    n.SenderID,
		RecipientID: n.RecipientID,
		Type:        n.Type,
		Status:      n.Status,
		IsRead:      n.IsRead,
		CreatedAt:   n.CreatedAt,
	}
}
