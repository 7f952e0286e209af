package chat

import (
	"time"

	"github.com/google/uuid"
)

// Input commands. OriginSessionToken identifies the session that issued the
// mutation; fanout skips exactly that session.
type CreateConversationCommand struct {
	ActorID            uuid.UUID
	Type               string
	Name               string
	ParticipantIDs     []uuid.UUID
	OriginSessionToken string
}

type SendMessageCommand struct {
	ActorID            uuid.UUID
	ConversationID     uuid.UUID
	Body               string
	OriginSessionToken string
}

type AddParticipantsCommand struct {
	ActorID            uuid.UUID
	ConversationID     uuid.UUID
	ParticipantIDs     []uuid.UUID
	OriginSessionToken string
}

type ListMessagesCommand struct {
	ActorID        uuid.UUID
	ConversationID uuid.UUID
	Limit          int
	Before         time.Time
}

// Output DTOs
type ParticipantDTO struct {
	UserID   uuid.UUID `json:"userId"`
	Role     string    `json:"role"`
	JoinedAt time.Time `json:"joinedAt"`
}

type ConversationDTO struct {
	ID           uuid.UUID        `json:"id"`
	Type         string           `json:"type"`
	Name         string           `json:"name,omitempty"`
	CreatorID    uuid.UUID        `json:"creatorId"`
	LastEventAt  time.Time        `json:"lastEventAt"`
	Participants []ParticipantDTO `json:"participants,omitempty"`
}

type MessageDTO struct {
	ID             uuid.UUID `json:"id"`
	ConversationID uuid.UUID `json:"conversationId"`
	SenderID       uuid.UUID `json:"senderId"`
	Body           string    `json:"body"`
	CreatedAt      time.Time `json:"createdAt"`
}

type AddParticipantsResultDTO struct {
	Conversation *ConversationDTO `json:"conversation"`
	AddedIDs     []uuid.UUID      `json:"addedIds"`
	SkippedIDs   []uuid.UUID      `json:"skippedIds"`
}
