package notification

import (
	"time"

	"github.com/google/uuid"
)

// Input commands
type SendFriendRequestCommand struct {
	ActorID     uuid.UUID
	RecipientID uuid.UUID
}

type RespondCommand struct {
	ActorID        uuid.UUID
	NotificationID uuid.UUID
	Accept         bool
}

type CancelCommand struct {
	ActorID        uuid.UUID
	NotificationID uuid.UUID
}

// Output DTOs
type NotificationDTO struct {
	ID          uuid.UUID `json:"id"`
	SenderID    uuid.UUID `json:"senderId"`
	RecipientID uuid.UUID `json:"recipientId"`
	Type        string    `json:"type"`
	Status      string    `json:"status"`
	IsRead      bool      `json:"isRead"`
	CreatedAt   time.Time `json:"createdAt"`
}
