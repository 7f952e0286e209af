package notification

import (
	"context"

	"github.com/google/uuid"

	model "github.com/sang6174/ocean-chat-server-sub000/internal/notification/model"
)

type NotificationRepository interface {
	Create(ctx context.Context, n *model.Notification) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Notification, error)
	// FindPendingBetween looks up a pending friend request for the ordered
	// (sender, recipient) direction; NotFound when there is none.
	FindPendingBetween(ctx context.Context, senderID, recipientID uuid.UUID) (*model.Notification, error)
	ListForRecipient(ctx context.Context, recipientID uuid.UUID) ([]*model.Notification, error)

	// UpdateStatus is a conditional transition: the row moves from->to or
	// not at all. Returns the number of rows moved (0 or 1).
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to string) (int64, error)
	MarkRead(ctx context.Context, id uuid.UUID) error
}
