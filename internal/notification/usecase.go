package notification

import (
	"context"

	"github.com/google/uuid"
)

type NotificationUsecase interface {
	// SendFriendRequest creates a pending request and publishes
	// friend_request.sent.
	SendFriendRequest(ctx context.Context, cmd SendFriendRequestCommand) (*NotificationDTO, error)

	// Respond accepts or rejects a pending request. Only the recipient may
	// respond; anyone else gets Forbidden with no state change and no event.
	Respond(ctx context.Context, cmd RespondCommand) (*NotificationDTO, error)

	// Cancel withdraws a pending request. Only the sender may cancel.
	Cancel(ctx context.Context, cmd CancelCommand) (*NotificationDTO, error)

	MarkRead(ctx context.Context, actorID, notificationID uuid.UUID) error
	ListForUser(ctx context.Context, userID uuid.UUID) ([]*NotificationDTO, error)
}
