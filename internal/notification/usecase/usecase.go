package usecase

import (
	"context"

	"github.com/google/uuid"

	"github.com/sang6174/ocean-chat-server-sub000/internal/events"
	"github.com/sang6174/ocean-chat-server-sub000/internal/notification"
	model "github.com/sang6174/ocean-chat-server-sub000/internal/notification/model"
	"github.com/sang6174/ocean-chat-server-sub000/pkg/errors"
	"github.com/sang6174/ocean-chat-server-sub000/pkg/logger"
)

type NotificationUsecase struct {
	repo   notification.NotificationRepository
	bus    events.Bus
	logger logger.Logger
}

func NewNotificationUsecase(repo notification.NotificationRepository, bus events.Bus, logger logger.Logger) *NotificationUsecase {
	return &NotificationUsecase{repo: repo, bus: bus, logger: logger}
}

func (uc *NotificationUsecase) SendFriendRequest(ctx context.Context, cmd notification.SendFriendRequestCommand) (*notification.NotificationDTO, error) {
	if cmd.ActorID == cmd.RecipientID {
		return nil, errors.ErrSelfRequest
	}
	if cmd.RecipientID == uuid.Nil {
		return nil, errors.InvalidInput("recipient id is required")
	}

	if _, err := uc.repo.FindPendingBetween(ctx, cmd.ActorID, cmd.RecipientID); err == nil {
		return nil, errors.ErrRequestPending
	} else if errors.CodeOf(err) != errors.CodeNotFound {
		return nil, err
	}
	// the pair never holds crossed pending requests: a reverse pending
	// request must be responded to, not mirrored
	if _, err := uc.repo.FindPendingBetween(ctx, cmd.RecipientID, cmd.ActorID); err == nil {
		return nil, errors.ErrReversePending
	} else if errors.CodeOf(err) != errors.CodeNotFound {
		return nil, err
	}

	n := &model.Notification{
		SenderID:    cmd.ActorID,
		RecipientID: cmd.RecipientID,
		Type:        model.TypeFriendRequest,
		Status:      model.StatusPending,
	}
	if err := uc.repo.Create(ctx, n); err != nil {
		return nil, err
	}

	uc.bus.Publish(ctx, events.FriendRequestSent{Notification: n})

	return toDTO(n), nil
}

// Respond moves a pending request to accepted or rejected. The addressee
// check runs before any write; a notification addressed to someone else is
// Forbidden with no state change and no event.
func (uc *NotificationUsecase) Respond(ctx context.Context, cmd notification.RespondCommand) (*notification.NotificationDTO, error) {
	n, err := uc.repo.GetByID(ctx, cmd.NotificationID)
	if err != nil {
		return nil, err
	}
	if n.RecipientID != cmd.ActorID {
		return nil, errors.ErrNotAddressee
	}
	if n.Status != model.StatusPending {
		return nil, errors.ErrRequestSettled
	}

	to := model.StatusRejected
	if cmd.Accept {
		to = model.StatusAccepted
	}
	moved, err := uc.repo.UpdateStatus(ctx, n.ID, model.StatusPending, to)
	if err != nil {
		return nil, err
	}
	if moved == 0 {
		// lost a race against another transition
		return nil, errors.ErrRequestSettled
	}
	n.Status = to

	if cmd.Accept {
		uc.bus.Publish(ctx, events.FriendRequestAccepted{Notification: n})
	} else {
		uc.bus.Publish(ctx, events.FriendRequestDenied{Notification: n})
	}

	return toDTO(n), nil
}

func (uc *NotificationUsecase) Cancel(ctx context.Context, cmd notification.CancelCommand) (*notification.NotificationDTO, error) {
	n, err := uc.repo.GetByID(ctx, cmd.NotificationID)
	if err != nil {
		return nil, err
	}
	if n.SenderID != cmd.ActorID {
		return nil, errors.ErrNotRequester
	}
	if n.Status != model.StatusPending {
		return nil, errors.ErrRequestSettled
	}

	moved, err := uc.repo.UpdateStatus(ctx, n.ID, model.StatusPending, model.StatusCancelled)
	if err != nil {
		return nil, err
	}
	if moved == 0 {
		return nil, errors.ErrRequestSettled
	}
	n.Status = model.StatusCancelled

	uc.bus.Publish(ctx, events.FriendRequestCancelled{Notification: n})

	return toDTO(n), nil
}

func (uc *NotificationUsecase) MarkRead(ctx context.Context, actorID, notificationID uuid.UUID) error {
	n, err := uc.repo.GetByID(ctx, notificationID)
	if err != nil {
		return err
	}
	if n.RecipientID != actorID {
		return errors.ErrNotAddressee
	}
	return uc.repo.MarkRead(ctx, notificationID)
}

func (uc *NotificationUsecase) ListForUser(ctx context.Context, userID uuid.UUID) ([]*notification.NotificationDTO, error) {
	ns, err := uc.repo.ListForRecipient(ctx, userID)
	if err != nil {
		return nil, err
	}
	dtos := make([]*notification.NotificationDTO, 0, len(ns))
	for _, n := range ns {
		dtos = append(dtos, toDTO(n))
	}
	return dtos, nil
}

func toDTO(n *model.Notification) *notification.NotificationDTO {
	return &notification.NotificationDTO{
		ID:          n.ID,
		SenderID:    n.SenderID,
		RecipientID: n.RecipientID,
		Type:        n.Type,
		Status:      n.Status,
		IsRead:      n.IsRead,
		CreatedAt:   n.CreatedAt,
	}
}
