package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	model "github.com/sang6174/ocean-chat-server-sub000/internal/notification/model"
	apperrors "github.com/sang6174/ocean-chat-server-sub000/pkg/errors"
	"github.com/sang6174/ocean-chat-server-sub000/pkg/logger"
)

type NotificationRepository struct {
	db     *bun.DB
	logger *logger.Logger
}

func NewNotificationRepository(db *bun.DB, logger logger.Logger) *NotificationRepository {
	return &NotificationRepository{
		db:     db,
		logger: &logger,
	}
}

func (r *NotificationRepository) Create(ctx context.Context, n *model.Notification) error {
	_, err := r.db.NewInsert().Model(n).Returning("*").Exec(ctx)
	if err != nil {
		return apperrors.FromPg("notificationRepo.Create.Insert", err)
	}
	return nil
}

func (r *NotificationRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Notification, error) {
	n := new(model.Notification)
	err := r.db.NewSelect().Model(n).Where("id = ?", id).Scan(ctx)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperrors.ErrNotificationNotFound
		}
		return nil, apperrors.FromPg("notificationRepo.GetByID.Scan", err)
	}
	return n, nil
}

func (r *NotificationRepository) FindPendingBetween(ctx context.Context, senderID, recipientID uuid.UUID) (*model.Notification, error) {
	n := new(model.Notification)
	err := r.db.NewSelect().
		Model(n).
		Where("sender_id = ? AND recipient_id = ?", senderID, recipientID).
		Where("status = ?", model.StatusPending).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperrors.ErrNotificationNotFound
		}
		return nil, apperrors.FromPg("notificationRepo.FindPendingBetween.Scan", err)
	}
	return n, nil
}

func (r *NotificationRepository) ListForRecipient(ctx context.Context, recipientID uuid.UUID) ([]*model.Notification, error) {
	var ns []*model.Notification
	err := r.db.NewSelect().
		Model(&ns).
		Where("recipient_id = ?", recipientID).
		Order("created_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, apperrors.FromPg("notificationRepo.ListForRecipient.Scan", err)
	}
	return ns, nil
}

// UpdateStatus only moves a row that is still in the `from` state, so two
// concurrent responders cannot both win; the loser sees zero rows.
func (r *NotificationRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to string) (int64, error) {
	res, err := r.db.NewUpdate().
		Model((*model.Notification)(nil)).
		Set("status = ?", to).
		Set("updated_at = current_timestamp").
		Where("id = ? AND status = ?", id, from).
		Exec(ctx)
	if err != nil {
		return 0, apperrors.FromPg("notificationRepo.UpdateStatus.Update", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return 0, apperrors.FromPg("notificationRepo.UpdateStatus.RowsAffected", err)
	}
	return rows, nil
}

func (r *NotificationRepository) MarkRead(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.NewUpdate().
		Model(&model.Notification{IsRead: true}).
		Column("is_read").
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return apperrors.FromPg("notificationRepo.MarkRead.Update", err)
	}
	return nil
}
