package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	model "github.com/sang6174/ocean-chat-server-sub000/internal/chat/model"
	apperrors "github.com/sang6174/ocean-chat-server-sub000/pkg/errors"
	"github.com/sang6174/ocean-chat-server-sub000/pkg/logger"
)

type ChatRepository struct {
	db     *bun.DB
	logger *logger.Logger
}

func NewChatRepository(db *bun.DB, logger logger.Logger) *ChatRepository {
	return &ChatRepository{
		db:     db,
		logger: &logger,
	}
}

func (r *ChatRepository) CreateConversationWithParticipants(ctx context.Context, conv *model.Conversation, participants []*model.Participant) error {
	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewInsert().Model(conv).Returning("*").Exec(ctx); err != nil {
			return apperrors.FromPg("chatRepo.CreateConversation.InsertConversation", err)
		}

		for i := range participants {
			participants[i].ConversationID = conv.ID
		}
		if _, err := tx.NewInsert().Model(&participants).Returning("*").Exec(ctx); err != nil {
			return apperrors.FromPg("chatRepo.CreateConversation.InsertParticipants", err)
		}
		return nil
	})
	return apperrors.FromPg("chatRepo.CreateConversationWithParticipants", err)
}

// AddParticipants inserts only the rows whose user is not already a member.
// Skip-existing keeps the call idempotent against retries; the select and
// the inserts share one transaction, and the conversation row is locked
// first so concurrent adders serialize and the membership filter stays
// authoritative.
func (r *ChatRepository) AddParticipants(ctx context.Context, conversationID uuid.UUID, participants []*model.Participant) (added []*model.Participant, prior []*model.Participant, err error) {
	err = r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		var conv model.Conversation
		if err := tx.NewSelect().
			Model(&conv).
			Where("id = ?", conversationID).
			For("UPDATE").
			Scan(ctx); err != nil {
			if err == sql.ErrNoRows {
				return apperrors.ErrConversationNotFound
			}
			return apperrors.FromPg("chatRepo.AddParticipants.LockConversation", err)
		}

		if err := tx.NewSelect().
			Model(&prior).
			Where("conversation_id = ?", conversationID).
			Scan(ctx); err != nil {
			return apperrors.FromPg("chatRepo.AddParticipants.SelectPrior", err)
		}

		existing := make(map[uuid.UUID]bool, len(prior))
		for _, p := range prior {
			existing[p.UserID] = true
		}

		for _, p := range participants {
			if existing[p.UserID] {
				continue
			}
			p.ConversationID = conversationID
			added = append(added, p)
		}
		if len(added) == 0 {
			return nil
		}

		if _, err := tx.NewInsert().Model(&added).Returning("*").Exec(ctx); err != nil {
			return apperrors.FromPg("chatRepo.AddParticipants.Insert", err)
		}

		if _, err := tx.NewUpdate().
			Model((*model.Conversation)(nil)).
			Set("last_event_at = current_timestamp").
			Set("updated_at = current_timestamp").
			Where("id = ?", conversationID).
			Exec(ctx); err != nil {
			return apperrors.FromPg("chatRepo.AddParticipants.TouchConversation", err)
		}
		return nil
	})
	if err != nil {
		return nil, nil, apperrors.FromPg("chatRepo.AddParticipants", err)
	}
	return added, prior, nil
}

func (r *ChatRepository) GetConversationByID(ctx context.Context, id uuid.UUID) (*model.Conversation, error) {
	conv := new(model.Conversation)
	err := r.db.NewSelect().Model(conv).Where("id = ?", id).Scan(ctx)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperrors.ErrConversationNotFound
		}
		return nil, apperrors.FromPg("chatRepo.GetConversationByID.Scan", err)
	}
	return conv, nil
}

func (r *ChatRepository) FindDirectConversation(ctx context.Context, a, b uuid.UUID) (*model.Conversation, error) {
	conv := new(model.Conversation)
	err := r.db.NewSelect().
		Model(conv).
		Where("type = ?", model.TypeDirect).
		Where("EXISTS (SELECT 1 FROM participants p WHERE p.conversation_id = conversation.id AND p.user_id = ?)", a).
		Where("EXISTS (SELECT 1 FROM participants p WHERE p.conversation_id = conversation.id AND p.user_id = ?)", b).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperrors.ErrConversationNotFound
		}
		return nil, apperrors.FromPg("chatRepo.FindDirectConversation.Scan", err)
	}
	return conv, nil
}

func (r *ChatRepository) ListConversationsForUser(ctx context.Context, userID uuid.UUID) ([]*model.Conversation, error) {
	var convs []*model.Conversation
	err := r.db.NewSelect().
		Model(&convs).
		Where("EXISTS (SELECT 1 FROM participants p WHERE p.conversation_id = conversation.id AND p.user_id = ?)", userID).
		Order("last_event_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, apperrors.FromPg("chatRepo.ListConversationsForUser.Scan", err)
	}
	return convs, nil
}

func (r *ChatRepository) GetParticipant(ctx context.Context, conversationID, userID uuid.UUID) (*model.Participant, error) {
	p := new(model.Participant)
	err := r.db.NewSelect().
		Model(p).
		Where("conversation_id = ? AND user_id = ?", conversationID, userID).
		Scan(ctx)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperrors.NotFound("participant not found")
		}
		return nil, apperrors.FromPg("chatRepo.GetParticipant.Scan", err)
	}
	return p, nil
}

func (r *ChatRepository) ListParticipants(ctx context.Context, conversationID uuid.UUID) ([]*model.Participant, error) {
	var participants []*model.Participant
	err := r.db.NewSelect().
		Model(&participants).
		Where("conversation_id = ?", conversationID).
		Order("joined_at ASC").
		Scan(ctx)
	if err != nil {
		return nil, apperrors.FromPg("chatRepo.ListParticipants.Scan", err)
	}
	return participants, nil
}

func (r *ChatRepository) TouchLastSeen(ctx context.Context, conversationID, userID uuid.UUID) error {
	_, err := r.db.NewUpdate().
		Model((*model.Participant)(nil)).
		Set("last_seen_at = current_timestamp").
		Where("conversation_id = ? AND user_id = ?", conversationID, userID).
		Exec(ctx)
	if err != nil {
		return apperrors.FromPg("chatRepo.TouchLastSeen.Update", err)
	}
	return nil
}

func (r *ChatRepository) CreateMessage(ctx context.Context, msg *model.Message) error {
	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewInsert().Model(msg).Returning("*").Exec(ctx); err != nil {
			return apperrors.FromPg("chatRepo.CreateMessage.Insert", err)
		}

		if _, err := tx.NewUpdate().
			Model((*model.Conversation)(nil)).
			Set("last_event_at = ?", msg.CreatedAt).
			Set("updated_at = current_timestamp").
			Where("id = ?", msg.ConversationID).
			Exec(ctx); err != nil {
			return apperrors.FromPg("chatRepo.CreateMessage.TouchConversation", err)
		}
		return nil
	})
	return apperrors.FromPg("chatRepo.CreateMessage", err)
}

// ListMessages pages backwards from `before`; rows come back in
// authoritative (created_at, id) order, oldest first.
func (r *ChatRepository) ListMessages(ctx context.Context, conversationID uuid.UUID, limit int, before time.Time) ([]*model.Message, error) {
	if limit <= 0 {
		limit = 50
	}
	var page []*model.Message
	q := r.db.NewSelect().
		Model(&page).
		Where("conversation_id = ?", conversationID)
	if !before.IsZero() {
		q = q.Where("created_at < ?", before)
	}

	err := q.
		Order("created_at DESC", "id DESC").
		Limit(limit).
		Scan(ctx)
	if err != nil {
		return nil, apperrors.FromPg("chatRepo.ListMessages.Scan", err)
	}

	// reverse into oldest-first for the caller
	for i, j := 0, len(page)-1; i < j; i, j = i+1, j-1 {
		page[i], page[j] = page[j], page[i]
	}
	return page, nil
}
