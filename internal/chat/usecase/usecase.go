package usecase

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/sang6174/ocean-chat-server-sub000/internal/chat"
	model "github.com/sang6174/ocean-chat-server-sub000/internal/chat/model"
	"github.com/sang6174/ocean-chat-server-sub000/internal/events"
	"github.com/sang6174/ocean-chat-server-sub000/pkg/errors"
	"github.com/sang6174/ocean-chat-server-sub000/pkg/logger"
)

type ChatUsecase struct {
	repo   chat.ChatRepository
	bus    events.Bus
	logger logger.Logger
}

func NewChatUsecase(repo chat.ChatRepository, bus events.Bus, logger logger.Logger) *ChatUsecase {
	return &ChatUsecase{repo: repo, bus: bus, logger: logger}
}

// requireParticipant re-queries current membership immediately before a
// mutation; the result is never cached because membership can change
// between client load and action.
func (uc *ChatUsecase) requireParticipant(ctx context.Context, conversationID, userID uuid.UUID) (*model.Participant, error) {
	p, err := uc.repo.GetParticipant(ctx, conversationID, userID)
	if err != nil {
		if errors.CodeOf(err) == errors.CodeNotFound {
			return nil, errors.ErrNotParticipant
		}
		return nil, err
	}
	return p, nil
}

func (uc *ChatUsecase) requireRole(ctx context.Context, conversationID, userID uuid.UUID, role string) (*model.Participant, error) {
	p, err := uc.requireParticipant(ctx, conversationID, userID)
	if err != nil {
		return nil, err
	}
	if p.Role != role {
		return nil, errors.ErrAdminRequired
	}
	return p, nil
}

func (uc *ChatUsecase) CreateConversation(ctx context.Context, cmd chat.CreateConversationCommand) (*chat.ConversationDTO, error) {
	memberIDs, err := uc.resolveMembers(ctx, cmd)
	if err != nil {
		return nil, err
	}

	conv := &model.Conversation{
		Type:      cmd.Type,
		Name:      strings.TrimSpace(cmd.Name),
		CreatorID: cmd.ActorID,
	}
	if cmd.Type == model.TypeDirect {
		conv.DirectKey = model.DirectPairKey(memberIDs[0], memberIDs[1])
	}
	participants := make([]*model.Participant, 0, len(memberIDs))
	for _, id := range memberIDs {
		role := model.RoleMember
		if id == cmd.ActorID {
			role = model.RoleAdmin
		}
		participants = append(participants, &model.Participant{UserID: id, Role: role})
	}

	if err := uc.repo.CreateConversationWithParticipants(ctx, conv, participants); err != nil {
		// a concurrent creator can commit the same pair between the
		// pre-check and this insert; the unique index on DirectKey turns
		// the loser into the same answer the pre-check gives
		if cmd.Type == model.TypeDirect && errors.CodeOf(err) == errors.CodeConflict {
			return nil, errors.ErrDirectExists
		}
		return nil, err
	}

	uc.bus.Publish(ctx, events.ConversationCreated{
		Conversation:       conv,
		Participants:       participants,
		ActorID:            cmd.ActorID,
		OriginSessionToken: cmd.OriginSessionToken,
	})

	return toConversationDTO(conv, participants), nil
}

// resolveMembers validates the participant set against the conversation
// type. The actor is always a member, deduplicated in.
func (uc *ChatUsecase) resolveMembers(ctx context.Context, cmd chat.CreateConversationCommand) ([]uuid.UUID, error) {
	seen := map[uuid.UUID]bool{cmd.ActorID: true}
	memberIDs := []uuid.UUID{cmd.ActorID}
	for _, id := range cmd.ParticipantIDs {
		if id == uuid.Nil {
			return nil, errors.InvalidInput("participant id cannot be empty")
		}
		if seen[id] {
			continue
		}
		seen[id] = true
		memberIDs = append(memberIDs, id)
	}

	switch cmd.Type {
	case model.TypeSelf:
		if len(memberIDs) != 1 {
			return nil, errors.ErrInvalidConversation
		}
	case model.TypeDirect:
		if len(memberIDs) != 2 {
			return nil, errors.ErrInvalidConversation
		}
		if _, err := uc.repo.FindDirectConversation(ctx, memberIDs[0], memberIDs[1]); err == nil {
			return nil, errors.ErrDirectExists
		} else if errors.CodeOf(err) != errors.CodeNotFound {
			return nil, err
		}
	case model.TypeGroup:
		if len(memberIDs) < 1 {
			return nil, errors.ErrInvalidConversation
		}
	default:
		return nil, errors.InvalidInput("unknown conversation type: " + cmd.Type)
	}
	return memberIDs, nil
}

func (uc *ChatUsecase) SendMessage(ctx context.Context, cmd chat.SendMessageCommand) (*chat.MessageDTO, error) {
	if strings.TrimSpace(cmd.Body) == "" {
		return nil, errors.ErrEmptyMessage
	}

	if _, err := uc.requireParticipant(ctx, cmd.ConversationID, cmd.ActorID); err != nil {
		return nil, err
	}

	msg := &model.Message{
		ConversationID: cmd.ConversationID,
		SenderID:       cmd.ActorID,
		Body:           cmd.Body,
	}
	if err := uc.repo.CreateMessage(ctx, msg); err != nil {
		return nil, err
	}

	// Fanout outcome never touches the mutation's result: the message is
	// sent once the commit lands, reachable recipients or not.
	uc.bus.Publish(ctx, events.MessageCreated{
		Message:            msg,
		ActorID:            cmd.ActorID,
		OriginSessionToken: cmd.OriginSessionToken,
	})

	return toMessageDTO(msg), nil
}

func (uc *ChatUsecase) AddParticipants(ctx context.Context, cmd chat.AddParticipantsCommand) (*chat.AddParticipantsResultDTO, error) {
	if len(cmd.ParticipantIDs) == 0 {
		return nil, errors.InvalidInput("no participants to add")
	}

	if _, err := uc.requireRole(ctx, cmd.ConversationID, cmd.ActorID, model.RoleAdmin); err != nil {
		return nil, err
	}

	conv, err := uc.repo.GetConversationByID(ctx, cmd.ConversationID)
	if err != nil {
		return nil, err
	}
	if conv.Type != model.TypeGroup {
		return nil, errors.BusinessRule("participants can only be added to group conversations")
	}

	seen := make(map[uuid.UUID]bool, len(cmd.ParticipantIDs))
	rows := make([]*model.Participant, 0, len(cmd.ParticipantIDs))
	for _, id := range cmd.ParticipantIDs {
		if id == uuid.Nil {
			return nil, errors.InvalidInput("participant id cannot be empty")
		}
		if seen[id] {
			continue
		}
		seen[id] = true
		rows = append(rows, &model.Participant{UserID: id, Role: model.RoleMember})
	}

	added, prior, err := uc.repo.AddParticipants(ctx, cmd.ConversationID, rows)
	if err != nil {
		return nil, err
	}

	if len(added) > 0 {
		uc.bus.Publish(ctx, events.ParticipantsAdded{
			Conversation:       conv,
			Added:              added,
			Prior:              prior,
			ActorID:            cmd.ActorID,
			OriginSessionToken: cmd.OriginSessionToken,
		})
	}

	result := &chat.AddParticipantsResultDTO{
		Conversation: toConversationDTO(conv, append(append([]*model.Participant(nil), prior...), added...)),
	}
	addedSet := make(map[uuid.UUID]bool, len(added))
	for _, p := range added {
		addedSet[p.UserID] = true
		result.AddedIDs = append(result.AddedIDs, p.UserID)
	}
	for id := range seen {
		if !addedSet[id] {
			result.SkippedIDs = append(result.SkippedIDs, id)
		}
	}
	return result, nil
}

func (uc *ChatUsecase) ListConversations(ctx context.Context, userID uuid.UUID) ([]*chat.ConversationDTO, error) {
	convs, err := uc.repo.ListConversationsForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	dtos := make([]*chat.ConversationDTO, 0, len(convs))
	for _, c := range convs {
		dtos = append(dtos, toConversationDTO(c, nil))
	}
	return dtos, nil
}

func (uc *ChatUsecase) ListMessages(ctx context.Context, cmd chat.ListMessagesCommand) ([]*chat.MessageDTO, error) {
	if _, err := uc.requireParticipant(ctx, cmd.ConversationID, cmd.ActorID); err != nil {
		return nil, err
	}

	msgs, err := uc.repo.ListMessages(ctx, cmd.ConversationID, cmd.Limit, cmd.Before)
	if err != nil {
		return nil, err
	}
	if err := uc.repo.TouchLastSeen(ctx, cmd.ConversationID, cmd.ActorID); err != nil {
		uc.logger.Warn("failed to update last_seen", "conversation_id", cmd.ConversationID, "err", err)
	}

	dtos := make([]*chat.MessageDTO, 0, len(msgs))
	for _, m := range msgs {
		dtos = append(dtos, toMessageDTO(m))
	}
	return dtos, nil
}

func toConversationDTO(c *model.Conversation, participants []*model.Participant) *chat.ConversationDTO {
	dto := &chat.ConversationDTO{
		ID:          c.ID,
		Type:        c.Type,
		Name:        c.Name,
		CreatorID:   c.CreatorID,
		LastEventAt: c.LastEventAt,
	}
	for _, p := range participants {
		dto.Participants = append(dto.Participants, chat.ParticipantDTO{
			UserID:   p.UserID,
			Role:     p.Role,
			JoinedAt: p.JoinedAt,
		})
	}
	return dto
}

func toMessageDTO(m *model.Message) *chat.MessageDTO {
	return &chat.MessageDTO{
		ID:             m.ID,
		ConversationID: m.ConversationID,
		SenderID:       m.SenderID,
		Body:           m.Body,
		CreatedAt:      m.CreatedAt,
	}
}
