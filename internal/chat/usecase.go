package chat

import (
	"context"

	"github.com/google/uuid"
)

type ChatUsecase interface {
	// CreateConversation validates the participant set against the
	// conversation type, persists everything in one transaction and
	// publishes conversation.created.
	CreateConversation(ctx context.Context, cmd CreateConversationCommand) (*ConversationDTO, error)

	// SendMessage re-checks membership immediately before writing, then
	// publishes message.created. Success reflects persistence only.
	SendMessage(ctx context.Context, cmd SendMessageCommand) (*MessageDTO, error)

	// AddParticipants requires the admin role, skips ids that are already
	// members, and publishes participants.added when anything was inserted.
	AddParticipants(ctx context.Context, cmd AddParticipantsCommand) (*AddParticipantsResultDTO, error)

	ListConversations(ctx context.Context, userID uuid.UUID) ([]*ConversationDTO, error)
	ListMessages(ctx context.Context, cmd ListMessagesCommand) ([]*MessageDTO, error)
}
