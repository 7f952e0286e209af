package chat

import (
	"context"
	"time"

	"github.com/google/uuid"

	model "github.com/sang6174/ocean-chat-server-sub000/internal/chat/model"
)

type ChatRepository interface {
	// One transaction: conversation row plus one participant row per
	// member. Any participant insert failure rolls back the whole thing.
	CreateConversationWithParticipants(ctx context.Context, conv *model.Conversation, participants []*model.Participant) error

	// One transaction: insert only the not-yet-member rows (skip-existing),
	// bump the conversation's last_event. Returns (inserted, prior members).
	AddParticipants(ctx context.Context, conversationID uuid.UUID, participants []*model.Participant) (added []*model.Participant, prior []*model.Participant, err error)

	GetConversationByID(ctx context.Context, id uuid.UUID) (*model.Conversation, error)
	// FindDirectConversation resolves the live direct conversation for an
	// unordered user pair, or NotFound.
	FindDirectConversation(ctx context.Context, a, b uuid.UUID) (*model.Conversation, error)
	ListConversationsForUser(ctx context.Context, userID uuid.UUID) ([]*model.Conversation, error)

	// GetParticipant is the authorization gate's query; NotFound when the
	// user is not a member.
	GetParticipant(ctx context.Context, conversationID, userID uuid.UUID) (*model.Participant, error)
	ListParticipants(ctx context.Context, conversationID uuid.UUID) ([]*model.Participant, error)
	TouchLastSeen(ctx context.Context, conversationID, userID uuid.UUID) error

	// One transaction: insert message, bump conversation last_event.
	CreateMessage(ctx context.Context, msg *model.Message) error
	ListMessages(ctx context.Context, conversationID uuid.UUID, limit int, before time.Time) ([]*model.Message, error)
}
