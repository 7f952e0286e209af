package model

import (
	"time"

	"github.com/google/uuid"

	user "github.com/sang6174/ocean-chat-server-sub000/internal/user/model"
)

const (
	RoleAdmin  = "admin"
	RoleMember = "member"
)

// Participant links a user to a conversation. Removal is a hard delete.
type Participant struct {
	ConversationID uuid.UUID     `bun:",pk,type:uuid"`
	Conversation   *Conversation `bun:"rel:belongs-to,join:conversation_id=id"`

	UserID uuid.UUID  `bun:",pk,type:uuid"`
	User   *user.User `bun:"rel:belongs-to,join:user_id=id"`

	Role string `bun:",notnull,default:'member'"`

	JoinedAt   time.Time `bun:",nullzero,notnull,default:current_timestamp"`
	LastSeenAt time.Time `bun:",nullzero"`
}
