package model

import (
	"time"

	"github.com/google/uuid"

	user "github.com/sang6174/ocean-chat-server-sub000/internal/user/model"
)

type Message struct {
	ID             uuid.UUID     `bun:",pk,type:uuid,default:gen_random_uuid()"`
	ConversationID uuid.UUID     `bun:",notnull,type:uuid"`
	Conversation   *Conversation `bun:"rel:belongs-to,join:conversation_id=id"`

	SenderID uuid.UUID  `bun:",notnull,type:uuid"`
	Sender   *user.User `bun:"rel:belongs-to,join:sender_id=id"`

	Body string `bun:",notnull"`

	// Authoritative in-conversation order is (created_at, id); delivery
	// order over live sockets is best-effort only.
	CreatedAt time.Time  `bun:",nullzero,notnull,default:current_timestamp"`
	DeletedAt *time.Time `bun:",soft_delete"`
}
