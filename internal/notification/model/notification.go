package model

import (
	"time"

	"github.com/google/uuid"

	user "github.com/sang6174/ocean-chat-server-sub000/internal/user/model"
)

const (
	TypeFriendRequest = "friend_request"

	StatusPending   = "pending"
	StatusAccepted  = "accepted"
	StatusRejected  = "rejected"
	StatusCancelled = "cancelled"
)

// Notification is a directed friend-request record. pending is the only
// state with outgoing transitions; accepted/rejected/cancelled are terminal.
type Notification struct {
	ID uuid.UUID `bun:",pk,type:uuid,default:gen_random_uuid()"`

	SenderID uuid.UUID  `bun:",notnull,type:uuid"`
	Sender   *user.User `bun:"rel:belongs-to,join:sender_id=id"`

	RecipientID uuid.UUID  `bun:",notnull,type:uuid"`
	Recipient   *user.User `bun:"rel:belongs-to,join:recipient_id=id"`

	Type   string `bun:",notnull,default:'friend_request'"`
	Status string `bun:",notnull,default:'pending'"`
	IsRead bool   `bun:",notnull,default:false"`

	CreatedAt time.Time `bun:",nullzero,notnull,default:current_timestamp"`
	UpdatedAt time.Time `bun:",nullzero,notnull,default:current_timestamp"`
}
