package model

import (
	"time"

	"github.com/google/uuid"

	user "github.com/sang6174/ocean-chat-server-sub000/internal/user/model"
)

const (
	TypeSelf   = "self"
	TypeDirect = "direct"
	TypeGroup  = "group"
)

type Conversation struct {
	ID uuid.UUID `bun:",pk,type:uuid,default:gen_random_uuid()"`

	// self = exactly one participant, direct = exactly two (one live
	// conversation per unordered pair), group = one or more.
	Type string `bun:",notnull"`
	Name string `bun:",null"`

	// DirectKey is the canonical identity of a direct conversation's
	// unordered user pair, NULL for every other type. A partial unique
	// index on live direct rows makes one-per-pair hold even when two
	// creators race past the usecase pre-check.
	DirectKey string `bun:",nullzero"`

	CreatorID uuid.UUID  `bun:",notnull,type:uuid"`
	Creator   *user.User `bun:"rel:belongs-to,join:creator_id=id"`

	CreatedAt time.Time  `bun:",nullzero,notnull,default:current_timestamp"`
	UpdatedAt time.Time  `bun:",nullzero,notnull,default:current_timestamp"`
	DeletedAt *time.Time `bun:",soft_delete"`

	// LastEventAt orders conversation lists; bumped by every message and
	// membership change.
	LastEventAt time.Time `bun:",nullzero,notnull,default:current_timestamp"`
}

// DirectPairKey builds the DirectKey for an unordered user pair; argument
// order never changes the result.
func DirectPairKey(a, b uuid.UUID) string {
	if b.String() < a.String() {
		a, b = b, a
	}
	return a.String() + ":" + b.String()
}
