package models

import (
	"time"

	"github.com/google/uuid"
)

// Account is the login identity of a user; a user has at most one live
// account. Username unique among non-deleted accounts (partial unique index
// in migration).
type Account struct {
	ID uuid.UUID `bun:",pk,type:uuid,default:gen_random_uuid()"`

	UserID uuid.UUID `bun:",notnull,type:uuid"`
	User   *User     `bun:"rel:belongs-to,join:user_id=id"`

	Username       string `bun:",notnull"`
	CredentialHash string `bun:",notnull"`

	CreatedAt time.Time  `bun:",nullzero,notnull,default:current_timestamp"`
	UpdatedAt time.Time  `bun:",nullzero,notnull,default:current_timestamp"`
	DeletedAt *time.Time `bun:",soft_delete"`
}
