package sqlstore

import (
	"time"

	"github.com/uptrace/bun"
)

type tokenRecord struct {
	bun.BaseModel `bun:"table:auth_client_tokens,alias:act"`

	ID         string    `bun:"id,pk"`
	StorageKey string    `bun:"storage_key,notnull,unique"`
	TokenValue string    `bun:"token_value,notnull"`
	CreatedAt  time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt  time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}
