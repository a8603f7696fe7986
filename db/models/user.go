package models

import (
	"time"

	"github.com/uptrace/bun"
)

// User : User Model
//
// Identity issuance and authentication live outside this service; rows here
// back membership checks and notification addressing only.
type User struct {
	ID        int64        `json:"id" bun:",pk,autoincrement"`
	Username  string       `json:"username" bun:",unique,notnull"`
	Email     string       `json:"email" bun:",unique,notnull"`
	CreatedAt time.Time    `json:"created_at" bun:",nullzero,notnull,default:current_timestamp"`
	UpdatedAt bun.NullTime `json:"updated_at"`
}
