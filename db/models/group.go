package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Group : Expense group Model
type Group struct {
	ID          int64        `json:"id" bun:",pk,autoincrement"`
	GroupName   string       `json:"group_name" bun:",notnull"`
	Description string       `json:"description" bun:",nullzero"`
	CreatedAt   time.Time    `json:"created_at" bun:",nullzero,notnull,default:current_timestamp"`
	UpdatedAt   bun.NullTime `json:"updated_at"`
}

// GroupMember : Group membership Model
type GroupMember struct {
	ID        int64     `json:"id" bun:",pk,autoincrement"`
	GroupID   int64     `json:"group_id" bun:",notnull"`
	Group     *Group    `json:"-" bun:"rel:belongs-to,join:group_id=id"`
	MemberID  int64     `json:"member_id" bun:",notnull"`
	Member    *User     `json:"-" bun:"rel:belongs-to,join:member_id=id"`
	IsOwner   bool      `json:"is_owner" bun:",nullzero"`
	CreatedAt time.Time `json:"created_at" bun:",nullzero,notnull,default:current_timestamp"`
}
