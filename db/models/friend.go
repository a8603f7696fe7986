package models

import (
	"time"
)

// Friend : Friendship edge between two users.
//
// The edge is undirected; membership checks match either column order.
type Friend struct {
	ID        int64     `json:"id" bun:",pk,autoincrement"`
	User1ID   int64     `json:"user_1_id" bun:"user1_id,notnull"`
	User1     *User     `json:"-" bun:"rel:belongs-to,join:user1_id=id"`
	User2ID   int64     `json:"user_2_id" bun:"user2_id,notnull"`
	User2     *User     `json:"-" bun:"rel:belongs-to,join:user2_id=id"`
	CreatedAt time.Time `json:"created_at" bun:",nullzero,notnull,default:current_timestamp"`
}
