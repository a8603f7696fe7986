package service

import (
	"context"

	"github.com/getsplitx/splitx.go/db/models"
	"github.com/uptrace/bun"
)

// MembershipChecker answers the two questions expense validation needs from
// the friend graph. The graph itself is managed elsewhere; the ledger only
// reads it.
type MembershipChecker interface {
	IsFriend(ctx context.Context, userA, userB int64) (bool, error)
	IsGroupMember(ctx context.Context, groupID, userID int64) (bool, error)
}

type dbMembership struct {
	db *bun.DB
}

func NewDBMembership(db *bun.DB) MembershipChecker {
	return &dbMembership{db: db}
}

func (m *dbMembership) IsFriend(ctx context.Context, userA, userB int64) (bool, error) {
	return m.db.NewSelect().
		Model((*models.Friend)(nil)).
		Where("(user1_id = ? AND user2_id = ?) OR (user1_id = ? AND user2_id = ?)", userA, userB, userB, userA).
		Exists(ctx)
}

func (m *dbMembership) IsGroupMember(ctx context.Context, groupID, userID int64) (bool, error) {
	return m.db.NewSelect().
		Model((*models.GroupMember)(nil)).
		Where("group_id = ? AND member_id = ?", groupID, userID).
		Exists(ctx)
}
