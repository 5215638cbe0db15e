package service

import (
	"testing"
	"time"

	"ai-chat-be/internal/entity"

	"github.com/stretchr/testify/assert"
)

func ts(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}

func tsPtr(ms int64) *time.Time {
	t := ts(ms)
	return &t
}

func TestBuildSyncPlan_EmptyInput(t *testing.T) {
	plan := BuildSyncPlan("u1", nil, nil)

	assert.Empty(t, plan.Upserts)
	assert.Empty(t, plan.DeleteChatIds)
	assert.Empty(t, plan.Violations)
}

func TestBuildSyncPlan_NewChatIsUpserted(t *testing.T) {
	incoming := []*entity.Chat{
		{Id: "c1", UserId: "u1", UpdatedAt: ts(100)},
	}

	plan := BuildSyncPlan("u1", incoming, nil)

	assert.Len(t, plan.Upserts, 1)
	assert.Equal(t, "c1", plan.Upserts[0].Id)
	assert.Empty(t, plan.DeleteChatIds)
}

func TestBuildSyncPlan_NewChatWithTombstoneCascades(t *testing.T) {
	// The client deleted a chat the server never saw: the tombstone is
	// persisted and any stray messages for it are removed.
	incoming := []*entity.Chat{
		{Id: "c1", UserId: "u1", UpdatedAt: ts(100), DeletedAt: tsPtr(100)},
	}

	plan := BuildSyncPlan("u1", incoming, nil)

	assert.Len(t, plan.Upserts, 1)
	assert.Equal(t, []string{"c1"}, plan.DeleteChatIds)
}

func TestBuildSyncPlan_ClientTombstoneWinsOverLiveServerChat(t *testing.T) {
	incoming := []*entity.Chat{
		{Id: "c1", UserId: "u1", UpdatedAt: ts(50), DeletedAt: tsPtr(60)},
	}
	snapshot := []*entity.Chat{
		{Id: "c1", UserId: "u1", UpdatedAt: ts(40)},
	}

	plan := BuildSyncPlan("u1", incoming, snapshot)

	assert.Len(t, plan.Upserts, 1)
	assert.True(t, plan.Upserts[0].IsDeleted())
	assert.Equal(t, []string{"c1"}, plan.DeleteChatIds)
}

func TestBuildSyncPlan_NewerClientRecordWins(t *testing.T) {
	incoming := []*entity.Chat{
		{Id: "c1", UserId: "u1", Title: "renamed", UpdatedAt: ts(200)},
	}
	snapshot := []*entity.Chat{
		{Id: "c1", UserId: "u1", Title: "old", UpdatedAt: ts(100)},
	}

	plan := BuildSyncPlan("u1", incoming, snapshot)

	assert.Len(t, plan.Upserts, 1)
	assert.Equal(t, "renamed", plan.Upserts[0].Title)
	assert.Empty(t, plan.DeleteChatIds)
}

func TestBuildSyncPlan_ServerWinsOnEqualTimestamp(t *testing.T) {
	incoming := []*entity.Chat{
		{Id: "c1", UserId: "u1", Title: "client", UpdatedAt: ts(100)},
	}
	snapshot := []*entity.Chat{
		{Id: "c1", UserId: "u1", Title: "server", UpdatedAt: ts(100)},
	}

	plan := BuildSyncPlan("u1", incoming, snapshot)

	assert.Empty(t, plan.Upserts)
	assert.Empty(t, plan.DeleteChatIds)
}

func TestBuildSyncPlan_StaleClientRecordIsDropped(t *testing.T) {
	incoming := []*entity.Chat{
		{Id: "c1", UserId: "u1", UpdatedAt: ts(50)},
	}
	snapshot := []*entity.Chat{
		{Id: "c1", UserId: "u1", UpdatedAt: ts(100)},
	}

	plan := BuildSyncPlan("u1", incoming, snapshot)

	assert.Empty(t, plan.Upserts)
}

func TestBuildSyncPlan_ServerTombstoneIsTerminal(t *testing.T) {
	// Neither a newer update nor a client tombstone touches a chat the
	// server already deleted.
	incoming := []*entity.Chat{
		{Id: "c1", UserId: "u1", Title: "revived", UpdatedAt: ts(999)},
		{Id: "c2", UserId: "u1", UpdatedAt: ts(999), DeletedAt: tsPtr(999)},
	}
	snapshot := []*entity.Chat{
		{Id: "c1", UserId: "u1", UpdatedAt: ts(10), DeletedAt: tsPtr(20)},
		{Id: "c2", UserId: "u1", UpdatedAt: ts(10), DeletedAt: tsPtr(20)},
	}

	plan := BuildSyncPlan("u1", incoming, snapshot)

	assert.Empty(t, plan.Upserts)
	assert.Empty(t, plan.DeleteChatIds)
}

func TestBuildSyncPlan_OwnershipViolationSkipsRecordOnly(t *testing.T) {
	incoming := []*entity.Chat{
		{Id: "c1", UserId: "u2", UpdatedAt: ts(100)},
		{Id: "c2", UserId: "u1", UpdatedAt: ts(100)},
	}

	plan := BuildSyncPlan("u1", incoming, nil)

	assert.Len(t, plan.Violations, 1)
	assert.Equal(t, "c1", plan.Violations[0].ChatId)
	assert.Len(t, plan.Upserts, 1)
	assert.Equal(t, "c2", plan.Upserts[0].Id)
	assert.Empty(t, plan.DeleteChatIds)
}

func TestBuildSyncPlan_DuplicateIdsEvaluateAgainstSameSnapshot(t *testing.T) {
	// Both occurrences see the same stale snapshot; the later one does not
	// observe the earlier upsert.
	incoming := []*entity.Chat{
		{Id: "c1", UserId: "u1", Title: "first", UpdatedAt: ts(200)},
		{Id: "c1", UserId: "u1", Title: "second", UpdatedAt: ts(300)},
	}
	snapshot := []*entity.Chat{
		{Id: "c1", UserId: "u1", UpdatedAt: ts(100)},
	}

	plan := BuildSyncPlan("u1", incoming, snapshot)

	assert.Len(t, plan.Upserts, 2)
}
