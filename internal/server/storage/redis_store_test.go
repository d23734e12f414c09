package storage

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisStore(client), mr
}

func sampleRoomData() *RoomData {
	return &RoomData{
		ID:     "room-123456",
		Name:   "alice's Server",
		Map:    "de_dust2",
		Status: "playing",
		Players: []PlayerData{
			{ID: "p1", Nickname: "alice", Team: "T", IsHost: true, Health: 100},
			{ID: "p2", Nickname: "bob", Team: "CT", IsDead: true, Health: -10, Deaths: 1},
		},
		Round: RoundData{
			Status:  "live",
			Timer:   412,
			Round:   3,
			ScoreT:  2,
			ScoreCT: 1,
		},
		CreatedAt: time.Now().Unix(),
	}
}

func TestSaveAndLoadRoom(t *testing.T) {
	t.Parallel()

	store, mr := newTestStore(t)
	ctx := context.Background()
	data := sampleRoomData()

	require.NoError(t, store.SaveRoom(ctx, data.ID, data))

	loaded, err := store.LoadRoom(ctx, data.ID)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, data, loaded)

	// Snapshots expire on their own.
	assert.Equal(t, roomExpiration, mr.TTL(roomKeyPrefix+data.ID))
}

func TestLoadRoomMissing(t *testing.T) {
	t.Parallel()

	store, _ := newTestStore(t)

	loaded, err := store.LoadRoom(context.Background(), "room-000000")
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestDeleteRoom(t *testing.T) {
	t.Parallel()

	store, _ := newTestStore(t)
	ctx := context.Background()
	data := sampleRoomData()

	require.NoError(t, store.SaveRoom(ctx, data.ID, data))
	require.NoError(t, store.DeleteRoom(ctx, data.ID))

	loaded, err := store.LoadRoom(ctx, data.ID)
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

// Running without Redis configured is fine: every call degrades to a no-op.
func TestStoreWithoutRedis(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	var store *RedisStore
	assert.NoError(t, store.SaveRoom(ctx, "room-1", sampleRoomData()))

	store = NewRedisStore(nil)
	assert.NoError(t, store.SaveRoom(ctx, "room-1", sampleRoomData()))
	assert.NoError(t, store.DeleteRoom(ctx, "room-1"))

	loaded, err := store.LoadRoom(ctx, "room-1")
	assert.NoError(t, err)
	assert.Nil(t, loaded)
}
