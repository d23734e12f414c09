package handler

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/strike-arena/internal/game/room"
	"github.com/palemoky/strike-arena/internal/protocol"
	"github.com/palemoky/strike-arena/internal/server/session"
	"github.com/palemoky/strike-arena/internal/server/storage"
	"github.com/palemoky/strike-arena/internal/testutil"
)

type handlerFixture struct {
	handler  *Handler
	server   *testutil.StubServer
	rooms    *room.RoomManager
	sessions *session.SessionManager
}

func newHandlerFixture() *handlerFixture {
	return newHandlerFixtureWithLeaderboard(nil)
}

func newHandlerFixtureWithLeaderboard(lb *storage.LeaderboardManager) *handlerFixture {
	srv := &testutil.StubServer{}
	rm := room.NewRoomManager(nil, lb, room.DefaultDurations(), 10)
	sm := session.NewSessionManager()
	return &handlerFixture{
		handler:  NewHandler(HandlerDeps{Server: srv, RoomManager: rm, SessionManager: sm, Leaderboard: lb}),
		server:   srv,
		rooms:    rm,
		sessions: sm,
	}
}

// connect registers a client the way the websocket accept path does.
func (f *handlerFixture) connect(id, nickname string) *testutil.SimpleClient {
	client := testutil.NewSimpleClient(id, nickname)
	f.sessions.CreateSession(id, nickname, "")
	return client
}

func TestHandleCreateRoom(t *testing.T) {
	t.Parallel()

	f := newHandlerFixture()
	client := f.connect("p1", "alice")

	f.handler.Handle(client, protocol.MustNewMessage(protocol.MsgCreateRoom, protocol.CreateRoomPayload{}))

	msg := client.LastOfType(protocol.MsgRoomJoined)
	require.NotNil(t, msg)
	payload, err := protocol.ParsePayload[protocol.RoomJoinedPayload](msg)
	require.NoError(t, err)

	assert.Equal(t, "alice's Server", payload.Room.Name)
	assert.Equal(t, room.DefaultMap, payload.Room.Map)
	assert.Equal(t, "waiting", payload.Room.Status)
	assert.Equal(t, "waiting", payload.Room.Round.Status)
	require.Len(t, payload.Room.Players, 1)
	assert.True(t, payload.Room.Players[0].IsHost)
	assert.Equal(t, "p1", payload.Room.Players[0].ID)
}

func TestCreateRoomDuringMaintenance(t *testing.T) {
	t.Parallel()

	f := newHandlerFixture()
	f.server.Maintenance = true
	client := f.connect("p1", "alice")

	f.handler.Handle(client, protocol.MustNewMessage(protocol.MsgCreateRoom, nil))

	msg := client.LastOfType(protocol.MsgError)
	require.NotNil(t, msg)
	payload, err := protocol.ParsePayload[protocol.ErrorPayload](msg)
	require.NoError(t, err)
	assert.Equal(t, protocol.ErrCodeServerMaintenance, payload.Code)
	assert.Empty(t, f.rooms.GetRoomList())
}

// Without a session the request is dropped silently.
func TestCreateRoomWithoutSession(t *testing.T) {
	t.Parallel()

	f := newHandlerFixture()
	client := testutil.NewSimpleClient("ghost", "ghost")

	f.handler.Handle(client, protocol.MustNewMessage(protocol.MsgCreateRoom, nil))

	assert.Empty(t, client.SentMessages())
	assert.Empty(t, f.rooms.GetRoomList())
}

func TestJoinRoomSendsSnapshotToJoiner(t *testing.T) {
	t.Parallel()

	f := newHandlerFixture()
	host := f.connect("p1", "alice")
	f.handler.Handle(host, protocol.MustNewMessage(protocol.MsgCreateRoom, nil))
	roomID := host.GetRoom()
	require.NotEmpty(t, roomID)
	host.Reset()

	peer := f.connect("p2", "bob")
	f.handler.Handle(peer, protocol.MustNewMessage(protocol.MsgJoinRoom, protocol.JoinRoomPayload{RoomID: roomID}))

	msg := peer.LastOfType(protocol.MsgRoomJoined)
	require.NotNil(t, msg)
	payload, err := protocol.ParsePayload[protocol.RoomJoinedPayload](msg)
	require.NoError(t, err)
	assert.Len(t, payload.Room.Players, 2)

	// Existing members get the roster update, not the join snapshot.
	assert.Equal(t, 1, host.CountType(protocol.MsgRoomUpdated))
	assert.Equal(t, 0, host.CountType(protocol.MsgRoomJoined))
}

// Joining a nonexistent room is a silent no-op: no error event goes out.
func TestJoinUnknownRoomSilentlyDropped(t *testing.T) {
	t.Parallel()

	f := newHandlerFixture()
	client := f.connect("p1", "alice")

	f.handler.Handle(client, protocol.MustNewMessage(protocol.MsgJoinRoom, protocol.JoinRoomPayload{RoomID: "room-000000"}))

	assert.Empty(t, client.SentMessages())
	assert.Empty(t, client.GetRoom())
}

// Creating while already in a room leaves the old one first.
func TestCreateRoomLeavesCurrentRoom(t *testing.T) {
	t.Parallel()

	f := newHandlerFixture()
	client := f.connect("p1", "alice")
	f.handler.Handle(client, protocol.MustNewMessage(protocol.MsgCreateRoom, nil))
	firstRoom := client.GetRoom()

	f.handler.Handle(client, protocol.MustNewMessage(protocol.MsgCreateRoom, nil))
	secondRoom := client.GetRoom()

	assert.NotEqual(t, firstRoom, secondRoom)
	assert.Nil(t, f.rooms.GetRoom(firstRoom)) // emptied and destroyed
	assert.NotNil(t, f.rooms.GetRoom(secondRoom))
}

func TestGetRooms(t *testing.T) {
	t.Parallel()

	f := newHandlerFixture()
	host := f.connect("p1", "alice")
	f.handler.Handle(host, protocol.MustNewMessage(protocol.MsgCreateRoom, nil))

	lobby := f.connect("p2", "bob")
	f.handler.Handle(lobby, protocol.MustNewMessage(protocol.MsgGetRooms, nil))

	msg := lobby.LastOfType(protocol.MsgRoomsList)
	require.NotNil(t, msg)
	payload, err := protocol.ParsePayload[protocol.RoomsListPayload](msg)
	require.NoError(t, err)
	require.Len(t, payload.Rooms, 1)
	assert.Equal(t, "alice's Server", payload.Rooms[0].Name)
}

func TestSwitchTeamViaHandler(t *testing.T) {
	t.Parallel()

	f := newHandlerFixture()
	client := f.connect("p1", "alice")
	f.handler.Handle(client, protocol.MustNewMessage(protocol.MsgCreateRoom, nil))

	f.handler.Handle(client, protocol.MustNewMessage(protocol.MsgSwitchTeam, protocol.SwitchTeamPayload{Team: protocol.TeamCT}))

	assert.Equal(t, protocol.TeamCT, f.sessions.GetSession("p1").Team())
}

func TestUpdateRelayedWithoutEcho(t *testing.T) {
	t.Parallel()

	f := newHandlerFixture()
	host := f.connect("p1", "alice")
	f.handler.Handle(host, protocol.MustNewMessage(protocol.MsgCreateRoom, nil))
	peer := f.connect("p2", "bob")
	f.handler.Handle(peer, protocol.MustNewMessage(protocol.MsgJoinRoom, protocol.JoinRoomPayload{RoomID: host.GetRoom()}))
	host.Reset()
	peer.Reset()

	update := protocol.UpdatePayload{
		Pos:    protocol.Vec3{X: 3, Y: 0, Z: -1},
		Rot:    protocol.Rotation{Y: 1.2},
		Weapon: "rifle",
	}
	f.handler.Handle(host, protocol.MustNewMessage(protocol.MsgUpdate, update))

	// Peer receives the relay, the sender does not hear its own echo.
	msg := peer.LastOfType(protocol.MsgPlayerMoved)
	require.NotNil(t, msg)
	payload, err := protocol.ParsePayload[protocol.PlayerMovedPayload](msg)
	require.NoError(t, err)
	assert.Equal(t, "p1", payload.ID)
	assert.Equal(t, update.Pos, payload.Pos)
	assert.Equal(t, "rifle", payload.Weapon)

	assert.Equal(t, 0, host.CountType(protocol.MsgPlayerMoved))

	// The session keeps the last reported transform.
	pos, _, weapon, _ := f.sessions.GetSession("p1").Transform()
	assert.Equal(t, update.Pos, pos)
	assert.Equal(t, "rifle", weapon)
}

func TestUpdateOutsideRoomIgnored(t *testing.T) {
	t.Parallel()

	f := newHandlerFixture()
	client := f.connect("p1", "alice")

	f.handler.Handle(client, protocol.MustNewMessage(protocol.MsgUpdate, protocol.UpdatePayload{}))

	assert.Empty(t, client.SentMessages())
}

func TestShootRelayed(t *testing.T) {
	t.Parallel()

	f := newHandlerFixture()
	host := f.connect("p1", "alice")
	f.handler.Handle(host, protocol.MustNewMessage(protocol.MsgCreateRoom, nil))
	peer := f.connect("p2", "bob")
	f.handler.Handle(peer, protocol.MustNewMessage(protocol.MsgJoinRoom, protocol.JoinRoomPayload{RoomID: host.GetRoom()}))
	host.Reset()
	peer.Reset()

	shot := protocol.ShootPayload{Origin: protocol.Vec3{X: 1}, Direction: protocol.Vec3{Z: -1}}
	f.handler.Handle(host, protocol.MustNewMessage(protocol.MsgShoot, shot))

	msg := peer.LastOfType(protocol.MsgPlayerShot)
	require.NotNil(t, msg)
	payload, err := protocol.ParsePayload[protocol.PlayerShotPayload](msg)
	require.NoError(t, err)
	assert.Equal(t, "p1", payload.ID)
	assert.Equal(t, shot.Origin, payload.Origin)
	assert.Equal(t, shot.Direction, payload.Direction)

	assert.Equal(t, 0, host.CountType(protocol.MsgPlayerShot))
}

func TestHitRoutedToCombat(t *testing.T) {
	t.Parallel()

	f := newHandlerFixture()
	host := f.connect("p1", "alice")
	f.handler.Handle(host, protocol.MustNewMessage(protocol.MsgCreateRoom, nil))
	peer := f.connect("p2", "bob")
	f.handler.Handle(peer, protocol.MustNewMessage(protocol.MsgJoinRoom, protocol.JoinRoomPayload{RoomID: host.GetRoom()}))
	f.handler.Handle(host, protocol.MustNewMessage(protocol.MsgStartGame, nil))

	// Warmup allows damage, so the hit lands right after start.
	f.handler.Handle(host, protocol.MustNewMessage(protocol.MsgHit, protocol.HitPayload{
		TargetID: "p2",
		Damage:   35,
	}))

	assert.Equal(t, 65, f.sessions.GetSession("p2").Health())
}

func TestPingPong(t *testing.T) {
	t.Parallel()

	f := newHandlerFixture()
	client := f.connect("p1", "alice")

	sent := time.Now().UnixMilli()
	f.handler.Handle(client, protocol.MustNewMessage(protocol.MsgPing, protocol.PingPayload{Timestamp: sent}))

	msg := client.LastOfType(protocol.MsgPong)
	require.NotNil(t, msg)
	payload, err := protocol.ParsePayload[protocol.PongPayload](msg)
	require.NoError(t, err)
	assert.Equal(t, sent, payload.ClientTimestamp)
	assert.GreaterOrEqual(t, payload.ServerTimestamp, sent)
}

func TestUnknownMessageType(t *testing.T) {
	t.Parallel()

	f := newHandlerFixture()
	client := f.connect("p1", "alice")

	f.handler.Handle(client, &protocol.Message{Type: "teleport"})

	msg := client.LastOfType(protocol.MsgError)
	require.NotNil(t, msg)
	payload, err := protocol.ParsePayload[protocol.ErrorPayload](msg)
	require.NoError(t, err)
	assert.Equal(t, protocol.ErrCodeInvalidMsg, payload.Code)
}

func TestMalformedPayloadRejected(t *testing.T) {
	t.Parallel()

	f := newHandlerFixture()
	client := f.connect("p1", "alice")

	f.handler.Handle(client, &protocol.Message{Type: protocol.MsgJoinRoom, Payload: []byte(`{"room_id":`)})

	msg := client.LastOfType(protocol.MsgError)
	require.NotNil(t, msg)
	payload, err := protocol.ParsePayload[protocol.ErrorPayload](msg)
	require.NoError(t, err)
	assert.Equal(t, protocol.ErrCodeInvalidMsg, payload.Code)
}

// Re-sending join_room for the current room must not pass through the
// leave-first path: for a sole member that would destroy the room and strand
// the player in the lobby. It re-adds with reset state instead.
func TestRejoinOwnRoomKeepsRoomAlive(t *testing.T) {
	t.Parallel()

	f := newHandlerFixture()
	client := f.connect("p1", "alice")
	f.handler.Handle(client, protocol.MustNewMessage(protocol.MsgCreateRoom, nil))
	roomID := client.GetRoom()
	require.NotEmpty(t, roomID)

	sess := f.sessions.GetSession("p1")
	sess.SetTeam(protocol.TeamT)
	sess.ApplyDamage(60)
	client.Reset()

	f.handler.Handle(client, protocol.MustNewMessage(protocol.MsgJoinRoom, protocol.JoinRoomPayload{RoomID: roomID}))

	require.NotNil(t, f.rooms.GetRoom(roomID))
	assert.Equal(t, roomID, client.GetRoom())
	assert.Equal(t, 1, client.CountType(protocol.MsgRoomJoined))

	// Combat state resets like any join, host status survives.
	assert.True(t, sess.IsHost())
	assert.Equal(t, session.FullHealth, sess.Health())
	assert.Equal(t, protocol.Team(""), sess.Team())
	assert.Equal(t, 1, f.rooms.GetRoom(roomID).MemberCount())
}

func TestGetLeaderboard(t *testing.T) {
	t.Parallel()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	lb := storage.NewLeaderboardManager(rdb)

	ctx := context.Background()
	require.NoError(t, lb.RecordKill(ctx, "alice"))
	require.NoError(t, lb.RecordKill(ctx, "alice"))
	require.NoError(t, lb.RecordKill(ctx, "bob"))

	f := newHandlerFixtureWithLeaderboard(lb)
	client := f.connect("p1", "carol")

	f.handler.Handle(client, protocol.MustNewMessage(protocol.MsgGetLeaderboard, protocol.GetLeaderboardPayload{Limit: 1}))

	msg := client.LastOfType(protocol.MsgLeaderboard)
	require.NotNil(t, msg)
	payload, err := protocol.ParsePayload[protocol.LeaderboardPayload](msg)
	require.NoError(t, err)
	require.Len(t, payload.Entries, 1)
	assert.Equal(t, protocol.LeaderboardEntry{Rank: 1, PlayerID: "alice", Kills: 2}, payload.Entries[0])
}

// Without Redis the board is served empty rather than erroring out.
func TestGetLeaderboardWithoutRedis(t *testing.T) {
	t.Parallel()

	f := newHandlerFixture()
	client := f.connect("p1", "alice")

	f.handler.Handle(client, protocol.MustNewMessage(protocol.MsgGetLeaderboard, nil))

	msg := client.LastOfType(protocol.MsgLeaderboard)
	require.NotNil(t, msg)
	payload, err := protocol.ParsePayload[protocol.LeaderboardPayload](msg)
	require.NoError(t, err)
	assert.Empty(t, payload.Entries)
}

func TestRequestRespawnViaHandler(t *testing.T) {
	t.Parallel()

	f := newHandlerFixture()
	client := f.connect("p1", "alice")
	f.handler.Handle(client, protocol.MustNewMessage(protocol.MsgCreateRoom, nil))

	sess := f.sessions.GetSession("p1")
	sess.ApplyDamage(150)
	sess.MarkDead()

	f.handler.Handle(client, protocol.MustNewMessage(protocol.MsgRequestRespawn, nil))

	assert.False(t, sess.IsDead())
	assert.Equal(t, session.FullHealth, sess.Health())
	assert.Equal(t, 1, client.CountType(protocol.MsgPlayerRespawned))
}
