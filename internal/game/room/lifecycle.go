package room

import (
	"context"
	"log"

	"github.com/palemoky/strike-arena/internal/protocol"
	"github.com/palemoky/strike-arena/internal/types"
)

// SwitchTeam 切换阵营。不做人数平衡，队伍可以任意失衡。
// 非成员调用静默忽略。
func (rm *RoomManager) SwitchTeam(client types.ClientInterface, team protocol.Team) {
	roomID := client.GetRoom()
	if roomID == "" {
		return
	}

	rm.mu.RLock()
	room, exists := rm.rooms[roomID]
	rm.mu.RUnlock()
	if !exists {
		return
	}

	room.mu.Lock()
	member, exists := room.Members[client.GetID()]
	if !exists {
		room.mu.Unlock()
		return
	}

	member.Session.SetTeam(team)

	room.broadcastLocked(protocol.MustNewMessage(protocol.MsgRoomUpdated, protocol.RoomUpdatedPayload{
		Room: room.snapshotLocked(),
	}))
	room.mu.Unlock()

	go func() { _ = rm.redisStore.SaveRoom(context.Background(), room.ID, room.ToRoomData()) }()
}

// StartMatch 房主开始对局：进入热身并启动回合时钟。
// 非房主或已开始的房间静默忽略。没有房主迁移：房主在开始前退出，
// 房间将永远无法开始，直到空置被回收（沿用原行为）。
func (rm *RoomManager) StartMatch(client types.ClientInterface) {
	roomID := client.GetRoom()
	if roomID == "" {
		return
	}

	rm.mu.RLock()
	room, exists := rm.rooms[roomID]
	rm.mu.RUnlock()
	if !exists {
		return
	}

	room.mu.Lock()
	member, exists := room.Members[client.GetID()]
	if !exists || !member.Session.IsHost() || room.Status != RoomStatusWaiting {
		room.mu.Unlock()
		return
	}

	room.Status = RoomStatusPlaying
	room.startWarmupLocked()

	room.broadcastLocked(protocol.MustNewMessage(protocol.MsgGameStarted, nil))
	room.mu.Unlock()

	room.startClock()

	go func() { _ = rm.redisStore.SaveRoom(context.Background(), room.ID, room.ToRoomData()) }()

	log.Printf("🎯 房间 %s 对局开始（地图 %s）", room.ID, room.Map)
}

// RespawnPlayer 处理重生请求：清除死亡标记并回满血量
func (rm *RoomManager) RespawnPlayer(client types.ClientInterface) {
	roomID := client.GetRoom()
	if roomID == "" {
		return
	}

	rm.mu.RLock()
	room, exists := rm.rooms[roomID]
	rm.mu.RUnlock()
	if !exists {
		return
	}

	room.mu.Lock()
	member, exists := room.Members[client.GetID()]
	if !exists {
		room.mu.Unlock()
		return
	}

	member.Session.Respawn()

	room.broadcastLocked(protocol.MustNewMessage(protocol.MsgPlayerRespawned, protocol.PlayerRespawnedPayload{
		ID: client.GetID(),
	}))
	room.mu.Unlock()
}
