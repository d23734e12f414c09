package room

import (
	"context"
	"log"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/palemoky/strike-arena/internal/apperrors"
	"github.com/palemoky/strike-arena/internal/protocol"
	"github.com/palemoky/strike-arena/internal/server/session"
	"github.com/palemoky/strike-arena/internal/server/storage"
	"github.com/palemoky/strike-arena/internal/types"
)

// DefaultMap 默认地图
const DefaultMap = "de_dust2"

// RoomManager 房间注册表。
// 替代全局 rooms 映射：由 Server 持有并注入处理器。
type RoomManager struct {
	redisStore  *storage.RedisStore
	leaderboard *storage.LeaderboardManager
	durations   Durations
	maxPlayers  int
	rooms       map[string]*Room
	mu          sync.RWMutex
}

// NewRoomManager 创建房间注册表
func NewRoomManager(rs *storage.RedisStore, lb *storage.LeaderboardManager, durations Durations, maxPlayers int) *RoomManager {
	return &RoomManager{
		redisStore:  rs,
		leaderboard: lb,
		durations:   durations,
		maxPlayers:  maxPlayers,
		rooms:       make(map[string]*Room),
	}
}

// CreateRoom 创建房间，创建者成为房主兼唯一成员
func (rm *RoomManager) CreateRoom(client types.ClientInterface, sess *session.PlayerSession, mapName string) (*Room, error) {
	if sess == nil {
		return nil, apperrors.ErrNotInRoom
	}

	if mapName == "" {
		mapName = DefaultMap
	}

	rm.mu.Lock()
	defer rm.mu.Unlock()

	id := rm.generateRoomID()

	room := &Room{
		ID:      id,
		Name:    sess.Nickname + "'s Server",
		Map:     mapName,
		Status:  RoomStatusWaiting,
		Members: make(map[string]*Member),
		Round: RoundState{
			Status: RoundWaiting,
		},
		CreatedAt:   time.Now(),
		durations:   rm.durations,
		maxPlayers:  rm.maxPlayers,
		store:       rm.redisStore,
		leaderboard: rm.leaderboard,
		clockStop:   make(chan struct{}),
	}

	room.Members[client.GetID()] = &Member{Client: client, Session: sess}
	sess.JoinRoom(id, true)
	client.SetRoom(id)

	rm.rooms[id] = room

	// 镜像到 Redis
	go func() { _ = rm.redisStore.SaveRoom(context.Background(), room.ID, room.ToRoomData()) }()

	log.Printf("🏠 房间 %s (%s) 已创建，房主 %s", id, room.Name, sess.Nickname)

	return room, nil
}

// JoinRoom 加入房间。房间不存在时返回错误，调用方静默丢弃（不回发错误事件）。
// 不做容量限制，对局进行中也允许加入（迟到者通过 room_joined 快照对齐状态）。
func (rm *RoomManager) JoinRoom(client types.ClientInterface, sess *session.PlayerSession, roomID string) (*Room, error) {
	if sess == nil {
		return nil, apperrors.ErrNotInRoom
	}

	rm.mu.RLock()
	room, exists := rm.rooms[roomID]
	rm.mu.RUnlock()
	if !exists {
		return nil, apperrors.ErrRoomNotFound
	}

	room.mu.Lock()

	// 重入当前房间：战斗状态照常重置，但房主身份保留
	_, rejoining := room.Members[client.GetID()]
	room.Members[client.GetID()] = &Member{Client: client, Session: sess}
	sess.JoinRoom(roomID, rejoining && sess.IsHost())
	client.SetRoom(roomID)

	snapshot := room.snapshotLocked()
	room.broadcastExceptLocked(client.GetID(), protocol.MustNewMessage(protocol.MsgRoomUpdated, protocol.RoomUpdatedPayload{
		Room: snapshot,
	}))
	room.mu.Unlock()

	go func() { _ = rm.redisStore.SaveRoom(context.Background(), room.ID, room.ToRoomData()) }()

	log.Printf("👤 玩家 %s 加入房间 %s", sess.Nickname, roomID)

	return room, nil
}

// LeaveRoom 离开房间。最后一名成员离开时同步销毁房间并停止回合时钟。
func (rm *RoomManager) LeaveRoom(client types.ClientInterface) {
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

	delete(room.Members, client.GetID())
	member.Session.LeaveRoom()
	client.SetRoom("")

	empty := len(room.Members) == 0
	if !empty {
		room.broadcastLocked(protocol.MustNewMessage(protocol.MsgPlayerLeft, protocol.PlayerLeftPayload{
			ID: client.GetID(),
		}))
		room.broadcastLocked(protocol.MustNewMessage(protocol.MsgRoomUpdated, protocol.RoomUpdatedPayload{
			Room: room.snapshotLocked(),
		}))
	}
	room.mu.Unlock()

	log.Printf("👋 玩家 %s 离开房间 %s", member.Session.Nickname, roomID)

	if empty {
		// 空房间不允许存在：停钟、摘除、清理镜像
		room.stopClock()
		rm.mu.Lock()
		delete(rm.rooms, roomID)
		rm.mu.Unlock()
		go func() { _ = rm.redisStore.DeleteRoom(context.Background(), roomID) }()
		log.Printf("🏠 房间 %s 已解散", roomID)
	} else {
		go func() { _ = rm.redisStore.SaveRoom(context.Background(), room.ID, room.ToRoomData()) }()
	}
}

// GetRoom 获取房间
func (rm *RoomManager) GetRoom(roomID string) *Room {
	rm.mu.RLock()
	defer rm.mu.RUnlock()
	return rm.rooms[roomID]
}

// GetRoomByPlayerID 通过玩家 ID 获取房间
func (rm *RoomManager) GetRoomByPlayerID(playerID string) *Room {
	rm.mu.RLock()
	defer rm.mu.RUnlock()

	for _, room := range rm.rooms {
		room.mu.RLock()
		_, exists := room.Members[playerID]
		room.mu.RUnlock()
		if exists {
			return room
		}
	}
	return nil
}

// GetRoomList 获取房间列表快照
func (rm *RoomManager) GetRoomList() []protocol.RoomListItem {
	rm.mu.RLock()
	defer rm.mu.RUnlock()

	rooms := make([]protocol.RoomListItem, 0, len(rm.rooms))
	for _, room := range rm.rooms {
		rooms = append(rooms, room.ListItem())
	}
	return rooms
}

// GetActiveGamesCount 获取进行中的对局数量
func (rm *RoomManager) GetActiveGamesCount() int {
	rm.mu.RLock()
	defer rm.mu.RUnlock()

	count := 0
	for _, room := range rm.rooms {
		room.mu.RLock()
		if room.Status == RoomStatusPlaying {
			count++
		}
		room.mu.RUnlock()
	}
	return count
}

// generateRoomID 生成唯一房间号
func (rm *RoomManager) generateRoomID() string {
	for {
		id := make([]byte, roomIDLength)
		for i := range id {
			id[i] = roomIDChars[rand.IntN(len(roomIDChars))]
		}
		idStr := "room-" + string(id)
		if _, exists := rm.rooms[idStr]; !exists {
			return idStr
		}
	}
}
