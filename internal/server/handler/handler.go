package handler

import (
	"log"

	"github.com/palemoky/strike-arena/internal/game/room"
	"github.com/palemoky/strike-arena/internal/logger"
	"github.com/palemoky/strike-arena/internal/protocol"
	"github.com/palemoky/strike-arena/internal/server/session"
	"github.com/palemoky/strike-arena/internal/server/storage"
	"github.com/palemoky/strike-arena/internal/types"
)

// HandlerDeps 处理器依赖
type HandlerDeps struct {
	Server         types.ServerInterface
	RoomManager    *room.RoomManager
	SessionManager *session.SessionManager
	Leaderboard    *storage.LeaderboardManager
}

// Handler 消息处理器
type Handler struct {
	server         types.ServerInterface
	roomManager    *room.RoomManager
	sessionManager *session.SessionManager
	leaderboard    *storage.LeaderboardManager
	handlers       map[protocol.MessageType]handlerFunc
}

// handlerFunc 统一的处理器函数签名
type handlerFunc func(client types.ClientInterface, msg *protocol.Message)

// NewHandler 创建处理器
func NewHandler(deps HandlerDeps) *Handler {
	h := &Handler{
		server:         deps.Server,
		roomManager:    deps.RoomManager,
		sessionManager: deps.SessionManager,
		leaderboard:    deps.Leaderboard,
	}
	h.initHandlers()
	return h
}

// initHandlers 初始化消息处理器映射
func (h *Handler) initHandlers() {
	h.handlers = map[protocol.MessageType]handlerFunc{
		// 连接操作
		protocol.MsgPing: h.handlePing,

		// 房间操作
		protocol.MsgGetRooms:   func(c types.ClientInterface, _ *protocol.Message) { h.handleGetRooms(c) },
		protocol.MsgCreateRoom: h.handleCreateRoom,
		protocol.MsgJoinRoom:   h.handleJoinRoom,
		protocol.MsgSwitchTeam: h.handleSwitchTeam,
		protocol.MsgStartGame:  func(c types.ClientInterface, _ *protocol.Message) { h.handleStartGame(c) },

		// 对局操作
		protocol.MsgUpdate:         h.handleUpdate,
		protocol.MsgShoot:          h.handleShoot,
		protocol.MsgHit:            h.handleHit,
		protocol.MsgRequestRespawn: func(c types.ClientInterface, _ *protocol.Message) { h.handleRequestRespawn(c) },

		// 统计
		protocol.MsgGetLeaderboard: h.handleGetLeaderboard,
	}
}

// Handle 处理消息。单个处理器 panic 不能拖垮整条连接的读循环，
// 更不能波及房间时钟，这里统一兜底。
func (h *Handler) Handle(client types.ClientInterface, msg *protocol.Message) {
	defer func() {
		if r := recover(); r != nil {
			logger.LogPanic(r)
			log.Printf("💥 处理消息 '%s' 时 panic (玩家: %s): %v", msg.Type, client.GetID(), r)
		}
	}()

	if handler, ok := h.handlers[msg.Type]; ok {
		handler(client, msg)
		return
	}

	log.Printf("⚠️  未知消息类型: '%s' (来自玩家: %s, ID: %s)", msg.Type, client.GetName(), client.GetID())
	client.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeInvalidMsg))
}
