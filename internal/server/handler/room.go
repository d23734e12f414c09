package handler

import (
	"github.com/palemoky/strike-arena/internal/protocol"
	"github.com/palemoky/strike-arena/internal/types"
)

// handleGetRooms 处理获取房间列表
func (h *Handler) handleGetRooms(client types.ClientInterface) {
	client.SendMessage(protocol.MustNewMessage(protocol.MsgRoomsList, protocol.RoomsListPayload{
		Rooms: h.roomManager.GetRoomList(),
	}))
}

// handleCreateRoom 处理创建房间
func (h *Handler) handleCreateRoom(client types.ClientInterface, msg *protocol.Message) {
	// 维护模式检查
	if h.server.IsMaintenanceMode() {
		client.SendMessage(protocol.NewErrorMessageWithText(
			protocol.ErrCodeServerMaintenance, "服务器维护中，暂停创建房间"))
		return
	}

	var mapName string
	if len(msg.Payload) > 0 {
		payload, err := protocol.ParsePayload[protocol.CreateRoomPayload](msg)
		if err != nil {
			client.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeInvalidMsg))
			return
		}
		mapName = payload.Map
	}

	// 如果已在房间中，先离开
	if client.GetRoom() != "" {
		h.roomManager.LeaveRoom(client)
	}

	sess := h.sessionManager.GetSession(client.GetID())
	r, err := h.roomManager.CreateRoom(client, sess, mapName)
	if err != nil {
		// 会话不存在：按契约静默丢弃
		return
	}

	client.SendMessage(protocol.MustNewMessage(protocol.MsgRoomJoined, protocol.RoomJoinedPayload{
		Room: r.Snapshot(),
	}))
}

// handleJoinRoom 处理加入房间
func (h *Handler) handleJoinRoom(client types.ClientInterface, msg *protocol.Message) {
	// 维护模式检查
	if h.server.IsMaintenanceMode() {
		client.SendMessage(protocol.NewErrorMessageWithText(
			protocol.ErrCodeServerMaintenance, "服务器维护中，暂停加入房间"))
		return
	}

	payload, err := protocol.ParsePayload[protocol.JoinRoomPayload](msg)
	if err != nil {
		client.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeInvalidMsg))
		return
	}

	// 换房时先离开旧房间。重入当前房间不先离开：
	// 独居房主先离开会把房间销毁，再加入就找不到房间了。
	if cur := client.GetRoom(); cur != "" && cur != payload.RoomID {
		h.roomManager.LeaveRoom(client)
	}

	sess := h.sessionManager.GetSession(client.GetID())
	r, err := h.roomManager.JoinRoom(client, sess, payload.RoomID)
	if err != nil {
		// 房间不存在：静默空操作，不回发错误事件
		return
	}

	client.SendMessage(protocol.MustNewMessage(protocol.MsgRoomJoined, protocol.RoomJoinedPayload{
		Room: r.Snapshot(),
	}))
}

// handleSwitchTeam 处理切换队伍
func (h *Handler) handleSwitchTeam(client types.ClientInterface, msg *protocol.Message) {
	payload, err := protocol.ParsePayload[protocol.SwitchTeamPayload](msg)
	if err != nil {
		client.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeInvalidMsg))
		return
	}

	h.roomManager.SwitchTeam(client, payload.Team)
}

// handleStartGame 处理房主开始对局（非房主静默忽略）
func (h *Handler) handleStartGame(client types.ClientInterface) {
	h.roomManager.StartMatch(client)
}
