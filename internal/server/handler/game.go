package handler

import (
	"github.com/palemoky/strike-arena/internal/protocol"
	"github.com/palemoky/strike-arena/internal/types"
)

// handleUpdate 处理每帧状态更新。
// 存为会话的最新已知状态，并原样中继给房间内其他成员（不回显发送者）。
// 没有序号，也不做陈旧性判断：后到的就是最新的。
func (h *Handler) handleUpdate(client types.ClientInterface, msg *protocol.Message) {
	roomID := client.GetRoom()
	if roomID == "" {
		return
	}

	payload, err := protocol.ParsePayload[protocol.UpdatePayload](msg)
	if err != nil {
		return
	}

	sess := h.sessionManager.GetSession(client.GetID())
	if sess == nil {
		return
	}
	sess.SetTransform(payload.Pos, payload.Rot, payload.Weapon, payload.AnimState)

	r := h.roomManager.GetRoom(roomID)
	if r == nil {
		return
	}

	r.BroadcastExcept(client.GetID(), protocol.MustNewMessage(protocol.MsgPlayerMoved, protocol.PlayerMovedPayload{
		ID:        client.GetID(),
		Pos:       payload.Pos,
		Rot:       payload.Rot,
		Weapon:    payload.Weapon,
		AnimState: payload.AnimState,
	}))
}

// handleShoot 处理开枪：纯中继，弹道与命中都在客户端判定
func (h *Handler) handleShoot(client types.ClientInterface, msg *protocol.Message) {
	roomID := client.GetRoom()
	if roomID == "" {
		return
	}

	payload, err := protocol.ParsePayload[protocol.ShootPayload](msg)
	if err != nil {
		return
	}

	r := h.roomManager.GetRoom(roomID)
	if r == nil {
		return
	}

	r.BroadcastExcept(client.GetID(), protocol.MustNewMessage(protocol.MsgPlayerShot, protocol.PlayerShotPayload{
		ID:        client.GetID(),
		Origin:    payload.Origin,
		Direction: payload.Direction,
	}))
}

// handleHit 处理命中上报，交给战斗结算
func (h *Handler) handleHit(client types.ClientInterface, msg *protocol.Message) {
	payload, err := protocol.ParsePayload[protocol.HitPayload](msg)
	if err != nil {
		return
	}

	h.roomManager.ApplyClientReportedHit(client, payload.TargetID, payload.Damage, payload.Force)
}

// handleRequestRespawn 处理重生请求
func (h *Handler) handleRequestRespawn(client types.ClientInterface) {
	h.roomManager.RespawnPlayer(client)
}
