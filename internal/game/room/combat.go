package room

import (
	"context"
	"log"

	"github.com/palemoky/strike-arena/internal/protocol"
	"github.com/palemoky/strike-arena/internal/types"
)

// ApplyClientReportedHit 结算一次命中上报。
//
// 伤害值由攻击方客户端计算并上报，服务端不做弹道或伤害复算——这是
// 刻意保留的信任边界，函数名即标记。服务端只校验：
//   - 攻击者与目标都是本房间成员；
//   - 当前阶段允许伤害（live/warmup）；
//   - 目标未死亡。
//
// 任一条件不满足都是静默空操作，不回发错误。
// 死亡只触发一次：isDead 标记本身就是幂等保护，已死亡目标的后续
// 命中既不再扣血也不再广播。
func (rm *RoomManager) ApplyClientReportedHit(attacker types.ClientInterface, targetID string, damage int, force protocol.Vec3) {
	roomID := attacker.GetRoom()
	if roomID == "" {
		return
	}

	rm.mu.RLock()
	room, exists := rm.rooms[roomID]
	rm.mu.RUnlock()
	if !exists {
		return
	}

	room.applyHit(attacker.GetID(), targetID, damage, force)
}

func (r *Room) applyHit(attackerID, targetID string, damage int, force protocol.Vec3) {
	r.mu.Lock()
	defer r.mu.Unlock()

	attacker, ok := r.Members[attackerID]
	if !ok {
		return
	}
	target, ok := r.Members[targetID]
	if !ok {
		return
	}
	if !r.Round.DamageAllowed() {
		return
	}
	if target.Session.IsDead() {
		return
	}

	// 血量不做下限裁剪，可为负数
	health := target.Session.ApplyDamage(damage)

	r.broadcastLocked(protocol.MustNewMessage(protocol.MsgPlayerDamaged, protocol.PlayerDamagedPayload{
		ID:     targetID,
		Health: health,
	}))

	if health <= 0 && target.Session.MarkDead() {
		attacker.Session.AddKill()

		r.broadcastLocked(protocol.MustNewMessage(protocol.MsgPlayerDied, protocol.PlayerDiedPayload{
			VictimID: targetID,
			KillerID: attackerID,
			Force:    force, // 转发给布娃娃物理
		}))

		go func() {
			ctx := context.Background()
			_ = r.leaderboard.RecordKill(ctx, attackerID)
			_ = r.leaderboard.RecordDeath(ctx, targetID)
		}()

		log.Printf("💀 房间 %s: %s 击杀了 %s", r.ID, attackerID, targetID)
	}
}
