package room

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/palemoky/strike-arena/internal/protocol"
)

// 回合播报文案（沿用原服务端的对客户端输出）
const (
	announceWarmupFormat = "РАЗМИНКА: %d СЕКУНД"
	announceFreezeFormat = "РАУНД %d - ПОДГОТОВКА"
	announceLive         = "БОЙ НАЧАЛСЯ!"
	announceWinFormat    = "%s ПОБЕДИЛИ В РАУНДЕ!"
	teamNameT            = "ТЕРРОРИСТЫ"
	teamNameCT           = "СПЕЦНАЗ"
)

// startClock 启动每秒一次的回合时钟。每个房间一个独立的可取消定时任务，
// 房间销毁的瞬间通过 stopClock 停止，不对无人房间空转。
func (r *Room) startClock() {
	go func() {
		ticker := time.NewTicker(time.Second)
		defer ticker.Stop()

		for {
			select {
			case <-r.clockStop:
				return
			case <-ticker.C:
				r.Tick()
			}
		}
	}()
}

// stopClock 停止回合时钟，可安全重复调用
func (r *Room) stopClock() {
	r.clockOnce.Do(func() {
		close(r.clockStop)
	})
}

// Tick 推进一秒回合逻辑：
//  1. 计时器减一（不低于 0）；
//  2. 仅在 live 阶段做歼灭判定，先查 T 后查 CT，同时歼灭时 CT 胜；
//  3. 歼灭未触发且计时器归零时按当前阶段流转；
//  4. 每次滴答都广播完整回合快照。
func (r *Room) Tick() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.Status != RoomStatusPlaying {
		return
	}

	rs := &r.Round

	if rs.Timer > 0 {
		rs.Timer--
	}

	resolved := false
	if rs.Status == RoundLive {
		resolved = r.checkEliminationLocked()
	}

	if !resolved && rs.Timer <= 0 {
		switch rs.Status {
		case RoundWarmup:
			r.startFreezeLocked()
		case RoundFreeze:
			r.startLiveLocked()
		case RoundLive:
			// 时间耗尽 → 默认防守方获胜（拆弹图逻辑）
			r.resolveRoundLocked(protocol.TeamCT)
		case RoundEnd:
			r.startFreezeLocked() // 下一回合
		}
	}

	r.broadcastLocked(protocol.MustNewMessage(protocol.MsgGameStateUpdate, r.roundInfoLocked()))

	go func() { _ = r.store.SaveRoom(context.Background(), r.ID, r.ToRoomData()) }()
}

// checkEliminationLocked 歼灭判定。一个阵营有人且全灭时本回合立即结束。
// 先查 T 再查 CT，两边同时可判时 CT 胜——保持这个求值顺序，不要“修正”。
func (r *Room) checkEliminationLocked() bool {
	var aliveT, aliveCT, totalT, totalCT int
	for _, m := range r.Members {
		switch m.Session.Team() {
		case protocol.TeamT:
			totalT++
			if !m.Session.IsDead() {
				aliveT++
			}
		case protocol.TeamCT:
			totalCT++
			if !m.Session.IsDead() {
				aliveCT++
			}
		}
	}

	if totalT > 0 && aliveT == 0 {
		r.resolveRoundLocked(protocol.TeamCT)
		return true
	}
	if totalCT > 0 && aliveCT == 0 {
		r.resolveRoundLocked(protocol.TeamT)
		return true
	}
	return false
}

// startWarmupLocked 进入热身阶段
func (r *Room) startWarmupLocked() {
	r.Round.Status = RoundWarmup
	r.Round.Timer = r.durations.Warmup

	r.broadcastLocked(protocol.MustNewMessage(protocol.MsgAnnouncement, protocol.AnnouncementPayload{
		Text: fmt.Sprintf(announceWarmupFormat, r.durations.Warmup),
	}))
}

// startFreezeLocked 进入准备阶段：回合数递增，全员重生
func (r *Room) startFreezeLocked() {
	r.Round.Status = RoundFreeze
	r.Round.Timer = r.durations.Freeze
	r.Round.Round++
	r.Round.Winner = ""

	for _, m := range r.Members {
		m.Session.Respawn()
	}

	// 客户端收到后重置出生点位置
	r.broadcastLocked(protocol.MustNewMessage(protocol.MsgRespawnAll, nil))
	r.broadcastLocked(protocol.MustNewMessage(protocol.MsgAnnouncement, protocol.AnnouncementPayload{
		Text: fmt.Sprintf(announceFreezeFormat, r.Round.Round),
	}))
}

// startLiveLocked 进入交战阶段
func (r *Room) startLiveLocked() {
	r.Round.Status = RoundLive
	r.Round.Timer = r.durations.Live

	r.broadcastLocked(protocol.MustNewMessage(protocol.MsgAnnouncement, protocol.AnnouncementPayload{
		Text: announceLive,
	}))
}

// resolveRoundLocked 判定回合胜负并进入结算阶段。
// 守卫转换：只有 live 阶段能结算，同一回合不会二次触发
// （歼灭与计时耗尽、命中结算与滴答都可能竞争同一次结束）。
func (r *Room) resolveRoundLocked(winner protocol.Team) {
	if r.Round.Status != RoundLive {
		return
	}

	r.Round.Status = RoundEnd
	r.Round.Timer = r.durations.End
	r.Round.Winner = winner

	winnerName := teamNameCT
	if winner == protocol.TeamT {
		r.Round.ScoreT++
		winnerName = teamNameT
	} else {
		r.Round.ScoreCT++
	}

	r.broadcastLocked(protocol.MustNewMessage(protocol.MsgAnnouncement, protocol.AnnouncementPayload{
		Text: fmt.Sprintf(announceWinFormat, winnerName),
	}))

	log.Printf("🏁 房间 %s 第 %d 回合结束，%s 获胜 (T %d : CT %d)",
		r.ID, r.Round.Round, winner, r.Round.ScoreT, r.Round.ScoreCT)
}
