package handler

import (
	"context"
	"log"
	"time"

	"github.com/palemoky/strike-arena/internal/protocol"
	"github.com/palemoky/strike-arena/internal/types"
)

const (
	defaultLeaderboardLimit = 10
	maxLeaderboardLimit     = 50
)

// handleGetLeaderboard 处理击杀榜查询。
// 未配置 Redis 时返回空榜单，与记录侧的最佳努力语义一致。
func (h *Handler) handleGetLeaderboard(client types.ClientInterface, msg *protocol.Message) {
	limit := defaultLeaderboardLimit
	if len(msg.Payload) > 0 {
		payload, err := protocol.ParsePayload[protocol.GetLeaderboardPayload](msg)
		if err != nil {
			client.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeInvalidMsg))
			return
		}
		if payload.Limit > 0 {
			limit = payload.Limit
		}
	}
	if limit > maxLeaderboardLimit {
		limit = maxLeaderboardLimit
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	top, err := h.leaderboard.GetTopKillers(ctx, int64(limit))
	if err != nil {
		log.Printf("查询击杀榜失败: %v", err)
		client.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeUnknown))
		return
	}

	entries := make([]protocol.LeaderboardEntry, 0, len(top))
	for _, e := range top {
		entries = append(entries, protocol.LeaderboardEntry{
			Rank:     e.Rank,
			PlayerID: e.PlayerID,
			Kills:    e.Kills,
		})
	}

	client.SendMessage(protocol.MustNewMessage(protocol.MsgLeaderboard, protocol.LeaderboardPayload{
		Entries: entries,
	}))
}
