package storage

import (
	"context"

	"github.com/redis/go-redis/v9"
)

const (
	// Redis key
	playerStatsKey  = "player:stats:"
	killLeaderboard = "leaderboard:kills"
)

// KillBoardEntry 击杀榜条目
type KillBoardEntry struct {
	Rank     int    `json:"rank"`
	PlayerID string `json:"player_id"`
	Kills    int    `json:"kills"`
}

// LeaderboardManager 击杀榜管理器
type LeaderboardManager struct {
	redis *redis.Client
}

// NewLeaderboardManager 创建击杀榜管理器
func NewLeaderboardManager(client *redis.Client) *LeaderboardManager {
	return &LeaderboardManager{redis: client}
}

// RecordKill 记录一次击杀
func (lm *LeaderboardManager) RecordKill(ctx context.Context, killerID string) error {
	if lm == nil || lm.redis == nil {
		return nil
	}

	pipe := lm.redis.Pipeline()
	pipe.ZIncrBy(ctx, killLeaderboard, 1, killerID)
	pipe.HIncrBy(ctx, playerStatsKey+killerID, "kills", 1)
	_, err := pipe.Exec(ctx)
	return err
}

// RecordDeath 记录一次死亡
func (lm *LeaderboardManager) RecordDeath(ctx context.Context, victimID string) error {
	if lm == nil || lm.redis == nil {
		return nil
	}
	return lm.redis.HIncrBy(ctx, playerStatsKey+victimID, "deaths", 1).Err()
}

// GetTopKillers 获取击杀榜前 N 名
func (lm *LeaderboardManager) GetTopKillers(ctx context.Context, limit int64) ([]KillBoardEntry, error) {
	if lm == nil || lm.redis == nil {
		return nil, nil
	}

	results, err := lm.redis.ZRevRangeWithScores(ctx, killLeaderboard, 0, limit-1).Result()
	if err != nil {
		return nil, err
	}

	entries := make([]KillBoardEntry, 0, len(results))
	for i, z := range results {
		id, _ := z.Member.(string)
		entries = append(entries, KillBoardEntry{
			Rank:     i + 1,
			PlayerID: id,
			Kills:    int(z.Score),
		})
	}
	return entries, nil
}
