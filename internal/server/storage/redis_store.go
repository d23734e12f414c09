package storage

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// Redis key 前缀
	roomKeyPrefix = "room:"

	// 房间数据过期时间
	roomExpiration = 2 * time.Hour
)

// RoomData 房间数据（用于 Redis 序列化）。
// 只作运维侧的最佳努力镜像，重启后不做恢复。
type RoomData struct {
	ID        string       `json:"id"`
	Name      string       `json:"name"`
	Map       string       `json:"map"`
	Status    string       `json:"status"`
	Players   []PlayerData `json:"players"`
	Round     RoundData    `json:"round"`
	CreatedAt int64        `json:"created_at"`
}

// PlayerData 玩家数据（用于 Redis 序列化）
type PlayerData struct {
	ID       string `json:"id"`
	Nickname string `json:"nickname"`
	Team     string `json:"team"`
	IsHost   bool   `json:"is_host"`
	IsDead   bool   `json:"is_dead"`
	Health   int    `json:"health"`
	Deaths   int    `json:"deaths"`
	Kills    int    `json:"kills"`
}

// RoundData 回合数据（用于 Redis 序列化）
type RoundData struct {
	Status  string `json:"status"`
	Timer   int    `json:"timer"`
	Round   int    `json:"round"`
	ScoreT  int    `json:"score_t"`
	ScoreCT int    `json:"score_ct"`
	Winner  string `json:"winner,omitempty"`
}

// RedisStore Redis 存储
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore 创建 Redis 存储
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// SaveRoom 保存房间快照
func (s *RedisStore) SaveRoom(ctx context.Context, roomID string, data *RoomData) error {
	if s == nil || s.client == nil {
		return nil // 未配置 Redis，跳过镜像
	}

	bytes, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, roomKeyPrefix+roomID, bytes, roomExpiration).Err()
}

// LoadRoom 读取房间快照，不存在返回 nil
func (s *RedisStore) LoadRoom(ctx context.Context, roomID string) (*RoomData, error) {
	if s == nil || s.client == nil {
		return nil, nil
	}

	bytes, err := s.client.Get(ctx, roomKeyPrefix+roomID).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var data RoomData
	if err := json.Unmarshal(bytes, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

// DeleteRoom 删除房间快照
func (s *RedisStore) DeleteRoom(ctx context.Context, roomID string) error {
	if s == nil || s.client == nil {
		return nil
	}
	return s.client.Del(ctx, roomKeyPrefix+roomID).Err()
}
