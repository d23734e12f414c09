package room

import (
	"sync"
	"time"

	"github.com/palemoky/strike-arena/internal/protocol"
	"github.com/palemoky/strike-arena/internal/server/session"
	"github.com/palemoky/strike-arena/internal/server/storage"
	"github.com/palemoky/strike-arena/internal/types"
)

const (
	roomIDLength = 6            // 房间号长度
	roomIDChars  = "0123456789" // 房间号字符集
)

// Member 房间成员：连接 + 会话的非拥有引用
type Member struct {
	Client  types.ClientInterface
	Session *session.PlayerSession
}

// RoundState 回合状态，内嵌于 Room，不单独寻址
type RoundState struct {
	Status  RoundStatus
	Timer   int // 剩余秒数，只减不增，不低于 0
	Round   int // 回合计数，只在进入 freeze 时递增
	ScoreT  int
	ScoreCT int
	Winner  protocol.Team // 仅 end 阶段有值
}

// DamageAllowed 当前阶段是否允许伤害。
// live 和 warmup 允许，freeze/end 拒绝（warmup 允许是沿用原行为）。
func (rs *RoundState) DamageAllowed() bool {
	return rs.Status == RoundLive || rs.Status == RoundWarmup
}

// Room 对局房间：成员集合 + 一个内嵌回合状态。
// 所有状态变更都在 mu 保护下串行执行，时钟滴答与客户端事件不会交错。
type Room struct {
	ID        string
	Name      string
	Map       string
	Status    RoomStatus
	Members   map[string]*Member // playerID -> member
	Round     RoundState
	CreatedAt time.Time

	durations   Durations
	maxPlayers  int
	store       *storage.RedisStore
	leaderboard *storage.LeaderboardManager

	clockStop chan struct{}
	clockOnce sync.Once

	mu sync.RWMutex
}

// MemberCount 当前成员数
func (r *Room) MemberCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.Members)
}

// GetMember 获取成员，不存在返回 nil
func (r *Room) GetMember(playerID string) *Member {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.Members[playerID]
}

// Broadcast 广播消息给房间内所有成员
func (r *Room) Broadcast(msg *protocol.Message) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	r.broadcastLocked(msg)
}

// BroadcastExcept 广播消息给除指定成员外的所有成员（移动/开枪中继，不回显发送者）
func (r *Room) BroadcastExcept(excludeID string, msg *protocol.Message) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	r.broadcastExceptLocked(excludeID, msg)
}

func (r *Room) broadcastLocked(msg *protocol.Message) {
	for _, m := range r.Members {
		m.Client.SendMessage(msg)
	}
}

func (r *Room) broadcastExceptLocked(excludeID string, msg *protocol.Message) {
	for id, m := range r.Members {
		if id != excludeID {
			m.Client.SendMessage(msg)
		}
	}
}
