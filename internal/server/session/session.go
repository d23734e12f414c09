package session

import (
	"sync"

	"github.com/palemoky/strike-arena/internal/protocol"
)

const (
	// 出生血量
	FullHealth = 100
	// 默认武器
	DefaultWeapon = "pistol"
	// 默认头像颜色
	DefaultColor = "#fff"
)

// PlayerSession 玩家会话：一条连接对应的权威状态。
// 连接建立时创建，断开时销毁；房间只通过 ID 持有非拥有引用。
type PlayerSession struct {
	PlayerID    string
	Nickname    string
	AvatarColor string

	roomID string
	team   protocol.Team
	isHost bool

	isDead bool
	health int
	deaths int
	kills  int

	position  protocol.Vec3
	rotation  protocol.Rotation
	weapon    string
	animState protocol.AnimState

	mu sync.RWMutex
}

// NewPlayerSession 创建玩家会话
func NewPlayerSession(playerID, nickname, avatarColor string) *PlayerSession {
	if avatarColor == "" {
		avatarColor = DefaultColor
	}
	return &PlayerSession{
		PlayerID:    playerID,
		Nickname:    nickname,
		AvatarColor: avatarColor,
		health:      FullHealth,
		weapon:      DefaultWeapon,
	}
}

// JoinRoom 进入房间时重置战斗状态
func (s *PlayerSession) JoinRoom(roomID string, isHost bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.roomID = roomID
	s.isHost = isHost
	s.team = ""
	s.isDead = false
	s.health = FullHealth
}

// LeaveRoom 离开房间
func (s *PlayerSession) LeaveRoom() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.roomID = ""
	s.isHost = false
	s.team = ""
}

// RoomID 返回当前所在房间 ID
func (s *PlayerSession) RoomID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.roomID
}

// IsHost 是否是房主
func (s *PlayerSession) IsHost() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isHost
}

// Team 返回当前阵营（空 = 未选择）
func (s *PlayerSession) Team() protocol.Team {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.team
}

// SetTeam 切换阵营
func (s *PlayerSession) SetTeam(team protocol.Team) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.team = team
}

// Health 返回当前血量
func (s *PlayerSession) Health() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.health
}

// IsDead 是否死亡
func (s *PlayerSession) IsDead() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isDead
}

// Deaths 死亡次数
func (s *PlayerSession) Deaths() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.deaths
}

// Kills 击杀次数
func (s *PlayerSession) Kills() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.kills
}

// ApplyDamage 扣除血量并返回剩余值。不做下限裁剪，血量可为负数。
func (s *PlayerSession) ApplyDamage(damage int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.health -= damage
	return s.health
}

// MarkDead 标记死亡并累加死亡数。返回 false 表示已经死了（幂等保护）。
func (s *PlayerSession) MarkDead() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.isDead {
		return false
	}
	s.isDead = true
	s.deaths++
	return true
}

// AddKill 累加击杀数
func (s *PlayerSession) AddKill() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.kills++
}

// Respawn 重生：清除死亡标记并回满血量
func (s *PlayerSession) Respawn() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.isDead = false
	s.health = FullHealth
}

// SetTransform 记录最近一次上报的位置/朝向/武器/动画状态。
// 没有序号校验，后到的消息直接覆盖（最新值即真值）。
func (s *PlayerSession) SetTransform(pos protocol.Vec3, rot protocol.Rotation, weapon string, anim protocol.AnimState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.position = pos
	s.rotation = rot
	s.weapon = weapon
	s.animState = anim
}

// Transform 返回最近一次上报的位置状态
func (s *PlayerSession) Transform() (protocol.Vec3, protocol.Rotation, string, protocol.AnimState) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.position, s.rotation, s.weapon, s.animState
}

// Info 生成对外快照
func (s *PlayerSession) Info() protocol.PlayerInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return protocol.PlayerInfo{
		ID:          s.PlayerID,
		Nickname:    s.Nickname,
		AvatarColor: s.AvatarColor,
		Team:        s.team,
		IsHost:      s.isHost,
		IsDead:      s.isDead,
		Health:      s.health,
		Deaths:      s.deaths,
		Kills:       s.kills,
	}
}
