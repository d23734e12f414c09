package protocol

// --- 通用数据结构 ---

// Vec3 三维向量
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Rotation 朝向（只同步水平偏航角）
type Rotation struct {
	Y float64 `json:"y"`
}

// AnimState 动画状态
type AnimState struct {
	IsCrouching bool `json:"is_crouching"`
	IsMoving    bool `json:"is_moving"`
}

// PlayerInfo 房间内玩家信息
type PlayerInfo struct {
	ID          string `json:"id"`
	Nickname    string `json:"nickname"`
	AvatarColor string `json:"avatar_color"`
	Team        Team   `json:"team,omitempty"` // 空 = 未选择阵营
	IsHost      bool   `json:"is_host"`
	IsDead      bool   `json:"is_dead"`
	Health      int    `json:"health"`
	Deaths      int    `json:"deaths"`
	Kills       int    `json:"kills"`
}

// RoundStateInfo 回合状态快照
type RoundStateInfo struct {
	Status  string `json:"status"` // waiting/warmup/freeze/live/end
	Timer   int    `json:"timer"`  // 剩余秒数
	Round   int    `json:"round"`  // 回合计数
	ScoreT  int    `json:"score_t"`
	ScoreCT int    `json:"score_ct"`
	Winner  Team   `json:"winner,omitempty"` // 仅 end 阶段有值
}

// RoomInfo 房间完整快照
type RoomInfo struct {
	ID      string         `json:"id"`
	Name    string         `json:"name"`
	Map     string         `json:"map"`
	Status  string         `json:"status"` // waiting/playing
	Players []PlayerInfo   `json:"players"`
	Round   RoundStateInfo `json:"round"`
}

// RoomListItem 房间列表项
type RoomListItem struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Map         string         `json:"map"`
	PlayerCount int            `json:"players"`
	MaxPlayers  int            `json:"max_players"`
	Status      string         `json:"status"`
	Round       RoundStateInfo `json:"round"`
}

// --- 客户端请求 Payloads ---

// PingPayload 心跳请求
type PingPayload struct {
	Timestamp int64 `json:"timestamp"` // 客户端时间戳（毫秒）
}

// CreateRoomPayload 创建房间请求
type CreateRoomPayload struct {
	Map string `json:"map"` // 地图标识，空则使用默认地图
}

// JoinRoomPayload 加入房间请求
type JoinRoomPayload struct {
	RoomID string `json:"room_id"`
}

// SwitchTeamPayload 切换队伍请求
type SwitchTeamPayload struct {
	Team Team `json:"team"`
}

// UpdatePayload 每帧状态更新请求
type UpdatePayload struct {
	Pos       Vec3      `json:"pos"`
	Rot       Rotation  `json:"rot"`
	Weapon    string    `json:"weapon"`
	AnimState AnimState `json:"anim_state"`
}

// ShootPayload 开枪请求
type ShootPayload struct {
	Origin    Vec3 `json:"origin"`
	Direction Vec3 `json:"direction"`
}

// HitPayload 命中上报请求。
// 伤害值由攻击方客户端计算（武器基础伤害×部位系数×随机浮动），
// 服务端不做弹道复算，直接信任上报值。
type HitPayload struct {
	TargetID string `json:"target_id"`
	Damage   int    `json:"damage"`
	Force    Vec3   `json:"force"` // 布娃娃受力方向，仅转发
}

// GetLeaderboardPayload 获取击杀榜请求
type GetLeaderboardPayload struct {
	Limit int `json:"limit"` // 条数，0 或缺省时取默认值
}

// --- 服务端响应 Payloads ---

// ConnectedPayload 连接成功响应
type ConnectedPayload struct {
	PlayerID   string `json:"player_id"`
	PlayerName string `json:"player_name"`
}

// PongPayload 心跳响应
type PongPayload struct {
	ClientTimestamp int64 `json:"client_timestamp"` // 客户端发送的时间戳
	ServerTimestamp int64 `json:"server_timestamp"` // 服务器时间戳（毫秒）
}

// RoomsListPayload 房间列表响应
type RoomsListPayload struct {
	Rooms []RoomListItem `json:"rooms"`
}

// RoomJoinedPayload 加入房间成功响应（含完整房间快照）
type RoomJoinedPayload struct {
	Room RoomInfo `json:"room"`
}

// RoomUpdatedPayload 房间快照广播
type RoomUpdatedPayload struct {
	Room RoomInfo `json:"room"`
}

// AnnouncementPayload 回合播报
type AnnouncementPayload struct {
	Text string `json:"text"`
}

// PlayerMovedPayload 其他玩家移动通知
type PlayerMovedPayload struct {
	ID        string    `json:"id"`
	Pos       Vec3      `json:"pos"`
	Rot       Rotation  `json:"rot"`
	Weapon    string    `json:"weapon"`
	AnimState AnimState `json:"anim_state"`
}

// PlayerShotPayload 其他玩家开枪通知
type PlayerShotPayload struct {
	ID        string `json:"id"`
	Origin    Vec3   `json:"origin"`
	Direction Vec3   `json:"direction"`
}

// PlayerDamagedPayload 玩家受伤通知
type PlayerDamagedPayload struct {
	ID     string `json:"id"`
	Health int    `json:"health"` // 可为负数，不做下限裁剪
}

// PlayerDiedPayload 玩家死亡通知
type PlayerDiedPayload struct {
	VictimID string `json:"victim_id"`
	KillerID string `json:"killer_id"`
	Force    Vec3   `json:"force"` // 转发给布娃娃物理
}

// PlayerRespawnedPayload 玩家重生通知
type PlayerRespawnedPayload struct {
	ID string `json:"id"`
}

// PlayerLeftPayload 玩家离开通知
type PlayerLeftPayload struct {
	ID string `json:"id"`
}

// LeaderboardEntry 击杀榜条目
type LeaderboardEntry struct {
	Rank     int    `json:"rank"`
	PlayerID string `json:"player_id"`
	Kills    int    `json:"kills"`
}

// LeaderboardPayload 击杀榜响应
type LeaderboardPayload struct {
	Entries []LeaderboardEntry `json:"entries"`
}

// ErrorPayload 错误响应
type ErrorPayload struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
