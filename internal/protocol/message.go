package protocol

import "encoding/json"

// Message 基础消息结构
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// MessageType 消息类型
type MessageType string

// 客户端 → 服务端 消息类型
const (
	// 连接操作
	MsgPing MessageType = "ping" // 心跳 ping

	// 房间操作
	MsgGetRooms   MessageType = "get_rooms"   // 获取房间列表
	MsgCreateRoom MessageType = "create_room" // 创建房间
	MsgJoinRoom   MessageType = "join_room"   // 加入房间
	MsgSwitchTeam MessageType = "switch_team" // 切换队伍
	MsgStartGame  MessageType = "start_game"  // 房主开始游戏

	// 对局操作
	MsgUpdate         MessageType = "update"          // 位置/武器/动画状态更新
	MsgShoot          MessageType = "shoot"           // 开枪
	MsgHit            MessageType = "hit"             // 命中上报
	MsgRequestRespawn MessageType = "request_respawn" // 请求重生

	// 统计
	MsgGetLeaderboard MessageType = "get_leaderboard" // 获取击杀榜
)

// 服务端 → 客户端 消息类型
const (
	// 连接相关
	MsgConnected MessageType = "connected" // 连接成功
	MsgPong      MessageType = "pong"      // 心跳 pong

	// 房间相关
	MsgRoomsList   MessageType = "rooms_list"   // 房间列表
	MsgRoomJoined  MessageType = "room_joined"  // 加入房间成功（单播）
	MsgRoomUpdated MessageType = "room_updated" // 房间快照更新（房间广播）
	MsgPlayerLeft  MessageType = "player_left"  // 玩家离开

	// 回合流程
	MsgGameStarted     MessageType = "game_started"      // 对局开始
	MsgGameStateUpdate MessageType = "game_state_update" // 回合状态快照（每秒）
	MsgAnnouncement    MessageType = "announcement"      // 回合播报
	MsgRespawnAll      MessageType = "respawn_all"       // 全员重生（进入准备阶段）

	// 战斗与同步
	MsgPlayerMoved     MessageType = "player_moved"     // 其他玩家移动
	MsgPlayerShot      MessageType = "player_shot"      // 其他玩家开枪
	MsgPlayerDamaged   MessageType = "player_damaged"   // 玩家受伤
	MsgPlayerDied      MessageType = "player_died"      // 玩家死亡
	MsgPlayerRespawned MessageType = "player_respawned" // 玩家重生

	// 统计
	MsgLeaderboard MessageType = "leaderboard" // 击杀榜

	// 错误
	MsgError MessageType = "error" // 错误消息
)

// Team 阵营
type Team string

const (
	TeamT  Team = "T"  // 进攻方
	TeamCT Team = "CT" // 防守方
)
