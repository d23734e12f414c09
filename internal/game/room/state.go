package room

// RoomStatus 房间状态
type RoomStatus string

const (
	RoomStatusWaiting RoomStatus = "waiting" // 等待房主开始
	RoomStatusPlaying RoomStatus = "playing" // 对局进行中
)

// RoundStatus 回合阶段。
// 严格按 warmup→freeze→live→end→freeze→... 循环，直到房间销毁。
type RoundStatus string

const (
	RoundWaiting RoundStatus = "waiting" // 对局未开始
	RoundWarmup  RoundStatus = "warmup"  // 热身
	RoundFreeze  RoundStatus = "freeze"  // 准备（禁止伤害）
	RoundLive    RoundStatus = "live"    // 交战
	RoundEnd     RoundStatus = "end"     // 结算
)

// Durations 各阶段时长（秒）
type Durations struct {
	Warmup int
	Freeze int
	Live   int
	End    int
}

// DefaultDurations 默认阶段时长
func DefaultDurations() Durations {
	return Durations{
		Warmup: 20,
		Freeze: 15,
		Live:   600,
		End:    5,
	}
}
