package room

import (
	"github.com/palemoky/strike-arena/internal/protocol"
	"github.com/palemoky/strike-arena/internal/server/storage"
)

// Snapshot 生成完整房间快照（room_joined / room_updated 载荷）
func (r *Room) Snapshot() protocol.RoomInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.snapshotLocked()
}

func (r *Room) snapshotLocked() protocol.RoomInfo {
	players := make([]protocol.PlayerInfo, 0, len(r.Members))
	for _, m := range r.Members {
		players = append(players, m.Session.Info())
	}

	return protocol.RoomInfo{
		ID:      r.ID,
		Name:    r.Name,
		Map:     r.Map,
		Status:  string(r.Status),
		Players: players,
		Round:   r.roundInfoLocked(),
	}
}

// ListItem 生成房间列表项
func (r *Room) ListItem() protocol.RoomListItem {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return protocol.RoomListItem{
		ID:          r.ID,
		Name:        r.Name,
		Map:         r.Map,
		PlayerCount: len(r.Members),
		MaxPlayers:  r.maxPlayers,
		Status:      string(r.Status),
		Round:       r.roundInfoLocked(),
	}
}

func (r *Room) roundInfoLocked() protocol.RoundStateInfo {
	return protocol.RoundStateInfo{
		Status:  string(r.Round.Status),
		Timer:   r.Round.Timer,
		Round:   r.Round.Round,
		ScoreT:  r.Round.ScoreT,
		ScoreCT: r.Round.ScoreCT,
		Winner:  r.Round.Winner,
	}
}

// ToRoomData 将 Room 转换为可序列化的 RoomData（Redis 镜像）
func (r *Room) ToRoomData() *storage.RoomData {
	r.mu.RLock()
	defer r.mu.RUnlock()

	data := &storage.RoomData{
		ID:     r.ID,
		Name:   r.Name,
		Map:    r.Map,
		Status: string(r.Status),
		Round: storage.RoundData{
			Status:  string(r.Round.Status),
			Timer:   r.Round.Timer,
			Round:   r.Round.Round,
			ScoreT:  r.Round.ScoreT,
			ScoreCT: r.Round.ScoreCT,
			Winner:  string(r.Round.Winner),
		},
		Players:   make([]storage.PlayerData, 0, len(r.Members)),
		CreatedAt: r.CreatedAt.Unix(),
	}

	for _, m := range r.Members {
		info := m.Session.Info()
		data.Players = append(data.Players, storage.PlayerData{
			ID:       info.ID,
			Nickname: info.Nickname,
			Team:     string(info.Team),
			IsHost:   info.IsHost,
			IsDead:   info.IsDead,
			Health:   info.Health,
			Deaths:   info.Deaths,
			Kills:    info.Kills,
		})
	}

	return data
}
