package server

import (
	"fmt"
	"log"
	"runtime"
	"time"

	"github.com/palemoky/strike-arena/internal/protocol"
)

// monitorStats 定期监控服务器状态
func (s *Server) monitorStats() {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for range ticker.C {
		var m runtime.MemStats
		runtime.ReadMemStats(&m)

		onlineCount := s.GetOnlineCount()
		goroutines := runtime.NumGoroutine()
		activeGames := s.roomManager.GetActiveGamesCount()

		log.Printf("📊 [监控] 在线: %d | 对局中: %d | Goroutines: %d | 内存: %.2f MB",
			onlineCount,
			activeGames,
			goroutines,
			float64(m.Alloc)/1024/1024)
	}
}

// EnterMaintenanceMode 进入维护模式
func (s *Server) EnterMaintenanceMode() {
	s.maintenanceMu.Lock()
	s.maintenanceMode = true
	s.maintenanceMu.Unlock()

	// 通知大厅用户服务器即将关闭
	s.BroadcastToLobby(protocol.NewErrorMessageWithText(
		protocol.ErrCodeServerMaintenance, "👷🏻‍♂️ 维护模式：停止新的房间创建"))

	log.Println("🔧 进入维护模式：停止新连接和房间创建")
}

// IsMaintenanceMode 检查是否在维护模式
func (s *Server) IsMaintenanceMode() bool {
	s.maintenanceMu.RLock()
	defer s.maintenanceMu.RUnlock()
	return s.maintenanceMode
}

// GracefulShutdown 优雅关闭服务器
func (s *Server) GracefulShutdown(timeout time.Duration) {
	// 1. 进入维护模式
	s.EnterMaintenanceMode()

	// 2. 等待对局结束
	deadline := time.Now().Add(timeout)
	ticker := time.NewTicker(s.config.Game.ShutdownCheckIntervalDuration())
	defer ticker.Stop()

	for time.Now().Before(deadline) {
		activeGames := s.roomManager.GetActiveGamesCount()
		if activeGames == 0 {
			log.Printf("✅ 所有房间已结束，将在 %ds 后关闭服务器！\n", s.config.Game.RoomCleanupDelay)

			// 通知大厅用户服务器即将关闭
			s.BroadcastToLobby(protocol.NewErrorMessageWithText(
				protocol.ErrCodeServerMaintenance,
				fmt.Sprintf("🚧 服务器将在 %d 秒后停机维护！", s.config.Game.RoomCleanupDelay)))

			break
		}
		log.Printf("⏳ 等待 %d 个房间结束...", activeGames)
		<-ticker.C
	}

	// 3. 超时检查
	if activeGames := s.roomManager.GetActiveGamesCount(); activeGames > 0 {
		log.Printf("⚠️ 超时，仍有 %d 个房间进行中，强制关闭", activeGames)
	}

	// 4. 关闭服务器
	s.Shutdown()
}

// Shutdown 关闭服务器
func (s *Server) Shutdown() {
	// 停机通知发给所有连接，房间内的玩家也要收到
	s.Broadcast(protocol.NewErrorMessageWithText(
		protocol.ErrCodeServerMaintenance, "🚧 服务器停机维护，连接即将关闭"))

	time.Sleep(s.config.Game.RoomCleanupDelayDuration())

	// 关闭所有客户端连接
	s.clientsMu.Lock()
	for _, client := range s.clients {
		client.Close()
	}
	s.clientsMu.Unlock()

	// 关闭 Redis
	_ = s.redis.Close()

	log.Println("服务器已关闭")
}
