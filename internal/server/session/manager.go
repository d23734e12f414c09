package session

import "sync"

// SessionManager 会话注册表。
// 替代全局 players 映射：由 Server 持有并注入处理器，便于按测试隔离。
type SessionManager struct {
	sessions map[string]*PlayerSession // playerID -> session
	mu       sync.RWMutex
}

// NewSessionManager 创建会话注册表
func NewSessionManager() *SessionManager {
	return &SessionManager{
		sessions: make(map[string]*PlayerSession),
	}
}

// CreateSession 创建新会话
func (sm *SessionManager) CreateSession(playerID, nickname, avatarColor string) *PlayerSession {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	s := NewPlayerSession(playerID, nickname, avatarColor)
	sm.sessions[playerID] = s
	return s
}

// GetSession 获取会话，不存在返回 nil
func (sm *SessionManager) GetSession(playerID string) *PlayerSession {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.sessions[playerID]
}

// DeleteSession 删除会话（断开连接时同步调用）
func (sm *SessionManager) DeleteSession(playerID string) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	delete(sm.sessions, playerID)
}

// Count 当前会话数
func (sm *SessionManager) Count() int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return len(sm.sessions)
}
