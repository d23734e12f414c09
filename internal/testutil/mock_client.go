package testutil

import (
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/palemoky/strike-arena/internal/protocol"
)

// MockClient 实现 types.ClientInterface 的 mock
type MockClient struct {
	mock.Mock
}

func (m *MockClient) GetID() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockClient) GetName() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockClient) GetRoom() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockClient) SetRoom(roomID string) {
	m.Called(roomID)
}

func (m *MockClient) SendMessage(msg *protocol.Message) {
	m.Called(msg)
}

func (m *MockClient) Close() {
	m.Called()
}

// SimpleClient 简单的 mock 客户端，不使用 testify（用于不需要断言的测试）
type SimpleClient struct {
	ID     string
	Name   string
	RoomID string

	mu       sync.Mutex
	messages []*protocol.Message
}

// NewSimpleClient 创建简单 mock 客户端
func NewSimpleClient(id, name string) *SimpleClient {
	return &SimpleClient{ID: id, Name: name}
}

func (m *SimpleClient) GetID() string       { return m.ID }
func (m *SimpleClient) GetName() string     { return m.Name }
func (m *SimpleClient) GetRoom() string     { return m.RoomID }
func (m *SimpleClient) SetRoom(code string) { m.RoomID = code }
func (m *SimpleClient) Close()              {}

func (m *SimpleClient) SendMessage(msg *protocol.Message) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = append(m.messages, msg)
}

// SentMessages 返回已发送消息的副本
func (m *SimpleClient) SentMessages() []*protocol.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*protocol.Message, len(m.messages))
	copy(out, m.messages)
	return out
}

// SentTypes 返回已发送消息类型序列
func (m *SimpleClient) SentTypes() []protocol.MessageType {
	m.mu.Lock()
	defer m.mu.Unlock()
	types := make([]protocol.MessageType, 0, len(m.messages))
	for _, msg := range m.messages {
		types = append(types, msg.Type)
	}
	return types
}

// CountType 统计某类型消息的数量
func (m *SimpleClient) CountType(msgType protocol.MessageType) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	count := 0
	for _, msg := range m.messages {
		if msg.Type == msgType {
			count++
		}
	}
	return count
}

// LastOfType 返回最后一条指定类型的消息，没有返回 nil
func (m *SimpleClient) LastOfType(msgType protocol.MessageType) *protocol.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := len(m.messages) - 1; i >= 0; i-- {
		if m.messages[i].Type == msgType {
			return m.messages[i]
		}
	}
	return nil
}

// Reset 清空已记录的消息
func (m *SimpleClient) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = nil
}
