package testutil

import (
	"github.com/palemoky/strike-arena/internal/types"
)

// StubServer 实现 types.ServerInterface 的最小桩
type StubServer struct {
	Maintenance bool
	Online      int
}

func (s *StubServer) IsMaintenanceMode() bool { return s.Maintenance }
func (s *StubServer) GetOnlineCount() int     { return s.Online }

func (s *StubServer) GetClientByID(id string) types.ClientInterface { return nil }
func (s *StubServer) UnregisterClient(id string)                    {}
