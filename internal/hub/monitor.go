package hub

import (
	"sort"

	"github.com/jayprakash-mahato/dchat/internal/model"
)

// MonitorService gathers presence statistics for the monitor endpoint.
type MonitorService struct {
	hub *Hub
}

func NewMonitorService(hub *Hub) *MonitorService {
	return &MonitorService{hub: hub}
}

// GetStats reports the currently announced users and their connection
// counts.
func (ms *MonitorService) GetStats() model.MonitorResponse {
	counts := ms.hub.registry.ConnectionCounts()

	users := make([]model.ClientInfo, 0, len(counts))
	total := 0
	for userID, n := range counts {
		users = append(users, model.ClientInfo{UserID: userID, Connections: n})
		total += n
	}
	sort.Slice(users, func(i, j int) bool { return users[i].UserID < users[j].UserID })

	status := "healthy"
	if total == 0 {
		status = "idle"
	}

	return model.MonitorResponse{
		Status:      status,
		Connections: total,
		Users:       users,
	}
}
