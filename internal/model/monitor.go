package model

// MonitorResponse is the payload of the monitor endpoint.
type MonitorResponse struct {
	Status      string       `json:"status"` // "healthy" or "idle"
	Connections int          `json:"connections"`
	Users       []ClientInfo `json:"users"`
}

// ClientInfo describes one live user and its connection count.
type ClientInfo struct {
	UserID      string `json:"userId"`
	Connections int    `json:"connections"`
}
