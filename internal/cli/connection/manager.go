package connection

import (
	"sync"

	"github.com/yndnr/rediswire-go/internal/client"
)

// Connection is a live, named connection to a server.
type Connection struct {
	Name   string
	Server string
	DB     int
	Client *client.Client
}

// Manager manages the CLI's active connection.
type Manager struct {
	mu      sync.Mutex
	current *Connection
}

// NewManager creates a new connection manager.
func NewManager() *Manager {
	return &Manager{}
}

// Connect dials cfg and makes the result the current connection. Any
// previous connection is closed first, even if the new dial fails.
func (m *Manager) Connect(name string, cfg client.Config) (*Connection, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.current != nil {
		m.current.Client.Close()
		m.current = nil
	}

	c, err := client.Dial(cfg)
	if err != nil {
		return nil, err
	}

	m.current = &Connection{
		Name:   name,
		Server: cfg.Addr,
		DB:     cfg.DB,
		Client: c,
	}
	return m.current, nil
}

// Disconnect closes the current connection. Calling it while
// disconnected is a no-op.
func (m *Manager) Disconnect() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.current == nil {
		return nil
	}
	err := m.current.Client.Close()
	m.current = nil
	return err
}

// Current returns the current connection, or nil when disconnected.
func (m *Manager) Current() *Connection {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

// IsConnected returns true when a connection is active.
func (m *Manager) IsConnected() bool {
	return m.Current() != nil
}
