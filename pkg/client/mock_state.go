package client

import (
	"sync"
)

// MockState is an in-memory test implementation of StateInterface
type MockState struct {
	mu sync.RWMutex

	// In-memory storage
	config    map[string]string
	readState map[string]ReadStateData
	dir       string

	// Error injection
	getConfigErr       error
	setConfigErr       error
	getReadStateErr    error
	updateReadStateErr error
}

// ReadStateData holds read state information
type ReadStateData struct {
	LastReadAt        int64
	LastReadMessageID string
}

// NewMockState creates a new mock state
func NewMockState() *MockState {
	return &MockState{
		config:    make(map[string]string),
		readState: make(map[string]ReadStateData),
		dir:       "/tmp/mock-state",
	}
}

// GetConfig retrieves a configuration value
func (s *MockState) GetConfig(key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.getConfigErr != nil {
		return "", s.getConfigErr
	}

	return s.config[key], nil
}

// SetConfig stores a configuration value
func (s *MockState) SetConfig(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.setConfigErr != nil {
		return s.setConfigErr
	}

	s.config[key] = value
	return nil
}

// GetLastNickname returns the last used nickname
func (s *MockState) GetLastNickname() string {
	nickname, _ := s.GetConfig("last_nickname")
	return nickname
}

// SetLastNickname stores the last used nickname
func (s *MockState) SetLastNickname(nickname string) error {
	return s.SetConfig("last_nickname", nickname)
}

// GetReadState returns the read state for a channel
func (s *MockState) GetReadState(channelID string) (int64, string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.getReadStateErr != nil {
		return 0, "", s.getReadStateErr
	}

	data, ok := s.readState[channelID]
	if !ok {
		return 0, "", nil
	}
	return data.LastReadAt, data.LastReadMessageID, nil
}

// UpdateReadState updates the read state for a channel
func (s *MockState) UpdateReadState(channelID string, timestamp int64, messageID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.updateReadStateErr != nil {
		return s.updateReadStateErr
	}

	s.readState[channelID] = ReadStateData{
		LastReadAt:        timestamp,
		LastReadMessageID: messageID,
	}
	return nil
}

// GetFirstRun checks if this is the first time running the client
func (s *MockState) GetFirstRun() bool {
	val, _ := s.GetConfig("first_run_complete")
	return val != "true"
}

// SetFirstRunComplete marks first run as complete
func (s *MockState) SetFirstRunComplete() error {
	return s.SetConfig("first_run_complete", "true")
}

// GetStateDir returns the directory where state is stored
func (s *MockState) GetStateDir() string {
	return s.dir
}

// Close is a no-op for the mock
func (s *MockState) Close() error {
	return nil
}
