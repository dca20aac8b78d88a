package testutil

import (
	"context"
	"sync"

	"ranger/pkg/bridge"
)

// MockSender is a reusable mock that implements bridge.Sender for tests.
type MockSender struct {
	mu         sync.Mutex
	SendError  error
	CloseError error

	SendCalls   []bridge.Record
	CloseCalled bool
}

func (m *MockSender) Send(ctx context.Context, r bridge.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendCalls = append(m.SendCalls, r)
	return m.SendError
}

func (m *MockSender) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CloseCalled = true
	return m.CloseError
}

// Sent returns a copy of the records sent so far.
func (m *MockSender) Sent() []bridge.Record {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]bridge.Record, len(m.SendCalls))
	copy(out, m.SendCalls)
	return out
}
