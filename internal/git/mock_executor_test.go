package git

import (
	"context"
)

// call records a single command execution for later assertions.
type call struct {
	Name string
	Args []string
}

// MockCommandExecutor is a simple mock of the CommandExecutor interface
// that doesn't actually execute anything but just records calls.
type MockCommandExecutor struct {
	Output              string
	Calls               []call
	ExecuteFn           func(ctx context.Context, name string, args ...string) error
	ExecuteWithOutputFn func(ctx context.Context, name string, args ...string) (string, error)
}

// NewMockCommandExecutor creates a new mock executor
func NewMockCommandExecutor() *MockCommandExecutor {
	return &MockCommandExecutor{}
}

// Execute implements the CommandExecutor interface
func (m *MockCommandExecutor) Execute(ctx context.Context, name string, args ...string) error {
	m.Calls = append(m.Calls, call{Name: name, Args: args})

	if m.ExecuteFn != nil {
		return m.ExecuteFn(ctx, name, args...)
	}
	return nil
}

// ExecuteWithOutput implements the CommandExecutor interface
func (m *MockCommandExecutor) ExecuteWithOutput(ctx context.Context, name string, args ...string) (string, error) {
	m.Calls = append(m.Calls, call{Name: name, Args: args})

	if m.ExecuteWithOutputFn != nil {
		return m.ExecuteWithOutputFn(ctx, name, args...)
	}
	return m.Output, nil
}

// LastCall returns the most recent recorded call, or nil when none exist.
func (m *MockCommandExecutor) LastCall() *call {
	if len(m.Calls) == 0 {
		return nil
	}
	return &m.Calls[len(m.Calls)-1]
}
