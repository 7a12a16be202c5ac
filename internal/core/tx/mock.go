package tx

import "context"

// MockManager is a no-op Manager for tests. It runs fn directly, which
// preserves the nested-call semantics of the real implementation.
type MockManager struct {
	// Calls counts RunInTransaction invocations.
	Calls int
}

// RunInTransaction implements Manager.
func (m *MockManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	m.Calls++
	return fn(ctx)
}

// ReadOnly implements ReadOnlyManager.
func (m *MockManager) ReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
