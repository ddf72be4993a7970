package phrase

import (
	"context"

	"github.com/daikw/rookery/internal/completion"
	"github.com/stretchr/testify/mock"
)

// MockCompleter is a mock completion backend.
type MockCompleter struct {
	mock.Mock
}

func (m *MockCompleter) Complete(ctx context.Context, prompt string, opts ...completion.CallOption) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}
