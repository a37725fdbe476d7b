package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/pageza/babychef/backend/internal/service"
)

// MockCompleter is a mock implementation of the language model client
type MockCompleter struct {
	mock.Mock
}

var _ service.Completer = (*MockCompleter)(nil)

func (m *MockCompleter) CompleteText(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

func (m *MockCompleter) CompleteVision(ctx context.Context, prompt, imageURL string) (string, error) {
	args := m.Called(ctx, prompt, imageURL)
	return args.String(0), args.Error(1)
}
