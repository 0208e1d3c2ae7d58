// Package testutil provides mocks and fixtures shared by backend tests.
package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/GriffinCanCode/ChimeraOS/backend/internal/domain/vfs"
)

// MockGenerator is a mock implementation of ai.Generator.
type MockGenerator struct {
	mock.Mock
}

// Generate mocks the Generate method.
func (m *MockGenerator) Generate(ctx context.Context, prompt, system string) (string, error) {
	args := m.Called(ctx, prompt, system)
	return args.String(0), args.Error(1)
}

// GenerateJSON mocks the GenerateJSON method.
func (m *MockGenerator) GenerateJSON(ctx context.Context, prompt, system string) ([]byte, error) {
	args := m.Called(ctx, prompt, system)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// NewMockGenerator creates a mock generator that answers every text prompt
// with reply and every JSON prompt with an empty array.
func NewMockGenerator(t *testing.T, reply string) *MockGenerator {
	t.Helper()
	m := new(MockGenerator)

	m.On("Generate", mock.Anything, mock.Anything, mock.Anything).
		Return(reply, nil).
		Maybe()

	m.On("GenerateJSON", mock.Anything, mock.Anything, mock.Anything).
		Return([]byte("[]"), nil).
		Maybe()

	return m
}

// FixedClock returns a clock frozen at a known instant.
func FixedClock() func() time.Time {
	at := time.Date(2024, 3, 14, 9, 26, 53, 0, time.UTC)
	return func() time.Time { return at }
}

// SeededFS returns the default filesystem with a fixed creation time.
func SeededFS(t *testing.T) *vfs.FS {
	t.Helper()
	root, err := vfs.Seed(FixedClock()())
	if err != nil {
		t.Fatalf("failed to seed filesystem: %v", err)
	}
	return vfs.New(root).WithClock(FixedClock())
}
