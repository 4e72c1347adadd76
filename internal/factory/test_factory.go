package factory

import (
	"time"

	"github.com/ctfarena/ctfarena/internal/dependencies/mocks"
	"github.com/ctfarena/ctfarena/internal/services/auth"
	"github.com/ctfarena/ctfarena/internal/storage/memory"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock *mocks.MockClock
}

// NewTestApp creates an App configured for testing with mocked dependencies
func NewTestApp() *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))

	app := newWithDependencies(store, mockClock, auth.DefaultConfig())

	return &TestApp{
		App:       app,
		MockClock: mockClock,
	}
}
