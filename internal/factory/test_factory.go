package factory

import (
	"time"

	"github.com/wordvote/wordvote/internal/dependencies/mocks"
	"github.com/wordvote/wordvote/internal/services/registry"
	"github.com/wordvote/wordvote/internal/services/session"
	"github.com/wordvote/wordvote/internal/storage/memory"
	"github.com/wordvote/wordvote/internal/testutil"
	"github.com/wordvote/wordvote/internal/words"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock     *mocks.MockClock
	MockRandom    *mocks.MockRandom
	MockScheduler *mocks.MockScheduler
}

// NewTestApp creates an App configured for testing with mocked dependencies
func NewTestApp() *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()
	mockScheduler := mocks.NewMockScheduler()

	app := newWithDependencies(
		store, mockClock, mockRandom, mockScheduler,
		words.DefaultBlocklist,
		session.DefaultConfig(), registry.DefaultConfig(),
		testutil.NopLogger(),
	)

	return &TestApp{
		App:           app,
		MockClock:     mockClock,
		MockRandom:    mockRandom,
		MockScheduler: mockScheduler,
	}
}
