package testutil

import (
	"testing"

	"github.com/trezcool/classroom/apps/shared"
	"github.com/trezcool/classroom/core"
	"github.com/trezcool/classroom/core/dashboard"
	logsvc "github.com/trezcool/classroom/services/logger"
)

// NopLogger returns a logger that writes nothing.
func NopLogger() core.Logger {
	return logsvc.NewNopLogger()
}

// Config returns the configuration used by the tests.
func Config() *core.Config {
	return &core.Config{
		Env:      "TEST",
		TestMode: true,
		AppName:  "Classroom",
		Build:    "test",
		Feed:     core.FeedConfig{Capacity: 10, Probability: 0.3, Seed: 1},
	}
}

// NewSession returns a dashboard session over a freshly seeded in-memory store.
func NewSession(t *testing.T) *dashboard.Session {
	session, err := shared.NewSession(Config(), NopLogger())
	if err != nil {
		t.Fatalf("NewSession() failed: %v", err)
	}
	return session
}
