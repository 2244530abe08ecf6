package core

// SessionID identifies the dashboard session a log entry belongs to.
// Loggers that support it attach it to reported entries.
type SessionID string

// Logger is any service that can log messages.
// args are extra values to log along: errors, map[string]interface{}, SessionID.
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
	Fatal(msg string, args ...interface{})
}
