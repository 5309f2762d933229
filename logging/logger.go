package logging

import "context"

// Logger is a leveled, structured logger. Entries carry a message and alternating key/value
// pairs, which appenders render as a json object.
type Logger interface {
	Debugw(msg string, keysAndValues ...interface{})
	Infow(msg string, keysAndValues ...interface{})
	Warnw(msg string, keysAndValues ...interface{})
	Errorw(msg string, keysAndValues ...interface{})

	// CDebugw logs at debug level if either the logger or ctx has debug enabled.
	CDebugw(ctx context.Context, msg string, keysAndValues ...interface{})

	// WithFields returns a logger that prefixes every entry with the given pairs.
	WithFields(keysAndValues ...interface{}) Logger
	// Sublogger returns a logger named "<name>.<subname>" with its own level.
	Sublogger(subname string) Logger

	SetLevel(level Level)
	GetLevel() Level
	AddAppender(appender Appender)
	Sync() error
}
