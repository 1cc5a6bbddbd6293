// Package logging defines the structured logging interface the rest of the
// application programs against, with a logrus-backed implementation and a
// recording mock for tests.
package logging

// Logger is the structured logging surface. Messages are fixed strings;
// variable data travels in Fields so log output stays parseable.
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)

	// WithError, WithField and WithFields return derived loggers that attach
	// context to every subsequent entry.
	WithError(err error) Logger
	WithField(key string, value interface{}) Logger
	WithFields(fields ...Field) Logger

	// Fatal and Fatalf log and then exit the process.
	Fatal(msg string, fields ...Field)
	Fatalf(msg string, args ...interface{})
}

// Field is one key-value pair of log context.
type Field struct {
	Key   string
	Value interface{}
}
