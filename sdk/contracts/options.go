package contracts

// SessionOptions defines the configuration options for a session.
type SessionOptions struct {
	Logger   Logger   // Logger for session lifecycle events.
	LogLevel LogLevel // Level of logging to use.
	Engine   Engine   // Synchronization engine; a local in-process engine is used when nil.
}

// Option is a function that modifies SessionOptions.
type Option func(*SessionOptions)

// WithLogger sets the logger for the session.
func WithLogger(l Logger) Option {
	return func(opts *SessionOptions) {
		opts.Logger = l
	}
}

// WithLogLevel sets the logging level for the session.
func WithLogLevel(level LogLevel) Option {
	return func(opts *SessionOptions) {
		opts.LogLevel = level
	}
}

// WithEngine sets the synchronization engine backing the session. The session
// takes ownership of the engine and closes it when the session is closed.
func WithEngine(e Engine) Option {
	return func(opts *SessionOptions) {
		opts.Engine = e
	}
}
