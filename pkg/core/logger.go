package core

// Logger receives progress and diagnostic messages from long-running components
type Logger interface {
	Printf(format string, args ...interface{})
}
