package shared

// Log levels understood by Logger implementations
const (
	LevelDebug = "DEBUG"
	LevelInfo  = "INFO"
	LevelWarn  = "WARNING"
	LevelError = "ERROR"
)

// Logger is the structured logging port used by the simulation components.
// Adapters decide formatting and destination.
type Logger interface {
	Log(level, message string, metadata map[string]interface{})
}

// NoOpLogger discards every entry
type NoOpLogger struct{}

func (NoOpLogger) Log(level, message string, metadata map[string]interface{}) {}

// LoggerOrNoOp returns logger, or a NoOpLogger when logger is nil
func LoggerOrNoOp(logger Logger) Logger {
	if logger == nil {
		return NoOpLogger{}
	}
	return logger
}
