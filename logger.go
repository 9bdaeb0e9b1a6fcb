package graphqlclient

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/google/uuid"
)

// Logger is the structured debug logging interface. Messages carry
// alternating key/value pairs.
type Logger interface {
	Debug(msg string, keysAndValues ...any)
	Info(msg string, keysAndValues ...any)
	Warn(msg string, keysAndValues ...any)
	Error(msg string, keysAndValues ...any)
}

// SimpleLogger writes leveled key=value lines to stderr via the standard
// log package.
type SimpleLogger struct {
	logger *log.Logger
}

// NewSimpleLogger returns a console logger suitable for development use.
func NewSimpleLogger() *SimpleLogger {
	return &SimpleLogger{
		logger: log.New(os.Stderr, "", log.LstdFlags),
	}
}

func (l *SimpleLogger) Debug(msg string, keysAndValues ...any) {
	l.print("DEBUG", msg, keysAndValues...)
}

func (l *SimpleLogger) Info(msg string, keysAndValues ...any) {
	l.print("INFO", msg, keysAndValues...)
}

func (l *SimpleLogger) Warn(msg string, keysAndValues ...any) {
	l.print("WARN", msg, keysAndValues...)
}

func (l *SimpleLogger) Error(msg string, keysAndValues ...any) {
	l.print("ERROR", msg, keysAndValues...)
}

func (l *SimpleLogger) print(level, msg string, keysAndValues ...any) {
	var b strings.Builder
	b.WriteString(level)
	b.WriteByte(' ')
	b.WriteString(msg)
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		fmt.Fprintf(&b, " %v=%v", keysAndValues[i], keysAndValues[i+1])
	}
	if len(keysAndValues)%2 != 0 {
		fmt.Fprintf(&b, " %v", keysAndValues[len(keysAndValues)-1])
	}
	l.logger.Println(b.String())
}

// DebugConfig controls which request lifecycle events are logged.
type DebugConfig struct {
	Enabled          bool
	LogRequests      bool
	LogCache         bool
	LogDeduplication bool
	RequestIDGen     func() string
}

// DefaultDebugConfig returns a disabled configuration with all event
// categories selected and UUID request IDs.
func DefaultDebugConfig() *DebugConfig {
	return &DebugConfig{
		Enabled:          false,
		LogRequests:      true,
		LogCache:         true,
		LogDeduplication: true,
		RequestIDGen:     uuid.NewString,
	}
}
