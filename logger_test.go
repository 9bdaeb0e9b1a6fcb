package graphqlclient

import "testing"

// Light smoke tests ensuring exported logger APIs do not panic and remain
// callable. If richer logging behavior (format, sinks, filtering) is added
// later, expand assertions here.
func TestSimpleLoggerLevels(t *testing.T) {
	logger := NewSimpleLogger()

	logger.Debug("debug message", "requestID", "req-1")
	logger.Info("info message")
	logger.Warn("warn message", "dangling")
	logger.Error("error message", "status", 502)
}

func TestSimpleLoggerReusability(t *testing.T) {
	logger := NewSimpleLogger()
	for i := 0; i < 5; i++ {
		logger.Info("loop message", "i", i)
	}
}

func TestDefaultDebugConfig(t *testing.T) {
	config := DefaultDebugConfig()

	if config.Enabled {
		t.Error("Expected debug to be disabled by default")
	}
	if !config.LogRequests || !config.LogCache || !config.LogDeduplication {
		t.Error("Expected all event categories selected by default")
	}
	if config.RequestIDGen == nil {
		t.Fatal("Expected a default request ID generator")
	}
	if config.RequestIDGen() == config.RequestIDGen() {
		t.Error("Expected unique request IDs")
	}
}
