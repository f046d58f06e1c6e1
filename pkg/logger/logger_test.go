package logger

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetup(t *testing.T) {
	oldLogger, oldDebug := Logger, DebugLogger
	t.Cleanup(func() {
		Logger, DebugLogger = oldLogger, oldDebug
	})

	var buf bytes.Buffer
	Setup(&buf, true, false)
	Logger.Printf("loaded %d", 3)
	DebugLogger.Printf("hidden")
	assert.Contains(t, buf.String(), "[tstidx] ")
	assert.Contains(t, buf.String(), "loaded 3")
	assert.NotContains(t, buf.String(), "hidden")

	buf.Reset()
	Setup(&buf, false, true)
	DebugLogger.Println("shown")
	assert.Contains(t, buf.String(), "[tstidx debug] ")

	buf.Reset()
	Setup(&buf, false, false)
	Logger.Print("quiet")
	assert.Empty(t, buf.String())
}

func TestDebugLoggerForwards(t *testing.T) {
	oldLogger, oldDebug := Logger, DebugLogger
	t.Cleanup(func() {
		Logger, DebugLogger = oldLogger, oldDebug
	})

	var buf bytes.Buffer
	Setup(&buf, true, false)
	SetDebugLogger(&debugLogger{})
	DebugLogger.Print("forwarded")
	assert.Contains(t, buf.String(), "forwarded")
}
