package applog

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testLogger struct {
	messages []testMessage
}

type testMessage struct {
	level string
	msg   string
}

func (l *testLogger) Debug(msg string, fields ...Field) { l.messages = append(l.messages, testMessage{"debug", msg}) }
func (l *testLogger) Info(msg string, fields ...Field)  { l.messages = append(l.messages, testMessage{"info", msg}) }
func (l *testLogger) Warn(msg string, fields ...Field)  { l.messages = append(l.messages, testMessage{"warn", msg}) }
func (l *testLogger) Error(msg string, fields ...Field) { l.messages = append(l.messages, testMessage{"error", msg}) }

func TestSetLoggerRoundTrip(t *testing.T) {
	original := GetLogger()
	defer SetLogger(original)

	custom := &testLogger{}
	SetLogger(custom)
	assert.Equal(t, custom, GetLogger())

	SetLogger(nil)
	_, ok := GetLogger().(*noopLogger)
	assert.True(t, ok, "nil should reinstate the noop logger")
}

func TestGlobalFunctionsRouteToInstalledLogger(t *testing.T) {
	original := GetLogger()
	defer SetLogger(original)

	custom := &testLogger{}
	SetLogger(custom)

	Debug("d")
	Info("i")
	Warn("w")
	Error("e")

	require.Len(t, custom.messages, 4)
	assert.Equal(t, "debug", custom.messages[0].level)
	assert.Equal(t, "info", custom.messages[1].level)
	assert.Equal(t, "warn", custom.messages[2].level)
	assert.Equal(t, "error", custom.messages[3].level)
}

func TestNoopLoggerNeverPanics(t *testing.T) {
	noop := Noop()
	noop.Debug("x", F("k", "v"))
	noop.Info("x")
	noop.Warn("x")
	noop.Error("x")
}

func TestZerologAdapterWritesStructuredFields(t *testing.T) {
	var buf bytes.Buffer
	zlog := zerolog.New(&buf).Level(zerolog.DebugLevel)
	adapter := NewZerologAdapter(zlog)

	adapter.Info("jump transit completed", F("ship_id", int64(7)), F("fuel_remaining", 12.5))
	out := buf.String()

	assert.Contains(t, out, "jump transit completed")
	assert.Contains(t, out, `"ship_id":7`)
	assert.Contains(t, out, `"fuel_remaining":12.5`)
}
