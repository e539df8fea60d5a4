package logger_adapter

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/harry16102003/Pune-Real-Estate-Predictor/internal/core/port"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlogAdapter_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := NewSlogAdapter(SlogConfig{Writer: &buf, Level: slog.LevelDebug, IsJSON: true})

	logger.WithFields(port.Fields{"component": "test"}).Error("boom", errors.New("bad"), port.Fields{"field": "bhk"})

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "boom", record["msg"])
	assert.Equal(t, "ERROR", record["level"])
	assert.Equal(t, "test", record["component"])
	assert.Equal(t, "bhk", record["field"])
	assert.Equal(t, "bad", record["error"])
}

func TestSlogAdapter_LevelFilter(t *testing.T) {
	var buf bytes.Buffer
	logger := NewSlogAdapter(SlogConfig{Writer: &buf, Level: slog.LevelWarn})

	logger.Debug("hidden", nil)
	logger.Info("hidden", nil)
	assert.Zero(t, buf.Len())

	logger.Warn("shown", nil)
	assert.Contains(t, buf.String(), "shown")
}

type recordedPost struct {
	tag  string
	data port.Fields
}

type fakeFluent struct {
	posts []recordedPost
}

func (f *fakeFluent) Post(tag string, message interface{}) error {
	f.posts = append(f.posts, recordedPost{tag: tag, data: message.(port.Fields)})
	return nil
}

func TestFluentLoggerAdapter(t *testing.T) {
	client := &fakeFluent{}
	adapter, err := NewFluentLoggerAdapter(client, slog.LevelInfo)
	require.NoError(t, err)

	logger := adapter.WithFields(port.Fields{"service_name": "price"})
	logger.Debug("dropped", nil)
	logger.Info("kept", port.Fields{"k": 1})
	logger.Error("failed", errors.New("x"), nil)

	require.Len(t, client.posts, 2)
	assert.Equal(t, "info", client.posts[0].tag)
	assert.Equal(t, "kept", client.posts[0].data["message"])
	assert.Equal(t, "price", client.posts[0].data["service_name"])
	assert.Equal(t, "x", client.posts[1].data["error"])

	_, err = NewFluentLoggerAdapter(nil, nil)
	assert.Error(t, err)
}

func TestMultiLoggerAdapter(t *testing.T) {
	a, b := &fakeFluent{}, &fakeFluent{}
	la, _ := NewFluentLoggerAdapter(a, slog.LevelDebug)
	lb, _ := NewFluentLoggerAdapter(b, slog.LevelDebug)

	multi, err := NewMultiloggerAdapter(la, lb)
	require.NoError(t, err)
	multi.WithFields(port.Fields{"x": 1}).Warn("hello", nil)

	require.Len(t, a.posts, 1)
	require.Len(t, b.posts, 1)
	assert.Equal(t, 1, b.posts[0].data["x"])

	_, err = NewMultiloggerAdapter()
	assert.Error(t, err)
}

func TestParseLevel(t *testing.T) {
	lvl, ok := ParseLevel("DEBUG")
	assert.True(t, ok)
	assert.Equal(t, slog.LevelDebug, lvl)

	lvl, ok = ParseLevel("chatty")
	assert.False(t, ok)
	assert.Equal(t, slog.LevelInfo, lvl)
}
