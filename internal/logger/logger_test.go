package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWith(t *testing.T) {
	var buf bytes.Buffer
	l := NewWith("debug", "", &buf)
	assert.Equal(t, logrus.DebugLevel, l.GetLevel())

	l.WithField("op", "Test").Info("hello")
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "hello", entry["msg"])
	assert.Equal(t, "Test", entry["op"])
}

func TestNewWith_TextAndDefaultLevel(t *testing.T) {
	var buf bytes.Buffer
	l := NewWith("bogus", "text", &buf)
	assert.Equal(t, logrus.InfoLevel, l.GetLevel())

	l.Info("plain")
	assert.Contains(t, buf.String(), "msg=plain")
}
