package logger

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevels(t *testing.T) {
	tests := []struct {
		level     Level
		wantDebug bool
		wantInfo  bool
	}{
		{LevelOff, false, false},
		{LevelNormal, false, true},
		{LevelVerbose, true, true},
	}

	for _, tt := range tests {
		var buf bytes.Buffer
		log := New(tt.level, &buf)
		log.Debug("debug %d", 1)
		log.Info("info %d", 2)

		out := buf.String()
		assert.Equal(t, tt.wantDebug, bytes.Contains([]byte(out), []byte("debug 1")), "level %d debug", tt.level)
		assert.Equal(t, tt.wantInfo, bytes.Contains([]byte(out), []byte("info 2")), "level %d info", tt.level)
	}
}

func TestSetLevel(t *testing.T) {
	var buf bytes.Buffer
	log := New(LevelOff, &buf)
	assert.Equal(t, LevelOff, log.GetLevel())

	log.SetLevel(LevelVerbose)
	assert.Equal(t, LevelVerbose, log.GetLevel())

	log.Warn("careful")
	assert.Contains(t, buf.String(), "careful")
	assert.Contains(t, buf.String(), "WARN")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, LevelOff, ParseLevel("quiet"))
	assert.Equal(t, LevelVerbose, ParseLevel("debug"))
	assert.Equal(t, LevelNormal, ParseLevel("info"))
	assert.Equal(t, LevelNormal, ParseLevel(""))
}
