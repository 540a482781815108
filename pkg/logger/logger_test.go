package logger

import (
	"testing"

	"school_planner_backend/internal/config"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zapcore"
)

func TestSetLevel(t *testing.T) {
	tests := []struct {
		name string
		mode string
		lvl  string
		want zapcore.Level
	}{
		{name: "release default", mode: "release", want: zapcore.InfoLevel},
		{name: "debug mode", mode: "debug", want: zapcore.DebugLevel},
		{name: "explicit level wins", mode: "debug", lvl: "warn", want: zapcore.WarnLevel},
		{name: "unparseable level ignored", mode: "release", lvl: "loud", want: zapcore.InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			SetLevel(&config.Config{
				Server: config.ServerConfig{Mode: tt.mode},
				Log:    config.LogConfig{Level: tt.lvl},
			})
			assert.Equal(t, tt.want, Level())
		})
	}
}
