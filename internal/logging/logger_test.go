package logging

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetLogrus(t *testing.T) {
	t.Helper()
	t.Cleanup(func() {
		logrus.SetOutput(os.Stderr)
		logrus.SetLevel(logrus.InfoLevel)
		logrus.SetFormatter(&logrus.TextFormatter{})
	})
}

func TestGetLevel(t *testing.T) {
	tests := []struct {
		in   string
		want logrus.Level
	}{
		{"debug", logrus.DebugLevel},
		{"DEBUG", logrus.DebugLevel},
		{"error", logrus.ErrorLevel},
		{"fatal", logrus.FatalLevel},
		{"info", logrus.InfoLevel},
		{"trace", logrus.TraceLevel},
		{"warn", logrus.WarnLevel},
		{"warning", logrus.WarnLevel},
		{"", logrus.InfoLevel},
		{"bogus", logrus.InfoLevel},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, GetLevel(tt.in), "GetLevel(%q)", tt.in)
	}
}

func TestSetupWritesToFile(t *testing.T) {
	resetLogrus(t)
	path := filepath.Join(t.TempDir(), "app")

	closer := Setup(LoggerSetupParams{LogFileName: path, LogLevel: "debug"})
	logrus.Debug("rolled over")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path + ".log")
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), "rolled over"))
	assert.Equal(t, logrus.DebugLevel, logrus.GetLevel())
}

func TestSetupJSON(t *testing.T) {
	resetLogrus(t)
	path := filepath.Join(t.TempDir(), "app.log")

	closer := Setup(LoggerSetupParams{LogFileName: path, LogLevel: "info", LogFormatJSON: true})
	logrus.WithField("steps", 42).Info("saved")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"steps":42`)
}

func TestSetupWithoutFileDiscards(t *testing.T) {
	resetLogrus(t)
	closer := Setup(LoggerSetupParams{})
	assert.Equal(t, io.Discard, logrus.StandardLogger().Out)
	assert.NoError(t, closer.Close())
}
