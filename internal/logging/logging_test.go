package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/localnerve/raulo-crmdb/internal/config"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWritesRotatedFile(t *testing.T) {
	cfg := config.Defaults()
	cfg.LogLevel = "debug"
	cfg.LogFile = filepath.Join(t.TempDir(), "crm.log")

	log := New(&cfg)
	assert.Equal(t, logrus.DebugLevel, log.GetLevel())

	log.WithField("lead", "1").Info("Lead saved")

	data, err := os.ReadFile(cfg.LogFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"lead":"1"`)
	assert.Contains(t, string(data), `"msg":"Lead saved"`)
}

func TestNewFallsBackToInfo(t *testing.T) {
	cfg := config.Defaults()
	cfg.LogLevel = "chatty"

	assert.Equal(t, logrus.InfoLevel, New(&cfg).GetLevel())
}
