package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultValues(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "QStars", cfg.Team)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, TransportUnix, cfg.Transport)
	assert.Equal(t, "/tmp/qstars.sock", cfg.SocketPath)
	assert.Equal(t, "127.0.0.1:8765", cfg.ListenAddr)
	assert.Equal(t, int64(0), cfg.Seed)
	assert.Equal(t, 100, cfg.DiagnosticsEvery)
	assert.Empty(t, cfg.JournalPath)

	assert.Equal(t, 2, cfg.BuildOrder.MineFloor)
	assert.Equal(t, 1, cfg.BuildOrder.FirstGround)
	assert.Equal(t, 3, cfg.BuildOrder.MineTarget)
	assert.Equal(t, 2, cfg.BuildOrder.AirFloor)
	assert.Equal(t, 3, cfg.BuildOrder.GroundFloor)

	assert.Equal(t, 45.0, cfg.Orders.GroundScanStep)
	assert.Equal(t, 30.0, cfg.Orders.AirTurnStep)
	assert.Equal(t, 20.0, cfg.Orders.ConvertDistance)
}

func TestLoad_WithValidConfigFile(t *testing.T) {
	dir := t.TempDir()
	cfg := `{
		"team": "Blue",
		"transport": "websocket",
		"seed": 42,
		"buildOrder": { "airFloor": 4 },
		"orders": { "convertDistance": 35.5 }
	}`
	path := filepath.Join(dir, "qstars.json")
	require.NoError(t, os.WriteFile(path, []byte(cfg), 0644))

	got, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "Blue", got.Team)
	assert.Equal(t, TransportWebSocket, got.Transport)
	assert.Equal(t, int64(42), got.Seed)
	assert.Equal(t, 4, got.BuildOrder.AirFloor)
	assert.Equal(t, 2, got.BuildOrder.MineFloor, "unset keys keep their defaults")
	assert.Equal(t, 35.5, got.Orders.ConvertDistance)
}

func TestLoad_YAMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "qstars.yaml")
	require.NoError(t, os.WriteFile(path, []byte("team: Green\nbuildOrder:\n  groundFloor: 6\n"), 0644))

	got, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "Green", got.Team)
	assert.Equal(t, 6, got.BuildOrder.GroundFloor)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("QSTARS_TEAM", "FromEnv")
	t.Setenv("QSTARS_BUILDORDER_MINETARGET", "5")
	t.Setenv("QSTARS_JOURNALPATH", "/var/lib/qstars/match.db")

	got, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "FromEnv", got.Team)
	assert.Equal(t, 5, got.BuildOrder.MineTarget)
	assert.Equal(t, "/var/lib/qstars/match.db", got.JournalPath)
}

func TestLoad_ClampsBuildOrder(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "qstars.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"buildOrder": {"mineFloor": 4, "mineTarget": 1}}`), 0644))

	got, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 4, got.BuildOrder.MineTarget, "mine target never drops below the floor")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("/nonexistent/path/qstars.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file")
}

func TestLoad_UnknownTransport(t *testing.T) {
	t.Setenv("QSTARS_TRANSPORT", "carrier-pigeon")

	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown transport")
}
