// Package config loads agent settings from defaults, an optional config file
// and QSTARS_* environment variables.
package config

import (
	"fmt"
	"strings"

	"github.com/qstars/qstars/qstars-core/orders"
	"github.com/qstars/qstars/qstars-core/rules"
	"github.com/spf13/viper"
)

// Transport names accepted by the listener.
const (
	TransportUnix      = "unix"
	TransportWebSocket = "websocket"
)

// Config holds everything the process needs to serve agents.
type Config struct {
	Team             string           `mapstructure:"team"`
	LogLevel         string           `mapstructure:"logLevel"`
	Transport        string           `mapstructure:"transport"`
	SocketPath       string           `mapstructure:"socketPath"`
	ListenAddr       string           `mapstructure:"listenAddr"`
	Seed             int64            `mapstructure:"seed"` // 0 seeds from the clock
	DiagnosticsEvery int              `mapstructure:"diagnosticsEvery"`
	JournalPath      string           `mapstructure:"journalPath"` // empty disables the match journal
	BuildOrder       rules.BuildOrder `mapstructure:"buildOrder"`
	Orders           orders.Settings  `mapstructure:"orders"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("team", "QStars")
	v.SetDefault("logLevel", "info")
	v.SetDefault("transport", TransportUnix)
	v.SetDefault("socketPath", "/tmp/qstars.sock")
	v.SetDefault("listenAddr", "127.0.0.1:8765")
	v.SetDefault("seed", 0)
	v.SetDefault("diagnosticsEvery", 100)
	v.SetDefault("journalPath", "")

	bo := rules.DefaultBuildOrder()
	v.SetDefault("buildOrder.mineFloor", bo.MineFloor)
	v.SetDefault("buildOrder.firstGround", bo.FirstGround)
	v.SetDefault("buildOrder.mineTarget", bo.MineTarget)
	v.SetDefault("buildOrder.airFloor", bo.AirFloor)
	v.SetDefault("buildOrder.groundFloor", bo.GroundFloor)

	ds := orders.DefaultSettings()
	v.SetDefault("orders.groundScanStep", ds.GroundScanStep)
	v.SetDefault("orders.airTurnStep", ds.AirTurnStep)
	v.SetDefault("orders.convertDistance", ds.ConvertDistance)
}

// Load reads configuration. path may be empty, in which case only defaults
// and the environment apply. The file format follows its extension.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("QSTARS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}

	switch cfg.Transport {
	case TransportUnix, TransportWebSocket:
	default:
		return Config{}, fmt.Errorf("unknown transport %q", cfg.Transport)
	}
	if cfg.Team == "" {
		return Config{}, fmt.Errorf("team must not be empty")
	}
	cfg.BuildOrder.Validate()

	return cfg, nil
}
