// Package config loads and saves the desk's persisted configuration.
//
// Loading never fails: a missing or malformed file is logged and the
// defaults are used, and out-of-range values are clamped. The file keys
// match the original config.json layout so existing files keep working.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/rustyeddy/mastermind/market"
)

// CurrentVersion of the configuration document.
const CurrentVersion = 1

type Config struct {
	Version  int      `mapstructure:"version" json:"version" yaml:"version"`
	Trading  Trading  `mapstructure:"trading" json:"trading" yaml:"trading"`
	Strategy Strategy `mapstructure:"strategy" json:"strategy" yaml:"strategy"`
	Risk     Risk     `mapstructure:"risk" json:"risk" yaml:"risk"`
}

type Trading struct {
	DefaultExchange  string `mapstructure:"defaultExchange" json:"defaultExchange" yaml:"defaultExchange"`
	DefaultSymbol    string `mapstructure:"defaultSymbol" json:"defaultSymbol" yaml:"defaultSymbol"`
	PaperTradingMode bool   `mapstructure:"paperTradingMode" json:"paperTradingMode" yaml:"paperTradingMode"`
}

type Strategy struct {
	BrickSize             float64 `mapstructure:"brickSize" json:"brickSize" yaml:"brickSize"`
	Setup1Enabled         bool    `mapstructure:"setup1Enabled" json:"setup1Enabled" yaml:"setup1Enabled"`
	Setup2Enabled         bool    `mapstructure:"setup2Enabled" json:"setup2Enabled" yaml:"setup2Enabled"`
	CounterTradingEnabled bool    `mapstructure:"counterTradingEnabled" json:"counterTradingEnabled" yaml:"counterTradingEnabled"`
}

type Risk struct {
	MaxRiskPerTrade float64 `mapstructure:"maxRiskPerTrade" json:"maxRiskPerTrade" yaml:"maxRiskPerTrade"`
	MaxDailyRisk    float64 `mapstructure:"maxDailyRisk" json:"maxDailyRisk" yaml:"maxDailyRisk"`
}

// Clamp bounds, taken from the original control panel's input ranges.
const (
	minBrickSize = 1.0
	maxBrickSize = 100.0

	minRiskPerTrade = 0.1
	maxRiskPerTrade = 10.0

	minDailyRisk = 1.0
	maxDailyRisk = 50.0
)

// Default returns the stock configuration.
func Default() *Config {
	return &Config{
		Version: CurrentVersion,
		Trading: Trading{
			DefaultExchange:  "Binance",
			DefaultSymbol:    "BTCUSD",
			PaperTradingMode: true,
		},
		Strategy: Strategy{
			BrickSize:     10,
			Setup1Enabled: true,
			Setup2Enabled: true,
		},
		Risk: Risk{
			MaxRiskPerTrade: 2,
			MaxDailyRisk:    10,
		},
	}
}

// Load reads the configuration at path. It always returns a usable config:
// defaults stand in for anything missing, malformed or out of range.
func Load(path string, log *zap.Logger) *Config {
	if log == nil {
		log = zap.NewNop()
	}

	v := viper.New()
	v.SetConfigFile(path)
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if os.IsNotExist(err) {
			log.Info("no configuration file found, using defaults",
				zap.String("path", path))
		} else {
			log.Info("error loading configuration, using defaults",
				zap.String("path", path), zap.Error(err))
		}
		return Default()
	}

	cfg := Default()
	if err := v.Unmarshal(cfg); err != nil {
		log.Info("error decoding configuration, using defaults",
			zap.String("path", path), zap.Error(err))
		return Default()
	}

	cfg.clamp(log)
	log.Info("configuration loaded", zap.String("path", path))
	return cfg
}

func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("version", d.Version)
	v.SetDefault("trading.defaultExchange", d.Trading.DefaultExchange)
	v.SetDefault("trading.defaultSymbol", d.Trading.DefaultSymbol)
	v.SetDefault("trading.paperTradingMode", d.Trading.PaperTradingMode)
	v.SetDefault("strategy.brickSize", d.Strategy.BrickSize)
	v.SetDefault("strategy.setup1Enabled", d.Strategy.Setup1Enabled)
	v.SetDefault("strategy.setup2Enabled", d.Strategy.Setup2Enabled)
	v.SetDefault("strategy.counterTradingEnabled", d.Strategy.CounterTradingEnabled)
	v.SetDefault("risk.maxRiskPerTrade", d.Risk.MaxRiskPerTrade)
	v.SetDefault("risk.maxDailyRisk", d.Risk.MaxDailyRisk)
}

// clamp pulls out-of-range values back to legal ones so a hand-edited file
// can never push invalid parameters into the core.
func (c *Config) clamp(log *zap.Logger) {
	d := Default()

	if c.Version <= 0 {
		c.Version = CurrentVersion
	}
	if !market.KnownExchange(c.Trading.DefaultExchange) {
		log.Info("unknown exchange in config, using default",
			zap.String("exchange", c.Trading.DefaultExchange))
		c.Trading.DefaultExchange = d.Trading.DefaultExchange
	}
	if !market.KnownSymbol(c.Trading.DefaultSymbol) {
		log.Info("unknown symbol in config, using default",
			zap.String("symbol", c.Trading.DefaultSymbol))
		c.Trading.DefaultSymbol = d.Trading.DefaultSymbol
	}

	if c.Strategy.BrickSize <= 0 {
		log.Info("non-positive brick size in config, using default",
			zap.Float64("brick_size", c.Strategy.BrickSize))
		c.Strategy.BrickSize = d.Strategy.BrickSize
	} else {
		c.Strategy.BrickSize = clampF(c.Strategy.BrickSize, minBrickSize, maxBrickSize)
	}

	c.Risk.MaxRiskPerTrade = clampF(c.Risk.MaxRiskPerTrade, minRiskPerTrade, maxRiskPerTrade)
	c.Risk.MaxDailyRisk = clampF(c.Risk.MaxDailyRisk, minDailyRisk, maxDailyRisk)
}

func clampF(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// SaveToFile writes the configuration as YAML or JSON based on the file
// extension. JSON is the historical format of config.json.
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}
