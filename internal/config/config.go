package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"

	"stockbot/internal/logging"
)

// Config materialises application configuration.
type Config struct {
	App        AppConfig        `mapstructure:"app"`
	Logging    logging.Config   `mapstructure:"logging"`
	Slack      SlackConfig      `mapstructure:"slack"`
	MarketData MarketDataConfig `mapstructure:"marketdata"`
	Render     RenderConfig     `mapstructure:"render"`
}

// AppConfig general metadata.
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Environment string `mapstructure:"environment"`
}

// SlackConfig covers chat platform access. BotToken authorises outbound
// messages, AppToken authorises the Socket Mode event stream.
type SlackConfig struct {
	BotToken string `mapstructure:"bot_token"`
	AppToken string `mapstructure:"app_token"`
	APIBase  string `mapstructure:"api_base"`
}

// MarketDataConfig captures financial data provider connectivity.
type MarketDataConfig struct {
	APIKey         string        `mapstructure:"api_key"`
	BaseURL        string        `mapstructure:"base_url"`
	CryptoSymbol   string        `mapstructure:"crypto_symbol"`
	CryptoMarket   string        `mapstructure:"crypto_market"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	UserAgent      string        `mapstructure:"user_agent"`
}

// RenderConfig points at the asynchronous graph rendering collaborator.
type RenderConfig struct {
	Endpoint       string        `mapstructure:"endpoint"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
}

// Load builds configuration from file, environment, and defaults.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("STOCKBOT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := readConfig(v); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg, decodeHook()); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func readConfig(v *viper.Viper) error {
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "stockbot")
	v.SetDefault("app.environment", "development")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	v.SetDefault("slack.api_base", "https://slack.com/api")

	v.SetDefault("marketdata.base_url", "https://www.alphavantage.co/query")
	v.SetDefault("marketdata.crypto_symbol", "BTC")
	v.SetDefault("marketdata.crypto_market", "USD")
	v.SetDefault("marketdata.request_timeout", "10s")
	v.SetDefault("marketdata.user_agent", "stockbot/1.0")

	v.SetDefault("render.request_timeout", "10s")
}

func decodeHook() viper.DecoderConfigOption {
	return func(dc *mapstructure.DecoderConfig) {
		dc.TagName = "mapstructure"
		dc.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		)
	}
}

// Validate performs basic sanity checks on the configuration values.
func (c *Config) Validate() error {
	if c.MarketData.RequestTimeout <= 0 {
		return fmt.Errorf("marketdata.request_timeout must be greater than zero")
	}
	if c.MarketData.CryptoSymbol == "" {
		return fmt.Errorf("marketdata.crypto_symbol must not be empty")
	}
	if c.MarketData.CryptoMarket == "" {
		return fmt.Errorf("marketdata.crypto_market must not be empty")
	}
	if c.Render.RequestTimeout <= 0 {
		return fmt.Errorf("render.request_timeout must be greater than zero")
	}
	return nil
}
