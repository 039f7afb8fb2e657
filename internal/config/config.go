// Package config exposes strongly typed application configuration loaded
// from YAML defaults with environment overrides.
package config

import (
	"fmt"
	"os"

	"github.com/gagliardetto/solana-go/rpc"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// App captures process-wide runtime settings such as name, metrics address,
// and logging level.
type App struct {
	Name        string `yaml:"name"`
	MetricsAddr string `yaml:"metrics_addr"`
	LogLevel    string `yaml:"log_level"`
}

// Rpc defines Solana cluster endpoints and the read consistency level.
type Rpc struct {
	Endpoint   string `yaml:"endpoint"`
	WsEndpoint string `yaml:"ws_endpoint"`
	Commitment string `yaml:"commitment"` // processed|confirmed|finalized
}

// Oracle configures the USD price API.
type Oracle struct {
	BaseURL string `yaml:"base_url"`
	Network string `yaml:"network"` // e.g. "mainnet"
	APIKey  string `yaml:"api_key"`
}

// Watch configures the new-pool watcher.
type Watch struct {
	QuoteMint string `yaml:"quote_mint"`
}

// Config collects every configuration leaf for easy marshaling from YAML.
type Config struct {
	App    App    `yaml:"app"`
	Rpc    Rpc    `yaml:"rpc"`
	Oracle Oracle `yaml:"oracle"`
	Watch  Watch  `yaml:"watch"`
}

// Load hydrates defaults, merges an optional YAML file, applies environment
// overrides, then validates. It never terminates the process; the entry
// points decide what a configuration error is worth.
func Load(path string) (*Config, error) {
	cfg := defaults()

	file, err := os.Open(path)
	switch {
	case err == nil:
		defer file.Close()
		if err := yaml.NewDecoder(file).Decode(cfg); err != nil {
			return nil, fmt.Errorf("decode yaml: %w", err)
		}
	case !os.IsNotExist(err):
		return nil, fmt.Errorf("open config: %w", err)
	}

	_ = godotenv.Load() // best-effort
	applyEnv(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func defaults() *Config {
	return &Config{
		App: App{
			Name:        "solana-sniper-bot",
			MetricsAddr: ":9091",
			LogLevel:    "info",
		},
		Rpc: Rpc{
			Commitment: "confirmed",
		},
		Oracle: Oracle{
			BaseURL: "https://solana-gateway.moralis.io",
			Network: "mainnet",
		},
		Watch: Watch{
			QuoteMint: "So11111111111111111111111111111111111111112",
		},
	}
}

func applyEnv(cfg *Config) {
	cfg.Rpc.Endpoint = getEnv("RPC_ENDPOINT", cfg.Rpc.Endpoint)
	cfg.Rpc.WsEndpoint = getEnv("RPC_WEBSOCKET_ENDPOINT", cfg.Rpc.WsEndpoint)
	cfg.Rpc.Commitment = getEnv("COMMITMENT_LEVEL", cfg.Rpc.Commitment)
	cfg.Oracle.APIKey = getEnv("MORALIS_API_KEY", cfg.Oracle.APIKey)
	cfg.Oracle.Network = getEnv("PRICE_NETWORK", cfg.Oracle.Network)
	cfg.Watch.QuoteMint = getEnv("QUOTE_MINT", cfg.Watch.QuoteMint)
	cfg.App.LogLevel = getEnv("LOG_LEVEL", cfg.App.LogLevel)
	cfg.App.MetricsAddr = getEnv("METRICS_ADDR", cfg.App.MetricsAddr)
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func (c *Config) validate() error {
	if c.Rpc.Endpoint == "" {
		return fmt.Errorf("RPC_ENDPOINT is not set")
	}
	if c.Oracle.APIKey == "" {
		return fmt.Errorf("MORALIS_API_KEY is not set")
	}
	switch c.Rpc.Commitment {
	case "processed", "confirmed", "finalized":
	default:
		return fmt.Errorf("COMMITMENT_LEVEL %q is not one of processed|confirmed|finalized", c.Rpc.Commitment)
	}
	return nil
}

// CommitmentType maps the validated commitment string onto the RPC enum.
func (c *Config) CommitmentType() rpc.CommitmentType {
	switch c.Rpc.Commitment {
	case "processed":
		return rpc.CommitmentProcessed
	case "finalized":
		return rpc.CommitmentFinalized
	default:
		return rpc.CommitmentConfirmed
	}
}
