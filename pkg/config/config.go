package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"reflect"
	"strings"
	"time"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes environment overrides of scalar settings, e.g.
// BITSAVE_SERVER_PORT overrides server.port.
const EnvPrefix = "BITSAVE"

// Config represents the savings API configuration
type Config struct {
	Server       ServerConfig       `yaml:"server"`
	Database     DatabaseConfig     `yaml:"database"`
	Logging      LoggingConfig      `yaml:"logging"`
	Signer       SignerConfig       `yaml:"signer"`
	Chains       []ChainConfig      `yaml:"chains" validate:"dive"`
	Orchestrator OrchestratorConfig `yaml:"orchestrator"`
	PriceOracle  PriceOracleConfig  `yaml:"price_oracle"`
	Locator      LocatorConfig      `yaml:"locator"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host            string        `yaml:"host" default:"0.0.0.0"`
	Port            int           `yaml:"port" default:"8080" validate:"min=1,max=65535"`
	ReadTimeout     time.Duration `yaml:"read_timeout" default:"30s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" default:"30s"`
}

// DatabaseConfig contains database connection settings.
// An empty host disables flow history persistence.
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port" default:"5432"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database" default:"bitsave"`
	SSLMode  string `yaml:"ssl_mode" default:"disable" validate:"oneof=disable require verify-ca verify-full"`

	MaxOpenConns    int           `yaml:"max_open_conns" default:"10" validate:"gte=0"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime" default:"30m"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level      string `yaml:"level" default:"info"`
	Format     string `yaml:"format" default:"json" validate:"oneof=json console"`
	OutputPath string `yaml:"output_path" default:"stdout"`
}

// SignerConfig points at the environment variable holding the hex private key
// of the connected wallet.
type SignerConfig struct {
	PrivateKeyEnv string `yaml:"private_key_env" default:"BITSAVE_SIGNER_KEY" validate:"required"`
}

// ChainConfig describes one supported network
type ChainConfig struct {
	Name            string             `yaml:"name" validate:"required"`
	ChainID         int64              `yaml:"chain_id" validate:"required,gt=0"`
	RPCURL          string             `yaml:"rpc_url" validate:"required,url"`
	NativeCurrency  string             `yaml:"native_currency" default:"ETH"`
	FactoryContract string             `yaml:"factory_contract" validate:"omitempty,eth_addr"`
	Stablecoins     []StablecoinConfig `yaml:"stablecoins" validate:"dive"`
}

// StablecoinConfig describes a stablecoin accepted on a chain.
// Address may be empty when the token is not deployed for this environment.
type StablecoinConfig struct {
	Name     string `yaml:"name" validate:"required"`
	Symbol   string `yaml:"symbol" validate:"required"`
	Image    string `yaml:"image"`
	Address  string `yaml:"address" validate:"omitempty,eth_addr"`
	Decimals uint8  `yaml:"decimals" validate:"lte=36"`
}

// OrchestratorConfig controls the write-side transaction flows
type OrchestratorConfig struct {
	Confirmations       uint64        `yaml:"confirmations" default:"1" validate:"gte=1"`
	FinalizeDelay       time.Duration `yaml:"finalize_delay" default:"2s"`
	ConfirmationTimeout time.Duration `yaml:"confirmation_timeout"`
	ReceiptPollInterval time.Duration `yaml:"receipt_poll_interval" default:"2s" validate:"gt=0"`
	MaturityBuffer      time.Duration `yaml:"maturity_buffer" default:"15m"`
	VaultCreationFeeUSD string        `yaml:"vault_creation_fee_usd" default:"1" validate:"numeric"`
	JoinFeeUSD          string        `yaml:"join_fee_usd" default:"1" validate:"numeric"`
	MaxGasPrice         string        `yaml:"max_gas_price" validate:"omitempty,numeric"`
	GasLimitMultiplier  float64       `yaml:"gas_limit_multiplier" default:"1.2" validate:"gte=1"`
	FlowHistory         int           `yaml:"flow_history" default:"256" validate:"gt=0"`
}

// PriceOracleConfig contains the USD price source settings
type PriceOracleConfig struct {
	URL       string            `yaml:"url" default:"https://api.coingecko.com/api/v3" validate:"required,url"`
	Timeout   time.Duration     `yaml:"timeout" default:"10s"`
	APIKeyEnv string            `yaml:"api_key_env"`
	CoinIDs   map[string]string `yaml:"coin_ids"`
}

// LocatorConfig contains vault locator settings
type LocatorConfig struct {
	CacheSize        int `yaml:"cache_size" default:"1024" validate:"gt=0"`
	ProbeConcurrency int `yaml:"probe_concurrency" default:"4" validate:"gt=0"`
}

// Load loads configuration from a YAML file, applies defaults and validates it
func Load(configPath string) (*Config, error) {
	raw, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(raw)
}

// Parse decodes YAML configuration bytes and applies environment overrides
func Parse(raw []byte) (*Config, error) {
	var cfg Config
	if err := defaults.Set(&cfg); err != nil {
		return nil, fmt.Errorf("failed to apply defaults: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := applyEnv(&cfg); err != nil {
		return nil, fmt.Errorf("failed to apply environment overrides: %w", err)
	}

	if len(cfg.Chains) == 0 {
		cfg.Chains = DefaultChains()
	}

	// yaml leaves slice elements zeroed, so defaults are re-applied per element
	for i := range cfg.Chains {
		if err := defaults.Set(&cfg.Chains[i]); err != nil {
			return nil, fmt.Errorf("failed to apply chain defaults: %w", err)
		}
	}

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

// applyEnv overlays BITSAVE_* variables onto cfg. Lists and maps (chains,
// coin ids) are file-only.
func applyEnv(cfg *Config) error {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := bindEnv(v, reflect.TypeOf(*cfg), ""); err != nil {
		return err
	}
	return v.Unmarshal(cfg, func(dc *mapstructure.DecoderConfig) {
		dc.TagName = "yaml"
	})
}

// bindEnv registers every scalar yaml key of t with v. Unset variables are
// left out of the overlay.
func bindEnv(v *viper.Viper, t reflect.Type, prefix string) error {
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		name, _, _ := strings.Cut(f.Tag.Get("yaml"), ",")
		if name == "" || name == "-" {
			continue
		}
		key := prefix + name
		switch f.Type.Kind() {
		case reflect.Struct:
			if err := bindEnv(v, f.Type, key+"."); err != nil {
				return err
			}
		case reflect.Slice, reflect.Map:
		default:
			if err := v.BindEnv(key); err != nil {
				return fmt.Errorf("bind %s: %w", key, err)
			}
		}
	}
	return nil
}

func validate(cfg *Config) error {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.Struct(cfg); err != nil {
		return err
	}

	seenIDs := make(map[int64]struct{}, len(cfg.Chains))
	seenNames := make(map[string]struct{}, len(cfg.Chains))
	for _, c := range cfg.Chains {
		if _, ok := seenIDs[c.ChainID]; ok {
			return fmt.Errorf("duplicate chain_id %d", c.ChainID)
		}
		seenIDs[c.ChainID] = struct{}{}

		name := strings.ToLower(c.Name)
		if _, ok := seenNames[name]; ok {
			return fmt.Errorf("duplicate chain name %q", c.Name)
		}
		seenNames[name] = struct{}{}

		seenTokens := make(map[string]struct{}, len(c.Stablecoins))
		for _, sc := range c.Stablecoins {
			if sc.Address == "" {
				continue
			}
			addr := strings.ToLower(sc.Address)
			if _, ok := seenTokens[addr]; ok {
				return fmt.Errorf("chain %s: duplicate stablecoin address %s", c.Name, sc.Address)
			}
			seenTokens[addr] = struct{}{}
		}
	}
	return nil
}

// Enabled reports whether a database is configured
func (c *DatabaseConfig) Enabled() bool {
	return c.Host != ""
}

// SignerKey reads the signer private key from the configured environment variable
func (c *SignerConfig) SignerKey() (string, error) {
	key := strings.TrimPrefix(strings.TrimSpace(os.Getenv(c.PrivateKeyEnv)), "0x")
	if key == "" {
		return "", fmt.Errorf("signer key not set: env=%s", c.PrivateKeyEnv)
	}
	return key, nil
}

// DefaultChains returns the networks the savings product ships with.
// Factory addresses are deployment specific and left empty here.
func DefaultChains() []ChainConfig {
	return []ChainConfig{
		{
			Name:           "base",
			ChainID:        8453,
			RPCURL:         "https://mainnet.base.org",
			NativeCurrency: "ETH",
			Stablecoins: []StablecoinConfig{
				{
					Name:     "USD Coin",
					Symbol:   "USDC",
					Image:    "/usdc.png",
					Address:  "0x833589fCD6eDb6E08f4c7C32D4f71b54bdA02913",
					Decimals: 6,
				},
			},
		},
		{
			Name:           "lisk",
			ChainID:        1135,
			RPCURL:         "https://rpc.api.lisk.com",
			NativeCurrency: "ETH",
			Stablecoins: []StablecoinConfig{
				{Name: "Tether USD", Symbol: "USDT", Image: "/usdt.png", Decimals: 6},
				{Name: "USD Coin", Symbol: "USDC", Image: "/usdc.png", Decimals: 6},
			},
		},
	}
}
