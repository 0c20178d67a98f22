package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse(nil)
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("expected default port 8080, got %d", cfg.Server.Port)
	}
	if cfg.Orchestrator.Confirmations != 1 {
		t.Errorf("expected 1 confirmation, got %d", cfg.Orchestrator.Confirmations)
	}
	if cfg.Orchestrator.FinalizeDelay != 2*time.Second {
		t.Errorf("expected 2s finalize delay, got %s", cfg.Orchestrator.FinalizeDelay)
	}
	if cfg.Orchestrator.ConfirmationTimeout != 0 {
		t.Errorf("expected no confirmation timeout, got %s", cfg.Orchestrator.ConfirmationTimeout)
	}
	if len(cfg.Chains) != 2 || cfg.Chains[0].Name != "base" {
		t.Errorf("expected default chains, got %+v", cfg.Chains)
	}
	if cfg.Database.Enabled() {
		t.Error("expected database to be disabled without a host")
	}
}

func TestParse_ChainDefaultsPerElement(t *testing.T) {
	raw := `
chains:
  - name: optimism
    chain_id: 10
    rpc_url: https://mainnet.optimism.io
`
	cfg, err := Parse([]byte(raw))
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}
	if len(cfg.Chains) != 1 {
		t.Fatalf("expected 1 chain, got %d", len(cfg.Chains))
	}
	if cfg.Chains[0].NativeCurrency != "ETH" {
		t.Errorf("expected native currency default ETH, got %q", cfg.Chains[0].NativeCurrency)
	}
}

func TestParse_Rejects(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "unknown field",
			raw:  "servr:\n  port: 1\n",
			want: "failed to unmarshal config",
		},
		{
			name: "bad port",
			raw:  "server:\n  port: 70000\n",
			want: "config validation failed",
		},
		{
			name: "bad factory",
			raw: `
chains:
  - name: base
    chain_id: 8453
    rpc_url: https://mainnet.base.org
    factory_contract: "0x12"
`,
			want: "config validation failed",
		},
		{
			name: "duplicate chain id",
			raw: `
chains:
  - name: a
    chain_id: 1
    rpc_url: https://a.example
  - name: b
    chain_id: 1
    rpc_url: https://b.example
`,
			want: "duplicate chain_id 1",
		},
		{
			name: "duplicate token",
			raw: `
chains:
  - name: a
    chain_id: 1
    rpc_url: https://a.example
    stablecoins:
      - {name: X, symbol: X, address: "0x833589fCD6eDb6E08f4c7C32D4f71b54bdA02913", decimals: 6}
      - {name: Y, symbol: Y, address: "0x833589fcd6edb6e08f4c7c32d4f71b54bda02913", decimals: 6}
`,
			want: "duplicate stablecoin address",
		},
		{
			name: "non numeric fee",
			raw:  "orchestrator:\n  join_fee_usd: one\n",
			want: "config validation failed",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.raw))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}

func TestLoad_ExampleConfig(t *testing.T) {
	cfg, err := Load(filepath.Join("..", "..", "config.example.yaml"))
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if !cfg.Database.Enabled() {
		t.Error("expected example config to enable the database")
	}
	if cfg.PriceOracle.CoinIDs["ETH"] != "ethereum" {
		t.Errorf("unexpected coin ids: %v", cfg.PriceOracle.CoinIDs)
	}
}

func TestParse_EnvOverrides(t *testing.T) {
	t.Setenv("BITSAVE_SERVER_PORT", "9090")
	t.Setenv("BITSAVE_DATABASE_PASSWORD", "from-env")
	t.Setenv("BITSAVE_ORCHESTRATOR_FINALIZE_DELAY", "5s")
	t.Setenv("BITSAVE_ORCHESTRATOR_GAS_LIMIT_MULTIPLIER", "1.5")

	raw := `
server:
  port: 8081
  host: 127.0.0.1
database:
  password: from-file
`
	cfg, err := Parse([]byte(raw))
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("expected env port 9090, got %d", cfg.Server.Port)
	}
	if cfg.Server.Host != "127.0.0.1" {
		t.Errorf("expected file host to survive, got %q", cfg.Server.Host)
	}
	if cfg.Database.Password != "from-env" {
		t.Errorf("expected env password, got %q", cfg.Database.Password)
	}
	if cfg.Orchestrator.FinalizeDelay != 5*time.Second {
		t.Errorf("expected 5s finalize delay, got %s", cfg.Orchestrator.FinalizeDelay)
	}
	if cfg.Orchestrator.GasLimitMultiplier != 1.5 {
		t.Errorf("expected gas multiplier 1.5, got %v", cfg.Orchestrator.GasLimitMultiplier)
	}
	if cfg.Orchestrator.Confirmations != 1 {
		t.Errorf("expected default confirmations to survive, got %d", cfg.Orchestrator.Confirmations)
	}
	if len(cfg.Chains) != 2 {
		t.Errorf("expected default chains, got %d", len(cfg.Chains))
	}
}

func TestParse_EnvOverrideIsValidated(t *testing.T) {
	t.Setenv("BITSAVE_SERVER_PORT", "70000")
	if _, err := Parse(nil); err == nil || !strings.Contains(err.Error(), "config validation failed") {
		t.Errorf("expected validation error, got %v", err)
	}

	t.Setenv("BITSAVE_SERVER_PORT", "not-a-port")
	if _, err := Parse(nil); err == nil || !strings.Contains(err.Error(), "failed to apply environment overrides") {
		t.Errorf("expected override error, got %v", err)
	}
}

func TestSignerKey(t *testing.T) {
	cfg := SignerConfig{PrivateKeyEnv: "BITSAVE_TEST_SIGNER_KEY"}

	t.Setenv("BITSAVE_TEST_SIGNER_KEY", "")
	if _, err := cfg.SignerKey(); err == nil {
		t.Error("expected error for empty key")
	}

	t.Setenv("BITSAVE_TEST_SIGNER_KEY", " 0xabcdef \n")
	key, err := cfg.SignerKey()
	if err != nil {
		t.Fatalf("SignerKey() failed: %v", err)
	}
	if key != "abcdef" {
		t.Errorf("expected trimmed key, got %q", key)
	}
}

func TestNewLogger(t *testing.T) {
	dir := t.TempDir()
	logger, err := NewLogger(LoggingConfig{Level: "debug", Format: "console", OutputPath: filepath.Join(dir, "out.log")})
	if err != nil {
		t.Fatalf("NewLogger() failed: %v", err)
	}
	logger.Info("hello")
	_ = logger.Sync()

	data, err := os.ReadFile(filepath.Join(dir, "out.log"))
	if err != nil {
		t.Fatalf("failed to read log: %v", err)
	}
	if !strings.Contains(string(data), "hello") {
		t.Errorf("expected log output, got %q", data)
	}
}
