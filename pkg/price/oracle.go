// Package price converts USD-denominated fees into native currency amounts.
package price

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/chainsafe/bitsave-middleware/internal/metrics"
	"github.com/chainsafe/bitsave-middleware/pkg/config"
	"github.com/chainsafe/bitsave-middleware/pkg/token"
)

// ErrPriceUnavailable is returned when no usable USD price can be obtained.
var ErrPriceUnavailable = errors.New("price unavailable")

// Oracle returns the USD price of one unit of a currency.
type Oracle interface {
	PriceOf(ctx context.Context, symbol string) (decimal.Decimal, error)
}

var defaultCoinIDs = map[string]string{
	"ETH":  "ethereum",
	"USDC": "usd-coin",
	"USDT": "tether",
}

const apiKeyHeader = "x-cg-demo-api-key"

// HTTPOracle queries a CoinGecko-compatible simple/price endpoint.
type HTTPOracle struct {
	baseURL string
	apiKey  string
	coinIDs map[string]string
	client  *http.Client
	logger  *zap.Logger
}

// NewHTTPOracle creates an oracle from config. The API key, when configured,
// is read from the environment.
func NewHTTPOracle(cfg config.PriceOracleConfig, logger *zap.Logger) *HTTPOracle {
	ids := make(map[string]string, len(defaultCoinIDs)+len(cfg.CoinIDs))
	for k, v := range defaultCoinIDs {
		ids[k] = v
	}
	for k, v := range cfg.CoinIDs {
		ids[strings.ToUpper(k)] = v
	}

	var apiKey string
	if cfg.APIKeyEnv != "" {
		apiKey = os.Getenv(cfg.APIKeyEnv)
	}

	return &HTTPOracle{
		baseURL: strings.TrimRight(cfg.URL, "/"),
		apiKey:  apiKey,
		coinIDs: ids,
		client:  &http.Client{Timeout: cfg.Timeout},
		logger:  logger,
	}
}

// PriceOf fetches the current USD price of symbol.
func (o *HTTPOracle) PriceOf(ctx context.Context, symbol string) (decimal.Decimal, error) {
	symbol = strings.ToUpper(symbol)
	p, err := o.fetch(ctx, symbol)
	if err != nil {
		metrics.PriceLookups.WithLabelValues(symbol, "error").Inc()
		o.logger.Warn("Price lookup failed", zap.String("symbol", symbol), zap.Error(err))
		return decimal.Zero, err
	}
	metrics.PriceLookups.WithLabelValues(symbol, "ok").Inc()
	return p, nil
}

func (o *HTTPOracle) fetch(ctx context.Context, symbol string) (decimal.Decimal, error) {
	id, ok := o.coinIDs[symbol]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: no coin id for %s", ErrPriceUnavailable, symbol)
	}

	q := url.Values{}
	q.Set("ids", id)
	q.Set("vs_currencies", "usd")
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, o.baseURL+"/simple/price?"+q.Encode(), nil)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %v", ErrPriceUnavailable, err)
	}
	req.Header.Set("Accept", "application/json")
	if o.apiKey != "" {
		req.Header.Set(apiKeyHeader, o.apiKey)
	}

	resp, err := o.client.Do(req)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %v", ErrPriceUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return decimal.Zero, fmt.Errorf("%w: status %d", ErrPriceUnavailable, resp.StatusCode)
	}

	var body map[string]map[string]json.Number
	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()
	if err := dec.Decode(&body); err != nil {
		return decimal.Zero, fmt.Errorf("%w: decode: %v", ErrPriceUnavailable, err)
	}

	raw, ok := body[id]["usd"]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: no usd price for %s", ErrPriceUnavailable, id)
	}
	p, err := decimal.NewFromString(raw.String())
	if err != nil || !p.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: bad price %q for %s", ErrPriceUnavailable, raw, id)
	}
	return p, nil
}

// Static is an Oracle over a fixed price table.
type Static map[string]decimal.Decimal

// PriceOf returns the configured price of symbol.
func (s Static) PriceOf(_ context.Context, symbol string) (decimal.Decimal, error) {
	p, ok := s[strings.ToUpper(symbol)]
	if !ok || !p.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: %s", ErrPriceUnavailable, symbol)
	}
	return p, nil
}

// ToNative converts a USD amount into the smallest native unit given the
// native currency's USD price. The result is rounded half up at 18 decimals.
func ToNative(usd, price decimal.Decimal) (*big.Int, error) {
	if !price.IsPositive() {
		return nil, fmt.Errorf("%w: non-positive price", ErrPriceUnavailable)
	}
	if usd.IsNegative() {
		return nil, fmt.Errorf("negative fee %s", usd.String())
	}
	native := usd.DivRound(price, token.NativeDecimals)
	return native.Shift(token.NativeDecimals).BigInt(), nil
}
