// Package chain holds the static description of the supported networks and
// their per-chain contract and stablecoin addresses.
package chain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"

	"github.com/chainsafe/bitsave-middleware/pkg/config"
)

// UnknownChainName is returned by ChainNameForID for unregistered chain IDs.
const UnknownChainName = "Unknown Chain"

var (
	ErrChainNotFound        = errors.New("chain not supported")
	ErrFactoryNotConfigured = errors.New("vault factory address not configured")
	ErrTokenNotConfigured   = errors.New("token not configured for chain")
)

// Chain is a supported EVM network.
type Chain struct {
	ID             int64
	Name           string
	NativeCurrency string
	RPCURL         string
	Factory        common.Address // zero when not deployed
}

// HasFactory reports whether a vault factory is deployed on the chain.
func (c Chain) HasFactory() bool {
	return c.Factory != (common.Address{})
}

// Stablecoin describes a savings token accepted on one chain.
type Stablecoin struct {
	ChainID  int64
	Name     string
	Symbol   string
	Image    string
	Address  *common.Address // nil when unconfigured
	Decimals uint8
}

// Configured reports whether the stablecoin has a deployed address.
func (s Stablecoin) Configured() bool {
	return s.Address != nil
}

// Registry is an immutable, ordered set of chains.
type Registry struct {
	chains []Chain
	tokens map[int64][]Stablecoin
	byID   map[int64]int
	byName map[string]int
}

// NewRegistry builds a registry from chain configuration, keeping config order.
func NewRegistry(chains []config.ChainConfig) (*Registry, error) {
	r := &Registry{
		chains: make([]Chain, 0, len(chains)),
		tokens: make(map[int64][]Stablecoin, len(chains)),
		byID:   make(map[int64]int, len(chains)),
		byName: make(map[string]int, len(chains)),
	}

	for _, cc := range chains {
		if _, dup := r.byID[cc.ChainID]; dup {
			return nil, fmt.Errorf("duplicate chain id %d", cc.ChainID)
		}
		key := strings.ToLower(cc.Name)
		if _, dup := r.byName[key]; dup {
			return nil, fmt.Errorf("duplicate chain name %q", cc.Name)
		}

		c := Chain{
			ID:             cc.ChainID,
			Name:           cc.Name,
			NativeCurrency: cc.NativeCurrency,
			RPCURL:         cc.RPCURL,
		}
		if cc.FactoryContract != "" {
			if !common.IsHexAddress(cc.FactoryContract) {
				return nil, fmt.Errorf("chain %s: invalid factory address %q", cc.Name, cc.FactoryContract)
			}
			c.Factory = common.HexToAddress(cc.FactoryContract)
		}

		coins := make([]Stablecoin, 0, len(cc.Stablecoins))
		for _, sc := range cc.Stablecoins {
			coin := Stablecoin{
				ChainID:  cc.ChainID,
				Name:     sc.Name,
				Symbol:   sc.Symbol,
				Image:    sc.Image,
				Decimals: sc.Decimals,
			}
			if sc.Address != "" {
				if !common.IsHexAddress(sc.Address) {
					return nil, fmt.Errorf("chain %s: invalid %s address %q", cc.Name, sc.Symbol, sc.Address)
				}
				addr := common.HexToAddress(sc.Address)
				coin.Address = &addr
			}
			coins = append(coins, coin)
		}

		r.byID[c.ID] = len(r.chains)
		r.byName[key] = len(r.chains)
		r.chains = append(r.chains, c)
		r.tokens[c.ID] = coins
	}

	return r, nil
}

// ListChains returns the chains in registry order.
func (r *Registry) ListChains() []Chain {
	out := make([]Chain, len(r.chains))
	copy(out, r.chains)
	return out
}

// TokensFor returns the configured stablecoins of a chain, in config order.
// Unknown chains and stablecoins without an address yield nothing.
func (r *Registry) TokensFor(chainName string) []Stablecoin {
	idx, ok := r.byName[strings.ToLower(chainName)]
	if !ok {
		return []Stablecoin{}
	}
	return configuredOnly(r.tokens[r.chains[idx].ID])
}

// TokensForID is TokensFor keyed by chain ID.
func (r *Registry) TokensForID(chainID int64) []Stablecoin {
	return configuredOnly(r.tokens[chainID])
}

// AllTokens returns every stablecoin entry of a chain, including unconfigured ones.
func (r *Registry) AllTokens(chainID int64) []Stablecoin {
	out := make([]Stablecoin, len(r.tokens[chainID]))
	copy(out, r.tokens[chainID])
	return out
}

// ChainNameForID returns the chain name or UnknownChainName.
func (r *Registry) ChainNameForID(id int64) string {
	if c, ok := r.ChainByID(id); ok {
		return c.Name
	}
	return UnknownChainName
}

// ChainByID looks a chain up by its numeric ID.
func (r *Registry) ChainByID(id int64) (Chain, bool) {
	idx, ok := r.byID[id]
	if !ok {
		return Chain{}, false
	}
	return r.chains[idx], true
}

// ChainByName looks a chain up by name, case-insensitively.
func (r *Registry) ChainByName(name string) (Chain, bool) {
	idx, ok := r.byName[strings.ToLower(name)]
	if !ok {
		return Chain{}, false
	}
	return r.chains[idx], true
}

// FactoryAddress returns the vault factory of a chain.
func (r *Registry) FactoryAddress(chainID int64) (common.Address, error) {
	c, ok := r.ChainByID(chainID)
	if !ok {
		return common.Address{}, fmt.Errorf("%w: %d", ErrChainNotFound, chainID)
	}
	if !c.HasFactory() {
		return common.Address{}, fmt.Errorf("%w: %s", ErrFactoryNotConfigured, c.Name)
	}
	return c.Factory, nil
}

// Stablecoin returns the configured stablecoin at address on a chain.
func (r *Registry) Stablecoin(chainID int64, address common.Address) (Stablecoin, error) {
	if _, ok := r.byID[chainID]; !ok {
		return Stablecoin{}, fmt.Errorf("%w: %d", ErrChainNotFound, chainID)
	}
	for _, c := range r.tokens[chainID] {
		if c.Address != nil && *c.Address == address {
			return c, nil
		}
	}
	return Stablecoin{}, fmt.Errorf("%w: %s on chain %d", ErrTokenNotConfigured, address.Hex(), chainID)
}

func configuredOnly(coins []Stablecoin) []Stablecoin {
	out := make([]Stablecoin, 0, len(coins))
	for _, c := range coins {
		if c.Configured() {
			out = append(out, c)
		}
	}
	return out
}
