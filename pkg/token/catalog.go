// Package token resolves stablecoin metadata and converts between raw on-chain
// integers and human-scaled decimal amounts.
package token

import (
	"github.com/ethereum/go-ethereum/common"

	"github.com/chainsafe/bitsave-middleware/pkg/chain"
)

// NativeDecimals is the decimal count of every supported chain's native currency.
const NativeDecimals = 18

// UnknownSymbol marks a token that is not present in any chain's list.
const UnknownSymbol = "UNKNOWN"

// Info is the metadata callers need to display a token amount.
type Info struct {
	Symbol      string `json:"symbol"`
	Decimals    uint8  `json:"decimals"`
	DisplayName string `json:"display_name"`
	Image       string `json:"image,omitzero"`
	ChainID     int64  `json:"chain_id,omitzero"`
}

// Known reports whether the info came from the registry.
func (i Info) Known() bool {
	return i.Symbol != UnknownSymbol
}

// Unknown is the sentinel returned for unrecognised token addresses.
var Unknown = Info{Symbol: UnknownSymbol, Decimals: NativeDecimals, DisplayName: "Unknown Token"}

// Catalog resolves token addresses across all registered chains.
type Catalog struct {
	byAddress map[common.Address]Info
}

// NewCatalog indexes the stablecoins of every chain in the registry.
// When two chains share an address the first-registered chain wins.
func NewCatalog(registry *chain.Registry) *Catalog {
	c := &Catalog{byAddress: make(map[common.Address]Info)}
	for _, ch := range registry.ListChains() {
		for _, coin := range registry.TokensForID(ch.ID) {
			if _, seen := c.byAddress[*coin.Address]; seen {
				continue
			}
			c.byAddress[*coin.Address] = Info{
				Symbol:      coin.Symbol,
				Decimals:    coin.Decimals,
				DisplayName: coin.Name,
				Image:       coin.Image,
				ChainID:     coin.ChainID,
			}
		}
	}
	return c
}

// Resolve returns token metadata for address, or Unknown. It never fails.
func (c *Catalog) Resolve(address common.Address) Info {
	if info, ok := c.byAddress[address]; ok {
		return info
	}
	return Unknown
}

// ResolveHex is Resolve for a hex string; malformed input resolves to Unknown.
func (c *Catalog) ResolveHex(address string) Info {
	if !common.IsHexAddress(address) {
		return Unknown
	}
	return c.Resolve(common.HexToAddress(address))
}
