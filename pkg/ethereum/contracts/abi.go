// Package contracts holds the ABI surface of the savings contracts and the
// ERC20 subset used by the savings flows, with typed pack/unpack helpers.
package contracts

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
)

// VaultFactoryMetaData contains the ABI of the vault factory ("Bitsave") contract.
var VaultFactoryMetaData = &bind.MetaData{
	ABI: `[
{"type":"function","name":"getUserChildContract","stateMutability":"view","inputs":[{"name":"account","type":"address"}],"outputs":[{"name":"","type":"address"}]},
{"type":"function","name":"joinBitsave","stateMutability":"payable","inputs":[],"outputs":[{"name":"","type":"address"}]},
{"type":"function","name":"createSaving","stateMutability":"payable","inputs":[{"name":"nameOfSaving","type":"string"},{"name":"maturityTime","type":"uint256"},{"name":"penaltyPercentage","type":"uint256"},{"name":"safeMode","type":"bool"},{"name":"tokenToSave","type":"address"},{"name":"amount","type":"uint256"}],"outputs":[]},
{"type":"function","name":"incrementSaving","stateMutability":"payable","inputs":[{"name":"nameOfSavings","type":"string"},{"name":"tokenToRetrieve","type":"address"},{"name":"amount","type":"uint256"}],"outputs":[]},
{"type":"function","name":"withdrawSaving","stateMutability":"nonpayable","inputs":[{"name":"nameOfSavings","type":"string"}],"outputs":[{"name":"","type":"string"}]}
]`,
}

// VaultHolderMetaData contains the ABI of the per-user vault holder ("child") contract.
var VaultHolderMetaData = &bind.MetaData{
	ABI: `[
{"type":"function","name":"getSavingsNames","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"tuple","components":[{"name":"savingsNames","type":"string[]"}]}]},
{"type":"function","name":"getSaving","stateMutability":"view","inputs":[{"name":"nameOfSaving","type":"string"}],"outputs":[{"name":"","type":"tuple","components":[{"name":"isValid","type":"bool"},{"name":"amount","type":"uint256"},{"name":"tokenId","type":"address"},{"name":"interestAccumulated","type":"uint256"},{"name":"startTime","type":"uint256"},{"name":"penaltyPercentage","type":"uint256"},{"name":"maturityTime","type":"uint256"},{"name":"isSafeMode","type":"bool"}]}]}
]`,
}

// ERC20MetaData contains the ERC20 subset used by the savings flows.
var ERC20MetaData = &bind.MetaData{
	ABI: `[
{"type":"function","name":"balanceOf","stateMutability":"view","inputs":[{"name":"account","type":"address"}],"outputs":[{"name":"","type":"uint256"}]},
{"type":"function","name":"approve","stateMutability":"nonpayable","inputs":[{"name":"spender","type":"address"},{"name":"value","type":"uint256"}],"outputs":[{"name":"","type":"bool"}]}
]`,
}

var (
	factoryABI = mustABI(VaultFactoryMetaData)
	holderABI  = mustABI(VaultHolderMetaData)
	erc20ABI   = mustABI(ERC20MetaData)
)

func mustABI(md *bind.MetaData) *abi.ABI {
	parsed, err := md.GetAbi()
	if err != nil {
		panic(fmt.Sprintf("contracts: invalid embedded ABI: %v", err))
	}
	return parsed
}

// RawSaving mirrors the tuple returned by the holder's getSaving.
type RawSaving struct {
	IsValid             bool
	Amount              *big.Int
	TokenId             common.Address //nolint:revive // matches the ABI component name
	InterestAccumulated *big.Int
	StartTime           *big.Int
	PenaltyPercentage   *big.Int
	MaturityTime        *big.Int
	IsSafeMode          bool
}

// CreateSavingArgs are the arguments of the factory's createSaving.
type CreateSavingArgs struct {
	Name              string
	MaturityTime      *big.Int
	PenaltyPercentage uint8
	SafeMode          bool
	Token             common.Address
	Amount            *big.Int
}

func unpackOne(a *abi.ABI, method string, data []byte) (any, error) {
	out, err := a.Unpack(method, data)
	if err != nil {
		return nil, fmt.Errorf("unpack %s: %w", method, err)
	}
	if len(out) != 1 {
		return nil, fmt.Errorf("unpack %s: expected 1 value, got %d", method, len(out))
	}
	return out[0], nil
}
