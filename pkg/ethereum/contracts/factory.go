package contracts

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

// PackGetUserChildContract encodes getUserChildContract(account).
func PackGetUserChildContract(account common.Address) ([]byte, error) {
	return factoryABI.Pack("getUserChildContract", account)
}

// UnpackGetUserChildContract decodes the holder address; zero means no holder.
func UnpackGetUserChildContract(data []byte) (common.Address, error) {
	v, err := unpackOne(factoryABI, "getUserChildContract", data)
	if err != nil {
		return common.Address{}, err
	}
	addr, ok := v.(common.Address)
	if !ok {
		return common.Address{}, fmt.Errorf("unpack getUserChildContract: unexpected type %T", v)
	}
	return addr, nil
}

// PackJoinBitsave encodes joinBitsave().
func PackJoinBitsave() ([]byte, error) {
	return factoryABI.Pack("joinBitsave")
}

// PackCreateSaving encodes createSaving(...).
func PackCreateSaving(args CreateSavingArgs) ([]byte, error) {
	return factoryABI.Pack("createSaving",
		args.Name,
		args.MaturityTime,
		new(big.Int).SetUint64(uint64(args.PenaltyPercentage)),
		args.SafeMode,
		args.Token,
		args.Amount,
	)
}

// PackIncrementSaving encodes incrementSaving(name, token, amount).
func PackIncrementSaving(name string, token common.Address, amount *big.Int) ([]byte, error) {
	return factoryABI.Pack("incrementSaving", name, token, amount)
}

// PackWithdrawSaving encodes withdrawSaving(name).
func PackWithdrawSaving(name string) ([]byte, error) {
	return factoryABI.Pack("withdrawSaving", name)
}

// FactoryABI exposes the parsed factory ABI for revert decoding.
func FactoryABI() *abi.ABI {
	return factoryABI
}
