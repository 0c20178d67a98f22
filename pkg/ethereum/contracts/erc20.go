package contracts

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// PackBalanceOf encodes balanceOf(account).
func PackBalanceOf(account common.Address) ([]byte, error) {
	return erc20ABI.Pack("balanceOf", account)
}

// UnpackUint256 decodes a single uint256 return value of an ERC20 view.
func UnpackUint256(method string, data []byte) (*big.Int, error) {
	v, err := unpackOne(erc20ABI, method, data)
	if err != nil {
		return nil, err
	}
	n, ok := v.(*big.Int)
	if !ok {
		return nil, fmt.Errorf("unpack %s: unexpected type %T", method, v)
	}
	return n, nil
}

// PackApprove encodes approve(spender, value).
func PackApprove(spender common.Address, value *big.Int) ([]byte, error) {
	return erc20ABI.Pack("approve", spender, value)
}
