package contracts

import (
	"fmt"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

// PackGetSavingsNames encodes getSavingsNames().
func PackGetSavingsNames() ([]byte, error) {
	return holderABI.Pack("getSavingsNames")
}

// UnpackGetSavingsNames decodes the holder's saving names in contract order.
func UnpackGetSavingsNames(data []byte) ([]string, error) {
	v, err := unpackOne(holderABI, "getSavingsNames", data)
	if err != nil {
		return nil, err
	}
	out, ok := abi.ConvertType(v, new(struct{ SavingsNames []string })).(*struct{ SavingsNames []string })
	if !ok {
		return nil, fmt.Errorf("unpack getSavingsNames: unexpected type %T", v)
	}
	return out.SavingsNames, nil
}

// PackGetSaving encodes getSaving(name).
func PackGetSaving(name string) ([]byte, error) {
	return holderABI.Pack("getSaving", name)
}

// UnpackGetSaving decodes one saving record.
func UnpackGetSaving(data []byte) (*RawSaving, error) {
	v, err := unpackOne(holderABI, "getSaving", data)
	if err != nil {
		return nil, err
	}
	out, ok := abi.ConvertType(v, new(RawSaving)).(*RawSaving)
	if !ok {
		return nil, fmt.Errorf("unpack getSaving: unexpected type %T", v)
	}
	return out, nil
}
