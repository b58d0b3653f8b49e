// Package abi wraps the go-ethereum ABI packer with the abi.encode semantics used to derive
// announcement hashes.
package abi

import (
	"fmt"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

// Encode is the equivalent of Solidity's abi.encode over a list of elementary types, e.g.
// Encode([]string{"uint8", "address"}, uint8(0), addr).
//
// Every static value occupies one 32-byte word, so for the numeric and address arguments used by
// the announcer this is byte-for-byte the same as web3's encodePacked over uint256 values.
func Encode(typeNames []string, values ...any) ([]byte, error) {
	args, err := arguments(typeNames)
	if err != nil {
		return nil, err
	}

	if len(args) != len(values) {
		return nil, fmt.Errorf("argument count mismatch: %d types, %d values", len(args), len(values))
	}

	return args.Pack(values...)
}

func arguments(typeNames []string) (abi.Arguments, error) {
	args := make(abi.Arguments, 0, len(typeNames))
	for _, name := range typeNames {
		typ, err := abi.NewType(name, "", nil)
		if err != nil {
			return nil, fmt.Errorf("invalid abi type %q: %w", name, err)
		}

		args = append(args, abi.Argument{Type: typ})
	}

	return args, nil
}
