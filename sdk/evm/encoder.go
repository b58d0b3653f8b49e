package evm

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"

	"github.com/tetu-io/tetu-timelock/types"
)

// Call is the calldata executing one or more announcements.
type Call struct {
	// To is the contract that must receive the call.
	To     types.ContractType `json:"to"`
	Method string             `json:"method"`
	Data   []byte             `json:"data"`
}

// EncodeExecute builds the execute call of announced records. Multi-target opcodes accept
// several records of the same opcode and are executed as one batch; every other opcode takes
// exactly one record.
func EncodeExecute(infos ...types.TimeLockInfo) (Call, error) {
	if len(infos) == 0 {
		return Call{}, errors.New("no announcements to execute")
	}

	op := infos[0].OpCode
	payloads := make([]types.Payload, len(infos))
	for i, info := range infos {
		if info.OpCode != op {
			return Call{}, fmt.Errorf("mixed opcodes in batch: %s and %s", op, info.OpCode)
		}
		p, err := info.Payload()
		if err != nil {
			return Call{}, err
		}
		payloads[i] = p
	}
	if !op.MultiTarget() && len(payloads) > 1 {
		return Call{}, fmt.Errorf("%s cannot be batched", op)
	}

	switch p := payloads[0].(type) {
	case types.AddressChange:
		return pack(types.ContractController, controllerABI, "set"+op.String(), p.NewAddress)
	case types.RatioChange:
		method := "setPSNumeratorDenominator"
		if op == types.OpFundRatio {
			method = "setFundNumeratorDenominator"
		}

		return pack(types.ContractController, controllerABI, method, p.Numerator, p.Denominator)
	case types.TokenMove:
		return pack(types.ContractController, controllerABI, tokenMoveMethods[op], p.To, p.Token, p.Amount)
	case types.Mint:
		return pack(types.ContractController, controllerABI, "mintAndDistribute", p.Amount, p.MintAllAvailable)
	case types.UintChange:
		if op == types.OpTimeLock {
			return Call{}, fmt.Errorf("%s is applied by the announcer and has no execute call", op)
		}

		return pack(types.ContractVaultController, vaultControllerABI, "set"+op.String(), p.Value)
	case types.ProxyUpgrade:
		targets, values := batchArgs(payloads)
		return pack(types.ContractController, controllerABI, "upgradeTetuProxyBatch", targets, values)
	case types.StrategyUpgrade:
		targets, values := batchArgs(payloads)
		return pack(types.ContractController, controllerABI, "setVaultStrategyBatch", targets, values)
	case types.VaultStop:
		targets, _ := batchArgs(payloads)
		return pack(types.ContractVaultController, vaultControllerABI, "stopVaultsBatch", targets)
	default:
		return Call{}, fmt.Errorf("unsupported payload %T", p)
	}
}

var tokenMoveMethods = map[types.OpCode]string{
	types.OpControllerTokenMove: "controllerTokenMove",
	types.OpStrategyTokenMove:   "strategyTokenMove",
	types.OpFundTokenMove:       "fundKeeperTokenMove",
}

// batchArgs splits per-target payloads into the target list and the first address argument of
// each payload.
func batchArgs(payloads []types.Payload) ([]common.Address, []common.Address) {
	targets := make([]common.Address, 0, len(payloads))
	values := make([]common.Address, 0, len(payloads))
	for _, p := range payloads {
		targets = append(targets, p.Target())
		if adr, _ := p.Values(); len(adr) > 0 {
			values = append(values, adr[0])
		}
	}

	return targets, values
}

func pack(to types.ContractType, contractABI abi.ABI, method string, args ...any) (Call, error) {
	data, err := contractABI.Pack(method, args...)
	if err != nil {
		return Call{}, fmt.Errorf("failed to pack %s: %w", method, err)
	}

	return Call{To: to, Method: method, Data: data}, nil
}
