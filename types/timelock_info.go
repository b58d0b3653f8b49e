package types //nolint:revive,nolintlint // allow pkg name 'types'

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// Key identifies a registry slot. Single-slot opcodes always carry the zero target, so at most
// one announcement per opcode can be live; multi-target opcodes are keyed per target contract.
type Key struct {
	OpCode OpCode         `json:"opCode"`
	Target common.Address `json:"target"`
}

// NewKey returns the slot key for an opcode and the contract it targets.
func NewKey(op OpCode, target common.Address) Key {
	if !op.MultiTarget() {
		return Key{OpCode: op}
	}

	return Key{OpCode: op, Target: target}
}

func (k Key) String() string {
	if !k.OpCode.MultiTarget() {
		return k.OpCode.String()
	}

	return fmt.Sprintf("%s/%s", k.OpCode, k.Target.Hex())
}

// TimeLockInfo is the immutable record of an announcement. Records are never removed from the
// registry log; liveness is tracked separately by the slot indexes.
type TimeLockInfo struct {
	OpCode      OpCode           `json:"opCode"`
	OpHash      common.Hash      `json:"opHash"`
	Target      common.Address   `json:"target"`
	AdrValues   []common.Address `json:"adrValues"`
	NumValues   []*big.Int       `json:"numValues"`
	ScheduledAt uint64           `json:"scheduledAt"`
	ReadyAt     uint64           `json:"readyAt"`
}

// NewTimeLockInfo builds the registry record of a payload announced at scheduledAt.
func NewTimeLockInfo(p Payload, scheduledAt, readyAt uint64) (TimeLockInfo, error) {
	opHash, err := p.Hash()
	if err != nil {
		return TimeLockInfo{}, err
	}

	adr, num := p.Values()

	return TimeLockInfo{
		OpCode:      p.OpCode(),
		OpHash:      opHash,
		Target:      p.Target(),
		AdrValues:   adr,
		NumValues:   num,
		ScheduledAt: scheduledAt,
		ReadyAt:     readyAt,
	}, nil
}

// Key returns the slot the record was registered under.
func (i TimeLockInfo) Key() Key {
	return NewKey(i.OpCode, i.Target)
}

// Ready reports whether the record may be executed at the given unix time.
func (i TimeLockInfo) Ready(now uint64) bool {
	return now >= i.ReadyAt
}

// Clone returns a deep copy of the record.
func (i TimeLockInfo) Clone() TimeLockInfo {
	out := i
	out.AdrValues = append([]common.Address{}, i.AdrValues...)
	out.NumValues = make([]*big.Int, len(i.NumValues))
	for idx, v := range i.NumValues {
		out.NumValues[idx] = new(big.Int).Set(v)
	}

	return out
}

// Payload rebuilds the typed payload the record was announced with and checks it against the
// recorded opHash.
func (i TimeLockInfo) Payload() (Payload, error) {
	var (
		p   Payload
		err error
	)
	switch i.OpCode.Family() {
	case FamilyAddressChange:
		err = i.expectValues(1, 0)
		if err == nil {
			p = AddressChange{Op: i.OpCode, Controller: i.Target, NewAddress: i.AdrValues[0]}
		}
	case FamilyRatioChange:
		err = i.expectValues(0, 2)
		if err == nil {
			p = RatioChange{Op: i.OpCode, Controller: i.Target, Numerator: i.NumValues[0], Denominator: i.NumValues[1]}
		}
	case FamilyUintChange:
		err = i.expectValues(0, 1)
		if err == nil {
			p = UintChange{Op: i.OpCode, Value: i.NumValues[0]}
		}
	case FamilyTokenMove:
		err = i.expectValues(1, 1)
		if err == nil {
			p = TokenMove{Op: i.OpCode, To: i.Target, Token: i.AdrValues[0], Amount: i.NumValues[0]}
		}
	case FamilyMint:
		err = i.expectValues(2, 1)
		if err == nil {
			return i.mintPayload()
		}
	case FamilyProxyUpgrade:
		err = i.expectValues(1, 0)
		if err == nil {
			p = ProxyUpgrade{Proxy: i.Target, Implementation: i.AdrValues[0]}
		}
	case FamilyStrategyUpgrade:
		err = i.expectValues(1, 0)
		if err == nil {
			p = StrategyUpgrade{Vault: i.Target, Strategy: i.AdrValues[0]}
		}
	case FamilyVaultStop:
		err = i.expectValues(0, 0)
		if err == nil {
			p = VaultStop{Vault: i.Target}
		}
	default:
		err = fmt.Errorf("%w: opcode %s has no payload", ErrInvalidPayload, i.OpCode)
	}
	if err != nil {
		return nil, err
	}

	opHash, err := p.Hash()
	if err != nil {
		return nil, err
	}
	if opHash != i.OpHash {
		return nil, fmt.Errorf("%w: recorded hash %s does not match values of %s", ErrInvalidPayload, i.OpHash.Hex(), i.OpCode)
	}

	return p, nil
}

// mintPayload recovers the mintAllAvailable flag, which is only bound through the opHash.
func (i TimeLockInfo) mintPayload() (Payload, error) {
	for _, all := range []bool{false, true} {
		p := Mint{
			MintHelper:       i.Target,
			Amount:           i.NumValues[0],
			Distributor:      i.AdrValues[0],
			Fund:             i.AdrValues[1],
			MintAllAvailable: all,
		}
		opHash, err := p.Hash()
		if err != nil {
			return nil, err
		}
		if opHash == i.OpHash {
			return p, nil
		}
	}

	return nil, fmt.Errorf("%w: recorded hash %s does not match values of %s", ErrInvalidPayload, i.OpHash.Hex(), i.OpCode)
}

func (i TimeLockInfo) expectValues(adr, num int) error {
	if len(i.AdrValues) != adr || len(i.NumValues) != num {
		return fmt.Errorf("%w: %s expects %d addresses and %d numbers, got %d and %d",
			ErrInvalidPayload, i.OpCode, adr, num, len(i.AdrValues), len(i.NumValues))
	}

	return nil
}
