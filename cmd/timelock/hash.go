package timelock

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"

	"github.com/tetu-io/tetu-timelock/types"
)

var hashLong = `Prints the opHash an announcement of the given opcode and arguments is bound to.

Arguments per family:
  address-change    <newAddress>
  ratio-change      <numerator> <denominator>
  uint-change       <value>
  token-move        <target> <token> <amount>
  mint              <amount> <distributor> <fund> [mintAllAvailable]
  proxy-upgrade     <proxy> <implementation>
  strategy-upgrade  <vault> <strategy>
  vault-stop        <vault>`

func buildHashCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "hash <opcode> [args...]",
		Short:   "Compute the opHash of an announcement",
		Long:    hashLong,
		Example: "  timelock hash PsRatio 7 56\n  timelock hash 22 0x1111111111111111111111111111111111111111",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			op, err := types.ParseOpCode(args[0])
			if err != nil {
				return err
			}

			opHash, err := hashArgs(op, args[1:])
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), opHash.Hex())

			return nil
		},
	}

	return cmd
}

// hashArgs parses the positional arguments of op and returns their opHash.
func hashArgs(op types.OpCode, args []string) (common.Hash, error) {
	want := map[types.OpFamily]int{
		types.FamilyAddressChange:   1,
		types.FamilyRatioChange:     2,
		types.FamilyUintChange:      1,
		types.FamilyTokenMove:       3,
		types.FamilyMint:            3,
		types.FamilyProxyUpgrade:    2,
		types.FamilyStrategyUpgrade: 2,
		types.FamilyVaultStop:       1,
	}
	n, ok := want[op.Family()]
	if !ok {
		return common.Hash{}, fmt.Errorf("opcode %s cannot be announced", op)
	}
	if len(args) != n && !(op == types.OpMint && len(args) == n+1) {
		return common.Hash{}, fmt.Errorf("%s expects %d arguments, got %d", op.Family(), n, len(args))
	}

	p := argParser{args: args}
	switch op.Family() {
	case types.FamilyAddressChange:
		addr := p.address()
		if p.err != nil {
			return common.Hash{}, p.err
		}

		return types.HashAddressChange(op, addr)
	case types.FamilyRatioChange:
		num, den := p.number(), p.number()
		if p.err != nil {
			return common.Hash{}, p.err
		}

		return types.HashRatioChange(op, num, den)
	case types.FamilyUintChange:
		value := p.number()
		if p.err != nil {
			return common.Hash{}, p.err
		}

		return types.HashUintChange(op, value)
	case types.FamilyTokenMove:
		target, token, amount := p.address(), p.address(), p.number()
		if p.err != nil {
			return common.Hash{}, p.err
		}

		return types.HashTokenMove(op, target, token, amount)
	case types.FamilyMint:
		amount, distributor, fund := p.number(), p.address(), p.address()
		all := false
		if len(args) > n {
			all = p.flag()
		}
		if p.err != nil {
			return common.Hash{}, p.err
		}

		return types.HashMint(amount, distributor, fund, all)
	case types.FamilyProxyUpgrade:
		proxy, impl := p.address(), p.address()
		if p.err != nil {
			return common.Hash{}, p.err
		}

		return types.HashProxyUpgrade(proxy, impl)
	case types.FamilyStrategyUpgrade:
		vault, strategy := p.address(), p.address()
		if p.err != nil {
			return common.Hash{}, p.err
		}

		return types.HashStrategyUpgrade(vault, strategy)
	default:
		vault := p.address()
		if p.err != nil {
			return common.Hash{}, p.err
		}

		return types.HashVaultStop(vault)
	}
}

// argParser consumes positional arguments in order and keeps the first error.
type argParser struct {
	args []string
	pos  int
	err  error
}

func (p *argParser) next() string {
	s := p.args[p.pos]
	p.pos++

	return s
}

func (p *argParser) address() common.Address {
	s := p.next()
	if p.err != nil {
		return common.Address{}
	}
	addr, err := parseAddress(s)
	p.fail(err)

	return addr
}

func (p *argParser) number() *big.Int {
	s := p.next()
	if p.err != nil {
		return nil
	}
	n, err := parseBig(s)
	p.fail(err)

	return n
}

func (p *argParser) flag() bool {
	s := p.next()
	if p.err != nil {
		return false
	}
	b, err := cast.ToBoolE(strings.TrimSpace(s))
	if err != nil {
		p.fail(fmt.Errorf("invalid bool %q", s))
	}

	return b
}

func (p *argParser) fail(err error) {
	if p.err == nil && err != nil {
		p.err = fmt.Errorf("argument %d: %w", p.pos, err)
	}
}
