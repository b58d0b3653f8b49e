package timelock

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/big"
	"os"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/spf13/viper"

	"github.com/tetu-io/tetu-timelock/addressbook"
	"github.com/tetu-io/tetu-timelock/internal/utils/safecast"
	"github.com/tetu-io/tetu-timelock/sdk/evm"
	"github.com/tetu-io/tetu-timelock/types"
)

// network is a connection to the announcer of one chain.
type network struct {
	selector  types.ChainSelector
	book      *addressbook.AddressBook
	client    *ethclient.Client
	inspector *evm.Inspector
}

func (n *network) Close() {
	n.client.Close()
}

func connect(ctx context.Context, v *viper.Viper) (*network, error) {
	sel := types.ChainSelector(v.GetUint64("selector"))
	if err := types.ValidateChainSelector(sel); err != nil {
		return nil, err
	}

	book, err := addressbook.LoadFile(v.GetString("address-book"))
	if err != nil {
		return nil, err
	}
	entry, err := book.Require(sel, types.ContractAnnouncer, v.GetString("version"))
	if err != nil {
		return nil, err
	}

	client, err := dialRPC(ctx, sel)
	if err != nil {
		return nil, err
	}

	return &network{
		selector:  sel,
		book:      book,
		client:    client,
		inspector: evm.NewInspector(entry.Address, client),
	}, nil
}

func dialRPC(ctx context.Context, sel types.ChainSelector) (*ethclient.Client, error) {
	rpcKey := fmt.Sprintf("RPC_URL_%d", sel)
	rpcURL := os.Getenv(rpcKey)
	if rpcURL == "" {
		return nil, errors.New(rpcKey + " not found in environment or .env file")
	}

	client, err := ethclient.DialContext(ctx, rpcURL)
	if err != nil {
		return nil, fmt.Errorf("failed to dial %s: %w", rpcKey, err)
	}

	return client, nil
}

func parseAddress(s string) (common.Address, error) {
	if !common.IsHexAddress(s) {
		return common.Address{}, fmt.Errorf("invalid address %q", s)
	}

	return common.HexToAddress(s), nil
}

// parseBig accepts decimal or 0x-prefixed hex integers.
func parseBig(s string) (*big.Int, error) {
	n, ok := new(big.Int).SetString(s, 0)
	if !ok || n.Sign() < 0 {
		return nil, fmt.Errorf("invalid unsigned integer %q", s)
	}

	return n, nil
}

func printInfo(w io.Writer, index *big.Int, info types.TimeLockInfo, now time.Time) {
	fmt.Fprintf(w, "index:     %s\n", index)
	fmt.Fprintf(w, "opCode:    %s (%d)\n", info.OpCode, uint8(info.OpCode))
	fmt.Fprintf(w, "opHash:    %s\n", info.OpHash.Hex())
	fmt.Fprintf(w, "target:    %s\n", info.Target.Hex())
	for _, a := range info.AdrValues {
		fmt.Fprintf(w, "adrValue:  %s\n", a.Hex())
	}
	for _, n := range info.NumValues {
		fmt.Fprintf(w, "numValue:  %s\n", n)
	}

	readyAt, err := safecast.Uint64ToInt64(info.ReadyAt)
	switch {
	case err != nil:
		fmt.Fprintf(w, "status:    %s\n", err)
	case readyAt == 0:
		fmt.Fprintln(w, "status:    closed")
	case now.Unix() >= readyAt:
		fmt.Fprintf(w, "status:    ready since %s\n", time.Unix(readyAt, 0).UTC().Format(time.RFC3339))
	default:
		at := time.Unix(readyAt, 0)
		fmt.Fprintf(w, "status:    ready at %s (in %s)\n", at.UTC().Format(time.RFC3339), at.Sub(now).Truncate(time.Second))
	}

	if p, err := info.Payload(); err == nil {
		fmt.Fprintf(w, "payload:   %+v\n", p)
	} else {
		fmt.Fprintf(w, "payload:   %s\n", err)
	}
}
