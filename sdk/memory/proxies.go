package memory

import (
	"context"
	"sync"

	"github.com/ethereum/go-ethereum/common"

	"github.com/tetu-io/tetu-timelock/sdk"
	sdkerrors "github.com/tetu-io/tetu-timelock/sdk/errors"
)

var _ sdk.ProxyUpgrader = (*Proxies)(nil)

// Proxies maps controlled proxies to their implementation.
type Proxies struct {
	mu    sync.RWMutex
	impls map[common.Address]common.Address
}

func NewProxies() *Proxies {
	return &Proxies{impls: make(map[common.Address]common.Address)}
}

// Deploy registers a proxy pointing at implementation.
func (p *Proxies) Deploy(proxy, implementation common.Address) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.impls[proxy] = implementation
}

func (p *Proxies) Implementation(_ context.Context, proxy common.Address) (common.Address, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	impl, ok := p.impls[proxy]
	if !ok {
		return common.Address{}, sdkerrors.NewUnknownProxyError(proxy)
	}

	return impl, nil
}

func (p *Proxies) UpgradeProxy(_ context.Context, proxy, implementation common.Address) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, ok := p.impls[proxy]; !ok {
		return sdkerrors.NewUnknownProxyError(proxy)
	}
	p.impls[proxy] = implementation

	return nil
}
