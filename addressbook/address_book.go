// Package addressbook stores the deployed addresses of the core protocol contracts per network.
package addressbook

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"sort"
	"sync"

	"github.com/Masterminds/semver/v3"
	"github.com/ethereum/go-ethereum/common"
	"gopkg.in/yaml.v3"

	"github.com/tetu-io/tetu-timelock/sdk"
	sdkerrors "github.com/tetu-io/tetu-timelock/sdk/errors"
	"github.com/tetu-io/tetu-timelock/types"
)

var (
	ErrInvalidAddress = errors.New("invalid address")
	ErrChainNotFound  = errors.New("chain not found")
	ErrConflict       = errors.New("conflicting address")
)

// Entry is one deployed contract.
type Entry struct {
	Type    types.ContractType
	Address common.Address
	Version *semver.Version
}

func (e Entry) String() string {
	return fmt.Sprintf("%s %s at %s", e.Type, e.Version, e.Address.Hex())
}

// AddressBook maps chain selectors to the core contracts deployed on them. Each contract type
// has at most one address per chain.
type AddressBook struct {
	mu     sync.RWMutex
	chains map[types.ChainSelector]map[types.ContractType]Entry
}

// New returns an empty address book.
func New() *AddressBook {
	return &AddressBook{chains: make(map[types.ChainSelector]map[types.ContractType]Entry)}
}

// Save records a contract. Saving the same address again updates its version; saving a different
// address for a type already present on the chain fails.
func (b *AddressBook) Save(sel types.ChainSelector, entry Entry) error {
	if err := types.ValidateChainSelector(sel); err != nil {
		return err
	}
	if entry.Type == "" {
		return errors.New("type cannot be empty")
	}
	if entry.Address == (common.Address{}) {
		return fmt.Errorf("address of %s cannot be empty: %w", entry.Type, ErrInvalidAddress)
	}
	if entry.Version == nil {
		return fmt.Errorf("version of %s is required", entry.Type)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	chain, ok := b.chains[sel]
	if !ok {
		chain = make(map[types.ContractType]Entry)
		b.chains[sel] = chain
	}
	if existing, ok := chain[entry.Type]; ok && existing.Address != entry.Address {
		return fmt.Errorf("%w: %s is already %s on chain %d", ErrConflict, entry.Type, existing.Address.Hex(), sel)
	}
	chain[entry.Type] = entry

	return nil
}

// Get returns the entry of a contract type on a chain.
func (b *AddressBook) Get(sel types.ChainSelector, ct types.ContractType) (Entry, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	chain, ok := b.chains[sel]
	if !ok {
		return Entry{}, fmt.Errorf("%w: %d", ErrChainNotFound, sel)
	}
	entry, ok := chain[ct]
	if !ok {
		return Entry{}, sdkerrors.NewUnknownContractError(ct)
	}

	return entry, nil
}

// Require returns the entry of a contract type whose version satisfies constraint, e.g. "^1.0".
func (b *AddressBook) Require(sel types.ChainSelector, ct types.ContractType, constraint string) (Entry, error) {
	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return Entry{}, fmt.Errorf("invalid version constraint %q: %w", constraint, err)
	}

	entry, err := b.Get(sel, ct)
	if err != nil {
		return Entry{}, err
	}
	if !c.Check(entry.Version) {
		return Entry{}, fmt.Errorf("%s version %s does not satisfy %s", ct, entry.Version, constraint)
	}

	return entry, nil
}

// Chains returns the chain selectors in ascending order.
func (b *AddressBook) Chains() []types.ChainSelector {
	b.mu.RLock()
	defer b.mu.RUnlock()

	sels := make([]types.ChainSelector, 0, len(b.chains))
	for sel := range b.chains {
		sels = append(sels, sel)
	}
	slices.Sort(sels)

	return sels
}

// Entries returns the contracts of a chain sorted by type.
func (b *AddressBook) Entries(sel types.ChainSelector) []Entry {
	b.mu.RLock()
	defer b.mu.RUnlock()

	entries := make([]Entry, 0, len(b.chains[sel]))
	for _, e := range b.chains[sel] {
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Type < entries[j].Type })

	return entries
}

// Resolver returns an AddressResolver answering from the contracts of one chain.
func (b *AddressBook) Resolver(sel types.ChainSelector) sdk.AddressResolver {
	return chainResolver{book: b, sel: sel}
}

type chainResolver struct {
	book *AddressBook
	sel  types.ChainSelector
}

func (r chainResolver) Address(_ context.Context, ct types.ContractType) (common.Address, error) {
	entry, err := r.book.Get(r.sel, ct)
	if err != nil {
		return common.Address{}, err
	}

	return entry.Address, nil
}

type fileEntry struct {
	Type    string `yaml:"type"`
	Address string `yaml:"address"`
	Version string `yaml:"version"`
}

type fileFormat struct {
	Chains map[uint64][]fileEntry `yaml:"chains"`
}

// Load reads an address book in YAML form:
//
//	chains:
//	  4051577828743386545:
//	    - type: Announcer
//	      address: "0x..."
//	      version: 1.0.0
func Load(r io.Reader) (*AddressBook, error) {
	var f fileFormat
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to decode address book: %w", err)
	}

	book := New()
	for sel, entries := range f.Chains {
		for _, fe := range entries {
			if !common.IsHexAddress(fe.Address) {
				return nil, fmt.Errorf("%s on chain %d: %q: %w", fe.Type, sel, fe.Address, ErrInvalidAddress)
			}
			v, err := semver.NewVersion(fe.Version)
			if err != nil {
				return nil, fmt.Errorf("%s on chain %d: invalid version %q: %w", fe.Type, sel, fe.Version, err)
			}
			entry := Entry{Type: types.ContractType(fe.Type), Address: common.HexToAddress(fe.Address), Version: v}
			if err := book.Save(types.ChainSelector(sel), entry); err != nil {
				return nil, err
			}
		}
	}

	return book, nil
}

// LoadFile reads an address book from path.
func LoadFile(path string) (*AddressBook, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open address book: %w", err)
	}
	defer f.Close()

	return Load(f)
}

// MarshalYAML renders the book in the form read by Load, with addresses in EIP-55 form.
func (b *AddressBook) MarshalYAML() (any, error) {
	f := fileFormat{Chains: make(map[uint64][]fileEntry)}
	for _, sel := range b.Chains() {
		for _, e := range b.Entries(sel) {
			f.Chains[uint64(sel)] = append(f.Chains[uint64(sel)], fileEntry{
				Type:    e.Type.String(),
				Address: e.Address.Hex(),
				Version: e.Version.String(),
			})
		}
	}

	return f, nil
}
