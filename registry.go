package timelock

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"github.com/tetu-io/tetu-timelock/types"
)

var errReadOnlyTx = errors.New("registry write in read-only transaction")

// Registry is the keyed store of announcements. It keeps an append-only log of TimeLockInfo
// records, whose index 0 is an empty placeholder, plus the slot and schedule indexes that
// track which records are still live.
//
// The registry trusts its callers; access control belongs to the Announcer and Controller.
// All access goes through View and Update, which serialize every ledger transition.
type Registry struct {
	mu       sync.Mutex
	duration time.Duration
	infos    []types.TimeLockInfo
	indexes  map[types.Key]uint64
	schedule map[common.Hash]uint64
}

// NewRegistry creates an empty registry. Only WithDuration is read from opts.
func NewRegistry(opts ...Option) *Registry {
	o := newOptions(opts)

	return &Registry{
		duration: o.duration,
		infos:    []types.TimeLockInfo{{}},
		indexes:  make(map[types.Key]uint64),
		schedule: make(map[common.Hash]uint64),
	}
}

// View runs fn with a read-only transaction.
func (r *Registry) View(fn func(tx *Tx) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	return fn(&Tx{r: r, readOnly: true})
}

// Update runs fn with a read-write transaction. The registry lock is held for the whole call,
// and every write made through tx is rolled back if fn returns an error.
func (r *Registry) Update(fn func(tx *Tx) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tx := &Tx{r: r}
	if err := fn(tx); err != nil {
		tx.rollback()
		return err
	}

	return nil
}

// Tx is a registry transaction. It must not be used after the View or Update callback returns.
type Tx struct {
	r        *Registry
	readOnly bool
	undo     []func()
}

func (tx *Tx) rollback() {
	for i := len(tx.undo) - 1; i >= 0; i-- {
		tx.undo[i]()
	}
	tx.undo = nil
}

func (tx *Tx) writable() error {
	if tx.readOnly {
		return errReadOnlyTx
	}

	return nil
}

// Register appends info to the log and marks its key live. It returns the new index.
func (tx *Tx) Register(info types.TimeLockInfo) (uint64, error) {
	if err := tx.writable(); err != nil {
		return 0, err
	}

	r := tx.r
	key := info.Key()
	if idx := r.indexes[key]; idx != 0 {
		return 0, NewDuplicatePendingError(key, idx)
	}

	idx := uint64(len(r.infos))
	r.infos = append(r.infos, info.Clone())
	r.indexes[key] = idx
	r.schedule[info.OpHash] = info.ReadyAt

	tx.undo = append(tx.undo, func() {
		r.infos = r.infos[:idx]
		delete(r.indexes, key)
		delete(r.schedule, info.OpHash)
	})

	return idx, nil
}

// Get returns the record at index. Index 0 is the placeholder and is never returned.
func (tx *Tx) Get(index uint64) (types.TimeLockInfo, error) {
	if index == 0 || index >= uint64(len(tx.r.infos)) {
		return types.TimeLockInfo{}, NewIndexNotFoundError(index)
	}

	return tx.r.infos[index].Clone(), nil
}

// Index returns the live index for key, or 0 when the slot is empty.
func (tx *Tx) Index(key types.Key) uint64 {
	return tx.r.indexes[key]
}

// Live returns the live record for key.
func (tx *Tx) Live(key types.Key) (types.TimeLockInfo, bool) {
	idx := tx.r.indexes[key]
	if idx == 0 {
		return types.TimeLockInfo{}, false
	}

	return tx.r.infos[idx].Clone(), true
}

// ScheduleOf returns the ready time of a live announcement, or 0 when opHash is not scheduled.
func (tx *Tx) ScheduleOf(opHash common.Hash) uint64 {
	return tx.r.schedule[opHash]
}

// Clear removes liveness for key. The record stays in the log.
func (tx *Tx) Clear(key types.Key) error {
	if err := tx.writable(); err != nil {
		return err
	}

	r := tx.r
	idx := r.indexes[key]
	if idx == 0 {
		return NewNoSuchAnnouncementError(key)
	}

	opHash := r.infos[idx].OpHash
	readyAt := r.schedule[opHash]
	delete(r.indexes, key)
	delete(r.schedule, opHash)

	tx.undo = append(tx.undo, func() {
		r.indexes[key] = idx
		r.schedule[opHash] = readyAt
	})

	return nil
}

// Len returns the log length, including the placeholder at index 0.
func (tx *Tx) Len() uint64 {
	return uint64(len(tx.r.infos))
}

// Duration returns the delay applied to new announcements.
func (tx *Tx) Duration() time.Duration {
	return tx.r.duration
}

// SetDuration replaces the delay applied to new announcements. Live announcements keep their
// ready time.
func (tx *Tx) SetDuration(d time.Duration) error {
	if err := tx.writable(); err != nil {
		return err
	}
	if d < 0 {
		return fmt.Errorf("negative timelock duration %s", d)
	}

	r := tx.r
	prev := r.duration
	r.duration = d
	tx.undo = append(tx.undo, func() {
		r.duration = prev
	})

	return nil
}

type registrySnapshot struct {
	Duration types.Duration       `json:"duration"`
	Infos    []types.TimeLockInfo `json:"infos"`
	Live     []uint64             `json:"live"`
}

// Snapshot serializes the registry to JSON.
func (r *Registry) Snapshot() ([]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	snap := registrySnapshot{
		Duration: types.NewDuration(r.duration),
		Infos:    r.infos[1:],
		Live:     make([]uint64, 0, len(r.indexes)),
	}
	for i := 1; i < len(r.infos); i++ {
		if r.indexes[r.infos[i].Key()] == uint64(i) {
			snap.Live = append(snap.Live, uint64(i))
		}
	}

	return json.Marshal(snap)
}

// RestoreRegistry rebuilds a registry from a Snapshot.
func RestoreRegistry(data []byte) (*Registry, error) {
	var snap registrySnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("failed to unmarshal registry snapshot: %w", err)
	}

	r := NewRegistry(WithDuration(snap.Duration.Duration))
	r.infos = append(r.infos, snap.Infos...)
	for _, idx := range snap.Live {
		if idx == 0 || idx >= uint64(len(r.infos)) {
			return nil, fmt.Errorf("live index %d out of range", idx)
		}
		info := r.infos[idx]
		key := info.Key()
		if prev, ok := r.indexes[key]; ok {
			return nil, NewDuplicatePendingError(key, prev)
		}
		r.indexes[key] = idx
		r.schedule[info.OpHash] = info.ReadyAt
	}

	return r, nil
}
