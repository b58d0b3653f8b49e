package timelock

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/tetu-io/tetu-timelock/types"
)

// ErrZeroPlaceholder is returned when the reserved placeholder opcode is announced.
var ErrZeroPlaceholder = errors.New("opcode ZeroPlaceholder cannot be announced")

// UnauthorizedError is returned when the caller does not hold the governance role.
type UnauthorizedError struct {
	Caller common.Address
}

func (e *UnauthorizedError) Error() string {
	return fmt.Sprintf("unauthorized: %s is not governance", e.Caller.Hex())
}

func NewUnauthorizedError(caller common.Address) *UnauthorizedError {
	return &UnauthorizedError{Caller: caller}
}

// InvalidPayloadError is returned when announce or execute arguments are malformed.
type InvalidPayloadError struct {
	OpCode types.OpCode
	Err    error
}

func (e *InvalidPayloadError) Error() string {
	return fmt.Sprintf("%s: %v", e.OpCode, e.Err)
}

func (e *InvalidPayloadError) Unwrap() error {
	return e.Err
}

// NewInvalidPayloadError wraps a payload validation failure. Plain reasons are wrapped with
// types.ErrInvalidPayload so callers can match either the struct or the sentinel.
func NewInvalidPayloadError(op types.OpCode, err error) *InvalidPayloadError {
	if !errors.Is(err, types.ErrInvalidPayload) {
		err = fmt.Errorf("%w: %w", types.ErrInvalidPayload, err)
	}

	return &InvalidPayloadError{OpCode: op, Err: err}
}

// DuplicatePendingError is returned when a live announcement already occupies the key.
type DuplicatePendingError struct {
	Key   types.Key
	Index uint64
}

func (e *DuplicatePendingError) Error() string {
	return fmt.Sprintf("announcement for %s already pending at index %d", e.Key, e.Index)
}

func NewDuplicatePendingError(key types.Key, index uint64) *DuplicatePendingError {
	return &DuplicatePendingError{Key: key, Index: index}
}

// NotFoundError is returned when a registry index, or a live announcement matching a key and
// opHash, does not exist.
type NotFoundError struct {
	Index  uint64
	Key    *types.Key
	OpHash common.Hash

	// Requested is set when the index does not fit a registry index.
	Requested *big.Int
}

func (e *NotFoundError) Error() string {
	if e.Key != nil {
		return fmt.Sprintf("announcement %s not found for %s", e.OpHash.Hex(), e.Key)
	}
	if e.Requested != nil {
		return fmt.Sprintf("timelock info %s not found", e.Requested)
	}

	return fmt.Sprintf("timelock info %d not found", e.Index)
}

func NewIndexNotFoundError(index uint64) *NotFoundError {
	return &NotFoundError{Index: index}
}

// NewIndexOutOfRangeError reports a requested index that is nil, negative or wider than 64 bits.
func NewIndexOutOfRangeError(index *big.Int) *NotFoundError {
	if index == nil {
		return &NotFoundError{Requested: new(big.Int)}
	}

	return &NotFoundError{Requested: new(big.Int).Set(index)}
}

func NewAnnouncementNotFoundError(key types.Key, opHash common.Hash) *NotFoundError {
	return &NotFoundError{Key: &key, OpHash: opHash}
}

// NoSuchAnnouncementError is returned on execute when nothing is pending for the key.
type NoSuchAnnouncementError struct {
	Key    types.Key
	OpHash common.Hash
}

func (e *NoSuchAnnouncementError) Error() string {
	if e.OpHash != (common.Hash{}) {
		return "no announcement scheduled for hash " + e.OpHash.Hex()
	}

	return "no announcement pending for " + e.Key.String()
}

func NewNoSuchAnnouncementError(key types.Key) *NoSuchAnnouncementError {
	return &NoSuchAnnouncementError{Key: key}
}

func NewNoSuchScheduleError(opHash common.Hash) *NoSuchAnnouncementError {
	return &NoSuchAnnouncementError{OpHash: opHash}
}

// TimeLockNotReadyError is returned on execute before the announcement's ready time.
type TimeLockNotReadyError struct {
	Key     types.Key
	OpHash  common.Hash
	Now     uint64
	ReadyAt uint64
}

func (e *TimeLockNotReadyError) Error() string {
	subject := e.Key.String()
	if e.OpHash != (common.Hash{}) {
		subject = e.OpHash.Hex()
	}

	return fmt.Sprintf("timelock for %s not ready: now %d, ready at %d", subject, e.Now, e.ReadyAt)
}

func NewTimeLockNotReadyError(key types.Key, now, readyAt uint64) *TimeLockNotReadyError {
	return &TimeLockNotReadyError{Key: key, Now: now, ReadyAt: readyAt}
}

func NewScheduleNotReadyError(opHash common.Hash, now, readyAt uint64) *TimeLockNotReadyError {
	return &TimeLockNotReadyError{OpHash: opHash, Now: now, ReadyAt: readyAt}
}

// PayloadMismatchError is returned on execute when the supplied arguments hash differently
// from the announced payload.
type PayloadMismatchError struct {
	Key       types.Key
	Announced common.Hash
	Supplied  common.Hash
}

func (e *PayloadMismatchError) Error() string {
	return fmt.Sprintf("payload mismatch for %s: announced %s, supplied %s",
		e.Key, e.Announced.Hex(), e.Supplied.Hex())
}

func NewPayloadMismatchError(key types.Key, announced, supplied common.Hash) *PayloadMismatchError {
	return &PayloadMismatchError{Key: key, Announced: announced, Supplied: supplied}
}
