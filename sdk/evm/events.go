package evm

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	gethtypes "github.com/ethereum/go-ethereum/core/types"

	"github.com/tetu-io/tetu-timelock/internal/utils/safecast"
	"github.com/tetu-io/tetu-timelock/sdk"
	"github.com/tetu-io/tetu-timelock/types"
)

var _ sdk.EventSink = (*LogSink)(nil)

// PackEvent encodes an event as the topics and data of the matching Announcer log.
func PackEvent(event types.Event) ([]common.Hash, []byte, error) {
	ev, ok := announcerABI.Events[event.EventName()]
	if !ok {
		return nil, nil, fmt.Errorf("unknown event %s", event.EventName())
	}

	var (
		indexed    []any
		nonIndexed []any
	)
	switch e := event.(type) {
	case types.AnnouncementSubmitted:
		indexed = []any{uint8(e.OpCode), e.Target}
		nonIndexed = []any{[32]byte(e.OpHash), new(big.Int).SetUint64(e.ReadyAt)}
	case types.AnnouncementClosed:
		indexed = []any{uint8(e.OpCode)}
		nonIndexed = []any{[32]byte(e.OpHash)}
	case types.OperationExecuted:
		indexed = []any{uint8(e.OpCode), e.Target}
	default:
		return nil, nil, fmt.Errorf("unsupported event type %T", event)
	}

	query := make([][]any, len(indexed))
	for i, v := range indexed {
		query[i] = []any{v}
	}
	rules, err := abi.MakeTopics(query...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to make topics of %s: %w", ev.Name, err)
	}

	topics := []common.Hash{ev.ID}
	for _, rule := range rules {
		topics = append(topics, rule[0])
	}

	data, err := ev.Inputs.NonIndexed().Pack(nonIndexed...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to pack %s: %w", ev.Name, err)
	}

	return topics, data, nil
}

// UnpackLog decodes an Announcer log into its event.
func UnpackLog(log gethtypes.Log) (types.Event, error) {
	if len(log.Topics) == 0 {
		return nil, errors.New("log has no topics")
	}

	ev, err := announcerABI.EventByID(log.Topics[0])
	if err != nil {
		return nil, err
	}

	indexed := 0
	for _, input := range ev.Inputs {
		if input.Indexed {
			indexed++
		}
	}
	if len(log.Topics) != indexed+1 {
		return nil, fmt.Errorf("%s log has %d topics, want %d", ev.Name, len(log.Topics), indexed+1)
	}

	values, err := ev.Inputs.NonIndexed().Unpack(log.Data)
	if err != nil {
		return nil, fmt.Errorf("failed to unpack %s: %w", ev.Name, err)
	}

	op, err := topicOpCode(log.Topics[1])
	if err != nil {
		return nil, err
	}

	switch ev.Name {
	case "AnnouncementSubmitted":
		readyAt := values[1].(*big.Int)
		if !readyAt.IsUint64() {
			return nil, fmt.Errorf("readyAt %s out of range", readyAt)
		}

		return types.AnnouncementSubmitted{
			OpCode:  op,
			Target:  common.BytesToAddress(log.Topics[2].Bytes()),
			OpHash:  values[0].([32]byte),
			ReadyAt: readyAt.Uint64(),
		}, nil
	case "AnnouncementClosed":
		return types.AnnouncementClosed{OpCode: op, OpHash: values[0].([32]byte)}, nil
	default:
		return types.OperationExecuted{OpCode: op, Target: common.BytesToAddress(log.Topics[2].Bytes())}, nil
	}
}

func topicOpCode(topic common.Hash) (types.OpCode, error) {
	v, err := safecast.BigToUint64(topic.Big())
	if err != nil {
		return 0, fmt.Errorf("invalid opcode topic %s: %w", topic.Hex(), err)
	}
	n, err := safecast.Uint64ToUint8(v)
	if err != nil || !types.OpCode(n).Valid() {
		return 0, fmt.Errorf("invalid opcode topic %s", topic.Hex())
	}

	return types.OpCode(n), nil
}

// LogSink is an EventSink that records events as Announcer logs, the way an indexer would
// receive them from the chain.
type LogSink struct {
	address common.Address

	mu   sync.Mutex
	logs []gethtypes.Log
}

// NewLogSink creates a LogSink attributing logs to address.
func NewLogSink(address common.Address) *LogSink {
	return &LogSink{address: address}
}

func (s *LogSink) Emit(_ context.Context, event types.Event) error {
	topics, data, err := PackEvent(event)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.logs = append(s.logs, gethtypes.Log{
		Address: s.address,
		Topics:  topics,
		Data:    data,
		Index:   uint(len(s.logs)),
	})

	return nil
}

// Logs returns the recorded logs in emission order.
func (s *LogSink) Logs() []gethtypes.Log {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]gethtypes.Log{}, s.logs...)
}
