package types //nolint:revive,nolintlint // allow pkg name 'types'

import (
	"github.com/ethereum/go-ethereum/common"
)

// Event is emitted to external observers on every state transition. Field order of each event is
// part of the indexer compatibility surface.
type Event interface {
	EventName() string
}

// AnnouncementSubmitted is emitted when an announcement is registered.
type AnnouncementSubmitted struct {
	OpCode  OpCode         `json:"opCode"`
	Target  common.Address `json:"target"`
	OpHash  common.Hash    `json:"opHash"`
	ReadyAt uint64         `json:"readyAt"`
}

func (AnnouncementSubmitted) EventName() string { return "AnnouncementSubmitted" }

// AnnouncementClosed is emitted when an announcement is cancelled without execution.
type AnnouncementClosed struct {
	OpCode OpCode      `json:"opCode"`
	OpHash common.Hash `json:"opHash"`
}

func (AnnouncementClosed) EventName() string { return "AnnouncementClosed" }

// OperationExecuted is emitted after the controller applied an announced operation.
type OperationExecuted struct {
	OpCode OpCode         `json:"opCode"`
	Target common.Address `json:"target"`
}

func (OperationExecuted) EventName() string { return "OperationExecuted" }
