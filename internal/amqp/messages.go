package amqp

import (
	"encoding/json"
	"time"
)

// Op identifies a ledger mutation carried by a mirror event.
type Op string

const (
	OpAppend Op = "append"
	OpUpdate Op = "update"
	OpDelete Op = "delete"
)

// LedgerEvent mirrors one committed ledger mutation to a secondary store.
// The record travels in wire-format columns because the shared sheet has no
// ID column; Index is the position the mutation applied to at commit time.
type LedgerEvent struct {
	Op        Op        `json:"op"`
	Index     int       `json:"index"`
	Owner     string    `json:"owner,omitempty"`
	Date      string    `json:"date,omitempty"`
	Category  string    `json:"category,omitempty"`
	Amount    string    `json:"amount,omitempty"`
	Notes     string    `json:"notes,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

func (e *LedgerEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

func LedgerEventFromJSON(data []byte) (*LedgerEvent, error) {
	var ev LedgerEvent
	if err := json.Unmarshal(data, &ev); err != nil {
		return nil, err
	}
	return &ev, nil
}
