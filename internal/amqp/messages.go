package amqp

import (
	"encoding/json"
	"time"
)

// Operations carried by change events.
const (
	OpCreate     = "create"
	OpUpdate     = "update"
	OpDelete     = "delete"
	OpBulkDelete = "bulkDelete"
	OpBulkUpdate = "bulkUpdate"
)

// RecordChange is the lightweight event published after every mutation.
// Consumers fetch the current record from the store; the event carries only
// identity, never payload.
type RecordChange struct {
	Entity    string    `json:"entity"`
	IDs       []string  `json:"ids"`
	Op        string    `json:"op"`
	Timestamp time.Time `json:"timestamp"`
}

func NewRecordChange(entity, op string, ids ...string) *RecordChange {
	return &RecordChange{
		Entity:    entity,
		IDs:       ids,
		Op:        op,
		Timestamp: time.Now(),
	}
}

func (m *RecordChange) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func RecordChangeFromJSON(data []byte) (*RecordChange, error) {
	var msg RecordChange
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
