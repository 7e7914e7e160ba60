package amqp

import (
	"encoding/json"
	"time"
)

// ImportEventMessage announces one completed CSV import batch. It carries
// only the transaction ids; the export worker fetches full records from
// storage.
type ImportEventMessage struct {
	UserID         string    `json:"user_id"`
	TransactionIDs []string  `json:"transaction_ids"`
	Timestamp      time.Time `json:"timestamp"`
}

func NewImportEventMessage(userID string, transactionIDs []string) *ImportEventMessage {
	return &ImportEventMessage{
		UserID:         userID,
		TransactionIDs: transactionIDs,
		Timestamp:      time.Now(),
	}
}

func (m *ImportEventMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func ImportEventMessageFromJSON(data []byte) (*ImportEventMessage, error) {
	var msg ImportEventMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
