package amqp

import (
	"encoding/json"
	"time"
)

// Mutation operations carried on change events.
const (
	OpAdd    = "add"
	OpRemove = "remove"
	OpToggle = "toggle"
	OpSave   = "save"
	OpImport = "import"
)

// CollectionChangedMessage announces that a collection was rewritten.
// It carries only the collection key, the operation and the entity id
// (zero for whole-collection operations like note saves and backup
// imports); observers fetch whatever state they need from the store.
type CollectionChangedMessage struct {
	Collection string    `json:"collection"`
	Op         string    `json:"op"`
	ID         int64     `json:"id"`
	Timestamp  time.Time `json:"timestamp"`
}

func NewCollectionChangedMessage(collection, op string, id int64) *CollectionChangedMessage {
	return &CollectionChangedMessage{
		Collection: collection,
		Op:         op,
		ID:         id,
		Timestamp:  time.Now(),
	}
}

// ToJSON converts the message to JSON bytes.
func (m *CollectionChangedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// CollectionChangedMessageFromJSON creates a message from JSON bytes.
func CollectionChangedMessageFromJSON(data []byte) (*CollectionChangedMessage, error) {
	var msg CollectionChangedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
