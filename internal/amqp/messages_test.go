package amqp

import (
	"testing"
	"time"
)

func TestCollectionChangedMessageJSON(t *testing.T) {
	msg := &CollectionChangedMessage{
		Collection: "finance",
		Op:         OpAdd,
		ID:         1709280000000,
		Timestamp:  time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
	}

	raw, err := msg.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON: %v", err)
	}

	got, err := CollectionChangedMessageFromJSON(raw)
	if err != nil {
		t.Fatalf("FromJSON: %v", err)
	}
	if got.Collection != msg.Collection || got.Op != msg.Op || got.ID != msg.ID {
		t.Errorf("round trip = %+v, want %+v", got, msg)
	}
	if !got.Timestamp.Equal(msg.Timestamp) {
		t.Errorf("timestamp = %v, want %v", got.Timestamp, msg.Timestamp)
	}
}

func TestCollectionChangedMessageFromJSONInvalid(t *testing.T) {
	if _, err := CollectionChangedMessageFromJSON([]byte("{broken")); err == nil {
		t.Error("invalid JSON should fail")
	}
}
