package kafka_test

import (
	"testing"

	"go-empdir/internal/messaging/kafka"

	"github.com/stretchr/testify/assert"
)

func TestValidateOutboxEvent(t *testing.T) {
	valid := &kafka.OutboxEvent{
		Topic:   "directory.employee.lifecycle.v1",
		Payload: []byte(`{"event_type":"employee_created"}`),
		Status:  kafka.OutboxStatusPending,
	}
	assert.NoError(t, kafka.ValidateOutboxEvent(valid))

	t.Run("missing topic", func(t *testing.T) {
		e := *valid
		e.Topic = ""
		assert.Error(t, kafka.ValidateOutboxEvent(&e))
	})

	t.Run("empty payload", func(t *testing.T) {
		e := *valid
		e.Payload = nil
		assert.Error(t, kafka.ValidateOutboxEvent(&e))
	})

	t.Run("bogus status", func(t *testing.T) {
		e := *valid
		e.Status = "queued"
		assert.Error(t, kafka.ValidateOutboxEvent(&e))
	})
}
