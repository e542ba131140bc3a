package messaging

import (
	"encoding/json"
	"fmt"

	"trip-service/src/internal/model"
	kafka "trip-service/src/pkg/kafka/confluent"
	"trip-service/src/pkg/log"

	k "gopkg.in/confluentinc/confluent-kafka-go.v1/kafka"
)

// Producer serializes events onto one topic, keyed by event id so retries of
// the same notification land on the same partition.
type Producer[T model.Event] struct {
	Producer kafka.Producer
	Topic    string
	Log      log.Log
}

func (p *Producer[T]) Send(event T) error {
	if p.Producer == nil {
		p.Log.Info("gateway-messaging", "producer disabled, dropping event", "Send", p.Topic)
		return nil
	}

	value, err := json.Marshal(event)
	if err != nil {
		p.Log.Error("gateway-messaging", fmt.Sprintf("failed to marshal event %s: %v", event.GetId(), err), "Send", p.Topic)
		return err
	}

	err = p.Producer.Publish(&k.Message{
		TopicPartition: k.TopicPartition{Topic: &p.Topic, Partition: k.PartitionAny},
		Key:            []byte(event.GetId()),
		Value:          value,
	})
	if err != nil {
		p.Log.Error("gateway-messaging", fmt.Sprintf("failed to publish event %s: %v", event.GetId(), err), "Send", p.Topic)
		return err
	}

	return nil
}
