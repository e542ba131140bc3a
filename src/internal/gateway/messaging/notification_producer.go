package messaging

import (
	"trip-service/src/internal/model"
	kafka "trip-service/src/pkg/kafka/confluent"
	"trip-service/src/pkg/log"
)

// NotificationProducer publishes final push payloads to the notification
// channel. Delivery is fire-and-forget; broker-side failures surface only in
// the producer's delivery-report log.
type NotificationProducer struct {
	PushProducer Producer[*model.NotificationEvent]
}

func NewNotificationProducer(producer kafka.Producer, log log.Log) *NotificationProducer {
	return &NotificationProducer{
		PushProducer: Producer[*model.NotificationEvent]{
			Producer: producer,
			Topic:    "push-notifications",
			Log:      log,
		},
	}
}

func (p *NotificationProducer) SendPush(event *model.NotificationEvent) error {
	return p.PushProducer.Send(event)
}
