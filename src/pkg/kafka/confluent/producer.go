package kafka

import (
	"fmt"

	"trip-service/src/pkg/log"

	k "gopkg.in/confluentinc/confluent-kafka-go.v1/kafka"
)

type producer struct {
	kafkaProducer *k.Producer
	log           log.Log
}

func NewProducer(config *k.ConfigMap, logger log.Log) (Producer, error) {
	p, err := k.NewProducer(config)
	if err != nil {
		return nil, err
	}

	prod := &producer{
		kafkaProducer: p,
		log:           logger,
	}

	// drain delivery reports so the producer queue never blocks; failures are
	// logged only, the channel is fire-and-forget
	go func() {
		for e := range p.Events() {
			if m, ok := e.(*k.Message); ok && m.TopicPartition.Error != nil {
				logger.Error("kafka-producer",
					fmt.Sprintf("delivery failed: %v", m.TopicPartition.Error),
					"delivery-report", "")
			}
		}
	}()

	return prod, nil
}

func (p *producer) Publish(message *k.Message) error {
	return p.kafkaProducer.Produce(message, nil)
}

func (p *producer) Close() {
	p.kafkaProducer.Flush(5000)
	p.kafkaProducer.Close()
}
