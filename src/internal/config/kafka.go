package config

import (
	kafkaPkgConfluent "trip-service/src/pkg/kafka/confluent"
	"trip-service/src/pkg/log"

	"github.com/spf13/viper"
)

func NewKafkaConfig(v *viper.Viper) kafkaPkgConfluent.KafkaConfig {
	return kafkaPkgConfluent.InitKafkaConfig(kafkaPkgConfluent.Cfg{
		KafkaUrl:      v.GetString("kafka.bootstrap.servers"),
		KafkaUsername: v.GetString("kafka.username"),
		KafkaPassword: v.GetString("kafka.password"),
		KafkaCaCert:   v.GetString("kafka.cacert"),
		AppName:       v.GetString("kafka.app.name"),
	})
}

// NewKafkaProducer returns nil when the push channel is disabled; callers
// treat a nil producer as "no push delivery".
func NewKafkaProducer(v *viper.Viper, logger log.Log) kafkaPkgConfluent.Producer {
	if !v.GetBool("kafka.producer.enabled") {
		logger.Info("kafka-config", "Kafka producer is disabled in configuration", "kafka", "")
		return nil
	}

	producer, err := kafkaPkgConfluent.NewProducer(kafkaPkgConfluent.GetConfig().GetKafkaConfig(), logger)
	if err != nil {
		panic(err)
	}

	return producer
}
