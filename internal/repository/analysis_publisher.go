package repository

import (
	"context"

	"ShapeMatch/internal/domain/models"
	pkgkafka "ShapeMatch/pkg/kafka"
)

// KafkaPublisher emits analysis completion events to a Kafka topic.
type KafkaPublisher struct {
	producer *pkgkafka.Producer
	topic    string
}

func NewKafkaPublisher(producer *pkgkafka.Producer, topic string) *KafkaPublisher {
	return &KafkaPublisher{producer: producer, topic: topic}
}

func (p *KafkaPublisher) PublishAnalysis(ctx context.Context, event *models.AnalysisEvent) error {
	key := event.MatchVariable + ":" + event.ReferenceDate
	return p.producer.Publish(ctx, p.topic, []byte(key), event)
}

func (p *KafkaPublisher) Close() error {
	return p.producer.Close()
}

// NopPublisher satisfies Publisher when event emission is disabled.
type NopPublisher struct{}

func (NopPublisher) PublishAnalysis(context.Context, *models.AnalysisEvent) error { return nil }
func (NopPublisher) Close() error                                                { return nil }
