package kafka

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/segmentio/kafka-go"

	"smartfare/internal/models"
)

type Producer struct {
	Writer *kafka.Writer
}

func NewProducer(brokers []string) *Producer {
	writer := &kafka.Writer{
		Addr:     kafka.TCP(brokers...),
		Balancer: &kafka.LeastBytes{},
	}
	return &Producer{Writer: writer}
}

func (p *Producer) Publish(topic, key string, value []byte) error {
	return p.Writer.WriteMessages(context.Background(),
		kafka.Message{
			Topic: topic,
			Key:   []byte(key),
			Value: value,
		},
	)
}

// PublishBookingCreated streams a new reservation to downstream consumers,
// keyed by booking reference.
func (p *Producer) PublishBookingCreated(booking models.Booking) error {
	msgBytes, err := json.Marshal(booking)
	if err != nil {
		return err
	}

	fmt.Printf("Publishing to Kafka [%s]: %s\n", TopicBookingCreated, booking.BookingReference)

	return p.Publish(TopicBookingCreated, booking.BookingReference, msgBytes)
}

// PublishPaymentCompleted streams a payment-status update.
func (p *Producer) PublishPaymentCompleted(booking models.Booking) error {
	msgBytes, err := json.Marshal(booking)
	if err != nil {
		return err
	}

	fmt.Printf("Publishing to Kafka [%s]: %s\n", TopicPaymentCompleted, booking.BookingReference)

	return p.Publish(TopicPaymentCompleted, booking.BookingReference, msgBytes)
}

func (p *Producer) Close() error {
	return p.Writer.Close()
}
