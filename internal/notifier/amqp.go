package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// QueueNotifier hands notifications to an external dispatcher through a
// durable RabbitMQ queue. The core only writes; it never reads a result back.
type QueueNotifier struct {
	url   string
	queue string
	log   *zap.Logger
}

type queueMessage struct {
	Kind     Kind      `json:"kind"`
	Snapshot Snapshot  `json:"snapshot"`
	SentAt   time.Time `json:"sent_at"`
}

func NewQueueNotifier(url, queue string, log *zap.Logger) *QueueNotifier {
	return &QueueNotifier{
		url:   url,
		queue: queue,
		log:   log.With(zap.String("notifier", "amqp")),
	}
}

func (n *QueueNotifier) Notify(ctx context.Context, kind Kind, snapshot Snapshot) error {
	conn, err := amqp.Dial(n.url)
	if err != nil {
		n.log.Warn("Failed to dial broker", zap.Error(err))
		return fmt.Errorf("amqp dial: %w", err)
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		n.log.Warn("Failed to open channel", zap.Error(err))
		return fmt.Errorf("amqp channel: %w", err)
	}
	defer ch.Close()

	// Idempotent; durable so messages survive broker restarts.
	if _, err := ch.QueueDeclare(n.queue, true, false, false, false, nil); err != nil {
		n.log.Warn("Failed to declare queue", zap.Error(err))
		return fmt.Errorf("amqp queue declare: %w", err)
	}

	body, err := json.Marshal(queueMessage{
		Kind:     kind,
		Snapshot: snapshot,
		SentAt:   time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}

	if err := ch.PublishWithContext(ctx, "", n.queue, false, false, pub); err != nil {
		n.log.Warn("Failed to publish notification",
			zap.Error(err),
			zap.String("kind", string(kind)),
			zap.String("code", snapshot.Code),
		)
		return fmt.Errorf("amqp publish: %w", err)
	}

	return nil
}
