package events

import (
	"context"
	"encoding/json"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// AuditConsumer follows the company event topic and writes each event to
// the audit log. It exists so a deployment can see seeding and admin
// changes without querying the database.
type AuditConsumer struct {
	reader  *kafka.Reader
	logger  *zap.Logger
	handler func(context.Context, Event) error
}

func NewAuditConsumer(brokers []string, groupID, topic string, logger *zap.Logger) *AuditConsumer {
	c := &AuditConsumer{
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers: brokers,
			GroupID: groupID,
			Topic:   topic,
			Dialer:  kafka.DefaultDialer,
		}),
		logger: logger.Named("audit_consumer"),
	}
	c.handler = c.logEvent
	return c
}

// RegisterHandler replaces the default audit-log handler.
func (c *AuditConsumer) RegisterHandler(fn func(context.Context, Event) error) {
	c.handler = fn
}

func (c *AuditConsumer) logEvent(_ context.Context, event Event) error {
	c.logger.Info("company event",
		zap.String("event_type", string(event.Type)),
		zap.String("company_id", event.Company.ID.String()),
		zap.String("name", event.Company.Name),
		zap.Time("occurred", event.Occurred),
	)
	return nil
}

func (c *AuditConsumer) Start(ctx context.Context) {
	go func() {
		for {
			msg, err := c.reader.FetchMessage(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				c.logger.Error("Failed to fetch message", zap.Error(err))
				continue
			}

			var event Event
			if err := json.Unmarshal(msg.Value, &event); err != nil {
				c.logger.Error("Failed to parse event",
					zap.Error(err),
					zap.ByteString("value", msg.Value),
				)
				continue
			}

			if err := c.handler(ctx, event); err != nil {
				c.logger.Error("Failed to handle event",
					zap.Error(err),
					zap.String("event_type", string(event.Type)),
				)
				continue
			}

			if err := c.reader.CommitMessages(ctx, msg); err != nil {
				c.logger.Error("Failed to commit message",
					zap.Error(err),
					zap.String("event_type", string(event.Type)),
				)
			}
		}
	}()
}

func (c *AuditConsumer) Close() {
	if err := c.reader.Close(); err != nil {
		c.logger.Error("Failed to close Kafka reader", zap.Error(err))
	}
}
