package messaging

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

type TopicMessage interface {
	ContentType() string
	TopicName() string
	Body() []byte
}

//go:generate moq -rm -out messaging_mock.go . MsgContext

type MsgContext interface {
	PublishOnTopic(ctx context.Context, message TopicMessage) error
}

type Config struct {
	URL      string
	Exchange string
}

type AMQPPublisher struct {
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
}

// NewAMQPPublisher connects to the broker and declares a durable topic
// exchange. Messages are routed on their topic name.
func NewAMQPPublisher(cfg Config) (*AMQPPublisher, error) {
	if cfg.URL == "" {
		return nil, errors.New("no amqp url configured")
	}
	if cfg.Exchange == "" {
		cfg.Exchange = "hubwatch"
	}

	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to amqp broker: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open amqp channel: %w", err)
	}

	err = ch.ExchangeDeclare(cfg.Exchange, amqp.ExchangeTopic, true, false, false, false, nil)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to declare exchange %s: %w", cfg.Exchange, err)
	}

	return &AMQPPublisher{
		conn:     conn,
		channel:  ch,
		exchange: cfg.Exchange,
	}, nil
}

func (p *AMQPPublisher) PublishOnTopic(ctx context.Context, message TopicMessage) error {
	return p.channel.PublishWithContext(ctx, p.exchange, message.TopicName(), false, false, newPublishing(message))
}

func (p *AMQPPublisher) Close() error {
	p.channel.Close()
	return p.conn.Close()
}

func newPublishing(message TopicMessage) amqp.Publishing {
	return amqp.Publishing{
		ContentType:  message.ContentType(),
		DeliveryMode: amqp.Persistent,
		MessageId:    uuid.NewString(),
		Timestamp:    time.Now().UTC(),
		Type:         message.TopicName(),
		Body:         message.Body(),
	}
}

type fanout struct {
	publishers []MsgContext
}

// Fanout publishes every message on all of the given publishers. Nil
// publishers are skipped.
func Fanout(publishers ...MsgContext) MsgContext {
	f := &fanout{}
	for _, p := range publishers {
		if p != nil {
			f.publishers = append(f.publishers, p)
		}
	}
	return f
}

func (f *fanout) PublishOnTopic(ctx context.Context, message TopicMessage) error {
	var errs []error
	for _, p := range f.publishers {
		if err := p.PublishOnTopic(ctx, message); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
