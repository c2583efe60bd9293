package notifications

import (
	"context"
	"errors"
	"fmt"
	"time"

	cloudevents "github.com/cloudevents/sdk-go/v2"
	"github.com/google/uuid"
	"github.com/lemap/hubwatch/internal/pkg/infrastructure/logging"
	"github.com/lemap/hubwatch/internal/pkg/infrastructure/messaging"
	"golang.org/x/sys/unix"
)

const source = "github.com/lemap/hubwatch"

type Sender struct {
	subscribers map[string][]SubscriberConfig
	client      cloudevents.Client
}

// New returns a Sender that forwards topic messages as cloud events to
// the subscribers configured for the message topic.
func New(cfg *Config) (*Sender, error) {
	c, err := cloudevents.NewClientHTTP()
	if err != nil {
		return nil, err
	}

	s := &Sender{
		subscribers: make(map[string][]SubscriberConfig),
		client:      c,
	}

	if cfg != nil {
		for _, n := range cfg.Notifications {
			s.subscribers[n.Type] = append(s.subscribers[n.Type], n.Subscribers...)
		}
	}

	return s, nil
}

var _ messaging.MsgContext = &Sender{}

func (s *Sender) PublishOnTopic(ctx context.Context, message messaging.TopicMessage) error {
	subscribers, ok := s.subscribers[message.TopicName()]
	if !ok || len(subscribers) == 0 {
		return nil
	}

	event := cloudevents.NewEvent()
	event.SetID(uuid.NewString())
	event.SetTime(time.Now().UTC())
	event.SetSource(source)
	event.SetType(message.TopicName())

	err := event.SetData(message.ContentType(), message.Body())
	if err != nil {
		return err
	}

	logger := logging.GetLoggerFromContext(ctx)

	var errs []error

	for _, sub := range subscribers {
		ctxWithTarget := cloudevents.ContextWithTarget(ctx, sub.Endpoint)

		result := s.client.Send(ctxWithTarget, event)
		if cloudevents.IsACK(result) {
			continue
		}

		if errors.Is(result, unix.ECONNREFUSED) {
			logger.Warn().Msgf("subscriber %s refused connection", sub.Endpoint)
		} else {
			logger.Error().Err(result).Msgf("failed to send event to %s", sub.Endpoint)
		}

		errs = append(errs, fmt.Errorf("%s: %w", sub.Endpoint, result))
	}

	return errors.Join(errs...)
}

type SubscriberConfig struct {
	Endpoint string `yaml:"endpoint"`
}

type Notification struct {
	ID          string             `yaml:"id"`
	Name        string             `yaml:"name"`
	Type        string             `yaml:"type"`
	Subscribers []SubscriberConfig `yaml:"subscribers"`
}

type Config struct {
	Notifications []Notification `yaml:"notifications"`
}
