package messaging

import (
	"context"
	"errors"
	"testing"

	"github.com/lemap/hubwatch/pkg/types"
	"github.com/matryer/is"
	amqp "github.com/rabbitmq/amqp091-go"
)

func TestFanoutPublishesOnAllPublishers(t *testing.T) {
	is := is.New(t)

	ok := &MsgContextMock{
		PublishOnTopicFunc: func(ctx context.Context, message TopicMessage) error { return nil },
	}
	failing := &MsgContextMock{
		PublishOnTopicFunc: func(ctx context.Context, message TopicMessage) error { return errors.New("boom") },
	}

	f := Fanout(ok, nil, failing)
	err := f.PublishOnTopic(context.Background(), &types.AlertCreated{})

	is.True(err != nil)
	is.Equal(len(ok.PublishOnTopicCalls()), 1)
	is.Equal(len(failing.PublishOnTopicCalls()), 1)
}

func TestEmptyFanoutIsNoop(t *testing.T) {
	is := is.New(t)
	is.NoErr(Fanout().PublishOnTopic(context.Background(), &types.AlertCreated{}))
}

func TestPublishingIsPersistentAndTyped(t *testing.T) {
	is := is.New(t)

	p := newPublishing(&types.AlertCreated{Alert: types.Alert{Hub: "Delhi"}})

	is.Equal(p.DeliveryMode, amqp.Persistent)
	is.Equal(p.Type, "hubwatch.alertCreated")
	is.Equal(p.ContentType, "application/json")
	is.True(p.MessageId != "")
	is.True(len(p.Body) > 0)
}

func TestThatMissingURLFails(t *testing.T) {
	is := is.New(t)
	_, err := NewAMQPPublisher(Config{})
	is.True(err != nil)
}
