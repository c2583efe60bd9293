package events

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/lemap/hubwatch/internal/pkg/infrastructure/repositories/database"
	"github.com/lemap/hubwatch/pkg/types"
)

type EventRepository interface {
	Add(ctx context.Context, event types.Event) (types.Event, error)
	Query(ctx context.Context, hub *types.Hub) ([]types.Event, error)
}

type eventRepository struct {
	db *gorm.DB
}

func NewEventRepository(connect database.ConnectorFunc) (EventRepository, error) {
	impl, err := connect()
	if err != nil {
		return nil, err
	}

	err = impl.AutoMigrate(&Event{})
	if err != nil {
		return nil, err
	}

	return &eventRepository{
		db: impl,
	}, nil
}

func (d *eventRepository) Add(ctx context.Context, event types.Event) (types.Event, error) {
	e := Event{
		EventType:   string(event.EventType),
		Hub:         string(event.Hub),
		Description: event.Description,
		Timestamp:   event.Timestamp,
	}

	err := d.db.WithContext(ctx).Create(&e).Error
	if err != nil {
		return types.Event{}, fmt.Errorf("could not store event %s at %s: %w", event.EventType, event.Hub, err)
	}

	return e.toType(), nil
}

func (d *eventRepository) Query(ctx context.Context, hub *types.Hub) ([]types.Event, error) {
	var rows []Event

	query := d.db.WithContext(ctx)

	if hub != nil {
		query = query.Where("hub = ?", string(*hub))
	}

	err := query.Order("timestamp desc").Order("id desc").Find(&rows).Error
	if err != nil {
		return nil, err
	}

	result := make([]types.Event, 0, len(rows))
	for _, r := range rows {
		result = append(result, r.toType())
	}

	return result, nil
}
