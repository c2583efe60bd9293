package events

import (
	"time"

	"github.com/lemap/hubwatch/pkg/types"
)

type Event struct {
	ID          uint      `gorm:"primarykey"`
	EventType   string    `gorm:"column:event_type;not null"`
	Hub         string    `gorm:"index;not null"`
	Description string
	Timestamp   time.Time `gorm:"autoCreateTime;index"`
}

func (Event) TableName() string {
	return "event"
}

func (e Event) toType() types.Event {
	return types.Event{
		ID:          e.ID,
		EventType:   types.EventType(e.EventType),
		Hub:         types.Hub(e.Hub),
		Description: e.Description,
		Timestamp:   e.Timestamp,
	}
}
