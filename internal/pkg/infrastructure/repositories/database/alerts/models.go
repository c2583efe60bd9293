package alerts

import (
	"time"

	"github.com/lemap/hubwatch/pkg/types"
)

type Alert struct {
	ID        uint      `gorm:"primarykey"`
	Hub       string    `gorm:"index;not null"`
	EventType string    `gorm:"column:event_type;not null"`
	Message   string    `gorm:"not null"`
	Timestamp time.Time `gorm:"autoCreateTime;index"`
}

func (Alert) TableName() string {
	return "alert"
}

func (a Alert) toType() types.Alert {
	return types.Alert{
		ID:        a.ID,
		Hub:       types.Hub(a.Hub),
		EventType: types.EventType(a.EventType),
		Message:   a.Message,
		Timestamp: a.Timestamp,
	}
}
