package alerts

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/lemap/hubwatch/internal/pkg/infrastructure/repositories/database"
	"github.com/lemap/hubwatch/pkg/types"
)

type AlertRepository interface {
	Add(ctx context.Context, alert types.Alert) (types.Alert, error)
	Query(ctx context.Context, hub *types.Hub) ([]types.Alert, error)
}

type alertRepository struct {
	db *gorm.DB
}

func NewAlertRepository(connect database.ConnectorFunc) (AlertRepository, error) {
	impl, err := connect()
	if err != nil {
		return nil, err
	}

	err = impl.AutoMigrate(&Alert{})
	if err != nil {
		return nil, err
	}

	return &alertRepository{
		db: impl,
	}, nil
}

// Add appends an alert. The id and timestamp are assigned by the store
// and returned with the stored alert.
func (d *alertRepository) Add(ctx context.Context, alert types.Alert) (types.Alert, error) {
	a := Alert{
		Hub:       string(alert.Hub),
		EventType: string(alert.EventType),
		Message:   alert.Message,
	}

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&a).Error
	})
	if err != nil {
		return types.Alert{}, fmt.Errorf("could not store alert for %s at %s: %w", alert.EventType, alert.Hub, err)
	}

	return a.toType(), nil
}

// Query returns alerts, most recent first, optionally only for one hub.
func (d *alertRepository) Query(ctx context.Context, hub *types.Hub) ([]types.Alert, error) {
	var rows []Alert

	query := d.db.WithContext(ctx)

	if hub != nil {
		query = query.Where("hub = ?", string(*hub))
	}

	err := query.Order("timestamp desc").Order("id desc").Find(&rows).Error
	if err != nil {
		return nil, err
	}

	result := make([]types.Alert, 0, len(rows))
	for _, r := range rows {
		result = append(result, r.toType())
	}

	return result, nil
}
