package queries

import (
	"context"
	"log/slog"
	"time"

	"wattline/contexts/telemetry/monitoring-service/domain/entities"
	domainerrors "wattline/contexts/telemetry/monitoring-service/domain/errors"
	"wattline/contexts/telemetry/monitoring-service/ports"
)

// ListConsumptionsUseCase returns an owner's readings for one calendar day.
type ListConsumptionsUseCase struct {
	Readings ports.ReadingRepository
	Logger   *slog.Logger
}

func (u ListConsumptionsUseCase) Execute(ctx context.Context, ownerID int64, day time.Time) ([]entities.Reading, error) {
	if ownerID <= 0 || day.IsZero() {
		return nil, domainerrors.ErrMissingFields
	}
	return u.Readings.ListByOwnerAndDay(ctx, ownerID, day)
}
