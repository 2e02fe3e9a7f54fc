package httpadapter

import (
	"context"
	"log/slog"
	"time"

	"wattline/contexts/telemetry/monitoring-service/application/queries"
	httptransport "wattline/contexts/telemetry/monitoring-service/transport/http"
)

type Handler struct {
	ListConsumptions queries.ListConsumptionsUseCase
	Logger           *slog.Logger
}

func (h Handler) ListConsumptionsHandler(ctx context.Context, ownerID int64, day time.Time) (httptransport.ListConsumptionsResponse, error) {
	readings, err := h.ListConsumptions.Execute(ctx, ownerID, day)
	if err != nil {
		return httptransport.ListConsumptionsResponse{}, err
	}

	items := make([]httptransport.ReadingDTO, 0, len(readings))
	for _, reading := range readings {
		items = append(items, httptransport.ReadingDTO{
			ReadingID: reading.ReadingID,
			DeviceID:  reading.DeviceID,
			OwnerID:   reading.OwnerID,
			Value:     reading.Value,
			Timestamp: reading.Timestamp,
		})
	}
	return httptransport.ListConsumptionsResponse{Readings: items}, nil
}
