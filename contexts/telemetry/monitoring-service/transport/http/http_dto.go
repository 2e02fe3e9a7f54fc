package httptransport

import "time"

type ReadingDTO struct {
	ReadingID int64     `json:"reading_id"`
	DeviceID  int64     `json:"device_id"`
	OwnerID   int64     `json:"owner_id"`
	Value     float64   `json:"value"`
	Timestamp time.Time `json:"timestamp"`
}

type ListConsumptionsResponse struct {
	Readings []ReadingDTO `json:"readings"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
