package postgresadapter

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"wattline/contexts/telemetry/monitoring-service/domain/entities"
)

type mappingModel struct {
	MappingKey string `gorm:"column:mapping_key;primaryKey"`
	DeviceID   int64  `gorm:"column:device_id;uniqueIndex:idx_mappings_device"`
	OwnerID    int64  `gorm:"column:owner_id;index:idx_mappings_owner"`
}

func (mappingModel) TableName() string { return "device_mappings" }

type readingModel struct {
	ReadingID int64     `gorm:"column:reading_id;primaryKey;autoIncrement"`
	DeviceID  int64     `gorm:"column:device_id;index:idx_readings_device"`
	OwnerID   int64     `gorm:"column:owner_id;index:idx_readings_owner"`
	Value     float64   `gorm:"column:value"`
	Timestamp time.Time `gorm:"column:timestamp;index:idx_readings_timestamp"`
}

func (readingModel) TableName() string { return "readings" }

// MappingRepository is the gorm-backed device-to-owner projection.
type MappingRepository struct {
	db *gorm.DB
}

func NewMappingRepository(db *gorm.DB) *MappingRepository {
	return &MappingRepository{db: db}
}

func (r *MappingRepository) Migrate() error {
	return r.db.AutoMigrate(&mappingModel{}, &readingModel{})
}

func (r *MappingRepository) GetByDeviceID(ctx context.Context, deviceID int64) (entities.DeviceMapping, bool, error) {
	var row mappingModel
	err := r.db.WithContext(ctx).Where("device_id = ?", deviceID).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.DeviceMapping{}, false, nil
		}
		return entities.DeviceMapping{}, false, err
	}
	return entities.DeviceMapping{
		MappingKey: row.MappingKey,
		DeviceID:   row.DeviceID,
		OwnerID:    row.OwnerID,
	}, true, nil
}

func (r *MappingRepository) Create(ctx context.Context, mapping entities.DeviceMapping) error {
	row := mappingModel{
		MappingKey: mapping.MappingKey,
		DeviceID:   mapping.DeviceID,
		OwnerID:    mapping.OwnerID,
	}
	return r.db.WithContext(ctx).Create(&row).Error
}

func (r *MappingRepository) Delete(ctx context.Context, deviceID int64) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("device_id = ?", deviceID).
		Delete(&mappingModel{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// ReadingRepository is the gorm-backed reading store.
type ReadingRepository struct {
	db *gorm.DB
}

func NewReadingRepository(db *gorm.DB) *ReadingRepository {
	return &ReadingRepository{db: db}
}

func (r *ReadingRepository) Insert(ctx context.Context, reading entities.Reading) (entities.Reading, error) {
	row := readingModel{
		DeviceID:  reading.DeviceID,
		OwnerID:   reading.OwnerID,
		Value:     reading.Value,
		Timestamp: reading.Timestamp,
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return entities.Reading{}, err
	}
	reading.ReadingID = row.ReadingID
	return reading, nil
}

func (r *ReadingRepository) ListByOwnerAndDay(ctx context.Context, ownerID int64, day time.Time) ([]entities.Reading, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.Add(24 * time.Hour)

	var rows []readingModel
	err := r.db.WithContext(ctx).
		Where("owner_id = ? AND timestamp >= ? AND timestamp < ?", ownerID, start, end).
		Order("timestamp").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	items := make([]entities.Reading, 0, len(rows))
	for _, row := range rows {
		items = append(items, entities.Reading{
			ReadingID: row.ReadingID,
			DeviceID:  row.DeviceID,
			OwnerID:   row.OwnerID,
			Value:     row.Value,
			Timestamp: row.Timestamp,
		})
	}
	return items, nil
}

func (r *ReadingRepository) DeleteByDevice(ctx context.Context, deviceID int64) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("device_id = ?", deviceID).
		Delete(&readingModel{})
	return result.RowsAffected, result.Error
}
