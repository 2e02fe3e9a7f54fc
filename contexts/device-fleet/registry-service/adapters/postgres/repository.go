package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"wattline/contexts/device-fleet/registry-service/domain/entities"
)

type deviceModel struct {
	DeviceID       int64     `gorm:"column:device_id;primaryKey;autoIncrement"`
	OwnerID        int64     `gorm:"column:owner_id;index:idx_devices_owner"`
	Name           string    `gorm:"column:name"`
	Status         string    `gorm:"column:status"`
	MaxConsumption float64   `gorm:"column:max_consumption"`
	CreatedAt      time.Time `gorm:"column:created_at"`
}

func (deviceModel) TableName() string { return "devices" }

type ownerModel struct {
	OwnerID     int64  `gorm:"column:owner_id;primaryKey"`
	DisplayName string `gorm:"column:display_name"`
}

func (ownerModel) TableName() string { return "owners" }

// Repository is the gorm-backed device repository.
type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{db: db, logger: logger}
}

func (r *Repository) Migrate() error {
	return r.db.AutoMigrate(&deviceModel{}, &ownerModel{})
}

func (r *Repository) GetByID(ctx context.Context, deviceID int64) (entities.Device, bool, error) {
	var row deviceModel
	err := r.db.WithContext(ctx).Where("device_id = ?", deviceID).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Device{}, false, nil
		}
		return entities.Device{}, false, err
	}
	return row.toEntity(), true, nil
}

func (r *Repository) List(ctx context.Context) ([]entities.Device, error) {
	var rows []deviceModel
	if err := r.db.WithContext(ctx).Order("device_id").Find(&rows).Error; err != nil {
		return nil, err
	}
	return toEntities(rows), nil
}

func (r *Repository) ListByOwner(ctx context.Context, ownerID int64) ([]entities.Device, error) {
	var rows []deviceModel
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("device_id").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return toEntities(rows), nil
}

func (r *Repository) Create(ctx context.Context, device entities.Device) (entities.Device, error) {
	row := deviceModel{
		OwnerID:        device.OwnerID,
		Name:           device.Name,
		Status:         device.Status,
		MaxConsumption: device.MaxConsumption,
		CreatedAt:      device.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return entities.Device{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) Update(ctx context.Context, device entities.Device) error {
	return r.db.WithContext(ctx).
		Model(&deviceModel{}).
		Where("device_id = ?", device.DeviceID).
		Updates(map[string]any{
			"owner_id":        device.OwnerID,
			"name":            device.Name,
			"status":          device.Status,
			"max_consumption": device.MaxConsumption,
		}).Error
}

func (r *Repository) Delete(ctx context.Context, deviceID int64) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("device_id = ?", deviceID).
		Delete(&deviceModel{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *Repository) ReassignOwner(ctx context.Context, ownerID, newOwnerID int64) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&deviceModel{}).
		Where("owner_id = ?", ownerID).
		Update("owner_id", newOwnerID)
	return result.RowsAffected, result.Error
}

func (m deviceModel) toEntity() entities.Device {
	return entities.Device{
		DeviceID:       m.DeviceID,
		OwnerID:        m.OwnerID,
		Name:           m.Name,
		Status:         m.Status,
		MaxConsumption: m.MaxConsumption,
		CreatedAt:      m.CreatedAt,
	}
}

func toEntities(rows []deviceModel) []entities.Device {
	items := make([]entities.Device, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items
}

// OwnerRepository is the gorm-backed owner projection.
type OwnerRepository struct {
	db *gorm.DB
}

func NewOwnerRepository(db *gorm.DB) *OwnerRepository {
	return &OwnerRepository{db: db}
}

func (r *OwnerRepository) Get(ctx context.Context, ownerID int64) (entities.Owner, bool, error) {
	var row ownerModel
	err := r.db.WithContext(ctx).Where("owner_id = ?", ownerID).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Owner{}, false, nil
		}
		return entities.Owner{}, false, err
	}
	return entities.Owner{OwnerID: row.OwnerID, DisplayName: row.DisplayName}, true, nil
}

func (r *OwnerRepository) Upsert(ctx context.Context, owner entities.Owner) error {
	row := ownerModel{OwnerID: owner.OwnerID, DisplayName: owner.DisplayName}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "owner_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"display_name"}),
		}).
		Create(&row).Error
}

func (r *OwnerRepository) Delete(ctx context.Context, ownerID int64) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Delete(&ownerModel{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
