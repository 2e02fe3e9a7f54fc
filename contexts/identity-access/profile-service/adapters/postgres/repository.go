package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"wattline/contexts/identity-access/profile-service/domain/entities"
	domainerrors "wattline/contexts/identity-access/profile-service/domain/errors"
)

const uniqueViolationCode = "23505"

type profileModel struct {
	ProfileID    int64     `gorm:"column:profile_id;primaryKey;autoIncrement"`
	CredentialID int64     `gorm:"column:credential_id;uniqueIndex:idx_profiles_credential"`
	Username     string    `gorm:"column:username;uniqueIndex:idx_profiles_username"`
	Email        string    `gorm:"column:email;uniqueIndex:idx_profiles_email"`
	Role         string    `gorm:"column:role"`
	CreatedAt    time.Time `gorm:"column:created_at"`
}

func (profileModel) TableName() string { return "profiles" }

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
	return r.db.AutoMigrate(&profileModel{})
}

func (r *Repository) GetByCredentialID(ctx context.Context, credentialID int64) (entities.Profile, bool, error) {
	return r.getBy(ctx, "credential_id = ?", credentialID)
}

func (r *Repository) GetByUsername(ctx context.Context, username string) (entities.Profile, bool, error) {
	return r.getBy(ctx, "username = ?", username)
}

func (r *Repository) GetByEmail(ctx context.Context, email string) (entities.Profile, bool, error) {
	return r.getBy(ctx, "email = ?", email)
}

func (r *Repository) getBy(ctx context.Context, query string, arg any) (entities.Profile, bool, error) {
	var row profileModel
	err := r.db.WithContext(ctx).Where(query, arg).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Profile{}, false, nil
		}
		return entities.Profile{}, false, err
	}
	return row.toEntity(), true, nil
}

func (r *Repository) List(ctx context.Context) ([]entities.Profile, error) {
	var rows []profileModel
	if err := r.db.WithContext(ctx).Order("profile_id").Find(&rows).Error; err != nil {
		return nil, err
	}
	items := make([]entities.Profile, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) Create(ctx context.Context, profile entities.Profile) (entities.Profile, error) {
	row := profileModel{
		CredentialID: profile.CredentialID,
		Username:     profile.Username,
		Email:        profile.Email,
		Role:         profile.Role,
		CreatedAt:    profile.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return entities.Profile{}, mapUniqueViolation(err)
	}
	return row.toEntity(), nil
}

func (r *Repository) Update(ctx context.Context, profile entities.Profile) error {
	err := r.db.WithContext(ctx).
		Model(&profileModel{}).
		Where("credential_id = ?", profile.CredentialID).
		Updates(map[string]any{
			"username": profile.Username,
			"email":    profile.Email,
			"role":     profile.Role,
		}).Error
	return mapUniqueViolation(err)
}

func (r *Repository) DeleteByCredentialID(ctx context.Context, credentialID int64) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("credential_id = ?", credentialID).
		Delete(&profileModel{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (m profileModel) toEntity() entities.Profile {
	return entities.Profile{
		ProfileID:    m.ProfileID,
		CredentialID: m.CredentialID,
		Username:     m.Username,
		Email:        m.Email,
		Role:         m.Role,
		CreatedAt:    m.CreatedAt,
	}
}

func mapUniqueViolation(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
		if strings.Contains(pgErr.ConstraintName, "email") {
			return domainerrors.ErrEmailExists
		}
		return domainerrors.ErrUsernameExists
	}
	return err
}
