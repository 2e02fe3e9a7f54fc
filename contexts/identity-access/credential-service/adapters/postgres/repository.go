package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"wattline/contexts/identity-access/credential-service/domain/entities"
	domainerrors "wattline/contexts/identity-access/credential-service/domain/errors"
)

const uniqueViolationCode = "23505"

type credentialModel struct {
	CredentialID int64     `gorm:"column:credential_id;primaryKey;autoIncrement"`
	Username     string    `gorm:"column:username;uniqueIndex:idx_credentials_username"`
	Email        string    `gorm:"column:email;uniqueIndex:idx_credentials_email"`
	PasswordHash string    `gorm:"column:password_hash"`
	CreatedAt    time.Time `gorm:"column:created_at"`
}

func (credentialModel) TableName() string { return "credentials" }

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

// Migrate creates the credentials table. Safe to run repeatedly.
func (r *Repository) Migrate() error {
	return r.db.AutoMigrate(&credentialModel{})
}

func (r *Repository) GetByID(ctx context.Context, credentialID int64) (entities.Credential, bool, error) {
	return r.getBy(ctx, "credential_id = ?", credentialID)
}

func (r *Repository) GetByUsername(ctx context.Context, username string) (entities.Credential, bool, error) {
	return r.getBy(ctx, "username = ?", username)
}

func (r *Repository) GetByEmail(ctx context.Context, email string) (entities.Credential, bool, error) {
	return r.getBy(ctx, "email = ?", email)
}

func (r *Repository) getBy(ctx context.Context, query string, arg any) (entities.Credential, bool, error) {
	var row credentialModel
	err := r.db.WithContext(ctx).Where(query, arg).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Credential{}, false, nil
		}
		return entities.Credential{}, false, err
	}
	return row.toEntity(), true, nil
}

func (r *Repository) Create(ctx context.Context, credential entities.Credential) (entities.Credential, error) {
	row := credentialModel{
		Username:     credential.Username,
		Email:        credential.Email,
		PasswordHash: credential.PasswordHash,
		CreatedAt:    credential.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return entities.Credential{}, mapUniqueViolation(err)
	}
	return row.toEntity(), nil
}

func (r *Repository) Update(ctx context.Context, credential entities.Credential) error {
	err := r.db.WithContext(ctx).
		Model(&credentialModel{}).
		Where("credential_id = ?", credential.CredentialID).
		Updates(map[string]any{
			"username":      credential.Username,
			"email":         credential.Email,
			"password_hash": credential.PasswordHash,
		}).Error
	return mapUniqueViolation(err)
}

func (r *Repository) Delete(ctx context.Context, credentialID int64) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("credential_id = ?", credentialID).
		Delete(&credentialModel{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (m credentialModel) toEntity() entities.Credential {
	return entities.Credential{
		CredentialID: m.CredentialID,
		Username:     m.Username,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
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
