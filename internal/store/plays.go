package store

import (
	"context"

	"gorm.io/gorm"

	"github.com/annavogt-hci/ascend/internal/models"
)

// PlayStore persists finalized play records
type PlayStore interface {
	// SaveBatch writes every record in one transaction, all or nothing.
	SaveBatch(ctx context.Context, plays []models.Play) error
	// AllPlays returns every persisted play ordered by insertion id.
	AllPlays(ctx context.Context) ([]models.Play, error)
}

// GormPlayStore is the database-backed PlayStore
type GormPlayStore struct {
	db *gorm.DB
}

// NewGormPlayStore wraps an open gorm handle
func NewGormPlayStore(db *gorm.DB) *GormPlayStore {
	return &GormPlayStore{db: db}
}

// Migrate creates or updates the plays table
func (s *GormPlayStore) Migrate() error {
	return s.db.AutoMigrate(&models.Play{})
}

// SaveBatch writes the whole batch inside a single transaction
func (s *GormPlayStore) SaveBatch(ctx context.Context, plays []models.Play) error {
	if len(plays) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.CreateInBatches(plays, 100).Error
	})
}

// AllPlays returns every persisted play ordered by insertion id
func (s *GormPlayStore) AllPlays(ctx context.Context) ([]models.Play, error) {
	var plays []models.Play
	err := s.db.WithContext(ctx).Order("id").Find(&plays).Error
	return plays, err
}
