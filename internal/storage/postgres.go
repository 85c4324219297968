package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/sangkips/restropos-api/internal/config"
	"github.com/sangkips/restropos-api/pkg/apperror"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// kvRecord is the single table backing the key-value medium. The value is
// one jsonb blob per collection; INSERT ... ON CONFLICT replaces it whole.
type kvRecord struct {
	Key       string `gorm:"primaryKey;size:100"`
	Value     []byte `gorm:"type:jsonb;not null"`
	UpdatedAt time.Time
}

// TableName returns the table name for the kvRecord model
func (kvRecord) TableName() string {
	return "kv_records"
}

// NewPostgresDB creates a new PostgreSQL database connection
func NewPostgresDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true, // disables implicit prepared statement usage
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	log.Println("Successfully connected to PostgreSQL database")
	return db, nil
}

// AutoMigrate creates the key-value table.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&kvRecord{}); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

type postgresStore struct {
	db  *gorm.DB
	hub *hub
}

// NewPostgres creates a Store backed by the kv_records table.
func NewPostgres(db *gorm.DB) Store {
	return &postgresStore{db: db, hub: newHub()}
}

func (s *postgresStore) Get(ctx context.Context, key string, dest any) (bool, error) {
	var rec kvRecord
	err := s.db.WithContext(ctx).First(&rec, "key = ?", key).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, apperror.NewPersistenceError(err)
	}

	if err := json.Unmarshal(rec.Value, dest); err != nil {
		// Corrupt serialized data falls back to absent, not a crash.
		log.Printf("storage: discarding malformed value for key %s: %v", key, err)
		return false, nil
	}
	return true, nil
}

func (s *postgresStore) Set(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return apperror.NewPersistenceError(err)
	}

	rec := kvRecord{Key: key, Value: data, UpdatedAt: time.Now()}
	err = s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&rec).Error
	if err != nil {
		return apperror.NewPersistenceError(err)
	}

	s.hub.notify(key)
	return nil
}

func (s *postgresStore) Delete(ctx context.Context, key string) error {
	if err := s.db.WithContext(ctx).Delete(&kvRecord{}, "key = ?", key).Error; err != nil {
		return apperror.NewPersistenceError(err)
	}
	s.hub.notify(key)
	return nil
}

func (s *postgresStore) Subscribe(key string, fn func(string)) func() {
	return s.hub.subscribe(key, fn)
}
