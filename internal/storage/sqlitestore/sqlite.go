// Package sqlitestore implements storage.Store on a single SQLite file through GORM.
// It is the default backend: one file per installation, like a browser profile.
package sqlitestore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cursedbuild/storefront/internal/storage"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

type Entry struct {
	Key       string `gorm:"primaryKey;size:255"`
	Value     []byte `gorm:"not null"`
	UpdatedAt time.Time
}

func (Entry) TableName() string {
	return "storage_entries"
}

type sqliteStore struct {
	db *gorm.DB
}

// Open opens (creating if needed) the database at path. ":memory:" works for tests.
func Open(path string) (storage.Store, error) {

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger:  logger.Default.LogMode(logger.Silent),
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database %s: %w", path, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	// single writer; also keeps ":memory:" to one database
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&Entry{}); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to migrate storage_entries: %w", err)
	}

	return &sqliteStore{db: db}, nil
}

func (s *sqliteStore) Get(ctx context.Context, key string) ([]byte, bool, error) {

	var entry Entry

	err := s.db.WithContext(ctx).Where("key = ?", key).First(&entry).Error
	if err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, nil
		}

		return nil, false, fmt.Errorf("failed to get key %s from sqlite: %w", key, err)
	}

	return entry.Value, true, nil
}

func (s *sqliteStore) Set(ctx context.Context, key string, value []byte) error {

	entry := Entry{Key: key, Value: value}

	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry).Error
	if err != nil {
		return fmt.Errorf("failed to set key %s in sqlite: %w", key, err)
	}

	return nil
}

func (s *sqliteStore) Delete(ctx context.Context, key string) error {

	if err := s.db.WithContext(ctx).Where("key = ?", key).Delete(&Entry{}).Error; err != nil {
		return fmt.Errorf("failed to delete key %s from sqlite: %w", key, err)
	}

	return nil
}

func (s *sqliteStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}

	return sqlDB.PingContext(ctx)
}

func (s *sqliteStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}

	return sqlDB.Close()
}
