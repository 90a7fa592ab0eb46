package kv

import (
	"errors"
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mkhart/bookshelf/internal/entities"
)

// SQLite is a Store persisted to a single SQLite database file, one record
// per key.
type SQLite struct {
	db *gorm.DB
}

// NewSQLite opens (or creates) the database at the given path and migrates
// the records table.
func NewSQLite(dbPath string) (*SQLite, error) {
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.AutoMigrate(&entities.Record{}); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	return &SQLite{db: db}, nil
}

func (s *SQLite) Get(key string) ([]byte, error) {
	var record entities.Record
	err := s.db.Where("key = ?", key).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to read key %q: %w", key, err)
	}
	return record.Value, nil
}

func (s *SQLite) Set(key string, value []byte) error {
	var record entities.Record
	result := s.db.Where("key = ?", key).First(&record)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		record = entities.Record{Key: key, Value: value}
		if err := s.db.Create(&record).Error; err != nil {
			return fmt.Errorf("failed to create key %q: %w", key, err)
		}
		return nil
	}
	if result.Error != nil {
		return fmt.Errorf("failed to read key %q: %w", key, result.Error)
	}

	record.Value = value
	if err := s.db.Save(&record).Error; err != nil {
		return fmt.Errorf("failed to update key %q: %w", key, err)
	}
	return nil
}

func (s *SQLite) Delete(key string) error {
	err := s.db.Where("key = ?", key).Delete(&entities.Record{}).Error
	if err != nil {
		return fmt.Errorf("failed to delete key %q: %w", key, err)
	}
	return nil
}

// Close closes the underlying database connection.
func (s *SQLite) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
