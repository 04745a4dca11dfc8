package storage

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Document keys. One JSON document per logical collection, exactly like the
// original app kept them.
const (
	KeyProducts = "minimart_products"
	KeySales    = "minimart_sales"
	KeySettings = "minimart_settings"
)

// Store is the key-value blob layer everything persists through.
// Callers read the whole document, mutate in memory and write it back;
// there is no partial update and no cross-writer protection.
type Store interface {
	// Get returns the raw document and whether it exists at all.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Put overwrites the full document.
	Put(ctx context.Context, key string, value []byte) error
}

// Blob is the single table backing the store: three rows, one per document.
type Blob struct {
	Key   string `gorm:"primaryKey;size:64"`
	Value []byte
}

// GormStore keeps the documents in a local SQLite file. A shop counter PC
// has no database server; one file on disk is the whole persistence story.
type GormStore struct {
	db  *gorm.DB
	log *zap.Logger
}

// Open connects to (or creates) the SQLite file and syncs the schema.
func Open(path string, log *zap.Logger) (*GormStore, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite store at %s: %w", path, err)
	}

	if err := db.AutoMigrate(&Blob{}); err != nil {
		return nil, fmt.Errorf("failed to migrate blob table: %w", err)
	}

	log.Info("store opened", zap.String("path", path))
	return &GormStore{db: db, log: log}, nil
}

func (s *GormStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var blob Blob
	err := s.db.WithContext(ctx).First(&blob, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read document %s: %w", key, err)
	}
	return blob.Value, true, nil
}

func (s *GormStore) Put(ctx context.Context, key string, value []byte) error {
	blob := Blob{Key: key, Value: value}
	if err := s.db.WithContext(ctx).Save(&blob).Error; err != nil {
		return fmt.Errorf("failed to write document %s: %w", key, err)
	}
	return nil
}
