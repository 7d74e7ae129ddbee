// Package store persists generated price paths in SQLite so a batch can be
// generated once and replayed across strategy runs.
package store

import (
	"fmt"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"mm-sim-go/process"
)

// PathRecord is one serialized price path.
type PathRecord struct {
	ID        uint `gorm:"primaryKey"`
	Seed      int64
	CreatedAt time.Time
	Data      []byte
}

// PathStore wraps the database handle.
type PathStore struct {
	db *gorm.DB
}

// Open opens (or creates) the store at the given DSN. Use ":memory:" for
// tests.
func Open(dsn string) (*PathStore, error) {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open path store: %w", err)
	}
	if err := db.AutoMigrate(&PathRecord{}); err != nil {
		return nil, fmt.Errorf("migrate path store: %w", err)
	}
	return &PathStore{db: db}, nil
}

// Save encodes and inserts one path.
func (s *PathStore) Save(seed int64, p process.Path) error {
	data, err := p.Encode()
	if err != nil {
		return fmt.Errorf("encode path: %w", err)
	}
	rec := PathRecord{Seed: seed, CreatedAt: time.Now().UTC(), Data: data}
	if err := s.db.Create(&rec).Error; err != nil {
		return fmt.Errorf("insert path: %w", err)
	}
	return nil
}

// FetchAll decodes every stored path in insertion order.
func (s *PathStore) FetchAll() ([]process.Path, error) {
	var recs []PathRecord
	if err := s.db.Order("id asc").Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("fetch paths: %w", err)
	}
	paths := make([]process.Path, 0, len(recs))
	for _, rec := range recs {
		p, err := process.DecodePath(rec.Data)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", rec.ID, err)
		}
		paths = append(paths, p)
	}
	return paths, nil
}

// Count reports how many paths are stored.
func (s *PathStore) Count() (int64, error) {
	var n int64
	if err := s.db.Model(&PathRecord{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count paths: %w", err)
	}
	return n, nil
}

// Clear deletes all stored paths.
func (s *PathStore) Clear() error {
	if err := s.db.Where("1 = 1").Delete(&PathRecord{}).Error; err != nil {
		return fmt.Errorf("clear paths: %w", err)
	}
	return nil
}
