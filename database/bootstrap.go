// database/bootstrap.go
package database

import (
	"fmt"
	"log"

	sqlite "github.com/glebarez/sqlite" // CGO-free driver
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"agronome/entities"
)

// Open connects to sqlite at path (":memory:" works for tests) and migrates
// every table.
func Open(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{Logger: logger.Default.LogMode(logger.Warn)})
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if path == ":memory:" {
		// each new connection would get its own empty database
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}
	if err := Migrate(db); err != nil {
		return nil, fmt.Errorf("automigrate: %w", err)
	}
	return db, nil
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&entities.Holding{},
		&entities.SoilAnalysis{},
		&entities.ClimateWindow{},
		&entities.InputApplication{},
		&entities.HarvestRecord{},
		&entities.Recommendation{},
		&entities.Sensor{},
		&entities.SensorReading{},
		&entities.KBDocument{},
		&entities.KBChunk{},
	)
}

func OpenSQLite(path string) *gorm.DB {
	db, err := Open(path)
	if err != nil {
		log.Fatalf("[db] %v", err)
	}
	log.Printf("[db] sqlite ready at %s", path)
	return db
}
