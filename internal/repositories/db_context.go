package repositories

import (
	"fmt"
	"github.com/glebarez/sqlite"
	"github.com/maxaizer/job-radar/internal/entities"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"strings"
)

// sqlitePragmas let the dashboard read while a cycle writes: WAL keeps readers off the
// writer's lock and busy_timeout bounds any wait.
const sqlitePragmas = "_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"

type DbContext struct {
	DB *gorm.DB
}

func NewDbContext(connectionString string) (*DbContext, error) {
	db, err := gorm.Open(sqlite.Open(withPragmas(connectionString)), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Error),
	})
	if err != nil {
		return nil, err
	}

	return &DbContext{DB: db}, nil
}

func (c *DbContext) Migrate() error {
	if err := c.DB.AutoMigrate(entities.SeenJob{}); err != nil {
		return fmt.Errorf("failed to migrate SeenJob entity: %w", err)
	}

	if err := c.DB.AutoMigrate(entities.StoredValue{}); err != nil {
		return fmt.Errorf("failed to migrate StoredValue entity: %w", err)
	}

	return nil
}

func (c *DbContext) Close() error {
	db, err := c.DB.DB()
	if err != nil {
		return err
	}

	return db.Close()
}

func withPragmas(connectionString string) string {
	if strings.Contains(connectionString, "_pragma=") {
		return connectionString
	}
	if strings.Contains(connectionString, "?") {
		return connectionString + "&" + sqlitePragmas
	}
	return connectionString + "?" + sqlitePragmas
}
